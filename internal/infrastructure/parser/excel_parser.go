package parser

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"github.com/yourusername/rocket-motor-showroom/internal/domain/entity"
	"github.com/yourusername/rocket-motor-showroom/internal/domain/repository"
	logx "github.com/yourusername/rocket-motor-showroom/pkg/logger"
)

// Ustun kalitlari
const (
	colID          = "id"
	colMake        = "make"
	colModel       = "model"
	colYear        = "year"
	colPrice       = "price"
	colCategory    = "category"
	colDescription = "description"
	colImages      = "images"
	colFeatures    = "features"
	colHorsepower  = "horsepower"
	colTopSpeed    = "topspeed"
	colZeroToSixty = "zerotosixty"
	colEngine      = "engine"
	colMileage     = "mileage"
	colMpgCity     = "mpgcity"
	colMpgHwy      = "mpghwy"
)

// columnAliases header matnidagi kalit so'zlar, tartib muhim (aniqrog'i birinchi)
var columnAliases = []struct {
	key      string
	keywords []string
}{
	{colID, []string{"id", "stock no", "stock #", "vin"}},
	{colZeroToSixty, []string{"0-60", "0 to 60", "zero to sixty", "zerotosixty", "acceleration"}},
	{colTopSpeed, []string{"top speed", "topspeed", "max speed", "mph"}},
	{colMpgCity, []string{"mpg city", "city mpg", "mpgcity"}},
	{colMpgHwy, []string{"mpg hwy", "hwy mpg", "highway", "mpghwy"}},
	{colHorsepower, []string{"horsepower", "hp", "power"}},
	{colMileage, []string{"mileage", "miles", "odometer"}},
	{colEngine, []string{"engine", "motor"}},
	{colMake, []string{"make", "brand", "manufacturer"}},
	{colModel, []string{"model"}},
	{colYear, []string{"year"}},
	{colPrice, []string{"price", "cost", "usd", "$"}},
	{colCategory, []string{"category", "type", "class"}},
	{colDescription, []string{"description", "details", "notes"}},
	{colImages, []string{"image", "photo", "picture"}},
	{colFeatures, []string{"feature", "options", "equipment"}},
}

type excelParser struct{}

// NewExcelParser yangi Excel parser yaratish
func NewExcelParser() repository.InventoryImporter {
	return &excelParser{}
}

// ParseVehicles Excel fayldan mashinalarni o'qish
func (e *excelParser) ParseVehicles(ctx context.Context, filePath string) ([]entity.Vehicle, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open excel file: %w", err)
	}
	defer f.Close()

	return e.parseExcelFile(f)
}

// ParseVehiclesFromBytes byte array dan parse qilish
func (e *excelParser) ParseVehiclesFromBytes(ctx context.Context, data []byte, filename string) ([]entity.Vehicle, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open excel from bytes: %w", err)
	}
	defer f.Close()

	logx.Debug().Str("file", filename).Int("bytes", len(data)).Msg("excel o'qilmoqda")
	return e.parseExcelFile(f)
}

// parseExcelFile birinchi sheet, birinchi qator header
func (e *excelParser) parseExcelFile(f *excelize.File) ([]entity.Vehicle, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("excel file has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %w", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("excel file has no data rows")
	}

	columns := mapColumns(rows[0])
	logx.Debug().Interface("columns", columns).Int("rows", len(rows)-1).Msg("excel ustunlari aniqlandi")

	if _, ok := columns[colMake]; !ok {
		return nil, fmt.Errorf("excel header has no make column")
	}
	if _, ok := columns[colModel]; !ok {
		return nil, fmt.Errorf("excel header has no model column")
	}

	var vehicles []entity.Vehicle
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		v, err := parseRow(row, columns)
		if err != nil {
			logx.Warn().Int("row", i+1).Err(err).Msg("qator o'tkazib yuborildi")
			continue
		}
		vehicles = append(vehicles, v)
	}

	logx.Info().Int("vehicles", len(vehicles)).Msg("excel dan mashinalar o'qildi")

	if len(vehicles) == 0 {
		return nil, fmt.Errorf("no valid vehicles found in excel file (parsed %d rows, but all were invalid)", len(rows)-1)
	}
	return vehicles, nil
}

func parseRow(row []string, columns map[string]int) (entity.Vehicle, error) {
	cell := func(key string) string {
		idx, ok := columns[key]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	v := entity.Vehicle{
		ID:          cell(colID),
		Make:        cell(colMake),
		Model:       cell(colModel),
		Category:    cell(colCategory),
		Description: cell(colDescription),
		Images:      splitCell(cell(colImages)),
		Features:    splitCell(cell(colFeatures)),
	}
	v.Specs.Engine = cell(colEngine)

	if v.Make == "" || v.Model == "" {
		return entity.Vehicle{}, fmt.Errorf("make and model are required")
	}
	if v.ID == "" {
		v.ID = uuid.New().String()
	}
	if v.Category == "" {
		v.Category = detectCategory(v.Make + " " + v.Model)
	}
	if len(v.Images) == 0 {
		v.Images = []string{""}
	}

	price, err := parseNumber(cell(colPrice))
	if err != nil || price <= 0 {
		return entity.Vehicle{}, fmt.Errorf("invalid price %q", cell(colPrice))
	}
	v.Price = int(price)

	ints := []struct {
		key string
		dst *int
	}{
		{colYear, &v.Year},
		{colHorsepower, &v.Specs.Horsepower},
		{colTopSpeed, &v.Specs.TopSpeedMph},
		{colMileage, &v.Specs.Mileage},
	}
	for _, f := range ints {
		if raw := cell(f.key); raw != "" {
			n, err := parseNumber(raw)
			if err != nil {
				return entity.Vehicle{}, fmt.Errorf("invalid %s %q", f.key, raw)
			}
			*f.dst = int(n)
		}
	}

	if raw := cell(colZeroToSixty); raw != "" {
		secs, err := parseNumber(raw)
		if err != nil {
			return entity.Vehicle{}, fmt.Errorf("invalid 0-60 %q", raw)
		}
		v.Specs.ZeroToSixty = secs
	}
	if raw := cell(colMpgCity); raw != "" {
		if mpg, err := parseNumber(raw); err == nil {
			v.Specs.MpgCity = entity.Float64(mpg)
		}
	}
	if raw := cell(colMpgHwy); raw != "" {
		if mpg, err := parseNumber(raw); err == nil {
			v.Specs.MpgHwy = entity.Float64(mpg)
		}
	}

	return v, nil
}

// mapColumns header qatoridan column mapping yaratish
func mapColumns(header []string) map[string]int {
	columns := make(map[string]int)
	for i, col := range header {
		name := strings.ToLower(strings.TrimSpace(col))
		if name == "" {
			continue
		}
		for _, alias := range columnAliases {
			if _, taken := columns[alias.key]; taken {
				continue
			}
			if matchesAlias(name, alias.keywords) {
				columns[alias.key] = i
				break
			}
		}
	}
	return columns
}

// matchesAlias qisqa kalitlar ("id", "hp") faqat to'liq so'z sifatida mos keladi
func matchesAlias(name string, keywords []string) bool {
	for _, kw := range keywords {
		if len(kw) <= 2 {
			for _, word := range strings.FieldsFunc(name, func(r rune) bool { return r == ' ' || r == '(' || r == ')' || r == '_' }) {
				if word == kw {
					return true
				}
			}
			continue
		}
		if strings.Contains(name, kw) {
			return true
		}
	}
	return false
}

// isEmptyRow qator bo'sh yoki yo'qligini tekshirish
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// splitCell "a; b" yoki "a, b" ko'rinishidagi katakni ro'yxatga aylantirish
func splitCell(value string) []string {
	if value == "" {
		return nil
	}
	sep := ","
	if strings.Contains(value, ";") || strings.Contains(value, "\n") {
		sep = ";"
		value = strings.ReplaceAll(value, "\n", ";")
	}
	var out []string
	for _, p := range strings.Split(value, sep) {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// parseNumber "$85,000", "1 540 mi", "6.5s" kabi qiymatlarni o'qish
func parseNumber(raw string) (float64, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return 0, fmt.Errorf("empty value")
	}

	for _, junk := range []string{",", " ", "$", "usd", "miles", "mi", "mph", "hp", "sec", "s"} {
		s = strings.ReplaceAll(s, junk, "")
	}

	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number format: %s", raw)
	}
	return n, nil
}

// detectCategory kategoriya ustuni bo'sh bo'lsa marka/modeldan taxmin qilish
func detectCategory(name string) string {
	lower := strings.ToLower(name)

	switch {
	case containsAny(lower, "bronco", "defender", "land rover", "blazer", "land cruiser", "scout", "wagoneer", "jeep", "fj40", "g-wagen"):
		return "Classic 4x4"
	case containsAny(lower, "mustang", "camaro", "chevelle", "charger", "challenger", "gto", "road runner", "cuda", "corvette"):
		return "Muscle"
	case containsAny(lower, "porsche", "911", "alfa", "jaguar", "datsun", "triumph", "mg ", "lotus"):
		return "Vintage Sport"
	case containsAny(lower, "pickup", "truck", "f-100", "f100", "c10", "hilux"):
		return "Truck"
	case containsAny(lower, "wagon", "estate", "country squire", "vista cruiser"):
		return "Wagon"
	}
	return "Modern Classic"
}

func containsAny(str string, keywords ...string) bool {
	for _, keyword := range keywords {
		if strings.Contains(str, keyword) {
			return true
		}
	}
	return false
}
