package usecase

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/yourusername/rocket-motor-showroom/internal/domain/entity"
)

// normalizeField "Top Speed", "top_speed", "topspeed" -> "topspeed"
func normalizeField(field string) string {
	field = strings.ToLower(strings.TrimSpace(field))
	r := strings.NewReplacer(" ", "", "_", "", "-", "")
	return r.Replace(field)
}

// splitList vergul bilan ajratilgan ro'yxat, bo'sh elementlar tashlanadi
func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// appendNonBlank bo'sh elementlarni tashlab value ni qo'shadi
func appendNonBlank(list []string, value string) []string {
	out := make([]string, 0, len(list)+1)
	for _, item := range list {
		if strings.TrimSpace(item) != "" {
			out = append(out, item)
		}
	}
	if value != "" {
		out = append(out, value)
	}
	return out
}

func parseInt(field, value string) (int, error) {
	value = strings.NewReplacer(",", "", "_", "", " ", "", "$", "").Replace(value)
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a whole number", ErrInvalidField, field)
	}
	return n, nil
}

func parseFloat(field, value string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a number", ErrInvalidField, field)
	}
	return f, nil
}

// VehicleFields admin ko'rsatmalarida ko'rsatiladigan maydonlar
var VehicleFields = []string{
	"make", "model", "year", "price", "category", "description", "images", "features",
	"horsepower", "topspeed", "zerotosixty", "engine", "mileage", "mpgcity", "mpghwy",
}

// ApplyVehicleField bitta maydonni matndan o'rnatish. Diapazon tekshirilmaydi.
func ApplyVehicleField(v *entity.Vehicle, field, value string) error {
	value = strings.TrimSpace(value)

	switch normalizeField(field) {
	case "make":
		v.Make = value
	case "model":
		v.Model = value
	case "year":
		n, err := parseInt("year", value)
		if err != nil {
			return err
		}
		v.Year = n
	case "price":
		n, err := parseInt("price", value)
		if err != nil {
			return err
		}
		v.Price = n
	case "category":
		v.Category = value
	case "description", "desc":
		v.Description = value
	case "images":
		v.Images = splitList(value)
	case "image":
		v.Images = appendNonBlank(v.Images, value)
	case "features":
		v.Features = splitList(value)
	case "feature":
		v.Features = appendNonBlank(v.Features, value)
	case "horsepower", "hp":
		n, err := parseInt("horsepower", value)
		if err != nil {
			return err
		}
		v.Specs.Horsepower = n
	case "topspeed", "topspeedmph":
		n, err := parseInt("topSpeed", value)
		if err != nil {
			return err
		}
		v.Specs.TopSpeedMph = n
	case "zerotosixty", "0to60", "accel":
		f, err := parseFloat("zeroToSixty", value)
		if err != nil {
			return err
		}
		v.Specs.ZeroToSixty = f
	case "engine":
		v.Specs.Engine = value
	case "mileage":
		n, err := parseInt("mileage", value)
		if err != nil {
			return err
		}
		v.Specs.Mileage = n
	case "mpgcity":
		p, err := parseOptionalFloat("mpgCity", value)
		if err != nil {
			return err
		}
		v.Specs.MpgCity = p
	case "mpghwy":
		p, err := parseOptionalFloat("mpgHwy", value)
		if err != nil {
			return err
		}
		v.Specs.MpgHwy = p
	default:
		return fmt.Errorf("%w: unknown vehicle field %q", ErrInvalidField, field)
	}
	return nil
}

// parseOptionalFloat bo'sh qiymat yoki "-" maydonni tozalaydi
func parseOptionalFloat(field, value string) (*float64, error) {
	if value == "" || value == "-" {
		return nil, nil
	}
	f, err := parseFloat(field, value)
	if err != nil {
		return nil, err
	}
	return entity.Float64(f), nil
}

// EventFields tadbir maydonlari
var EventFields = []string{"title", "date", "location", "description", "image"}

// ApplyEventField tadbir maydonini o'rnatish
func ApplyEventField(e *entity.Event, field, value string) error {
	value = strings.TrimSpace(value)

	switch normalizeField(field) {
	case "title":
		e.Title = value
	case "date":
		e.Date = value
	case "location":
		e.Location = value
	case "description", "desc":
		e.Description = value
	case "image":
		e.Image = value
	default:
		return fmt.Errorf("%w: unknown event field %q", ErrInvalidField, field)
	}
	return nil
}

// ContentFields sayt kontenti maydonlari
var ContentFields = []string{
	"hero.title", "hero.subtitle", "hero.estyear",
	"services.title", "services.description",
	"contact.address", "contact.phone1", "contact.phone2", "contact.email",
	"contact.hoursweek", "contact.hourssat",
	"slide.add", "slide.remove", "slide.<id>.title|subtitle|image",
}

// ApplyContentField kontent maydonini o'rnatish. Slaydlar uchun:
// "slide.add" qiymati "image | title | subtitle", "slide.remove" qiymati slayd ID si,
// "slide.<id>.title" kabi maydonlar mavjud slaydni tahrirlaydi.
func ApplyContentField(c *entity.SiteContent, field, value string) error {
	value = strings.TrimSpace(value)
	trimmed := strings.TrimSpace(field)
	key := strings.ToLower(trimmed)

	// slayd ID si katta-kichik harfni saqlaydi
	if strings.HasPrefix(key, "slide.") {
		return applySlideField(c, trimmed[len("slide."):], value)
	}

	switch normalizeField(key) {
	case "hero.title":
		c.Hero.Title = value
	case "hero.subtitle":
		c.Hero.Subtitle = value
	case "hero.estyear":
		c.Hero.EstYear = value
	case "services.title":
		c.Services.Title = value
	case "services.description":
		c.Services.Description = value
	case "contact.address":
		c.Contact.Address = value
	case "contact.phone1":
		c.Contact.Phone1 = value
	case "contact.phone2":
		c.Contact.Phone2 = value
	case "contact.email":
		c.Contact.Email = value
	case "contact.hoursweek", "contact.openinghoursweek":
		c.Contact.OpeningHoursWeek = value
	case "contact.hourssat", "contact.openinghourssat":
		c.Contact.OpeningHoursSat = value
	default:
		return fmt.Errorf("%w: unknown content field %q", ErrInvalidField, field)
	}
	return nil
}

func applySlideField(c *entity.SiteContent, rest, value string) error {
	switch strings.ToLower(rest) {
	case "add":
		parts := strings.Split(value, "|")
		slide := entity.HeroSlide{ID: uuid.NewString()}
		if len(parts) > 0 {
			slide.Image = strings.TrimSpace(parts[0])
		}
		if len(parts) > 1 {
			slide.Title = strings.TrimSpace(parts[1])
		}
		if len(parts) > 2 {
			slide.Subtitle = strings.TrimSpace(parts[2])
		}
		if slide.Image == "" {
			return fmt.Errorf("%w: slide image is required", ErrInvalidField)
		}
		c.Hero.Slides = append(c.Hero.Slides, slide)
		return nil
	case "remove":
		next, ok := removeByID(c.Hero.Slides, value, slideID)
		if !ok {
			return fmt.Errorf("%w: %s", ErrSlideNotFound, value)
		}
		c.Hero.Slides = next
		return nil
	}

	dot := strings.LastIndex(rest, ".")
	if dot <= 0 {
		return fmt.Errorf("%w: unknown slide field %q", ErrInvalidField, rest)
	}
	id, attr := rest[:dot], strings.ToLower(rest[dot+1:])

	i := indexByID(c.Hero.Slides, id, slideID)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrSlideNotFound, id)
	}

	slides := append([]entity.HeroSlide(nil), c.Hero.Slides...)
	switch attr {
	case "title":
		slides[i].Title = value
	case "subtitle":
		slides[i].Subtitle = value
	case "image":
		slides[i].Image = value
	default:
		return fmt.Errorf("%w: unknown slide field %q", ErrInvalidField, attr)
	}
	c.Hero.Slides = slides
	return nil
}

func slideID(s entity.HeroSlide) string { return s.ID }
