package entity

import "strconv"

// AllCategory filtrlashda barcha mashinalarni qaytaruvchi maxsus kategoriya
const AllCategory = "All"

// SpecSet mashinaning texnik ko'rsatkichlari
type SpecSet struct {
	Horsepower  int      `json:"horsepower" yaml:"horsepower"`
	TopSpeedMph int      `json:"topSpeedMph" yaml:"topSpeedMph"`
	ZeroToSixty float64  `json:"zeroToSixty" yaml:"zeroToSixty"` // sekund
	Engine      string   `json:"engine" yaml:"engine"`
	Mileage     int      `json:"mileage" yaml:"mileage"`
	MpgCity     *float64 `json:"mpgCity,omitempty" yaml:"mpgCity,omitempty"`
	MpgHwy      *float64 `json:"mpgHwy,omitempty" yaml:"mpgHwy,omitempty"`
}

// Vehicle salondagi bitta mashina e'loni
type Vehicle struct {
	ID          string   `json:"id" yaml:"id"`
	Make        string   `json:"make" yaml:"make"`
	Model       string   `json:"model" yaml:"model"`
	Year        int      `json:"year" yaml:"year"`
	Price       int      `json:"price" yaml:"price"`
	Category    string   `json:"category" yaml:"category"` // kategoriya nomi, bog'lanish majburiy emas
	Images      []string `json:"images" yaml:"images"`
	Description string   `json:"description" yaml:"description"`
	Specs       SpecSet  `json:"specs" yaml:"specs"`
	Features    []string `json:"features" yaml:"features"`
}

// Title "1974 Ford Bronco Ranger" ko'rinishidagi sarlavha
func (v Vehicle) Title() string {
	return strconv.Itoa(v.Year) + " " + v.Make + " " + v.Model
}

// Clone slice va pointerlarni ham nusxalaydi
func (v Vehicle) Clone() Vehicle {
	out := v
	out.Images = append([]string(nil), v.Images...)
	out.Features = append([]string(nil), v.Features...)
	if v.Specs.MpgCity != nil {
		mpg := *v.Specs.MpgCity
		out.Specs.MpgCity = &mpg
	}
	if v.Specs.MpgHwy != nil {
		mpg := *v.Specs.MpgHwy
		out.Specs.MpgHwy = &mpg
	}
	return out
}

// Float64 optional maydonlar uchun yordamchi
func Float64(v float64) *float64 {
	return &v
}
