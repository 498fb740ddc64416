package entity

// HeroSlide karusel slaydi, tartib ko'rsatish ketma-ketligini belgilaydi
type HeroSlide struct {
	ID       string `json:"id" yaml:"id"`
	Image    string `json:"image" yaml:"image"`
	Title    string `json:"title" yaml:"title"`
	Subtitle string `json:"subtitle" yaml:"subtitle"`
}

// HeroContent bosh sahifa matnlari
type HeroContent struct {
	Title    string      `json:"title" yaml:"title"`
	Subtitle string      `json:"subtitle" yaml:"subtitle"`
	EstYear  string      `json:"estYear" yaml:"estYear"`
	Slides   []HeroSlide `json:"slides,omitempty" yaml:"slides,omitempty"`
}

// ServicesContent servis bo'limi matni
type ServicesContent struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
}

// ContactInfo aloqa ma'lumotlari
type ContactInfo struct {
	Address          string `json:"address" yaml:"address"`
	Phone1           string `json:"phone1" yaml:"phone1"`
	Phone2           string `json:"phone2" yaml:"phone2"`
	Email            string `json:"email" yaml:"email"`
	OpeningHoursWeek string `json:"openingHoursWeek" yaml:"openingHoursWeek"`
	OpeningHoursSat  string `json:"openingHoursSat" yaml:"openingHoursSat"`
}

// SiteContent sayt kontenti (yagona obyekt, to'liq almashtiriladi)
type SiteContent struct {
	Hero     HeroContent     `json:"hero" yaml:"hero"`
	Services ServicesContent `json:"services" yaml:"services"`
	Contact  ContactInfo     `json:"contact" yaml:"contact"`
}

// Clone slaydlar ro'yxatini ham nusxalaydi
func (c SiteContent) Clone() SiteContent {
	out := c
	if c.Hero.Slides != nil {
		out.Hero.Slides = append([]HeroSlide(nil), c.Hero.Slides...)
	}
	return out
}
