package entity

// Event salon tadbiri (ko'rgazma, uchrashuv va h.k.)
type Event struct {
	ID          string `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Date        string `json:"date" yaml:"date"` // erkin matn, masalan "Sat, 14 Sep"
	Location    string `json:"location" yaml:"location"`
	Description string `json:"description" yaml:"description"`
	Image       string `json:"image" yaml:"image"`
}
