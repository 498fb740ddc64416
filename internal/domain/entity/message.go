package entity

import "time"

// Message konsyerj bilan suhbatdagi bitta savol-javob
type Message struct {
	ID        string
	UserID    int64
	Username  string
	Text      string
	Response  string
	Timestamp time.Time

	// VehicleIDs savolga kontekst sifatida berilgan mashinalar
	VehicleIDs []string
}

// Clone slayslarni nusxalaydi
func (m Message) Clone() Message {
	m.VehicleIDs = append([]string(nil), m.VehicleIDs...)
	return m
}
