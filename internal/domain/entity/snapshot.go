package entity

import "time"

// SnapshotVersion saqlanayotgan snapshot formatining versiyasi
const SnapshotVersion = 1

// Collection saqlanadigan kolleksiya nomi
type Collection string

const (
	CollectionVehicles   Collection = "vehicles"
	CollectionCategories Collection = "categories"
	CollectionContent    Collection = "content"
	CollectionEvents     Collection = "events"
)

// Collections barcha kolleksiyalar, yuklash tartibida
var Collections = []Collection{
	CollectionVehicles,
	CollectionCategories,
	CollectionContent,
	CollectionEvents,
}

// Snapshot bitta kolleksiyaning to'liq saqlangan holati
type Snapshot struct {
	Collection Collection `json:"collection"`
	Version    int        `json:"version"`
	Payload    []byte     `json:"payload"` // JSON
	SavedAt    time.Time  `json:"savedAt"`
}
