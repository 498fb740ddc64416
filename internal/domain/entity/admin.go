package entity

import "time"

// AdminCredential ruxsat etilgan admin login/parol juftligi
type AdminCredential struct {
	Username string
	Password string
}

// AdminSession admin sessiya
type AdminSession struct {
	UserID       int64
	Username     string
	IsAdmin      bool
	LoginTime    time.Time
	LastActivity time.Time
}

// AdminAction admin harakatlari
type AdminAction struct {
	ID        string
	UserID    int64
	Action    string // "login", "save_vehicle", "delete_category", "import_inventory"
	Details   string
	Timestamp time.Time
}
