package entity

// AxisScore radar diagrammaning bitta o'qi bo'yicha ikki mashina bali
type AxisScore struct {
	Axis     string  `json:"axis"`
	ScoreA   float64 `json:"scoreA"`
	ScoreB   float64 `json:"scoreB"`
	FullMark float64 `json:"fullMark"`
}

// Comparison ikki mashinani solishtirish natijasi
type Comparison struct {
	VehicleA Vehicle     `json:"vehicleA"`
	VehicleB Vehicle     `json:"vehicleB"`
	Axes     []AxisScore `json:"axes"`
}
