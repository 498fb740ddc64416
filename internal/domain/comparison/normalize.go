// Package comparison ikki mashinaning texnik ko'rsatkichlarini radar
// diagramma uchun 0..100 oralig'idagi ballarga o'tkazadi.
package comparison

import (
	"math"

	"github.com/yourusername/rocket-motor-showroom/internal/domain/entity"
)

// Kalibrlash konstantalari. Odatdagi klassik mashinalar diagrammaning
// o'rta qismiga tushishi uchun tanlangan.
const (
	FullMark = 100.0

	SpeedCeilingMph   = 160.0
	HorsepowerCeiling = 500.0
	AccelBestSeconds  = 3.0
	AccelWorstSeconds = 11.0
	EconomyCeilingMpg = 60.0
	DefaultMpgCity    = 20.0
)

// O'qlar nomlari, diagrammadagi tartibda
const (
	AxisSpeed   = "Speed"
	AxisPower   = "Power"
	AxisAccel   = "Accel"
	AxisEconomy = "Economy"
)

// NormalizeSpeed maksimal tezlik, 160 mph va undan yuqori = 100
func NormalizeSpeed(topSpeedMph float64) float64 {
	return clamp(topSpeedMph / SpeedCeilingMph * FullMark)
}

// NormalizeHorsepower ot kuchi, 500 hp va undan yuqori = 100
func NormalizeHorsepower(hp float64) float64 {
	return clamp(hp / HorsepowerCeiling * FullMark)
}

// NormalizeAcceleration 0-60 vaqti, teskari shkala: 3s = 100, 11s = 0
func NormalizeAcceleration(seconds float64) float64 {
	return clamp((AccelWorstSeconds - seconds) / (AccelWorstSeconds - AccelBestSeconds) * FullMark)
}

// NormalizeEconomy shahar sarfi (mpg), nil bo'lsa 20 deb olinadi
func NormalizeEconomy(mpgCity *float64) float64 {
	mpg := DefaultMpgCity
	if mpgCity != nil {
		mpg = *mpgCity
	}
	return clamp(mpg / EconomyCeilingMpg * FullMark)
}

// Compare ikki SpecSet uchun to'rtta o'q: Speed, Power, Accel, Economy
func Compare(a, b entity.SpecSet) []entity.AxisScore {
	return []entity.AxisScore{
		{
			Axis:     AxisSpeed,
			ScoreA:   NormalizeSpeed(float64(a.TopSpeedMph)),
			ScoreB:   NormalizeSpeed(float64(b.TopSpeedMph)),
			FullMark: FullMark,
		},
		{
			Axis:     AxisPower,
			ScoreA:   NormalizeHorsepower(float64(a.Horsepower)),
			ScoreB:   NormalizeHorsepower(float64(b.Horsepower)),
			FullMark: FullMark,
		},
		{
			Axis:     AxisAccel,
			ScoreA:   NormalizeAcceleration(a.ZeroToSixty),
			ScoreB:   NormalizeAcceleration(b.ZeroToSixty),
			FullMark: FullMark,
		},
		{
			Axis:     AxisEconomy,
			ScoreA:   NormalizeEconomy(a.MpgCity),
			ScoreB:   NormalizeEconomy(b.MpgCity),
			FullMark: FullMark,
		},
	}
}

func clamp(score float64) float64 {
	return math.Max(0, math.Min(score, FullMark))
}
