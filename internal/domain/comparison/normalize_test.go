package comparison

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/rocket-motor-showroom/internal/domain/entity"
)

func TestNormalizeSpeed(t *testing.T) {
	tests := []struct {
		name string
		mph  float64
		want float64
	}{
		{"Zero", 0, 0},
		{"Half", 80, 50},
		{"Ceiling", 160, 100},
		{"AboveCeiling", 200, 100},
		{"Negative", -20, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, NormalizeSpeed(tt.mph), 1e-9)
		})
	}
}

func TestNormalizeSpeed_MonotonicAndBounded(t *testing.T) {
	prev := NormalizeSpeed(0)
	for mph := 1.0; mph <= 400; mph++ {
		got := NormalizeSpeed(mph)
		require.GreaterOrEqual(t, got, prev, "mph=%v", mph)
		require.GreaterOrEqual(t, got, 0.0)
		require.LessOrEqual(t, got, 100.0)
		if mph >= SpeedCeilingMph {
			require.Equal(t, 100.0, got, "mph=%v", mph)
		} else {
			require.Less(t, got, 100.0, "mph=%v", mph)
		}
		prev = got
	}
}

func TestNormalizeHorsepower(t *testing.T) {
	assert.InDelta(t, 41.0, NormalizeHorsepower(205), 1e-9)
	assert.Equal(t, 100.0, NormalizeHorsepower(500))
	assert.Equal(t, 100.0, NormalizeHorsepower(760))
}

func TestNormalizeAcceleration(t *testing.T) {
	assert.Equal(t, 100.0, NormalizeAcceleration(3))
	assert.Equal(t, 0.0, NormalizeAcceleration(11))
	assert.InDelta(t, 50.0, NormalizeAcceleration(7), 1e-9)

	// chegaradan tashqarida qiymatlar chegaraga qisiladi
	assert.Equal(t, 100.0, NormalizeAcceleration(2.1))
	assert.Equal(t, 0.0, NormalizeAcceleration(13))

	prev := NormalizeAcceleration(0)
	for sec := 0.1; sec <= 20; sec += 0.1 {
		got := NormalizeAcceleration(sec)
		require.LessOrEqual(t, got, prev, "sec=%v", sec)
		require.GreaterOrEqual(t, got, 0.0)
		require.LessOrEqual(t, got, 100.0)
		prev = got
	}
}

func TestNormalizeEconomy(t *testing.T) {
	assert.InDelta(t, 100.0/3, NormalizeEconomy(nil), 1e-9)
	assert.InDelta(t, 20.0, NormalizeEconomy(entity.Float64(12)), 1e-9)
	assert.Equal(t, 100.0, NormalizeEconomy(entity.Float64(75)))
}

func TestCompare_AxesOrderAndSpeedScenario(t *testing.T) {
	a := entity.SpecSet{TopSpeedMph: 200, Horsepower: 250, ZeroToSixty: 5, MpgCity: entity.Float64(30)}
	b := entity.SpecSet{TopSpeedMph: 80, Horsepower: 125, ZeroToSixty: 11}

	axes := Compare(a, b)
	require.Len(t, axes, 4)

	names := []string{axes[0].Axis, axes[1].Axis, axes[2].Axis, axes[3].Axis}
	assert.Equal(t, []string{AxisSpeed, AxisPower, AxisAccel, AxisEconomy}, names)

	assert.Equal(t, 100.0, axes[0].ScoreA)
	assert.Equal(t, 50.0, axes[0].ScoreB)
	assert.InDelta(t, 50.0, axes[1].ScoreA, 1e-9)
	assert.InDelta(t, 25.0, axes[1].ScoreB, 1e-9)
	assert.InDelta(t, 75.0, axes[2].ScoreA, 1e-9)
	assert.Equal(t, 0.0, axes[2].ScoreB)
	assert.InDelta(t, 50.0, axes[3].ScoreA, 1e-9)
	assert.InDelta(t, 100.0/3, axes[3].ScoreB, 1e-9)

	for _, axis := range axes {
		assert.Equal(t, FullMark, axis.FullMark)
	}
}

func TestCompare_DoesNotMutateInputs(t *testing.T) {
	mpg := entity.Float64(14)
	a := entity.SpecSet{TopSpeedMph: 90, MpgCity: mpg}
	before := *mpg

	Compare(a, a)

	assert.Equal(t, before, *a.MpgCity)
	assert.Equal(t, 90, a.TopSpeedMph)
}
