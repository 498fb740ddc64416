package defaults

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	ds, err := Load()
	require.NoError(t, err)

	assert.Len(t, ds.Vehicles, 6)
	assert.Equal(t, []string{"Classic 4x4", "Muscle", "Vintage Sport", "Modern Classic", "Truck", "Wagon"}, ds.Categories)
	assert.Equal(t, "Driven by Passion.", ds.Content.Hero.Title)
	assert.Empty(t, ds.Content.Hero.Slides)
	assert.NotEmpty(t, ds.Events)

	ids := make(map[string]bool)
	for _, v := range ds.Vehicles {
		assert.False(t, ids[v.ID], "duplicate id %s", v.ID)
		ids[v.ID] = true
		assert.NotEmpty(t, v.Images, "vehicle %s has no images", v.ID)
		require.NotNil(t, v.Specs.MpgCity, "vehicle %s", v.ID)
	}

	bronco := ds.Vehicles[0]
	assert.Equal(t, "Bronco Ranger", bronco.Model)
	assert.Equal(t, 90, bronco.Specs.TopSpeedMph)
	assert.Equal(t, 9.5, bronco.Specs.ZeroToSixty)
	assert.Equal(t, 12.0, *bronco.Specs.MpgCity)
}

func TestLoad_ReturnsIndependentCopies(t *testing.T) {
	a := MustLoad()
	b := MustLoad()
	a.Vehicles[0].Make = "Changed"
	assert.Equal(t, "Ford", b.Vehicles[0].Make)
}
