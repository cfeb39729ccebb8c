package optimizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acganger/ganger-platform-sub011/pkg/core/model"
)

func TestRegistryInitialize_LastRecordWins(t *testing.T) {
	r := NewRegistry()

	locations := []model.Location{{ID: "X", Name: "first"}, {ID: "Y"}, {ID: "X", Name: "second"}}
	routes := []model.TravelRoute{route("Y", "X", 20, 8), route("Y", "X", 25, 9)}
	prefs := []model.StaffPreferences{
		{StaffMemberID: "a", MaxTravelTimeMinutes: 30},
		{StaffMemberID: "a", MaxTravelTimeMinutes: 45},
	}
	require.NoError(t, r.Initialize(locations, routes, prefs))

	assert.Equal(t, []string{"X", "Y"}, r.LocationIDs())

	location, ok := r.Location("X")
	require.True(t, ok)
	assert.Equal(t, "second", location.Name)

	got, ok := r.Route("Y", "X")
	require.True(t, ok)
	assert.Equal(t, 25, got.TravelTimeMinutes)

	_, ok = r.Route("X", "Y")
	assert.False(t, ok, "routes are directional")

	pref, ok := r.Preferences("a")
	require.True(t, ok)
	assert.Equal(t, 45, pref.MaxTravelTimeMinutes)
}

func TestRegistryInitialize_ReplacesTables(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Initialize(testLocations("X", "Y"), nil, nil))
	require.NoError(t, r.Initialize(testLocations("Z"), nil, nil))

	assert.Equal(t, []string{"Z"}, r.LocationIDs())
	_, ok := r.Location("X")
	assert.False(t, ok)
}

func TestRegistryInitialize_RouteMayReferenceUnknownLocation(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Initialize(testLocations("X"), []model.TravelRoute{route("X", "elsewhere", 10, 4)}, nil))

	_, ok := r.Route("X", "elsewhere")
	assert.True(t, ok)
}

func TestRegistryInitialize_MalformedRecordKeepsPreviousTables(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Initialize(testLocations("X"), nil, nil))

	bad := route("X", "Y", 10, 4)
	bad.Reliability = 1.5
	err := r.Initialize(testLocations("Y"), []model.TravelRoute{route("Y", "X", 10, 4), bad}, nil)

	var configErr *ConfigurationError
	require.ErrorAs(t, err, &configErr)
	assert.Equal(t, "travel route", configErr.Table)
	assert.Equal(t, 1, configErr.Index)

	assert.Equal(t, []string{"X"}, r.LocationIDs())
}

func TestRegistryInitialize_MissingIDs(t *testing.T) {
	r := NewRegistry()

	err := r.Initialize([]model.Location{{Name: "nameless"}}, nil, nil)
	var configErr *ConfigurationError
	require.ErrorAs(t, err, &configErr)
	assert.Equal(t, "location", configErr.Table)

	err = r.Initialize(nil, nil, []model.StaffPreferences{{MaxTravelTimeMinutes: 10}})
	require.ErrorAs(t, err, &configErr)
	assert.Equal(t, "staff preferences", configErr.Table)
}

func TestResolvePreferences(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Initialize(nil, nil, []model.StaffPreferences{
		{
			StaffMemberID:          "set",
			PreferredLocations:     []string{"X"},
			ExcludedLocations:      []string{"Z"},
			MaxTravelTimeMinutes:   90,
			MaxTravelDistanceMiles: 40,
			CompensationRequired:   true,
			MaxWeeklyCrossLocation: 5,
		},
		{StaffMemberID: "low-limit", MaxWeeklyCrossLocation: 1},
	}))
	data := r.snapshot()
	defaults := DefaultPreferenceDefaults()

	t.Run("no record uses defaults", func(t *testing.T) {
		resolved := data.resolvePreferences("unknown", defaults, 3)
		assert.Equal(t, 60, resolved.MaxTravelTimeMinutes)
		assert.Equal(t, 100.0, resolved.MaxTravelDistanceMiles)
		assert.Equal(t, 3, resolved.MaxWeeklyCrossLocation)
		assert.False(t, resolved.CompensationRequired)
		assert.False(t, resolved.IsPreferred("X"))
	})

	t.Run("record overrides defaults", func(t *testing.T) {
		resolved := data.resolvePreferences("set", defaults, 3)
		assert.Equal(t, 90, resolved.MaxTravelTimeMinutes)
		assert.Equal(t, 40.0, resolved.MaxTravelDistanceMiles)
		assert.True(t, resolved.CompensationRequired)
		assert.True(t, resolved.IsPreferred("X"))
		assert.True(t, resolved.IsExcluded("Z"))
		assert.Equal(t, 3, resolved.MaxWeeklyCrossLocation, "constraint caps a looser preference")
	})

	t.Run("tighter weekly preference wins", func(t *testing.T) {
		resolved := data.resolvePreferences("low-limit", defaults, 3)
		assert.Equal(t, 1, resolved.MaxWeeklyCrossLocation)
	})
}
