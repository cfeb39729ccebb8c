package optimizer

import (
	"slices"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/acganger/ganger-platform-sub011/pkg/core/model"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Registry holds the reference data for optimization runs: locations, travel routes
// and staff preferences. Tables are replaced wholesale by Initialize and never mutated
// afterwards, so a run works from a consistent snapshot.
type Registry struct {
	mu   sync.RWMutex
	data *registryData
}

type registryData struct {
	locations     map[string]model.Location
	locationOrder []string
	routes        map[model.RouteKey]model.TravelRoute
	preferences   map[string]model.StaffPreferences
}

// NewRegistry returns an empty registry
func NewRegistry() *Registry {
	return &Registry{data: emptyRegistryData()}
}

func emptyRegistryData() *registryData {
	return &registryData{
		locations:   map[string]model.Location{},
		routes:      map[model.RouteKey]model.TravelRoute{},
		preferences: map[string]model.StaffPreferences{},
	}
}

// Initialize loads the three lookup tables, replacing any previous contents.
// Duplicate keys resolve to the last record. Tables are not cross-checked, so a route
// may reference a location that is not loaded. A malformed record returns a
// ConfigurationError and leaves the previous tables in place.
func (r *Registry) Initialize(locations []model.Location, routes []model.TravelRoute, preferences []model.StaffPreferences) error {
	data := emptyRegistryData()

	for i, location := range locations {
		if err := validate.Struct(location); err != nil {
			return &ConfigurationError{Table: "location", Index: i, Err: err}
		}
		if _, exists := data.locations[location.ID]; !exists {
			data.locationOrder = append(data.locationOrder, location.ID)
		}
		data.locations[location.ID] = location
	}

	for i, route := range routes {
		if err := validate.Struct(route); err != nil {
			return &ConfigurationError{Table: "travel route", Index: i, Err: err}
		}
		data.routes[route.Key()] = route
	}

	for i, prefs := range preferences {
		if err := validate.Struct(prefs); err != nil {
			return &ConfigurationError{Table: "staff preferences", Index: i, Err: err}
		}
		data.preferences[prefs.StaffMemberID] = prefs
	}

	r.mu.Lock()
	r.data = data
	r.mu.Unlock()

	return nil
}

func (r *Registry) snapshot() *registryData {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.data
}

// LocationIDs returns location ids in load order
func (r *Registry) LocationIDs() []string {
	return slices.Clone(r.snapshot().locationOrder)
}

// Location looks up a location by id
func (r *Registry) Location(id string) (model.Location, bool) {
	location, ok := r.snapshot().locations[id]
	return location, ok
}

// Route looks up the directional route between two locations
func (r *Registry) Route(from, to string) (model.TravelRoute, bool) {
	route, ok := r.snapshot().routes[model.RouteKey{From: from, To: to}]
	return route, ok
}

// Preferences looks up the raw preference record for a staff member
func (r *Registry) Preferences(staffMemberID string) (model.StaffPreferences, bool) {
	prefs, ok := r.snapshot().preferences[staffMemberID]
	return prefs, ok
}

// ResolvedPreferences are a staff member's travel preferences with every default applied
type ResolvedPreferences struct {
	StaffMemberID          string
	PreferredLocations     map[string]bool
	ExcludedLocations      map[string]bool
	MaxTravelTimeMinutes   int
	MaxTravelDistanceMiles float64
	CompensationRequired   bool
	MaxWeeklyCrossLocation int
}

// IsPreferred reports whether the location is one the staff member prefers
func (p ResolvedPreferences) IsPreferred(locationID string) bool {
	return p.PreferredLocations[locationID]
}

// IsExcluded reports whether the staff member refuses to work at the location
func (p ResolvedPreferences) IsExcluded(locationID string) bool {
	return p.ExcludedLocations[locationID]
}

// resolvePreferences fills unset preference fields from the defaults. The weekly
// limit falls back to the run's constraint.
func (d *registryData) resolvePreferences(staffMemberID string, defaults PreferenceDefaults, weeklyLimit int) ResolvedPreferences {
	resolved := ResolvedPreferences{
		StaffMemberID:          staffMemberID,
		PreferredLocations:     map[string]bool{},
		ExcludedLocations:      map[string]bool{},
		MaxTravelTimeMinutes:   defaults.MaxTravelTimeMinutes,
		MaxTravelDistanceMiles: defaults.MaxTravelDistanceMiles,
		MaxWeeklyCrossLocation: weeklyLimit,
	}

	prefs, ok := d.preferences[staffMemberID]
	if !ok {
		return resolved
	}

	for _, id := range prefs.PreferredLocations {
		resolved.PreferredLocations[id] = true
	}
	for _, id := range prefs.ExcludedLocations {
		resolved.ExcludedLocations[id] = true
	}
	if prefs.MaxTravelTimeMinutes > 0 {
		resolved.MaxTravelTimeMinutes = prefs.MaxTravelTimeMinutes
	}
	if prefs.MaxTravelDistanceMiles > 0 {
		resolved.MaxTravelDistanceMiles = prefs.MaxTravelDistanceMiles
	}
	if prefs.MaxWeeklyCrossLocation > 0 {
		resolved.MaxWeeklyCrossLocation = min(prefs.MaxWeeklyCrossLocation, weeklyLimit)
	}
	resolved.CompensationRequired = prefs.CompensationRequired

	return resolved
}
