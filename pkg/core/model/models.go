package model

// Priority is the urgency label of a coverage requirement
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// Weight returns the numeric gap priority for the label (low=1 ... critical=4).
// Unknown labels rank with low.
func (p Priority) Weight() int {
	switch p {
	case PriorityCritical:
		return 4
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	default:
		return 1
	}
}

func (p Priority) IsValid() bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh || p == PriorityCritical
}

// Coordinates is a geographic point
type Coordinates struct {
	Lat float64 `yaml:"lat" json:"lat" validate:"min=-90,max=90"`
	Lng float64 `yaml:"lng" json:"lng" validate:"min=-180,max=180"`
}

// OperatingHours are the opening hours for one weekday (HH:MM)
type OperatingHours struct {
	Open   string `yaml:"open" json:"open"`
	Close  string `yaml:"close" json:"close"`
	Closed bool   `yaml:"closed,omitempty" json:"closed,omitempty"`
}

// Location is a facility that staff can be assigned to
type Location struct {
	ID           string                    `yaml:"id" json:"id" validate:"required"`
	Name         string                    `yaml:"name" json:"name"`
	Address      string                    `yaml:"address" json:"address"`
	Coordinates  Coordinates               `yaml:"coordinates" json:"coordinates"`
	Timezone     string                    `yaml:"timezone" json:"timezone"`
	Hours        map[string]OperatingHours `yaml:"hours,omitempty" json:"hours,omitempty"` // keyed by lower-case weekday
	FacilityType string                    `yaml:"facilityType" json:"facility_type"`
	Capacity     int                       `yaml:"capacity" json:"capacity" validate:"min=0"`
}

// TravelRoute is a precomputed, directional route between two locations
type TravelRoute struct {
	FromLocationID    string  `yaml:"from" json:"from_location_id" validate:"required"`
	ToLocationID      string  `yaml:"to" json:"to_location_id" validate:"required"`
	DistanceMiles     float64 `yaml:"distanceMiles" json:"distance_miles" validate:"min=0"`
	TravelTimeMinutes int     `yaml:"travelTimeMinutes" json:"travel_time_minutes" validate:"min=0"`
	EstimatedCost     float64 `yaml:"estimatedCost" json:"estimated_cost" validate:"min=0"`
	Reliability       float64 `yaml:"reliability" json:"reliability" validate:"min=0,max=1"`
	PreferredMode     string  `yaml:"preferredMode" json:"preferred_mode"`
}

// RouteKey identifies a directional route
type RouteKey struct {
	From string
	To   string
}

func (r TravelRoute) Key() RouteKey {
	return RouteKey{From: r.FromLocationID, To: r.ToLocationID}
}

// StaffPreferences are the travel preferences recorded for a staff member.
// Zero numeric values mean "not set" and are resolved to defaults by ResolvePreferences.
type StaffPreferences struct {
	StaffMemberID          string   `yaml:"staffMemberID" json:"staff_member_id" validate:"required"`
	PreferredLocations     []string `yaml:"preferredLocations,omitempty" json:"preferred_locations"`
	MaxTravelTimeMinutes   int      `yaml:"maxTravelTimeMinutes,omitempty" json:"max_travel_time_minutes" validate:"min=0"`
	MaxTravelDistanceMiles float64  `yaml:"maxTravelDistanceMiles,omitempty" json:"max_travel_distance_miles" validate:"min=0"`
	CompensationRequired   bool     `yaml:"compensationRequired,omitempty" json:"compensation_required"`
	MaxWeeklyCrossLocation int      `yaml:"maxWeeklyCrossLocation,omitempty" json:"max_weekly_cross_location" validate:"min=0"`
	ExcludedLocations      []string `yaml:"excludedLocations,omitempty" json:"excluded_locations"`
}

// CoverageRequirement is a staffing demand for a location, date and time window
type CoverageRequirement struct {
	ID             string   `json:"id"`
	LocationID     string   `json:"location_id" validate:"required"`
	Date           string   `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime      string   `json:"start_time" validate:"required,datetime=15:04"`
	EndTime        string   `json:"end_time" validate:"required,datetime=15:04"`
	RequiredRole   string   `json:"required_role"`
	RequiredSkills []string `json:"required_skills"`
	RequiredCount  int      `json:"required_count" validate:"min=0"`
	Priority       Priority `json:"priority" validate:"omitempty,oneof=low medium high critical"`
}

// StaffMember is an active member of a location's roster
type StaffMember struct {
	ID                string   `json:"id" validate:"required"`
	Name              string   `json:"name"`
	Role              string   `json:"role"`
	Skills            []string `json:"skills"`
	PrimaryLocationID string   `json:"primary_location_id"`
}

// AvailabilitySlot is a window in which a staff member can be scheduled
type AvailabilitySlot struct {
	StaffMemberID         string `json:"staff_member_id"`
	Date                  string `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime             string `json:"start_time" validate:"required,datetime=15:04"`
	EndTime               string `json:"end_time" validate:"required,datetime=15:04"`
	AvailableForExtraWork bool   `json:"available_for_extra_work"`
}

// DateRange is an inclusive range of YYYY-MM-DD dates
type DateRange struct {
	Start string
	End   string
}

// Contains reports whether date falls within the range. ISO dates compare lexically.
func (r DateRange) Contains(date string) bool {
	return date >= r.Start && date <= r.End
}
