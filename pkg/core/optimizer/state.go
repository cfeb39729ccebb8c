package optimizer

import (
	"github.com/acganger/ganger-platform-sub011/pkg/core/model"
)

// StaffCandidate is a staff member with availability in the optimization range
type StaffCandidate struct {
	Member            model.StaffMember
	PrimaryLocationID string

	// Availability contains the available-for-extra-work windows in range
	Availability []model.Window

	Preferences ResolvedPreferences

	// TravelOptions are the viable routes from the primary location, in location order
	TravelOptions []model.TravelRoute
}

// HasSkills reports whether the candidate holds every required skill
func (c *StaffCandidate) HasSkills(required []string) bool {
	for _, skill := range required {
		found := false
		for _, held := range c.Member.Skills {
			if held == skill {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// IsAvailableFor reports whether one availability window fully contains the given window
func (c *StaffCandidate) IsAvailableFor(window model.Window) bool {
	for _, available := range c.Availability {
		if available.Contains(window) {
			return true
		}
	}
	return false
}

// RouteTo returns the viable travel route to a location, if any
func (c *StaffCandidate) RouteTo(locationID string) (model.TravelRoute, bool) {
	for _, route := range c.TravelOptions {
		if route.ToLocationID == locationID {
			return route, true
		}
	}
	return model.TravelRoute{}, false
}

// requirementSlot tracks one coverage requirement through the run
type requirementSlot struct {
	requirement model.CoverageRequirement
	window      model.Window
	sequence    int
	assigned    int
}

func (s *requirementSlot) shortfall() int {
	return max(s.requirement.RequiredCount-s.assigned, 0)
}

// RunState is the mutable state of a single optimization run. Phase 2 reads and
// updates it sequentially.
type RunState struct {
	Constraints Constraints
	Range       model.DateRange

	registry *registryData
	options  Options

	// slots holds every coverage requirement in coverage order
	slots []*requirementSlot

	// rosters maps location id to staff ids on that location's roster, in roster order
	rosters map[string][]string

	// staffOrder lists staff ids in first-seen order across location rosters
	staffOrder []string
	staff      map[string]*StaffCandidate

	assignments []Assignment
	byStaff     map[string][]int
}

func newRunState(registry *registryData, options Options, constraints Constraints, dateRange model.DateRange) *RunState {
	return &RunState{
		Constraints: constraints,
		Range:       dateRange,
		registry:    registry,
		options:     options,
		rosters:     map[string][]string{},
		staff:       map[string]*StaffCandidate{},
		byStaff:     map[string][]int{},
	}
}

// Staff returns the candidate record for a staff member
func (s *RunState) Staff(staffMemberID string) (*StaffCandidate, bool) {
	candidate, ok := s.staff[staffMemberID]
	return candidate, ok
}

// Assignments returns the assignments made so far
func (s *RunState) Assignments() []Assignment {
	return s.assignments
}

// StaffAssignments returns the assignments made so far for one staff member
func (s *RunState) StaffAssignments(staffMemberID string) []Assignment {
	indices := s.byStaff[staffMemberID]
	result := make([]Assignment, 0, len(indices))
	for _, idx := range indices {
		result = append(result, s.assignments[idx])
	}
	return result
}

// HasOverlap reports whether the staff member already works during the window
func (s *RunState) HasOverlap(staffMemberID string, window model.Window) bool {
	for _, a := range s.StaffAssignments(staffMemberID) {
		existing, err := model.NewWindow(a.Date, a.StartTime, a.EndTime)
		if err != nil {
			continue
		}
		if existing.Overlaps(window) {
			return true
		}
	}
	return false
}

// DailyTravelMinutes sums travel time over the staff member's assignments on a date
func (s *RunState) DailyTravelMinutes(staffMemberID, date string) int {
	total := 0
	for _, a := range s.StaffAssignments(staffMemberID) {
		if a.Date == date {
			total += a.TravelTimeMinutes
		}
	}
	return total
}

// WeeklyCrossLocationCount counts travel assignments in the ISO week containing date
func (s *RunState) WeeklyCrossLocationCount(staffMemberID, date string) int {
	count := 0
	for _, a := range s.StaffAssignments(staffMemberID) {
		if a.TravelRequired && sameISOWeek(a.Date, date) {
			count++
		}
	}
	return count
}

// WeeklyHours sums assigned hours in the ISO week containing date
func (s *RunState) WeeklyHours(staffMemberID, date string) float64 {
	total := 0.0
	for _, a := range s.StaffAssignments(staffMemberID) {
		if !sameISOWeek(a.Date, date) {
			continue
		}
		window, err := model.NewWindow(a.Date, a.StartTime, a.EndTime)
		if err != nil {
			continue
		}
		total += window.Hours()
	}
	return total
}

func (s *RunState) addAssignment(slot *requirementSlot, a Assignment) {
	s.assignments = append(s.assignments, a)
	s.byStaff[a.StaffMemberID] = append(s.byStaff[a.StaffMemberID], len(s.assignments)-1)
	slot.assigned++
}

func sameISOWeek(a, b string) bool {
	yearA, weekA, errA := model.ISOWeek(a)
	yearB, weekB, errB := model.ISOWeek(b)
	if errA != nil || errB != nil {
		return false
	}
	return yearA == yearB && weekA == weekB
}
