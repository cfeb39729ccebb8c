package sheetsclient

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/acganger/ganger-platform-sub011/pkg/core/model"
)

// Column names in the registry tabs
var (
	locationFields         = []string{"ID", "Name", "Address", "Latitude", "Longitude", "Timezone", "Facility type", "Capacity"}
	requiredLocationFields = []string{"ID"}

	routeFields         = []string{"From", "To", "Distance (miles)", "Travel time (minutes)", "Estimated cost", "Reliability", "Preferred mode"}
	requiredRouteFields = []string{"From", "To", "Distance (miles)", "Travel time (minutes)"}

	preferenceFields = []string{
		"Staff ID",
		"Preferred locations",
		"Excluded locations",
		"Max travel time (minutes)",
		"Max travel distance (miles)",
		"Compensation required",
		"Max weekly cross-location",
	}
	requiredPreferenceFields = []string{"Staff ID"}
)

// GetLocations reads the locations tab
func (c *Client) GetLocations(ctx context.Context) ([]model.Location, error) {
	values, err := c.readTab(ctx, c.cfg.LocationsTab)
	if err != nil {
		return nil, fmt.Errorf("failed to get location data: %w", err)
	}
	locations, err := parseLocations(values)
	if err != nil {
		return nil, fmt.Errorf("failed to parse locations: %w", err)
	}
	return locations, nil
}

// GetTravelRoutes reads the routes tab
func (c *Client) GetTravelRoutes(ctx context.Context) ([]model.TravelRoute, error) {
	values, err := c.readTab(ctx, c.cfg.RoutesTab)
	if err != nil {
		return nil, fmt.Errorf("failed to get route data: %w", err)
	}
	routes, err := parseRoutes(values)
	if err != nil {
		return nil, fmt.Errorf("failed to parse routes: %w", err)
	}
	return routes, nil
}

// GetStaffPreferences reads the preferences tab
func (c *Client) GetStaffPreferences(ctx context.Context) ([]model.StaffPreferences, error) {
	values, err := c.readTab(ctx, c.cfg.PreferencesTab)
	if err != nil {
		return nil, fmt.Errorf("failed to get preference data: %w", err)
	}
	preferences, err := parsePreferences(values)
	if err != nil {
		return nil, fmt.Errorf("failed to parse preferences: %w", err)
	}
	return preferences, nil
}

func (c *Client) readTab(ctx context.Context, tab string) ([][]interface{}, error) {
	values, err := c.GetValues(ctx, c.cfg.SpreadsheetID, tab)
	if err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("tab %q is empty", tab)
	}
	return values, nil
}

// sheet gives by-name access to the cells of a tab whose first row is a header
type sheet struct {
	fieldIndexes map[string]int
	rows         [][]interface{}
}

func newSheet(raw [][]interface{}, fields, required []string) (*sheet, error) {
	if len(raw) < 1 {
		return nil, fmt.Errorf("no header row found")
	}

	fieldIndexes := make(map[string]int)
	for _, field := range fields {
		for i, cell := range raw[0] {
			if strings.TrimSpace(cellString(cell)) == field {
				fieldIndexes[field] = i
				break
			}
		}
	}
	for _, field := range required {
		if _, ok := fieldIndexes[field]; !ok {
			return nil, fmt.Errorf("missing required field in header: %s", field)
		}
	}

	return &sheet{fieldIndexes: fieldIndexes, rows: raw[1:]}, nil
}

func (s *sheet) get(field string, row []interface{}) string {
	index, ok := s.fieldIndexes[field]
	if !ok || index >= len(row) {
		return ""
	}
	return strings.TrimSpace(cellString(row[index]))
}

// float parses a numeric cell. Empty cells are zero.
func (s *sheet) floatCell(field string, row []interface{}, rowNumber int) (float64, error) {
	value := s.get(field, row)
	if value == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(value, ",", ""), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q in row %d", field, value, rowNumber)
	}
	return f, nil
}

func (s *sheet) intCell(field string, row []interface{}, rowNumber int) (int, error) {
	f, err := s.floatCell(field, row, rowNumber)
	if err != nil {
		return 0, err
	}
	if f != float64(int(f)) {
		return 0, fmt.Errorf("invalid %s %v in row %d: not a whole number", field, f, rowNumber)
	}
	return int(f), nil
}

func (s *sheet) boolCell(field string, row []interface{}) bool {
	switch strings.ToLower(s.get(field, row)) {
	case "true", "yes", "y", "1":
		return true
	default:
		return false
	}
}

func (s *sheet) listCell(field string, row []interface{}) []string {
	var items []string
	for _, item := range strings.Split(s.get(field, row), ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

func cellString(cell interface{}) string {
	switch v := cell.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

// parseLocations converts the locations tab into Location records. Rows without an ID are skipped.
func parseLocations(raw [][]interface{}) ([]model.Location, error) {
	s, err := newSheet(raw, locationFields, requiredLocationFields)
	if err != nil {
		return nil, err
	}

	locations := make([]model.Location, 0, len(s.rows))
	for i, row := range s.rows {
		rowNumber := i + 2
		id := s.get("ID", row)
		if id == "" {
			continue
		}

		lat, err := s.floatCell("Latitude", row, rowNumber)
		if err != nil {
			return nil, err
		}
		lng, err := s.floatCell("Longitude", row, rowNumber)
		if err != nil {
			return nil, err
		}
		capacity, err := s.intCell("Capacity", row, rowNumber)
		if err != nil {
			return nil, err
		}

		locations = append(locations, model.Location{
			ID:           id,
			Name:         s.get("Name", row),
			Address:      s.get("Address", row),
			Coordinates:  model.Coordinates{Lat: lat, Lng: lng},
			Timezone:     s.get("Timezone", row),
			FacilityType: s.get("Facility type", row),
			Capacity:     capacity,
		})
	}

	return locations, nil
}

// parseRoutes converts the routes tab into TravelRoute records. A blank reliability means 1.
func parseRoutes(raw [][]interface{}) ([]model.TravelRoute, error) {
	s, err := newSheet(raw, routeFields, requiredRouteFields)
	if err != nil {
		return nil, err
	}

	routes := make([]model.TravelRoute, 0, len(s.rows))
	for i, row := range s.rows {
		rowNumber := i + 2
		from, to := s.get("From", row), s.get("To", row)
		if from == "" && to == "" {
			continue
		}
		if from == "" || to == "" {
			return nil, fmt.Errorf("route in row %d needs both From and To", rowNumber)
		}

		distance, err := s.floatCell("Distance (miles)", row, rowNumber)
		if err != nil {
			return nil, err
		}
		minutes, err := s.intCell("Travel time (minutes)", row, rowNumber)
		if err != nil {
			return nil, err
		}
		cost, err := s.floatCell("Estimated cost", row, rowNumber)
		if err != nil {
			return nil, err
		}
		reliability := 1.0
		if s.get("Reliability", row) != "" {
			if reliability, err = s.floatCell("Reliability", row, rowNumber); err != nil {
				return nil, err
			}
		}

		routes = append(routes, model.TravelRoute{
			FromLocationID:    from,
			ToLocationID:      to,
			DistanceMiles:     distance,
			TravelTimeMinutes: minutes,
			EstimatedCost:     cost,
			Reliability:       reliability,
			PreferredMode:     s.get("Preferred mode", row),
		})
	}

	return routes, nil
}

// parsePreferences converts the preferences tab into StaffPreferences records.
// Location lists are comma separated and blank limits stay unset.
func parsePreferences(raw [][]interface{}) ([]model.StaffPreferences, error) {
	s, err := newSheet(raw, preferenceFields, requiredPreferenceFields)
	if err != nil {
		return nil, err
	}

	preferences := make([]model.StaffPreferences, 0, len(s.rows))
	for i, row := range s.rows {
		rowNumber := i + 2
		staffID := s.get("Staff ID", row)
		if staffID == "" {
			continue
		}

		maxTime, err := s.intCell("Max travel time (minutes)", row, rowNumber)
		if err != nil {
			return nil, err
		}
		maxDistance, err := s.floatCell("Max travel distance (miles)", row, rowNumber)
		if err != nil {
			return nil, err
		}
		maxWeekly, err := s.intCell("Max weekly cross-location", row, rowNumber)
		if err != nil {
			return nil, err
		}

		preferences = append(preferences, model.StaffPreferences{
			StaffMemberID:          staffID,
			PreferredLocations:     s.listCell("Preferred locations", row),
			ExcludedLocations:      s.listCell("Excluded locations", row),
			MaxTravelTimeMinutes:   maxTime,
			MaxTravelDistanceMiles: maxDistance,
			CompensationRequired:   s.boolCell("Compensation required", row),
			MaxWeeklyCrossLocation: maxWeekly,
		})
	}

	return preferences, nil
}
