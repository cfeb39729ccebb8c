package postgres

import (
	"context"
	"fmt"

	"github.com/acganger/ganger-platform-sub011/pkg/core/model"
)

// GetLocations retrieves all locations in insertion order
func (d *DB) GetLocations(ctx context.Context) ([]model.Location, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, name, address, lat, lng, timezone, hours, facility_type, capacity
		FROM location
		ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query locations: %w", err)
	}
	defer rows.Close()

	var locations []model.Location
	for rows.Next() {
		var l model.Location
		if err := rows.Scan(&l.ID, &l.Name, &l.Address, &l.Coordinates.Lat, &l.Coordinates.Lng,
			&l.Timezone, &l.Hours, &l.FacilityType, &l.Capacity); err != nil {
			return nil, fmt.Errorf("failed to scan location: %w", err)
		}
		locations = append(locations, l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating locations: %w", err)
	}

	return locations, nil
}

// GetTravelRoutes retrieves every directional route
func (d *DB) GetTravelRoutes(ctx context.Context) ([]model.TravelRoute, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT from_location_id, to_location_id, distance_miles, travel_time_minutes,
		       estimated_cost, reliability, preferred_mode
		FROM travel_route
		ORDER BY from_location_id, to_location_id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query travel routes: %w", err)
	}
	defer rows.Close()

	var routes []model.TravelRoute
	for rows.Next() {
		var r model.TravelRoute
		if err := rows.Scan(&r.FromLocationID, &r.ToLocationID, &r.DistanceMiles, &r.TravelTimeMinutes,
			&r.EstimatedCost, &r.Reliability, &r.PreferredMode); err != nil {
			return nil, fmt.Errorf("failed to scan travel route: %w", err)
		}
		routes = append(routes, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating travel routes: %w", err)
	}

	return routes, nil
}

// GetStaffPreferences retrieves every staff preference record
func (d *DB) GetStaffPreferences(ctx context.Context) ([]model.StaffPreferences, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT staff_member_id, preferred_locations, excluded_locations, max_travel_time_minutes,
		       max_travel_distance_miles, compensation_required, max_weekly_cross_location
		FROM staff_preferences
		ORDER BY staff_member_id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query staff preferences: %w", err)
	}
	defer rows.Close()

	var preferences []model.StaffPreferences
	for rows.Next() {
		var p model.StaffPreferences
		if err := rows.Scan(&p.StaffMemberID, &p.PreferredLocations, &p.ExcludedLocations, &p.MaxTravelTimeMinutes,
			&p.MaxTravelDistanceMiles, &p.CompensationRequired, &p.MaxWeeklyCrossLocation); err != nil {
			return nil, fmt.Errorf("failed to scan staff preferences: %w", err)
		}
		preferences = append(preferences, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating staff preferences: %w", err)
	}

	return preferences, nil
}
