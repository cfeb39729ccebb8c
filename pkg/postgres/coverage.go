package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/acganger/ganger-platform-sub011/pkg/core/model"
)

// GetCoverageRequirements retrieves a location's requirements within the inclusive range
func (d *DB) GetCoverageRequirements(ctx context.Context, locationID string, dateRange model.DateRange) ([]model.CoverageRequirement, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, location_id, date, to_char(start_time, 'HH24:MI'), to_char(end_time, 'HH24:MI'),
		       required_role, required_skills, required_count, priority
		FROM coverage_requirement
		WHERE location_id = $1 AND date BETWEEN $2 AND $3
		ORDER BY date, start_time, id
	`, locationID, dateRange.Start, dateRange.End)
	if err != nil {
		return nil, fmt.Errorf("failed to query coverage requirements: %w", err)
	}
	defer rows.Close()

	var requirements []model.CoverageRequirement
	for rows.Next() {
		var r model.CoverageRequirement
		var date time.Time
		var priority string
		if err := rows.Scan(&r.ID, &r.LocationID, &date, &r.StartTime, &r.EndTime,
			&r.RequiredRole, &r.RequiredSkills, &r.RequiredCount, &priority); err != nil {
			return nil, fmt.Errorf("failed to scan coverage requirement: %w", err)
		}
		r.Date = date.Format(model.DateLayout)
		r.Priority = model.Priority(priority)
		requirements = append(requirements, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating coverage requirements: %w", err)
	}

	return requirements, nil
}

// GetActiveStaffMembers retrieves the active roster of a location in roster order
func (d *DB) GetActiveStaffMembers(ctx context.Context, locationID string) ([]model.StaffMember, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT s.id, s.name, s.role, s.skills, s.primary_location_id
		FROM staff_member s
		JOIN staff_location sl ON sl.staff_member_id = s.id
		WHERE sl.location_id = $1 AND s.active
		ORDER BY sl.position
	`, locationID)
	if err != nil {
		return nil, fmt.Errorf("failed to query staff members: %w", err)
	}
	defer rows.Close()

	var members []model.StaffMember
	for rows.Next() {
		var m model.StaffMember
		var primary *string
		if err := rows.Scan(&m.ID, &m.Name, &m.Role, &m.Skills, &primary); err != nil {
			return nil, fmt.Errorf("failed to scan staff member: %w", err)
		}
		if primary != nil {
			m.PrimaryLocationID = *primary
		}
		members = append(members, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating staff members: %w", err)
	}

	return members, nil
}

// GetStaffAvailability retrieves a staff member's availability within the inclusive range
func (d *DB) GetStaffAvailability(ctx context.Context, staffMemberID string, dateRange model.DateRange) ([]model.AvailabilitySlot, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT staff_member_id, date, to_char(start_time, 'HH24:MI'), to_char(end_time, 'HH24:MI'),
		       available_for_extra_work
		FROM staff_availability
		WHERE staff_member_id = $1 AND date BETWEEN $2 AND $3
		ORDER BY date, start_time, id
	`, staffMemberID, dateRange.Start, dateRange.End)
	if err != nil {
		return nil, fmt.Errorf("failed to query staff availability: %w", err)
	}
	defer rows.Close()

	var slots []model.AvailabilitySlot
	for rows.Next() {
		var s model.AvailabilitySlot
		var date time.Time
		if err := rows.Scan(&s.StaffMemberID, &date, &s.StartTime, &s.EndTime, &s.AvailableForExtraWork); err != nil {
			return nil, fmt.Errorf("failed to scan staff availability: %w", err)
		}
		s.Date = date.Format(model.DateLayout)
		slots = append(slots, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating staff availability: %w", err)
	}

	return slots, nil
}
