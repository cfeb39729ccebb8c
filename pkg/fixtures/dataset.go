package fixtures

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/teambition/rrule-go"

	"github.com/acganger/ganger-platform-sub011/pkg/core/model"
)

// requirementNamespace seeds the name-based ids of generated coverage requirements
var requirementNamespace = uuid.MustParse("6f1c1f8e-7a55-4c1a-9a53-0e4f3b7c2d10")

// Dataset is the YAML document read by the file store
type Dataset struct {
	Locations    []model.Location         `yaml:"locations" validate:"dive"`
	Routes       []model.TravelRoute      `yaml:"routes" validate:"dive"`
	Preferences  []model.StaffPreferences `yaml:"preferences" validate:"dive"`
	Staff        []StaffRecord            `yaml:"staff" validate:"dive"`
	Availability []AvailabilityTemplate   `yaml:"availability" validate:"dive"`
	Coverage     []CoverageTemplate       `yaml:"coverage" validate:"dive"`
}

// StaffRecord is a staff member and the locations whose rosters list them
type StaffRecord struct {
	ID                string   `yaml:"id" validate:"required"`
	Name              string   `yaml:"name"`
	Role              string   `yaml:"role"`
	Skills            []string `yaml:"skills,omitempty"`
	PrimaryLocationID string   `yaml:"primaryLocation,omitempty"`
	Locations         []string `yaml:"locations,omitempty"` // rosters; defaults to the primary location
	Inactive          bool     `yaml:"inactive,omitempty"`
}

// Schedule places a template either on a single date or on every date an RRULE
// generates from its start date
type Schedule struct {
	Date  string `yaml:"date,omitempty" validate:"required_without=RRule,omitempty,datetime=2006-01-02"`
	RRule string `yaml:"rrule,omitempty" validate:"required_without=Date"`
	Start string `yaml:"start,omitempty" validate:"required_with=RRule,omitempty,datetime=2006-01-02"`
}

// AvailabilityTemplate generates availability slots for one staff member
type AvailabilityTemplate struct {
	Schedule      `yaml:",inline"`
	StaffMemberID string `yaml:"staffMemberID" validate:"required"`
	StartTime     string `yaml:"startTime" validate:"required,datetime=15:04"`
	EndTime       string `yaml:"endTime" validate:"required,datetime=15:04"`
	ExtraWork     bool   `yaml:"extraWork"`
}

// CoverageTemplate generates coverage requirements for one location
type CoverageTemplate struct {
	Schedule   `yaml:",inline"`
	ID         string         `yaml:"id,omitempty"`
	LocationID string         `yaml:"location" validate:"required"`
	StartTime  string         `yaml:"startTime" validate:"required,datetime=15:04"`
	EndTime    string         `yaml:"endTime" validate:"required,datetime=15:04"`
	Role       string         `yaml:"role"`
	Skills     []string       `yaml:"skills,omitempty"`
	Count      int            `yaml:"count" validate:"min=0"`
	Priority   model.Priority `yaml:"priority,omitempty" validate:"omitempty,oneof=low medium high critical"`
}

// Dates returns the dates the schedule produces within the inclusive range, in order
func (s Schedule) Dates(dateRange model.DateRange) ([]string, error) {
	if s.RRule == "" {
		if dateRange.Contains(s.Date) {
			return []string{s.Date}, nil
		}
		return nil, nil
	}

	from, err := time.Parse(model.DateLayout, dateRange.Start)
	if err != nil {
		return nil, fmt.Errorf("invalid range start: %w", err)
	}
	to, err := time.Parse(model.DateLayout, dateRange.End)
	if err != nil {
		return nil, fmt.Errorf("invalid range end: %w", err)
	}

	rule, err := s.rule()
	if err != nil {
		return nil, err
	}

	occurrences := rule.Between(from, to, true)
	dates := make([]string, 0, len(occurrences))
	for _, t := range occurrences {
		dates = append(dates, t.Format(model.DateLayout))
	}
	return dates, nil
}

// rule builds the schedule's recurrence, anchored at its start date
func (s Schedule) rule() (*rrule.RRule, error) {
	options, err := rrule.StrToROption(s.RRule)
	if err != nil {
		return nil, fmt.Errorf("invalid rrule %q: %w", s.RRule, err)
	}
	start, err := time.Parse(model.DateLayout, s.Start)
	if err != nil {
		return nil, fmt.Errorf("invalid rrule start %q: %w", s.Start, err)
	}
	options.Dtstart = start

	rule, err := rrule.NewRRule(*options)
	if err != nil {
		return nil, fmt.Errorf("invalid rrule %q: %w", s.RRule, err)
	}
	return rule, nil
}

// requirementID names a generated requirement. Templates with an id get "<id>@<date>";
// the rest get a name-based UUID, so repeated loads yield the same ids.
func (c CoverageTemplate) requirementID(date string) string {
	if c.ID != "" {
		if c.RRule == "" {
			return c.ID
		}
		return c.ID + "@" + date
	}
	name := fmt.Sprintf("%s|%s|%s|%s|%s", c.LocationID, date, c.StartTime, c.EndTime, c.Role)
	return uuid.NewSHA1(requirementNamespace, []byte(name)).String()
}
