package optimizer

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/acganger/ganger-platform-sub011/pkg/core/model"
)

// CoverageSource is the read-only persistence collaborator that supplies coverage
// requirements, rosters and availability
type CoverageSource interface {
	GetCoverageRequirements(ctx context.Context, locationID string, dateRange model.DateRange) ([]model.CoverageRequirement, error)
	GetActiveStaffMembers(ctx context.Context, locationID string) ([]model.StaffMember, error)
	GetStaffAvailability(ctx context.Context, staffMemberID string, dateRange model.DateRange) ([]model.AvailabilitySlot, error)
}

// analyzeCoverage fetches the requirements of every location in parallel and appends
// them to the state in location order, then collaborator order
func (o *Optimizer) analyzeCoverage(ctx context.Context, state *RunState) error {
	order := state.registry.locationOrder
	perLocation := make([][]model.CoverageRequirement, len(order))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.parallelism())
	for i, locationID := range order {
		g.Go(func() error {
			requirements, err := o.source.GetCoverageRequirements(gctx, locationID, state.Range)
			if err != nil {
				return &DataFetchError{Op: "get coverage requirements", Key: locationID, Err: err}
			}
			perLocation[i] = requirements
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i, requirements := range perLocation {
		for j, requirement := range requirements {
			if requirement.LocationID == "" {
				requirement.LocationID = order[i]
			}
			if err := validate.Struct(requirement); err != nil {
				return &DataFetchError{Op: "validate coverage requirement", Key: order[i], Err: err}
			}
			if !state.Range.Contains(requirement.Date) {
				continue
			}
			window, err := model.NewWindow(requirement.Date, requirement.StartTime, requirement.EndTime)
			if err != nil {
				return &DataFetchError{Op: "validate coverage requirement", Key: order[i], Err: err}
			}
			if requirement.ID == "" {
				requirement.ID = fmt.Sprintf("%s#%d", order[i], j)
			}
			if requirement.Priority == "" {
				requirement.Priority = model.PriorityMedium
			}
			state.slots = append(state.slots, &requirementSlot{
				requirement: requirement,
				window:      window,
				sequence:    len(state.slots),
			})
		}
	}

	return nil
}

// gatherAvailableStaff fetches every location's roster, then each distinct staff
// member's availability, keeping only staff with at least one extra-work window in range
func (o *Optimizer) gatherAvailableStaff(ctx context.Context, state *RunState) error {
	order := state.registry.locationOrder
	rosters := make([][]model.StaffMember, len(order))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.parallelism())
	for i, locationID := range order {
		g.Go(func() error {
			members, err := o.source.GetActiveStaffMembers(gctx, locationID)
			if err != nil {
				return &DataFetchError{Op: "get active staff members", Key: locationID, Err: err}
			}
			rosters[i] = members
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	// Distinct staff in first-seen order. The first roster listing a member is their
	// primary location unless the record names one.
	var distinct []*StaffCandidate
	seen := map[string]*StaffCandidate{}
	for i, members := range rosters {
		for _, member := range members {
			if err := validate.Struct(member); err != nil {
				return &DataFetchError{Op: "validate staff member", Key: order[i], Err: err}
			}
			if _, ok := seen[member.ID]; ok {
				continue
			}
			primary := member.PrimaryLocationID
			if primary == "" {
				primary = order[i]
			}
			candidate := &StaffCandidate{Member: member, PrimaryLocationID: primary}
			seen[member.ID] = candidate
			distinct = append(distinct, candidate)
		}
	}

	availability := make([][]model.AvailabilitySlot, len(distinct))
	g, gctx = errgroup.WithContext(ctx)
	g.SetLimit(o.parallelism())
	for i, candidate := range distinct {
		g.Go(func() error {
			slots, err := o.source.GetStaffAvailability(gctx, candidate.Member.ID, state.Range)
			if err != nil {
				return &DataFetchError{Op: "get staff availability", Key: candidate.Member.ID, Err: err}
			}
			availability[i] = slots
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i, candidate := range distinct {
		for _, slot := range availability[i] {
			if err := validate.Struct(slot); err != nil {
				return &DataFetchError{Op: "validate availability slot", Key: candidate.Member.ID, Err: err}
			}
			if !slot.AvailableForExtraWork || !state.Range.Contains(slot.Date) {
				continue
			}
			window, err := model.NewWindow(slot.Date, slot.StartTime, slot.EndTime)
			if err != nil {
				return &DataFetchError{Op: "validate availability slot", Key: candidate.Member.ID, Err: err}
			}
			candidate.Availability = append(candidate.Availability, window)
		}
		if len(candidate.Availability) == 0 {
			continue
		}
		candidate.Preferences = state.registry.resolvePreferences(
			candidate.Member.ID,
			o.options.PreferenceDefaults,
			state.Constraints.MaxCrossLocationAssignments,
		)
		state.staff[candidate.Member.ID] = candidate
		state.staffOrder = append(state.staffOrder, candidate.Member.ID)
	}

	for i, members := range rosters {
		for _, member := range members {
			if _, ok := state.staff[member.ID]; ok {
				state.rosters[order[i]] = append(state.rosters[order[i]], member.ID)
			}
		}
	}

	return nil
}

func (o *Optimizer) parallelism() int {
	return max(o.options.MaxParallelFetches, 1)
}
