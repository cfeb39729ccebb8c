package optimizer

// runLocalPass fills each requirement from the location's own roster before any travel
// is considered. Eligible staff are based at the location, hold every required skill,
// have an availability window containing the requirement and are not already working an
// overlapping window anywhere in this run. Staff are taken in roster order. Rostered
// staff based elsewhere are left to the cross-location pass.
func runLocalPass(state *RunState) {
	for _, slot := range state.slots {
		needed := slot.shortfall()
		if needed == 0 {
			continue
		}

		for _, staffID := range state.rosters[slot.requirement.LocationID] {
			if needed == 0 {
				break
			}

			candidate := state.staff[staffID]
			if candidate.PrimaryLocationID != slot.requirement.LocationID {
				continue
			}
			if !candidate.HasSkills(slot.requirement.RequiredSkills) {
				continue
			}
			if !candidate.IsAvailableFor(slot.window) {
				continue
			}
			if state.HasOverlap(staffID, slot.window) {
				continue
			}

			state.addAssignment(slot, Assignment{
				StaffMemberID:      staffID,
				PrimaryLocationID:  candidate.PrimaryLocationID,
				AssignedLocationID: slot.requirement.LocationID,
				RequirementID:      slot.requirement.ID,
				Date:               slot.requirement.Date,
				StartTime:          slot.requirement.StartTime,
				EndTime:            slot.requirement.EndTime,
				Role:               slot.requirement.RequiredRole,
				TravelRequired:     false,
				Confidence:         LocalConfidence,
				ConflictRisk:       LocalConflictRisk,
				EfficiencyScore:    LocalEfficiency,
			})
			needed--
		}
	}
}
