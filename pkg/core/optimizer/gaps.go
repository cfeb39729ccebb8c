package optimizer

import "sort"

// analyzeGaps returns the remaining shortfall of every requirement, highest priority
// first. Equal priorities keep coverage order.
func analyzeGaps(state *RunState) []Gap {
	gaps := make([]Gap, 0)

	for _, slot := range state.slots {
		shortfall := slot.shortfall()
		if shortfall == 0 {
			continue
		}
		gaps = append(gaps, Gap{
			Requirement: slot.requirement,
			Window:      slot.window,
			Shortfall:   shortfall,
			Priority:    slot.requirement.Priority.Weight(),
			Sequence:    slot.sequence,
		})
	}

	sort.SliceStable(gaps, func(i, j int) bool {
		return gaps[i].Priority > gaps[j].Priority
	})

	return gaps
}
