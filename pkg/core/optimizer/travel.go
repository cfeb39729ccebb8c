package optimizer

import (
	"github.com/acganger/ganger-platform-sub011/pkg/core/model"
)

// StaffTravelOptions lists the routes a staff member is willing and able to travel
type StaffTravelOptions struct {
	StaffMemberID     string
	PrimaryLocationID string
	Routes            []model.TravelRoute
}

// buildTravelOptions keeps, for every available staff member, the routes from their
// primary location to each other known location that respect their exclusions and
// their travel time and distance limits
func buildTravelOptions(state *RunState) {
	for _, staffID := range state.staffOrder {
		candidate := state.staff[staffID]
		candidate.TravelOptions = viableRoutes(state.registry, candidate)
	}
}

func viableRoutes(registry *registryData, candidate *StaffCandidate) []model.TravelRoute {
	var routes []model.TravelRoute
	prefs := candidate.Preferences

	for _, destination := range registry.locationOrder {
		if destination == candidate.PrimaryLocationID {
			continue
		}
		if prefs.IsExcluded(destination) {
			continue
		}

		route, ok := registry.routes[model.RouteKey{From: candidate.PrimaryLocationID, To: destination}]
		if !ok {
			continue
		}
		if route.TravelTimeMinutes > prefs.MaxTravelTimeMinutes {
			continue
		}
		if route.DistanceMiles > prefs.MaxTravelDistanceMiles {
			continue
		}

		routes = append(routes, route)
	}

	return routes
}

func (s *RunState) travelOptions() []StaffTravelOptions {
	options := make([]StaffTravelOptions, 0, len(s.staffOrder))
	for _, staffID := range s.staffOrder {
		candidate := s.staff[staffID]
		options = append(options, StaffTravelOptions{
			StaffMemberID:     staffID,
			PrimaryLocationID: candidate.PrimaryLocationID,
			Routes:            candidate.TravelOptions,
		})
	}
	return options
}
