package optimizer

import (
	"math"

	"github.com/acganger/ganger-platform-sub011/pkg/core/model"
)

// CandidateScore holds the scores of a travel candidate for one gap
type CandidateScore struct {
	TravelCost   float64
	Confidence   float64
	ConflictRisk float64
	Efficiency   float64
}

// scoreCandidate computes cost, confidence, conflict risk and efficiency for a route.
//
//	travelCost   = distance*mileageRate + travelTime/60*hourlyTravelRate
//	confidence   = min(maxConfidence, (base [+bonus]) * reliability * max(minFactor, 1 - travelTime/window))
//	conflictRisk = 1 - reliability
//	efficiency   = base + speedWeight*min(1, mph/speedCap) + costWeight*max(0, 1 - cost/costNorm) [+bonus], capped at 1
func scoreCandidate(route model.TravelRoute, preferred bool, constraints Constraints, params ScoringParams) CandidateScore {
	travelHours := float64(route.TravelTimeMinutes) / 60
	travelCost := route.DistanceMiles*constraints.MileageRate + travelHours*constraints.HourlyTravelRate

	base := params.BaseConfidence
	if preferred {
		base += params.PreferredBonus
	}
	travelFactor := 1.0
	if params.TravelTimeWindow > 0 {
		travelFactor = math.Max(params.MinTravelFactor, 1-float64(route.TravelTimeMinutes)/params.TravelTimeWindow)
	}
	confidence := math.Min(params.MaxConfidence, base*route.Reliability*travelFactor)

	normalizedSpeed := 1.0
	if travelHours > 0 && params.SpeedCapMPH > 0 {
		normalizedSpeed = math.Min(1, (route.DistanceMiles/travelHours)/params.SpeedCapMPH)
	}
	costFactor := 1.0
	if params.CostNormalization > 0 {
		costFactor = math.Max(0, 1-travelCost/params.CostNormalization)
	}
	efficiency := params.BaseEfficiency + params.SpeedWeight*normalizedSpeed + params.CostWeight*costFactor
	if preferred {
		efficiency += params.PreferredEfficiencyBonus
	}

	return CandidateScore{
		TravelCost:   travelCost,
		Confidence:   clamp01(confidence),
		ConflictRisk: clamp01(1 - route.Reliability),
		Efficiency:   clamp01(efficiency),
	}
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
