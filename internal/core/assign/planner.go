// Package assign contains the pure business logic for clerk auto-assignment.
// This file contains pure planner functions - all input data is pre-fetched
// by the caller, no I/O happens here.
package assign

import (
	"math"
	"sort"
)

// Scoring weights for candidate ranking.
const (
	// previousClerkBonus favors the clerk who last completed a job at the
	// same property.
	previousClerkBonus = 50.0
	// maxDistanceScore is the score for a clerk standing at the property;
	// it decays by distanceDecayPerKm for every kilometre away.
	maxDistanceScore   = 100.0
	distanceDecayPerKm = 10.0
	// postcodeMatchScore is the fallback when no live location is known but
	// the clerk's availability postcode shares a prefix with the property.
	postcodeMatchScore = 30.0
	// maxLoadScore rewards clerks with few active jobs; one point is lost
	// per job already on their plate.
	maxLoadScore = 20.0
	// postcodePrefixLen is how many leading characters of a postcode must
	// match for the fallback score.
	postcodePrefixLen = 4
)

// Candidate is a clerk eligible for assignment, with the pre-fetched facts
// the planner scores on.
type Candidate struct {
	ClerkID string

	// Live location, valid only when HasLocation is true.
	HasLocation bool
	Lat, Lng    float64

	// AvailabilityPostcode comes from the clerk's availability record for
	// the appointment date; empty when none was filed.
	AvailabilityPostcode string

	// ActiveJobs counts jobs currently assigned, in progress or checked in
	// for this clerk.
	ActiveJobs int
}

// PlanInput contains everything needed to pick a clerk for one job.
type PlanInput struct {
	// Property location; used only when HasPropertyLocation is true.
	HasPropertyLocation bool
	PropertyLat         float64
	PropertyLng         float64
	PropertyPostcode    string

	// PreviousClerkID is the clerk who completed the most recent job at
	// this property, empty when there is none.
	PreviousClerkID string

	Candidates []Candidate
}

// Selection is the planner's ranked outcome.
type Selection struct {
	ClerkID string
	Score   float64
}

// SelectClerk scores every candidate and returns the winner, or ok=false
// when no candidate exists. Ties break deterministically by clerk ID.
func SelectClerk(input PlanInput) (Selection, bool) {
	ranked := RankCandidates(input)
	if len(ranked) == 0 {
		return Selection{}, false
	}
	return ranked[0], true
}

// RankCandidates returns all candidates ordered best-first.
func RankCandidates(input PlanInput) []Selection {
	ranked := make([]Selection, 0, len(input.Candidates))
	for _, c := range input.Candidates {
		ranked = append(ranked, Selection{
			ClerkID: c.ClerkID,
			Score:   scoreCandidate(input, c),
		})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].ClerkID < ranked[j].ClerkID
	})

	return ranked
}

func scoreCandidate(input PlanInput, c Candidate) float64 {
	score := 0.0

	if input.PreviousClerkID != "" && input.PreviousClerkID == c.ClerkID {
		score += previousClerkBonus
	}

	if input.HasPropertyLocation {
		switch {
		case c.HasLocation:
			km := HaversineKm(input.PropertyLat, input.PropertyLng, c.Lat, c.Lng)
			score += math.Max(0, maxDistanceScore-km*distanceDecayPerKm)
		case postcodePrefixMatch(c.AvailabilityPostcode, input.PropertyPostcode):
			score += postcodeMatchScore
		}
	}

	score += math.Max(0, maxLoadScore-float64(c.ActiveJobs))

	return score
}

func postcodePrefixMatch(a, b string) bool {
	if len(a) < postcodePrefixLen || len(b) < postcodePrefixLen {
		return false
	}
	return a[:postcodePrefixLen] == b[:postcodePrefixLen]
}

// HaversineKm returns the great-circle distance between two points in
// kilometres.
func HaversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	const earthRadiusKm = 6371.0

	dLat := toRadians(lat2 - lat1)
	dLng := toRadians(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
