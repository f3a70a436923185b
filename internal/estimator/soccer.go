// Package estimator holds the tourism scenario estimators: fixed coefficient
// tables applied to a baseline count by chained multiplication.
package estimator

import (
	"sort"

	"github.com/rotisserie/eris"
)

// OutOfPrefectureRate is the share of match attendance travelling in from
// outside the prefecture.
const OutOfPrefectureRate = 0.137

// World cup effect scenario keys.
const (
	EffectNone       = "none"
	EffectModest     = "modest"
	EffectOptimistic = "optimistic"
)

// ErrInvalidScenario is returned when a world cup effect key is not recognized.
var ErrInvalidScenario = eris.New("invalid world cup effect scenario")

// worldCupEffectCoefficients scales annual league attendance after a world cup,
// based on the 2002 tournament.
var worldCupEffectCoefficients = map[string]float64{
	EffectNone:       1.0,
	EffectModest:     1.10, // conservative, +10%
	EffectOptimistic: 1.20, // +20%
}

// SoccerScenario echoes the inputs of a soccer estimate.
type SoccerScenario struct {
	BaselineAnnualAttendance int    `json:"baseline_annual_attendance" yaml:"baseline_annual_attendance"`
	WorldCupEffect           string `json:"world_cup_effect" yaml:"world_cup_effect"`
}

// SoccerResult is the outcome of SoccerTourists.
type SoccerResult struct {
	Scenario                         SoccerScenario `json:"scenario" yaml:"scenario"`
	WorldCupFactor                   float64        `json:"world_cup_factor" yaml:"world_cup_factor"`
	ProjectedTotalAttendance         int            `json:"projected_total_attendance" yaml:"projected_total_attendance"`
	EstimatedOutOfPrefectureTourists int            `json:"estimated_out_of_prefecture_tourists" yaml:"estimated_out_of_prefecture_tourists"`
}

// SoccerTourists projects annual attendance under a world cup effect scenario
// and the number of visitors coming from outside the prefecture.
//
// The baseline is not validated. Unknown scenario keys return an error
// wrapping ErrInvalidScenario.
func SoccerTourists(baselineAnnualAttendance int, scenario string) (SoccerResult, error) {
	factor, ok := worldCupEffectCoefficients[scenario]
	if !ok {
		return SoccerResult{}, eris.Wrapf(ErrInvalidScenario,
			"estimator: scenario %q must be one of %v", scenario, WorldCupScenarios())
	}

	projected := float64(baselineAnnualAttendance) * factor
	tourists := projected * OutOfPrefectureRate

	return SoccerResult{
		Scenario: SoccerScenario{
			BaselineAnnualAttendance: baselineAnnualAttendance,
			WorldCupEffect:           scenario,
		},
		WorldCupFactor:                   factor,
		ProjectedTotalAttendance:         int(projected),
		EstimatedOutOfPrefectureTourists: int(tourists),
	}, nil
}

// WorldCupScenarios returns the recognized scenario keys in sorted order.
func WorldCupScenarios() []string {
	keys := make([]string, 0, len(worldCupEffectCoefficients))
	for k := range worldCupEffectCoefficients {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// WorldCupCoefficients returns a copy of the world cup effect table.
func WorldCupCoefficients() map[string]float64 {
	out := make(map[string]float64, len(worldCupEffectCoefficients))
	for k, v := range worldCupEffectCoefficients {
		out[k] = v
	}
	return out
}
