package scenarios

import (
	json "github.com/goccy/go-json"

	"tourism-engine/internal/estimator"
	"tourism-engine/internal/model"
)

type soccerProps struct {
	BaselineAnnualAttendance int    `json:"baseline_annual_attendance"`
	BaselineRef              string `json:"baseline_ref,omitempty"`
	WorldCupEffect           string `json:"world_cup_effect"`
}

type SoccerHandler struct{}

func (h *SoccerHandler) Estimate(props json.RawMessage, baselines Baselines) (interface{}, []model.CalculationMessage) {
	p := soccerProps{WorldCupEffect: estimator.EffectNone}
	if msg := decodeProps(props, &p); msg != nil {
		return nil, []model.CalculationMessage{*msg}
	}

	baseline, msgs := resolveBaseline(p.BaselineAnnualAttendance, p.BaselineRef, baselines)
	if model.HasCritical(msgs) {
		return nil, msgs
	}

	res, err := estimator.SoccerTourists(baseline, p.WorldCupEffect)
	if err != nil {
		return nil, append(msgs, model.Critical(model.CodeInvalidScenario, err.Error()))
	}
	return res, msgs
}
