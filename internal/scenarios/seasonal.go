package scenarios

import (
	"fmt"

	json "github.com/goccy/go-json"

	"tourism-engine/internal/estimator"
	"tourism-engine/internal/model"
)

type seasonalProps struct {
	BaselineVisitors   int    `json:"baseline_visitors"`
	BaselineRef        string `json:"baseline_ref,omitempty"`
	Quarter            int    `json:"quarter"`
	PromotionCampaign  bool   `json:"promotion_campaign"`
	NewAttractionOpens bool   `json:"new_attraction_opens"`
}

type SeasonalHandler struct{}

func (h *SeasonalHandler) Estimate(props json.RawMessage, baselines Baselines) (interface{}, []model.CalculationMessage) {
	var p seasonalProps
	if msg := decodeProps(props, &p); msg != nil {
		return nil, []model.CalculationMessage{*msg}
	}

	baseline, msgs := resolveBaseline(p.BaselineVisitors, p.BaselineRef, baselines)
	if model.HasCritical(msgs) {
		return nil, msgs
	}

	// The estimator itself stays permissive; the fallback is only reported.
	if _, ok := estimator.SeasonalFactor(p.Quarter); !ok {
		msgs = append(msgs, model.Warning(model.CodeUnrecognizedQuarter,
			fmt.Sprintf("Quarter %d is not in 1-4, seasonal factor 1.0 applied", p.Quarter)))
	}

	return estimator.SeasonalTourists(baseline, p.Quarter, p.PromotionCampaign, p.NewAttractionOpens), msgs
}
