package scenarios

import (
	"fmt"

	json "github.com/goccy/go-json"

	"tourism-engine/internal/model"
)

type baselineRefProps struct {
	BaselineRef string `json:"baseline_ref"`
}

// BaselineRef extracts the optional baseline_ref shared by every estimator's
// properties. Undecodable properties yield "".
func BaselineRef(props json.RawMessage) string {
	if len(props) == 0 {
		return ""
	}
	var p baselineRefProps
	if err := json.Unmarshal(props, &p); err != nil {
		return ""
	}
	return p.BaselineRef
}

func decodeProps(props json.RawMessage, v interface{}) *model.CalculationMessage {
	if len(props) == 0 {
		props = json.RawMessage("{}")
	}
	if err := json.Unmarshal(props, v); err != nil {
		msg := model.Critical(model.CodeInvalidProperties, fmt.Sprintf("Invalid estimate properties: %v", err))
		return &msg
	}
	return nil
}

// resolveBaseline picks the referenced baseline when ref is set, otherwise the
// literal value. A non-zero literal next to a ref is ignored with a warning.
func resolveBaseline(literal int, ref string, baselines Baselines) (int, []model.CalculationMessage) {
	if ref == "" {
		return literal, nil
	}
	v, ok := baselines[ref]
	if !ok {
		return 0, []model.CalculationMessage{
			model.Critical(model.CodeUnknownBaselineRef, fmt.Sprintf("Unknown baseline reference: %s", ref)),
		}
	}
	if literal != 0 {
		return v, []model.CalculationMessage{
			model.Warning(model.CodeBaselineRefOverride,
				fmt.Sprintf("Baseline %d ignored, baseline_ref %s resolves to %d", literal, ref, v)),
		}
	}
	return v, nil
}
