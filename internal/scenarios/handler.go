package scenarios

import (
	json "github.com/goccy/go-json"

	"tourism-engine/internal/model"
)

// EstimateHandler defines the contract for all estimator implementations.
// Each handler decodes its properties, runs the estimate and reports
// domain problems as calculation messages. A CRITICAL message means the
// returned result is nil.
type EstimateHandler interface {
	Estimate(props json.RawMessage, baselines Baselines) (interface{}, []model.CalculationMessage)
}

// Baselines maps a baseline reference to its resolved value.
type Baselines map[string]int
