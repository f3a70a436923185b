package model

type CalculationMessage struct {
	ID      int    `json:"id"`
	Level   string `json:"level"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

const (
	LevelCritical = "CRITICAL"
	LevelWarning  = "WARNING"
)

// Message codes emitted while processing estimate instructions.
const (
	CodeUnknownEstimator        = "UNKNOWN_ESTIMATOR"
	CodeInvalidProperties       = "INVALID_PROPERTIES"
	CodeInvalidScenario         = "INVALID_SCENARIO"
	CodeUnknownBaselineRef      = "UNKNOWN_BASELINE_REF"
	CodeUnrecognizedQuarter     = "UNRECOGNIZED_QUARTER"
	CodeUnknownComparisonTarget = "UNKNOWN_COMPARISON_TARGET"
	CodeBaselineRefOverride     = "BASELINE_REF_OVERRIDE"
)

func Critical(code, message string) CalculationMessage {
	return CalculationMessage{Level: LevelCritical, Code: code, Message: message}
}

func Warning(code, message string) CalculationMessage {
	return CalculationMessage{Level: LevelWarning, Code: code, Message: message}
}

// HasCritical reports whether any message is CRITICAL.
func HasCritical(msgs []CalculationMessage) bool {
	for _, m := range msgs {
		if m.Level == LevelCritical {
			return true
		}
	}
	return false
}
