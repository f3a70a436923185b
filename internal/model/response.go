package model

import json "github.com/goccy/go-json"

type EstimateResponse struct {
	CalculationMetadata CalculationMetadata `json:"calculation_metadata"`
	CalculationResult   CalculationResult   `json:"calculation_result"`
}

type CalculationMetadata struct {
	CalculationID          string `json:"calculation_id"`
	TenantID               string `json:"tenant_id"`
	CalculationStartedAt   string `json:"calculation_started_at"`
	CalculationCompletedAt string `json:"calculation_completed_at"`
	CalculationDurationMs  int64  `json:"calculation_duration_ms"`
	CalculationOutcome     string `json:"calculation_outcome"`
}

type CalculationResult struct {
	Messages  []CalculationMessage `json:"messages"`
	Estimates []ProcessedEstimate  `json:"estimates"`
}

type ProcessedEstimate struct {
	Instruction               Instruction     `json:"instruction"`
	Result                    json.RawMessage `json:"result"`
	Comparison                []PatchOp       `json:"comparison"`
	CalculationMessageIndexes []int           `json:"calculation_message_indexes,omitempty"`
}

// PatchOp is a single RFC 6902 operation. Value is omitted for "remove".
type PatchOp struct {
	Op    string      `json:"op"`
	Path  string      `json:"path"`
	Value interface{} `json:"value"`
}

func (p PatchOp) MarshalJSON() ([]byte, error) {
	if p.Op == "remove" {
		return json.Marshal(struct {
			Op   string `json:"op"`
			Path string `json:"path"`
		}{p.Op, p.Path})
	}
	type op PatchOp
	return json.Marshal(op(p))
}

type ErrorResponse struct {
	Status  int               `json:"status"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

const (
	OutcomeSuccess = "SUCCESS"
	OutcomeFailure = "FAILURE"
)
