package model

import json "github.com/goccy/go-json"

type EstimateRequest struct {
	TenantID             string               `json:"tenant_id" validate:"required"`
	EstimateInstructions EstimateInstructions `json:"estimate_instructions"`
}

type EstimateInstructions struct {
	Estimates []Instruction `json:"estimates" validate:"required,min=1,dive"`
}

type Instruction struct {
	InstructionID      string          `json:"instruction_id" validate:"required"`
	EstimatorName      string          `json:"estimator_name" validate:"required"`
	Label              string          `json:"label,omitempty" validate:"max=200"`
	CompareWith        string          `json:"compare_with,omitempty"`
	EstimateProperties json.RawMessage `json:"estimate_properties"`
}
