package engine

import (
	"context"
	"errors"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tourism-engine/internal/model"
)

type stubResolver struct {
	values map[string]int
	err    error
	refs   []string
}

func (s *stubResolver) ResolveAll(_ context.Context, refs []string) (map[string]int, error) {
	s.refs = refs
	if s.err != nil {
		return nil, s.err
	}
	out := map[string]int{}
	for _, r := range refs {
		if v, ok := s.values[r]; ok {
			out[r] = v
		}
	}
	return out, nil
}

func request(instructions ...model.Instruction) *model.EstimateRequest {
	return &model.EstimateRequest{
		TenantID:             "test-tenant",
		EstimateInstructions: model.EstimateInstructions{Estimates: instructions},
	}
}

func TestProcess_Soccer(t *testing.T) {
	resp, err := New(nil).Process(context.Background(), request(model.Instruction{
		InstructionID:      "a1",
		EstimatorName:      "soccer_tourists",
		EstimateProperties: json.RawMessage(`{"baseline_annual_attendance": 820000, "world_cup_effect": "modest"}`),
	}))
	require.NoError(t, err)

	assert.Equal(t, model.OutcomeSuccess, resp.CalculationMetadata.CalculationOutcome)
	assert.Equal(t, "test-tenant", resp.CalculationMetadata.TenantID)
	assert.NotEmpty(t, resp.CalculationMetadata.CalculationID)
	assert.Empty(t, resp.CalculationResult.Messages)
	require.Len(t, resp.CalculationResult.Estimates, 1)

	est := resp.CalculationResult.Estimates[0]
	assert.Equal(t, "a1", est.Instruction.InstructionID)
	assert.JSONEq(t, `{
		"scenario": {"baseline_annual_attendance": 820000, "world_cup_effect": "modest"},
		"world_cup_factor": 1.1,
		"projected_total_attendance": 902000,
		"estimated_out_of_prefecture_tourists": 123574
	}`, string(est.Result))
	assert.Nil(t, est.Comparison)
}

func TestProcess_Seasonal(t *testing.T) {
	resp, err := New(nil).Process(context.Background(), request(model.Instruction{
		InstructionID:      "s1",
		EstimatorName:      "seasonal_tourists",
		EstimateProperties: json.RawMessage(`{"baseline_visitors": 2936600, "quarter": 2, "promotion_campaign": true}`),
	}))
	require.NoError(t, err)

	assert.Equal(t, model.OutcomeSuccess, resp.CalculationMetadata.CalculationOutcome)
	assert.JSONEq(t, `{
		"scenario": {"baseline_visitors": 2936600, "quarter": "2Q", "promotion_campaign": true, "new_attraction_opens": false},
		"coefficients": {"seasonal_factor": 1.38, "promotion_factor": 1.15, "attraction_factor": 1},
		"estimated_total_visitors": 4660384
	}`, string(resp.CalculationResult.Estimates[0].Result))
}

func TestProcess_FailureDoesNotStopLaterInstructions(t *testing.T) {
	resp, err := New(nil).Process(context.Background(), request(
		model.Instruction{
			InstructionID:      "bad",
			EstimatorName:      "soccer_tourists",
			EstimateProperties: json.RawMessage(`{"baseline_annual_attendance": 1000, "world_cup_effect": "unknown"}`),
		},
		model.Instruction{
			InstructionID: "missing",
			EstimatorName: "museum_visits",
		},
		model.Instruction{
			InstructionID:      "warn",
			EstimatorName:      "seasonal_tourists",
			EstimateProperties: json.RawMessage(`{"baseline_visitors": 1000, "quarter": 9}`),
		},
	))
	require.NoError(t, err)

	assert.Equal(t, model.OutcomeFailure, resp.CalculationMetadata.CalculationOutcome)

	msgs := resp.CalculationResult.Messages
	require.Len(t, msgs, 3)
	assert.Equal(t, model.CodeInvalidScenario, msgs[0].Code)
	assert.Equal(t, model.CodeUnknownEstimator, msgs[1].Code)
	assert.Equal(t, model.CodeUnrecognizedQuarter, msgs[2].Code)
	for i, m := range msgs {
		assert.Equal(t, i, m.ID)
	}

	ests := resp.CalculationResult.Estimates
	require.Len(t, ests, 3)
	assert.Equal(t, "null", string(ests[0].Result))
	assert.Equal(t, []int{0}, ests[0].CalculationMessageIndexes)
	assert.Equal(t, "null", string(ests[1].Result))
	assert.Equal(t, []int{1}, ests[1].CalculationMessageIndexes)
	assert.Contains(t, string(ests[2].Result), `"estimated_total_visitors":1000`)
	assert.Equal(t, []int{2}, ests[2].CalculationMessageIndexes)
}

func TestProcess_WarningOnlyIsSuccess(t *testing.T) {
	resp, err := New(nil).Process(context.Background(), request(model.Instruction{
		InstructionID:      "w",
		EstimatorName:      "seasonal_tourists",
		EstimateProperties: json.RawMessage(`{"baseline_visitors": 1000, "quarter": 0}`),
	}))
	require.NoError(t, err)

	assert.Equal(t, model.OutcomeSuccess, resp.CalculationMetadata.CalculationOutcome)
	require.Len(t, resp.CalculationResult.Messages, 1)
	assert.Equal(t, model.LevelWarning, resp.CalculationResult.Messages[0].Level)
}

func TestProcess_CompareWith(t *testing.T) {
	resp, err := New(nil).Process(context.Background(), request(
		model.Instruction{
			InstructionID:      "base",
			EstimatorName:      "soccer_tourists",
			EstimateProperties: json.RawMessage(`{"baseline_annual_attendance": 820000}`),
		},
		model.Instruction{
			InstructionID:      "optimistic",
			EstimatorName:      "soccer_tourists",
			CompareWith:        "base",
			EstimateProperties: json.RawMessage(`{"baseline_annual_attendance": 820000, "world_cup_effect": "optimistic"}`),
		},
		model.Instruction{
			InstructionID:      "dangling",
			EstimatorName:      "soccer_tourists",
			CompareWith:        "later",
			EstimateProperties: json.RawMessage(`{"baseline_annual_attendance": 820000}`),
		},
	))
	require.NoError(t, err)
	assert.Equal(t, model.OutcomeSuccess, resp.CalculationMetadata.CalculationOutcome)

	assert.Equal(t, []model.PatchOp{
		{Op: "replace", Path: "/estimated_out_of_prefecture_tourists", Value: 134808.0},
		{Op: "replace", Path: "/projected_total_attendance", Value: 984000.0},
		{Op: "replace", Path: "/scenario/world_cup_effect", Value: "optimistic"},
		{Op: "replace", Path: "/world_cup_factor", Value: 1.2},
	}, resp.CalculationResult.Estimates[1].Comparison)

	require.Len(t, resp.CalculationResult.Messages, 1)
	assert.Equal(t, model.CodeUnknownComparisonTarget, resp.CalculationResult.Messages[0].Code)
	assert.Nil(t, resp.CalculationResult.Estimates[2].Comparison)
}

func TestProcess_CompareIdenticalIsEmptyPatch(t *testing.T) {
	props := json.RawMessage(`{"baseline_visitors": 10, "quarter": 3}`)
	resp, err := New(nil).Process(context.Background(), request(
		model.Instruction{InstructionID: "a", EstimatorName: "seasonal_tourists", EstimateProperties: props},
		model.Instruction{InstructionID: "b", EstimatorName: "seasonal_tourists", EstimateProperties: props, CompareWith: "a"},
	))
	require.NoError(t, err)

	cmp := resp.CalculationResult.Estimates[1].Comparison
	require.NotNil(t, cmp)
	assert.Empty(t, cmp)
}

func TestProcess_BaselineRefs(t *testing.T) {
	resolver := &stubResolver{values: map[string]int{"saitama_2025_q1": 2936600}}

	resp, err := New(resolver).Process(context.Background(), request(
		model.Instruction{
			InstructionID:      "ref",
			EstimatorName:      "seasonal_tourists",
			EstimateProperties: json.RawMessage(`{"baseline_ref": "saitama_2025_q1", "quarter": 2, "promotion_campaign": true}`),
		},
		model.Instruction{
			InstructionID:      "unknown-ref",
			EstimatorName:      "soccer_tourists",
			EstimateProperties: json.RawMessage(`{"baseline_ref": "atlantis"}`),
		},
	))
	require.NoError(t, err)

	assert.Equal(t, []string{"saitama_2025_q1", "atlantis"}, resolver.refs)
	assert.Contains(t, string(resp.CalculationResult.Estimates[0].Result), `"estimated_total_visitors":4660384`)
	require.Len(t, resp.CalculationResult.Messages, 1)
	assert.Equal(t, model.CodeUnknownBaselineRef, resp.CalculationResult.Messages[0].Code)
	assert.Equal(t, model.OutcomeFailure, resp.CalculationMetadata.CalculationOutcome)
}

func TestProcess_ResolverError(t *testing.T) {
	resolver := &stubResolver{err: errors.New("boom")}

	_, err := New(resolver).Process(context.Background(), request(model.Instruction{
		InstructionID:      "x",
		EstimatorName:      "soccer_tourists",
		EstimateProperties: json.RawMessage(`{"baseline_ref": "a"}`),
	}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "resolve baselines")
}
