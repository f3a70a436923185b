package engine

import (
	"context"
	"fmt"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"tourism-engine/internal/baseline"
	"tourism-engine/internal/compare"
	"tourism-engine/internal/metrics"
	"tourism-engine/internal/model"
	"tourism-engine/internal/scenarios"
)

var jsonNull = json.RawMessage("null")

// BaselineResolver resolves named baselines referenced by instructions.
type BaselineResolver interface {
	ResolveAll(ctx context.Context, refs []string) (map[string]int, error)
}

type Engine struct {
	baselines BaselineResolver
}

// New creates an Engine. A nil resolver falls back to the built-in presets.
func New(baselines BaselineResolver) *Engine {
	if baselines == nil {
		baselines = baseline.New(baseline.Options{})
	}
	return &Engine{baselines: baselines}
}

// Process runs every instruction in order. Instructions are independent: a
// CRITICAL message fails that instruction and the overall outcome, but later
// instructions still run. The only error is a cancelled baseline lookup.
func (e *Engine) Process(ctx context.Context, req *model.EstimateRequest) (*model.EstimateResponse, error) {
	start := time.Now()
	instructions := req.EstimateInstructions.Estimates

	refs := make([]string, 0, len(instructions))
	for _, inst := range instructions {
		if ref := scenarios.BaselineRef(inst.EstimateProperties); ref != "" {
			refs = append(refs, ref)
		}
	}
	resolved, err := e.baselines.ResolveAll(ctx, refs)
	if err != nil {
		return nil, eris.Wrap(err, "engine: resolve baselines")
	}
	baselines := scenarios.Baselines(resolved)

	allMessages := []model.CalculationMessage{}
	processed := make([]model.ProcessedEstimate, 0, len(instructions))
	succeeded := make(map[string]json.RawMessage, len(instructions))
	outcome := model.OutcomeSuccess

	for _, inst := range instructions {
		var msgs []model.CalculationMessage
		result := jsonNull
		var comparison []model.PatchOp

		handler, ok := scenarios.Get(inst.EstimatorName)
		if !ok {
			msgs = append(msgs, model.Critical(model.CodeUnknownEstimator,
				fmt.Sprintf("Unknown estimator: %s", inst.EstimatorName)))
		} else {
			res, hm := handler.Estimate(inst.EstimateProperties, baselines)
			msgs = append(msgs, hm...)
			if !model.HasCritical(msgs) {
				result, err = json.Marshal(res)
				if err != nil {
					return nil, eris.Wrapf(err, "engine: encode result for %s", inst.InstructionID)
				}
			}
		}

		failed := model.HasCritical(msgs)
		if !failed && inst.CompareWith != "" {
			comparison, msgs = compareWith(inst, result, succeeded, msgs)
		}

		var msgIndexes []int
		for _, m := range msgs {
			m.ID = len(allMessages)
			allMessages = append(allMessages, m)
			msgIndexes = append(msgIndexes, m.ID)
		}

		processed = append(processed, model.ProcessedEstimate{
			Instruction:               inst,
			Result:                    result,
			Comparison:                comparison,
			CalculationMessageIndexes: msgIndexes,
		})

		instOutcome := model.OutcomeSuccess
		if failed {
			instOutcome = model.OutcomeFailure
			outcome = model.OutcomeFailure
		} else {
			succeeded[inst.InstructionID] = result
		}
		metrics.EstimatesTotal.WithLabelValues(estimatorLabel(inst.EstimatorName, ok), instOutcome).Inc()
	}

	elapsed := time.Since(start)
	now := time.Now().UTC()
	metrics.CalculationDuration.Observe(elapsed.Seconds())

	zap.L().Debug("engine: processed estimate request",
		zap.String("tenant_id", req.TenantID),
		zap.Int("instructions", len(instructions)),
		zap.Int("messages", len(allMessages)),
		zap.String("outcome", outcome),
		zap.Duration("elapsed", elapsed),
	)

	return &model.EstimateResponse{
		CalculationMetadata: model.CalculationMetadata{
			CalculationID:          uuid.New().String(),
			TenantID:               req.TenantID,
			CalculationStartedAt:   now.Add(-elapsed).Format(time.RFC3339),
			CalculationCompletedAt: now.Format(time.RFC3339),
			CalculationDurationMs:  elapsed.Milliseconds(),
			CalculationOutcome:     outcome,
		},
		CalculationResult: model.CalculationResult{
			Messages:  allMessages,
			Estimates: processed,
		},
	}, nil
}

// compareWith diffs result against an earlier successful instruction.
func compareWith(inst model.Instruction, result json.RawMessage, succeeded map[string]json.RawMessage, msgs []model.CalculationMessage) ([]model.PatchOp, []model.CalculationMessage) {
	base, ok := succeeded[inst.CompareWith]
	if !ok {
		return nil, append(msgs, model.Warning(model.CodeUnknownComparisonTarget,
			fmt.Sprintf("No earlier successful estimate with instruction_id %s", inst.CompareWith)))
	}

	ops, err := compare.Results(base, result)
	if err != nil {
		return nil, append(msgs, model.Warning(model.CodeUnknownComparisonTarget, err.Error()))
	}
	if ops == nil {
		ops = []model.PatchOp{}
	}
	return ops, msgs
}

func estimatorLabel(name string, known bool) string {
	if !known {
		return "unknown"
	}
	return name
}
