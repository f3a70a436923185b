package scenarios

import (
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tourism-engine/internal/estimator"
	"tourism-engine/internal/model"
)

func TestRegistry(t *testing.T) {
	_, ok := Get(SoccerTourists)
	assert.True(t, ok)
	_, ok = Get(SeasonalTourists)
	assert.True(t, ok)
	_, ok = Get("museum_visits")
	assert.False(t, ok)

	assert.Equal(t, []string{"seasonal_tourists", "soccer_tourists"}, Names())
}

func TestSoccerHandler(t *testing.T) {
	h, _ := Get(SoccerTourists)

	res, msgs := h.Estimate(json.RawMessage(`{"baseline_annual_attendance": 820000, "world_cup_effect": "modest"}`), nil)
	require.Empty(t, msgs)

	sr, ok := res.(estimator.SoccerResult)
	require.True(t, ok)
	assert.Equal(t, 902000, sr.ProjectedTotalAttendance)
	assert.Equal(t, 123574, sr.EstimatedOutOfPrefectureTourists)
}

func TestSoccerHandler_DefaultsToNone(t *testing.T) {
	h, _ := Get(SoccerTourists)

	res, msgs := h.Estimate(json.RawMessage(`{"baseline_annual_attendance": 1000}`), nil)
	require.Empty(t, msgs)
	assert.Equal(t, "none", res.(estimator.SoccerResult).Scenario.WorldCupEffect)
}

func TestSoccerHandler_InvalidScenario(t *testing.T) {
	h, _ := Get(SoccerTourists)

	res, msgs := h.Estimate(json.RawMessage(`{"baseline_annual_attendance": 1000, "world_cup_effect": "unknown"}`), nil)
	assert.Nil(t, res)
	require.Len(t, msgs, 1)
	assert.Equal(t, model.LevelCritical, msgs[0].Level)
	assert.Equal(t, model.CodeInvalidScenario, msgs[0].Code)
	assert.Contains(t, msgs[0].Message, `"unknown"`)
}

func TestSoccerHandler_InvalidProperties(t *testing.T) {
	h, _ := Get(SoccerTourists)

	res, msgs := h.Estimate(json.RawMessage(`{"baseline_annual_attendance": "lots"}`), nil)
	assert.Nil(t, res)
	require.Len(t, msgs, 1)
	assert.Equal(t, model.CodeInvalidProperties, msgs[0].Code)
}

func TestSeasonalHandler(t *testing.T) {
	h, _ := Get(SeasonalTourists)

	res, msgs := h.Estimate(json.RawMessage(`{"baseline_visitors": 2936600, "quarter": 2, "promotion_campaign": true}`), nil)
	require.Empty(t, msgs)

	sr := res.(estimator.SeasonalResult)
	assert.Equal(t, 4660384, sr.EstimatedTotalVisitors)
	assert.Equal(t, "2Q", sr.Scenario.Quarter)
}

func TestSeasonalHandler_UnrecognizedQuarterWarns(t *testing.T) {
	h, _ := Get(SeasonalTourists)

	res, msgs := h.Estimate(json.RawMessage(`{"baseline_visitors": 1000, "quarter": 7}`), nil)
	require.Len(t, msgs, 1)
	assert.Equal(t, model.LevelWarning, msgs[0].Level)
	assert.Equal(t, model.CodeUnrecognizedQuarter, msgs[0].Code)

	sr := res.(estimator.SeasonalResult)
	assert.Equal(t, 1000, sr.EstimatedTotalVisitors)
	assert.Equal(t, 1.0, sr.Coefficients.SeasonalFactor)
}

func TestBaselineRef(t *testing.T) {
	assert.Equal(t, "saitama_2025_q1", BaselineRef(json.RawMessage(`{"baseline_ref": "saitama_2025_q1", "quarter": 2}`)))
	assert.Equal(t, "", BaselineRef(json.RawMessage(`{"quarter": 2}`)))
	assert.Equal(t, "", BaselineRef(nil))
	assert.Equal(t, "", BaselineRef(json.RawMessage(`[1,2]`)))
}

func TestHandlers_UseResolvedBaseline(t *testing.T) {
	baselines := Baselines{"saitama_2025_q1": 2936600}

	h, _ := Get(SeasonalTourists)
	res, msgs := h.Estimate(json.RawMessage(`{"baseline_ref": "saitama_2025_q1", "quarter": 1}`), baselines)
	require.Empty(t, msgs)
	assert.Equal(t, 2936600, res.(estimator.SeasonalResult).EstimatedTotalVisitors)

	h, _ = Get(SoccerTourists)
	res, msgs = h.Estimate(json.RawMessage(`{"baseline_ref": "missing"}`), baselines)
	assert.Nil(t, res)
	require.Len(t, msgs, 1)
	assert.Equal(t, model.CodeUnknownBaselineRef, msgs[0].Code)
}

func TestHandlers_RefOverridesLiteralBaseline(t *testing.T) {
	baselines := Baselines{"saitama_2025_q1": 2936600, "jleague_urawa_omiya": 820000}

	h, _ := Get(SeasonalTourists)
	res, msgs := h.Estimate(json.RawMessage(`{"baseline_visitors": 1000, "baseline_ref": "saitama_2025_q1", "quarter": 2, "promotion_campaign": true}`), baselines)
	require.Len(t, msgs, 1)
	assert.Equal(t, model.LevelWarning, msgs[0].Level)
	assert.Equal(t, model.CodeBaselineRefOverride, msgs[0].Code)
	assert.Contains(t, msgs[0].Message, "1000")
	assert.Equal(t, 4660384, res.(estimator.SeasonalResult).EstimatedTotalVisitors)

	h, _ = Get(SoccerTourists)
	res, msgs = h.Estimate(json.RawMessage(`{"baseline_annual_attendance": 5, "baseline_ref": "jleague_urawa_omiya", "world_cup_effect": "modest"}`), baselines)
	require.Len(t, msgs, 1)
	assert.Equal(t, model.CodeBaselineRefOverride, msgs[0].Code)
	sr := res.(estimator.SoccerResult)
	assert.Equal(t, 902000, sr.ProjectedTotalAttendance)
	assert.Equal(t, 123574, sr.EstimatedOutOfPrefectureTourists)
}
