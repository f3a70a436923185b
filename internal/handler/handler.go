package handler

import (
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	json "github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
	"go.uber.org/zap"

	"tourism-engine/internal/engine"
	"tourism-engine/internal/estimator"
	"tourism-engine/internal/metrics"
	"tourism-engine/internal/model"
	"tourism-engine/internal/scenarios"
)

// Handler serves the estimate API over fasthttp.
type Handler struct {
	engine   *engine.Engine
	validate *validator.Validate
	metrics  fasthttp.RequestHandler
}

func New(e *engine.Engine) *Handler {
	return &Handler{
		engine:   e,
		validate: newValidator(),
		metrics:  fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler()),
	}
}

// ScenarioCatalog lists the coefficient tables behind each estimator.
type ScenarioCatalog struct {
	Estimators          []string           `json:"estimators" yaml:"estimators"`
	WorldCupEffects     map[string]float64 `json:"world_cup_effects" yaml:"world_cup_effects"`
	OutOfPrefectureRate float64            `json:"out_of_prefecture_rate" yaml:"out_of_prefecture_rate"`
	QuarterSeasonality  map[string]float64 `json:"quarter_seasonality" yaml:"quarter_seasonality"`
	PromotionFactor     float64            `json:"promotion_factor" yaml:"promotion_factor"`
	AttractionFactor    float64            `json:"attraction_factor" yaml:"attraction_factor"`
}

// Catalog builds the ScenarioCatalog from the estimator tables.
func Catalog() ScenarioCatalog {
	quarters := make(map[string]float64)
	for _, q := range estimator.Quarters() {
		f, _ := estimator.SeasonalFactor(q)
		quarters[strconv.Itoa(q)] = f
	}
	return ScenarioCatalog{
		Estimators:          scenarios.Names(),
		WorldCupEffects:     estimator.WorldCupCoefficients(),
		OutOfPrefectureRate: estimator.OutOfPrefectureRate,
		QuarterSeasonality:  quarters,
		PromotionFactor:     estimator.PromotionFactor,
		AttractionFactor:    estimator.AttractionFactor,
	}
}

// ServeHTTP routes a request and records logs and metrics for it.
func (h *Handler) ServeHTTP(ctx *fasthttp.RequestCtx) {
	start := time.Now()

	h.route(ctx)

	method := string(ctx.Method())
	path := string(ctx.Path())
	status := ctx.Response.StatusCode()
	elapsed := time.Since(start)

	metrics.HTTPRequestsTotal.WithLabelValues(method, routeLabel(path), strconv.Itoa(status)).Inc()
	metrics.HTTPRequestDuration.WithLabelValues(method, routeLabel(path)).Observe(elapsed.Seconds())

	zap.L().Info("http request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", status),
		zap.Duration("duration", elapsed),
	)
}

func (h *Handler) route(ctx *fasthttp.RequestCtx) {
	switch string(ctx.Path()) {
	case "/estimates":
		if !ctx.IsPost() {
			writeError(ctx, fasthttp.StatusMethodNotAllowed, "Method not allowed", nil)
			return
		}
		h.handleEstimates(ctx)
	case "/scenarios":
		if !ctx.IsGet() {
			writeError(ctx, fasthttp.StatusMethodNotAllowed, "Method not allowed", nil)
			return
		}
		writeJSON(ctx, fasthttp.StatusOK, Catalog())
	case "/healthz":
		if !ctx.IsGet() {
			writeError(ctx, fasthttp.StatusMethodNotAllowed, "Method not allowed", nil)
			return
		}
		writeJSON(ctx, fasthttp.StatusOK, map[string]string{"status": "ok"})
	case "/metrics":
		if !ctx.IsGet() {
			writeError(ctx, fasthttp.StatusMethodNotAllowed, "Method not allowed", nil)
			return
		}
		h.metrics(ctx)
	default:
		writeError(ctx, fasthttp.StatusNotFound, "Not found", nil)
	}
}

func (h *Handler) handleEstimates(ctx *fasthttp.RequestCtx) {
	var req model.EstimateRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "Invalid request body: "+err.Error(), nil)
		return
	}

	if err := h.validate.Struct(&req); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "Request validation failed", formatValidationError(err))
		return
	}

	seen := make(map[string]struct{}, len(req.EstimateInstructions.Estimates))
	for _, inst := range req.EstimateInstructions.Estimates {
		if _, dup := seen[inst.InstructionID]; dup {
			writeError(ctx, fasthttp.StatusBadRequest, "Duplicate instruction_id: "+inst.InstructionID, nil)
			return
		}
		seen[inst.InstructionID] = struct{}{}
	}

	resp, err := h.engine.Process(ctx, &req)
	if err != nil {
		zap.L().Error("estimate request failed", zap.String("tenant_id", req.TenantID), zap.Error(err))
		writeError(ctx, fasthttp.StatusInternalServerError, "Calculation failed", nil)
		return
	}

	writeJSON(ctx, fasthttp.StatusOK, resp)
}

// routeLabel bounds metric label cardinality to known routes.
func routeLabel(path string) string {
	switch path {
	case "/estimates", "/scenarios", "/healthz", "/metrics":
		return path
	}
	return "other"
}

func writeJSON(ctx *fasthttp.RequestCtx, status int, v interface{}) {
	b, err := json.Marshal(v)
	if err != nil {
		zap.L().Error("encode response", zap.Error(err))
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		return
	}
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(b)
}

func writeError(ctx *fasthttp.RequestCtx, status int, message string, fields map[string]string) {
	writeJSON(ctx, status, model.ErrorResponse{
		Status:  status,
		Message: message,
		Fields:  fields,
	})
}
