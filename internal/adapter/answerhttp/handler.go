// Package answerhttp exposes the pipeline over HTTP. It is plumbing only;
// all semantics live in the usecase layer.
package answerhttp

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"answer-orchestrator/internal/domain"
	"answer-orchestrator/internal/usecase"
)

type Handler struct {
	answerUsecase usecase.AnswerQuestionUsecase
	cache         domain.ResultCache
	logger        *slog.Logger
}

func NewHandler(answerUsecase usecase.AnswerQuestionUsecase, cache domain.ResultCache, logger *slog.Logger) *Handler {
	return &Handler{
		answerUsecase: answerUsecase,
		cache:         cache,
		logger:        logger,
	}
}

// RegisterRoutes mounts all endpoints on the echo instance.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.POST("/v1/answer", h.Answer)
	e.GET("/v1/health", h.Health)
	e.GET("/v1/cache/stats", h.CacheStats)
}

type answerRequest struct {
	Question string `json:"question"`
}

type answerResponse struct {
	Answer string `json:"answer"`
	Cached bool   `json:"cached"`
}

// Answer runs one question through the pipeline.
// (POST /v1/answer)
func (h *Handler) Answer(ctx echo.Context) error {
	var req answerRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}

	answer, err := h.answerUsecase.Execute(ctx.Request().Context(), req.Question)
	switch {
	case errors.Is(err, domain.ErrEmptyQuestion):
		return ctx.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, domain.ErrSearchUnavailable),
		errors.Is(err, domain.ErrSynthesisUnavailable):
		return ctx.JSON(http.StatusBadGateway, map[string]string{"error": err.Error()})
	case err != nil:
		return ctx.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return ctx.JSON(http.StatusOK, answerResponse{Answer: answer.Text, Cached: answer.Cached})
}

// Health reports liveness.
// (GET /v1/health)
func (h *Handler) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// CacheStats reports the number of memoized answers.
// (GET /v1/cache/stats)
func (h *Handler) CacheStats(ctx echo.Context) error {
	size, err := h.cache.Size(ctx.Request().Context())
	if err != nil {
		h.logger.Warn("cache stats unavailable", "error", err)
		return ctx.JSON(http.StatusServiceUnavailable, map[string]string{"error": "cache unavailable"})
	}
	return ctx.JSON(http.StatusOK, map[string]int64{"keys": size})
}
