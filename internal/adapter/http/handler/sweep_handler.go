package handler

import (
	"net/http"
	"time"

	"safenode/internal/core/domain"
	"safenode/internal/core/ports"
	"safenode/pkg/apperror"
	"safenode/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// SweepHandler exposes the sweep pipeline to operators.
type SweepHandler struct {
	runner  ports.SweepRunner
	lock    ports.CycleLock
	lockTTL time.Duration
	log     zerolog.Logger
}

// NewSweepHandler creates a new SweepHandler.
func NewSweepHandler(runner ports.SweepRunner, lock ports.CycleLock, lockTTL time.Duration, log zerolog.Logger) *SweepHandler {
	return &SweepHandler{runner: runner, lock: lock, lockTTL: lockTTL, log: log}
}

// CycleResponse is the wire shape of a completed sweep cycle.
type CycleResponse struct {
	Scanned     int    `json:"scanned"`
	Processed   int    `json:"processed"`
	TotalSwept  string `json:"total_swept"`
	Concurrency int    `json:"concurrency"`
	StartedAt   int64  `json:"started_at"`
	ElapsedMS   int64  `json:"elapsed_ms"`
}

func toCycleResponse(r *domain.CycleResult) CycleResponse {
	return CycleResponse{
		Scanned:     r.Scanned,
		Processed:   r.Processed,
		TotalSwept:  r.TotalSwept.String(),
		Concurrency: r.Concurrency,
		StartedAt:   r.StartedAt.Unix(),
		ElapsedMS:   r.Elapsed.Milliseconds(),
	}
}

// Run handles POST /internal/sweep/run — executes one cycle synchronously.
// It takes the same lock as the scheduler so a manual trigger never overlaps
// a scheduled run.
func (h *SweepHandler) Run(c *gin.Context) {
	ctx := c.Request.Context()

	if h.lock != nil {
		runID := uuid.New().String()
		acquired, err := h.lock.TryAcquire(ctx, runID, h.lockTTL)
		if err != nil {
			h.log.Warn().Err(err).Msg("cycle lock unavailable, running unguarded")
		} else if !acquired {
			response.Error(c, apperror.ErrCycleInProgress())
			return
		} else {
			defer func() {
				if err := h.lock.Release(ctx, runID); err != nil {
					h.log.Warn().Err(err).Msg("cycle lock release failed")
				}
			}()
		}
	}

	result, err := h.runner.RunOnce(ctx)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, toCycleResponse(result))
}

// Status handles GET /internal/sweep/status — the most recent cycle, if any.
func (h *SweepHandler) Status(c *gin.Context) {
	last := h.runner.LastResult()
	if last == nil {
		response.Error(c, apperror.New("OPS_003", "No sweep cycle has completed yet", http.StatusNotFound))
		return
	}
	response.OK(c, toCycleResponse(last))
}
