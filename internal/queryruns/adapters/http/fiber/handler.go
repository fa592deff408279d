package fiber

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"enrollment-dashboard-service/internal/queryruns/core/domain"
	"enrollment-dashboard-service/internal/queryruns/core/usecase"

	"github.com/gofiber/fiber/v2"
)

type ListQueryRunsUseCase interface {
	Execute(ctx context.Context, in usecase.ListQueryRunsInput) ([]domain.QueryRun, error)
}

type QueryRunsHandler struct {
	uc ListQueryRunsUseCase
}

func NewQueryRunsHandler(uc ListQueryRunsUseCase) *QueryRunsHandler {
	return &QueryRunsHandler{uc: uc}
}

// ListQueryRuns godoc
// @Summary List recent remote query runs
// @Description Returns the newest calls made to the reporting endpoint, with status and timing
// @Tags Diagnostics
// @Produce json
// @Param limit query int false "Maximum number of runs (1-200, default 20)"
// @Success 200 {object} QueryRunsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Diagnostics disabled"
// @Failure 500 {object} ErrorResponse
// @Router /api/diagnostics/query-runs [get]
func (h *QueryRunsHandler) ListQueryRuns(c *fiber.Ctx) error {
	var limit int
	if s := c.Query("limit", ""); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
				Error:   "invalid_limit",
				Message: "invalid 'limit' parameter",
			})
		}
		limit = n
	}

	runs, err := h.uc.Execute(c.UserContext(), usecase.ListQueryRunsInput{Limit: limit})
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidLimit):
			return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
				Error:   "invalid_limit",
				Message: err.Error(),
			})
		case errors.Is(err, usecase.ErrDiagnosticsDisabled):
			return c.Status(http.StatusNotFound).JSON(ErrorResponse{
				Error:   "diagnostics_disabled",
				Message: err.Error(),
			})
		default:
			return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
				Error: "internal_server_error",
			})
		}
	}

	resp := QueryRunsResponse{Runs: make([]QueryRunResponse, 0, len(runs))}
	for _, r := range runs {
		resp.Runs = append(resp.Runs, QueryRunResponse{
			ID:            r.ID,
			QueryName:     r.QueryName,
			RequestedAt:   r.RequestedAt.UTC().Format(time.RFC3339),
			URL:           r.URL,
			StatusCode:    r.StatusCode,
			ElapsedMs:     r.ElapsedMs,
			RequestID:     r.RequestID,
			CorrelationID: r.CorrelationID,
			Succeeded:     r.Succeeded,
			ErrorKind:     r.ErrorKind,
			ErrorMessage:  r.ErrorMessage,
			RowCount:      r.RowCount,
		})
	}

	return c.Status(http.StatusOK).JSON(resp)
}
