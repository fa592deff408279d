package fiber

import (
	"context"
	"errors"
	"math"
	"net/http"
	"time"

	"enrollment-dashboard-service/internal/enrollments/core/domain"

	"github.com/gofiber/fiber/v2"
)

type FetchEnrollmentsUseCase interface {
	Execute(ctx context.Context) (*domain.Snapshot, error)
}

type EnrollmentsHandler struct {
	uc FetchEnrollmentsUseCase
}

func NewEnrollmentsHandler(uc FetchEnrollmentsUseCase) *EnrollmentsHandler {
	return &EnrollmentsHandler{uc: uc}
}

// GetEnrollments godoc
// @Summary Enrollment counts per branch
// @Description Returns the cached per-branch enrollment totals, largest first
// @Tags Enrollments
// @Produce json
// @Success 200 {object} EnrollmentsResponse
// @Failure 502 {object} ErrorResponse "Reporting endpoint failed"
// @Failure 500 {object} ErrorResponse
// @Router /api/enrollments [get]
func (h *EnrollmentsHandler) GetEnrollments(c *fiber.Ctx) error {
	snap, err := h.uc.Execute(c.UserContext())
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRemoteQuery):
			return c.Status(http.StatusBadGateway).JSON(ErrorResponse{
				Error:   "remote_query_failed",
				Message: err.Error(),
			})
		default:
			return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
				Error: "internal_server_error",
			})
		}
	}

	rows := domain.SortRows(snap.Rows)

	resp := EnrollmentsResponse{
		Total:     snap.Total,
		FetchedAt: snap.FetchedAt.UTC().Format(time.RFC3339),
		Rows:      make([]EnrollmentRowResponse, 0, len(rows)),
		Query: QueryInfoResponse{
			URL:           snap.Meta.URL,
			StatusCode:    snap.Meta.StatusCode,
			ElapsedSecs:   math.Round(snap.Meta.Elapsed.Seconds()*1000) / 1000,
			RequestedAt:   snap.Meta.Timestamp.UTC().Format(time.RFC3339),
			RequestID:     snap.Meta.RequestID,
			CorrelationID: snap.Meta.CorrelationID(),
		},
	}

	for _, r := range rows {
		resp.Rows = append(resp.Rows, EnrollmentRowResponse{
			Branch: r.Branch,
			Count:  r.Count,
		})
	}

	return c.Status(http.StatusOK).JSON(resp)
}

// Health godoc
// @Summary Liveness probe
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /healthz [get]
func Health(c *fiber.Ctx) error {
	return c.Status(http.StatusOK).JSON(fiber.Map{"status": "ok"})
}
