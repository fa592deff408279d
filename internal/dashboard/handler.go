package dashboard

import (
	"bytes"
	"context"
	"embed"
	"html/template"
	"net/http"
	"time"

	"enrollment-dashboard-service/internal/enrollments/core/domain"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	SessionCookie = "session_id"
	CSVPath       = "/export.csv"
	CSVFilename   = "matriculas.csv"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

type FetchEnrollments interface {
	Execute(ctx context.Context) (*domain.Snapshot, error)
}

type Handler struct {
	fetch    FetchEnrollments
	sessions *SessionStore
	title    string
	log      *zap.Logger
	now      func() time.Time
}

func NewHandler(fetch FetchEnrollments, sessions *SessionStore, title string, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{
		fetch:    fetch,
		sessions: sessions,
		title:    title,
		log:      log,
		now:      time.Now,
	}
}

// Page renders the dashboard. On a failed fetch only the error is shown;
// the page still reloads so the next cycle retries.
func (h *Handler) Page(c *fiber.Ctx) error {
	sid := h.sessionID(c)
	state := h.sessions.Touch(sid, h.now())
	if state.Refreshed {
		h.log.Debug("session refresh",
			zap.String("session", sid),
			zap.Int("refreshes", state.Session.Refreshes),
		)
	}

	snap, err := h.fetch.Execute(c.UserContext())
	if err != nil {
		h.log.Warn("dashboard render halted", zap.String("session", sid), zap.Error(err))
		return h.render(c, http.StatusBadGateway, newErrorView(h.title, err, state.ReloadAfter))
	}

	return h.render(c, http.StatusOK, newPageView(h.title, snap, state.ReloadAfter, CSVPath))
}

// ExportCSV serves the current dataset as a CSV download.
func (h *Handler) ExportCSV(c *fiber.Ctx) error {
	snap, err := h.fetch.Execute(c.UserContext())
	if err != nil {
		return c.Status(http.StatusBadGateway).SendString("Falha ao executar a consulta: " + err.Error())
	}

	body, err := EncodeCSV(domain.SortRows(snap.Rows))
	if err != nil {
		return c.Status(http.StatusInternalServerError).SendString("failed to encode csv")
	}

	c.Attachment(CSVFilename)
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	return c.Status(http.StatusOK).Send(body)
}

func (h *Handler) render(c *fiber.Ctx, status int, view PageView) error {
	var buf bytes.Buffer
	if err := pageTemplates.ExecuteTemplate(&buf, "page", view); err != nil {
		h.log.Error("failed to render dashboard", zap.Error(err))
		return c.Status(http.StatusInternalServerError).SendString("failed to render page")
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Status(status).Send(buf.Bytes())
}

// sessionID returns the caller's session id, issuing a new cookie when the
// request carries none or an invalid one.
func (h *Handler) sessionID(c *fiber.Ctx) string {
	if sid := c.Cookies(SessionCookie); sid != "" {
		if _, err := uuid.Parse(sid); err == nil {
			return sid
		}
	}
	sid := uuid.NewString()
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookie,
		Value:    sid,
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return sid
}
