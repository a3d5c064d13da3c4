// Package handler contains the HTTP handlers for the REST API.
package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/sahildeshmukh45/tl/internal/apperror"
	"github.com/sahildeshmukh45/tl/internal/auth"
	"github.com/sahildeshmukh45/tl/internal/capture"
	"github.com/sahildeshmukh45/tl/internal/dashboard"
	"github.com/sahildeshmukh45/tl/internal/repos"
	"github.com/sahildeshmukh45/tl/internal/tracking"
	"github.com/sahildeshmukh45/tl/internal/user"
)

// Handler wraps the services behind the HTTP surface.
type Handler struct {
	log      *zap.Logger
	validate *validator.Validate

	tracking  *tracking.Service
	capture   *capture.Service
	users     *user.Service
	dashboard *dashboard.Service
	projects  *repos.ProjectsRepo
	tasks     *repos.TasksRepo
	tokens    *auth.TokenProvider
}

func New(log *zap.Logger, validate *validator.Validate, trackingSvc *tracking.Service,
	captureSvc *capture.Service, userSvc *user.Service, dashboardSvc *dashboard.Service,
	projects *repos.ProjectsRepo, tasks *repos.TasksRepo, tokens *auth.TokenProvider) *Handler {
	return &Handler{
		log:       log,
		validate:  validate,
		tracking:  trackingSvc,
		capture:   captureSvc,
		users:     userSvc,
		dashboard: dashboardSvc,
		projects:  projects,
		tasks:     tasks,
		tokens:    tokens,
	}
}

// Routes builds the full router.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/healthz", h.Healthz)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", h.Login)
			r.Post("/register", h.Register)
			r.Post("/forgot-password", h.ForgotPassword)
			r.Post("/reset-password", h.ResetPassword)
		})

		r.Group(func(r chi.Router) {
			r.Use(h.tokens.Middleware(h.log))

			r.Post("/auth/logout", h.Logout)

			r.Route("/time-tracking", func(r chi.Router) {
				r.Post("/punch-in", h.PunchIn)
				r.Post("/punch-out", h.PunchOut)
				r.Post("/lunch/start", h.StartLunch)
				r.Post("/lunch/end", h.EndLunch)
				r.Post("/break/start", h.StartBreak)
				r.Post("/break/end", h.EndBreak)
				r.Post("/manual", h.CreateManualEntry)
				r.Get("/current", h.CurrentEntry)
				r.Get("/entries", h.Entries)
				r.Get("/total-hours", h.TotalHours)
				r.Get("/overtime-hours", h.OvertimeHours)
				r.Get("/pending-approval", h.PendingApproval)
				r.Post("/{id}/approve", h.ApproveEntry)
				r.Delete("/{id}", h.DeleteEntry)
			})

			r.Route("/screenshots", func(r chi.Router) {
				r.Post("/capture", h.CaptureScreenshot)
				r.Get("/", h.UserScreenshots)
				r.Get("/latest", h.LatestScreenshots)
				r.Get("/entry/{id}", h.TimeEntryScreenshots)
				r.Post("/{id}/approve", h.ApproveScreenshot)
				r.Delete("/{id}", h.DeleteScreenshot)
			})

			r.Route("/users", func(r chi.Router) {
				r.Get("/", h.ListUsers)
				r.Get("/me", h.Me)
				r.Get("/search", h.SearchUsers)
				r.Post("/change-password", h.ChangePassword)
				r.Get("/{id}", h.GetUser)
				r.Put("/{id}", h.UpdateUser)
				r.Post("/{id}/activate", h.ActivateUser)
				r.Post("/{id}/deactivate", h.DeactivateUser)
			})

			r.Route("/projects", func(r chi.Router) {
				r.Get("/", h.ListProjects)
				r.Post("/", h.CreateProject)
				r.Get("/{id}", h.GetProject)
				r.Get("/{id}/tasks", h.ProjectTasks)
			})

			r.Route("/tasks", func(r chi.Router) {
				r.Get("/", h.ListTasks)
				r.Post("/", h.CreateTask)
				r.Get("/{id}", h.GetTask)
			})

			r.Route("/dashboard", func(r chi.Router) {
				r.Get("/stats", h.Stats)
				r.Get("/user-stats", h.UserStats)
				r.Get("/team-stats", h.TeamStats)
				r.Get("/project-stats", h.ProjectStats)
				r.Get("/recent-activities", h.RecentActivities)
				r.Get("/productivity-chart", h.ProductivityChart)
				r.Get("/online-users", h.OnlineUsers)
			})
		})
	})

	return r
}

// Healthz is a simple health check endpoint.
func (h *Handler) Healthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Error("unable to write response stream", zap.Error(err))
	}
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var validationErr validator.ValidationErrors
	if errors.As(err, &validationErr) {
		h.writeJSON(w, http.StatusBadRequest, apperror.CustomValidationError(err))
		return
	}

	status := apperror.HTTPStatus(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		h.log.Error("request failed", zap.Error(err))
		msg = "internal server error"
	}
	h.writeJSON(w, status, map[string]string{"error": msg})
}

// decode parses and validates a required JSON body. It writes the error
// response itself and reports whether the caller should continue.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		h.log.Warn("failed to decode json", zap.Error(err))
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request payload"})
		return false
	}
	if err := h.validate.Struct(v); err != nil {
		h.log.Warn("validation failed", zap.Error(err))
		h.writeError(w, err)
		return false
	}
	return true
}

// decodeOptional parses a JSON body that may be absent or empty.
func (h *Handler) decodeOptional(w http.ResponseWriter, r *http.Request, v any) bool {
	err := json.NewDecoder(r.Body).Decode(v)
	if err != nil && !errors.Is(err, io.EOF) {
		h.log.Warn("failed to decode json", zap.Error(err))
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request payload"})
		return false
	}
	return true
}

func callerID(r *http.Request) int64 {
	claims, ok := auth.ClaimsFrom(r.Context())
	if !ok {
		return 0
	}
	return claims.UserID
}

// dateRange reads startDate/endDate query params (2006-01-02). The end date
// is widened to the end of its day; both default to the trailing week.
func dateRange(r *http.Request) (time.Time, time.Time, error) {
	now := time.Now()
	start := now.AddDate(0, 0, -7)
	end := now

	if s := r.URL.Query().Get("startDate"); s != "" {
		parsed, err := time.Parse("2006-01-02", s)
		if err != nil {
			return start, end, err
		}
		start = parsed
	}
	if s := r.URL.Query().Get("endDate"); s != "" {
		parsed, err := time.Parse("2006-01-02", s)
		if err != nil {
			return start, end, err
		}
		end = parsed.Add(24*time.Hour - time.Second)
	}
	return start, end, nil
}
