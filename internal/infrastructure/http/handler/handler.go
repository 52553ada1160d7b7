package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rezkam/weekly/internal/application/weekly"
	"github.com/rezkam/weekly/internal/domain"
	mw "github.com/rezkam/weekly/internal/infrastructure/http/middleware"
	"github.com/rezkam/weekly/internal/infrastructure/http/openapi"
	"github.com/rezkam/weekly/internal/infrastructure/http/response"
)

// WeeklyService is the part of the weekly application service the HTTP
// adapter calls.
type WeeklyService interface {
	Overview(ctx context.Context) (weekly.Overview, error)
	FetchTasks(ctx context.Context, member string) (domain.TaskSet, error)
	GenerateReport(ctx context.Context, member string, set domain.TaskSet) (weekly.Draft, error)
	Submit(ctx context.Context, req weekly.SubmitRequest) (weekly.SubmitResult, error)
	SetLeave(ctx context.Context, memberID string, onLeave bool) error
	SyncLeave(ctx context.Context, memberIDs []string) (weekly.LeaveSync, error)
	AppendTeamSummary(ctx context.Context) (weekly.TeamSummaryResult, error)
}

var _ WeeklyService = (*weekly.Service)(nil)

// WeeklyHandler adapts HTTP requests to weekly service calls.
type WeeklyHandler struct {
	svc WeeklyService
}

// NewWeeklyHandler creates a new HTTP API handler.
func NewWeeklyHandler(svc WeeklyService) *WeeklyHandler {
	return &WeeklyHandler{svc: svc}
}

// NewOpenAPIRouter creates an HTTP handler with OpenAPI validation and all
// API routes. Admin routes require adminToken as a bearer token unless it is
// empty. Production code and tests both build the API through here.
func NewOpenAPIRouter(svc WeeklyService, adminToken string) (http.Handler, error) {
	h := NewWeeklyHandler(svc)

	spec, err := openapi.GetSwagger()
	if err != nil {
		return nil, fmt.Errorf("failed to load OpenAPI spec: %w", err)
	}

	r := chi.NewRouter()
	r.Use(mw.NewValidator(spec, mw.ValidationConfig{MultiError: true}))

	r.Route("/v1", func(r chi.Router) {
		r.Get("/members", h.ListMembers)
		r.Get("/tasks", h.ListTasks)
		r.Post("/reports/generate", h.GenerateReport)
		r.Post("/reports/submit", h.SubmitReport)

		r.Route("/admin", func(r chi.Router) {
			r.Use(mw.AdminAuth(adminToken))
			r.Post("/leave", h.SetLeave)
			r.Post("/leave/sync", h.SyncLeave)
			r.Post("/summary", h.AppendTeamSummary)
		})
	})

	return r, nil
}

// decode reads a JSON body into v, writing a 400 on failure.
func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		response.BadRequest(w, "invalid JSON body")
		return false
	}
	return true
}
