package handler

import (
	"net/http"

	"github.com/rezkam/weekly/internal/application/weekly"
	"github.com/rezkam/weekly/internal/domain"
	"github.com/rezkam/weekly/internal/infrastructure/http/response"
)

type generateRequest struct {
	Member       string        `json:"member"`
	Current      []domain.Task `json:"current"`
	RecentlyDone []domain.Task `json:"recentlyDone"`
}

type submitRequest struct {
	Member    string `json:"member"`
	Content   string `json:"content"`
	ExtraInfo string `json:"extraInfo"`
}

// GenerateReport implements POST /v1/reports/generate.
func (h *WeeklyHandler) GenerateReport(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if !decode(w, r, &req) {
		return
	}

	set := domain.TaskSet{Current: req.Current, RecentlyDone: req.RecentlyDone}
	draft, err := h.svc.GenerateReport(r.Context(), req.Member, set)
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}
	response.OK(w, draft)
}

// SubmitReport implements POST /v1/reports/submit. The member field is the
// roster ID.
func (h *WeeklyHandler) SubmitReport(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if !decode(w, r, &req) {
		return
	}

	res, err := h.svc.Submit(r.Context(), weekly.SubmitRequest{
		MemberID:  req.Member,
		Content:   req.Content,
		ExtraInfo: req.ExtraInfo,
	})
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}
	response.Created(w, res)
}
