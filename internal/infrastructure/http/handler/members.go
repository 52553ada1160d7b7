package handler

import (
	"net/http"

	"github.com/rezkam/weekly/internal/infrastructure/http/response"
)

// ListMembers implements GET /v1/members.
func (h *WeeklyHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
	overview, err := h.svc.Overview(r.Context())
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}
	response.OK(w, overview)
}
