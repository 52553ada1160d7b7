package handler

import (
	"net/http"

	"github.com/rezkam/weekly/internal/infrastructure/http/response"
)

type leaveRequest struct {
	MemberID string `json:"memberId"`
	OnLeave  bool   `json:"onLeave"`
}

type leaveSyncRequest struct {
	LeaveMembers []string `json:"leaveMembers"`
}

// SetLeave implements POST /v1/admin/leave.
func (h *WeeklyHandler) SetLeave(w http.ResponseWriter, r *http.Request) {
	var req leaveRequest
	if !decode(w, r, &req) {
		return
	}
	if err := h.svc.SetLeave(r.Context(), req.MemberID, req.OnLeave); err != nil {
		response.FromDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SyncLeave implements POST /v1/admin/leave/sync.
func (h *WeeklyHandler) SyncLeave(w http.ResponseWriter, r *http.Request) {
	var req leaveSyncRequest
	if !decode(w, r, &req) {
		return
	}
	res, err := h.svc.SyncLeave(r.Context(), req.LeaveMembers)
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}
	response.OK(w, res)
}

// AppendTeamSummary implements POST /v1/admin/summary.
func (h *WeeklyHandler) AppendTeamSummary(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.AppendTeamSummary(r.Context())
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}
	response.OK(w, res)
}
