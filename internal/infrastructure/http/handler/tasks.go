package handler

import (
	"net/http"

	"github.com/rezkam/weekly/internal/domain"
	"github.com/rezkam/weekly/internal/infrastructure/http/response"
)

// ListTasks implements GET /v1/tasks?member=NAME.
func (h *WeeklyHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	set, err := h.svc.FetchTasks(r.Context(), r.URL.Query().Get("member"))
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}
	response.OK(w, nonNil(set))
}

// nonNil keeps empty task lists encoded as [] rather than null.
func nonNil(set domain.TaskSet) domain.TaskSet {
	if set.Current == nil {
		set.Current = []domain.Task{}
	}
	if set.RecentlyDone == nil {
		set.RecentlyDone = []domain.Task{}
	}
	return set
}
