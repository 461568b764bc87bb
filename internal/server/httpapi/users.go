package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (r *Router) handleListUsers(w http.ResponseWriter, req *http.Request) {
	p := listParams(req)
	users, pag, err := r.services.Users.List(req.Context(), p)
	if err != nil {
		r.writeServiceError(w, err)
		return
	}
	writeList(w, "Users retrieved", users, pag)
}

func (r *Router) handleToggleUserStatus(w http.ResponseWriter, req *http.Request) {
	status, err := r.services.Users.ToggleStatus(req.Context(), chi.URLParam(req, "id"))
	if err != nil {
		r.writeServiceError(w, err)
		return
	}
	writeData(w, http.StatusOK, "Status updated", map[string]string{"status": status})
}

func (r *Router) handleStatistics(w http.ResponseWriter, req *http.Request) {
	stats, err := r.services.Users.Statistics(req.Context())
	if err != nil {
		r.writeServiceError(w, err)
		return
	}
	writeData(w, http.StatusOK, "Statistics", stats)
}

func (r *Router) handleMonthlyEarnings(w http.ResponseWriter, req *http.Request) {
	series, err := r.services.Users.MonthlyEarnings(req.Context(), req.URL.Query().Get("year"))
	if err != nil {
		r.writeServiceError(w, err)
		return
	}
	writeData(w, http.StatusOK, "Monthly earnings", series)
}

func (r *Router) handleMonthlySignups(w http.ResponseWriter, req *http.Request) {
	series, err := r.services.Users.MonthlySignups(req.Context(), req.URL.Query().Get("year"))
	if err != nil {
		r.writeServiceError(w, err)
		return
	}
	writeData(w, http.StatusOK, "Monthly signups", series)
}
