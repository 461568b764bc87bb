package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (r *Router) handleListNotifications(w http.ResponseWriter, req *http.Request) {
	items, pag, err := r.services.Notifications.List(req.Context(), listParams(req))
	if err != nil {
		r.writeServiceError(w, err)
		return
	}
	writeList(w, "Notifications retrieved", items, pag)
}

func (r *Router) handleCreateNotification(w http.ResponseWriter, req *http.Request) {
	var body struct {
		Title   string `json:"title"`
		Message string `json:"message"`
	}
	if err := decodeJSON(req, &body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON", nil)
		return
	}
	n, err := r.services.Notifications.Create(req.Context(), body.Title, body.Message)
	if err != nil {
		r.writeServiceError(w, err)
		return
	}
	writeData(w, http.StatusCreated, "Notification created", n)
}

func (r *Router) handleMarkNotificationRead(w http.ResponseWriter, req *http.Request) {
	if err := r.services.Notifications.MarkRead(req.Context(), chi.URLParam(req, "id")); err != nil {
		r.writeServiceError(w, err)
		return
	}
	writeData(w, http.StatusOK, "Notification updated", nil)
}
