package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (r *Router) handleListOrders(w http.ResponseWriter, req *http.Request) {
	items, pag, err := r.services.Store.ListOrders(req.Context(), listParams(req))
	if err != nil {
		r.writeServiceError(w, err)
		return
	}
	writeList(w, "Orders retrieved", items, pag)
}

func (r *Router) handleOrderHistory(w http.ResponseWriter, req *http.Request) {
	d, err := r.services.Store.OrderDetails(req.Context(), chi.URLParam(req, "id"))
	if err != nil {
		r.writeServiceError(w, err)
		return
	}
	writeData(w, http.StatusOK, "Order", d)
}
