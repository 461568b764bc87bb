package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Preferences

func (r *Router) handleListPreferences(w http.ResponseWriter, req *http.Request) {
	items, pag, err := r.services.Catalog.ListPreferences(req.Context(), listParams(req))
	if err != nil {
		r.writeServiceError(w, err)
		return
	}
	writeList(w, "Preferences retrieved", items, pag)
}

func (r *Router) handleGetPreference(w http.ResponseWriter, req *http.Request) {
	p, err := r.services.Catalog.GetPreference(req.Context(), chi.URLParam(req, "id"))
	if err != nil {
		r.writeServiceError(w, err)
		return
	}
	writeData(w, http.StatusOK, "Preference", p)
}

type preferenceRequest struct {
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

func (r *Router) handleCreatePreference(w http.ResponseWriter, req *http.Request) {
	var body preferenceRequest
	if err := decodeJSON(req, &body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON", nil)
		return
	}
	p, err := r.services.Catalog.CreatePreference(req.Context(), body.Name, body.Active)
	if err != nil {
		r.writeServiceError(w, err)
		return
	}
	writeData(w, http.StatusCreated, "Preference created", p)
}

func (r *Router) handleUpdatePreference(w http.ResponseWriter, req *http.Request) {
	var body preferenceRequest
	if err := decodeJSON(req, &body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON", nil)
		return
	}
	p, err := r.services.Catalog.UpdatePreference(req.Context(), chi.URLParam(req, "id"), body.Name, body.Active)
	if err != nil {
		r.writeServiceError(w, err)
		return
	}
	writeData(w, http.StatusOK, "Preference updated", p)
}

func (r *Router) handleDeletePreference(w http.ResponseWriter, req *http.Request) {
	if err := r.services.Catalog.DeletePreference(req.Context(), chi.URLParam(req, "id")); err != nil {
		r.writeServiceError(w, err)
		return
	}
	writeData(w, http.StatusOK, "Preference deleted", nil)
}

// Plans. The gym collection takes multipart bodies because plans carry a
// cover image; the business collection is JSON-only.

func (r *Router) handleListPlans(kind string) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		items, pag, err := r.services.Catalog.ListPlans(req.Context(), kind, listParams(req))
		if err != nil {
			r.writeServiceError(w, err)
			return
		}
		writeList(w, "Plans retrieved", items, pag)
	}
}

func (r *Router) handleGetPlan(kind string) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		p, err := r.services.Catalog.GetPlan(req.Context(), kind, chi.URLParam(req, "id"))
		if err != nil {
			r.writeServiceError(w, err)
			return
		}
		writeData(w, http.StatusOK, "Plan", p)
	}
}

func (r *Router) handleCreatePlanMultipart(kind string) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if err := req.ParseMultipartForm(32 << 20); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid form", nil)
			return
		}
		image, err := r.saveImagePart(req)
		if err != nil {
			r.writeServiceError(w, err)
			return
		}
		if image == "" {
			writeError(w, http.StatusBadRequest, "Image is required.", fieldList("image", "Image is required."))
			return
		}
		p, err := r.services.Catalog.CreatePlan(req.Context(), kind, req.FormValue("title"), req.FormValue("description"), image)
		if err != nil {
			r.writeServiceError(w, err)
			return
		}
		writeData(w, http.StatusCreated, "Plan created", p)
	}
}

func (r *Router) handleUpdatePlanMultipart(kind string) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if err := req.ParseMultipartForm(32 << 20); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid form", nil)
			return
		}
		image, err := r.saveImagePart(req)
		if err != nil {
			r.writeServiceError(w, err)
			return
		}
		p, err := r.services.Catalog.UpdatePlan(req.Context(), kind, chi.URLParam(req, "id"), req.FormValue("title"), req.FormValue("description"), image)
		if err != nil {
			r.writeServiceError(w, err)
			return
		}
		writeData(w, http.StatusOK, "Plan updated", p)
	}
}

type planRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (r *Router) handleCreatePlanJSON(kind string) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		var body planRequest
		if err := decodeJSON(req, &body); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid JSON", nil)
			return
		}
		p, err := r.services.Catalog.CreatePlan(req.Context(), kind, body.Title, body.Description, "")
		if err != nil {
			r.writeServiceError(w, err)
			return
		}
		writeData(w, http.StatusCreated, "Plan created", p)
	}
}

func (r *Router) handleUpdatePlanJSON(kind string) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		var body planRequest
		if err := decodeJSON(req, &body); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid JSON", nil)
			return
		}
		p, err := r.services.Catalog.UpdatePlan(req.Context(), kind, chi.URLParam(req, "id"), body.Title, body.Description, "")
		if err != nil {
			r.writeServiceError(w, err)
			return
		}
		writeData(w, http.StatusOK, "Plan updated", p)
	}
}

func (r *Router) handleDeletePlan(kind string) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if err := r.services.Catalog.DeletePlan(req.Context(), kind, chi.URLParam(req, "id")); err != nil {
			r.writeServiceError(w, err)
			return
		}
		writeData(w, http.StatusOK, "Plan deleted", nil)
	}
}

// Meal categories

func (r *Router) handleListMealCategories(w http.ResponseWriter, req *http.Request) {
	items, pag, err := r.services.Catalog.ListMealCategories(req.Context(), listParams(req))
	if err != nil {
		r.writeServiceError(w, err)
		return
	}
	writeList(w, "Categories retrieved", items, pag)
}

func (r *Router) handleGetMealCategory(w http.ResponseWriter, req *http.Request) {
	c, err := r.services.Catalog.GetMealCategory(req.Context(), chi.URLParam(req, "id"))
	if err != nil {
		r.writeServiceError(w, err)
		return
	}
	writeData(w, http.StatusOK, "Category", c)
}

type mealCategoryRequest struct {
	Title string `json:"title"`
}

func (r *Router) handleCreateMealCategory(w http.ResponseWriter, req *http.Request) {
	var body mealCategoryRequest
	if err := decodeJSON(req, &body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON", nil)
		return
	}
	c, err := r.services.Catalog.CreateMealCategory(req.Context(), body.Title)
	if err != nil {
		r.writeServiceError(w, err)
		return
	}
	writeData(w, http.StatusCreated, "Category created", c)
}

func (r *Router) handleUpdateMealCategory(w http.ResponseWriter, req *http.Request) {
	var body mealCategoryRequest
	if err := decodeJSON(req, &body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON", nil)
		return
	}
	c, err := r.services.Catalog.UpdateMealCategory(req.Context(), chi.URLParam(req, "id"), body.Title)
	if err != nil {
		r.writeServiceError(w, err)
		return
	}
	writeData(w, http.StatusOK, "Category updated", c)
}

func (r *Router) handleDeleteMealCategory(w http.ResponseWriter, req *http.Request) {
	if err := r.services.Catalog.DeleteMealCategory(req.Context(), chi.URLParam(req, "id")); err != nil {
		r.writeServiceError(w, err)
		return
	}
	writeData(w, http.StatusOK, "Category deleted", nil)
}

// Meals take multipart bodies; the image is optional on both create and
// edit.

func (r *Router) handleListMeals(w http.ResponseWriter, req *http.Request) {
	items, pag, err := r.services.Catalog.ListMeals(req.Context(), listParams(req))
	if err != nil {
		r.writeServiceError(w, err)
		return
	}
	writeList(w, "Meals retrieved", items, pag)
}

func (r *Router) handleGetMeal(w http.ResponseWriter, req *http.Request) {
	m, err := r.services.Catalog.GetMeal(req.Context(), chi.URLParam(req, "id"))
	if err != nil {
		r.writeServiceError(w, err)
		return
	}
	writeData(w, http.StatusOK, "Meal", m)
}

func (r *Router) handleCreateMeal(w http.ResponseWriter, req *http.Request) {
	if err := req.ParseMultipartForm(32 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid form", nil)
		return
	}
	image, err := r.saveImagePart(req)
	if err != nil {
		r.writeServiceError(w, err)
		return
	}
	m, err := r.services.Catalog.CreateMeal(req.Context(),
		req.FormValue("mealCategory"), req.FormValue("name"), req.FormValue("description"), image)
	if err != nil {
		r.writeServiceError(w, err)
		return
	}
	writeData(w, http.StatusCreated, "Meal created", m)
}

func (r *Router) handleUpdateMeal(w http.ResponseWriter, req *http.Request) {
	if err := req.ParseMultipartForm(32 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid form", nil)
		return
	}
	image, err := r.saveImagePart(req)
	if err != nil {
		r.writeServiceError(w, err)
		return
	}
	m, err := r.services.Catalog.UpdateMeal(req.Context(), chi.URLParam(req, "id"),
		req.FormValue("mealCategory"), req.FormValue("name"), req.FormValue("description"), image)
	if err != nil {
		r.writeServiceError(w, err)
		return
	}
	writeData(w, http.StatusOK, "Meal updated", m)
}

func (r *Router) handleDeleteMeal(w http.ResponseWriter, req *http.Request) {
	if err := r.services.Catalog.DeleteMeal(req.Context(), chi.URLParam(req, "id")); err != nil {
		r.writeServiceError(w, err)
		return
	}
	writeData(w, http.StatusOK, "Meal deleted", nil)
}
