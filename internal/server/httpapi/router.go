package httpapi

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"onepercent/internal/server/models"
	"onepercent/internal/server/repository"
	"onepercent/internal/server/service"
)

type Router struct {
	services       *service.Services
	logger         *log.Logger
	uploadDir      string
	maxUploadBytes int64
}

func NewRouter(services *service.Services, logger *log.Logger, uploadDir string, maxUploadBytes int64) http.Handler {
	r := &Router{services: services, logger: logger, uploadDir: uploadDir, maxUploadBytes: maxUploadBytes}
	mux := chi.NewRouter()

	mux.Get("/health", r.handleHealth)
	if uploadDir != "" {
		mux.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadDir))))
	}

	mux.Route("/api/v1", func(api chi.Router) {
		api.Post("/auth/register", r.handleRegister)
		api.Post("/auth/login", r.handleLogin)
		api.Post("/auth/forget-password", r.handleForgetPassword)
		api.Post("/auth/verify-email", r.handleVerifyEmail)
		api.Post("/auth/reset-password", r.handleResetPassword)

		api.Group(func(pr chi.Router) {
			pr.Use(r.authMiddleware)

			pr.Post("/auth/change-password", r.handleChangePassword)

			pr.Get("/user", r.handleListUsers)
			pr.Get("/user/profile", r.handleProfile)
			pr.Patch("/user/profile", r.handleUpdateProfile)
			pr.Delete("/user/delete-account", r.handleDeleteAccount)
			pr.Get("/user/statistics", r.handleStatistics)
			pr.Get("/user/user-earning", r.handleMonthlyEarnings)
			pr.Get("/user/user-statistics", r.handleMonthlySignups)
			pr.Patch("/user/{id}", r.handleToggleUserStatus)

			pr.Get("/preference", r.handleListPreferences)
			pr.Post("/preference", r.handleCreatePreference)
			pr.Get("/preference/{id}", r.handleGetPreference)
			pr.Patch("/preference/{id}", r.handleUpdatePreference)
			pr.Delete("/preference/{id}", r.handleDeletePreference)

			pr.Get("/gym-and-fitness-plan", r.handleListPlans("gym"))
			pr.Post("/gym-and-fitness-plan", r.handleCreatePlanMultipart("gym"))
			pr.Get("/gym-and-fitness-plan/{id}", r.handleGetPlan("gym"))
			pr.Patch("/gym-and-fitness-plan/{id}", r.handleUpdatePlanMultipart("gym"))
			pr.Delete("/gym-and-fitness-plan/{id}", r.handleDeletePlan("gym"))

			pr.Get("/business-and-mindset-plan", r.handleListPlans("business"))
			pr.Post("/business-and-mindset-plan", r.handleCreatePlanJSON("business"))
			pr.Get("/business-and-mindset-plan/{id}", r.handleGetPlan("business"))
			pr.Patch("/business-and-mindset-plan/{id}", r.handleUpdatePlanJSON("business"))
			pr.Delete("/business-and-mindset-plan/{id}", r.handleDeletePlan("business"))

			pr.Get("/meal-and-recipe-category", r.handleListMealCategories)
			pr.Post("/meal-and-recipe-category", r.handleCreateMealCategory)
			pr.Get("/meal-and-recipe-category/{id}", r.handleGetMealCategory)
			pr.Patch("/meal-and-recipe-category/{id}", r.handleUpdateMealCategory)
			pr.Delete("/meal-and-recipe-category/{id}", r.handleDeleteMealCategory)

			pr.Get("/meal/all", r.handleListMeals)
			pr.Post("/meal", r.handleCreateMeal)
			pr.Get("/meal/{id}", r.handleGetMeal)
			pr.Patch("/meal/{id}", r.handleUpdateMeal)
			pr.Delete("/meal/{id}", r.handleDeleteMeal)

			pr.Get("/store/all-order", r.handleListOrders)
			pr.Get("/store/order-history/{id}", r.handleOrderHistory)

			pr.Get("/notification", r.handleListNotifications)
			pr.Post("/notification", r.handleCreateNotification)
			pr.Patch("/notification/{id}", r.handleMarkNotificationRead)
		})
	})

	return mux
}

func (r *Router) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeData wraps a single record in the success envelope.
func writeData(w http.ResponseWriter, status int, message string, data any) {
	writeJSON(w, status, map[string]any{
		"success": true,
		"message": message,
		"data":    data,
	})
}

// writeList wraps a collection page. Data is always a JSON array, never
// null, so table renderers need no nil checks. Repositories return nil
// slices for empty pages; those arrive here as typed non-nil interfaces,
// hence the reflect check.
func writeList(w http.ResponseWriter, message string, data any, p models.Pagination) {
	if v := reflect.ValueOf(data); data == nil || (v.Kind() == reflect.Slice && v.IsNil()) {
		data = []any{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"message":    message,
		"data":       data,
		"pagination": p,
	})
}

func writeError(w http.ResponseWriter, status int, message string, fields []models.FieldError) {
	writeJSON(w, status, models.ErrorResponse{Success: false, Message: message, ErrorMessages: fields})
}

// writeServiceError maps service errors onto the error envelope.
func (r *Router) writeServiceError(w http.ResponseWriter, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		writeError(w, http.StatusBadRequest, verr.Message, verr.Fields)
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "Not found", nil)
	case errors.Is(err, service.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "Invalid email or password", nil)
	case errors.Is(err, service.ErrAccountBlocked):
		writeError(w, http.StatusForbidden, "Account is blocked", nil)
	case errors.Is(err, service.ErrBadOTP):
		writeError(w, http.StatusBadRequest, "Invalid one-time code", nil)
	case errors.Is(err, service.ErrOTPExpired):
		writeError(w, http.StatusBadRequest, "One-time code expired", nil)
	default:
		if r.logger != nil {
			r.logger.Printf("internal error: %v", err)
		}
		writeError(w, http.StatusInternalServerError, "Something went wrong", nil)
	}
}

func fieldList(path, message string) []models.FieldError {
	return []models.FieldError{{Path: path, Message: message}}
}

func decodeJSON(req *http.Request, v any) error {
	return json.NewDecoder(req.Body).Decode(v)
}

func isMultipart(req *http.Request) bool {
	return strings.HasPrefix(req.Header.Get("Content-Type"), "multipart/form-data")
}

func listParams(req *http.Request) service.ListParams {
	q := req.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))
	return service.ListParams{Search: q.Get("searchTerm"), Page: page, Limit: limit}
}
