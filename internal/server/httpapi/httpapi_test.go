package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"onepercent/internal/server/config"
	"onepercent/internal/server/models"
	"onepercent/internal/server/repository/sqlite"
	"onepercent/internal/server/service"
)

func newTestServer(t *testing.T, name string) (http.Handler, *service.Services) {
	t.Helper()
	repo, err := sqlite.New("file:" + name + "?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("repo: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	svcs := service.NewServices(repo, config.Config{JWTSecret: "test"})
	return NewRouter(svcs, nil, t.TempDir(), 5*1024*1024), svcs
}

func doJSON(t *testing.T, ts http.Handler, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var buf *bytes.Buffer
	if body != nil {
		b, _ := json.Marshal(body)
		buf = bytes.NewBuffer(b)
	} else {
		buf = &bytes.Buffer{}
	}
	req, _ := http.NewRequest(method, path, buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rr := httptest.NewRecorder()
	ts.ServeHTTP(rr, req)
	return rr
}

func doMultipart(t *testing.T, ts http.Handler, method, path string, fields map[string]string, imageName string, imageBytes []byte, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	buf := new(bytes.Buffer)
	w := multipart.NewWriter(buf)
	for k, v := range fields {
		_ = w.WriteField(k, v)
	}
	if imageName != "" {
		part, err := w.CreateFormFile("image", imageName)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := part.Write(imageBytes); err != nil {
			t.Fatal(err)
		}
	}
	_ = w.Close()
	req, _ := http.NewRequest(method, path, buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rr := httptest.NewRecorder()
	ts.ServeHTTP(rr, req)
	return rr
}

// pngBytes carries the PNG magic so content sniffing sees image/png.
func pngBytes(size int) []byte {
	b := make([]byte, size)
	copy(b, "\x89PNG\r\n\x1a\n")
	return b
}

func loginAs(t *testing.T, ts http.Handler, name, email, password string) map[string]string {
	t.Helper()
	rr := doJSON(t, ts, "POST", "/api/v1/auth/register", map[string]string{"name": name, "email": email, "password": password}, nil)
	if rr.Code != http.StatusCreated {
		t.Fatalf("register: %d %s", rr.Code, rr.Body.String())
	}
	rr = doJSON(t, ts, "POST", "/api/v1/auth/login", map[string]string{"email": email, "password": password}, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("login: %d %s", rr.Code, rr.Body.String())
	}
	var env struct {
		Data models.TokenResponse `json:"data"`
	}
	_ = json.Unmarshal(rr.Body.Bytes(), &env)
	if env.Data.AccessToken == "" {
		t.Fatalf("no token: %s", rr.Body.String())
	}
	return map[string]string{"Authorization": "Bearer " + env.Data.AccessToken}
}

func TestHealth(t *testing.T) {
	ts, _ := newTestServer(t, "api_health")
	rr := doJSON(t, ts, "GET", "/health", nil, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("health status: %d", rr.Code)
	}
}

func TestAuthMiddleware_Unauthorized(t *testing.T) {
	ts, _ := newTestServer(t, "api_unauth")
	rr := doJSON(t, ts, "GET", "/api/v1/user", nil, nil)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("want 401 got %d", rr.Code)
	}
	var env models.ErrorResponse
	_ = json.Unmarshal(rr.Body.Bytes(), &env)
	if env.Success {
		t.Fatalf("error envelope marked success")
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	ts, _ := newTestServer(t, "api_badlogin")
	rr := doJSON(t, ts, "POST", "/api/v1/auth/login", map[string]string{"email": "nobody@example.com", "password": "x"}, nil)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("want 401 got %d: %s", rr.Code, rr.Body.String())
	}
}

func TestPreferenceCRUD(t *testing.T) {
	ts, _ := newTestServer(t, "api_pref")
	authz := loginAs(t, ts, "Admin", "a@example.com", "password1")

	// empty name -> field error
	rr := doJSON(t, ts, "POST", "/api/v1/preference", map[string]any{"name": "", "active": true}, authz)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("want 400 got %d", rr.Code)
	}
	var errEnv models.ErrorResponse
	_ = json.Unmarshal(rr.Body.Bytes(), &errEnv)
	if len(errEnv.ErrorMessages) == 0 || errEnv.ErrorMessages[0].Path != "name" {
		t.Fatalf("field errors: %+v", errEnv)
	}

	rr = doJSON(t, ts, "POST", "/api/v1/preference", map[string]any{"name": "Vegan", "active": true}, authz)
	if rr.Code != http.StatusCreated {
		t.Fatalf("create: %d %s", rr.Code, rr.Body.String())
	}
	var created struct {
		Data models.Preference `json:"data"`
	}
	_ = json.Unmarshal(rr.Body.Bytes(), &created)
	if created.Data.ID == "" {
		t.Fatalf("no id: %s", rr.Body.String())
	}

	rr = doJSON(t, ts, "GET", "/api/v1/preference?page=1&limit=10", nil, authz)
	if rr.Code != http.StatusOK {
		t.Fatalf("list: %d", rr.Code)
	}
	var list struct {
		Data       []models.Preference `json:"data"`
		Pagination models.Pagination   `json:"pagination"`
	}
	_ = json.Unmarshal(rr.Body.Bytes(), &list)
	if len(list.Data) != 1 || list.Pagination.Total != 1 || list.Pagination.Limit != 10 {
		t.Fatalf("list envelope: %s", rr.Body.String())
	}

	rr = doJSON(t, ts, "GET", "/api/v1/preference?searchTerm=nomatch", nil, authz)
	_ = json.Unmarshal(rr.Body.Bytes(), &list)
	if list.Pagination.Total != 0 {
		t.Fatalf("search should be empty: %s", rr.Body.String())
	}
	if !strings.Contains(rr.Body.String(), `"data":[]`) {
		t.Fatalf("empty list not an array: %s", rr.Body.String())
	}

	rr = doJSON(t, ts, "PATCH", "/api/v1/preference/"+created.Data.ID, map[string]any{"name": "Vegetarian", "active": false}, authz)
	if rr.Code != http.StatusOK {
		t.Fatalf("update: %d %s", rr.Code, rr.Body.String())
	}

	rr = doJSON(t, ts, "DELETE", "/api/v1/preference/"+created.Data.ID, nil, authz)
	if rr.Code != http.StatusOK {
		t.Fatalf("delete: %d", rr.Code)
	}
	rr = doJSON(t, ts, "GET", "/api/v1/preference/"+created.Data.ID, nil, authz)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("want 404 after delete, got %d", rr.Code)
	}
}

func TestGymPlanUploads(t *testing.T) {
	ts, _ := newTestServer(t, "api_gym")
	authz := loginAs(t, ts, "Admin", "g@example.com", "password1")

	fields := map[string]string{"title": "Push Day", "description": "<p>chest and triceps</p>"}

	// image required on create
	rr := doMultipart(t, ts, "POST", "/api/v1/gym-and-fitness-plan", fields, "", nil, authz)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("want 400 got %d: %s", rr.Code, rr.Body.String())
	}
	var errEnv models.ErrorResponse
	_ = json.Unmarshal(rr.Body.Bytes(), &errEnv)
	if len(errEnv.ErrorMessages) == 0 || errEnv.ErrorMessages[0].Path != "image" {
		t.Fatalf("field errors: %+v", errEnv)
	}

	// non-image bytes rejected
	rr = doMultipart(t, ts, "POST", "/api/v1/gym-and-fitness-plan", fields, "notes.txt", []byte("plain text, definitely not an image"), authz)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("non-image accepted: %d", rr.Code)
	}

	// oversized image rejected with a byte-count message
	rr = doMultipart(t, ts, "POST", "/api/v1/gym-and-fitness-plan", fields, "big.png", pngBytes(5*1024*1024), authz)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("oversized accepted: %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "out of range") {
		t.Fatalf("size message: %s", rr.Body.String())
	}

	// valid upload
	rr = doMultipart(t, ts, "POST", "/api/v1/gym-and-fitness-plan", fields, "cover.png", pngBytes(1024), authz)
	if rr.Code != http.StatusCreated {
		t.Fatalf("create: %d %s", rr.Code, rr.Body.String())
	}
	var created struct {
		Data models.Plan `json:"data"`
	}
	_ = json.Unmarshal(rr.Body.Bytes(), &created)
	if !strings.HasPrefix(created.Data.Image, "uploads/") {
		t.Fatalf("image path: %q", created.Data.Image)
	}

	// edit without a new image keeps the old one
	rr = doMultipart(t, ts, "PATCH", "/api/v1/gym-and-fitness-plan/"+created.Data.ID, map[string]string{"title": "Pull Day"}, "", nil, authz)
	if rr.Code != http.StatusOK {
		t.Fatalf("update: %d %s", rr.Code, rr.Body.String())
	}
	var updated struct {
		Data models.Plan `json:"data"`
	}
	_ = json.Unmarshal(rr.Body.Bytes(), &updated)
	if updated.Data.Title != "Pull Day" || updated.Data.Image != created.Data.Image {
		t.Fatalf("partial update: %+v", updated.Data)
	}
}

func TestBusinessPlanJSON(t *testing.T) {
	ts, _ := newTestServer(t, "api_business")
	authz := loginAs(t, ts, "Admin", "b@example.com", "password1")

	rr := doJSON(t, ts, "POST", "/api/v1/business-and-mindset-plan", map[string]string{"title": "Mindset 101", "description": "<p>think</p>"}, authz)
	if rr.Code != http.StatusCreated {
		t.Fatalf("create: %d %s", rr.Code, rr.Body.String())
	}
	rr = doJSON(t, ts, "GET", "/api/v1/business-and-mindset-plan", nil, authz)
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), "Mindset 101") {
		t.Fatalf("list: %d %s", rr.Code, rr.Body.String())
	}
	// gym list must not see business plans
	rr = doJSON(t, ts, "GET", "/api/v1/gym-and-fitness-plan", nil, authz)
	if strings.Contains(rr.Body.String(), "Mindset 101") {
		t.Fatalf("kind leak: %s", rr.Body.String())
	}
}

func TestMealsWithCategory(t *testing.T) {
	ts, _ := newTestServer(t, "api_meals")
	authz := loginAs(t, ts, "Admin", "m@example.com", "password1")

	rr := doJSON(t, ts, "POST", "/api/v1/meal-and-recipe-category", map[string]string{"title": "Breakfast"}, authz)
	if rr.Code != http.StatusCreated {
		t.Fatalf("category: %d %s", rr.Code, rr.Body.String())
	}
	var cat struct {
		Data models.MealCategory `json:"data"`
	}
	_ = json.Unmarshal(rr.Body.Bytes(), &cat)

	rr = doMultipart(t, ts, "POST", "/api/v1/meal",
		map[string]string{"name": "Oatmeal", "mealCategory": cat.Data.ID, "description": "<p>oats</p>"},
		"oats.png", pngBytes(512), authz)
	if rr.Code != http.StatusCreated {
		t.Fatalf("meal: %d %s", rr.Code, rr.Body.String())
	}
	var meal struct {
		Data models.Meal `json:"data"`
	}
	_ = json.Unmarshal(rr.Body.Bytes(), &meal)
	if meal.Data.Category.ID != cat.Data.ID || meal.Data.Category.Title != "Breakfast" {
		t.Fatalf("category not embedded: %+v", meal.Data.Category)
	}

	rr = doJSON(t, ts, "GET", "/api/v1/meal/all", nil, authz)
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), "Oatmeal") {
		t.Fatalf("meal list: %d %s", rr.Code, rr.Body.String())
	}
}

func TestUsersAndStatistics(t *testing.T) {
	ts, _ := newTestServer(t, "api_users")
	authz := loginAs(t, ts, "Jordan", "u@example.com", "password1")

	rr := doJSON(t, ts, "GET", "/api/v1/user", nil, authz)
	if rr.Code != http.StatusOK {
		t.Fatalf("list: %d", rr.Code)
	}
	var list struct {
		Data []models.User `json:"data"`
	}
	_ = json.Unmarshal(rr.Body.Bytes(), &list)
	if len(list.Data) != 1 {
		t.Fatalf("users: %s", rr.Body.String())
	}

	rr = doJSON(t, ts, "PATCH", "/api/v1/user/"+list.Data[0].ID, nil, authz)
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), "blocked") {
		t.Fatalf("toggle: %d %s", rr.Code, rr.Body.String())
	}

	rr = doJSON(t, ts, "GET", "/api/v1/user/statistics", nil, authz)
	if rr.Code != http.StatusOK {
		t.Fatalf("stats: %d", rr.Code)
	}
	var stats struct {
		Data models.Statistics `json:"data"`
	}
	_ = json.Unmarshal(rr.Body.Bytes(), &stats)
	if stats.Data.TotalUser != 1 {
		t.Fatalf("totals: %+v", stats.Data)
	}

	rr = doJSON(t, ts, "GET", "/api/v1/user/user-earning?year=2025", nil, authz)
	if rr.Code != http.StatusOK {
		t.Fatalf("earnings: %d", rr.Code)
	}
	var earnings struct {
		Data []models.MonthlyEarning `json:"data"`
	}
	_ = json.Unmarshal(rr.Body.Bytes(), &earnings)
	if len(earnings.Data) != 12 {
		t.Fatalf("want 12 months, got %d", len(earnings.Data))
	}
}

func TestProfileAndPasswordFlows(t *testing.T) {
	ts, svcs := newTestServer(t, "api_profile")
	authz := loginAs(t, ts, "Jordan", "p@example.com", "password1")

	rr := doJSON(t, ts, "GET", "/api/v1/user/profile", nil, authz)
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), "p@example.com") {
		t.Fatalf("profile: %d %s", rr.Code, rr.Body.String())
	}

	rr = doJSON(t, ts, "PATCH", "/api/v1/user/profile", map[string]string{"name": "Jordan B"}, authz)
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), "Jordan B") {
		t.Fatalf("update profile: %d %s", rr.Code, rr.Body.String())
	}

	rr = doMultipart(t, ts, "PATCH", "/api/v1/user/profile", map[string]string{}, "avatar.png", pngBytes(256), authz)
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), "uploads/") {
		t.Fatalf("avatar upload: %d %s", rr.Code, rr.Body.String())
	}

	// forget -> verify -> reset
	rr = doJSON(t, ts, "POST", "/api/v1/auth/forget-password", map[string]string{"email": "p@example.com"}, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("forget: %d %s", rr.Code, rr.Body.String())
	}
	code, err := svcs.Auth.ForgetPassword(context.Background(), "p@example.com")
	if err != nil || code == "" {
		t.Fatalf("reissue code: %v", err)
	}
	rr = doJSON(t, ts, "POST", "/api/v1/auth/verify-email", map[string]string{"email": "p@example.com", "oneTimeCode": code}, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("verify: %d %s", rr.Code, rr.Body.String())
	}
	rr = doJSON(t, ts, "POST", "/api/v1/auth/reset-password", map[string]string{"otp": code, "newPassword": "newpassword1", "confirmPassword": "newpassword1"}, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("reset: %d %s", rr.Code, rr.Body.String())
	}
	rr = doJSON(t, ts, "POST", "/api/v1/auth/login", map[string]string{"email": "p@example.com", "password": "newpassword1"}, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("login after reset: %d %s", rr.Code, rr.Body.String())
	}

	// change password while signed in
	authz = loginAs2(t, ts, "p@example.com", "newpassword1")
	rr = doJSON(t, ts, "POST", "/api/v1/auth/change-password", map[string]string{"currentPassword": "newpassword1", "newPassword": "finalpassword1", "confirmPassword": "finalpassword1"}, authz)
	if rr.Code != http.StatusOK {
		t.Fatalf("change: %d %s", rr.Code, rr.Body.String())
	}

	// delete account
	rr = doJSON(t, ts, "DELETE", "/api/v1/user/delete-account", map[string]string{"password": "finalpassword1"}, authz)
	if rr.Code != http.StatusOK {
		t.Fatalf("delete account: %d %s", rr.Code, rr.Body.String())
	}
}

func loginAs2(t *testing.T, ts http.Handler, email, password string) map[string]string {
	t.Helper()
	rr := doJSON(t, ts, "POST", "/api/v1/auth/login", map[string]string{"email": email, "password": password}, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("login: %d %s", rr.Code, rr.Body.String())
	}
	var env struct {
		Data models.TokenResponse `json:"data"`
	}
	_ = json.Unmarshal(rr.Body.Bytes(), &env)
	return map[string]string{"Authorization": "Bearer " + env.Data.AccessToken}
}

func TestNotificationsEndpoints(t *testing.T) {
	ts, _ := newTestServer(t, "api_notifications")
	authz := loginAs(t, ts, "Admin", "n@example.com", "password1")

	rr := doJSON(t, ts, "POST", "/api/v1/notification", map[string]string{"title": "New order", "message": "Order #1001 placed"}, authz)
	if rr.Code != http.StatusCreated {
		t.Fatalf("create: %d %s", rr.Code, rr.Body.String())
	}
	var created struct {
		Data models.Notification `json:"data"`
	}
	_ = json.Unmarshal(rr.Body.Bytes(), &created)

	rr = doJSON(t, ts, "PATCH", "/api/v1/notification/"+created.Data.ID, map[string]bool{"read": true}, authz)
	if rr.Code != http.StatusOK {
		t.Fatalf("mark read: %d", rr.Code)
	}
	rr = doJSON(t, ts, "GET", "/api/v1/notification", nil, authz)
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), `"read":true`) {
		t.Fatalf("list: %d %s", rr.Code, rr.Body.String())
	}
}

func TestOrderEndpoints(t *testing.T) {
	ts, svcs := newTestServer(t, "api_orders")
	authz := loginAs(t, ts, "Admin", "o@example.com", "password1")

	if err := svcs.Store.SeedDemoOrders(context.Background()); err != nil {
		t.Fatal(err)
	}

	rr := doJSON(t, ts, "GET", "/api/v1/store/all-order", nil, authz)
	if rr.Code != http.StatusOK {
		t.Fatalf("orders: %d", rr.Code)
	}
	var list struct {
		Data       []models.Order    `json:"data"`
		Pagination models.Pagination `json:"pagination"`
	}
	_ = json.Unmarshal(rr.Body.Bytes(), &list)
	if list.Pagination.Total != 2 || len(list.Data) != 2 {
		t.Fatalf("order list: %s", rr.Body.String())
	}

	rr = doJSON(t, ts, "GET", "/api/v1/store/order-history/"+list.Data[0].ID, nil, authz)
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), "lineItems") {
		t.Fatalf("history: %d %s", rr.Code, rr.Body.String())
	}
	rr = doJSON(t, ts, "GET", "/api/v1/store/order-history/missing", nil, authz)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("want 404 got %d", rr.Code)
	}
}
