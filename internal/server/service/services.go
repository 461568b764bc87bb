package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"onepercent/internal/server/config"
	"onepercent/internal/server/repository"
	"onepercent/internal/shared/models"
	"onepercent/internal/shared/passhash"
)

type Repository interface {
	CreateUser(ctx context.Context, name, email string, passwordHash []byte, role string) (models.User, error)
	GetUserByEmail(ctx context.Context, email string) (models.User, []byte, error)
	GetUserByID(ctx context.Context, id string) (models.User, error)
	ListUsers(ctx context.Context, search string, page, limit int) ([]models.User, int, error)
	ToggleUserStatus(ctx context.Context, id string) (string, error)
	UpdateUserProfile(ctx context.Context, id, name, image string) (models.User, error)
	UpdateUserPassword(ctx context.Context, email string, passwordHash []byte) error
	MarkUserDeleted(ctx context.Context, id string) error
	Statistics(ctx context.Context) (models.Statistics, error)
	MonthlyEarnings(ctx context.Context, year int) ([]models.MonthlyEarning, error)
	MonthlySignups(ctx context.Context, year int) ([]models.MonthlyUsers, error)

	SaveOTP(ctx context.Context, email, code string, expiresAt time.Time) error
	GetOTP(ctx context.Context, email string) (string, time.Time, error)
	GetOTPByCode(ctx context.Context, code string) (string, time.Time, error)
	DeleteOTP(ctx context.Context, email string) error

	ListPreferences(ctx context.Context, search string, page, limit int) ([]models.Preference, int, error)
	GetPreference(ctx context.Context, id string) (models.Preference, error)
	CreatePreference(ctx context.Context, name string, active bool) (models.Preference, error)
	UpdatePreference(ctx context.Context, id, name string, active bool) (models.Preference, error)
	DeletePreference(ctx context.Context, id string) error

	ListPlans(ctx context.Context, kind, search string, page, limit int) ([]models.Plan, int, error)
	GetPlan(ctx context.Context, kind, id string) (models.Plan, error)
	CreatePlan(ctx context.Context, kind, title, description, image string) (models.Plan, error)
	UpdatePlan(ctx context.Context, kind, id, title, description, image string) (models.Plan, error)
	DeletePlan(ctx context.Context, kind, id string) error

	ListMealCategories(ctx context.Context, search string, page, limit int) ([]models.MealCategory, int, error)
	GetMealCategory(ctx context.Context, id string) (models.MealCategory, error)
	CreateMealCategory(ctx context.Context, title string) (models.MealCategory, error)
	UpdateMealCategory(ctx context.Context, id, title string) (models.MealCategory, error)
	DeleteMealCategory(ctx context.Context, id string) error

	ListMeals(ctx context.Context, search string, page, limit int) ([]models.Meal, int, error)
	GetMeal(ctx context.Context, id string) (models.Meal, error)
	CreateMeal(ctx context.Context, categoryID, name, description, image string) (models.Meal, error)
	UpdateMeal(ctx context.Context, id, categoryID, name, description, image string) (models.Meal, error)
	DeleteMeal(ctx context.Context, id string) error

	InsertOrder(ctx context.Context, o models.Order, items []models.OrderLineItem) error
	ListOrders(ctx context.Context, search string, page, limit int) ([]models.Order, int, error)
	GetOrderDetails(ctx context.Context, id string) (models.OrderDetails, error)

	ListNotifications(ctx context.Context, page, limit int) ([]models.Notification, int, error)
	CreateNotification(ctx context.Context, title, message string) (models.Notification, error)
	MarkNotificationRead(ctx context.Context, id string) error
}

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountBlocked     = errors.New("account is blocked")
	ErrBadOTP             = errors.New("invalid one-time code")
	ErrOTPExpired         = errors.New("one-time code expired")
)

// ValidationError carries per-field messages in the shape the error
// envelope exposes as errorMessages.
type ValidationError struct {
	Message string
	Fields  []models.FieldError
}

func (e *ValidationError) Error() string { return e.Message }

func fieldError(path, message string) *ValidationError {
	return &ValidationError{Message: message, Fields: []models.FieldError{{Path: path, Message: message}}}
}

// ListParams normalizes pagination input; zero values become page 1,
// limit 10.
type ListParams struct {
	Search string
	Page   int
	Limit  int
}

func (p ListParams) norm() (string, int, int) {
	page, limit := p.Page, p.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	return p.Search, page, limit
}

func (p ListParams) pagination(total int) models.Pagination {
	_, page, limit := p.norm()
	return models.Pagination{Total: total, Page: page, Limit: limit}
}

type Services struct {
	Auth          *AuthService
	Users         *UsersService
	Catalog       *CatalogService
	Store         *StoreService
	Notifications *NotificationsService
}

func NewServices(repo Repository, cfg config.Config) *Services {
	return &Services{
		Auth:          &AuthService{repo: repo, jwtSecret: []byte(cfg.JWTSecret)},
		Users:         &UsersService{repo: repo},
		Catalog:       &CatalogService{repo: repo},
		Store:         &StoreService{repo: repo},
		Notifications: &NotificationsService{repo: repo},
	}
}

// AuthService covers credential verification, JWT issuance and the
// OTP-based password reset flow.
type AuthService struct {
	repo      Repository
	jwtSecret []byte
}

const otpTTL = 5 * time.Minute

// EnsureAdmin seeds the dashboard account on first boot.
func (a *AuthService) EnsureAdmin(ctx context.Context, name, email, password string) error {
	_, _, err := a.repo.GetUserByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return err
	}
	phc, err := passhash.HashPassword(password)
	if err != nil {
		return err
	}
	_, err = a.repo.CreateUser(ctx, name, email, []byte(phc), "ADMIN")
	return err
}

// Register creates an app user account (role USER), the population the
// users screen manages.
func (a *AuthService) Register(ctx context.Context, name, email, password string) (models.User, error) {
	if name == "" || email == "" || password == "" {
		return models.User{}, &ValidationError{Message: "name, email and password required"}
	}
	phc, err := passhash.HashPassword(password)
	if err != nil {
		return models.User{}, err
	}
	return a.repo.CreateUser(ctx, name, email, []byte(phc), "USER")
}

func (a *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	u, hash, err := a.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return "", ErrInvalidCredentials
	}
	ok, err := passhash.VerifyPassword(string(hash), password)
	if err != nil || !ok {
		return "", ErrInvalidCredentials
	}
	if u.Status == "blocked" || u.Status == "delete" {
		return "", ErrAccountBlocked
	}
	claims := jwt.MapClaims{
		"sub": u.ID,
		"exp": time.Now().Add(24 * time.Hour).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(a.jwtSecret)
}

func (a *AuthService) ParseToken(_ context.Context, token string) (string, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return a.jwtSecret, nil
	})
	if err != nil || !parsed.Valid {
		return "", errors.New("invalid token")
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid token claims")
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return "", errors.New("invalid token subject")
	}
	return sub, nil
}

// ForgetPassword issues a 6-digit reset code. The code is returned to the
// caller so the transport layer can hand it to the mail sender.
func (a *AuthService) ForgetPassword(ctx context.Context, email string) (string, error) {
	if _, _, err := a.repo.GetUserByEmail(ctx, email); err != nil {
		return "", err
	}
	code, err := sixDigitCode()
	if err != nil {
		return "", err
	}
	if err := a.repo.SaveOTP(ctx, email, code, time.Now().Add(otpTTL)); err != nil {
		return "", err
	}
	return code, nil
}

func sixDigitCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// VerifyOTP checks an emailed code without consuming it; the code stays
// valid for the reset submission.
func (a *AuthService) VerifyOTP(ctx context.Context, email, code string) error {
	saved, expires, err := a.repo.GetOTP(ctx, email)
	if err != nil || saved != code {
		return ErrBadOTP
	}
	if time.Now().After(expires) {
		_ = a.repo.DeleteOTP(ctx, email)
		return ErrOTPExpired
	}
	return nil
}

// ResetPassword consumes the code and sets the new password.
func (a *AuthService) ResetPassword(ctx context.Context, code, newPassword, confirmPassword string) error {
	if len(newPassword) < 8 {
		return fieldError("newPassword", "Password must be at least 8 characters")
	}
	if newPassword != confirmPassword {
		return fieldError("confirmPassword", "Passwords do not match")
	}
	email, expires, err := a.repo.GetOTPByCode(ctx, code)
	if err != nil {
		return ErrBadOTP
	}
	if time.Now().After(expires) {
		_ = a.repo.DeleteOTP(ctx, email)
		return ErrOTPExpired
	}
	phc, err := passhash.HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := a.repo.UpdateUserPassword(ctx, email, []byte(phc)); err != nil {
		return err
	}
	return a.repo.DeleteOTP(ctx, email)
}

func (a *AuthService) ChangePassword(ctx context.Context, userID, current, newPassword, confirmPassword string) error {
	if len(newPassword) < 8 {
		return fieldError("newPassword", "Password must be at least 8 characters")
	}
	if newPassword != confirmPassword {
		return fieldError("confirmPassword", "Passwords do not match")
	}
	u, hash, err := a.userWithHash(ctx, userID)
	if err != nil {
		return err
	}
	ok, err := passhash.VerifyPassword(string(hash), current)
	if err != nil || !ok {
		return ErrInvalidCredentials
	}
	phc, err := passhash.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return a.repo.UpdateUserPassword(ctx, u.Email, []byte(phc))
}

func (a *AuthService) userWithHash(ctx context.Context, userID string) (models.User, []byte, error) {
	u, err := a.repo.GetUserByID(ctx, userID)
	if err != nil {
		return models.User{}, nil, err
	}
	return a.repo.GetUserByEmail(ctx, u.Email)
}

func (a *AuthService) Profile(ctx context.Context, userID string) (models.User, error) {
	return a.repo.GetUserByID(ctx, userID)
}

func (a *AuthService) UpdateProfile(ctx context.Context, userID, name, image string) (models.User, error) {
	return a.repo.UpdateUserProfile(ctx, userID, name, image)
}

// DeleteAccount soft-deletes after re-verifying the password.
func (a *AuthService) DeleteAccount(ctx context.Context, userID, password string) error {
	_, hash, err := a.userWithHash(ctx, userID)
	if err != nil {
		return err
	}
	ok, err := passhash.VerifyPassword(string(hash), password)
	if err != nil || !ok {
		return ErrInvalidCredentials
	}
	return a.repo.MarkUserDeleted(ctx, userID)
}

// UsersService serves the users screen and the dashboard charts.
type UsersService struct {
	repo Repository
}

func (s *UsersService) List(ctx context.Context, p ListParams) ([]models.User, models.Pagination, error) {
	search, page, limit := p.norm()
	users, total, err := s.repo.ListUsers(ctx, search, page, limit)
	return users, p.pagination(total), err
}

func (s *UsersService) ToggleStatus(ctx context.Context, id string) (string, error) {
	return s.repo.ToggleUserStatus(ctx, id)
}

func (s *UsersService) Statistics(ctx context.Context) (models.Statistics, error) {
	return s.repo.Statistics(ctx)
}

func parseYear(year string) int {
	if y, err := strconv.Atoi(year); err == nil && y > 0 {
		return y
	}
	return time.Now().UTC().Year()
}

func (s *UsersService) MonthlyEarnings(ctx context.Context, year string) ([]models.MonthlyEarning, error) {
	return s.repo.MonthlyEarnings(ctx, parseYear(year))
}

func (s *UsersService) MonthlySignups(ctx context.Context, year string) ([]models.MonthlyUsers, error) {
	return s.repo.MonthlySignups(ctx, parseYear(year))
}

// CatalogService is the CRUD backing for preferences, plans, meal
// categories and meals.
type CatalogService struct {
	repo Repository
}

func (s *CatalogService) ListPreferences(ctx context.Context, p ListParams) ([]models.Preference, models.Pagination, error) {
	search, page, limit := p.norm()
	items, total, err := s.repo.ListPreferences(ctx, search, page, limit)
	return items, p.pagination(total), err
}

func (s *CatalogService) GetPreference(ctx context.Context, id string) (models.Preference, error) {
	return s.repo.GetPreference(ctx, id)
}

func (s *CatalogService) CreatePreference(ctx context.Context, name string, active bool) (models.Preference, error) {
	if name == "" {
		return models.Preference{}, fieldError("name", "Name is required")
	}
	return s.repo.CreatePreference(ctx, name, active)
}

func (s *CatalogService) UpdatePreference(ctx context.Context, id, name string, active bool) (models.Preference, error) {
	if name == "" {
		return models.Preference{}, fieldError("name", "Name is required")
	}
	return s.repo.UpdatePreference(ctx, id, name, active)
}

func (s *CatalogService) DeletePreference(ctx context.Context, id string) error {
	return s.repo.DeletePreference(ctx, id)
}

func (s *CatalogService) ListPlans(ctx context.Context, kind string, p ListParams) ([]models.Plan, models.Pagination, error) {
	search, page, limit := p.norm()
	items, total, err := s.repo.ListPlans(ctx, kind, search, page, limit)
	return items, p.pagination(total), err
}

func (s *CatalogService) GetPlan(ctx context.Context, kind, id string) (models.Plan, error) {
	return s.repo.GetPlan(ctx, kind, id)
}

func (s *CatalogService) CreatePlan(ctx context.Context, kind, title, description, image string) (models.Plan, error) {
	if title == "" {
		return models.Plan{}, fieldError("title", "Title is required")
	}
	if description == "" {
		return models.Plan{}, fieldError("description", "Description is required")
	}
	return s.repo.CreatePlan(ctx, kind, title, description, image)
}

func (s *CatalogService) UpdatePlan(ctx context.Context, kind, id, title, description, image string) (models.Plan, error) {
	return s.repo.UpdatePlan(ctx, kind, id, title, description, image)
}

func (s *CatalogService) DeletePlan(ctx context.Context, kind, id string) error {
	return s.repo.DeletePlan(ctx, kind, id)
}

func (s *CatalogService) ListMealCategories(ctx context.Context, p ListParams) ([]models.MealCategory, models.Pagination, error) {
	search, page, limit := p.norm()
	items, total, err := s.repo.ListMealCategories(ctx, search, page, limit)
	return items, p.pagination(total), err
}

func (s *CatalogService) GetMealCategory(ctx context.Context, id string) (models.MealCategory, error) {
	return s.repo.GetMealCategory(ctx, id)
}

func (s *CatalogService) CreateMealCategory(ctx context.Context, title string) (models.MealCategory, error) {
	if title == "" {
		return models.MealCategory{}, fieldError("title", "Title is required")
	}
	return s.repo.CreateMealCategory(ctx, title)
}

func (s *CatalogService) UpdateMealCategory(ctx context.Context, id, title string) (models.MealCategory, error) {
	if title == "" {
		return models.MealCategory{}, fieldError("title", "Title is required")
	}
	return s.repo.UpdateMealCategory(ctx, id, title)
}

func (s *CatalogService) DeleteMealCategory(ctx context.Context, id string) error {
	return s.repo.DeleteMealCategory(ctx, id)
}

func (s *CatalogService) ListMeals(ctx context.Context, p ListParams) ([]models.Meal, models.Pagination, error) {
	search, page, limit := p.norm()
	items, total, err := s.repo.ListMeals(ctx, search, page, limit)
	return items, p.pagination(total), err
}

func (s *CatalogService) GetMeal(ctx context.Context, id string) (models.Meal, error) {
	return s.repo.GetMeal(ctx, id)
}

func (s *CatalogService) CreateMeal(ctx context.Context, categoryID, name, description, image string) (models.Meal, error) {
	if name == "" {
		return models.Meal{}, fieldError("name", "Name is required")
	}
	if categoryID == "" {
		return models.Meal{}, fieldError("mealCategory", "Category is required")
	}
	return s.repo.CreateMeal(ctx, categoryID, name, description, image)
}

func (s *CatalogService) UpdateMeal(ctx context.Context, id, categoryID, name, description, image string) (models.Meal, error) {
	return s.repo.UpdateMeal(ctx, id, categoryID, name, description, image)
}

func (s *CatalogService) DeleteMeal(ctx context.Context, id string) error {
	return s.repo.DeleteMeal(ctx, id)
}

// StoreService is read-only over synced orders.
type StoreService struct {
	repo Repository
}

func (s *StoreService) ListOrders(ctx context.Context, p ListParams) ([]models.Order, models.Pagination, error) {
	search, page, limit := p.norm()
	items, total, err := s.repo.ListOrders(ctx, search, page, limit)
	return items, p.pagination(total), err
}

func (s *StoreService) OrderDetails(ctx context.Context, id string) (models.OrderDetails, error) {
	return s.repo.GetOrderDetails(ctx, id)
}

// SeedDemoOrders populates the store screen when no sync has run yet.
func (s *StoreService) SeedDemoOrders(ctx context.Context) error {
	orders, _, err := s.repo.ListOrders(ctx, "", 1, 1)
	if err != nil {
		return err
	}
	if len(orders) > 0 {
		return nil
	}
	demo := []struct {
		order models.Order
		items []models.OrderLineItem
	}{
		{
			order: models.Order{Name: "#1001", Email: "jordan@example.com", Price: "59.90", Currency: "USD", TotalItems: 2, PONumber: "PO-1001"},
			items: []models.OrderLineItem{
				{ProductID: "prod-1", Title: "Resistance Band Set", Quantity: 1, Price: "24.95"},
				{ProductID: "prod-2", Title: "Shaker Bottle", Quantity: 1, Price: "34.95"},
			},
		},
		{
			order: models.Order{Name: "#1002", Email: "casey@example.com", Price: "120.00", Currency: "USD", TotalItems: 1, PONumber: "PO-1002"},
			items: []models.OrderLineItem{
				{ProductID: "prod-3", Title: "Adjustable Dumbbell", Quantity: 1, Price: "120.00"},
			},
		},
	}
	for _, d := range demo {
		if err := s.repo.InsertOrder(ctx, d.order, d.items); err != nil {
			return err
		}
	}
	return nil
}

// NotificationsService lists and acknowledges notifications.
type NotificationsService struct {
	repo Repository
}

func (s *NotificationsService) List(ctx context.Context, p ListParams) ([]models.Notification, models.Pagination, error) {
	_, page, limit := p.norm()
	items, total, err := s.repo.ListNotifications(ctx, page, limit)
	return items, p.pagination(total), err
}

func (s *NotificationsService) Create(ctx context.Context, title, message string) (models.Notification, error) {
	if title == "" {
		return models.Notification{}, fieldError("title", "Title is required")
	}
	return s.repo.CreateNotification(ctx, title, message)
}

func (s *NotificationsService) MarkRead(ctx context.Context, id string) error {
	return s.repo.MarkNotificationRead(ctx, id)
}
