package service

import (
	"context"
	"errors"
	"testing"

	"onepercent/internal/server/config"
	"onepercent/internal/server/repository/sqlite"
)

func newTestServices(t *testing.T, name string) *Services {
	t.Helper()
	repo, err := sqlite.New("file:" + name + "?mode=memory&cache=shared")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	return NewServices(repo, config.Config{JWTSecret: "test"})
}

func TestAuthRegisterLogin(t *testing.T) {
	svcs := newTestServices(t, "svc_auth_login")
	ctx := context.Background()
	if _, err := svcs.Auth.Register(ctx, "Jordan", "u@example.com", "password1"); err != nil {
		t.Fatal(err)
	}
	token, err := svcs.Auth.Login(ctx, "u@example.com", "password1")
	if err != nil || token == "" {
		t.Fatalf("login failed: %v", err)
	}
	uid, err := svcs.Auth.ParseToken(ctx, token)
	if err != nil || uid == "" {
		t.Fatalf("parse failed: %v", err)
	}
	if _, err := svcs.Auth.Login(ctx, "u@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("want invalid credentials, got %v", err)
	}
}

func TestLoginBlockedAccount(t *testing.T) {
	svcs := newTestServices(t, "svc_auth_blocked")
	ctx := context.Background()
	u, err := svcs.Auth.Register(ctx, "Casey", "c@example.com", "password1")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svcs.Users.ToggleStatus(ctx, u.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := svcs.Auth.Login(ctx, "c@example.com", "password1"); !errors.Is(err, ErrAccountBlocked) {
		t.Fatalf("want blocked, got %v", err)
	}
}

func TestPasswordResetFlow(t *testing.T) {
	svcs := newTestServices(t, "svc_reset")
	ctx := context.Background()
	if _, err := svcs.Auth.Register(ctx, "Jordan", "r@example.com", "password1"); err != nil {
		t.Fatal(err)
	}

	code, err := svcs.Auth.ForgetPassword(ctx, "r@example.com")
	if err != nil || len(code) != 6 {
		t.Fatalf("forget: %v code=%q", err, code)
	}
	wrong := "000000"
	if code == wrong {
		wrong = "000001"
	}
	if err := svcs.Auth.VerifyOTP(ctx, "r@example.com", wrong); !errors.Is(err, ErrBadOTP) {
		t.Fatalf("wrong code accepted: %v", err)
	}
	if err := svcs.Auth.VerifyOTP(ctx, "r@example.com", code); err != nil {
		t.Fatalf("verify: %v", err)
	}
	// verify does not consume the code
	if err := svcs.Auth.ResetPassword(ctx, code, "newpassword1", "newpassword1"); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if _, err := svcs.Auth.Login(ctx, "r@example.com", "newpassword1"); err != nil {
		t.Fatalf("login with new password: %v", err)
	}
	// code is consumed by the reset
	if err := svcs.Auth.ResetPassword(ctx, code, "otherpassword1", "otherpassword1"); !errors.Is(err, ErrBadOTP) {
		t.Fatalf("reused code: %v", err)
	}
}

func TestResetPasswordValidation(t *testing.T) {
	svcs := newTestServices(t, "svc_reset_validation")
	ctx := context.Background()

	var verr *ValidationError
	err := svcs.Auth.ResetPassword(ctx, "123456", "short", "short")
	if !errors.As(err, &verr) || verr.Fields[0].Path != "newPassword" {
		t.Fatalf("short password: %v", err)
	}
	err = svcs.Auth.ResetPassword(ctx, "123456", "longenough1", "different1")
	if !errors.As(err, &verr) || verr.Fields[0].Path != "confirmPassword" {
		t.Fatalf("mismatch: %v", err)
	}
}

func TestChangePasswordAndDeleteAccount(t *testing.T) {
	svcs := newTestServices(t, "svc_change_delete")
	ctx := context.Background()
	u, err := svcs.Auth.Register(ctx, "Jordan", "cd@example.com", "password1")
	if err != nil {
		t.Fatal(err)
	}
	if err := svcs.Auth.ChangePassword(ctx, u.ID, "wrong", "newpassword1", "newpassword1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong current accepted: %v", err)
	}
	if err := svcs.Auth.ChangePassword(ctx, u.ID, "password1", "newpassword1", "newpassword1"); err != nil {
		t.Fatal(err)
	}
	if err := svcs.Auth.DeleteAccount(ctx, u.ID, "newpassword1"); err != nil {
		t.Fatal(err)
	}
	if _, err := svcs.Auth.Login(ctx, "cd@example.com", "newpassword1"); !errors.Is(err, ErrAccountBlocked) {
		t.Fatalf("deleted account logged in: %v", err)
	}
}

func TestCatalogValidation(t *testing.T) {
	svcs := newTestServices(t, "svc_catalog")
	ctx := context.Background()

	var verr *ValidationError
	if _, err := svcs.Catalog.CreatePreference(ctx, "", true); !errors.As(err, &verr) || verr.Fields[0].Path != "name" {
		t.Fatalf("empty name: %v", err)
	}
	if _, err := svcs.Catalog.CreatePlan(ctx, "gym", "Title", "", ""); !errors.As(err, &verr) || verr.Fields[0].Path != "description" {
		t.Fatalf("empty description: %v", err)
	}
	if _, err := svcs.Catalog.CreateMeal(ctx, "", "Oats", "", ""); !errors.As(err, &verr) || verr.Fields[0].Path != "mealCategory" {
		t.Fatalf("empty category: %v", err)
	}
}

func TestListParamsNormalization(t *testing.T) {
	p := ListParams{}
	pag := p.pagination(42)
	if pag.Page != 1 || pag.Limit != 10 || pag.Total != 42 {
		t.Fatalf("defaults: %+v", pag)
	}
}

func TestSeedDemoOrdersIdempotent(t *testing.T) {
	svcs := newTestServices(t, "svc_seed")
	ctx := context.Background()
	if err := svcs.Store.SeedDemoOrders(ctx); err != nil {
		t.Fatal(err)
	}
	if err := svcs.Store.SeedDemoOrders(ctx); err != nil {
		t.Fatal(err)
	}
	orders, pag, err := svcs.Store.ListOrders(ctx, ListParams{})
	if err != nil || pag.Total != 2 || len(orders) != 2 {
		t.Fatalf("seed: %v total=%d", err, pag.Total)
	}
	d, err := svcs.Store.OrderDetails(ctx, orders[0].ID)
	if err != nil || len(d.LineItems) == 0 {
		t.Fatalf("details: %v", err)
	}
}
