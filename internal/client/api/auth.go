package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"onepercent/internal/shared/models"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ResetPasswordRequest struct {
	OTP             string `json:"otp"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

// Login exchanges credentials for a bearer token. Persisting the token is
// the caller's job (credential provider).
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	body, err := c.sendJSON(ctx, http.MethodPost, "/auth/login", LoginRequest{Email: email, Password: password})
	if err != nil {
		return "", err
	}
	var tok models.TokenResponse
	if err := json.Unmarshal(unwrapData(body), &tok); err != nil {
		return "", fmt.Errorf("decode login response: %w", err)
	}
	if tok.AccessToken == "" {
		return "", fmt.Errorf("login response carried no access token")
	}
	return tok.AccessToken, nil
}

// ForgetPassword asks the backend to email a 6-digit reset code.
func (c *Client) ForgetPassword(ctx context.Context, email string) error {
	_, err := c.sendJSON(ctx, http.MethodPost, "/auth/forget-password", map[string]string{"email": email})
	return err
}

// VerifyEmail submits an emailed one-time code.
func (c *Client) VerifyEmail(ctx context.Context, email, code string) error {
	_, err := c.sendJSON(ctx, http.MethodPost, "/auth/verify-email", map[string]string{"email": email, "oneTimeCode": code})
	return err
}

// ResetPassword sets a new password using the OTP from ForgetPassword. The
// email is not part of the payload; the code identifies the reset session.
func (c *Client) ResetPassword(ctx context.Context, req ResetPasswordRequest) error {
	_, err := c.sendJSON(ctx, http.MethodPost, "/auth/reset-password", req)
	return err
}

func (c *Client) ChangePassword(ctx context.Context, req ChangePasswordRequest) error {
	_, err := c.sendJSON(ctx, http.MethodPost, "/auth/change-password", req)
	return err
}

// Profile fetches the authenticated account. Route guards treat any error
// here as "unauthenticated".
func (c *Client) Profile(ctx context.Context) (models.User, error) {
	var env struct {
		Data models.User `json:"data"`
	}
	if err := c.getJSON(ctx, "/user/profile", nil, &env); err != nil {
		return models.User{}, err
	}
	return env.Data, nil
}

// UpdateProfile PATCHes profile fields, as multipart when a new image is
// attached.
func (c *Client) UpdateProfile(ctx context.Context, fields map[string]string, img *ImageFile) error {
	if img != nil {
		_, err := c.sendMultipart(ctx, http.MethodPatch, Users, "/user/profile", fields, img)
		return err
	}
	_, err := c.sendJSON(ctx, http.MethodPatch, "/user/profile", fields)
	if err == nil {
		c.cache.invalidate(Users.Tag)
	}
	return err
}

// DeleteAccount removes the authenticated account.
func (c *Client) DeleteAccount(ctx context.Context, password string) error {
	b, err := json.Marshal(map[string]string{"password": password})
	if err != nil {
		return err
	}
	req, err := c.newRequest(ctx, http.MethodDelete, "/user/delete-account", nil, bytes.NewReader(b), "application/json")
	if err != nil {
		return err
	}
	_, err = c.do(req)
	return err
}
