package httpapi

import (
	"net/http"

	"onepercent/internal/server/models"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *Router) handleRegister(w http.ResponseWriter, req *http.Request) {
	var body registerRequest
	if err := decodeJSON(req, &body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON", nil)
		return
	}
	user, err := r.services.Auth.Register(req.Context(), body.Name, body.Email, body.Password)
	if err != nil {
		r.writeServiceError(w, err)
		return
	}
	writeData(w, http.StatusCreated, "Account created", user)
}

func (r *Router) handleLogin(w http.ResponseWriter, req *http.Request) {
	var body loginRequest
	if err := decodeJSON(req, &body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON", nil)
		return
	}
	token, err := r.services.Auth.Login(req.Context(), body.Email, body.Password)
	if err != nil {
		r.writeServiceError(w, err)
		return
	}
	writeData(w, http.StatusOK, "Logged in", models.TokenResponse{AccessToken: token})
}

func (r *Router) handleForgetPassword(w http.ResponseWriter, req *http.Request) {
	var body struct {
		Email string `json:"email"`
	}
	if err := decodeJSON(req, &body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON", nil)
		return
	}
	code, err := r.services.Auth.ForgetPassword(req.Context(), body.Email)
	if err != nil {
		r.writeServiceError(w, err)
		return
	}
	// stand-in for the mail sender
	if r.logger != nil {
		r.logger.Printf("password reset code for %s: %s", body.Email, code)
	}
	writeData(w, http.StatusOK, "A reset code has been sent to your email", nil)
}

func (r *Router) handleVerifyEmail(w http.ResponseWriter, req *http.Request) {
	var body struct {
		Email string `json:"email"`
		Code  string `json:"oneTimeCode"`
	}
	if err := decodeJSON(req, &body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON", nil)
		return
	}
	if err := r.services.Auth.VerifyOTP(req.Context(), body.Email, body.Code); err != nil {
		r.writeServiceError(w, err)
		return
	}
	writeData(w, http.StatusOK, "Code verified", nil)
}

func (r *Router) handleResetPassword(w http.ResponseWriter, req *http.Request) {
	var body struct {
		OTP             string `json:"otp"`
		NewPassword     string `json:"newPassword"`
		ConfirmPassword string `json:"confirmPassword"`
	}
	if err := decodeJSON(req, &body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON", nil)
		return
	}
	if err := r.services.Auth.ResetPassword(req.Context(), body.OTP, body.NewPassword, body.ConfirmPassword); err != nil {
		r.writeServiceError(w, err)
		return
	}
	writeData(w, http.StatusOK, "Password updated", nil)
}

func (r *Router) handleChangePassword(w http.ResponseWriter, req *http.Request) {
	var body struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
		ConfirmPassword string `json:"confirmPassword"`
	}
	if err := decodeJSON(req, &body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON", nil)
		return
	}
	userID := getUserID(req.Context())
	if err := r.services.Auth.ChangePassword(req.Context(), userID, body.CurrentPassword, body.NewPassword, body.ConfirmPassword); err != nil {
		r.writeServiceError(w, err)
		return
	}
	writeData(w, http.StatusOK, "Password updated", nil)
}

func (r *Router) handleProfile(w http.ResponseWriter, req *http.Request) {
	user, err := r.services.Auth.Profile(req.Context(), getUserID(req.Context()))
	if err != nil {
		r.writeServiceError(w, err)
		return
	}
	writeData(w, http.StatusOK, "Profile", user)
}

// handleUpdateProfile accepts either a JSON body or a multipart form with
// an optional image.
func (r *Router) handleUpdateProfile(w http.ResponseWriter, req *http.Request) {
	var name, image string
	if isMultipart(req) {
		if err := req.ParseMultipartForm(32 << 20); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid form", nil)
			return
		}
		name = req.FormValue("name")
		var err error
		image, err = r.saveImagePart(req)
		if err != nil {
			r.writeServiceError(w, err)
			return
		}
	} else {
		var body struct {
			Name string `json:"name"`
		}
		if err := decodeJSON(req, &body); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid JSON", nil)
			return
		}
		name = body.Name
	}
	user, err := r.services.Auth.UpdateProfile(req.Context(), getUserID(req.Context()), name, image)
	if err != nil {
		r.writeServiceError(w, err)
		return
	}
	writeData(w, http.StatusOK, "Profile updated", user)
}

func (r *Router) handleDeleteAccount(w http.ResponseWriter, req *http.Request) {
	var body struct {
		Password string `json:"password"`
	}
	if err := decodeJSON(req, &body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON", nil)
		return
	}
	if err := r.services.Auth.DeleteAccount(req.Context(), getUserID(req.Context()), body.Password); err != nil {
		r.writeServiceError(w, err)
		return
	}
	writeData(w, http.StatusOK, "Account deleted", nil)
}
