package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"nyumbaBack/internal/models"
	"nyumbaBack/internal/services"
	"nyumbaBack/utils"
)

type UserHandler struct {
	Service *services.UserService
}

func (h *UserHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var user models.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		http.Error(w, "Invalid body", http.StatusBadRequest)
		return
	}

	resp, err := h.Service.SignUp(r.Context(), user)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrDuplicateEmail):
			http.Error(w, "Email already registered", http.StatusConflict)
		case errors.Is(err, models.ErrDuplicatePhone):
			http.Error(w, "Phone already registered", http.StatusConflict)
		default:
			http.Error(w, "Failed to sign up", http.StatusInternalServerError)
		}
		return
	}
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(resp)
}

func (h *UserHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req models.SignInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid body", http.StatusBadRequest)
		return
	}

	resp, err := h.Service.SignIn(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrInvalidCredentials):
			http.Error(w, "Invalid phone/email or password", http.StatusUnauthorized)
		case errors.Is(err, models.ErrUserBlocked):
			http.Error(w, "Account is blocked", http.StatusForbidden)
		default:
			http.Error(w, "Failed to sign in", http.StatusInternalServerError)
		}
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     "refresh_token",
		Value:    resp.Tokens.RefreshToken,
		Path:     "/",
		MaxAge:   int((30 * 24 * time.Hour).Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	json.NewEncoder(w).Encode(resp)
}

func (h *UserHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.RefreshToken == "" {
		http.Error(w, "Invalid body", http.StatusBadRequest)
		return
	}
	if err := h.Service.SignOut(r.Context(), req.RefreshToken); err != nil {
		http.Error(w, "Failed to sign out", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *UserHandler) VerifyPhone(w http.ResponseWriter, r *http.Request) {
	var req models.VerifyCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid body", http.StatusBadRequest)
		return
	}
	if err := h.Service.VerifyPhone(r.Context(), req); err != nil {
		if errors.Is(err, models.ErrInvalidCode) {
			http.Error(w, "Invalid or expired code", http.StatusBadRequest)
			return
		}
		http.Error(w, "Failed to verify phone", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]bool{"verified": true})
}

func (h *UserHandler) ResendCode(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Phone string `json:"phone"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Phone == "" {
		http.Error(w, "Invalid body", http.StatusBadRequest)
		return
	}
	if err := h.Service.ResendCode(r.Context(), req.Phone); err != nil {
		http.Error(w, "Failed to send code", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *UserHandler) RequestPasswordReset(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Phone string `json:"phone"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Phone == "" {
		http.Error(w, "Invalid body", http.StatusBadRequest)
		return
	}
	if err := h.Service.RequestPasswordReset(r.Context(), req.Phone); err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			// same answer either way so phone numbers cannot be probed
			w.WriteHeader(http.StatusOK)
			return
		}
		http.Error(w, "Failed to request reset", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *UserHandler) VerifyResetCode(w http.ResponseWriter, r *http.Request) {
	var req models.VerifyCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid body", http.StatusBadRequest)
		return
	}
	if err := h.Service.VerifyResetCode(r.Context(), req); err != nil {
		http.Error(w, "Invalid or expired code", http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *UserHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req models.ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid body", http.StatusBadRequest)
		return
	}
	if err := h.Service.ResetPassword(r.Context(), req); err != nil {
		if errors.Is(err, models.ErrInvalidCode) {
			http.Error(w, "Invalid or expired code", http.StatusBadRequest)
			return
		}
		http.Error(w, "Failed to reset password", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *UserHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req models.UpdatePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid body", http.StatusBadRequest)
		return
	}
	req.UserID = userIDFromContext(r)
	if err := h.Service.ChangePassword(r.Context(), req); err != nil {
		if errors.Is(err, models.ErrInvalidPassword) {
			http.Error(w, "Old password is incorrect", http.StatusBadRequest)
			return
		}
		http.Error(w, "Failed to change password", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *UserHandler) ChangePhone(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Phone string `json:"phone"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Phone == "" {
		http.Error(w, "Invalid body", http.StatusBadRequest)
		return
	}
	if err := h.Service.ChangePhone(r.Context(), userIDFromContext(r), req.Phone); err != nil {
		if errors.Is(err, models.ErrDuplicatePhone) {
			http.Error(w, "Phone already registered", http.StatusConflict)
			return
		}
		http.Error(w, "Failed to change phone", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *UserHandler) ChangeEmail(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		http.Error(w, "Invalid body", http.StatusBadRequest)
		return
	}
	if err := h.Service.ChangeEmail(r.Context(), userIDFromContext(r), req.Email); err != nil {
		if errors.Is(err, models.ErrDuplicateEmail) {
			http.Error(w, "Email already registered", http.StatusConflict)
			return
		}
		http.Error(w, "Failed to change email", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// UpgradeToProvider switches the authenticated client into the provider role
// so they can publish listings (after subscribing).
func (h *UserHandler) UpgradeToProvider(w http.ResponseWriter, r *http.Request) {
	user, err := h.Service.UpgradeToProvider(r.Context(), userIDFromContext(r))
	if err != nil {
		http.Error(w, "Failed to upgrade role", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(user)
}

func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	user, err := h.Service.GetUserByID(r.Context(), userIDFromContext(r))
	if err != nil {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}
	user.Password = ""
	json.NewEncoder(w).Encode(user)
}

func (h *UserHandler) GetUserByID(w http.ResponseWriter, r *http.Request) {
	user, err := h.Service.GetUserByID(r.Context(), getIntParam(r, "id"))
	if err != nil {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}
	user.Password = ""
	user.Email = ""
	json.NewEncoder(w).Encode(user)
}

func (h *UserHandler) GetUsers(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	search := r.URL.Query().Get("search")

	users, err := h.Service.GetUsers(r.Context(), search, page, limit)
	if err != nil {
		http.Error(w, "Failed to fetch users", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(users)
}

func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	var user models.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		http.Error(w, "Invalid body", http.StatusBadRequest)
		return
	}
	user.ID = userIDFromContext(r)
	updated, err := h.Service.UpdateUser(r.Context(), user)
	if err != nil {
		http.Error(w, "Failed to update profile", http.StatusInternalServerError)
		return
	}
	updated.Password = ""
	json.NewEncoder(w).Encode(updated)
}

func (h *UserHandler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "Invalid multipart form", http.StatusBadRequest)
		return
	}
	file, header, err := r.FormFile("avatar")
	if err != nil {
		http.Error(w, "Avatar file missing", http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, "Failed to read file", http.StatusInternalServerError)
		return
	}
	url, err := utils.UploadFileToS3(data, header.Filename, "avatars", header.Header.Get("Content-Type"))
	if err != nil {
		http.Error(w, "Failed to upload avatar", http.StatusInternalServerError)
		return
	}
	if err := h.Service.UpdateAvatar(r.Context(), userIDFromContext(r), url); err != nil {
		http.Error(w, "Failed to save avatar", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(map[string]string{"avatar_path": url})
}

func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id := getIntParam(r, "id")
	if roleFromContext(r) != models.RoleAdmin && id != userIDFromContext(r) {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}
	if err := h.Service.DeleteUser(r.Context(), id); err != nil {
		http.Error(w, "Failed to delete user", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
