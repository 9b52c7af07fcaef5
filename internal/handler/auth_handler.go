package handler

import (
	"encoding/json"
	"net"
	"net/http"
	"strings"

	"campus-auth/internal/fingerprint"
	"campus-auth/internal/middleware"
	"campus-auth/internal/model"
	"campus-auth/internal/service"
	"campus-auth/pkg/apierror"
)

type AuthHandler struct {
	registration *service.RegistrationService
	auth         *service.AuthService
}

func NewAuthHandler(registration *service.RegistrationService, auth *service.AuthService) *AuthHandler {
	return &AuthHandler{registration: registration, auth: auth}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.New("Invalid JSON body", http.StatusBadRequest))
		return
	}

	if payload.DeviceFingerprint == "" {
		payload.DeviceFingerprint = requestFingerprint(r)
	}

	user, err := h.registration.Register(r.Context(), payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "User registered successfully",
		"user":    user,
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.New("Invalid JSON body", http.StatusBadRequest))
		return
	}

	if payload.DeviceFingerprint == "" {
		payload.DeviceFingerprint = requestFingerprint(r)
	}

	pair, err := h.auth.Login(r.Context(), payload.Email, payload.Password, payload.DeviceFingerprint)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, pair)
}

func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.New("Invalid JSON body", http.StatusBadRequest))
		return
	}

	payload.RefreshToken = strings.TrimSpace(payload.RefreshToken)
	if payload.RefreshToken == "" {
		writeError(w, apierror.New("Refresh token is required", http.StatusBadRequest))
		return
	}

	accessToken, err := h.auth.Refresh(r.Context(), payload.RefreshToken)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"access_token": accessToken})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, model.ErrUnauthorized)
		return
	}

	if err := h.auth.Logout(r.Context(), claims.UserID); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Logout successful"})
}

func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, model.ErrUnauthorized)
		return
	}

	user, err := h.auth.GetProfile(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

func (h *AuthHandler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "service": "campus-auth"})
}

// requestFingerprint derives the fallback fingerprint from request headers
// when the client did not send one.
func requestFingerprint(r *http.Request) string {
	ip := r.RemoteAddr
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		ip = host
	}
	return fingerprint.Fallback(r.UserAgent(), ip, r.Header.Get("Accept-Language"))
}
