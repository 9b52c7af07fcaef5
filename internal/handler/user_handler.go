package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"campus-auth/internal/middleware"
	"campus-auth/internal/model"
	"campus-auth/internal/service"
	"campus-auth/pkg/apierror"
)

type UserHandler struct {
	users *service.UserService
}

func NewUserHandler(users *service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// Update lets users edit their own record; anyone else needs the ADMIN role.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	id := chi.URLParam(r, "id")
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, model.ErrUnauthorized)
		return
	}
	if claims.UserID != id && claims.Role != model.RoleAdmin {
		writeError(w, model.ErrForbidden)
		return
	}

	var payload model.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.New("Invalid JSON body", http.StatusBadRequest))
		return
	}

	user, err := h.users.Update(r.Context(), id, payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "User updated successfully",
		"user":    user,
	})
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.users.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "User deleted successfully"})
}

func (h *UserHandler) Students(w http.ResponseWriter, r *http.Request) {
	h.roleArea(w, r, model.RoleStudent, "Student area", "students")
}

func (h *UserHandler) Teachers(w http.ResponseWriter, r *http.Request) {
	h.roleArea(w, r, model.RoleTeacher, "Teacher area", "teachers")
}

func (h *UserHandler) Admins(w http.ResponseWriter, r *http.Request) {
	h.roleArea(w, r, model.RoleAdmin, "Admin area", "admins")
}

func (h *UserHandler) roleArea(w http.ResponseWriter, r *http.Request, role model.Role, message string, key string) {
	users, err := h.users.ListByRole(r.Context(), role)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": message,
		key:       users,
	})
}
