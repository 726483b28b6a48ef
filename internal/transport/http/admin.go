package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/hashicorp/go-hclog"

	"github.com/aurelia-jewels/catalog-api/internal/auth"
)

// AdminHandler issues admin sessions against the shared password.
type AdminHandler struct {
	admin  *auth.Admin
	logger hclog.Logger
}

func NewAdminHandler(admin *auth.Admin, logger hclog.Logger) *AdminHandler {
	return &AdminHandler{admin: admin, logger: logger}
}

// Login handles POST /api/admin/login
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if body.Password == "" {
		respondError(w, http.StatusBadRequest, "Missing required field: password")
		return
	}

	token, err := h.admin.Login(body.Password)
	if errors.Is(err, auth.ErrWrongPassword) {
		h.logger.Warn("Failed admin login attempt")
		respondError(w, http.StatusUnauthorized, "Wrong password")
		return
	}
	if err != nil {
		h.logger.Error("Unable to issue admin token", "error", err)
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "admin_token",
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	respondJSON(w, http.StatusOK, map[string]string{"token": token})
}
