package handler

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/sahildeshmukh45/tl/internal/model"
	"github.com/sahildeshmukh45/tl/internal/user"
)

// Login verifies credentials and issues a bearer token.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if !h.decode(w, r, &req) {
		return
	}

	u, err := h.users.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, user.ErrInvalidCredentials) {
			h.writeJSON(w, http.StatusUnauthorized, map[string]string{"error": err.Error()})
			return
		}
		h.writeError(w, err)
		return
	}

	token, err := h.tokens.Generate(u)
	if err != nil {
		h.log.Error("failed to sign token", zap.Error(err))
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{
		"token":     token,
		"tokenType": "Bearer",
		"user":      u,
	})
}

// Register creates a new account.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterRequest
	if !h.decode(w, r, &req) {
		return
	}

	u, err := h.users.Create(r.Context(), &req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, u)
}

// Logout marks the caller offline. The token itself simply expires.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.users.SetOnline(r.Context(), callerID(r), false); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "Ok"})
}

func (h *Handler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req model.ForgotPasswordRequest
	if !h.decode(w, r, &req) {
		return
	}

	if err := h.users.InitiatePasswordReset(r.Context(), req.Email); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "Ok"})
}

func (h *Handler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req model.ResetPasswordRequest
	if !h.decode(w, r, &req) {
		return
	}

	if err := h.users.ResetPassword(r.Context(), req.Token, req.NewPassword); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "Ok"})
}
