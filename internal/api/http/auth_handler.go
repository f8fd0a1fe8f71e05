package http

import (
	"encoding/json"
	"net/http"
	"time"

	"drivehub-backend/internal/domain"
)

type registerRequest struct {
	Name           string  `json:"name" validate:"required,min=2"`
	Email          string  `json:"email" validate:"required,email"`
	Phone          string  `json:"phone" validate:"omitempty,min=7"`
	Password       string  `json:"password" validate:"required,min=8"`
	Role           string  `json:"role" validate:"omitempty,oneof=CUSTOMER RESELLER"`
	CommissionRate float64 `json:"commission_rate" validate:"omitempty,gte=0,lte=50"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid json"})
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	user, err := h.userService.Register(r.Context(), req.Name, req.Email, req.Phone, req.Password, domain.UserRole(req.Role), req.CommissionRate)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid json"})
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	user, err := h.userService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondError(w, err)
		return
	}

	token, err := h.tokenManager.GenerateAccessToken(user.ID, user.Email, user.Role)
	if err != nil {
		respondError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.cookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(24 * time.Hour),
	})
	writeJSON(w, http.StatusOK, loginResponse{Token: token, User: user})
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())
	user, err := h.userService.GetProfile(r.Context(), claims.UserID)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *Handler) ListResellers(w http.ResponseWriter, r *http.Request) {
	resellers, err := h.userService.ListResellers(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resellers)
}
