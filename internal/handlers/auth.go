package handlers

import (
	"net/http"

	"manualdesk/internal/models"
	"manualdesk/internal/services"
	"manualdesk/internal/utils/helpers"
)

type AuthHandler struct {
	auth *services.AuthService
}

func NewAuthHandler(auth *services.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Login godoc
// @Summary Вход в админку
// @Tags auth
// @Accept json
// @Produce json
// @Param input body models.LoginRequest true "Email и пароль"
// @Success 200 {object} models.LoginResponse
// @Failure 400 {object} helpers.Response
// @Failure 401 {object} helpers.Response
// @Router /api/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := helpers.Decode(r, &req); err != nil {
		badJSON(w, r, "auth", err)
		return
	}
	resp, err := h.auth.Login(r.Context(), req)
	if err != nil {
		writeError(w, r, "auth", err)
		return
	}
	helpers.JSON(w, http.StatusOK, resp)
}
