package handlers

import (
	"net/http"

	"github.com/ligasport/torneos-api/services"
)

type AuthHandler struct {
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input services.LoginInput
	if !readVerifyInput(w, r, &input) {
		return
	}

	user, token, err := h.authService.Login(r.Context(), input)
	if err != nil {
		mapServiceError(w, err)
		return
	}

	successResponse(w, http.StatusOK, "Login exitoso", jsonResponse{
		"data": jsonResponse{
			"token":   token,
			"usuario": user,
		},
	})
}

func (h *AuthHandler) GetPerfil(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromRequest(w, r)
	if !ok {
		return
	}

	user, err := h.authService.GetPerfil(r.Context(), identity.UserID)
	if err != nil {
		mapServiceError(w, err)
		return
	}

	successResponse(w, http.StatusOK, "", jsonResponse{"data": user})
}

func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromRequest(w, r)
	if !ok {
		return
	}

	var input services.ChangePasswordInput
	if !readVerifyInput(w, r, &input) {
		return
	}

	if err := h.authService.ChangePassword(r.Context(), identity.UserID, input); err != nil {
		mapServiceError(w, err)
		return
	}

	successResponse(w, http.StatusOK, "Contraseña actualizada exitosamente", nil)
}
