package handlers

import (
	"net/http"

	"github.com/ligasport/torneos-api/services"
)

type UserHandler struct {
	userService services.UserService
}

func NewUserHandler(userService services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.List(r.Context())
	if err != nil {
		serverErrorResponse(w, err)
		return
	}

	successResponse(w, http.StatusOK, "Usuarios obtenidos exitosamente", jsonResponse{
		"data":  users,
		"total": len(users),
	})
}

func (h *UserHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "id")
	if err != nil {
		badRequestResponse(w, err.Error())
		return
	}

	user, err := h.userService.GetByID(r.Context(), id)
	if err != nil {
		mapServiceError(w, err)
		return
	}

	successResponse(w, http.StatusOK, "Usuario encontrado", jsonResponse{"data": user})
}

func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input services.CreateUserInput
	if !readVerifyInput(w, r, &input) {
		return
	}

	user, err := h.userService.Create(r.Context(), input)
	if err != nil {
		mapServiceError(w, err)
		return
	}

	successResponse(w, http.StatusCreated, "Usuario creado exitosamente", jsonResponse{"data": user})
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromRequest(w, r)
	if !ok {
		return
	}

	id, err := getIDFromURL(r, "id")
	if err != nil {
		badRequestResponse(w, err.Error())
		return
	}

	var input services.UpdateUserInput
	if !readVerifyInput(w, r, &input) {
		return
	}

	user, err := h.userService.Update(r.Context(), identity, id, input)
	if err != nil {
		mapServiceError(w, err)
		return
	}

	successResponse(w, http.StatusOK, "Usuario actualizado exitosamente", jsonResponse{"data": user})
}

func (h *UserHandler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "id")
	if err != nil {
		badRequestResponse(w, err.Error())
		return
	}

	var input struct {
		Password string `json:"password" validate:"required"`
	}
	if !readVerifyInput(w, r, &input) {
		return
	}

	if err := h.userService.UpdatePassword(r.Context(), id, input.Password); err != nil {
		mapServiceError(w, err)
		return
	}

	successResponse(w, http.StatusOK, "Contraseña actualizada exitosamente", nil)
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromRequest(w, r)
	if !ok {
		return
	}

	id, err := getIDFromURL(r, "id")
	if err != nil {
		badRequestResponse(w, err.Error())
		return
	}

	if err := h.userService.Delete(r.Context(), identity, id); err != nil {
		mapServiceError(w, err)
		return
	}

	successResponse(w, http.StatusOK, "Usuario eliminado exitosamente", nil)
}
