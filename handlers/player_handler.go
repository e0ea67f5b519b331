package handlers

import (
	"net/http"

	"github.com/ligasport/torneos-api/services"
)

type PlayerHandler struct {
	playerService services.PlayerService
}

func NewPlayerHandler(playerService services.PlayerService) *PlayerHandler {
	return &PlayerHandler{playerService: playerService}
}

func (h *PlayerHandler) List(w http.ResponseWriter, r *http.Request) {
	jugadores, err := h.playerService.List(r.Context())
	if err != nil {
		serverErrorResponse(w, err)
		return
	}

	successResponse(w, http.StatusOK, "Jugadores obtenidos exitosamente", jsonResponse{
		"data":  jugadores,
		"total": len(jugadores),
	})
}

func (h *PlayerHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "id")
	if err != nil {
		badRequestResponse(w, err.Error())
		return
	}

	jugador, err := h.playerService.GetByID(r.Context(), id)
	if err != nil {
		mapServiceError(w, err)
		return
	}

	successResponse(w, http.StatusOK, "Jugador encontrado", jsonResponse{"data": jugador})
}

func (h *PlayerHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromRequest(w, r)
	if !ok {
		return
	}

	var input services.CreatePlayerInput
	if !readVerifyInput(w, r, &input) {
		return
	}

	jugador, err := h.playerService.Create(r.Context(), identity, input)
	if err != nil {
		mapServiceError(w, err)
		return
	}

	successResponse(w, http.StatusCreated, "Jugador creado exitosamente", jsonResponse{"data": jugador})
}

func (h *PlayerHandler) Update(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromRequest(w, r)
	if !ok {
		return
	}

	id, err := getIDFromURL(r, "id")
	if err != nil {
		badRequestResponse(w, err.Error())
		return
	}

	var input services.UpdatePlayerInput
	if !readVerifyInput(w, r, &input) {
		return
	}

	jugador, err := h.playerService.Update(r.Context(), identity, id, input)
	if err != nil {
		mapServiceError(w, err)
		return
	}

	successResponse(w, http.StatusOK, "Jugador actualizado exitosamente", jsonResponse{"data": jugador})
}

func (h *PlayerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromRequest(w, r)
	if !ok {
		return
	}

	id, err := getIDFromURL(r, "id")
	if err != nil {
		badRequestResponse(w, err.Error())
		return
	}

	if err := h.playerService.Delete(r.Context(), identity, id); err != nil {
		mapServiceError(w, err)
		return
	}

	successResponse(w, http.StatusOK, "Jugador eliminado exitosamente", nil)
}
