package handlers

import (
	"net/http"

	"github.com/ligasport/torneos-api/services"
)

type EventHandler struct {
	eventService services.EventService
	matchService services.MatchService
}

func NewEventHandler(eventService services.EventService, matchService services.MatchService) *EventHandler {
	return &EventHandler{eventService: eventService, matchService: matchService}
}

func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	eventos, err := h.eventService.List(r.Context())
	if err != nil {
		serverErrorResponse(w, err)
		return
	}

	successResponse(w, http.StatusOK, "Eventos obtenidos exitosamente", jsonResponse{
		"data":  eventos,
		"total": len(eventos),
	})
}

func (h *EventHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "id")
	if err != nil {
		badRequestResponse(w, err.Error())
		return
	}

	evento, err := h.eventService.GetByID(r.Context(), id)
	if err != nil {
		mapServiceError(w, err)
		return
	}

	successResponse(w, http.StatusOK, "Evento encontrado", jsonResponse{"data": evento})
}

func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromRequest(w, r)
	if !ok {
		return
	}

	var input services.CreateEventInput
	if !readVerifyInput(w, r, &input) {
		return
	}

	evento, err := h.eventService.Create(r.Context(), identity, input)
	if err != nil {
		mapServiceError(w, err)
		return
	}

	successResponse(w, http.StatusCreated, "Evento registrado exitosamente", jsonResponse{"data": evento})
}

func (h *EventHandler) Update(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromRequest(w, r)
	if !ok {
		return
	}

	id, err := getIDFromURL(r, "id")
	if err != nil {
		badRequestResponse(w, err.Error())
		return
	}

	var input services.UpdateEventInput
	if !readVerifyInput(w, r, &input) {
		return
	}

	evento, err := h.eventService.Update(r.Context(), identity, id, input)
	if err != nil {
		mapServiceError(w, err)
		return
	}

	successResponse(w, http.StatusOK, "Evento actualizado exitosamente", jsonResponse{"data": evento})
}

func (h *EventHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromRequest(w, r)
	if !ok {
		return
	}

	id, err := getIDFromURL(r, "id")
	if err != nil {
		badRequestResponse(w, err.Error())
		return
	}

	if err := h.eventService.Delete(r.Context(), identity, id); err != nil {
		mapServiceError(w, err)
		return
	}

	successResponse(w, http.StatusOK, "Evento eliminado exitosamente", nil)
}

func (h *EventHandler) ListByPartido(w http.ResponseWriter, r *http.Request) {
	partidoID, err := getIDFromURL(r, "partidoId")
	if err != nil {
		badRequestResponse(w, "ID de partido inválido")
		return
	}

	partido, eventos, err := h.matchService.ListEventos(r.Context(), partidoID)
	if err != nil {
		mapServiceError(w, err)
		return
	}

	successResponse(w, http.StatusOK, "Eventos del partido obtenidos exitosamente", jsonResponse{
		"data":    eventos,
		"total":   len(eventos),
		"partido": matchContext(partido, true),
	})
}

func (h *EventHandler) GetGoleadores(w http.ResponseWriter, r *http.Request) {
	partidoID, err := getIDFromURL(r, "partidoId")
	if err != nil {
		badRequestResponse(w, "ID de partido inválido")
		return
	}

	partido, goleadores, err := h.eventService.GetGoleadores(r.Context(), partidoID)
	if err != nil {
		mapServiceError(w, err)
		return
	}

	successResponse(w, http.StatusOK, "Goleadores del partido obtenidos exitosamente", jsonResponse{
		"data":    goleadores,
		"total":   len(goleadores),
		"partido": matchContext(partido, false),
	})
}
