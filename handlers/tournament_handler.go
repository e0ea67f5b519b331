package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/ligasport/torneos-api/services"
)

type TournamentHandler struct {
	tournamentService services.TournamentService
}

func NewTournamentHandler(tournamentService services.TournamentService) *TournamentHandler {
	return &TournamentHandler{tournamentService: tournamentService}
}

func (h *TournamentHandler) List(w http.ResponseWriter, r *http.Request) {
	torneos, err := h.tournamentService.List(r.Context())
	if err != nil {
		serverErrorResponse(w, err)
		return
	}

	successResponse(w, http.StatusOK, "Torneos obtenidos exitosamente", jsonResponse{
		"data":  torneos,
		"total": len(torneos),
	})
}

func (h *TournamentHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "id")
	if err != nil {
		badRequestResponse(w, err.Error())
		return
	}

	torneo, err := h.tournamentService.GetByID(r.Context(), id)
	if err != nil {
		mapServiceError(w, err)
		return
	}

	successResponse(w, http.StatusOK, "Torneo encontrado", jsonResponse{"data": torneo})
}

func (h *TournamentHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromRequest(w, r)
	if !ok {
		return
	}

	var input services.CreateTournamentInput
	if !readVerifyInput(w, r, &input) {
		return
	}

	torneo, err := h.tournamentService.Create(r.Context(), identity, input)
	if err != nil {
		mapServiceError(w, err)
		return
	}

	successResponse(w, http.StatusCreated, "Torneo creado exitosamente", jsonResponse{"data": torneo})
}

func (h *TournamentHandler) Update(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromRequest(w, r)
	if !ok {
		return
	}

	id, err := getIDFromURL(r, "id")
	if err != nil {
		badRequestResponse(w, err.Error())
		return
	}

	var input services.UpdateTournamentInput
	if !readVerifyInput(w, r, &input) {
		return
	}

	torneo, err := h.tournamentService.Update(r.Context(), identity, id, input)
	if err != nil {
		mapServiceError(w, err)
		return
	}

	successResponse(w, http.StatusOK, "Torneo actualizado exitosamente", jsonResponse{"data": torneo})
}

func (h *TournamentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromRequest(w, r)
	if !ok {
		return
	}

	id, err := getIDFromURL(r, "id")
	if err != nil {
		badRequestResponse(w, err.Error())
		return
	}

	if err := h.tournamentService.Delete(r.Context(), identity, id); err != nil {
		mapServiceError(w, err)
		return
	}

	successResponse(w, http.StatusOK, "Torneo eliminado exitosamente", nil)
}

func (h *TournamentHandler) MisTorneos(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromRequest(w, r)
	if !ok {
		return
	}

	torneos, err := h.tournamentService.ListByOrganizador(r.Context(), identity.UserID)
	if err != nil {
		serverErrorResponse(w, err)
		return
	}

	successResponse(w, http.StatusOK, "Tus torneos obtenidos exitosamente", jsonResponse{
		"data":  torneos,
		"total": len(torneos),
	})
}

func (h *TournamentHandler) ListByEstado(w http.ResponseWriter, r *http.Request) {
	estado := chi.URLParam(r, "estado")

	torneos, err := h.tournamentService.ListByEstado(r.Context(), estado)
	if err != nil {
		mapServiceError(w, err)
		return
	}

	successResponse(w, http.StatusOK, "Torneos obtenidos exitosamente", jsonResponse{
		"data":  torneos,
		"total": len(torneos),
	})
}

func (h *TournamentHandler) ListEquipos(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "id")
	if err != nil {
		badRequestResponse(w, "ID de torneo inválido")
		return
	}

	torneo, equipos, err := h.tournamentService.ListTeams(r.Context(), id)
	if err != nil {
		mapServiceError(w, err)
		return
	}

	successResponse(w, http.StatusOK, "Equipos del torneo obtenidos exitosamente", jsonResponse{
		"data":  equipos,
		"total": len(equipos),
		"torneo": jsonResponse{
			"id":         torneo.ID,
			"nombre":     torneo.Nombre,
			"disciplina": torneo.Disciplina,
		},
	})
}

func (h *TournamentHandler) GetResumen(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "id")
	if err != nil {
		badRequestResponse(w, "ID de torneo inválido")
		return
	}

	resumen, err := h.tournamentService.GetSummary(r.Context(), id)
	if err != nil {
		mapServiceError(w, err)
		return
	}

	successResponse(w, http.StatusOK, "Resumen del torneo obtenido exitosamente", jsonResponse{
		"data": resumen,
	})
}
