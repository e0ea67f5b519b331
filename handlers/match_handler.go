package handlers

import (
	"fmt"
	"net/http"

	"github.com/ligasport/torneos-api/models"
	"github.com/ligasport/torneos-api/services"
)

type MatchHandler struct {
	matchService services.MatchService
}

func NewMatchHandler(matchService services.MatchService) *MatchHandler {
	return &MatchHandler{matchService: matchService}
}

func (h *MatchHandler) List(w http.ResponseWriter, r *http.Request) {
	partidos, err := h.matchService.List(r.Context())
	if err != nil {
		serverErrorResponse(w, err)
		return
	}

	successResponse(w, http.StatusOK, "Partidos obtenidos exitosamente", jsonResponse{
		"data":  partidos,
		"total": len(partidos),
	})
}

func (h *MatchHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "id")
	if err != nil {
		badRequestResponse(w, err.Error())
		return
	}

	partido, err := h.matchService.GetByID(r.Context(), id)
	if err != nil {
		mapServiceError(w, err)
		return
	}

	successResponse(w, http.StatusOK, "Partido encontrado", jsonResponse{"data": partido})
}

func (h *MatchHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromRequest(w, r)
	if !ok {
		return
	}

	var input services.CreateMatchInput
	if !readVerifyInput(w, r, &input) {
		return
	}

	partido, err := h.matchService.Create(r.Context(), identity, input)
	if err != nil {
		mapServiceError(w, err)
		return
	}

	successResponse(w, http.StatusCreated, "Partido creado exitosamente", jsonResponse{"data": partido})
}

func (h *MatchHandler) Update(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromRequest(w, r)
	if !ok {
		return
	}

	id, err := getIDFromURL(r, "id")
	if err != nil {
		badRequestResponse(w, err.Error())
		return
	}

	var input services.UpdateMatchInput
	if !readVerifyInput(w, r, &input) {
		return
	}

	partido, err := h.matchService.Update(r.Context(), identity, id, input)
	if err != nil {
		mapServiceError(w, err)
		return
	}

	successResponse(w, http.StatusOK, "Partido actualizado exitosamente", jsonResponse{"data": partido})
}

func (h *MatchHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromRequest(w, r)
	if !ok {
		return
	}

	id, err := getIDFromURL(r, "id")
	if err != nil {
		badRequestResponse(w, err.Error())
		return
	}

	if err := h.matchService.Delete(r.Context(), identity, id); err != nil {
		mapServiceError(w, err)
		return
	}

	successResponse(w, http.StatusOK, "Partido eliminado exitosamente", nil)
}

func (h *MatchHandler) ListByTorneo(w http.ResponseWriter, r *http.Request) {
	torneoID, err := getIDFromURL(r, "torneoId")
	if err != nil {
		badRequestResponse(w, "ID de torneo inválido")
		return
	}

	torneo, partidos, err := h.matchService.ListByTorneo(r.Context(), torneoID)
	if err != nil {
		mapServiceError(w, err)
		return
	}

	successResponse(w, http.StatusOK, "Partidos del torneo obtenidos exitosamente", jsonResponse{
		"data":  partidos,
		"total": len(partidos),
		"torneo": jsonResponse{
			"id":         torneo.ID,
			"nombre":     torneo.Nombre,
			"disciplina": torneo.Disciplina,
		},
	})
}

func (h *MatchHandler) ListByEquipo(w http.ResponseWriter, r *http.Request) {
	equipoID, err := getIDFromURL(r, "equipoId")
	if err != nil {
		badRequestResponse(w, "ID de equipo inválido")
		return
	}

	equipo, partidos, err := h.matchService.ListByEquipo(r.Context(), equipoID)
	if err != nil {
		mapServiceError(w, err)
		return
	}

	torneoNombre := ""
	if equipo.TorneoNombre != nil {
		torneoNombre = *equipo.TorneoNombre
	}

	successResponse(w, http.StatusOK, "Partidos del equipo obtenidos exitosamente", jsonResponse{
		"data":  partidos,
		"total": len(partidos),
		"equipo": jsonResponse{
			"id":     equipo.ID,
			"nombre": equipo.Nombre,
			"torneo": torneoNombre,
		},
	})
}

func (h *MatchHandler) ListEventos(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "id")
	if err != nil {
		badRequestResponse(w, err.Error())
		return
	}

	partido, eventos, err := h.matchService.ListEventos(r.Context(), id)
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

// matchContext is the compact partido block attached to event listings.
func matchContext(partido *models.Match, includeEstado bool) jsonResponse {
	local, visitante := "", ""
	if partido.EquipoLocalNombre != nil {
		local = *partido.EquipoLocalNombre
	}
	if partido.EquipoVisitanteNombre != nil {
		visitante = *partido.EquipoVisitanteNombre
	}

	ctx := jsonResponse{
		"id":        partido.ID,
		"local":     local,
		"visitante": visitante,
		"marcador":  fmt.Sprintf("%d - %d", partido.MarcadorLocal, partido.MarcadorVisitante),
	}
	if includeEstado {
		ctx["estado"] = partido.Estado
	}
	return ctx
}
