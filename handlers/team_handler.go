package handlers

import (
	"net/http"

	"github.com/ligasport/torneos-api/services"
)

type TeamHandler struct {
	teamService services.TeamService
}

func NewTeamHandler(teamService services.TeamService) *TeamHandler {
	return &TeamHandler{teamService: teamService}
}

func (h *TeamHandler) List(w http.ResponseWriter, r *http.Request) {
	equipos, err := h.teamService.List(r.Context())
	if err != nil {
		serverErrorResponse(w, err)
		return
	}

	successResponse(w, http.StatusOK, "Equipos obtenidos exitosamente", jsonResponse{
		"data":  equipos,
		"total": len(equipos),
	})
}

func (h *TeamHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "id")
	if err != nil {
		badRequestResponse(w, err.Error())
		return
	}

	equipo, err := h.teamService.GetByID(r.Context(), id)
	if err != nil {
		mapServiceError(w, err)
		return
	}

	successResponse(w, http.StatusOK, "Equipo encontrado", jsonResponse{"data": equipo})
}

func (h *TeamHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromRequest(w, r)
	if !ok {
		return
	}

	var input services.CreateTeamInput
	if !readVerifyInput(w, r, &input) {
		return
	}

	equipo, err := h.teamService.Create(r.Context(), identity, input)
	if err != nil {
		mapServiceError(w, err)
		return
	}

	successResponse(w, http.StatusCreated, "Equipo creado exitosamente", jsonResponse{"data": equipo})
}

func (h *TeamHandler) Update(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromRequest(w, r)
	if !ok {
		return
	}

	id, err := getIDFromURL(r, "id")
	if err != nil {
		badRequestResponse(w, err.Error())
		return
	}

	var input services.UpdateTeamInput
	if !readVerifyInput(w, r, &input) {
		return
	}

	equipo, err := h.teamService.Update(r.Context(), identity, id, input)
	if err != nil {
		mapServiceError(w, err)
		return
	}

	successResponse(w, http.StatusOK, "Equipo actualizado exitosamente", jsonResponse{"data": equipo})
}

func (h *TeamHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromRequest(w, r)
	if !ok {
		return
	}

	id, err := getIDFromURL(r, "id")
	if err != nil {
		badRequestResponse(w, err.Error())
		return
	}

	if err := h.teamService.Delete(r.Context(), identity, id); err != nil {
		mapServiceError(w, err)
		return
	}

	successResponse(w, http.StatusOK, "Equipo eliminado exitosamente", nil)
}

func (h *TeamHandler) ListJugadores(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "id")
	if err != nil {
		badRequestResponse(w, "ID de equipo inválido")
		return
	}

	equipo, jugadores, err := h.teamService.ListPlayers(r.Context(), id)
	if err != nil {
		mapServiceError(w, err)
		return
	}

	successResponse(w, http.StatusOK, "Jugadores del equipo obtenidos exitosamente", jsonResponse{
		"data":  jugadores,
		"total": len(jugadores),
		"equipo": jsonResponse{
			"id":     equipo.ID,
			"nombre": equipo.Nombre,
		},
	})
}

func (h *TeamHandler) UploadLogo(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromRequest(w, r)
	if !ok {
		return
	}

	id, err := getIDFromURL(r, "id")
	if err != nil {
		badRequestResponse(w, "ID de equipo inválido")
		return
	}

	if err := r.ParseMultipartForm(services.MaxLogoSizeBytes); err != nil {
		badRequestResponse(w, "No se pudo procesar el archivo")
		return
	}

	file, header, err := r.FormFile("logo")
	if err != nil {
		badRequestResponse(w, "El campo logo es obligatorio")
		return
	}
	defer file.Close()

	equipo, err := h.teamService.UploadLogo(r.Context(), identity, id, services.LogoUpload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Reader:      file,
	})
	if err != nil {
		mapServiceError(w, err)
		return
	}

	successResponse(w, http.StatusOK, "Logo actualizado exitosamente", jsonResponse{"data": equipo})
}

func (h *TeamHandler) DeleteLogo(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromRequest(w, r)
	if !ok {
		return
	}

	id, err := getIDFromURL(r, "id")
	if err != nil {
		badRequestResponse(w, "ID de equipo inválido")
		return
	}

	equipo, err := h.teamService.DeleteLogo(r.Context(), identity, id)
	if err != nil {
		mapServiceError(w, err)
		return
	}

	successResponse(w, http.StatusOK, "Logo eliminado exitosamente", jsonResponse{"data": equipo})
}
