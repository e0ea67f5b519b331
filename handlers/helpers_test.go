package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ligasport/torneos-api/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestMapServiceErrorStatuses(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"not found", services.ErrTournamentNotFound, http.StatusNotFound},
		{"conflict", services.ErrTeamNameConflict, http.StatusConflict},
		{"bad credentials", services.ErrInvalidCredentials, http.StatusUnauthorized},
		{"inactive account", services.ErrAccountInactive, http.StatusForbidden},
		{"forbidden", services.ErrForbiddenOperation, http.StatusForbidden},
		{"business rule", services.ErrMatchSameTeams, http.StatusBadRequest},
		{"storage disabled", services.ErrStorageDisabled, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			mapServiceError(rec, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			body := decodeBody(t, rec)
			assert.Equal(t, false, body["success"])
			assert.Equal(t, tt.err.Error(), body["message"])
		})
	}
}

func TestMapServiceErrorValidationDetalle(t *testing.T) {
	rec := httptest.NewRecorder()
	mapServiceError(rec, &services.ValidationError{
		Message: "Ambos equipos deben pertenecer al torneo especificado",
		Detalle: map[string]interface{}{"torneo_esperado": 3},
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Ambos equipos deben pertenecer al torneo especificado", body["message"])

	detalle, ok := body["detalle"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(3), detalle["torneo_esperado"])
}

func TestMapServiceErrorUnknownIs500(t *testing.T) {
	rec := httptest.NewRecorder()
	mapServiceError(rec, errors.New("pq: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Error interno del servidor", body["message"])
	assert.Equal(t, "pq: connection refused", body["error"])
}

func TestReadJSONRejectsUnknownFields(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"a@b.c","sorpresa":1}`))

	var input services.LoginInput
	err := readJSON(rec, req, &input)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "campo desconocido")
}

func TestReadJSONRejectsEmptyBody(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))

	var input services.LoginInput
	err := readJSON(rec, req, &input)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "vacío")
}

func TestValidateInputMessages(t *testing.T) {
	msgs := validateInput(services.LoginInput{Email: "no-es-email"})
	require.Len(t, msgs, 2)
	assert.Contains(t, msgs[0], "email")
	assert.Contains(t, msgs[1], "obligatorio")
}

func TestGetIDFromURL(t *testing.T) {
	// Outside a chi route the URL param is empty, which must read as invalid.
	req := httptest.NewRequest(http.MethodGet, "/torneos/abc", nil)
	_, err := getIDFromURL(req, "id")
	require.Error(t, err)
	assert.Equal(t, "ID inválido", err.Error())
}
