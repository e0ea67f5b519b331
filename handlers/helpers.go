package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/ligasport/torneos-api/middleware"
	"github.com/ligasport/torneos-api/services"
)

type jsonResponse map[string]interface{}

var validate = validator.New()

func readJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	maxBytes := 1_048_576 // 1MB
	r.Body = http.MaxBytesReader(w, r.Body, int64(maxBytes))

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	err := dec.Decode(dst)
	if err != nil {
		var syntaxError *json.SyntaxError
		var unmarshalTypeError *json.UnmarshalTypeError
		var invalidUnmarshalError *json.InvalidUnmarshalError

		switch {
		case errors.As(err, &syntaxError):
			return fmt.Errorf("el cuerpo contiene JSON mal formado (carácter %d)", syntaxError.Offset)
		case errors.Is(err, io.ErrUnexpectedEOF):
			return errors.New("el cuerpo contiene JSON mal formado")
		case errors.As(err, &unmarshalTypeError):
			if unmarshalTypeError.Field != "" {
				return fmt.Errorf("el campo %q tiene un tipo incorrecto", unmarshalTypeError.Field)
			}
			return fmt.Errorf("el cuerpo contiene un tipo incorrecto (carácter %d)", unmarshalTypeError.Offset)
		case errors.Is(err, io.EOF):
			return errors.New("el cuerpo no puede estar vacío")
		case strings.HasPrefix(err.Error(), "json: unknown field "):
			fieldName := strings.TrimPrefix(err.Error(), "json: unknown field ")
			return fmt.Errorf("el cuerpo contiene un campo desconocido %s", fieldName)
		case err.Error() == "http: request body too large":
			return fmt.Errorf("el cuerpo no puede superar los %d bytes", maxBytes)
		case errors.As(err, &invalidUnmarshalError):
			panic(err)
		default:
			return err
		}
	}

	err = dec.Decode(&struct{}{})
	if !errors.Is(err, io.EOF) {
		return errors.New("el cuerpo debe contener un único valor JSON")
	}

	return nil
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	js, err := json.Marshal(data)
	if err != nil {
		slog.Error("failed to marshal response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(js); err != nil {
		slog.Error("failed to write response", "error", err)
	}
}

// readVerifyInput decodes and validates a JSON body in one step, writing
// the error response itself when either stage fails.
func readVerifyInput(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := readJSON(w, r, dst); err != nil {
		badRequestResponse(w, err.Error())
		return false
	}
	if errs := validateInput(dst); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, jsonResponse{
			"success": false,
			"message": "Datos de entrada inválidos",
			"errors":  errs,
		})
		return false
	}
	return true
}

// validateInput runs struct tag validation and flattens failures into
// client-facing field messages.
func validateInput(input interface{}) []string {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}

	var invalid *validator.InvalidValidationError
	if errors.As(err, &invalid) {
		panic(err)
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{err.Error()}
	}

	messages := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			messages = append(messages, fmt.Sprintf("el campo %s es obligatorio", field))
		case "email":
			messages = append(messages, fmt.Sprintf("el campo %s debe ser un email válido", field))
		case "min":
			messages = append(messages, fmt.Sprintf("el campo %s no cumple el mínimo (%s)", field, fe.Param()))
		case "max":
			messages = append(messages, fmt.Sprintf("el campo %s supera el máximo (%s)", field, fe.Param()))
		case "oneof":
			messages = append(messages, fmt.Sprintf("el campo %s debe ser uno de: %s", field, fe.Param()))
		default:
			messages = append(messages, fmt.Sprintf("el campo %s es inválido", field))
		}
	}
	return messages
}

func getIDFromURL(r *http.Request, param string) (int, error) {
	id, err := strconv.Atoi(chi.URLParam(r, param))
	if err != nil || id < 1 {
		return 0, errors.New("ID inválido")
	}
	return id, nil
}

func identityFromRequest(w http.ResponseWriter, r *http.Request) (services.Identity, bool) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, jsonResponse{
			"success": false,
			"message": "Token no proporcionado",
		})
	}
	return identity, ok
}

func successResponse(w http.ResponseWriter, status int, message string, extra jsonResponse) {
	env := jsonResponse{"success": true}
	if message != "" {
		env["message"] = message
	}
	for k, v := range extra {
		env[k] = v
	}
	writeJSON(w, status, env)
}

func badRequestResponse(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, jsonResponse{
		"success": false,
		"message": message,
	})
}

func serverErrorResponse(w http.ResponseWriter, err error) {
	slog.Error("internal server error", "error", err)
	writeJSON(w, http.StatusInternalServerError, jsonResponse{
		"success": false,
		"message": "Error interno del servidor",
		"error":   err.Error(),
	})
}

// mapServiceError translates service failures into the envelope the API
// exposes. Unknown errors fall through as 500 with the raw message.
func mapServiceError(w http.ResponseWriter, err error) {
	var verr *services.ValidationError
	if errors.As(err, &verr) {
		writeJSON(w, http.StatusBadRequest, jsonResponse{
			"success": false,
			"message": verr.Message,
			"detalle": verr.Detalle,
		})
		return
	}

	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrRolNotFound),
		errors.Is(err, services.ErrTournamentNotFound),
		errors.Is(err, services.ErrTeamNotFound),
		errors.Is(err, services.ErrPlayerNotFound),
		errors.Is(err, services.ErrMatchNotFound),
		errors.Is(err, services.ErrEventNotFound):
		status = http.StatusNotFound

	case errors.Is(err, services.ErrUserEmailConflict),
		errors.Is(err, services.ErrTournamentNameConflict),
		errors.Is(err, services.ErrTeamNameConflict),
		errors.Is(err, services.ErrPlayerCamisetaConflict):
		status = http.StatusConflict

	case errors.Is(err, services.ErrInvalidCredentials):
		status = http.StatusUnauthorized

	case errors.Is(err, services.ErrAccountInactive),
		errors.Is(err, services.ErrForbiddenOperation):
		status = http.StatusForbidden

	case errors.Is(err, services.ErrTournamentInvalidDateRange),
		errors.Is(err, services.ErrTournamentInvalidStatus),
		errors.Is(err, services.ErrMatchInvalidStatus),
		errors.Is(err, services.ErrMatchSameTeams),
		errors.Is(err, services.ErrEventInvalidTipo),
		errors.Is(err, services.ErrEventInvalidMinuto),
		errors.Is(err, services.ErrSelfDeactivation),
		errors.Is(err, services.ErrSelfDelete),
		errors.Is(err, services.ErrPasswordSameAsCurrent),
		errors.Is(err, services.ErrLogoInvalidType),
		errors.Is(err, services.ErrLogoTooLarge),
		errors.Is(err, services.ErrPasswordTooShort),
		errors.Is(err, services.ErrPasswordNoUpper),
		errors.Is(err, services.ErrPasswordNoLower),
		errors.Is(err, services.ErrPasswordNoDigit),
		errors.Is(err, services.ErrPasswordNoSymbol):
		status = http.StatusBadRequest

	case errors.Is(err, services.ErrStorageDisabled):
		status = http.StatusServiceUnavailable
	}

	if status == http.StatusInternalServerError {
		serverErrorResponse(w, err)
		return
	}

	writeJSON(w, status, jsonResponse{
		"success": false,
		"message": err.Error(),
	})
}
