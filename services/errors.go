package services

import "errors"

// Shared errors mapped to HTTP statuses at the handler boundary.
var (
	// Not found
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrRolNotFound        = errors.New("rol no encontrado")
	ErrTournamentNotFound = errors.New("torneo no encontrado")
	ErrTeamNotFound       = errors.New("equipo no encontrado")
	ErrPlayerNotFound     = errors.New("jugador no encontrado")
	ErrMatchNotFound      = errors.New("partido no encontrado")
	ErrEventNotFound      = errors.New("evento no encontrado")

	// Conflicts
	ErrUserEmailConflict      = errors.New("el email ya está registrado")
	ErrTournamentNameConflict = errors.New("ya existe un torneo con ese nombre para el mismo organizador")
	ErrTeamNameConflict       = errors.New("ya existe un equipo con ese nombre en el torneo")
	ErrPlayerCamisetaConflict = errors.New("el número de camiseta ya está ocupado en el equipo")

	// Authentication / authorization
	ErrInvalidCredentials = errors.New("credenciales inválidas")
	ErrAccountInactive    = errors.New("usuario inactivo, contacte al administrador")
	ErrForbiddenOperation = errors.New("no tienes permisos para realizar esta operación")

	// Business rules
	ErrTournamentInvalidDateRange = errors.New("la fecha de fin debe ser mayor o igual a la fecha de inicio")
	ErrTournamentInvalidStatus    = errors.New("estado de torneo inválido")
	ErrMatchInvalidStatus         = errors.New("estado de partido inválido")
	ErrMatchSameTeams             = errors.New("un equipo no puede jugar contra sí mismo")
	ErrEventInvalidTipo           = errors.New("tipo de evento inválido")
	ErrEventInvalidMinuto         = errors.New("el minuto debe estar entre 0 y 120")
	ErrSelfDeactivation           = errors.New("no puedes desactivar tu propia cuenta")
	ErrSelfDelete                 = errors.New("no puedes eliminar tu propia cuenta")
	ErrPasswordSameAsCurrent      = errors.New("la nueva contraseña debe ser distinta a la actual")

	// Crest storage
	ErrStorageDisabled = errors.New("el almacenamiento de logos no está configurado")
	ErrLogoInvalidType = errors.New("el logo debe ser una imagen")
	ErrLogoTooLarge    = errors.New("el logo no puede superar los 2MB")
)

// ValidationError carries the detalle payload for cross-entity invariant
// failures (e.g. a team that belongs to a different tournament). Handlers
// surface it as 400 with the detalle block in the response.
type ValidationError struct {
	Message string
	Detalle map[string]interface{}
}

func (e *ValidationError) Error() string {
	return e.Message
}
