package services

import (
	"context"
	"errors"
	"time"

	"github.com/ligasport/torneos-api/models"
	"github.com/ligasport/torneos-api/repositories"
)

type MatchService interface {
	List(ctx context.Context) ([]models.Match, error)
	GetByID(ctx context.Context, id int) (*models.Match, error)
	Create(ctx context.Context, identity Identity, input CreateMatchInput) (*models.Match, error)
	Update(ctx context.Context, identity Identity, id int, input UpdateMatchInput) (*models.Match, error)
	Delete(ctx context.Context, identity Identity, id int) error
	ListByTorneo(ctx context.Context, torneoID int) (*models.Tournament, []models.Match, error)
	ListByEquipo(ctx context.Context, equipoID int) (*models.Team, []models.Match, error)
	ListEventos(ctx context.Context, partidoID int) (*models.Match, []models.MatchEvent, error)
}

type CreateMatchInput struct {
	TorneoID          int       `json:"torneo_id" validate:"required,min=1"`
	EquipoLocalID     int       `json:"equipo_local_id" validate:"required,min=1"`
	EquipoVisitanteID int       `json:"equipo_visitante_id" validate:"required,min=1"`
	Fecha             time.Time `json:"fecha" validate:"required"`
	Lugar             *string   `json:"lugar" validate:"omitempty,max=150"`
}

// UpdateMatchInput is an explicit patch: nil means "leave unchanged". The
// tournament and the two contenders are fixed at creation.
type UpdateMatchInput struct {
	Fecha             *time.Time `json:"fecha"`
	Lugar             *string    `json:"lugar" validate:"omitempty,max=150"`
	MarcadorLocal     *int       `json:"marcador_local" validate:"omitempty,min=0"`
	MarcadorVisitante *int       `json:"marcador_visitante" validate:"omitempty,min=0"`
	Estado            *string    `json:"estado" validate:"omitempty,oneof=pendiente en_curso finalizado suspendido cancelado"`
	Observaciones     *string    `json:"observaciones" validate:"omitempty,max=500"`
}

type matchService struct {
	matchRepo      repositories.MatchRepository
	tournamentRepo repositories.TournamentRepository
	teamRepo       repositories.TeamRepository
	eventRepo      repositories.EventRepository
}

func NewMatchService(
	matchRepo repositories.MatchRepository,
	tournamentRepo repositories.TournamentRepository,
	teamRepo repositories.TeamRepository,
	eventRepo repositories.EventRepository,
) MatchService {
	return &matchService{
		matchRepo:      matchRepo,
		tournamentRepo: tournamentRepo,
		teamRepo:       teamRepo,
		eventRepo:      eventRepo,
	}
}

func (s *matchService) List(ctx context.Context) ([]models.Match, error) {
	return s.matchRepo.List(ctx)
}

func (s *matchService) GetByID(ctx context.Context, id int) (*models.Match, error) {
	match, err := s.matchRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	return match, nil
}

// Create checks the referenced entities in a fixed order so the first
// failure wins: tournament, both teams, distinct teams, membership, date.
func (s *matchService) Create(ctx context.Context, identity Identity, input CreateMatchInput) (*models.Match, error) {
	torneo, err := s.tournamentRepo.GetByID(ctx, input.TorneoID)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}

	if !Allows(identity, torneo.OrganizadorID, CapManageMatch) {
		return nil, ErrForbiddenOperation
	}

	local, err := s.teamRepo.GetByID(ctx, input.EquipoLocalID)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	visitante, err := s.teamRepo.GetByID(ctx, input.EquipoVisitanteID)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}

	if input.EquipoLocalID == input.EquipoVisitanteID {
		return nil, ErrMatchSameTeams
	}

	ok, err := s.matchRepo.TeamsInTournament(ctx, input.TorneoID, input.EquipoLocalID, input.EquipoVisitanteID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &ValidationError{
			Message: "Ambos equipos deben pertenecer al torneo especificado",
			Detalle: map[string]interface{}{
				"equipo_local": map[string]interface{}{
					"nombre": local.Nombre,
					"torneo": local.TorneoID,
				},
				"equipo_visitante": map[string]interface{}{
					"nombre": visitante.Nombre,
					"torneo": visitante.TorneoID,
				},
				"torneo_esperado": input.TorneoID,
			},
		}
	}

	if !dateWithinRange(input.Fecha, torneo.FechaInicio, torneo.FechaFin) {
		return nil, &ValidationError{
			Message: "La fecha del partido debe estar dentro de las fechas del torneo",
			Detalle: map[string]interface{}{
				"fecha_partido": input.Fecha.Format(time.RFC3339),
				"torneo_inicio": torneo.FechaInicio.Format("2006-01-02"),
				"torneo_fin":    torneo.FechaFin.Format("2006-01-02"),
			},
		}
	}

	match := &models.Match{
		TorneoID:          input.TorneoID,
		EquipoLocalID:     input.EquipoLocalID,
		EquipoVisitanteID: input.EquipoVisitanteID,
		Fecha:             input.Fecha,
		Lugar:             input.Lugar,
		Estado:            models.MatchPendiente,
	}

	if err := s.matchRepo.Create(ctx, match); err != nil {
		switch {
		case errors.Is(err, repositories.ErrMatchSameTeams):
			return nil, ErrMatchSameTeams
		case errors.Is(err, repositories.ErrMatchRefInvalid):
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}

	return s.GetByID(ctx, match.ID)
}

func (s *matchService) Update(ctx context.Context, identity Identity, id int, input UpdateMatchInput) (*models.Match, error) {
	match, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	ownerID := 0
	if match.TorneoOrganizadorID != nil {
		ownerID = *match.TorneoOrganizadorID
	}
	if !Allows(identity, ownerID, CapManageMatch) {
		return nil, ErrForbiddenOperation
	}

	if input.Fecha != nil {
		if match.TorneoFechaInicio != nil && match.TorneoFechaFin != nil &&
			!dateWithinRange(*input.Fecha, *match.TorneoFechaInicio, *match.TorneoFechaFin) {
			return nil, &ValidationError{
				Message: "La fecha del partido debe estar dentro de las fechas del torneo",
				Detalle: map[string]interface{}{
					"fecha_partido": input.Fecha.Format(time.RFC3339),
					"torneo_inicio": match.TorneoFechaInicio.Format("2006-01-02"),
					"torneo_fin":    match.TorneoFechaFin.Format("2006-01-02"),
				},
			}
		}
		match.Fecha = *input.Fecha
	}
	if input.Lugar != nil {
		match.Lugar = input.Lugar
	}
	if input.MarcadorLocal != nil {
		match.MarcadorLocal = *input.MarcadorLocal
	}
	if input.MarcadorVisitante != nil {
		match.MarcadorVisitante = *input.MarcadorVisitante
	}
	if input.Estado != nil {
		estado := models.MatchStatus(*input.Estado)
		if !models.ValidMatchStatus(estado) {
			return nil, ErrMatchInvalidStatus
		}
		match.Estado = estado
	}
	if input.Observaciones != nil {
		match.Observaciones = input.Observaciones
	}

	if err := s.matchRepo.Update(ctx, match); err != nil {
		switch {
		case errors.Is(err, repositories.ErrMatchNotFound):
			return nil, ErrMatchNotFound
		case errors.Is(err, repositories.ErrMatchInvalidData):
			return nil, ErrMatchInvalidStatus
		}
		return nil, err
	}

	return s.GetByID(ctx, id)
}

func (s *matchService) Delete(ctx context.Context, identity Identity, id int) error {
	match, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	ownerID := 0
	if match.TorneoOrganizadorID != nil {
		ownerID = *match.TorneoOrganizadorID
	}
	if !Allows(identity, ownerID, CapDeleteMatch) {
		return ErrForbiddenOperation
	}

	return s.matchRepo.Delete(ctx, id)
}

func (s *matchService) ListByTorneo(ctx context.Context, torneoID int) (*models.Tournament, []models.Match, error) {
	torneo, err := s.tournamentRepo.GetByID(ctx, torneoID)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, nil, ErrTournamentNotFound
		}
		return nil, nil, err
	}

	matches, err := s.matchRepo.ListByTorneo(ctx, torneoID)
	if err != nil {
		return nil, nil, err
	}
	return torneo, matches, nil
}

func (s *matchService) ListByEquipo(ctx context.Context, equipoID int) (*models.Team, []models.Match, error) {
	team, err := s.teamRepo.GetByID(ctx, equipoID)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, nil, ErrTeamNotFound
		}
		return nil, nil, err
	}

	matches, err := s.matchRepo.ListByEquipo(ctx, equipoID)
	if err != nil {
		return nil, nil, err
	}
	return team, matches, nil
}

func (s *matchService) ListEventos(ctx context.Context, partidoID int) (*models.Match, []models.MatchEvent, error) {
	match, err := s.GetByID(ctx, partidoID)
	if err != nil {
		return nil, nil, err
	}

	eventos, err := s.eventRepo.ListByPartido(ctx, partidoID)
	if err != nil {
		return nil, nil, err
	}
	return match, eventos, nil
}
