package services

import (
	"context"
	"errors"
	"time"

	"github.com/ligasport/torneos-api/models"
	"github.com/ligasport/torneos-api/repositories"
	"golang.org/x/sync/errgroup"
)

type TournamentService interface {
	List(ctx context.Context) ([]models.Tournament, error)
	GetByID(ctx context.Context, id int) (*models.Tournament, error)
	Create(ctx context.Context, identity Identity, input CreateTournamentInput) (*models.Tournament, error)
	Update(ctx context.Context, identity Identity, id int, input UpdateTournamentInput) (*models.Tournament, error)
	Delete(ctx context.Context, identity Identity, id int) error
	ListByOrganizador(ctx context.Context, organizadorID int) ([]models.Tournament, error)
	ListByEstado(ctx context.Context, estado string) ([]models.Tournament, error)
	ListTeams(ctx context.Context, torneoID int) (*models.Tournament, []models.Team, error)
	GetSummary(ctx context.Context, torneoID int) (*TournamentSummary, error)
}

type CreateTournamentInput struct {
	Nombre      string    `json:"nombre" validate:"required,min=3,max=150"`
	Disciplina  string    `json:"disciplina" validate:"required,min=2,max=50"`
	Temporada   *string   `json:"temporada" validate:"omitempty,max=50"`
	FechaInicio time.Time `json:"fecha_inicio" validate:"required"`
	FechaFin    time.Time `json:"fecha_fin" validate:"required"`
	Estado      *string   `json:"estado" validate:"omitempty,oneof=planificado en_curso finalizado cancelado"`
	Descripcion *string   `json:"descripcion" validate:"omitempty,max=500"`
}

// UpdateTournamentInput is an explicit patch: nil means "leave unchanged".
type UpdateTournamentInput struct {
	Nombre      *string    `json:"nombre" validate:"omitempty,min=3,max=150"`
	Disciplina  *string    `json:"disciplina" validate:"omitempty,min=2,max=50"`
	Temporada   *string    `json:"temporada" validate:"omitempty,max=50"`
	FechaInicio *time.Time `json:"fecha_inicio"`
	FechaFin    *time.Time `json:"fecha_fin"`
	Estado      *string    `json:"estado" validate:"omitempty,oneof=planificado en_curso finalizado cancelado"`
	Descripcion *string    `json:"descripcion" validate:"omitempty,max=500"`
}

// TournamentSummary bundles everything a tournament page needs in one call.
type TournamentSummary struct {
	Torneo     *models.Tournament `json:"torneo"`
	Equipos    []models.Team      `json:"equipos"`
	Partidos   []models.Match     `json:"partidos"`
	Goleadores []models.Goleador  `json:"goleadores"`
}

type tournamentService struct {
	tournamentRepo repositories.TournamentRepository
	teamRepo       repositories.TeamRepository
	matchRepo      repositories.MatchRepository
	eventRepo      repositories.EventRepository
}

func NewTournamentService(
	tournamentRepo repositories.TournamentRepository,
	teamRepo repositories.TeamRepository,
	matchRepo repositories.MatchRepository,
	eventRepo repositories.EventRepository,
) TournamentService {
	return &tournamentService{
		tournamentRepo: tournamentRepo,
		teamRepo:       teamRepo,
		matchRepo:      matchRepo,
		eventRepo:      eventRepo,
	}
}

func (s *tournamentService) List(ctx context.Context) ([]models.Tournament, error) {
	return s.tournamentRepo.List(ctx)
}

func (s *tournamentService) GetByID(ctx context.Context, id int) (*models.Tournament, error) {
	t, err := s.tournamentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	return t, nil
}

func (s *tournamentService) Create(ctx context.Context, identity Identity, input CreateTournamentInput) (*models.Tournament, error) {
	if input.FechaFin.Before(input.FechaInicio) {
		return nil, ErrTournamentInvalidDateRange
	}

	estado := models.TournamentPlanificado
	if input.Estado != nil {
		estado = models.TournamentStatus(*input.Estado)
		if !models.ValidTournamentStatus(estado) {
			return nil, ErrTournamentInvalidStatus
		}
	}

	t := &models.Tournament{
		Nombre:        input.Nombre,
		Disciplina:    input.Disciplina,
		Temporada:     input.Temporada,
		FechaInicio:   input.FechaInicio,
		FechaFin:      input.FechaFin,
		Estado:        estado,
		OrganizadorID: identity.UserID,
		Descripcion:   input.Descripcion,
	}

	if err := s.tournamentRepo.Create(ctx, t); err != nil {
		if errors.Is(err, repositories.ErrTournamentNameConflict) {
			return nil, ErrTournamentNameConflict
		}
		if errors.Is(err, repositories.ErrTournamentInvalidData) {
			return nil, ErrTournamentInvalidDateRange
		}
		return nil, err
	}
	return s.GetByID(ctx, t.ID)
}

func (s *tournamentService) Update(ctx context.Context, identity Identity, id int, input UpdateTournamentInput) (*models.Tournament, error) {
	t, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !Allows(identity, t.OrganizadorID, CapManageTournament) {
		return nil, ErrForbiddenOperation
	}

	if input.Nombre != nil {
		t.Nombre = *input.Nombre
	}
	if input.Disciplina != nil {
		t.Disciplina = *input.Disciplina
	}
	if input.Temporada != nil {
		t.Temporada = input.Temporada
	}
	if input.FechaInicio != nil {
		t.FechaInicio = *input.FechaInicio
	}
	if input.FechaFin != nil {
		t.FechaFin = *input.FechaFin
	}
	if input.Estado != nil {
		estado := models.TournamentStatus(*input.Estado)
		if !models.ValidTournamentStatus(estado) {
			return nil, ErrTournamentInvalidStatus
		}
		t.Estado = estado
	}
	if input.Descripcion != nil {
		t.Descripcion = input.Descripcion
	}

	// The patched record must still hold the ordering invariant, whichever
	// of the two dates changed.
	if t.FechaFin.Before(t.FechaInicio) {
		return nil, ErrTournamentInvalidDateRange
	}

	if err := s.tournamentRepo.Update(ctx, t); err != nil {
		switch {
		case errors.Is(err, repositories.ErrTournamentNotFound):
			return nil, ErrTournamentNotFound
		case errors.Is(err, repositories.ErrTournamentNameConflict):
			return nil, ErrTournamentNameConflict
		case errors.Is(err, repositories.ErrTournamentInvalidData):
			return nil, ErrTournamentInvalidDateRange
		}
		return nil, err
	}

	return s.GetByID(ctx, id)
}

func (s *tournamentService) Delete(ctx context.Context, identity Identity, id int) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	if !Allows(identity, 0, CapDeleteTournament) {
		return ErrForbiddenOperation
	}
	// Cascada: equipos, jugadores, partidos y eventos caen con el torneo.
	return s.tournamentRepo.Delete(ctx, id)
}

func (s *tournamentService) ListByOrganizador(ctx context.Context, organizadorID int) ([]models.Tournament, error) {
	return s.tournamentRepo.ListByOrganizador(ctx, organizadorID)
}

func (s *tournamentService) ListByEstado(ctx context.Context, estado string) ([]models.Tournament, error) {
	status := models.TournamentStatus(estado)
	if !models.ValidTournamentStatus(status) {
		return nil, ErrTournamentInvalidStatus
	}
	return s.tournamentRepo.ListByEstado(ctx, status)
}

func (s *tournamentService) ListTeams(ctx context.Context, torneoID int) (*models.Tournament, []models.Team, error) {
	t, err := s.GetByID(ctx, torneoID)
	if err != nil {
		return nil, nil, err
	}

	teams, err := s.teamRepo.ListByTorneo(ctx, torneoID)
	if err != nil {
		return nil, nil, err
	}
	return t, teams, nil
}

// GetSummary fans out the three dependent listings concurrently once the
// tournament itself is known to exist.
func (s *tournamentService) GetSummary(ctx context.Context, torneoID int) (*TournamentSummary, error) {
	t, err := s.GetByID(ctx, torneoID)
	if err != nil {
		return nil, err
	}

	summary := &TournamentSummary{Torneo: t}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		equipos, err := s.teamRepo.ListByTorneo(gCtx, torneoID)
		if err == nil {
			summary.Equipos = equipos
		}
		return err
	})
	g.Go(func() error {
		partidos, err := s.matchRepo.ListByTorneo(gCtx, torneoID)
		if err == nil {
			summary.Partidos = partidos
		}
		return err
	})
	g.Go(func() error {
		goleadores, err := s.eventRepo.GoleadoresByTorneo(gCtx, torneoID)
		if err == nil {
			summary.Goleadores = goleadores
		}
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return summary, nil
}
