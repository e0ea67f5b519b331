package services

import (
	"context"
	"errors"

	"github.com/ligasport/torneos-api/models"
	"github.com/ligasport/torneos-api/repositories"
)

type PlayerService interface {
	List(ctx context.Context) ([]models.Player, error)
	GetByID(ctx context.Context, id int) (*models.Player, error)
	Create(ctx context.Context, identity Identity, input CreatePlayerInput) (*models.Player, error)
	Update(ctx context.Context, identity Identity, id int, input UpdatePlayerInput) (*models.Player, error)
	Delete(ctx context.Context, identity Identity, id int) error
}

type CreatePlayerInput struct {
	Nombre      string `json:"nombre" validate:"required,min=2,max=100"`
	Apellido    string `json:"apellido" validate:"required,min=2,max=100"`
	NroCamiseta int    `json:"nro_camiseta" validate:"required,min=1,max=99"`
	EquipoID    int    `json:"equipo_id" validate:"required,min=1"`
}

// UpdatePlayerInput is an explicit patch: nil means "leave unchanged". A
// player cannot be moved between teams.
type UpdatePlayerInput struct {
	Nombre      *string `json:"nombre" validate:"omitempty,min=2,max=100"`
	Apellido    *string `json:"apellido" validate:"omitempty,min=2,max=100"`
	NroCamiseta *int    `json:"nro_camiseta" validate:"omitempty,min=1,max=99"`
}

type playerService struct {
	playerRepo     repositories.PlayerRepository
	teamRepo       repositories.TeamRepository
	tournamentRepo repositories.TournamentRepository
}

func NewPlayerService(
	playerRepo repositories.PlayerRepository,
	teamRepo repositories.TeamRepository,
	tournamentRepo repositories.TournamentRepository,
) PlayerService {
	return &playerService{
		playerRepo:     playerRepo,
		teamRepo:       teamRepo,
		tournamentRepo: tournamentRepo,
	}
}

func (s *playerService) List(ctx context.Context) ([]models.Player, error) {
	return s.playerRepo.List(ctx)
}

func (s *playerService) GetByID(ctx context.Context, id int) (*models.Player, error) {
	player, err := s.playerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}
	return player, nil
}

func (s *playerService) Create(ctx context.Context, identity Identity, input CreatePlayerInput) (*models.Player, error) {
	team, err := s.teamRepo.GetByID(ctx, input.EquipoID)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}

	if err := s.authorize(ctx, identity, team.TorneoID); err != nil {
		return nil, err
	}

	player := &models.Player{
		Nombre:      input.Nombre,
		Apellido:    input.Apellido,
		NroCamiseta: input.NroCamiseta,
		EquipoID:    input.EquipoID,
	}

	if err := s.playerRepo.Create(ctx, player); err != nil {
		switch {
		case errors.Is(err, repositories.ErrPlayerCamisetaConflict):
			return nil, ErrPlayerCamisetaConflict
		case errors.Is(err, repositories.ErrPlayerEquipoInvalid):
			return nil, ErrTeamNotFound
		}
		return nil, err
	}

	return s.GetByID(ctx, player.ID)
}

func (s *playerService) Update(ctx context.Context, identity Identity, id int, input UpdatePlayerInput) (*models.Player, error) {
	player, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	team, err := s.teamRepo.GetByID(ctx, player.EquipoID)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, identity, team.TorneoID); err != nil {
		return nil, err
	}

	if input.Nombre != nil {
		player.Nombre = *input.Nombre
	}
	if input.Apellido != nil {
		player.Apellido = *input.Apellido
	}
	if input.NroCamiseta != nil {
		player.NroCamiseta = *input.NroCamiseta
	}

	if err := s.playerRepo.Update(ctx, player); err != nil {
		switch {
		case errors.Is(err, repositories.ErrPlayerNotFound):
			return nil, ErrPlayerNotFound
		case errors.Is(err, repositories.ErrPlayerCamisetaConflict):
			return nil, ErrPlayerCamisetaConflict
		}
		return nil, err
	}

	return s.GetByID(ctx, id)
}

func (s *playerService) Delete(ctx context.Context, identity Identity, id int) error {
	player, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	team, err := s.teamRepo.GetByID(ctx, player.EquipoID)
	if err != nil {
		return err
	}
	if err := s.authorize(ctx, identity, team.TorneoID); err != nil {
		return err
	}

	return s.playerRepo.Delete(ctx, id)
}

func (s *playerService) authorize(ctx context.Context, identity Identity, torneoID int) error {
	torneo, err := s.tournamentRepo.GetByID(ctx, torneoID)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return ErrTournamentNotFound
		}
		return err
	}
	if !Allows(identity, torneo.OrganizadorID, CapManagePlayer) {
		return ErrForbiddenOperation
	}
	return nil
}
