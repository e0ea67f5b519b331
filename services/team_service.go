package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/ligasport/torneos-api/models"
	"github.com/ligasport/torneos-api/repositories"
	"github.com/ligasport/torneos-api/storage"
)

// MaxLogoSizeBytes caps a team crest upload.
const MaxLogoSizeBytes = 2 << 20

type TeamService interface {
	List(ctx context.Context) ([]models.Team, error)
	GetByID(ctx context.Context, id int) (*models.Team, error)
	Create(ctx context.Context, identity Identity, input CreateTeamInput) (*models.Team, error)
	Update(ctx context.Context, identity Identity, id int, input UpdateTeamInput) (*models.Team, error)
	Delete(ctx context.Context, identity Identity, id int) error
	ListPlayers(ctx context.Context, equipoID int) (*models.Team, []models.Player, error)
	UploadLogo(ctx context.Context, identity Identity, id int, upload LogoUpload) (*models.Team, error)
	DeleteLogo(ctx context.Context, identity Identity, id int) (*models.Team, error)
}

type CreateTeamInput struct {
	Nombre                string  `json:"nombre" validate:"required,min=2,max=100"`
	Color                 *string `json:"color" validate:"omitempty,max=30"`
	Representante         *string `json:"representante" validate:"omitempty,max=100"`
	TelefonoRepresentante *string `json:"telefono_representante" validate:"omitempty,max=30"`
	TorneoID              int     `json:"torneo_id" validate:"required,min=1"`
}

// UpdateTeamInput is an explicit patch: nil means "leave unchanged". The
// tournament a team belongs to is fixed at creation.
type UpdateTeamInput struct {
	Nombre                *string `json:"nombre" validate:"omitempty,min=2,max=100"`
	Color                 *string `json:"color" validate:"omitempty,max=30"`
	Representante         *string `json:"representante" validate:"omitempty,max=100"`
	TelefonoRepresentante *string `json:"telefono_representante" validate:"omitempty,max=30"`
}

// LogoUpload carries one multipart file from the handler.
type LogoUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

type teamService struct {
	teamRepo       repositories.TeamRepository
	tournamentRepo repositories.TournamentRepository
	playerRepo     repositories.PlayerRepository
	uploader       storage.FileUploader
}

// NewTeamService wires the team use cases. uploader may be nil, in which
// case logo endpoints report storage as disabled.
func NewTeamService(
	teamRepo repositories.TeamRepository,
	tournamentRepo repositories.TournamentRepository,
	playerRepo repositories.PlayerRepository,
	uploader storage.FileUploader,
) TeamService {
	return &teamService{
		teamRepo:       teamRepo,
		tournamentRepo: tournamentRepo,
		playerRepo:     playerRepo,
		uploader:       uploader,
	}
}

func (s *teamService) List(ctx context.Context) ([]models.Team, error) {
	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range teams {
		s.fillLogoURL(&teams[i])
	}
	return teams, nil
}

func (s *teamService) GetByID(ctx context.Context, id int) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	s.fillLogoURL(team)
	return team, nil
}

func (s *teamService) Create(ctx context.Context, identity Identity, input CreateTeamInput) (*models.Team, error) {
	torneo, err := s.tournamentRepo.GetByID(ctx, input.TorneoID)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}

	if !Allows(identity, torneo.OrganizadorID, CapManageTeam) {
		return nil, ErrForbiddenOperation
	}

	team := &models.Team{
		Nombre:                input.Nombre,
		Color:                 input.Color,
		Representante:         input.Representante,
		TelefonoRepresentante: input.TelefonoRepresentante,
		TorneoID:              input.TorneoID,
	}

	if err := s.teamRepo.Create(ctx, team); err != nil {
		switch {
		case errors.Is(err, repositories.ErrTeamNameConflict):
			return nil, ErrTeamNameConflict
		case errors.Is(err, repositories.ErrTeamTorneoInvalid):
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}

	return s.GetByID(ctx, team.ID)
}

func (s *teamService) Update(ctx context.Context, identity Identity, id int, input UpdateTeamInput) (*models.Team, error) {
	team, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.authorize(ctx, identity, team.TorneoID, CapManageTeam); err != nil {
		return nil, err
	}

	if input.Nombre != nil {
		team.Nombre = *input.Nombre
	}
	if input.Color != nil {
		team.Color = input.Color
	}
	if input.Representante != nil {
		team.Representante = input.Representante
	}
	if input.TelefonoRepresentante != nil {
		team.TelefonoRepresentante = input.TelefonoRepresentante
	}

	if err := s.teamRepo.Update(ctx, team); err != nil {
		switch {
		case errors.Is(err, repositories.ErrTeamNotFound):
			return nil, ErrTeamNotFound
		case errors.Is(err, repositories.ErrTeamNameConflict):
			return nil, ErrTeamNameConflict
		}
		return nil, err
	}

	return s.GetByID(ctx, id)
}

func (s *teamService) Delete(ctx context.Context, identity Identity, id int) error {
	team, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.authorize(ctx, identity, team.TorneoID, CapManageTeam); err != nil {
		return err
	}

	if err := s.teamRepo.Delete(ctx, id); err != nil {
		return err
	}

	// Best effort: the record is gone, an orphan object in the bucket is
	// acceptable.
	if s.uploader != nil && team.LogoKey != nil {
		_ = s.uploader.Delete(ctx, *team.LogoKey)
	}
	return nil
}

func (s *teamService) ListPlayers(ctx context.Context, equipoID int) (*models.Team, []models.Player, error) {
	team, err := s.GetByID(ctx, equipoID)
	if err != nil {
		return nil, nil, err
	}

	players, err := s.playerRepo.ListByEquipo(ctx, equipoID)
	if err != nil {
		return nil, nil, err
	}
	return team, players, nil
}

func (s *teamService) UploadLogo(ctx context.Context, identity Identity, id int, upload LogoUpload) (*models.Team, error) {
	if s.uploader == nil {
		return nil, ErrStorageDisabled
	}

	team, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, identity, team.TorneoID, CapManageTeam); err != nil {
		return nil, err
	}

	if !strings.HasPrefix(upload.ContentType, "image/") {
		return nil, ErrLogoInvalidType
	}
	if upload.Size > MaxLogoSizeBytes {
		return nil, ErrLogoTooLarge
	}

	key := fmt.Sprintf("equipos/%d/logo-%d%s", id, time.Now().UnixNano(), path.Ext(upload.Filename))
	result, err := s.uploader.Upload(ctx, key, upload.ContentType, upload.Reader)
	if err != nil {
		return nil, fmt.Errorf("failed to upload logo: %w", err)
	}

	oldKey := team.LogoKey
	if err := s.teamRepo.UpdateLogoKey(ctx, id, &result.Key); err != nil {
		_ = s.uploader.Delete(ctx, result.Key)
		return nil, err
	}
	if oldKey != nil && *oldKey != result.Key {
		_ = s.uploader.Delete(ctx, *oldKey)
	}

	return s.GetByID(ctx, id)
}

func (s *teamService) DeleteLogo(ctx context.Context, identity Identity, id int) (*models.Team, error) {
	if s.uploader == nil {
		return nil, ErrStorageDisabled
	}

	team, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, identity, team.TorneoID, CapManageTeam); err != nil {
		return nil, err
	}

	if team.LogoKey != nil {
		if err := s.uploader.Delete(ctx, *team.LogoKey); err != nil {
			return nil, fmt.Errorf("failed to delete logo: %w", err)
		}
	}
	if err := s.teamRepo.UpdateLogoKey(ctx, id, nil); err != nil {
		return nil, err
	}

	return s.GetByID(ctx, id)
}

// authorize resolves the owning tournament and runs the policy check.
func (s *teamService) authorize(ctx context.Context, identity Identity, torneoID int, cap Capability) error {
	torneo, err := s.tournamentRepo.GetByID(ctx, torneoID)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return ErrTournamentNotFound
		}
		return err
	}
	if !Allows(identity, torneo.OrganizadorID, cap) {
		return ErrForbiddenOperation
	}
	return nil
}

func (s *teamService) fillLogoURL(team *models.Team) {
	if s.uploader == nil || team.LogoKey == nil {
		return
	}
	if u := s.uploader.GetPublicURL(*team.LogoKey); u != "" {
		team.LogoURL = &u
	}
}
