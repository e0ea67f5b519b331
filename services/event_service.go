package services

import (
	"context"
	"errors"

	"github.com/ligasport/torneos-api/models"
	"github.com/ligasport/torneos-api/repositories"
)

type EventService interface {
	List(ctx context.Context) ([]models.MatchEvent, error)
	GetByID(ctx context.Context, id int) (*models.MatchEvent, error)
	Create(ctx context.Context, identity Identity, input CreateEventInput) (*models.MatchEvent, error)
	Update(ctx context.Context, identity Identity, id int, input UpdateEventInput) (*models.MatchEvent, error)
	Delete(ctx context.Context, identity Identity, id int) error
	GetGoleadores(ctx context.Context, partidoID int) (*models.Match, []models.Goleador, error)
}

type CreateEventInput struct {
	PartidoID   int     `json:"partido_id" validate:"required,min=1"`
	JugadorID   int     `json:"jugador_id" validate:"required,min=1"`
	Tipo        string  `json:"tipo" validate:"required,oneof=gol tarjeta_amarilla tarjeta_roja cambio autogol"`
	Minuto      int     `json:"minuto" validate:"min=0,max=120"`
	Descripcion *string `json:"descripcion" validate:"omitempty,max=300"`
}

// UpdateEventInput is an explicit patch: nil means "leave unchanged". The
// match and player an event refers to are fixed at creation.
type UpdateEventInput struct {
	Tipo        *string `json:"tipo" validate:"omitempty,oneof=gol tarjeta_amarilla tarjeta_roja cambio autogol"`
	Minuto      *int    `json:"minuto" validate:"omitempty,min=0,max=120"`
	Descripcion *string `json:"descripcion" validate:"omitempty,max=300"`
}

type eventService struct {
	eventRepo  repositories.EventRepository
	matchRepo  repositories.MatchRepository
	playerRepo repositories.PlayerRepository
}

func NewEventService(
	eventRepo repositories.EventRepository,
	matchRepo repositories.MatchRepository,
	playerRepo repositories.PlayerRepository,
) EventService {
	return &eventService{
		eventRepo:  eventRepo,
		matchRepo:  matchRepo,
		playerRepo: playerRepo,
	}
}

func (s *eventService) List(ctx context.Context) ([]models.MatchEvent, error) {
	return s.eventRepo.List(ctx)
}

func (s *eventService) GetByID(ctx context.Context, id int) (*models.MatchEvent, error) {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrEventNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return event, nil
}

// Create checks referenced entities in a fixed order: match, player, then
// the player's membership in one of the two contending teams.
func (s *eventService) Create(ctx context.Context, identity Identity, input CreateEventInput) (*models.MatchEvent, error) {
	match, err := s.matchRepo.GetByID(ctx, input.PartidoID)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}

	ownerID := 0
	if match.TorneoOrganizadorID != nil {
		ownerID = *match.TorneoOrganizadorID
	}
	if !Allows(identity, ownerID, CapManageEvent) {
		return nil, ErrForbiddenOperation
	}

	player, err := s.playerRepo.GetByID(ctx, input.JugadorID)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}

	ok, err := s.eventRepo.PlayerInMatch(ctx, input.JugadorID, input.PartidoID)
	if err != nil {
		return nil, err
	}
	if !ok {
		equipo := ""
		if player.EquipoNombre != nil {
			equipo = *player.EquipoNombre
		}
		local, visitante := "", ""
		if match.EquipoLocalNombre != nil {
			local = *match.EquipoLocalNombre
		}
		if match.EquipoVisitanteNombre != nil {
			visitante = *match.EquipoVisitanteNombre
		}
		return nil, &ValidationError{
			Message: "El jugador no pertenece a ninguno de los equipos de este partido",
			Detalle: map[string]interface{}{
				"jugador": map[string]interface{}{
					"nombre": player.NombreCompleto(),
					"equipo": equipo,
				},
				"partido": map[string]interface{}{
					"local":     local,
					"visitante": visitante,
				},
			},
		}
	}

	tipo := models.EventType(input.Tipo)
	if !models.ValidEventType(tipo) {
		return nil, ErrEventInvalidTipo
	}
	if input.Minuto < models.MinutoMin || input.Minuto > models.MinutoMax {
		return nil, ErrEventInvalidMinuto
	}

	event := &models.MatchEvent{
		PartidoID:   input.PartidoID,
		JugadorID:   input.JugadorID,
		Tipo:        tipo,
		Minuto:      input.Minuto,
		Descripcion: input.Descripcion,
	}

	if err := s.eventRepo.Create(ctx, event); err != nil {
		switch {
		case errors.Is(err, repositories.ErrEventRefInvalid):
			return nil, ErrMatchNotFound
		case errors.Is(err, repositories.ErrEventInvalidTipo):
			return nil, ErrEventInvalidTipo
		case errors.Is(err, repositories.ErrEventInvalidMinuto):
			return nil, ErrEventInvalidMinuto
		}
		return nil, err
	}

	return s.GetByID(ctx, event.ID)
}

func (s *eventService) Update(ctx context.Context, identity Identity, id int, input UpdateEventInput) (*models.MatchEvent, error) {
	event, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	ownerID := 0
	if event.TorneoOrganizadorID != nil {
		ownerID = *event.TorneoOrganizadorID
	}
	if !Allows(identity, ownerID, CapManageEvent) {
		return nil, ErrForbiddenOperation
	}

	if input.Tipo != nil {
		tipo := models.EventType(*input.Tipo)
		if !models.ValidEventType(tipo) {
			return nil, ErrEventInvalidTipo
		}
		event.Tipo = tipo
	}
	if input.Minuto != nil {
		if *input.Minuto < models.MinutoMin || *input.Minuto > models.MinutoMax {
			return nil, ErrEventInvalidMinuto
		}
		event.Minuto = *input.Minuto
	}
	if input.Descripcion != nil {
		event.Descripcion = input.Descripcion
	}

	if err := s.eventRepo.Update(ctx, event); err != nil {
		switch {
		case errors.Is(err, repositories.ErrEventNotFound):
			return nil, ErrEventNotFound
		case errors.Is(err, repositories.ErrEventInvalidTipo):
			return nil, ErrEventInvalidTipo
		case errors.Is(err, repositories.ErrEventInvalidMinuto):
			return nil, ErrEventInvalidMinuto
		}
		return nil, err
	}

	return s.GetByID(ctx, id)
}

func (s *eventService) Delete(ctx context.Context, identity Identity, id int) error {
	event, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	ownerID := 0
	if event.TorneoOrganizadorID != nil {
		ownerID = *event.TorneoOrganizadorID
	}
	if !Allows(identity, ownerID, CapDeleteEvent) {
		return ErrForbiddenOperation
	}

	return s.eventRepo.Delete(ctx, id)
}

func (s *eventService) GetGoleadores(ctx context.Context, partidoID int) (*models.Match, []models.Goleador, error) {
	match, err := s.matchRepo.GetByID(ctx, partidoID)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, nil, ErrMatchNotFound
		}
		return nil, nil, err
	}

	goleadores, err := s.eventRepo.GoleadoresByPartido(ctx, partidoID)
	if err != nil {
		return nil, nil, err
	}
	return match, goleadores, nil
}
