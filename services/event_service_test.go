package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ligasport/torneos-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type eventFixture struct {
	*matchFixture
	playerRepo *fakePlayerRepo
	eventSvc   EventService

	partido *models.Match
	jugador *models.Player
}

func newEventFixture() *eventFixture {
	fx := newMatchFixture()
	playerRepo := fx.eventRepo.playerRepo

	local, visitante := "Rojo", "Azul"
	ownerID := fx.torneo.OrganizadorID
	partido := fx.matchRepo.add(&models.Match{
		TorneoID:              fx.torneo.ID,
		EquipoLocalID:         fx.local.ID,
		EquipoVisitanteID:     fx.visitante.ID,
		Fecha:                 time.Date(2026, 4, 10, 18, 0, 0, 0, time.UTC),
		Estado:                models.MatchEnCurso,
		EquipoLocalNombre:     &local,
		EquipoVisitanteNombre: &visitante,
		TorneoOrganizadorID:   &ownerID,
	})

	equipoNombre := "Rojo"
	jugador := playerRepo.add(&models.Player{
		Nombre:       "Ana",
		Apellido:     "Mola",
		NroCamiseta:  9,
		EquipoID:     fx.local.ID,
		EquipoNombre: &equipoNombre,
	})

	return &eventFixture{
		matchFixture: fx,
		playerRepo:   playerRepo,
		eventSvc:     NewEventService(fx.eventRepo, fx.matchRepo, playerRepo),
		partido:      partido,
		jugador:      jugador,
	}
}

func TestEventCreate(t *testing.T) {
	fx := newEventFixture()

	evento, err := fx.eventSvc.Create(context.Background(), adminIdentity(), CreateEventInput{
		PartidoID: fx.partido.ID,
		JugadorID: fx.jugador.ID,
		Tipo:      "gol",
		Minuto:    37,
	})
	require.NoError(t, err)
	assert.Equal(t, models.EventGol, evento.Tipo)
	assert.Equal(t, 37, evento.Minuto)
}

func TestEventCreateMissingMatch(t *testing.T) {
	fx := newEventFixture()

	_, err := fx.eventSvc.Create(context.Background(), adminIdentity(), CreateEventInput{
		PartidoID: 99,
		JugadorID: fx.jugador.ID,
		Tipo:      "gol",
		Minuto:    37,
	})
	assert.ErrorIs(t, err, ErrMatchNotFound)
}

func TestEventCreateMissingPlayer(t *testing.T) {
	fx := newEventFixture()

	_, err := fx.eventSvc.Create(context.Background(), adminIdentity(), CreateEventInput{
		PartidoID: fx.partido.ID,
		JugadorID: 99,
		Tipo:      "gol",
		Minuto:    37,
	})
	assert.ErrorIs(t, err, ErrPlayerNotFound)
}

func TestEventCreatePlayerFromOtherTeam(t *testing.T) {
	fx := newEventFixture()

	equipoNombre := "Verde"
	intruso := fx.playerRepo.add(&models.Player{
		Nombre:       "Beto",
		Apellido:     "Paz",
		NroCamiseta:  4,
		EquipoID:     777,
		EquipoNombre: &equipoNombre,
	})

	_, err := fx.eventSvc.Create(context.Background(), adminIdentity(), CreateEventInput{
		PartidoID: fx.partido.ID,
		JugadorID: intruso.ID,
		Tipo:      "gol",
		Minuto:    37,
	})

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "El jugador no pertenece a ninguno de los equipos de este partido", verr.Message)

	jugador, ok := verr.Detalle["jugador"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Beto Paz", jugador["nombre"])
	assert.Equal(t, "Verde", jugador["equipo"])

	partido, ok := verr.Detalle["partido"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Rojo", partido["local"])
	assert.Equal(t, "Azul", partido["visitante"])
}

func TestEventCreateInvalidTipo(t *testing.T) {
	fx := newEventFixture()

	_, err := fx.eventSvc.Create(context.Background(), adminIdentity(), CreateEventInput{
		PartidoID: fx.partido.ID,
		JugadorID: fx.jugador.ID,
		Tipo:      "penal",
		Minuto:    37,
	})
	assert.ErrorIs(t, err, ErrEventInvalidTipo)
}

func TestEventCreateInvalidMinuto(t *testing.T) {
	fx := newEventFixture()

	_, err := fx.eventSvc.Create(context.Background(), adminIdentity(), CreateEventInput{
		PartidoID: fx.partido.ID,
		JugadorID: fx.jugador.ID,
		Tipo:      "gol",
		Minuto:    121,
	})
	assert.ErrorIs(t, err, ErrEventInvalidMinuto)
}

func TestEventUpdate(t *testing.T) {
	fx := newEventFixture()
	ownerID := fx.torneo.OrganizadorID
	evento := &models.MatchEvent{
		PartidoID:           fx.partido.ID,
		JugadorID:           fx.jugador.ID,
		Tipo:                models.EventGol,
		Minuto:              37,
		TorneoOrganizadorID: &ownerID,
	}
	require.NoError(t, fx.eventRepo.Create(context.Background(), evento))

	t.Run("invalid tipo rejected", func(t *testing.T) {
		tipo := "corner"
		_, err := fx.eventSvc.Update(context.Background(), adminIdentity(), evento.ID, UpdateEventInput{Tipo: &tipo})
		assert.ErrorIs(t, err, ErrEventInvalidTipo)
	})

	t.Run("minute bounds enforced", func(t *testing.T) {
		minuto := 130
		_, err := fx.eventSvc.Update(context.Background(), adminIdentity(), evento.ID, UpdateEventInput{Minuto: &minuto})
		assert.ErrorIs(t, err, ErrEventInvalidMinuto)
	})

	t.Run("foreign organizer blocked", func(t *testing.T) {
		ajeno := Identity{UserID: 99, RolNombre: models.RoleOrganizador}
		minuto := 40
		_, err := fx.eventSvc.Update(context.Background(), ajeno, evento.ID, UpdateEventInput{Minuto: &minuto})
		assert.ErrorIs(t, err, ErrForbiddenOperation)
	})

	t.Run("patch applied", func(t *testing.T) {
		tipo := "autogol"
		minuto := 41
		updated, err := fx.eventSvc.Update(context.Background(), adminIdentity(), evento.ID, UpdateEventInput{
			Tipo:   &tipo,
			Minuto: &minuto,
		})
		require.NoError(t, err)
		assert.Equal(t, models.EventAutogol, updated.Tipo)
		assert.Equal(t, 41, updated.Minuto)
	})
}

func TestEventDeletePermissions(t *testing.T) {
	fx := newEventFixture()
	ownerID := fx.torneo.OrganizadorID
	evento := &models.MatchEvent{
		PartidoID:           fx.partido.ID,
		JugadorID:           fx.jugador.ID,
		Tipo:                models.EventGol,
		Minuto:              37,
		TorneoOrganizadorID: &ownerID,
	}
	require.NoError(t, fx.eventRepo.Create(context.Background(), evento))

	delegado := Identity{UserID: 50, RolNombre: models.RoleDelegado}
	err := fx.eventSvc.Delete(context.Background(), delegado, evento.ID)
	assert.ErrorIs(t, err, ErrForbiddenOperation)

	duenio := Identity{UserID: ownerID, RolNombre: models.RoleOrganizador}
	err = fx.eventSvc.Delete(context.Background(), duenio, evento.ID)
	assert.NoError(t, err)
}

func TestEventGetGoleadores(t *testing.T) {
	fx := newEventFixture()

	for _, minuto := range []int{12, 55} {
		require.NoError(t, fx.eventRepo.Create(context.Background(), &models.MatchEvent{
			PartidoID: fx.partido.ID,
			JugadorID: fx.jugador.ID,
			Tipo:      models.EventGol,
			Minuto:    minuto,
		}))
	}
	// Cards do not count as goals.
	require.NoError(t, fx.eventRepo.Create(context.Background(), &models.MatchEvent{
		PartidoID: fx.partido.ID,
		JugadorID: fx.jugador.ID,
		Tipo:      models.EventTarjetaAmarilla,
		Minuto:    60,
	}))

	partido, goleadores, err := fx.eventSvc.GetGoleadores(context.Background(), fx.partido.ID)
	require.NoError(t, err)
	assert.Equal(t, fx.partido.ID, partido.ID)
	require.Len(t, goleadores, 1)
	assert.Equal(t, 2, goleadores[0].Goles)
}

func TestEventGetGoleadoresMissingMatch(t *testing.T) {
	fx := newEventFixture()

	_, _, err := fx.eventSvc.GetGoleadores(context.Background(), 99)
	assert.ErrorIs(t, err, ErrMatchNotFound)
}
