package models

import "time"

// EventType mirrors the tipo CHECK constraint on eventos_partido.
type EventType string

const (
	EventGol             EventType = "gol"
	EventTarjetaAmarilla EventType = "tarjeta_amarilla"
	EventTarjetaRoja     EventType = "tarjeta_roja"
	EventCambio          EventType = "cambio"
	EventAutogol         EventType = "autogol"
)

func ValidEventType(t EventType) bool {
	switch t {
	case EventGol, EventTarjetaAmarilla, EventTarjetaRoja, EventCambio, EventAutogol:
		return true
	}
	return false
}

// MinutoMin and MinutoMax bound the minuto column, CHECK-enforced as well.
const (
	MinutoMin = 0
	MinutoMax = 120
)

type MatchEvent struct {
	ID          int       `json:"id"`
	PartidoID   int       `json:"partido_id"`
	JugadorID   int       `json:"jugador_id"`
	Tipo        EventType `json:"tipo"`
	Minuto      int       `json:"minuto"`
	Descripcion *string   `json:"descripcion,omitempty"`
	CreatedAt   time.Time `json:"creado_en"`

	// Enriched read-only fields.
	JugadorNombre       *string `json:"jugador_nombre,omitempty"`
	NroCamiseta         *int    `json:"nro_camiseta,omitempty"`
	EquipoNombre        *string `json:"equipo_nombre,omitempty"`
	JugadorEquipoID     *int    `json:"jugador_equipo_id,omitempty"`
	EquipoLocal         *string `json:"equipo_local,omitempty"`
	EquipoVisitante     *string `json:"equipo_visitante,omitempty"`
	TorneoOrganizadorID *int    `json:"torneo_organizador_id,omitempty"`
}

// Goleador is one row of a top-scorers aggregation, per match or per
// tournament: goals descending, then player name ascending.
type Goleador struct {
	JugadorID     int    `json:"jugador_id"`
	JugadorNombre string `json:"jugador_nombre"`
	NroCamiseta   int    `json:"nro_camiseta"`
	EquipoNombre  string `json:"equipo_nombre"`
	Goles         int    `json:"goles"`
}
