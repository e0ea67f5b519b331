package models

import "time"

// MatchStatus mirrors the estado CHECK constraint on partidos. No transition
// table is enforced: any valid value may replace any other.
type MatchStatus string

const (
	MatchPendiente  MatchStatus = "pendiente"
	MatchEnCurso    MatchStatus = "en_curso"
	MatchFinalizado MatchStatus = "finalizado"
	MatchSuspendido MatchStatus = "suspendido"
	MatchCancelado  MatchStatus = "cancelado"
)

func ValidMatchStatus(s MatchStatus) bool {
	switch s {
	case MatchPendiente, MatchEnCurso, MatchFinalizado, MatchSuspendido, MatchCancelado:
		return true
	}
	return false
}

type Match struct {
	ID                int         `json:"id"`
	TorneoID          int         `json:"torneo_id"`
	EquipoLocalID     int         `json:"equipo_local_id"`
	EquipoVisitanteID int         `json:"equipo_visitante_id"`
	Fecha             time.Time   `json:"fecha"`
	Lugar             *string     `json:"lugar,omitempty"`
	MarcadorLocal     int         `json:"marcador_local"`
	MarcadorVisitante int         `json:"marcador_visitante"`
	Estado            MatchStatus `json:"estado"`
	Observaciones     *string     `json:"observaciones,omitempty"`
	CreatedAt         time.Time   `json:"creado_en"`
	UpdatedAt         time.Time   `json:"actualizado_en"`

	// Enriched read-only fields.
	TorneoNombre          *string    `json:"torneo_nombre,omitempty"`
	TorneoDisciplina      *string    `json:"torneo_disciplina,omitempty"`
	TorneoFechaInicio     *time.Time `json:"torneo_fecha_inicio,omitempty"`
	TorneoFechaFin        *time.Time `json:"torneo_fecha_fin,omitempty"`
	TorneoOrganizadorID   *int       `json:"torneo_organizador_id,omitempty"`
	EquipoLocalNombre     *string    `json:"equipo_local_nombre,omitempty"`
	EquipoLocalColor      *string    `json:"equipo_local_color,omitempty"`
	EquipoVisitanteNombre *string    `json:"equipo_visitante_nombre,omitempty"`
	EquipoVisitanteColor  *string    `json:"equipo_visitante_color,omitempty"`
	TotalEventos          *int       `json:"total_eventos,omitempty"`

	// Set by per-team listings: "local" or "visitante" from the queried
	// team's perspective.
	TipoParticipacion *string `json:"tipo_participacion,omitempty"`
}
