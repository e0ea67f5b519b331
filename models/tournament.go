package models

import "time"

// TournamentStatus mirrors the estado CHECK constraint on torneos.
type TournamentStatus string

const (
	TournamentPlanificado TournamentStatus = "planificado"
	TournamentEnCurso     TournamentStatus = "en_curso"
	TournamentFinalizado  TournamentStatus = "finalizado"
	TournamentCancelado   TournamentStatus = "cancelado"
)

func ValidTournamentStatus(s TournamentStatus) bool {
	switch s {
	case TournamentPlanificado, TournamentEnCurso, TournamentFinalizado, TournamentCancelado:
		return true
	}
	return false
}

// TournamentStatuses lists the accepted estado values in declaration order.
func TournamentStatuses() []TournamentStatus {
	return []TournamentStatus{TournamentPlanificado, TournamentEnCurso, TournamentFinalizado, TournamentCancelado}
}

type Tournament struct {
	ID            int              `json:"id"`
	Nombre        string           `json:"nombre"`
	Disciplina    string           `json:"disciplina"`
	Temporada     *string          `json:"temporada,omitempty"`
	FechaInicio   time.Time        `json:"fecha_inicio"`
	FechaFin      time.Time        `json:"fecha_fin"`
	Estado        TournamentStatus `json:"estado"`
	OrganizadorID int              `json:"organizador_id"`
	Descripcion   *string          `json:"descripcion,omitempty"`
	CreatedAt     time.Time        `json:"creado_en"`
	UpdatedAt     time.Time        `json:"actualizado_en"`

	// Enriched read-only fields (joins and subquery counts).
	OrganizadorNombre *string `json:"organizador_nombre,omitempty"`
	OrganizadorEmail  *string `json:"organizador_email,omitempty"`
	TotalEquipos      *int    `json:"total_equipos,omitempty"`
	TotalPartidos     *int    `json:"total_partidos,omitempty"`
}
