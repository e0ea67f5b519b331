package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/ligasport/torneos-api/models"
)

var (
	ErrMatchNotFound    = errors.New("match not found")
	ErrMatchSameTeams   = errors.New("a team cannot play against itself")
	ErrMatchRefInvalid  = errors.New("match tournament or team invalid")
	ErrMatchInvalidData = errors.New("match data violates a constraint")
)

type MatchRepository interface {
	Create(ctx context.Context, match *models.Match) error
	GetByID(ctx context.Context, id int) (*models.Match, error)
	List(ctx context.Context) ([]models.Match, error)
	ListByTorneo(ctx context.Context, torneoID int) ([]models.Match, error)
	ListByEquipo(ctx context.Context, equipoID int) ([]models.Match, error)
	Update(ctx context.Context, match *models.Match) error
	Delete(ctx context.Context, id int) error
	// TeamsInTournament reports whether both teams are rows of the given
	// tournament.
	TeamsInTournament(ctx context.Context, torneoID, equipoLocalID, equipoVisitanteID int) (bool, error)
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

func (r *postgresMatchRepository) Create(ctx context.Context, match *models.Match) error {
	query := `
		INSERT INTO partidos (torneo_id, equipo_local_id, equipo_visitante_id, fecha, lugar, estado, observaciones)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, marcador_local, marcador_visitante, creado_en, actualizado_en`

	err := r.db.QueryRowContext(ctx, query,
		match.TorneoID,
		match.EquipoLocalID,
		match.EquipoVisitanteID,
		match.Fecha,
		match.Lugar,
		match.Estado,
		match.Observaciones,
	).Scan(&match.ID, &match.MarcadorLocal, &match.MarcadorVisitante, &match.CreatedAt, &match.UpdatedAt)

	if err != nil {
		return mapMatchError(err)
	}
	return nil
}

func (r *postgresMatchRepository) GetByID(ctx context.Context, id int) (*models.Match, error) {
	query := `
		SELECT
			p.id, p.torneo_id, p.equipo_local_id, p.equipo_visitante_id,
			p.fecha, p.lugar, p.marcador_local, p.marcador_visitante,
			p.estado, p.observaciones, p.creado_en, p.actualizado_en,
			t.nombre AS torneo_nombre,
			t.disciplina AS torneo_disciplina,
			t.fecha_inicio AS torneo_fecha_inicio,
			t.fecha_fin AS torneo_fecha_fin,
			t.organizador_id AS torneo_organizador_id,
			el.nombre AS equipo_local_nombre,
			el.color AS equipo_local_color,
			ev.nombre AS equipo_visitante_nombre,
			ev.color AS equipo_visitante_color,
			(SELECT COUNT(*) FROM eventos_partido e WHERE e.partido_id = p.id) AS total_eventos
		FROM partidos p
		INNER JOIN torneos t ON p.torneo_id = t.id
		INNER JOIN equipos el ON p.equipo_local_id = el.id
		INNER JOIN equipos ev ON p.equipo_visitante_id = ev.id
		WHERE p.id = $1`

	var m models.Match
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&m.ID, &m.TorneoID, &m.EquipoLocalID, &m.EquipoVisitanteID,
		&m.Fecha, &m.Lugar, &m.MarcadorLocal, &m.MarcadorVisitante,
		&m.Estado, &m.Observaciones, &m.CreatedAt, &m.UpdatedAt,
		&m.TorneoNombre,
		&m.TorneoDisciplina,
		&m.TorneoFechaInicio,
		&m.TorneoFechaFin,
		&m.TorneoOrganizadorID,
		&m.EquipoLocalNombre,
		&m.EquipoLocalColor,
		&m.EquipoVisitanteNombre,
		&m.EquipoVisitanteColor,
		&m.TotalEventos,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *postgresMatchRepository) List(ctx context.Context) ([]models.Match, error) {
	query := `
		SELECT
			p.id, p.torneo_id, p.equipo_local_id, p.equipo_visitante_id,
			p.fecha, p.lugar, p.marcador_local, p.marcador_visitante,
			p.estado, p.observaciones, p.creado_en, p.actualizado_en,
			t.nombre AS torneo_nombre,
			t.disciplina AS torneo_disciplina,
			el.nombre AS equipo_local_nombre,
			el.color AS equipo_local_color,
			ev.nombre AS equipo_visitante_nombre,
			ev.color AS equipo_visitante_color,
			(SELECT COUNT(*) FROM eventos_partido e WHERE e.partido_id = p.id) AS total_eventos
		FROM partidos p
		INNER JOIN torneos t ON p.torneo_id = t.id
		INNER JOIN equipos el ON p.equipo_local_id = el.id
		INNER JOIN equipos ev ON p.equipo_visitante_id = ev.id
		ORDER BY p.fecha DESC, p.id DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	matches := make([]models.Match, 0)
	for rows.Next() {
		var m models.Match
		scanErr := rows.Scan(
			&m.ID, &m.TorneoID, &m.EquipoLocalID, &m.EquipoVisitanteID,
			&m.Fecha, &m.Lugar, &m.MarcadorLocal, &m.MarcadorVisitante,
			&m.Estado, &m.Observaciones, &m.CreatedAt, &m.UpdatedAt,
			&m.TorneoNombre,
			&m.TorneoDisciplina,
			&m.EquipoLocalNombre,
			&m.EquipoLocalColor,
			&m.EquipoVisitanteNombre,
			&m.EquipoVisitanteColor,
			&m.TotalEventos,
		)
		if scanErr != nil {
			return nil, scanErr
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

func (r *postgresMatchRepository) ListByTorneo(ctx context.Context, torneoID int) ([]models.Match, error) {
	query := `
		SELECT
			p.id, p.torneo_id, p.equipo_local_id, p.equipo_visitante_id,
			p.fecha, p.lugar, p.marcador_local, p.marcador_visitante,
			p.estado, p.observaciones, p.creado_en, p.actualizado_en,
			el.nombre AS equipo_local_nombre,
			ev.nombre AS equipo_visitante_nombre
		FROM partidos p
		INNER JOIN equipos el ON p.equipo_local_id = el.id
		INNER JOIN equipos ev ON p.equipo_visitante_id = ev.id
		WHERE p.torneo_id = $1
		ORDER BY p.fecha, p.id`

	rows, err := r.db.QueryContext(ctx, query, torneoID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	matches := make([]models.Match, 0)
	for rows.Next() {
		var m models.Match
		scanErr := rows.Scan(
			&m.ID, &m.TorneoID, &m.EquipoLocalID, &m.EquipoVisitanteID,
			&m.Fecha, &m.Lugar, &m.MarcadorLocal, &m.MarcadorVisitante,
			&m.Estado, &m.Observaciones, &m.CreatedAt, &m.UpdatedAt,
			&m.EquipoLocalNombre,
			&m.EquipoVisitanteNombre,
		)
		if scanErr != nil {
			return nil, scanErr
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

// ListByEquipo returns every match the team plays, tagging each row "local"
// or "visitante" from the queried team's perspective.
func (r *postgresMatchRepository) ListByEquipo(ctx context.Context, equipoID int) ([]models.Match, error) {
	query := `
		SELECT
			p.id, p.torneo_id, p.equipo_local_id, p.equipo_visitante_id,
			p.fecha, p.lugar, p.marcador_local, p.marcador_visitante,
			p.estado, p.observaciones, p.creado_en, p.actualizado_en,
			t.nombre AS torneo_nombre,
			el.nombre AS equipo_local_nombre,
			ev.nombre AS equipo_visitante_nombre,
			CASE WHEN p.equipo_local_id = $1 THEN 'local' ELSE 'visitante' END AS tipo_participacion
		FROM partidos p
		INNER JOIN torneos t ON p.torneo_id = t.id
		INNER JOIN equipos el ON p.equipo_local_id = el.id
		INNER JOIN equipos ev ON p.equipo_visitante_id = ev.id
		WHERE p.equipo_local_id = $1 OR p.equipo_visitante_id = $1
		ORDER BY p.fecha DESC`

	rows, err := r.db.QueryContext(ctx, query, equipoID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	matches := make([]models.Match, 0)
	for rows.Next() {
		var m models.Match
		scanErr := rows.Scan(
			&m.ID, &m.TorneoID, &m.EquipoLocalID, &m.EquipoVisitanteID,
			&m.Fecha, &m.Lugar, &m.MarcadorLocal, &m.MarcadorVisitante,
			&m.Estado, &m.Observaciones, &m.CreatedAt, &m.UpdatedAt,
			&m.TorneoNombre,
			&m.EquipoLocalNombre,
			&m.EquipoVisitanteNombre,
			&m.TipoParticipacion,
		)
		if scanErr != nil {
			return nil, scanErr
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

func (r *postgresMatchRepository) Update(ctx context.Context, match *models.Match) error {
	query := `
		UPDATE partidos SET
			fecha = $1,
			lugar = $2,
			marcador_local = $3,
			marcador_visitante = $4,
			estado = $5,
			observaciones = $6,
			actualizado_en = NOW()
		WHERE id = $7`

	result, err := r.db.ExecContext(ctx, query,
		match.Fecha,
		match.Lugar,
		match.MarcadorLocal,
		match.MarcadorVisitante,
		match.Estado,
		match.Observaciones,
		match.ID,
	)
	if err != nil {
		return mapMatchError(err)
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM partidos WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) TeamsInTournament(ctx context.Context, torneoID, equipoLocalID, equipoVisitanteID int) (bool, error) {
	query := `
		SELECT COUNT(*)
		FROM equipos
		WHERE torneo_id = $1 AND id IN ($2, $3)`

	var count int
	if err := r.db.QueryRowContext(ctx, query, torneoID, equipoLocalID, equipoVisitanteID).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check tournament teams: %w", err)
	}
	return count == 2, nil
}

func mapMatchError(err error) error {
	if pqErr, ok := err.(*pq.Error); ok {
		switch pqErr.Code {
		case "23503":
			return ErrMatchRefInvalid
		case "23514":
			if pqErr.Constraint == "partidos_equipos_distintos_check" {
				return ErrMatchSameTeams
			}
			return ErrMatchInvalidData
		}
	}
	return err
}
