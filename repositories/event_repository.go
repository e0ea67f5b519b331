package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
	"github.com/ligasport/torneos-api/models"
)

var (
	ErrEventNotFound      = errors.New("match event not found")
	ErrEventRefInvalid    = errors.New("event match or player invalid")
	ErrEventInvalidTipo   = errors.New("event type invalid")
	ErrEventInvalidMinuto = errors.New("event minute must be between 0 and 120")
)

type EventRepository interface {
	Create(ctx context.Context, event *models.MatchEvent) error
	GetByID(ctx context.Context, id int) (*models.MatchEvent, error)
	List(ctx context.Context) ([]models.MatchEvent, error)
	ListByPartido(ctx context.Context, partidoID int) ([]models.MatchEvent, error)
	Update(ctx context.Context, event *models.MatchEvent) error
	Delete(ctx context.Context, id int) error
	// PlayerInMatch reports whether the player's team is one of the two
	// teams contesting the match.
	PlayerInMatch(ctx context.Context, jugadorID, partidoID int) (bool, error)
	GoleadoresByPartido(ctx context.Context, partidoID int) ([]models.Goleador, error)
	GoleadoresByTorneo(ctx context.Context, torneoID int) ([]models.Goleador, error)
}

type postgresEventRepository struct {
	db *sql.DB
}

func NewPostgresEventRepository(db *sql.DB) EventRepository {
	return &postgresEventRepository{db: db}
}

func (r *postgresEventRepository) Create(ctx context.Context, event *models.MatchEvent) error {
	query := `
		INSERT INTO eventos_partido (partido_id, jugador_id, tipo, minuto, descripcion)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, creado_en`

	err := r.db.QueryRowContext(ctx, query,
		event.PartidoID,
		event.JugadorID,
		event.Tipo,
		event.Minuto,
		event.Descripcion,
	).Scan(&event.ID, &event.CreatedAt)

	if err != nil {
		return mapEventError(err)
	}
	return nil
}

func (r *postgresEventRepository) GetByID(ctx context.Context, id int) (*models.MatchEvent, error) {
	query := `
		SELECT
			e.id, e.partido_id, e.jugador_id, e.tipo, e.minuto, e.descripcion, e.creado_en,
			j.nombre || ' ' || j.apellido AS jugador_nombre,
			j.nro_camiseta,
			j.equipo_id AS jugador_equipo_id,
			eq.nombre AS equipo_nombre,
			el.nombre AS equipo_local,
			ev.nombre AS equipo_visitante,
			t.organizador_id AS torneo_organizador_id
		FROM eventos_partido e
		INNER JOIN partidos p ON e.partido_id = p.id
		INNER JOIN torneos t ON p.torneo_id = t.id
		INNER JOIN equipos el ON p.equipo_local_id = el.id
		INNER JOIN equipos ev ON p.equipo_visitante_id = ev.id
		INNER JOIN jugadores j ON e.jugador_id = j.id
		INNER JOIN equipos eq ON j.equipo_id = eq.id
		WHERE e.id = $1`

	var e models.MatchEvent
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&e.ID, &e.PartidoID, &e.JugadorID, &e.Tipo, &e.Minuto, &e.Descripcion, &e.CreatedAt,
		&e.JugadorNombre,
		&e.NroCamiseta,
		&e.JugadorEquipoID,
		&e.EquipoNombre,
		&e.EquipoLocal,
		&e.EquipoVisitante,
		&e.TorneoOrganizadorID,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return &e, nil
}

func (r *postgresEventRepository) List(ctx context.Context) ([]models.MatchEvent, error) {
	query := `
		SELECT
			e.id, e.partido_id, e.jugador_id, e.tipo, e.minuto, e.descripcion, e.creado_en,
			j.nombre || ' ' || j.apellido AS jugador_nombre,
			j.nro_camiseta,
			eq.nombre AS equipo_nombre,
			el.nombre AS equipo_local,
			ev.nombre AS equipo_visitante
		FROM eventos_partido e
		INNER JOIN partidos p ON e.partido_id = p.id
		INNER JOIN equipos el ON p.equipo_local_id = el.id
		INNER JOIN equipos ev ON p.equipo_visitante_id = ev.id
		INNER JOIN jugadores j ON e.jugador_id = j.id
		INNER JOIN equipos eq ON j.equipo_id = eq.id
		ORDER BY p.fecha DESC, e.minuto`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]models.MatchEvent, 0)
	for rows.Next() {
		var e models.MatchEvent
		scanErr := rows.Scan(
			&e.ID, &e.PartidoID, &e.JugadorID, &e.Tipo, &e.Minuto, &e.Descripcion, &e.CreatedAt,
			&e.JugadorNombre,
			&e.NroCamiseta,
			&e.EquipoNombre,
			&e.EquipoLocal,
			&e.EquipoVisitante,
		)
		if scanErr != nil {
			return nil, scanErr
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *postgresEventRepository) ListByPartido(ctx context.Context, partidoID int) ([]models.MatchEvent, error) {
	query := `
		SELECT
			e.id, e.partido_id, e.jugador_id, e.tipo, e.minuto, e.descripcion, e.creado_en,
			j.nombre || ' ' || j.apellido AS jugador_nombre,
			j.nro_camiseta,
			eq.nombre AS equipo_nombre
		FROM eventos_partido e
		INNER JOIN jugadores j ON e.jugador_id = j.id
		INNER JOIN equipos eq ON j.equipo_id = eq.id
		WHERE e.partido_id = $1
		ORDER BY e.minuto, e.id`

	rows, err := r.db.QueryContext(ctx, query, partidoID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]models.MatchEvent, 0)
	for rows.Next() {
		var e models.MatchEvent
		scanErr := rows.Scan(
			&e.ID, &e.PartidoID, &e.JugadorID, &e.Tipo, &e.Minuto, &e.Descripcion, &e.CreatedAt,
			&e.JugadorNombre,
			&e.NroCamiseta,
			&e.EquipoNombre,
		)
		if scanErr != nil {
			return nil, scanErr
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *postgresEventRepository) Update(ctx context.Context, event *models.MatchEvent) error {
	query := `
		UPDATE eventos_partido SET
			tipo = $1,
			minuto = $2,
			descripcion = $3
		WHERE id = $4`

	result, err := r.db.ExecContext(ctx, query,
		event.Tipo,
		event.Minuto,
		event.Descripcion,
		event.ID,
	)
	if err != nil {
		return mapEventError(err)
	}
	return checkAffectedRows(result, ErrEventNotFound)
}

func (r *postgresEventRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM eventos_partido WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrEventNotFound)
}

func (r *postgresEventRepository) PlayerInMatch(ctx context.Context, jugadorID, partidoID int) (bool, error) {
	query := `
		SELECT COUNT(*)
		FROM jugadores j
		INNER JOIN partidos p ON (j.equipo_id = p.equipo_local_id OR j.equipo_id = p.equipo_visitante_id)
		WHERE j.id = $1 AND p.id = $2`

	var count int
	if err := r.db.QueryRowContext(ctx, query, jugadorID, partidoID).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check match player: %w", err)
	}
	return count > 0, nil
}

func (r *postgresEventRepository) GoleadoresByPartido(ctx context.Context, partidoID int) ([]models.Goleador, error) {
	query := `
		SELECT
			j.id AS jugador_id,
			j.nombre || ' ' || j.apellido AS jugador_nombre,
			j.nro_camiseta,
			eq.nombre AS equipo_nombre,
			COUNT(*) AS goles
		FROM eventos_partido e
		INNER JOIN jugadores j ON e.jugador_id = j.id
		INNER JOIN equipos eq ON j.equipo_id = eq.id
		WHERE e.partido_id = $1 AND e.tipo = 'gol'
		GROUP BY j.id, j.nombre, j.apellido, j.nro_camiseta, eq.nombre
		ORDER BY goles DESC, jugador_nombre`

	return r.queryGoleadores(ctx, query, partidoID)
}

// GoleadoresByTorneo aggregates goals across every match of the tournament.
func (r *postgresEventRepository) GoleadoresByTorneo(ctx context.Context, torneoID int) ([]models.Goleador, error) {
	query := `
		SELECT
			j.id AS jugador_id,
			j.nombre || ' ' || j.apellido AS jugador_nombre,
			j.nro_camiseta,
			eq.nombre AS equipo_nombre,
			COUNT(*) AS goles
		FROM eventos_partido e
		INNER JOIN partidos p ON e.partido_id = p.id
		INNER JOIN jugadores j ON e.jugador_id = j.id
		INNER JOIN equipos eq ON j.equipo_id = eq.id
		WHERE p.torneo_id = $1 AND e.tipo = 'gol'
		GROUP BY j.id, j.nombre, j.apellido, j.nro_camiseta, eq.nombre
		ORDER BY goles DESC, jugador_nombre`

	return r.queryGoleadores(ctx, query, torneoID)
}

func (r *postgresEventRepository) queryGoleadores(ctx context.Context, query string, args ...interface{}) ([]models.Goleador, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	goleadores := make([]models.Goleador, 0)
	for rows.Next() {
		var g models.Goleador
		scanErr := rows.Scan(&g.JugadorID, &g.JugadorNombre, &g.NroCamiseta, &g.EquipoNombre, &g.Goles)
		if scanErr != nil {
			return nil, scanErr
		}
		goleadores = append(goleadores, g)
	}
	return goleadores, rows.Err()
}

func mapEventError(err error) error {
	if pqErr, ok := err.(*pq.Error); ok {
		switch pqErr.Code {
		case "23503":
			return ErrEventRefInvalid
		case "23514":
			if strings.Contains(pqErr.Constraint, "tipo") {
				return ErrEventInvalidTipo
			}
			if strings.Contains(pqErr.Constraint, "minuto") {
				return ErrEventInvalidMinuto
			}
		}
	}
	return err
}
