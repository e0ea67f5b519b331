package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
	"github.com/ligasport/torneos-api/models"
)

var (
	ErrTournamentNotFound     = errors.New("tournament not found")
	ErrTournamentNameConflict = errors.New("tournament name already exists for this organizer")
	ErrTournamentInvalidData  = errors.New("tournament data violates a constraint")
)

type TournamentRepository interface {
	Create(ctx context.Context, t *models.Tournament) error
	GetByID(ctx context.Context, id int) (*models.Tournament, error)
	List(ctx context.Context) ([]models.Tournament, error)
	ListByOrganizador(ctx context.Context, organizadorID int) ([]models.Tournament, error)
	ListByEstado(ctx context.Context, estado models.TournamentStatus) ([]models.Tournament, error)
	Update(ctx context.Context, t *models.Tournament) error
	Delete(ctx context.Context, id int) error
}

type postgresTournamentRepository struct {
	db *sql.DB
}

func NewPostgresTournamentRepository(db *sql.DB) TournamentRepository {
	return &postgresTournamentRepository{db: db}
}

func (r *postgresTournamentRepository) Create(ctx context.Context, t *models.Tournament) error {
	query := `
		INSERT INTO torneos (nombre, disciplina, temporada, fecha_inicio, fecha_fin, estado, organizador_id, descripcion)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, creado_en, actualizado_en`

	err := r.db.QueryRowContext(ctx, query,
		t.Nombre,
		t.Disciplina,
		t.Temporada,
		t.FechaInicio,
		t.FechaFin,
		t.Estado,
		t.OrganizadorID,
		t.Descripcion,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)

	if err != nil {
		return mapTournamentError(err)
	}
	return nil
}

func (r *postgresTournamentRepository) GetByID(ctx context.Context, id int) (*models.Tournament, error) {
	query := `
		SELECT
			t.id, t.nombre, t.disciplina, t.temporada, t.fecha_inicio, t.fecha_fin,
			t.estado, t.organizador_id, t.descripcion, t.creado_en, t.actualizado_en,
			u.nombre || ' ' || u.apellido AS organizador_nombre,
			u.email AS organizador_email,
			(SELECT COUNT(*) FROM equipos e WHERE e.torneo_id = t.id) AS total_equipos,
			(SELECT COUNT(*) FROM partidos p WHERE p.torneo_id = t.id) AS total_partidos
		FROM torneos t
		LEFT JOIN usuarios u ON t.organizador_id = u.id
		WHERE t.id = $1`

	var t models.Tournament
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&t.ID, &t.Nombre, &t.Disciplina, &t.Temporada, &t.FechaInicio, &t.FechaFin,
		&t.Estado, &t.OrganizadorID, &t.Descripcion, &t.CreatedAt, &t.UpdatedAt,
		&t.OrganizadorNombre,
		&t.OrganizadorEmail,
		&t.TotalEquipos,
		&t.TotalPartidos,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *postgresTournamentRepository) List(ctx context.Context) ([]models.Tournament, error) {
	query := `
		SELECT
			t.id, t.nombre, t.disciplina, t.temporada, t.fecha_inicio, t.fecha_fin,
			t.estado, t.organizador_id, t.descripcion, t.creado_en, t.actualizado_en,
			u.nombre || ' ' || u.apellido AS organizador_nombre,
			u.email AS organizador_email,
			(SELECT COUNT(*) FROM equipos e WHERE e.torneo_id = t.id) AS total_equipos
		FROM torneos t
		LEFT JOIN usuarios u ON t.organizador_id = u.id
		ORDER BY t.fecha_inicio DESC, t.id DESC`

	return r.queryTournaments(ctx, query, func(rows *sql.Rows, t *models.Tournament) error {
		return rows.Scan(
			&t.ID, &t.Nombre, &t.Disciplina, &t.Temporada, &t.FechaInicio, &t.FechaFin,
			&t.Estado, &t.OrganizadorID, &t.Descripcion, &t.CreatedAt, &t.UpdatedAt,
			&t.OrganizadorNombre, &t.OrganizadorEmail, &t.TotalEquipos,
		)
	})
}

func (r *postgresTournamentRepository) ListByOrganizador(ctx context.Context, organizadorID int) ([]models.Tournament, error) {
	query := `
		SELECT
			t.id, t.nombre, t.disciplina, t.temporada, t.fecha_inicio, t.fecha_fin,
			t.estado, t.organizador_id, t.descripcion, t.creado_en, t.actualizado_en,
			(SELECT COUNT(*) FROM equipos e WHERE e.torneo_id = t.id) AS total_equipos,
			(SELECT COUNT(*) FROM partidos p WHERE p.torneo_id = t.id) AS total_partidos
		FROM torneos t
		WHERE t.organizador_id = $1
		ORDER BY t.fecha_inicio DESC`

	return r.queryTournaments(ctx, query, func(rows *sql.Rows, t *models.Tournament) error {
		return rows.Scan(
			&t.ID, &t.Nombre, &t.Disciplina, &t.Temporada, &t.FechaInicio, &t.FechaFin,
			&t.Estado, &t.OrganizadorID, &t.Descripcion, &t.CreatedAt, &t.UpdatedAt,
			&t.TotalEquipos, &t.TotalPartidos,
		)
	}, organizadorID)
}

func (r *postgresTournamentRepository) ListByEstado(ctx context.Context, estado models.TournamentStatus) ([]models.Tournament, error) {
	query := `
		SELECT
			t.id, t.nombre, t.disciplina, t.temporada, t.fecha_inicio, t.fecha_fin,
			t.estado, t.organizador_id, t.descripcion, t.creado_en, t.actualizado_en,
			u.nombre || ' ' || u.apellido AS organizador_nombre,
			(SELECT COUNT(*) FROM equipos e WHERE e.torneo_id = t.id) AS total_equipos
		FROM torneos t
		LEFT JOIN usuarios u ON t.organizador_id = u.id
		WHERE t.estado = $1
		ORDER BY t.fecha_inicio DESC`

	return r.queryTournaments(ctx, query, func(rows *sql.Rows, t *models.Tournament) error {
		return rows.Scan(
			&t.ID, &t.Nombre, &t.Disciplina, &t.Temporada, &t.FechaInicio, &t.FechaFin,
			&t.Estado, &t.OrganizadorID, &t.Descripcion, &t.CreatedAt, &t.UpdatedAt,
			&t.OrganizadorNombre, &t.TotalEquipos,
		)
	}, estado)
}

func (r *postgresTournamentRepository) Update(ctx context.Context, t *models.Tournament) error {
	query := `
		UPDATE torneos SET
			nombre = $1,
			disciplina = $2,
			temporada = $3,
			fecha_inicio = $4,
			fecha_fin = $5,
			estado = $6,
			descripcion = $7,
			actualizado_en = NOW()
		WHERE id = $8`

	result, err := r.db.ExecContext(ctx, query,
		t.Nombre,
		t.Disciplina,
		t.Temporada,
		t.FechaInicio,
		t.FechaFin,
		t.Estado,
		t.Descripcion,
		t.ID,
	)
	if err != nil {
		return mapTournamentError(err)
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}

// Delete removes the tournament; equipos, jugadores, partidos and eventos go
// with it through ON DELETE CASCADE.
func (r *postgresTournamentRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM torneos WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}

func (r *postgresTournamentRepository) queryTournaments(
	ctx context.Context,
	query string,
	scan func(*sql.Rows, *models.Tournament) error,
	args ...interface{},
) ([]models.Tournament, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tournaments := make([]models.Tournament, 0)
	for rows.Next() {
		var t models.Tournament
		if err := scan(rows, &t); err != nil {
			return nil, err
		}
		tournaments = append(tournaments, t)
	}
	return tournaments, rows.Err()
}

func mapTournamentError(err error) error {
	if pqErr, ok := err.(*pq.Error); ok {
		switch pqErr.Code {
		case "23505":
			if pqErr.Constraint == "torneos_organizador_nombre_key" {
				return ErrTournamentNameConflict
			}
		case "23514": // check_violation: fechas o estado
			return ErrTournamentInvalidData
		}
	}
	return err
}
