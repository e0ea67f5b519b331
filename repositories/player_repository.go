package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
	"github.com/ligasport/torneos-api/models"
)

var (
	ErrPlayerNotFound         = errors.New("player not found")
	ErrPlayerCamisetaConflict = errors.New("shirt number already taken in this team")
	ErrPlayerEquipoInvalid    = errors.New("player team invalid")
	ErrPlayerInvalidData      = errors.New("player data violates a constraint")
)

type PlayerRepository interface {
	Create(ctx context.Context, player *models.Player) error
	GetByID(ctx context.Context, id int) (*models.Player, error)
	List(ctx context.Context) ([]models.Player, error)
	ListByEquipo(ctx context.Context, equipoID int) ([]models.Player, error)
	Update(ctx context.Context, player *models.Player) error
	Delete(ctx context.Context, id int) error
}

type postgresPlayerRepository struct {
	db *sql.DB
}

func NewPostgresPlayerRepository(db *sql.DB) PlayerRepository {
	return &postgresPlayerRepository{db: db}
}

func (r *postgresPlayerRepository) Create(ctx context.Context, player *models.Player) error {
	query := `
		INSERT INTO jugadores (nombre, apellido, nro_camiseta, equipo_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, creado_en`

	err := r.db.QueryRowContext(ctx, query,
		player.Nombre,
		player.Apellido,
		player.NroCamiseta,
		player.EquipoID,
	).Scan(&player.ID, &player.CreatedAt)

	if err != nil {
		return mapPlayerError(err)
	}
	return nil
}

func (r *postgresPlayerRepository) GetByID(ctx context.Context, id int) (*models.Player, error) {
	query := `
		SELECT
			j.id, j.nombre, j.apellido, j.nro_camiseta, j.equipo_id, j.creado_en,
			e.nombre AS equipo_nombre
		FROM jugadores j
		INNER JOIN equipos e ON j.equipo_id = e.id
		WHERE j.id = $1`

	var player models.Player
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&player.ID, &player.Nombre, &player.Apellido, &player.NroCamiseta,
		&player.EquipoID, &player.CreatedAt,
		&player.EquipoNombre,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}
	return &player, nil
}

func (r *postgresPlayerRepository) List(ctx context.Context) ([]models.Player, error) {
	query := `
		SELECT
			j.id, j.nombre, j.apellido, j.nro_camiseta, j.equipo_id, j.creado_en,
			e.nombre AS equipo_nombre
		FROM jugadores j
		INNER JOIN equipos e ON j.equipo_id = e.id
		ORDER BY e.nombre, j.nro_camiseta`

	return r.queryPlayers(ctx, query)
}

func (r *postgresPlayerRepository) ListByEquipo(ctx context.Context, equipoID int) ([]models.Player, error) {
	query := `
		SELECT
			j.id, j.nombre, j.apellido, j.nro_camiseta, j.equipo_id, j.creado_en,
			e.nombre AS equipo_nombre
		FROM jugadores j
		INNER JOIN equipos e ON j.equipo_id = e.id
		WHERE j.equipo_id = $1
		ORDER BY j.nro_camiseta ASC`

	return r.queryPlayers(ctx, query, equipoID)
}

func (r *postgresPlayerRepository) Update(ctx context.Context, player *models.Player) error {
	query := `
		UPDATE jugadores SET
			nombre = $1,
			apellido = $2,
			nro_camiseta = $3
		WHERE id = $4`

	result, err := r.db.ExecContext(ctx, query,
		player.Nombre,
		player.Apellido,
		player.NroCamiseta,
		player.ID,
	)
	if err != nil {
		return mapPlayerError(err)
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}

func (r *postgresPlayerRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM jugadores WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}

func (r *postgresPlayerRepository) queryPlayers(ctx context.Context, query string, args ...interface{}) ([]models.Player, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	players := make([]models.Player, 0)
	for rows.Next() {
		var player models.Player
		scanErr := rows.Scan(
			&player.ID, &player.Nombre, &player.Apellido, &player.NroCamiseta,
			&player.EquipoID, &player.CreatedAt,
			&player.EquipoNombre,
		)
		if scanErr != nil {
			return nil, scanErr
		}
		players = append(players, player)
	}
	return players, rows.Err()
}

func mapPlayerError(err error) error {
	if pqErr, ok := err.(*pq.Error); ok {
		switch pqErr.Code {
		case "23505":
			if pqErr.Constraint == "jugadores_equipo_camiseta_key" {
				return ErrPlayerCamisetaConflict
			}
		case "23503":
			if pqErr.Constraint == "jugadores_equipo_id_fkey" {
				return ErrPlayerEquipoInvalid
			}
		case "23514":
			return ErrPlayerInvalidData
		}
	}
	return err
}
