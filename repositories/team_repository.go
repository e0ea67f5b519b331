package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
	"github.com/ligasport/torneos-api/models"
)

var (
	ErrTeamNotFound      = errors.New("team not found")
	ErrTeamNameConflict  = errors.New("team name already exists in this tournament")
	ErrTeamTorneoInvalid = errors.New("team tournament invalid")
)

type TeamRepository interface {
	Create(ctx context.Context, team *models.Team) error
	GetByID(ctx context.Context, id int) (*models.Team, error)
	List(ctx context.Context) ([]models.Team, error)
	ListByTorneo(ctx context.Context, torneoID int) ([]models.Team, error)
	Update(ctx context.Context, team *models.Team) error
	UpdateLogoKey(ctx context.Context, id int, logoKey *string) error
	Delete(ctx context.Context, id int) error
}

type postgresTeamRepository struct {
	db *sql.DB
}

func NewPostgresTeamRepository(db *sql.DB) TeamRepository {
	return &postgresTeamRepository{db: db}
}

func (r *postgresTeamRepository) Create(ctx context.Context, team *models.Team) error {
	query := `
		INSERT INTO equipos (nombre, color, representante, telefono_representante, torneo_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, creado_en, actualizado_en`

	err := r.db.QueryRowContext(ctx, query,
		team.Nombre,
		team.Color,
		team.Representante,
		team.TelefonoRepresentante,
		team.TorneoID,
	).Scan(&team.ID, &team.CreatedAt, &team.UpdatedAt)

	if err != nil {
		return mapTeamError(err)
	}
	return nil
}

func (r *postgresTeamRepository) GetByID(ctx context.Context, id int) (*models.Team, error) {
	query := `
		SELECT
			e.id, e.nombre, e.color, e.representante, e.telefono_representante,
			e.torneo_id, e.logo_key, e.creado_en, e.actualizado_en,
			t.nombre AS torneo_nombre,
			(SELECT COUNT(*) FROM jugadores j WHERE j.equipo_id = e.id) AS total_jugadores
		FROM equipos e
		INNER JOIN torneos t ON e.torneo_id = t.id
		WHERE e.id = $1`

	var team models.Team
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&team.ID, &team.Nombre, &team.Color, &team.Representante, &team.TelefonoRepresentante,
		&team.TorneoID, &team.LogoKey, &team.CreatedAt, &team.UpdatedAt,
		&team.TorneoNombre,
		&team.TotalJugadores,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	return &team, nil
}

func (r *postgresTeamRepository) List(ctx context.Context) ([]models.Team, error) {
	query := `
		SELECT
			e.id, e.nombre, e.color, e.representante, e.telefono_representante,
			e.torneo_id, e.logo_key, e.creado_en, e.actualizado_en,
			t.nombre AS torneo_nombre,
			(SELECT COUNT(*) FROM jugadores j WHERE j.equipo_id = e.id) AS total_jugadores
		FROM equipos e
		INNER JOIN torneos t ON e.torneo_id = t.id
		ORDER BY t.nombre, e.nombre`

	return r.queryTeams(ctx, query)
}

func (r *postgresTeamRepository) ListByTorneo(ctx context.Context, torneoID int) ([]models.Team, error) {
	query := `
		SELECT
			e.id, e.nombre, e.color, e.representante, e.telefono_representante,
			e.torneo_id, e.logo_key, e.creado_en, e.actualizado_en,
			t.nombre AS torneo_nombre,
			(SELECT COUNT(*) FROM jugadores j WHERE j.equipo_id = e.id) AS total_jugadores
		FROM equipos e
		INNER JOIN torneos t ON e.torneo_id = t.id
		WHERE e.torneo_id = $1
		ORDER BY e.nombre ASC`

	return r.queryTeams(ctx, query, torneoID)
}

func (r *postgresTeamRepository) Update(ctx context.Context, team *models.Team) error {
	query := `
		UPDATE equipos SET
			nombre = $1,
			color = $2,
			representante = $3,
			telefono_representante = $4,
			actualizado_en = NOW()
		WHERE id = $5`

	result, err := r.db.ExecContext(ctx, query,
		team.Nombre,
		team.Color,
		team.Representante,
		team.TelefonoRepresentante,
		team.ID,
	)
	if err != nil {
		return mapTeamError(err)
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

// UpdateLogoKey stores (or clears, with nil) the crest object key.
func (r *postgresTeamRepository) UpdateLogoKey(ctx context.Context, id int, logoKey *string) error {
	query := `UPDATE equipos SET logo_key = $1, actualizado_en = NOW() WHERE id = $2`

	result, err := r.db.ExecContext(ctx, query, logoKey, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM equipos WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) queryTeams(ctx context.Context, query string, args ...interface{}) ([]models.Team, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	teams := make([]models.Team, 0)
	for rows.Next() {
		var team models.Team
		scanErr := rows.Scan(
			&team.ID, &team.Nombre, &team.Color, &team.Representante, &team.TelefonoRepresentante,
			&team.TorneoID, &team.LogoKey, &team.CreatedAt, &team.UpdatedAt,
			&team.TorneoNombre,
			&team.TotalJugadores,
		)
		if scanErr != nil {
			return nil, scanErr
		}
		teams = append(teams, team)
	}
	return teams, rows.Err()
}

func mapTeamError(err error) error {
	if pqErr, ok := err.(*pq.Error); ok {
		switch pqErr.Code {
		case "23505":
			if pqErr.Constraint == "equipos_torneo_nombre_key" {
				return ErrTeamNameConflict
			}
		case "23503":
			if pqErr.Constraint == "equipos_torneo_id_fkey" {
				return ErrTeamTorneoInvalid
			}
		}
	}
	return err
}
