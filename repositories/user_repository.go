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
	ErrUserNotFound      = errors.New("user not found")
	ErrUserEmailConflict = errors.New("user email conflict")
	ErrUserRolInvalid    = errors.New("user role invalid")
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	EmailTaken(ctx context.Context, email string, excludeID int) (bool, error)
	Update(ctx context.Context, user *models.User) error
	UpdatePassword(ctx context.Context, id int, passwordHash string) error
	SetActivo(ctx context.Context, id int, activo bool) error
}

type postgresUserRepository struct {
	db *sql.DB
}

func NewPostgresUserRepository(db *sql.DB) UserRepository {
	return &postgresUserRepository{db: db}
}

func (r *postgresUserRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO usuarios (nombre, apellido, email, password_hash, telefono, rol_id, activo)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, creado_en, actualizado_en`

	err := r.db.QueryRowContext(ctx, query,
		user.Nombre,
		user.Apellido,
		user.Email,
		user.PasswordHash,
		user.Telefono,
		user.RolID,
		user.Activo,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		return mapUserError(err)
	}
	return nil
}

const userSelectColumns = `
	u.id, u.nombre, u.apellido, u.email, u.password_hash, u.telefono,
	u.rol_id, u.activo, u.creado_en, u.actualizado_en,
	r.id, r.nombre, r.descripcion`

func (r *postgresUserRepository) GetByID(ctx context.Context, id int) (*models.User, error) {
	query := `
		SELECT ` + userSelectColumns + `
		FROM usuarios u
		INNER JOIN roles r ON u.rol_id = r.id
		WHERE u.id = $1`
	return r.scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT ` + userSelectColumns + `
		FROM usuarios u
		INNER JOIN roles r ON u.rol_id = r.id
		WHERE u.email = $1`
	return r.scanUser(r.db.QueryRowContext(ctx, query, email))
}

func (r *postgresUserRepository) List(ctx context.Context) ([]models.User, error) {
	query := `
		SELECT ` + userSelectColumns + `
		FROM usuarios u
		INNER JOIN roles r ON u.rol_id = r.id
		ORDER BY u.apellido, u.nombre, u.id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]models.User, 0)
	for rows.Next() {
		user, scanErr := scanUserRow(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		users = append(users, *user)
	}
	return users, rows.Err()
}

// EmailTaken reports whether the email belongs to a different user than
// excludeID. Pass excludeID 0 when creating.
func (r *postgresUserRepository) EmailTaken(ctx context.Context, email string, excludeID int) (bool, error) {
	query := `SELECT COUNT(*) FROM usuarios WHERE email = $1 AND id <> $2`

	var count int
	if err := r.db.QueryRowContext(ctx, query, email, excludeID).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return count > 0, nil
}

func (r *postgresUserRepository) Update(ctx context.Context, user *models.User) error {
	query := `
		UPDATE usuarios SET
			nombre = $1,
			apellido = $2,
			email = $3,
			telefono = $4,
			rol_id = $5,
			activo = $6,
			actualizado_en = NOW()
		WHERE id = $7`

	result, err := r.db.ExecContext(ctx, query,
		user.Nombre,
		user.Apellido,
		user.Email,
		user.Telefono,
		user.RolID,
		user.Activo,
		user.ID,
	)
	if err != nil {
		return mapUserError(err)
	}
	return checkAffectedRows(result, ErrUserNotFound)
}

func (r *postgresUserRepository) UpdatePassword(ctx context.Context, id int, passwordHash string) error {
	query := `UPDATE usuarios SET password_hash = $1, actualizado_en = NOW() WHERE id = $2`

	result, err := r.db.ExecContext(ctx, query, passwordHash, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrUserNotFound)
}

// SetActivo flips the active flag. Deactivation is the only deletion users
// get; rows are never removed.
func (r *postgresUserRepository) SetActivo(ctx context.Context, id int, activo bool) error {
	query := `UPDATE usuarios SET activo = $1, actualizado_en = NOW() WHERE id = $2`

	result, err := r.db.ExecContext(ctx, query, activo, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrUserNotFound)
}

func (r *postgresUserRepository) scanUser(row *sql.Row) (*models.User, error) {
	user, err := scanUserRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanUserRow(row rowScanner) (*models.User, error) {
	var user models.User
	var rol models.Role

	err := row.Scan(
		&user.ID,
		&user.Nombre,
		&user.Apellido,
		&user.Email,
		&user.PasswordHash,
		&user.Telefono,
		&user.RolID,
		&user.Activo,
		&user.CreatedAt,
		&user.UpdatedAt,
		&rol.ID,
		&rol.Nombre,
		&rol.Descripcion,
	)
	if err != nil {
		return nil, err
	}

	user.Rol = &rol
	return &user, nil
}

func mapUserError(err error) error {
	if pqErr, ok := err.(*pq.Error); ok {
		switch pqErr.Code {
		case "23505": // unique_violation
			if pqErr.Constraint == "usuarios_email_key" {
				return ErrUserEmailConflict
			}
		case "23503": // foreign_key_violation
			if pqErr.Constraint == "usuarios_rol_id_fkey" {
				return ErrUserRolInvalid
			}
		}
	}
	return err
}
