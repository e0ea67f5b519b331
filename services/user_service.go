package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/ligasport/torneos-api/models"
	"github.com/ligasport/torneos-api/repositories"
	"golang.org/x/crypto/bcrypt"
)

type UserService interface {
	List(ctx context.Context) ([]models.User, error)
	GetByID(ctx context.Context, id int) (*models.User, error)
	Create(ctx context.Context, input CreateUserInput) (*models.User, error)
	Update(ctx context.Context, identity Identity, id int, input UpdateUserInput) (*models.User, error)
	UpdatePassword(ctx context.Context, id int, password string) error
	Delete(ctx context.Context, identity Identity, id int) error
}

type CreateUserInput struct {
	Nombre   string  `json:"nombre" validate:"required,min=2,max=100"`
	Apellido string  `json:"apellido" validate:"required,min=2,max=100"`
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=8"`
	Telefono *string `json:"telefono" validate:"omitempty,max=30"`
	RolID    int     `json:"rol_id" validate:"required,min=1"`
}

// UpdateUserInput is an explicit patch: nil means "leave unchanged".
type UpdateUserInput struct {
	Nombre   *string `json:"nombre" validate:"omitempty,min=2,max=100"`
	Apellido *string `json:"apellido" validate:"omitempty,min=2,max=100"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Telefono *string `json:"telefono" validate:"omitempty,max=30"`
	RolID    *int    `json:"rol_id" validate:"omitempty,min=1"`
	Activo   *bool   `json:"activo"`
}

type userService struct {
	userRepo repositories.UserRepository
}

func NewUserService(userRepo repositories.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) List(ctx context.Context) ([]models.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i].PasswordHash = ""
	}
	return users, nil
}

func (s *userService) GetByID(ctx context.Context, id int) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}

func (s *userService) Create(ctx context.Context, input CreateUserInput) (*models.User, error) {
	taken, err := s.userRepo.EmailTaken(ctx, input.Email, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrUserEmailConflict
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Nombre:       input.Nombre,
		Apellido:     input.Apellido,
		Email:        input.Email,
		PasswordHash: string(hash),
		Telefono:     input.Telefono,
		RolID:        input.RolID,
		Activo:       true,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		switch {
		case errors.Is(err, repositories.ErrUserEmailConflict):
			return nil, ErrUserEmailConflict
		case errors.Is(err, repositories.ErrUserRolInvalid):
			return nil, ErrRolNotFound
		}
		return nil, err
	}

	return s.GetByID(ctx, user.ID)
}

func (s *userService) Update(ctx context.Context, identity Identity, id int, input UpdateUserInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	// An admin can deactivate anyone but themselves.
	if input.Activo != nil && !*input.Activo && id == identity.UserID {
		return nil, ErrSelfDeactivation
	}

	if input.Email != nil && *input.Email != user.Email {
		taken, err := s.userRepo.EmailTaken(ctx, *input.Email, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrUserEmailConflict
		}
		user.Email = *input.Email
	}

	if input.Nombre != nil {
		user.Nombre = *input.Nombre
	}
	if input.Apellido != nil {
		user.Apellido = *input.Apellido
	}
	if input.Telefono != nil {
		user.Telefono = input.Telefono
	}
	if input.RolID != nil {
		user.RolID = *input.RolID
	}
	if input.Activo != nil {
		user.Activo = *input.Activo
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		switch {
		case errors.Is(err, repositories.ErrUserNotFound):
			return nil, ErrUserNotFound
		case errors.Is(err, repositories.ErrUserEmailConflict):
			return nil, ErrUserEmailConflict
		case errors.Is(err, repositories.ErrUserRolInvalid):
			return nil, ErrRolNotFound
		}
		return nil, err
	}

	return s.GetByID(ctx, id)
}

// UpdatePassword is the admin reset path; it does not require the current
// password but still enforces the policy.
func (s *userService) UpdatePassword(ctx context.Context, id int, password string) error {
	if _, err := s.userRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if err := ValidatePasswordPolicy(password); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	return s.userRepo.UpdatePassword(ctx, id, string(hash))
}

// Delete is a soft delete: the account is flagged inactive and login is
// rejected, historical references stay intact.
func (s *userService) Delete(ctx context.Context, identity Identity, id int) error {
	if id == identity.UserID {
		return ErrSelfDelete
	}

	if _, err := s.userRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	return s.userRepo.SetActivo(ctx, id, false)
}
