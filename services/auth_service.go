package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/ligasport/torneos-api/models"
	"github.com/ligasport/torneos-api/repositories"
	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	// Login verifies credentials and issues a signed token. Absent users and
	// wrong passwords are indistinguishable to the caller.
	Login(ctx context.Context, input LoginInput) (*models.User, string, error)
	GetPerfil(ctx context.Context, userID int) (*models.User, error)
	ChangePassword(ctx context.Context, userID int, input ChangePasswordInput) error
	// VerifyToken validates signature and expiry and returns the embedded
	// identity.
	VerifyToken(tokenString string) (Identity, error)
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ChangePasswordInput struct {
	PasswordActual string `json:"passwordActual" validate:"required"`
	PasswordNuevo  string `json:"passwordNuevo" validate:"required"`
}

type authService struct {
	userRepo  repositories.UserRepository
	jwtSecret []byte
	expiresIn time.Duration
}

func NewAuthService(userRepo repositories.UserRepository, jwtSecret string, expiresIn time.Duration) AuthService {
	return &authService{
		userRepo:  userRepo,
		jwtSecret: []byte(jwtSecret),
		expiresIn: expiresIn,
	}
}

func (s *authService) Login(ctx context.Context, input LoginInput) (*models.User, string, error) {
	user, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to find user by email: %w", err)
	}

	if !user.Activo {
		return nil, "", ErrAccountInactive
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to compare password hash: %w", err)
	}

	token, err := s.signToken(user)
	if err != nil {
		return nil, "", fmt.Errorf("failed to sign token: %w", err)
	}

	user.PasswordHash = ""
	return user, token, nil
}

func (s *authService) GetPerfil(ctx context.Context, userID int) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}

func (s *authService) ChangePassword(ctx context.Context, userID int, input ChangePasswordInput) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.PasswordActual)); err != nil {
		return ErrInvalidCredentials
	}

	if input.PasswordNuevo == input.PasswordActual {
		return ErrPasswordSameAsCurrent
	}
	if err := ValidatePasswordPolicy(input.PasswordNuevo); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.PasswordNuevo), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return s.userRepo.UpdatePassword(ctx, userID, string(hash))
}

func (s *authService) signToken(user *models.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id":    user.ID,
		"email":      user.Email,
		"rol_id":     user.RolID,
		"rol_nombre": user.RolNombre(),
		"iat":        now.Unix(),
		"exp":        now.Add(s.expiresIn).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

func (s *authService) VerifyToken(tokenString string) (Identity, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return Identity{}, ErrInvalidCredentials
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, ErrInvalidCredentials
	}

	userID, ok := claimInt(claims, "user_id")
	if !ok || userID <= 0 {
		return Identity{}, ErrInvalidCredentials
	}
	rolID, _ := claimInt(claims, "rol_id")
	email, _ := claims["email"].(string)
	rolNombre, _ := claims["rol_nombre"].(string)

	return Identity{
		UserID:    userID,
		Email:     email,
		RolID:     rolID,
		RolNombre: rolNombre,
	}, nil
}

func claimInt(claims jwt.MapClaims, key string) (int, bool) {
	v, ok := claims[key].(float64)
	if !ok || v != float64(int(v)) {
		return 0, false
	}
	return int(v), true
}
