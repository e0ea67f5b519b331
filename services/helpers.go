package services

import (
	"errors"
	"time"
	"unicode"
)

// dateWithinRange compares at day granularity: the match date must not fall
// before the first day nor after the last day of the tournament.
func dateWithinRange(fecha, inicio, fin time.Time) bool {
	d := truncateToDay(fecha)
	return !d.Before(truncateToDay(inicio)) && !d.After(truncateToDay(fin))
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Password policy errors, one per missing requirement so clients can show
// the exact rule that failed.
var (
	ErrPasswordTooShort = errors.New("la contraseña debe tener al menos 8 caracteres")
	ErrPasswordNoUpper  = errors.New("la contraseña debe incluir al menos una mayúscula")
	ErrPasswordNoLower  = errors.New("la contraseña debe incluir al menos una minúscula")
	ErrPasswordNoDigit  = errors.New("la contraseña debe incluir al menos un número")
	ErrPasswordNoSymbol = errors.New("la contraseña debe incluir al menos un símbolo")
)

// ValidatePasswordPolicy enforces the password rules for self-service
// changes: length 8+, upper, lower, digit and symbol.
func ValidatePasswordPolicy(password string) error {
	if len([]rune(password)) < 8 {
		return ErrPasswordTooShort
	}

	var hasUpper, hasLower, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			hasSymbol = true
		}
	}

	switch {
	case !hasUpper:
		return ErrPasswordNoUpper
	case !hasLower:
		return ErrPasswordNoLower
	case !hasDigit:
		return ErrPasswordNoDigit
	case !hasSymbol:
		return ErrPasswordNoSymbol
	}
	return nil
}
