package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDateWithinRange(t *testing.T) {
	inicio := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	fin := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		fecha time.Time
		want  bool
	}{
		{"middle of range", time.Date(2026, 3, 15, 20, 0, 0, 0, time.UTC), true},
		{"exactly on start day", time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC), true},
		{"exactly on end day", time.Date(2026, 3, 31, 23, 59, 0, 0, time.UTC), true},
		{"day before start", time.Date(2026, 2, 28, 23, 0, 0, 0, time.UTC), false},
		{"day after end", time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, dateWithinRange(tt.fecha, inicio, fin))
		})
	}
}

func TestDateWithinRangeIgnoresTimeZoneOffsets(t *testing.T) {
	inicio := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	fin := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)

	// 2026-03-31 22:00 -03:00 is 2026-04-01 in UTC.
	offset := time.FixedZone("UTC-3", -3*3600)
	fecha := time.Date(2026, 3, 31, 22, 0, 0, 0, offset)

	assert.False(t, dateWithinRange(fecha, inicio, fin))
}

func TestValidatePasswordPolicy(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  error
	}{
		{"valid password", "Segura#2026", nil},
		{"too short", "Ab1#xyz", ErrPasswordTooShort},
		{"missing uppercase", "segura#2026", ErrPasswordNoUpper},
		{"missing lowercase", "SEGURA#2026", ErrPasswordNoLower},
		{"missing digit", "Segura#Fuerte", ErrPasswordNoDigit},
		{"missing symbol", "Segura2026ok", ErrPasswordNoSymbol},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePasswordPolicy(tt.password)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}
