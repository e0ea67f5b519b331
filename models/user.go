package models

import "time"

// Role names as seeded in the roles table.
const (
	RoleAdmin        = "admin"
	RoleOrganizador  = "organizador"
	RoleDelegado     = "delegado"
	RoleParticipante = "participante"
)

type Role struct {
	ID          int     `json:"id"`
	Nombre      string  `json:"nombre"`
	Descripcion *string `json:"descripcion,omitempty"`
}

type User struct {
	ID           int       `json:"id"`
	Nombre       string    `json:"nombre"`
	Apellido     string    `json:"apellido"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Telefono     *string   `json:"telefono,omitempty"`
	RolID        int       `json:"rol_id"`
	Activo       bool      `json:"activo"`
	CreatedAt    time.Time `json:"creado_en"`
	UpdatedAt    time.Time `json:"actualizado_en"`

	// Joined role data, present on enriched reads.
	Rol *Role `json:"rol,omitempty"`
}

func (u *User) NombreCompleto() string {
	return u.Nombre + " " + u.Apellido
}

// RolNombre returns the joined role name or "" when the role was not loaded.
func (u *User) RolNombre() string {
	if u.Rol == nil {
		return ""
	}
	return u.Rol.Nombre
}
