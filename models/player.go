package models

import "time"

type Player struct {
	ID          int       `json:"id"`
	Nombre      string    `json:"nombre"`
	Apellido    string    `json:"apellido"`
	NroCamiseta int       `json:"nro_camiseta"`
	EquipoID    int       `json:"equipo_id"`
	CreatedAt   time.Time `json:"creado_en"`

	EquipoNombre *string `json:"equipo_nombre,omitempty"`
}

func (p *Player) NombreCompleto() string {
	return p.Nombre + " " + p.Apellido
}
