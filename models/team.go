package models

import "time"

type Team struct {
	ID                    int       `json:"id"`
	Nombre                string    `json:"nombre"`
	Color                 *string   `json:"color,omitempty"`
	Representante         *string   `json:"representante,omitempty"`
	TelefonoRepresentante *string   `json:"telefono_representante,omitempty"`
	TorneoID              int       `json:"torneo_id"`
	LogoKey               *string   `json:"-"`
	LogoURL               *string   `json:"logo_url,omitempty"`
	CreatedAt             time.Time `json:"creado_en"`
	UpdatedAt             time.Time `json:"actualizado_en"`

	// Enriched read-only fields.
	TorneoNombre   *string `json:"torneo_nombre,omitempty"`
	TotalJugadores *int    `json:"total_jugadores,omitempty"`
}
