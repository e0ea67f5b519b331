package services

import "github.com/ligasport/torneos-api/models"

// Identity is the authenticated caller, as decoded from the bearer token.
type Identity struct {
	UserID    int
	Email     string
	RolID     int
	RolNombre string
}

func (i Identity) IsAdmin() bool {
	return i.RolNombre == models.RoleAdmin
}

// Capability enumerates every mutation the API gates. Read endpoints are
// either public or require only authentication.
type Capability int

const (
	CapManageTournament Capability = iota // create/update torneos
	CapDeleteTournament
	CapManageTeam
	CapManagePlayer
	CapManageMatch // create/update partidos
	CapDeleteMatch
	CapManageEvent // create/update eventos
	CapDeleteEvent
	CapManageUsers
)

// Allows is the single authorization predicate: may identity exercise cap
// over a resource whose governing tournament is organized by ownerID?
// Pass ownerID 0 when ownership does not apply (creation, admin surfaces).
//
// Admins bypass ownership. Organizers are scoped to their own tournaments.
// Delegates manage matches, events and rosters anywhere, but never the
// tournament lifecycle. Participants are read-only.
func Allows(identity Identity, ownerID int, cap Capability) bool {
	if identity.IsAdmin() {
		return true
	}

	owns := ownerID != 0 && ownerID == identity.UserID

	switch identity.RolNombre {
	case models.RoleOrganizador:
		switch cap {
		case CapDeleteTournament, CapManageUsers:
			return false
		case CapManageTournament, CapManageTeam, CapManagePlayer,
			CapManageMatch, CapDeleteMatch, CapManageEvent, CapDeleteEvent:
			return ownerID == 0 || owns
		}
	case models.RoleDelegado:
		switch cap {
		case CapManageMatch, CapManageEvent, CapManagePlayer:
			return true
		}
	}

	return false
}
