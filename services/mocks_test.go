package services

import (
	"context"

	"github.com/ligasport/torneos-api/models"
	"github.com/ligasport/torneos-api/repositories"
)

// In-memory repository fakes backing the service tests.

type fakeUserRepo struct {
	users  map[int]*models.User
	nextID int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int]*models.User), nextID: 1}
}

func (r *fakeUserRepo) add(user *models.User) *models.User {
	if user.ID == 0 {
		user.ID = r.nextID
		r.nextID++
	}
	r.users[user.ID] = user
	return user
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	for _, u := range r.users {
		if u.Email == user.Email {
			return repositories.ErrUserEmailConflict
		}
	}
	r.add(user)
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int) (*models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) List(_ context.Context) ([]models.User, error) {
	out := make([]models.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func (r *fakeUserRepo) EmailTaken(_ context.Context, email string, excludeID int) (bool, error) {
	for _, u := range r.users {
		if u.Email == email && u.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *models.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return repositories.ErrUserNotFound
	}
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) UpdatePassword(_ context.Context, id int, passwordHash string) error {
	user, ok := r.users[id]
	if !ok {
		return repositories.ErrUserNotFound
	}
	user.PasswordHash = passwordHash
	return nil
}

func (r *fakeUserRepo) SetActivo(_ context.Context, id int, activo bool) error {
	user, ok := r.users[id]
	if !ok {
		return repositories.ErrUserNotFound
	}
	user.Activo = activo
	return nil
}

type fakeTournamentRepo struct {
	tournaments map[int]*models.Tournament
	nextID      int
}

func newFakeTournamentRepo() *fakeTournamentRepo {
	return &fakeTournamentRepo{tournaments: make(map[int]*models.Tournament), nextID: 1}
}

func (r *fakeTournamentRepo) add(t *models.Tournament) *models.Tournament {
	if t.ID == 0 {
		t.ID = r.nextID
		r.nextID++
	}
	r.tournaments[t.ID] = t
	return t
}

func (r *fakeTournamentRepo) Create(_ context.Context, t *models.Tournament) error {
	for _, existing := range r.tournaments {
		if existing.OrganizadorID == t.OrganizadorID && existing.Nombre == t.Nombre {
			return repositories.ErrTournamentNameConflict
		}
	}
	r.add(t)
	return nil
}

func (r *fakeTournamentRepo) GetByID(_ context.Context, id int) (*models.Tournament, error) {
	t, ok := r.tournaments[id]
	if !ok {
		return nil, repositories.ErrTournamentNotFound
	}
	copied := *t
	return &copied, nil
}

func (r *fakeTournamentRepo) List(_ context.Context) ([]models.Tournament, error) {
	out := make([]models.Tournament, 0, len(r.tournaments))
	for _, t := range r.tournaments {
		out = append(out, *t)
	}
	return out, nil
}

func (r *fakeTournamentRepo) ListByOrganizador(_ context.Context, organizadorID int) ([]models.Tournament, error) {
	var out []models.Tournament
	for _, t := range r.tournaments {
		if t.OrganizadorID == organizadorID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (r *fakeTournamentRepo) ListByEstado(_ context.Context, estado models.TournamentStatus) ([]models.Tournament, error) {
	var out []models.Tournament
	for _, t := range r.tournaments {
		if t.Estado == estado {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (r *fakeTournamentRepo) Update(_ context.Context, t *models.Tournament) error {
	if _, ok := r.tournaments[t.ID]; !ok {
		return repositories.ErrTournamentNotFound
	}
	copied := *t
	r.tournaments[t.ID] = &copied
	return nil
}

func (r *fakeTournamentRepo) Delete(_ context.Context, id int) error {
	if _, ok := r.tournaments[id]; !ok {
		return repositories.ErrTournamentNotFound
	}
	delete(r.tournaments, id)
	return nil
}

type fakeTeamRepo struct {
	teams  map[int]*models.Team
	nextID int
}

func newFakeTeamRepo() *fakeTeamRepo {
	return &fakeTeamRepo{teams: make(map[int]*models.Team), nextID: 1}
}

func (r *fakeTeamRepo) add(t *models.Team) *models.Team {
	if t.ID == 0 {
		t.ID = r.nextID
		r.nextID++
	}
	r.teams[t.ID] = t
	return t
}

func (r *fakeTeamRepo) Create(_ context.Context, t *models.Team) error {
	for _, existing := range r.teams {
		if existing.TorneoID == t.TorneoID && existing.Nombre == t.Nombre {
			return repositories.ErrTeamNameConflict
		}
	}
	r.add(t)
	return nil
}

func (r *fakeTeamRepo) GetByID(_ context.Context, id int) (*models.Team, error) {
	t, ok := r.teams[id]
	if !ok {
		return nil, repositories.ErrTeamNotFound
	}
	copied := *t
	return &copied, nil
}

func (r *fakeTeamRepo) List(_ context.Context) ([]models.Team, error) {
	out := make([]models.Team, 0, len(r.teams))
	for _, t := range r.teams {
		out = append(out, *t)
	}
	return out, nil
}

func (r *fakeTeamRepo) ListByTorneo(_ context.Context, torneoID int) ([]models.Team, error) {
	var out []models.Team
	for _, t := range r.teams {
		if t.TorneoID == torneoID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (r *fakeTeamRepo) Update(_ context.Context, t *models.Team) error {
	if _, ok := r.teams[t.ID]; !ok {
		return repositories.ErrTeamNotFound
	}
	copied := *t
	r.teams[t.ID] = &copied
	return nil
}

func (r *fakeTeamRepo) UpdateLogoKey(_ context.Context, id int, logoKey *string) error {
	t, ok := r.teams[id]
	if !ok {
		return repositories.ErrTeamNotFound
	}
	t.LogoKey = logoKey
	return nil
}

func (r *fakeTeamRepo) Delete(_ context.Context, id int) error {
	if _, ok := r.teams[id]; !ok {
		return repositories.ErrTeamNotFound
	}
	delete(r.teams, id)
	return nil
}

type fakePlayerRepo struct {
	players map[int]*models.Player
	nextID  int
}

func newFakePlayerRepo() *fakePlayerRepo {
	return &fakePlayerRepo{players: make(map[int]*models.Player), nextID: 1}
}

func (r *fakePlayerRepo) add(p *models.Player) *models.Player {
	if p.ID == 0 {
		p.ID = r.nextID
		r.nextID++
	}
	r.players[p.ID] = p
	return p
}

func (r *fakePlayerRepo) Create(_ context.Context, p *models.Player) error {
	for _, existing := range r.players {
		if existing.EquipoID == p.EquipoID && existing.NroCamiseta == p.NroCamiseta {
			return repositories.ErrPlayerCamisetaConflict
		}
	}
	r.add(p)
	return nil
}

func (r *fakePlayerRepo) GetByID(_ context.Context, id int) (*models.Player, error) {
	p, ok := r.players[id]
	if !ok {
		return nil, repositories.ErrPlayerNotFound
	}
	copied := *p
	return &copied, nil
}

func (r *fakePlayerRepo) List(_ context.Context) ([]models.Player, error) {
	out := make([]models.Player, 0, len(r.players))
	for _, p := range r.players {
		out = append(out, *p)
	}
	return out, nil
}

func (r *fakePlayerRepo) ListByEquipo(_ context.Context, equipoID int) ([]models.Player, error) {
	var out []models.Player
	for _, p := range r.players {
		if p.EquipoID == equipoID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakePlayerRepo) Update(_ context.Context, p *models.Player) error {
	if _, ok := r.players[p.ID]; !ok {
		return repositories.ErrPlayerNotFound
	}
	copied := *p
	r.players[p.ID] = &copied
	return nil
}

func (r *fakePlayerRepo) Delete(_ context.Context, id int) error {
	if _, ok := r.players[id]; !ok {
		return repositories.ErrPlayerNotFound
	}
	delete(r.players, id)
	return nil
}

type fakeMatchRepo struct {
	matches  map[int]*models.Match
	nextID   int
	teamRepo *fakeTeamRepo
}

func newFakeMatchRepo(teamRepo *fakeTeamRepo) *fakeMatchRepo {
	return &fakeMatchRepo{matches: make(map[int]*models.Match), nextID: 1, teamRepo: teamRepo}
}

func (r *fakeMatchRepo) add(m *models.Match) *models.Match {
	if m.ID == 0 {
		m.ID = r.nextID
		r.nextID++
	}
	r.matches[m.ID] = m
	return m
}

func (r *fakeMatchRepo) Create(_ context.Context, m *models.Match) error {
	if m.EquipoLocalID == m.EquipoVisitanteID {
		return repositories.ErrMatchSameTeams
	}
	r.add(m)
	return nil
}

func (r *fakeMatchRepo) GetByID(_ context.Context, id int) (*models.Match, error) {
	m, ok := r.matches[id]
	if !ok {
		return nil, repositories.ErrMatchNotFound
	}
	copied := *m
	return &copied, nil
}

func (r *fakeMatchRepo) List(_ context.Context) ([]models.Match, error) {
	out := make([]models.Match, 0, len(r.matches))
	for _, m := range r.matches {
		out = append(out, *m)
	}
	return out, nil
}

func (r *fakeMatchRepo) ListByTorneo(_ context.Context, torneoID int) ([]models.Match, error) {
	var out []models.Match
	for _, m := range r.matches {
		if m.TorneoID == torneoID {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (r *fakeMatchRepo) ListByEquipo(_ context.Context, equipoID int) ([]models.Match, error) {
	var out []models.Match
	for _, m := range r.matches {
		if m.EquipoLocalID == equipoID || m.EquipoVisitanteID == equipoID {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (r *fakeMatchRepo) Update(_ context.Context, m *models.Match) error {
	if _, ok := r.matches[m.ID]; !ok {
		return repositories.ErrMatchNotFound
	}
	copied := *m
	r.matches[m.ID] = &copied
	return nil
}

func (r *fakeMatchRepo) Delete(_ context.Context, id int) error {
	if _, ok := r.matches[id]; !ok {
		return repositories.ErrMatchNotFound
	}
	delete(r.matches, id)
	return nil
}

func (r *fakeMatchRepo) TeamsInTournament(_ context.Context, torneoID, equipoLocalID, equipoVisitanteID int) (bool, error) {
	count := 0
	for _, t := range r.teamRepo.teams {
		if t.TorneoID == torneoID && (t.ID == equipoLocalID || t.ID == equipoVisitanteID) {
			count++
		}
	}
	return count == 2, nil
}

type fakeEventRepo struct {
	events     map[int]*models.MatchEvent
	nextID     int
	matchRepo  *fakeMatchRepo
	playerRepo *fakePlayerRepo
}

func newFakeEventRepo(matchRepo *fakeMatchRepo, playerRepo *fakePlayerRepo) *fakeEventRepo {
	return &fakeEventRepo{
		events:     make(map[int]*models.MatchEvent),
		nextID:     1,
		matchRepo:  matchRepo,
		playerRepo: playerRepo,
	}
}

func (r *fakeEventRepo) Create(_ context.Context, e *models.MatchEvent) error {
	if e.ID == 0 {
		e.ID = r.nextID
		r.nextID++
	}
	r.events[e.ID] = e
	return nil
}

func (r *fakeEventRepo) GetByID(_ context.Context, id int) (*models.MatchEvent, error) {
	e, ok := r.events[id]
	if !ok {
		return nil, repositories.ErrEventNotFound
	}
	copied := *e
	return &copied, nil
}

func (r *fakeEventRepo) List(_ context.Context) ([]models.MatchEvent, error) {
	out := make([]models.MatchEvent, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, *e)
	}
	return out, nil
}

func (r *fakeEventRepo) ListByPartido(_ context.Context, partidoID int) ([]models.MatchEvent, error) {
	var out []models.MatchEvent
	for _, e := range r.events {
		if e.PartidoID == partidoID {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (r *fakeEventRepo) Update(_ context.Context, e *models.MatchEvent) error {
	if _, ok := r.events[e.ID]; !ok {
		return repositories.ErrEventNotFound
	}
	copied := *e
	r.events[e.ID] = &copied
	return nil
}

func (r *fakeEventRepo) Delete(_ context.Context, id int) error {
	if _, ok := r.events[id]; !ok {
		return repositories.ErrEventNotFound
	}
	delete(r.events, id)
	return nil
}

func (r *fakeEventRepo) PlayerInMatch(_ context.Context, jugadorID, partidoID int) (bool, error) {
	match, ok := r.matchRepo.matches[partidoID]
	if !ok {
		return false, nil
	}
	player, ok := r.playerRepo.players[jugadorID]
	if !ok {
		return false, nil
	}
	return player.EquipoID == match.EquipoLocalID || player.EquipoID == match.EquipoVisitanteID, nil
}

func (r *fakeEventRepo) GoleadoresByPartido(_ context.Context, partidoID int) ([]models.Goleador, error) {
	return r.goleadores(func(e *models.MatchEvent) bool { return e.PartidoID == partidoID }), nil
}

func (r *fakeEventRepo) GoleadoresByTorneo(_ context.Context, torneoID int) ([]models.Goleador, error) {
	return r.goleadores(func(e *models.MatchEvent) bool {
		match, ok := r.matchRepo.matches[e.PartidoID]
		return ok && match.TorneoID == torneoID
	}), nil
}

func (r *fakeEventRepo) goleadores(include func(*models.MatchEvent) bool) []models.Goleador {
	byPlayer := make(map[int]*models.Goleador)
	for _, e := range r.events {
		if e.Tipo != models.EventGol || !include(e) {
			continue
		}
		g, ok := byPlayer[e.JugadorID]
		if !ok {
			player := r.playerRepo.players[e.JugadorID]
			g = &models.Goleador{JugadorID: e.JugadorID}
			if player != nil {
				g.JugadorNombre = player.NombreCompleto()
				g.NroCamiseta = player.NroCamiseta
			}
			byPlayer[e.JugadorID] = g
		}
		g.Goles++
	}
	out := make([]models.Goleador, 0, len(byPlayer))
	for _, g := range byPlayer {
		out = append(out, *g)
	}
	return out
}
