package services

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/ligasport/torneos-api/models"
	"github.com/ligasport/torneos-api/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUploader struct {
	objects map[string][]byte
	deleted []string
}

func newFakeUploader() *fakeUploader {
	return &fakeUploader{objects: make(map[string][]byte)}
}

func (u *fakeUploader) Upload(_ context.Context, key, _ string, reader io.Reader) (*storage.UploadResult, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}
	u.objects[key] = data
	return &storage.UploadResult{Key: key, Location: u.GetPublicURL(key)}, nil
}

func (u *fakeUploader) Delete(_ context.Context, key string) error {
	delete(u.objects, key)
	u.deleted = append(u.deleted, key)
	return nil
}

func (u *fakeUploader) GetPublicURL(key string) string {
	return "https://cdn.test/" + key
}

type teamFixture struct {
	tournamentRepo *fakeTournamentRepo
	teamRepo       *fakeTeamRepo
	playerRepo     *fakePlayerRepo
	uploader       *fakeUploader
	svc            TeamService

	torneo *models.Tournament
}

func newTeamFixture(uploader *fakeUploader) *teamFixture {
	tournamentRepo := newFakeTournamentRepo()
	teamRepo := newFakeTeamRepo()
	playerRepo := newFakePlayerRepo()

	torneo := tournamentRepo.add(&models.Tournament{
		Nombre:        "Apertura 2026",
		Disciplina:    "fútbol",
		Estado:        models.TournamentPlanificado,
		OrganizadorID: 7,
	})

	var fu storage.FileUploader
	if uploader != nil {
		fu = uploader
	}

	return &teamFixture{
		tournamentRepo: tournamentRepo,
		teamRepo:       teamRepo,
		playerRepo:     playerRepo,
		uploader:       uploader,
		svc:            NewTeamService(teamRepo, tournamentRepo, playerRepo, fu),
		torneo:         torneo,
	}
}

func TestTeamCreate(t *testing.T) {
	fx := newTeamFixture(nil)

	equipo, err := fx.svc.Create(context.Background(), adminIdentity(), CreateTeamInput{
		Nombre:   "Rojo",
		TorneoID: fx.torneo.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, fx.torneo.ID, equipo.TorneoID)
}

func TestTeamCreateMissingTournament(t *testing.T) {
	fx := newTeamFixture(nil)

	_, err := fx.svc.Create(context.Background(), adminIdentity(), CreateTeamInput{
		Nombre:   "Rojo",
		TorneoID: 99,
	})
	assert.ErrorIs(t, err, ErrTournamentNotFound)
}

func TestTeamCreateNameConflict(t *testing.T) {
	fx := newTeamFixture(nil)
	fx.teamRepo.add(&models.Team{Nombre: "Rojo", TorneoID: fx.torneo.ID})

	_, err := fx.svc.Create(context.Background(), adminIdentity(), CreateTeamInput{
		Nombre:   "Rojo",
		TorneoID: fx.torneo.ID,
	})
	assert.ErrorIs(t, err, ErrTeamNameConflict)
}

func TestTeamCreateOwnershipScope(t *testing.T) {
	fx := newTeamFixture(nil)
	ajeno := Identity{UserID: 99, RolNombre: models.RoleOrganizador}

	_, err := fx.svc.Create(context.Background(), ajeno, CreateTeamInput{
		Nombre:   "Rojo",
		TorneoID: fx.torneo.ID,
	})
	assert.ErrorIs(t, err, ErrForbiddenOperation)

	duenio := Identity{UserID: 7, RolNombre: models.RoleOrganizador}
	_, err = fx.svc.Create(context.Background(), duenio, CreateTeamInput{
		Nombre:   "Rojo",
		TorneoID: fx.torneo.ID,
	})
	assert.NoError(t, err)
}

func TestTeamUpdatePatch(t *testing.T) {
	fx := newTeamFixture(nil)
	color := "rojo"
	equipo := fx.teamRepo.add(&models.Team{Nombre: "Rojo", Color: &color, TorneoID: fx.torneo.ID})

	nombre := "Rojo FC"
	updated, err := fx.svc.Update(context.Background(), adminIdentity(), equipo.ID, UpdateTeamInput{
		Nombre: &nombre,
	})
	require.NoError(t, err)
	assert.Equal(t, "Rojo FC", updated.Nombre)
	require.NotNil(t, updated.Color)
	assert.Equal(t, "rojo", *updated.Color)
}

func TestTeamListPlayersMissingTeam(t *testing.T) {
	fx := newTeamFixture(nil)

	_, _, err := fx.svc.ListPlayers(context.Background(), 99)
	assert.ErrorIs(t, err, ErrTeamNotFound)
}

func TestTeamUploadLogo(t *testing.T) {
	uploader := newFakeUploader()
	fx := newTeamFixture(uploader)
	equipo := fx.teamRepo.add(&models.Team{Nombre: "Rojo", TorneoID: fx.torneo.ID})

	updated, err := fx.svc.UploadLogo(context.Background(), adminIdentity(), equipo.ID, LogoUpload{
		Filename:    "escudo.png",
		ContentType: "image/png",
		Size:        1024,
		Reader:      bytes.NewReader([]byte("png-bytes")),
	})
	require.NoError(t, err)
	require.NotNil(t, updated.LogoURL)
	assert.Contains(t, *updated.LogoURL, "https://cdn.test/equipos/")
	assert.Len(t, uploader.objects, 1)
}

func TestTeamUploadLogoReplacesPrevious(t *testing.T) {
	uploader := newFakeUploader()
	fx := newTeamFixture(uploader)
	oldKey := "equipos/1/logo-old.png"
	uploader.objects[oldKey] = []byte("old")
	equipo := fx.teamRepo.add(&models.Team{Nombre: "Rojo", TorneoID: fx.torneo.ID, LogoKey: &oldKey})

	_, err := fx.svc.UploadLogo(context.Background(), adminIdentity(), equipo.ID, LogoUpload{
		Filename:    "escudo.png",
		ContentType: "image/png",
		Size:        1024,
		Reader:      bytes.NewReader([]byte("new")),
	})
	require.NoError(t, err)
	assert.Contains(t, uploader.deleted, oldKey)
}

func TestTeamUploadLogoValidation(t *testing.T) {
	uploader := newFakeUploader()
	fx := newTeamFixture(uploader)
	equipo := fx.teamRepo.add(&models.Team{Nombre: "Rojo", TorneoID: fx.torneo.ID})

	t.Run("rejects non-image content", func(t *testing.T) {
		_, err := fx.svc.UploadLogo(context.Background(), adminIdentity(), equipo.ID, LogoUpload{
			Filename:    "doc.pdf",
			ContentType: "application/pdf",
			Size:        1024,
			Reader:      bytes.NewReader([]byte("pdf")),
		})
		assert.ErrorIs(t, err, ErrLogoInvalidType)
	})

	t.Run("rejects oversized file", func(t *testing.T) {
		_, err := fx.svc.UploadLogo(context.Background(), adminIdentity(), equipo.ID, LogoUpload{
			Filename:    "enorme.png",
			ContentType: "image/png",
			Size:        MaxLogoSizeBytes + 1,
			Reader:      bytes.NewReader([]byte("png")),
		})
		assert.ErrorIs(t, err, ErrLogoTooLarge)
	})
}

func TestTeamLogoStorageDisabled(t *testing.T) {
	fx := newTeamFixture(nil)
	equipo := fx.teamRepo.add(&models.Team{Nombre: "Rojo", TorneoID: fx.torneo.ID})

	_, err := fx.svc.UploadLogo(context.Background(), adminIdentity(), equipo.ID, LogoUpload{
		Filename:    "escudo.png",
		ContentType: "image/png",
		Size:        1024,
		Reader:      bytes.NewReader([]byte("png")),
	})
	assert.ErrorIs(t, err, ErrStorageDisabled)

	_, err = fx.svc.DeleteLogo(context.Background(), adminIdentity(), equipo.ID)
	assert.ErrorIs(t, err, ErrStorageDisabled)
}

func TestTeamDeleteLogo(t *testing.T) {
	uploader := newFakeUploader()
	fx := newTeamFixture(uploader)
	key := "equipos/1/logo.png"
	uploader.objects[key] = []byte("png")
	equipo := fx.teamRepo.add(&models.Team{Nombre: "Rojo", TorneoID: fx.torneo.ID, LogoKey: &key})

	updated, err := fx.svc.DeleteLogo(context.Background(), adminIdentity(), equipo.ID)
	require.NoError(t, err)
	assert.Nil(t, updated.LogoURL)
	assert.Contains(t, uploader.deleted, key)
}
