package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/ligasport/torneos-api/handlers"
	"github.com/ligasport/torneos-api/middleware"
	"github.com/ligasport/torneos-api/models"
	"github.com/ligasport/torneos-api/services"
)

type Handlers struct {
	Auth       *handlers.AuthHandler
	User       *handlers.UserHandler
	Tournament *handlers.TournamentHandler
	Team       *handlers.TeamHandler
	Player     *handlers.PlayerHandler
	Match      *handlers.MatchHandler
	Event      *handlers.EventHandler
}

func InitRoutes(h Handlers, authService services.AuthService) *chi.Mux {
	router := chi.NewRouter()

	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	authenticate := middleware.Authenticate(authService)
	adminOnly := middleware.RequireRoles(models.RoleAdmin)
	gestores := middleware.RequireRoles(models.RoleAdmin, models.RoleOrganizador)
	operadores := middleware.RequireRoles(models.RoleAdmin, models.RoleOrganizador, models.RoleDelegado)

	router.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Auth.Login)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Get("/perfil", h.Auth.GetPerfil)
			r.Put("/cambiar-password", h.Auth.ChangePassword)
		})
	})

	router.Route("/torneos", func(r chi.Router) {
		// Consultas públicas
		r.Get("/", h.Tournament.List)
		r.Get("/{id}", h.Tournament.GetByID)
		r.Get("/estado/{estado}", h.Tournament.ListByEstado)
		r.Get("/{id}/equipos", h.Tournament.ListEquipos)
		r.Get("/{id}/resumen", h.Tournament.GetResumen)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Get("/obtener/mis-torneos", h.Tournament.MisTorneos)
		})

		r.Group(func(r chi.Router) {
			r.Use(authenticate, gestores)
			r.Post("/", h.Tournament.Create)
			r.Put("/{id}", h.Tournament.Update)
		})

		r.Group(func(r chi.Router) {
			r.Use(authenticate, adminOnly)
			r.Delete("/{id}", h.Tournament.Delete)
		})
	})

	router.Route("/usuarios", func(r chi.Router) {
		r.Use(authenticate, adminOnly)
		r.Get("/", h.User.List)
		r.Post("/", h.User.Create)
		r.Get("/{id}", h.User.GetByID)
		r.Put("/{id}", h.User.Update)
		r.Delete("/{id}", h.User.Delete)
		r.Put("/{id}/password", h.User.UpdatePassword)
	})

	router.Route("/equipos", func(r chi.Router) {
		r.Get("/", h.Team.List)
		r.Get("/{id}", h.Team.GetByID)
		r.Get("/{id}/jugadores", h.Team.ListJugadores)

		r.Group(func(r chi.Router) {
			r.Use(authenticate, gestores)
			r.Post("/", h.Team.Create)
			r.Put("/{id}", h.Team.Update)
			r.Delete("/{id}", h.Team.Delete)
			r.Post("/{id}/logo", h.Team.UploadLogo)
			r.Delete("/{id}/logo", h.Team.DeleteLogo)
		})
	})

	router.Route("/jugadores", func(r chi.Router) {
		r.Get("/", h.Player.List)
		r.Get("/{id}", h.Player.GetByID)

		r.Group(func(r chi.Router) {
			r.Use(authenticate, operadores)
			r.Post("/", h.Player.Create)
			r.Put("/{id}", h.Player.Update)
			r.Delete("/{id}", h.Player.Delete)
		})
	})

	router.Route("/partidos", func(r chi.Router) {
		r.Get("/", h.Match.List)
		r.Get("/{id}", h.Match.GetByID)
		r.Get("/torneo/{torneoId}", h.Match.ListByTorneo)
		r.Get("/equipo/{equipoId}", h.Match.ListByEquipo)
		r.Get("/{id}/eventos", h.Match.ListEventos)

		r.Group(func(r chi.Router) {
			r.Use(authenticate, operadores)
			r.Post("/", h.Match.Create)
			r.Put("/{id}", h.Match.Update)
			r.Delete("/{id}", h.Match.Delete)
		})
	})

	router.Route("/eventos", func(r chi.Router) {
		r.Get("/", h.Event.List)
		r.Get("/{id}", h.Event.GetByID)
		r.Get("/partido/{partidoId}", h.Event.ListByPartido)
		r.Get("/partido/{partidoId}/goleadores", h.Event.GetGoleadores)

		r.Group(func(r chi.Router) {
			r.Use(authenticate, operadores)
			r.Post("/", h.Event.Create)
			r.Put("/{id}", h.Event.Update)
			r.Delete("/{id}", h.Event.Delete)
		})
	})

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"success":false,"message":"Ruta no encontrada"}`))
	})

	return router
}
