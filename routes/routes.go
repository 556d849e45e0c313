package routes

import (
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/parischit85-sketch/play-sport-pro-sub002/handlers"
	"github.com/parischit85-sketch/play-sport-pro-sub002/middleware"
)

func SetupRoutes(
	router *chi.Mux,
	auth *middleware.Authenticator,
	authHandler *handlers.AuthHandler,
	matchHandler *handlers.MatchHandler,
	championshipHandler *handlers.ChampionshipHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Post("/auth/signup", authHandler.SignUp)
	router.Post("/auth/signin", authHandler.SignIn)

	router.Route("/clubs/{clubID}", func(r chi.Router) {
		// Public reads.
		r.Get("/leaderboard", championshipHandler.GetLeaderboard)
		r.Get("/players/{playerID}/history", championshipHandler.GetPlayerHistory)
		r.Get("/tournaments/{tournamentID}/matches", matchHandler.ListResults)

		// Authenticated writes and admin views. Club-level role checks
		// happen inside the handlers against membership documents.
		r.Group(func(r chi.Router) {
			r.Use(auth.Authenticate)

			r.Post("/tournaments/{tournamentID}/matches", matchHandler.RecordResult)
			r.Delete("/tournaments/{tournamentID}/matches/{matchID}", matchHandler.DeleteResult)

			r.Get("/tournaments/{tournamentID}/points", championshipHandler.PreviewPoints)
			r.Post("/tournaments/{tournamentID}/points/apply", championshipHandler.Apply)
			r.Post("/tournaments/{tournamentID}/points/revert", championshipHandler.Revert)
			r.Post("/tournaments/{tournamentID}/points/export", championshipHandler.ExportAudit)
		})
	})

	router.Get("/ws/{clubID}", webSocketHandler.ServeWs)

	router.Get("/swagger/*", httpSwagger.Handler())
}
