package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"github.com/termdeck/termdeck-api/internal/api"
	apiMiddleware "github.com/termdeck/termdeck-api/internal/api/middleware"
	"github.com/termdeck/termdeck-api/internal/api/shared"
)

// setupRouter creates and configures the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(apiMiddleware.TraceMiddleware(app.logger))
	r.Use(apiMiddleware.RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(app.corsHandler().Handler)

	authHandler := api.NewAuthHandler(app.userService, app.jwtService, app.config.Auth, app.logger)
	termHandler := api.NewTermHandler(app.termService, app.logger)
	userHandler := api.NewUserHandler(app.userService, app.logger)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService, app.userService)

	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/refresh", authHandler.RefreshToken)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Post("/auth/logout", authHandler.Logout)

			r.Route("/terms", func(r chi.Router) {
				r.Get("/", termHandler.ListTerms)
				r.Post("/", termHandler.CreateTerm)
				r.Get("/for-learn", termHandler.ListForLearn)
				r.Get("/{id}", termHandler.GetTerm)
				r.Patch("/{id}", termHandler.UpdateTerm)
				r.Put("/{id}", termHandler.UpdateTerm)
				r.Patch("/{id}/level", termHandler.ChangeLevel)
				r.Delete("/{id}", termHandler.DeleteTerm)
			})

			r.Get("/users/current", userHandler.GetCurrentUser)
			r.Patch("/users/subscription", userHandler.UpdateSubscription)
			r.Delete("/users/me", userHandler.DeleteCurrentUser)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
	})

	return r
}

// corsHandler allows browser clients from the configured origins.
func (app *application) corsHandler() *cors.Cors {
	return cors.New(cors.Options{
		AllowedOrigins: app.config.CORS.AllowedOrigins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
		ExposedHeaders: []string{apiMiddleware.TraceIDHeader},
		MaxAge:         app.config.CORS.MaxAgeSeconds,
	})
}
