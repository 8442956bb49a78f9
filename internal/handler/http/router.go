package http

import (
	"log/slog"
	"os"

	"github.com/bizprofile/bizprofile-backend-go/internal/config"
	"github.com/bizprofile/bizprofile-backend-go/internal/handler/http/middleware"
	"github.com/bizprofile/bizprofile-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(cfg *config.Config, jwtService jwt.Service, authHandler AuthHandler, profileHandler ProfileHandler) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "bizprofile"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.App.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.RefreshToken)
			r.Post("/logout", authHandler.Logout)
			r.Post("/verify-email", authHandler.VerifyEmail)
		})

		r.Route("/companies", func(r chi.Router) {
			// Public directory endpoints
			r.Get("/", profileHandler.Search)
			r.Get("/stats", profileHandler.Stats)
			r.Get("/name-available", profileHandler.NameAvailable)

			// Requires authentication
			r.Group(func(r chi.Router) {
				r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
				r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

				r.Post("/", profileHandler.Create)

				r.Route("/my", func(r chi.Router) {
					r.Get("/", profileHandler.GetMine)
					r.Put("/", profileHandler.Update)
					r.Delete("/", profileHandler.Delete)
					r.Put("/image", profileHandler.UploadImage)
				})
			})

			r.Get("/{id}", profileHandler.GetByID)
		})
	})
	return r
}
