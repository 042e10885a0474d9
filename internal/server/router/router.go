// Package router собирает HTTP API на chi
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/iudanet/socialhub/internal/server/handlers"
	"github.com/iudanet/socialhub/internal/server/middleware"
)

// Deps зависимости роутера
type Deps struct {
	Logger   *zap.Logger
	Auth     handlers.AuthService
	Users    handlers.UserService
	Posts    handlers.PostService
	Comments handlers.CommentService
	Verifier middleware.AccessVerifier
	DB       handlers.Pinger
	// AuthLimiter ограничивает /auth/*; nil отключает лимит
	AuthLimiter *middleware.RateLimiter
	Version     string
	CORSOrigins []string
	// TrustProxy берет адрес клиента из X-Forwarded-For / X-Real-IP; только за доверенным прокси
	TrustProxy bool
}

// New создает роутер со всеми маршрутами API
func New(d Deps) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	if d.TrustProxy {
		r.Use(chimw.RealIP)
	}
	r.Use(middleware.LoggingWithSkip(d.Logger, []string{"/health"}))
	r.Use(middleware.RecoveryMiddleware(d.Logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: d.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		handlers.WriteError(w, d.Logger, "route not found", http.StatusNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		handlers.WriteError(w, d.Logger, "method not allowed", http.StatusMethodNotAllowed)
	})

	requireAuth := middleware.AuthMiddleware(d.Logger, d.Verifier)

	health := handlers.NewHealthHandler(d.Logger, d.DB, d.Version)
	auth := handlers.NewAuthHandler(d.Logger, d.Auth)
	users := handlers.NewUserHandler(d.Logger, d.Users)
	posts := handlers.NewPostHandler(d.Logger, d.Posts)
	comments := handlers.NewCommentHandler(d.Logger, d.Comments)

	r.Get("/health", health.Health)

	r.Route("/auth", func(r chi.Router) {
		if d.AuthLimiter != nil {
			r.Use(d.AuthLimiter.Middleware)
		}
		r.Post("/register", auth.Register)
		r.Post("/login", auth.Login)
		r.Post("/refresh", auth.Refresh)
		r.With(requireAuth).Post("/logout", auth.Logout)
	})

	r.Route("/users", func(r chi.Router) {
		r.Post("/", users.Create)
		r.Get("/", users.List)
		r.Get("/{id}", users.Get)
		r.With(requireAuth).Put("/{id}", users.Update)
		r.With(requireAuth).Delete("/{id}", users.Delete)
	})

	r.Route("/post", func(r chi.Router) {
		r.Get("/", posts.List)
		r.Get("/{id}", posts.Get)
		r.With(requireAuth).Post("/", posts.Create)
		r.With(requireAuth).Put("/{id}", posts.Update)
		r.With(requireAuth).Delete("/{id}", posts.Delete)
	})

	r.Route("/comments", func(r chi.Router) {
		r.Get("/", comments.List)
		r.Get("/post/{postId}", comments.ListByPost)
		r.Get("/{id}", comments.Get)
		r.With(requireAuth).Post("/", comments.Create)
		r.With(requireAuth).Put("/{id}", comments.Update)
		r.With(requireAuth).Delete("/{id}", comments.Delete)
	})

	return r
}
