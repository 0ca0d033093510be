package server

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/Tomlord1122/todo-api/internal/auth"
	"github.com/Tomlord1122/todo-api/internal/config"
	"github.com/Tomlord1122/todo-api/internal/database"
	"github.com/Tomlord1122/todo-api/internal/service"
)

// Dependencies are the collaborators the HTTP layer needs.
type Dependencies struct {
	DB          database.Service
	Identity    auth.Identity
	TodoService service.TodoService
	AuthService service.AuthService
	Logger      *slog.Logger
}

type Server struct {
	port         int
	todoService  service.TodoService
	authService  service.AuthService
	identity     auth.Identity
	db           database.Service
	logger       *slog.Logger
	corsOrigins  []string
	sessionTTL   time.Duration
	secureCookie bool
}

func newServer(cfg config.Config, deps Dependencies) *Server {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		port:         cfg.HTTP.Port,
		todoService:  deps.TodoService,
		authService:  deps.AuthService,
		identity:     deps.Identity,
		db:           deps.DB,
		logger:       logger,
		corsOrigins:  cfg.CORS.AllowedOrigins,
		sessionTTL:   cfg.Auth.SessionTTL,
		secureCookie: cfg.Auth.SecureCookie,
	}
}

// NewServer builds the http.Server serving the todo API.
func NewServer(cfg config.Config, deps Dependencies) *http.Server {
	appServer := newServer(cfg, deps)

	return &http.Server{
		Addr:         fmt.Sprintf(":%d", appServer.port),
		Handler:      appServer.RegisterRoutes(),
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}
}
