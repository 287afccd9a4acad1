package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/libshelf/apiserver/config"
	"github.com/libshelf/apiserver/internal/db"
	"github.com/libshelf/apiserver/internal/handlers"
	"github.com/libshelf/apiserver/internal/services"
	"github.com/libshelf/apiserver/internal/store"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
)

// Server wraps the HTTP server and router.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	db         *mongo.Database
	log        zerolog.Logger
}

// New constructs a Server with basic middleware and defaults.
func New(ctx context.Context, cfg config.Config, log zerolog.Logger) (*Server, error) {
	database, err := db.Open(ctx, cfg)
	if err != nil {
		if database == nil {
			return nil, err
		}
		// Match long-standing behavior: an unreachable database at boot is
		// logged, not fatal. The driver reconnects per operation.
		log.Warn().Err(err).Msg("database unreachable at startup")
	}

	jwtSecret := strings.TrimSpace(os.Getenv("JWT_SECRET_KEY"))
	if jwtSecret == "" {
		return nil, errors.New("JWT_SECRET_KEY is required")
	}

	userRepo := store.NewUserRepository(database)
	adminRepo := store.NewAdminRepository(database)
	bookRepo := store.NewBookRepository(database)
	transactionRepo := store.NewTransactionRepository(database)

	userService := services.NewUserService(userRepo)
	adminService := services.NewAdminService(adminRepo, cfg.BcryptCost)
	bookService := services.NewBookService(bookRepo)
	transactionService := services.NewTransactionService(transactionRepo)

	userHandler := handlers.NewUserHandler(userService, log)
	adminHandler := handlers.NewAdminHandler(adminService, log)
	bookHandler := handlers.NewBookHandler(bookService, log)
	transactionHandler := handlers.NewTransactionHandler(transactionService, log)
	authHandler := handlers.NewAuthHandler(adminService, jwtSecret, log)

	authMiddleware := handlers.RequireAuth(jwtSecret, log)

	router := chi.NewRouter()
	router.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
		middleware.Timeout(60*time.Second),
	)
	router.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.Health)
		handlers.AuthRouter(r, authHandler, adminHandler)
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			handlers.UserRouter(r, userHandler)
			handlers.AdminRouter(r, adminHandler)
			handlers.BookRouter(r, bookHandler)
			handlers.TransactionRouter(r, transactionHandler)
		})
	})

	port := cfg.ServerPort
	if port == 0 {
		port = 5000
	}

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Server{
		httpServer: httpServer,
		router:     router,
		db:         database,
		log:        log,
	}, nil
}

// Router exposes the chi router for route registration.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// Start runs the HTTP server.
func (s *Server) Start() error {
	s.log.Info().Str("addr", s.httpServer.Addr).Msg("listening")
	return s.httpServer.ListenAndServe()
}

// Shutdown attempts a graceful shutdown.
func (s *Server) Shutdown() error {
	if s.db != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.db.Client().Disconnect(ctx)
	}
	return s.httpServer.Close()
}
