package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/ayush/microblog/backend/internal/accounts"
	"github.com/ayush/microblog/backend/internal/config"
	"github.com/ayush/microblog/backend/internal/messages"
	mw "github.com/ayush/microblog/backend/internal/middleware"
	"github.com/ayush/microblog/backend/internal/store"
)

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("load config")
	}
	if level, err := zerolog.ParseLevel(cfg.Log.Level); err == nil {
		logger = logger.Level(level)
	}

	ctx := context.Background()

	// ── PostgreSQL ────────────────────────────────────────────
	pool, err := pgxpool.New(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal().Err(err).Msg("postgres connect")
	}
	defer pool.Close()
	pg := store.NewPostgresStore(pool)
	if err := pg.Migrate(ctx); err != nil {
		logger.Fatal().Err(err).Msg("postgres migrate")
	}

	// ── Services ─────────────────────────────────────────────
	accountService := accounts.NewService(pg, logger)
	messageService := messages.NewService(pg, accountService, logger)

	// ── Handlers ─────────────────────────────────────────────
	accountHandler := accounts.NewHandler(accountService)
	messageHandler := messages.NewHandler(messageService)

	// ── Router ───────────────────────────────────────────────
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(mw.RequestLogger(logger))
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Server.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Post("/register", accountHandler.Register)
	r.Post("/login", accountHandler.Login)

	r.Route("/messages", func(r chi.Router) {
		r.Post("/", messageHandler.Create)
		r.Get("/", messageHandler.GetAll)
		r.Get("/{message_id}", messageHandler.GetByID)
		r.Patch("/{message_id}", messageHandler.UpdateText)
		r.Delete("/{message_id}", messageHandler.DeleteByID)
	})
	r.Get("/accounts/{account_id}/messages", messageHandler.GetByAuthor)

	// ── Server ───────────────────────────────────────────────
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		logger.Info().Str("port", cfg.Server.Port).Msg("backend listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down")
	shutCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	srv.Shutdown(shutCtx)
}
