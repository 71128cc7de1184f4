package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/beastgym/apiserver/config"
	"github.com/beastgym/apiserver/internal/auth"
	"github.com/beastgym/apiserver/internal/db"
	"github.com/beastgym/apiserver/internal/handlers"
	"github.com/beastgym/apiserver/internal/mq"
	"github.com/beastgym/apiserver/internal/services"
	"github.com/beastgym/apiserver/internal/storage"
	"github.com/beastgym/apiserver/internal/store"
)

// Server wraps the HTTP server and router.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	db         *sql.DB
	bus        *mq.Bus
}

// New constructs a Server with basic middleware and defaults. The
// session secret is required: starting without one is a configuration
// error, not something to discover on the first login.
func New(ctx context.Context, cfg config.Config) (*Server, error) {
	codec, err := auth.NewCodec(cfg.SessionSecret, auth.DefaultTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("SESSION_SECRET is required: %w", err)
	}

	dbConn, err := db.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}

	images, err := newImageStore(ctx, cfg)
	if err != nil {
		_ = dbConn.Close()
		return nil, err
	}

	bus, err := newBus(ctx, cfg)
	if err != nil {
		_ = dbConn.Close()
		return nil, err
	}

	accountRepo := store.NewAccountRepository(dbConn)
	memberRepo := store.NewMemberRepository(dbConn)
	trainerRepo := store.NewTrainerRepository(dbConn)
	sessionRepo := store.NewSessionRepository(dbConn)
	wellnessRepo := store.NewWellnessRepository(dbConn)

	accountService := services.NewAccountService(accountRepo)
	memberService := services.NewMemberService(memberRepo)
	trainerService := services.NewTrainerService(trainerRepo)
	sessionService := services.NewSessionService(sessionRepo, bus)
	wellnessService := services.NewWellnessService(wellnessRepo)

	authHandler := handlers.NewAuthHandler(accountService, codec, cfg.IsProduction())

	adminGuards := []func(http.Handler) http.Handler{
		handlers.RequireAuth(codec, auth.AdminCookie),
		handlers.RequireRole(auth.RoleSuperAdmin),
	}
	trainerGuards := []func(http.Handler) http.Handler{
		handlers.RequireAuth(codec, auth.TrainerCookie),
		handlers.RequireRole(auth.RoleTrainer),
	}

	router := chi.NewRouter()
	router.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
		middleware.Timeout(60*time.Second),
	)
	router.Get("/healthz", handlers.Healthz)
	router.Route("/auth", func(r chi.Router) {
		handlers.AuthRouter(r, authHandler)
	})
	router.Route("/members", func(r chi.Router) {
		handlers.MemberRouter(r, memberService, adminGuards...)
	})
	router.Route("/trainers", func(r chi.Router) {
		handlers.TrainerRouter(r, trainerService, adminGuards...)
	})
	router.Route("/sessions", func(r chi.Router) {
		handlers.SessionRouter(r, sessionService, trainerService, adminGuards...)
	})
	router.Route("/wellness", func(r chi.Router) {
		handlers.WellnessRouter(r, wellnessService, trainerService, adminGuards...)
	})
	router.Route("/uploads", func(r chi.Router) {
		handlers.UploadRouter(r, images, adminGuards...)
	})
	router.Route("/trainer", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			handlers.TrainerAuthRouter(r, authHandler)
		})
		r.Route("/sessions", func(r chi.Router) {
			handlers.TrainerSessionRouter(r, sessionService, trainerService, trainerGuards...)
		})
		r.Route("/wellness", func(r chi.Router) {
			handlers.TrainerWellnessRouter(r, wellnessService, trainerService, trainerGuards...)
		})
	})

	port := cfg.ServerPort
	if port == 0 {
		port = 8080
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
		db:         dbConn,
		bus:        bus,
	}, nil
}

func newImageStore(ctx context.Context, cfg config.Config) (*storage.ImageStore, error) {
	var backend storage.ObjectStorage
	switch cfg.Storage.Backend {
	case "gcs":
		gcs, err := storage.NewGCSClient(ctx, cfg.Storage.GCS)
		if err != nil {
			return nil, err
		}
		backend = gcs
	default:
		minioClient, err := storage.NewMinioClient(cfg.Storage.Minio)
		if err != nil {
			return nil, err
		}
		backend = minioClient
	}

	images := storage.NewImageStore(backend)
	if err := images.EnsureBucket(ctx); err != nil {
		return nil, err
	}
	return images, nil
}

func newBus(ctx context.Context, cfg config.Config) (*mq.Bus, error) {
	switch cfg.MQ.Backend {
	case "rabbitmq":
		client, err := mq.NewRabbitMQClient(cfg.MQ.RabbitMQ)
		if err != nil {
			return nil, err
		}
		return mq.NewBus(client), nil
	case "pubsub":
		client, err := mq.NewPubSubClient(ctx, cfg.MQ.PubSub)
		if err != nil {
			return nil, err
		}
		return mq.NewBus(client), nil
	case "none", "":
		return nil, nil
	default:
		return nil, errors.New("unknown mq backend: " + cfg.MQ.Backend)
	}
}

// Router exposes the chi router for route registration.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// Start runs the HTTP server.
func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown attempts a graceful shutdown.
func (s *Server) Shutdown() error {
	if s.bus != nil {
		_ = s.bus.Close()
	}
	if s.db != nil {
		_ = s.db.Close()
	}
	return s.httpServer.Close()
}
