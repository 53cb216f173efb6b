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
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/imc/imc-api/internal/config"
	"github.com/imc/imc-api/internal/domain/auth"
	"github.com/imc/imc-api/internal/domain/booking"
	"github.com/imc/imc-api/internal/domain/dashboard"
	"github.com/imc/imc-api/internal/domain/equipment"
	"github.com/imc/imc-api/internal/domain/listing"
	"github.com/imc/imc-api/internal/domain/payment"
	"github.com/imc/imc-api/internal/domain/photography"
	"github.com/imc/imc-api/internal/domain/privatebooking"
	"github.com/imc/imc-api/internal/domain/singer"
	"github.com/imc/imc-api/internal/domain/singingclass"
	"github.com/imc/imc-api/internal/domain/sound"
	"github.com/imc/imc-api/internal/domain/studio"
	"github.com/imc/imc-api/internal/domain/user"
	"github.com/imc/imc-api/internal/domain/videography"
	"github.com/imc/imc-api/internal/jobs"
	"github.com/imc/imc-api/internal/middleware"
	"github.com/imc/imc-api/internal/pkg/database"
	"github.com/imc/imc-api/internal/pkg/email"
	"github.com/imc/imc-api/internal/pkg/imaging"
	"github.com/imc/imc-api/internal/pkg/jwt"
	pkgresponse "github.com/imc/imc-api/internal/pkg/response"
	"github.com/imc/imc-api/internal/pkg/storage"
	"github.com/imc/imc-api/internal/pkg/upload"
	"github.com/imc/imc-api/internal/realtime"
)

func main() {
	cfg := config.Load()
	setupLogger(cfg)

	log.Info().
		Str("env", cfg.Env).
		Str("port", cfg.Port).
		Msg("Starting IMC API")

	db, err := database.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer database.ClosePostgres(db)

	redisClient, err := database.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer database.CloseRedis(redisClient)

	jwtService := jwt.NewService(cfg.JWTSecret, cfg.JWTAccessTTL, cfg.JWTRefreshTTL)

	mailer := email.NewClient(email.Config{
		APIKey:    cfg.SendGridAPIKey,
		FromEmail: cfg.SendGridFromEmail,
		FromName:  cfg.SendGridFromName,
	})

	uploads := newUploadService(cfg)

	// ---------- Repositories ----------
	userRepo := user.NewRepository(db)
	studioRepo := studio.NewRepository(db)
	bookingRepo := booking.NewRepository(db)
	equipmentRepo := equipment.NewRepository(db)
	listingRepo := listing.NewRepository(db)
	paymentRepo := payment.NewRepository(db)
	photographyRepo := photography.NewRepository(db)
	videographyRepo := videography.NewRepository(db)
	soundRepo := sound.NewRepository(db)
	privateBookingRepo := privatebooking.NewRepository(db)
	singingClassRepo := singingclass.NewRepository(db)
	singerRepo := singer.NewRepository(db)

	// ---------- WebSocket hub ----------
	hub := realtime.NewHub(redisClient)
	go hub.Run()

	// ---------- Services ----------
	authService := auth.NewService(userRepo, jwtService, redisClient)
	resetService := auth.NewPasswordResetService(userRepo, redisClient, mailer, cfg.FrontendURL)
	userService := user.NewService(userRepo)
	bookingService := booking.NewService(bookingRepo, studioRepo, booking.GridConfig{
		Open:        cfg.BookingOpen,
		Close:       cfg.BookingClose,
		StepMinutes: cfg.BookingStepMinutes,
	}, redisClient, mailer, hub)
	equipmentService := equipment.NewService(equipmentRepo)

	// ---------- Handlers ----------
	authHandler := auth.NewHandler(authService, resetService)
	userHandler := user.NewHandler(userService)
	studioHandler := studio.NewHandler(studioRepo)
	bookingHandler := booking.NewHandler(bookingService)
	equipmentHandler := equipment.NewHandler(equipmentService, equipmentRepo, uploads)
	eventHandler := listing.NewHandler(listingRepo, listing.KindEvent)
	showHandler := listing.NewHandler(listingRepo, listing.KindShow)
	paymentHandler := payment.NewHandler(paymentRepo)
	photographyHandler := photography.NewHandler(photographyRepo)
	videographyHandler := videography.NewHandler(videographyRepo)
	soundHandler := sound.NewHandler(soundRepo)
	privateBookingHandler := privatebooking.NewHandler(privateBookingRepo)
	singingClassHandler := singingclass.NewHandler(singingClassRepo)
	singerHandler := singer.NewHandler(singerRepo, uploads)
	dashboardHandler := dashboard.NewHandler(bookingRepo, paymentRepo, equipmentRepo, listingRepo)
	realtimeHandler := realtime.NewHandler(hub, originChecker(cfg))

	authMiddleware := middleware.Auth(jwtService)
	staffOnly := middleware.RequireStaff()
	adminOnly := middleware.RequireAdmin()

	// ---------- Background jobs ----------
	scheduler := jobs.NewScheduler(bookingRepo, studioRepo, equipmentRepo, mailer)
	if err := scheduler.Start(); err != nil {
		log.Fatal().Err(err).Msg("Failed to start job scheduler")
	}

	// ---------- Router ----------
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recover)
	r.Use(middleware.CORSHandler(cfg.AllowedOrigins))

	// WebSocket endpoint (before Compress)
	r.Get("/ws/availability", realtimeHandler.Watch)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		pkgresponse.OK(w, map[string]string{
			"status":  "ok",
			"version": "1.0.0",
		})
	})

	if cfg.StorageBackend == "local" {
		r.Handle("/media/*", http.StripPrefix("/media/", http.FileServer(http.Dir(cfg.StoragePath))))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(chimw.Compress(5))

		r.Mount("/auth", authHandler.Routes(authMiddleware))
		r.Mount("/users", userHandler.Routes(authMiddleware, adminOnly))
		r.Mount("/studios", studioHandler.Routes(authMiddleware, staffOnly))
		r.Mount("/bookings", bookingHandler.Routes(authMiddleware, staffOnly))
		r.Mount("/equipment", equipmentHandler.Routes(authMiddleware, staffOnly))
		r.Mount("/events", eventHandler.Routes(authMiddleware, staffOnly))
		r.Mount("/shows", showHandler.Routes(authMiddleware, staffOnly))
		r.Mount("/payments", paymentHandler.Routes(authMiddleware, staffOnly))
		r.Mount("/photography", photographyHandler.Routes(authMiddleware, staffOnly))
		r.Mount("/videography", videographyHandler.Routes(authMiddleware, staffOnly))
		r.Mount("/sound", soundHandler.Routes(authMiddleware, staffOnly))
		r.Mount("/private-bookings", privateBookingHandler.Routes(authMiddleware, staffOnly))
		r.Mount("/singing-classes", singingClassHandler.Routes(authMiddleware, staffOnly))
		r.Mount("/singers", singerHandler.Routes(authMiddleware, staffOnly))
		r.Mount("/dashboard", dashboardHandler.Routes(authMiddleware, staffOnly))
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	scheduler.Stop()
	hub.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited properly")
}

// newUploadService builds the photo upload pipeline for the configured
// storage backend. Returns nil when storage is not configured, which
// disables the photo endpoints.
func newUploadService(cfg *config.Config) *upload.Service {
	var (
		store storage.Storage
		err   error
	)

	switch cfg.StorageBackend {
	case "s3":
		store, err = storage.NewS3Storage(storage.Config{
			S3Endpoint:  cfg.S3Endpoint,
			S3Region:    cfg.S3Region,
			S3Bucket:    cfg.S3Bucket,
			S3AccessKey: cfg.S3AccessKey,
			S3SecretKey: cfg.S3SecretKey,
			S3PublicURL: cfg.S3PublicURL,
		})
	case "local":
		store, err = storage.NewLocalStorage(cfg.StoragePath, cfg.StorageBaseURL)
	default:
		log.Warn().Str("backend", cfg.StorageBackend).Msg("Unknown storage backend, uploads disabled")
		return nil
	}
	if err != nil {
		log.Warn().Err(err).Msg("Storage init failed, uploads disabled")
		return nil
	}

	return upload.NewService(store, imaging.NewProcessor(imaging.DefaultConfig()))
}

// originChecker restricts WebSocket upgrades to the configured origins.
// Development mode accepts everything so local tooling works.
func originChecker(cfg *config.Config) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		if cfg.IsDevelopment() {
			return true
		}
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, allowed := range cfg.AllowedOrigins {
			if origin == allowed {
				return true
			}
		}
		return false
	}
}

func setupLogger(cfg *config.Config) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.IsDevelopment() {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: "15:04:05",
		})
	}
}
