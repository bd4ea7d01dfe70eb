package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/rlewis2892/creepy-octo-meow/internal/application/ports"
	"github.com/rlewis2892/creepy-octo-meow/internal/application/profile"
	"github.com/rlewis2892/creepy-octo-meow/internal/config"
	httprouter "github.com/rlewis2892/creepy-octo-meow/internal/infrastructure/http"
	"github.com/rlewis2892/creepy-octo-meow/internal/infrastructure/http/handlers"
	"github.com/rlewis2892/creepy-octo-meow/internal/infrastructure/http/middleware"
	"github.com/rlewis2892/creepy-octo-meow/internal/infrastructure/mail"
	"github.com/rlewis2892/creepy-octo-meow/internal/infrastructure/persistence/postgres"
	"github.com/rlewis2892/creepy-octo-meow/internal/infrastructure/security"
	"github.com/rlewis2892/creepy-octo-meow/internal/infrastructure/session"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.Database.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("connect to database")
	}
	defer pool.Close()
	if err := pool.Ping(ctx); err != nil {
		log.Fatal().Err(err).Msg("ping database")
	}
	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("run migrations")
	}

	var redisClient *redis.Client
	if cfg.Redis.URL != "" {
		opt, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("parse REDIS_URL")
		}
		redisClient = redis.NewClient(opt)
		defer redisClient.Close()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Warn().Err(err).Msg("redis ping failed; continuing without redis")
			redisClient = nil
		}
	}

	var sessions ports.SessionStore
	if redisClient != nil {
		sessions = session.NewRedisStore(redisClient, cfg.Session.TTL)
	} else {
		log.Warn().Msg("using in-memory session store; sessions do not survive restarts")
		sessions = session.NewMemoryStore(cfg.Session.TTL)
	}

	var mailer ports.ActivationMailer
	if cfg.SMTP.Addr != "" {
		mailer = mail.NewSMTPMailer(mail.SMTPMailerConfig{
			Addr:              cfg.SMTP.Addr,
			SenderName:        cfg.SMTP.SenderName,
			SenderAddr:        cfg.SMTP.SenderAddr,
			CopySender:        cfg.SMTP.CopySender,
			ActivationBaseURL: cfg.SMTP.ActivationBaseURL,
		}, log)
	} else {
		log.Warn().Msg("SMTP_ADDR not set; activation links are logged instead of mailed")
		mailer = mail.NewLogMailer(log)
	}

	profiles := postgres.NewProfileRepository(pool)

	params := security.DefaultPBKDF2Params()
	params.Iterations = cfg.PBKDF2.Iterations
	hasher := security.NewPBKDF2Hasher(params)

	signupUC := profile.NewSignup(profiles, hasher, mailer)
	signinUC := profile.NewSignin(profiles, hasher, sessions)
	activateUC := profile.NewActivate(profiles)
	updateUC := profile.NewUpdateProfile(profiles, hasher)

	secureCookies := !cfg.Server.IsDevelopment
	guard := middleware.NewForgeryGuard(secureCookies)
	sessionLoader := middleware.NewSessionLoader(sessions)

	ipLimit, err := middleware.NewIPRateLimiter(cfg.Server.RateLimitPerIP)
	if err != nil {
		log.Fatal().Err(err).Msg("create IP rate limiter")
	}
	secureMiddleware := middleware.NewSecure(middleware.SecureOptions(cfg.Server.IsDevelopment))
	corsMiddleware := middleware.CORS(cfg.Server.AllowedOrigins, nil, nil)

	authHandler := handlers.NewAuthHandler(signupUC, signinUC, activateUC, sessions, secureCookies, cfg.Session.TTL, log)
	profileHandler := handlers.NewProfileHandler(profiles, updateUC, guard, log)
	healthHandler := handlers.NewHealthHandler(pool, redisClient)

	router := httprouter.NewRouter(httprouter.RouterConfig{
		AuthHandler:    authHandler,
		ProfileHandler: profileHandler,
		HealthHandler:  healthHandler,
		SessionLoader:  sessionLoader,
		Guard:          guard,
		CORS:           corsMiddleware,
		Log:            log,
		Secure:         secureMiddleware,
		IPRateLimit:    ipLimit,
		Metrics:        cfg.Server.Metrics,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
	log.Info().Msg("server stopped")
}
