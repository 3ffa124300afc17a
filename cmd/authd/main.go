// Command authd serves the session API over HTTP. Configuration comes from
// the environment (optionally a .env file); the process refuses to start
// without a signing secret and a database DSN.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/plateful/authcore"
	"github.com/plateful/authcore/httpapi"
	"github.com/plateful/authcore/internal/logging"
	"github.com/plateful/authcore/store/gormstore"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Missing .env is fine in production; everything can come from the
	// real environment.
	_ = godotenv.Load()

	log := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))
	if err := run(log); err != nil {
		log.Error(context.Background(), "authd exited", "error", err)
		os.Exit(1)
	}
}

func run(log logging.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return errors.New("JWT_SECRET is required")
	}
	dsn := os.Getenv("DATABASE_DSN")
	if dsn == "" {
		return errors.New("DATABASE_DSN is required")
	}

	cfg := authcore.Config{
		Token: authcore.TokenConfig{Secret: []byte(secret)},
	}
	if ttl := os.Getenv("TOKEN_TTL"); ttl != "" {
		d, err := time.ParseDuration(ttl)
		if err != nil {
			return errors.New("TOKEN_TTL must be a duration, e.g. 1h")
		}
		cfg.Token.TTL = d
	}

	// TranslateError turns driver duplicate-key errors into
	// gorm.ErrDuplicatedKey, which gormstore depends on.
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return err
	}
	credStore, err := gormstore.New(db)
	if err != nil {
		return err
	}

	builder := authcore.New().
		WithConfig(cfg).
		WithCredentialStore(credStore).
		WithLogger(log)

	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		client := redis.NewClient(&redis.Options{Addr: addr, Password: os.Getenv("REDIS_PASSWORD")})
		if err := client.Ping(ctx).Err(); err != nil {
			return err
		}
		builder = builder.WithRedis(client)
		log.Info(ctx, "using redis revocation registry", "addr", addr)
	}

	svc, err := builder.Build()
	if err != nil {
		return err
	}
	defer svc.Close()

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	httpapi.New(svc, log).Register(e)

	port := os.Getenv("PORT")
	if port == "" {
		port = "2000"
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- e.Start(":" + port)
	}()
	log.Info(ctx, "authd listening", "port", port)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info(context.Background(), "shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
