package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/watersmet/identity/modules/authapi"
	"github.com/watersmet/identity/pkg/config"
	"github.com/watersmet/identity/pkg/email"
	"github.com/watersmet/identity/pkg/httpserver"
	"github.com/watersmet/identity/pkg/logger"
	"github.com/watersmet/identity/pkg/pg"
	"github.com/watersmet/identity/svc/auth"
	"github.com/watersmet/identity/svc/user"
)

const cacheSweepInterval = time.Minute

type appConfig struct {
	LogLevel    slog.Level    `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat   logger.Format `env:"LOG_FORMAT" envDefault:"json"`
	FrontendURL string        `env:"FRONTEND_URL"`

	HTTP  httpserver.Config
	JWT   auth.JWTConfig
	Email email.Config
}

func main() {
	ctx := context.Background()

	var cfg appConfig
	config.MustLoad(&cfg)

	log := logger.New(
		logger.WithLevel(cfg.LogLevel),
		logger.WithFormat(cfg.LogFormat),
		logger.WithAttr(logger.Component("identityd")),
	)

	store, cleanup, err := newStore(ctx, log)
	if err != nil {
		log.Error("store init failed", logger.Error(err))
		os.Exit(1)
	}
	defer cleanup()

	notifier := email.NewNotifier(newSender(cfg.Email, log))

	tokens, err := auth.NewTokenService(cfg.JWT, store)
	if err != nil {
		log.Error("token service init failed", logger.Error(err))
		os.Exit(1)
	}

	sweepStop := make(chan struct{})
	defer close(sweepStop)
	tokens.StartCacheSweeper(cacheSweepInterval, sweepStop)

	svc := auth.NewService(store, tokens, notifier, auth.WithLogger(log))

	module := authapi.New(svc, authapi.Options{
		Google:      newGoogleAdapter(log),
		FrontendURL: cfg.FrontendURL,
		Logger:      log,
	})

	if err := httpserver.Run(ctx, cfg.HTTP, module.Router(), log); err != nil {
		log.Error("server exited", logger.Error(err))
		os.Exit(1)
	}
}

// newStore connects to Postgres and runs migrations. Without a
// PG_CONN_URL the process falls back to the in-memory store, which is
// only good for local runs: every restart loses the users.
func newStore(ctx context.Context, log *slog.Logger) (user.Store, func(), error) {
	var cfg pg.Config
	if err := config.Load(&cfg); err != nil {
		log.Warn("no postgres configured, using in-memory store", logger.Error(err))
		return user.NewMemStore(), func() {}, nil
	}

	pool, err := pg.Connect(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	if err := pg.Migrate(ctx, pool, cfg, log); err != nil {
		pool.Close()
		return nil, nil, err
	}

	log.Info("connected to postgres")
	return user.NewPGStore(pool), pool.Close, nil
}

// newSender picks Postmark when tokens are present, otherwise the dev
// sender that writes emails to disk.
func newSender(cfg email.Config, log *slog.Logger) email.EmailSender {
	sender, err := email.NewPostmarkClient(cfg)
	if err != nil {
		log.Warn("postmark not configured, writing emails to disk",
			slog.String("dir", cfg.DevOutputDir), logger.Error(err))
		return email.NewDevSender(cfg.DevOutputDir)
	}
	return sender
}

// newGoogleAdapter is nil when the OAuth credentials are absent; the
// boundary then answers the Google routes with a provider error.
func newGoogleAdapter(log *slog.Logger) auth.ProviderAdapter {
	var cfg auth.GoogleOAuthConfig
	if err := config.Load(&cfg); err != nil {
		log.Warn("google oauth not configured", logger.Error(err))
		return nil
	}

	adapter, err := auth.NewGoogleAdapter(cfg)
	if err != nil {
		log.Warn("google oauth not configured", logger.Error(err))
		return nil
	}
	return adapter
}
