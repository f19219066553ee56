package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/lumishot/lumishot/internal/httpapi"
	"github.com/lumishot/lumishot/internal/storage"
	"github.com/lumishot/lumishot/internal/studio"
	"github.com/lumishot/lumishot/pkg/billing"
	"github.com/lumishot/lumishot/pkg/config"
	"github.com/lumishot/lumishot/pkg/entitlement"
	"github.com/lumishot/lumishot/pkg/genai"
	"github.com/lumishot/lumishot/pkg/httpserver"
	"github.com/lumishot/lumishot/pkg/imagecdn"
	"github.com/lumishot/lumishot/pkg/logger"
	"github.com/lumishot/lumishot/pkg/mailer"
	"github.com/lumishot/lumishot/pkg/pg"
	"github.com/lumishot/lumishot/pkg/ratelimit"
	"github.com/lumishot/lumishot/pkg/redis"
	"github.com/lumishot/lumishot/pkg/usage"
)

type appConfig struct {
	Logger    logger.Config
	Postgres  pg.Config
	Redis     redis.Config
	HTTP      httpserver.Config
	Auth      httpapi.AuthConfig
	CORS      httpapi.CORSConfig
	Usage     usage.Config
	GenAI     genai.Config
	CDN       imagecdn.Config
	Paddle    billing.PaddleConfig
	Mailer    mailer.Config
	RateLimit ratelimit.Config

	PlansPath  string `env:"PLANS_PATH"` // Optional YAML catalog; compiled-in defaults otherwise.
	UpgradeURL string `env:"UPGRADE_URL" envDefault:"https://lumishot.app/upgrade"`
	DevMailDir string `env:"DEV_MAIL_DIR"` // When set, emails go to disk instead of Postmark.
}

func main() {
	ctx := context.Background()

	var cfg appConfig
	config.MustLoad(&cfg)

	log := logger.NewFromConfig(cfg.Logger, logger.WithAttr(slog.String("app", "lumishot")))

	if err := run(ctx, cfg, log); err != nil {
		log.ErrorContext(ctx, "server exited with error", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg appConfig, log *slog.Logger) error {
	loc, err := cfg.Usage.Location()
	if err != nil {
		return err
	}

	pool, err := pg.Connect(ctx, cfg.Postgres)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := pg.Migrate(ctx, pool, cfg.Postgres, log); err != nil {
		return err
	}

	rdb, err := redis.Connect(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	defer rdb.Close()

	// Plan catalog: YAML file when configured, compiled-in defaults otherwise.
	source := entitlement.Source(entitlement.NewInMemSource(entitlement.DefaultPlans()))
	if cfg.PlansPath != "" {
		source = entitlement.NewYAMLSource(cfg.PlansPath)
	}
	catalog, err := entitlement.NewCatalog(ctx, source, entitlement.DefaultPlanID)
	if err != nil {
		return err
	}

	users := storage.NewUserRepo(pool, catalog.Lowest().ID)
	shoots := storage.NewShootRepo(pool)
	usageStore := usage.NewPostgresStore(pool, loc)

	gate := entitlement.NewGate(catalog, usageStore, nil, entitlement.WithLogger(log))
	recorder := usage.NewRecorder(usageStore, log)

	generator, err := genai.New(cfg.GenAI)
	if err != nil {
		return err
	}

	uploader, err := imagecdn.NewS3Uploader(ctx, cfg.CDN)
	if err != nil {
		return err
	}

	studioSvc := studio.New(gate, generator, uploader, shoots, recorder, studio.WithLogger(log))

	paddle, err := billing.NewPaddleProvider(cfg.Paddle)
	if err != nil {
		return err
	}
	billingSvc := billing.NewService(paddle, catalog, users, billing.WithLogger(log))

	var sender mailer.Sender
	if cfg.DevMailDir != "" {
		sender = mailer.NewDevSender(cfg.DevMailDir)
	} else {
		sender, err = mailer.NewPostmarkSender(cfg.Mailer)
		if err != nil {
			return err
		}
	}
	nudger := httpapi.NewNudger(rdb, sender, catalog, loc, cfg.UpgradeURL, log)

	limiter, err := ratelimit.New(ratelimit.NewRedisStore(rdb, "ratelimit"), cfg.RateLimit)
	if err != nil {
		return err
	}

	router := httpapi.NewRouter(httpapi.Deps{
		Studio:      studioSvc,
		Gate:        gate,
		Catalog:     catalog,
		Billing:     billingSvc,
		Users:       users,
		Nudger:      nudger,
		RateLimiter: limiter,
		Auth:        cfg.Auth,
		CORS:        cfg.CORS,
		Health: []func(context.Context) error{
			pg.Healthcheck(pool),
			redis.Healthcheck(rdb),
		},
		Log: log,
	})

	srv := httpserver.New(cfg.HTTP, httpserver.WithLogger(log))
	return srv.Run(ctx, router)
}
