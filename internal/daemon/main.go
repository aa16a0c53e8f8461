// Package daemon wires the configured collaborators into the web service.
package daemon

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"
	sessionmysql "github.com/gofiber/storage/mysql/v2"
	sessionpostgres "github.com/gofiber/storage/postgres/v3"
	"github.com/rs/zerolog/log"
	gormmysql "gorm.io/driver/mysql"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/unilabvision/myuni/internal/config"
	"github.com/unilabvision/myuni/internal/db/dsn"
	"github.com/unilabvision/myuni/internal/db/models"
	gormlog "github.com/unilabvision/myuni/internal/logger/adapter/gorm"
	"github.com/unilabvision/myuni/internal/web"
	"github.com/unilabvision/myuni/internal/web/session"
)

const (
	enginePostgres = "postgres"
	sessionTable   = "sessions"
)

// Daemon represents the main application daemon.
type Daemon struct {
	webService *web.Service
}

// Start serves until SIGINT or SIGTERM and then shuts down gracefully.
func (d *Daemon) Start() error {
	go d.webService.WaitShutdown()

	return d.webService.Start(d.webService.Addr())
}

// New opens and migrates the database, builds the collaborators and the web
// service.
func New(ctx context.Context, cfg *config.Config) (*Daemon, error) {
	if cfg == nil {
		return nil, ErrConfigNil
	}

	db, err := openDB(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	if err = db.AutoMigrate(models.All()...); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	if err = seed(cfg, db); err != nil {
		return nil, fmt.Errorf("failed to seed database: %w", err)
	}

	session.Init(openSessionStorage(cfg))

	deps, err := newDeps(ctx, cfg, db)
	if err != nil {
		return nil, err
	}

	return &Daemon{webService: web.New(cfg, db, deps)}, nil
}

func openDB(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector

	if cfg.DB.GormEngine == enginePostgres {
		dialector = gormpostgres.Open(dsn.Create(cfg))
	} else {
		dialector = gormmysql.Open(dsn.Create(cfg))
	}

	return gorm.Open(dialector, &gorm.Config{
		Logger:         gormlog.NewGlobal(cfg.DB.LogLevel),
		TranslateError: true,
	})
}

// openSessionStorage keeps sessions in the application database.
func openSessionStorage(cfg *config.Config) fiber.Storage {
	uri := dsn.Create(cfg)

	log.Info().Str("engine", cfg.DB.GormEngine).Str("table", sessionTable).Msg("session storage")

	if cfg.DB.GormEngine == enginePostgres {
		return sessionpostgres.New(sessionpostgres.Config{
			ConnectionURI: uri,
			Table:         sessionTable,
		})
	}

	return sessionmysql.New(sessionmysql.Config{
		ConnectionURI: uri,
		Table:         sessionTable,
	})
}
