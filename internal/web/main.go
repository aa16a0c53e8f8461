// Package web assembles the fiber application: middleware, the JSON API,
// the blog pages and the operations endpoints.
package web

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/unilabvision/myuni/internal/captcha"
	"github.com/unilabvision/myuni/internal/config"
	"github.com/unilabvision/myuni/internal/filestore"
	fiberlogger "github.com/unilabvision/myuni/internal/logger/adapter/fiber"
	"github.com/unilabvision/myuni/internal/mail"
	"github.com/unilabvision/myuni/internal/ratelimit"
	"github.com/unilabvision/myuni/internal/web/handler"
	"github.com/unilabvision/myuni/internal/web/handler/aichat"
	"github.com/unilabvision/myuni/internal/web/handler/auth"
	oidchandler "github.com/unilabvision/myuni/internal/web/handler/auth/oidc"
	"github.com/unilabvision/myuni/internal/web/handler/blog"
	"github.com/unilabvision/myuni/internal/web/handler/certificate"
	"github.com/unilabvision/myuni/internal/web/handler/comments"
	"github.com/unilabvision/myuni/internal/web/handler/discountcodes"
	"github.com/unilabvision/myuni/internal/web/handler/forms"
	"github.com/unilabvision/myuni/internal/web/handler/internship"
	"github.com/unilabvision/myuni/internal/web/handler/newsletter"
	authmw "github.com/unilabvision/myuni/internal/web/middleware/auth"
	"github.com/unilabvision/myuni/internal/web/templates"
)

const (
	// CheckAlivePath answers load balancer health checks.
	CheckAlivePath = handler.RootPath + "checkalive"

	// MetricsPath exposes the prometheus metrics.
	MetricsPath = handler.RootPath + "metrics"
)

var (
	_ handler.Service = (*blog.Service)(nil)
	_ handler.Service = (*comments.Service)(nil)
	_ handler.Service = (*discountcodes.Service)(nil)
)

// Deps are the collaborators shared by the handlers. Notifier and Limiter
// are required, the others disable their feature when nil.
type Deps struct {
	Notifier mail.Notifier
	Limiter  ratelimit.RateLimiter
	Captcha  captcha.Verifier
	Files    filestore.Store
	Chat     aichat.Replier
	OIDC     oidchandler.Provider
}

// Service represents the web service.
type Service struct {
	App          *fiber.App
	cfg          *config.Config
	fastShutDown bool
	alive        atomic.Bool
	db           *gorm.DB
}

// Start starts the web service on the given address.
func (s *Service) Start(addr string) error {
	var doneFiber = make(chan bool)

	s.alive.Store(true)

	go func() {
		if err := s.App.Listen(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Msgf("fiber listen error: %v", err)
		}

		doneFiber <- true
	}()

	<-doneFiber // wait for fiber to stop

	return nil
}

// Addr returns the listen address of the configured port.
func (s *Service) Addr() string {
	return fmt.Sprintf(":%d", s.cfg.Webserver.Port)
}

// WaitShutdown waits for SIGINT or SIGTERM and stops the server.
func (s *Service) WaitShutdown() {
	irqSig := make(chan os.Signal, 1)
	signal.Notify(irqSig, syscall.SIGINT, syscall.SIGTERM)

	sig := <-irqSig
	log.Info().Msgf("shutdown request (signal: %v)", sig)

	// Graceful shutdown for reverse proxies: set status to fail, so checkalive returns fail.
	if !s.fastShutDown {
		log.Info().Msgf(
			"graceful shutdown: return 503 while %d seconds to let LB to remove this pod from active targets",
			s.cfg.Webserver.ShutDownTime,
		)

		s.alive.Store(false)
		time.Sleep(time.Duration(s.cfg.Webserver.ShutDownTime) * time.Second)
	}

	serverShutdown := make(chan struct{})

	go func() {
		log.Info().Msg("stopping http server ...")

		if err := s.App.Shutdown(); err != nil {
			log.Error().Err(err).Msg("")
		}

		serverShutdown <- struct{}{}
	}()

	<-serverShutdown
	log.Info().Msg("http server was stopped ... good bye...")
}

// CheckAlive returns 200 while serving and 503 once shutdown started.
func (s *Service) CheckAlive(c *fiber.Ctx) error {
	if !s.alive.Load() {
		return c.Status(fiber.StatusServiceUnavailable).SendString("shutting down")
	}

	return c.SendString("OK")
}

// New creates the web service with every route registered.
func New(cfg *config.Config, db *gorm.DB, deps Deps) *Service {
	if cfg == nil {
		panic("config cannot be nil")
	}

	if db == nil {
		panic("db cannot be nil")
	}

	if cfg.DevMode {
		log.Warn().Msg("dev mode enabled: using local filesystem for templates")
	}

	bodyLimit := cfg.Webserver.BodyLimit
	if bodyLimit <= 0 {
		bodyLimit = config.DefaultBodyLimit
	}

	if bodyLimit < forms.MaxBodySize {
		log.Warn().Int("body_limit", bodyLimit).Int("max_form_body", forms.MaxBodySize).Msg("body limit is below the largest valid form submission")
	}

	app := fiber.New(
		fiber.Config{
			ReadBufferSize: 8192,
			AppName:        cfg.Title,
			CaseSensitive:  true,
			Prefork:        false,
			Immutable:      true,
			BodyLimit:      bodyLimit,
			ErrorHandler:   handler.ErrorHandler,
			Views:          templates.NewEngine(cfg.DevMode),
		},
	)

	service := &Service{
		cfg:          cfg,
		App:          app,
		db:           db,
		fastShutDown: cfg.DevMode,
	}
	service.alive.Store(true)

	if !cfg.Webserver.DisableRecover {
		app.Use(recover.New())
	}

	app.Use(fiberlogger.New(fiberlogger.Config{
		Config:        cfg.Log,
		CheckAliveURI: CheckAlivePath,
	}))

	app.Use("/static",
		filesystem.New(
			filesystem.Config{
				Root:       http.FS(embeddedStaticFiles),
				PathPrefix: "static",
				Browse:     cfg.DevMode,
			},
		),
	)

	app.Use(authmw.Sessions{CookieName: cfg.Webserver.Session.CookieName, DB: db}.Load)

	app.Get(CheckAlivePath, service.CheckAlive)
	app.Get(MetricsPath, adaptor.HTTPHandler(promhttp.Handler()))

	aichat.Handler.Init(app, cfg, db, deps.Chat)
	comments.Handler.Init(app, cfg, db)
	forms.Handler.Init(app, cfg, db, deps.Notifier, deps.Files)
	newsletter.Handler.Init(app, cfg, db, deps.Notifier, deps.Limiter, deps.Captcha)
	internship.Handler.Init(app, cfg, db, deps.Notifier)
	discountcodes.Handler.Init(app, cfg, db)
	certificate.Handler.Init(app, cfg, deps.Notifier)
	auth.Handler.Init(app, cfg, db, deps.Limiter)
	oidchandler.Handler.Init(app, cfg, deps.OIDC)
	blog.Handler.Init(app, cfg, db)

	app.Get(handler.RootPath, func(c *fiber.Ctx) error {
		return c.Redirect(blog.Path)
	})

	return service
}
