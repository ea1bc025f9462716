// Package web wires the fiber application: middleware, handlers, startup
// and graceful shutdown.
package web

import (
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberrecover "github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/chao-eng/mdblog/internal/config"
	loggeradapter "github.com/chao-eng/mdblog/internal/logger/adapter/fiber"
	adminarticle "github.com/chao-eng/mdblog/internal/web/handler/admin/article"
	"github.com/chao-eng/mdblog/internal/web/handler/admin/settings/analytics"
	"github.com/chao-eng/mdblog/internal/web/handler/admin/settings/comments"
	"github.com/chao-eng/mdblog/internal/web/handler/admin/settings/objectstorage"
	authhandler "github.com/chao-eng/mdblog/internal/web/handler/auth"
	"github.com/chao-eng/mdblog/internal/web/handler/blog"
	"github.com/chao-eng/mdblog/internal/web/handler/profile"
	"github.com/chao-eng/mdblog/internal/web/handler/shortlink"
	"github.com/chao-eng/mdblog/internal/web/handler/travel"
)

// Service represents the web service.
type Service struct {
	App *fiber.App
	cfg *config.Config
	db  *gorm.DB
}

// Start starts the web service on the given address.
func (s *Service) Start(addr string) error {
	var doneFiber = make(chan bool)

	go func() {
		if err := s.App.Listen(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Msgf("fiber listen error: %v", err)
		}

		doneFiber <- true
	}()

	<-doneFiber // wait for fiber to stop

	return nil
}

// WaitShutdown waits for graceful shutdown of the web service.
func (s *Service) WaitShutdown() {
	irqSig := make(chan os.Signal, 1)
	signal.Notify(irqSig, syscall.SIGINT, syscall.SIGTERM)

	sig := <-irqSig
	log.Info().Msgf("shutdown request (signal: %v)", sig)

	if s.cfg.Webserver.ShutDownTime > 0 {
		log.Info().Msgf(
			"graceful shutdown: waiting %d seconds before closing",
			s.cfg.Webserver.ShutDownTime,
		)

		time.Sleep(time.Duration(s.cfg.Webserver.ShutDownTime) * time.Second)
	}

	serverShutdown := make(chan struct{})

	go func() {
		log.Info().Msg("stopping http server ...")

		err := s.App.Shutdown()
		if err != nil {
			log.Error().Err(err).Msg("")
		}

		serverShutdown <- struct{}{}
	}()

	<-serverShutdown
	log.Info().Msg("http server was stopped ... good bye...")
}

// New creates a new web service with the given configuration.
func New(cfg *config.Config, db *gorm.DB) *Service {
	if cfg == nil {
		panic("config cannot be nil")
	}

	if db == nil {
		panic("db cannot be nil")
	}

	app := fiber.New(
		fiber.Config{
			ReadBufferSize: 8192,
			AppName:        cfg.Title,
			CaseSensitive:  true,
			Prefork:        false,
			Immutable:      true,
		},
	)

	if !cfg.Webserver.DisableRecover {
		app.Use(fiberrecover.New())
	}

	// access log
	app.Use(loggeradapter.New(loggeradapter.Config{Config: cfg.Log}))

	service := &Service{
		cfg: cfg,
		App: app,
		db:  db,
	}

	// init handlers (they register their own routes and guards)
	mustInit := func(name string, err error) {
		if err != nil {
			log.Fatal().Err(err).Str("handler", name).Msg("handler init failed")
		}
	}

	mustInit("auth", authhandler.Handler.Init(app, cfg, db))
	mustInit("profile", profile.Handler.Init(app, cfg, db))
	mustInit("admin/article", adminarticle.Handler.Init(app, cfg, db))
	mustInit("settings/comments", comments.Handler.Init(app, cfg, db))
	mustInit("settings/analytics", analytics.Handler.Init(app, cfg, db))
	mustInit("settings/objectstorage", objectstorage.Handler.Init(app, cfg, db))
	mustInit("blog", blog.Handler.Init(app, cfg, db))
	mustInit("shortlink", shortlink.Handler.Init(app, cfg, db))
	mustInit("travel", travel.Handler.Init(app, cfg, db))

	return service
}
