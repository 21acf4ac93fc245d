// Package server exposes a field over HTTP: well listings, summaries,
// rendered SVG frames and click picking.
package server

import (
	"log/slog"
	"sync"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/san-kum/wellview/internal/field"
	"github.com/san-kum/wellview/internal/render"
	"github.com/san-kum/wellview/internal/scene"
)

type Options struct {
	Width, Height float64
	ReadTimeout   time.Duration
	WriteTimeout  time.Duration
	Logger        *slog.Logger
}

// Server owns one field and the path cache computed from it. Handlers
// serialize on mu, so the cache and builder need no locking of their own.
type Server struct {
	mu      sync.Mutex
	field   *field.Field
	cache   *scene.PathCache
	builder *render.Builder
	opt     Options
	log     *slog.Logger
	app     *fiber.App
}

func New(f *field.Field, b *render.Builder, opt Options) *Server {
	if opt.Width <= 0 {
		opt.Width = 800
	}
	if opt.Height <= 0 {
		opt.Height = 600
	}
	if opt.Logger == nil {
		opt.Logger = slog.Default()
	}
	if b == nil {
		b = render.NewBuilder()
	}

	s := &Server{
		field:   f,
		cache:   scene.NewPathCache(),
		builder: b,
		opt:     opt,
		log:     opt.Logger,
	}
	s.cache.Warm(f.Wells)

	s.app = fiber.New(fiber.Config{
		ReadTimeout:  opt.ReadTimeout,
		WriteTimeout: opt.WriteTimeout,
		AppName:      "wellview",
	})

	s.app.Use(recover.New())
	s.app.Use(Logger())

	s.app.Get("/health/live", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "alive"})
	})
	s.app.Get("/health/ready", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ready"})
	})

	api := s.app.Group("/api/v1")
	api.Get("/wells", s.ListWells)
	api.Get("/wells/:id/summary", s.WellSummary)
	api.Get("/wells/:id/path", s.WellPath)
	api.Get("/render.svg", s.RenderSVG)
	api.Post("/pick", s.Pick)

	return s
}

// App returns the underlying fiber app.
func (s *Server) App() *fiber.App { return s.app }

func (s *Server) Listen(addr string) error {
	s.log.Info("starting server", "addr", addr, "wells", len(s.field.Wells))
	return s.app.Listen(addr)
}

func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// SetField swaps in a reloaded field. Paths of wells whose survey did not
// change stay cached.
func (s *Server) SetField(f *field.Field) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.field.Replace(f)
	s.cache.Warm(s.field.Wells)
	s.log.Info("field reloaded", "wells", len(s.field.Wells))
}

// frame builds one frame for state. Callers hold mu.
func (s *Server) frame(state scene.ViewportState) (*scene.Scene, render.Frame) {
	sc := scene.Aggregate(s.field.Wells, s.cache)
	p := scene.NewProjector(sc.Bounds, s.opt.Width, s.opt.Height)
	return sc, s.builder.Build(sc, p, state, nil)
}
