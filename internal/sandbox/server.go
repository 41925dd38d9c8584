// Package sandbox is a local stand-in for the grocery REST backend. It serves
// the same four endpoints under /api, backed by memory or SQLite, and can
// inject latency and failures to exercise client error handling.
package sandbox

import (
	"context"
	"errors"
	"log/slog"
	"math/rand"
	"net"
	"net/url"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/Ratio1/grocery_manager_go/internal/groceryapi"
	"github.com/Ratio1/grocery_manager_go/pkg/grocery"
)

// Config tunes the sandbox behaviour.
type Config struct {
	// Latency is added before every API request.
	Latency time.Duration
	Failure FailConfig
	// Rand returns values in [0,1) for failure sampling. Defaults to math/rand/v2.
	Rand func() float64
}

// Server serves a grocery.Backend over HTTP.
type Server struct {
	app    *fiber.App
	store  grocery.Backend
	cfg    Config
	logger *slog.Logger
}

// New builds the fiber app and registers all routes.
func New(store grocery.Backend, cfg Config, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Rand == nil {
		cfg.Rand = rand.Float64
	}
	s := &Server{store: store, cfg: cfg, logger: logger}
	s.app = fiber.New(fiber.Config{
		AppName:               "grocery-sandbox",
		DisableStartupMessage: true,
		// Params are stored by the backends and must outlive the request buffer.
		Immutable:    true,
		ErrorHandler: s.handleError,
	})
	s.app.Use(recover.New())
	s.app.Use(s.logRequests)
	s.app.Use(cors.New())
	s.routes()
	return s
}

func (s *Server) routes() {
	s.app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := s.app.Group("/api", s.inject)
	api.Get("/getdata", s.listItems)
	api.Post("/postdata", s.createItem)
	api.Put("/update/:id", s.updateItem)
	api.Delete("/delete/:id", s.deleteItem)
}

// App exposes the fiber app, mainly for app.Test.
func (s *Server) App() *fiber.App { return s.app }

// Listen serves on addr until Shutdown.
func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

// Serve serves on an existing listener until Shutdown.
func (s *Server) Serve(ln net.Listener) error {
	return s.app.Listener(ln)
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

func (s *Server) listItems(c *fiber.Ctx) error {
	items, err := s.store.List(c.UserContext())
	if err != nil {
		return storeError(err)
	}
	return c.JSON(groceryapi.ResultEnvelope[[]grocery.Item]{Result: items})
}

func (s *Server) createItem(c *fiber.Ctx) error {
	var item grocery.Item
	if err := c.BodyParser(&item); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid item: "+err.Error())
	}
	if item.ID.IsZero() {
		return fiber.NewError(fiber.StatusBadRequest, "item id is required")
	}
	if err := s.store.Create(c.UserContext(), item); err != nil {
		return storeError(err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Item added successfully"})
}

func (s *Server) updateItem(c *fiber.Ctx) error {
	var item grocery.Item
	if err := c.BodyParser(&item); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid item: "+err.Error())
	}
	// The path names the record; a body id is ignored.
	id, err := paramID(c)
	if err != nil {
		return err
	}
	item.ID = id
	if err := s.store.Update(c.UserContext(), item); err != nil {
		return storeError(err)
	}
	return c.JSON(fiber.Map{"message": "Item updated successfully"})
}

func (s *Server) deleteItem(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	if err := s.store.Delete(c.UserContext(), id); err != nil {
		return storeError(err)
	}
	return c.JSON(fiber.Map{"message": "Item deleted successfully"})
}

// paramID decodes the percent-encoded :id segment, so ids containing "/",
// "?" or "#" round-trip.
func paramID(c *fiber.Ctx) (grocery.ID, error) {
	raw := c.Params("id")
	id, err := url.PathUnescape(raw)
	if err != nil {
		return "", fiber.NewError(fiber.StatusBadRequest, "invalid item id "+raw)
	}
	return grocery.ID(id), nil
}

// inject applies the configured latency and failure rate.
func (s *Server) inject(c *fiber.Ctx) error {
	if d := s.cfg.Latency; d > 0 {
		timer := time.NewTimer(d)
		select {
		case <-timer.C:
		case <-c.UserContext().Done():
			timer.Stop()
			return c.UserContext().Err()
		}
	}
	if s.cfg.Failure.Enabled() && s.cfg.Rand() < s.cfg.Failure.Rate {
		s.logger.Warn("failure injected", "method", c.Method(), "path", c.Path(), "status", s.cfg.Failure.Code)
		return fiber.NewError(s.cfg.Failure.Code, "failure injected")
	}
	return c.Next()
}

// logRequests logs one line per request. Errors are rendered here so the
// logged status matches what the client receives.
func (s *Server) logRequests(c *fiber.Ctx) error {
	start := time.Now()
	if err := c.Next(); err != nil {
		if herr := s.handleError(c, err); herr != nil {
			return herr
		}
	}
	s.logger.Info("request",
		"method", c.Method(),
		"path", c.Path(),
		"status", c.Response().StatusCode(),
		"latency", time.Since(start),
	)
	return nil
}

func (s *Server) handleError(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		message = fe.Message
	} else {
		s.logger.Error("request failed", "method", c.Method(), "path", c.Path(), "error", err)
	}
	return c.Status(code).JSON(fiber.Map{"error": message})
}

func storeError(err error) error {
	switch {
	case errors.Is(err, grocery.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, "item not found")
	case errors.Is(err, grocery.ErrConflict):
		return fiber.NewError(fiber.StatusConflict, "item already exists")
	case errors.Is(err, grocery.ErrMissingID):
		return fiber.NewError(fiber.StatusBadRequest, "item id is required")
	default:
		return err
	}
}
