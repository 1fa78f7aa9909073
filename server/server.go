package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/memoflow/noted/server/profile"
	"github.com/memoflow/noted/store"
)

type Server struct {
	e *echo.Echo

	Profile    *profile.Profile
	Store      store.Store
	WebhookLog *store.WebhookLog

	logger *zap.Logger

	// createdByKey caches the first result for each Idempotency-Key so a
	// retried POST /notes does not create a second note.
	createMu     sync.Mutex
	createdByKey map[string]*store.Note
}

func NewServer(profile *profile.Profile, st store.Store, logger *zap.Logger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{
		e:            e,
		Profile:      profile,
		Store:        st,
		WebhookLog:   store.NewWebhookLog(),
		logger:       logger,
		createdByKey: map[string]*store.Note{},
	}

	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(s.requestLogger())

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	s.registerNoteRoutes(e)
	s.registerWebhookRoutes(e)
	s.registerFeedRoutes(e)

	return s
}

// ServeHTTP makes the server usable as a plain http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.e.ServeHTTP(w, r)
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.e.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("server shutdown", zap.Error(err))
		}
	}()

	addr := fmt.Sprintf("%s:%d", s.Profile.Addr, s.Profile.Port)
	s.logger.Info("server starting", zap.String("addr", addr), zap.String("mode", s.Profile.Mode))
	if err := s.e.Start(addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) requestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}
			s.logger.Info("request",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Request().URL.Path),
				zap.Int("status", c.Response().Status),
				zap.Duration("latency", time.Since(start)),
			)
			return err
		}
	}
}
