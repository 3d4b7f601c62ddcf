// Package httpapi exposes the session flows over HTTP: routing, cookie
// delivery, the JSON response envelope, and the central error handler.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/dmitrijs2005/videotube/internal/common"
	"github.com/dmitrijs2005/videotube/internal/logging"
	"github.com/dmitrijs2005/videotube/internal/server/config"
	"github.com/dmitrijs2005/videotube/internal/server/models"
	"github.com/dmitrijs2005/videotube/internal/server/services"
)

// SessionService is the slice of the user service the HTTP layer needs.
type SessionService interface {
	Register(ctx context.Context, in services.RegisterInput) (*models.User, error)
	Login(ctx context.Context, userName, email, password string) (*models.User, *services.TokenPair, error)
	Logout(ctx context.Context, userID string) error
	Refresh(ctx context.Context, refreshToken string) (*services.TokenPair, error)
	GetProfile(ctx context.Context, userID string) (*models.User, error)
}

type Server struct {
	app               *fiber.App
	address           string
	logger            logging.Logger
	service           SessionService
	accessTokenSecret []byte
	accessTokenTTL    time.Duration
	refreshTokenTTL   time.Duration
	secureCookies     bool
}

func NewServer(cfg *config.Config, l logging.Logger, svc SessionService) *Server {
	s := &Server{
		address:           cfg.EndpointAddr,
		logger:            l.With("module", "http_server"),
		service:           svc,
		accessTokenSecret: []byte(cfg.AccessTokenSecret),
		accessTokenTTL:    cfg.AccessTokenValidityDuration,
		refreshTokenTTL:   cfg.RefreshTokenValidityDuration,
		secureCookies:     cfg.SecureCookies,
	}

	s.app = fiber.New(fiber.Config{
		ErrorHandler:          s.errorHandler,
		DisableStartupMessage: true,
	})

	s.app.Use(s.requestLogger())

	s.app.Get("/healthz", s.healthz)

	users := s.app.Group("/api/v1/users")
	users.Post("/register", s.register)
	users.Post("/login", s.login)
	users.Post("/refresh-token", s.refreshToken)

	users.Use(s.requireAuth())
	users.Post("/logout", s.logout)
	users.Get("/me", s.me)

	return s
}

// App returns the underlying fiber application (used by tests).
func (s *Server) App() *fiber.App {
	return s.app
}

// Run starts the HTTP server and shuts it down gracefully when ctx is
// cancelled.
func (s *Server) Run(ctx context.Context) error {

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		if err := s.app.ShutdownWithTimeout(5 * time.Second); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := s.app.Listen(s.address); err != nil {
		return err
	}

	return nil
}

// errorHandler converts every failure, sentinel-tagged or not, into the
// structured error envelope. Unrecognized faults never leak details to the
// client; they are logged and reported as a plain internal error.
func (s *Server) errorHandler(c *fiber.Ctx, err error) error {
	status := http.StatusInternalServerError
	message := err.Error()

	switch {
	case errors.Is(err, common.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, common.ErrAlreadyExists):
		status = http.StatusConflict
	case errors.Is(err, common.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, common.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, common.ErrInternal):
		status = http.StatusInternalServerError
	default:
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			status = fiberErr.Code
			message = fiberErr.Message
		} else {
			s.logger.Error(c.UserContext(), "unhandled error", "error", err)
			message = "internal server error"
		}
	}

	return c.Status(status).JSON(apiError{
		StatusCode: status,
		Message:    message,
		Success:    false,
		Errors:     []string{},
	})
}
