package httpapi

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/dmitrijs2005/videotube/internal/common"
	"github.com/dmitrijs2005/videotube/internal/server/auth"
)

// userIDKey is the fiber locals key under which the auth middleware stores
// the authenticated user identity.
const userIDKey = "userID"

// requireAuth verifies the access token taken from the accessToken cookie or
// the Authorization Bearer header and injects the user identity into the
// request locals.
func (s *Server) requireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(accessTokenCookie)

		if token == "" {
			header := c.Get(fiber.HeaderAuthorization)
			parts := strings.SplitN(header, " ", 2)
			if len(parts) == 2 && parts[0] == "Bearer" {
				token = parts[1]
			}
		}

		if token == "" {
			return fmt.Errorf("%w: unauthorized request", common.ErrUnauthorized)
		}

		userID, err := auth.GetUserIDFromToken(token, s.accessTokenSecret)
		if err != nil {
			return fmt.Errorf("%w: invalid access token", common.ErrUnauthorized)
		}

		c.Locals(userIDKey, userID)

		return c.Next()
	}
}

// requestLogger logs one line per request with method, path, status, and
// duration.
func (s *Server) requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		s.logger.Info(c.UserContext(), "request",
			"method", c.Method(),
			"path", c.Path(),
			"status", c.Response().StatusCode(),
			"duration", time.Since(start).String(),
		)

		return err
	}
}
