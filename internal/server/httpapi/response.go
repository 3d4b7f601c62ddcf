package httpapi

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

const (
	accessTokenCookie  = "accessToken"
	refreshTokenCookie = "refreshToken"
)

// apiResponse is the success envelope every endpoint replies with.
type apiResponse struct {
	StatusCode int    `json:"statusCode"`
	Data       any    `json:"data"`
	Message    string `json:"message"`
	Success    bool   `json:"success"`
}

// apiError is the failure envelope produced by the central error handler.
type apiError struct {
	StatusCode int      `json:"statusCode"`
	Message    string   `json:"message"`
	Success    bool     `json:"success"`
	Errors     []string `json:"errors"`
}

func respond(c *fiber.Ctx, status int, data any, message string) error {
	return c.Status(status).JSON(apiResponse{
		StatusCode: status,
		Data:       data,
		Message:    message,
		Success:    true,
	})
}

func (s *Server) setTokenCookie(c *fiber.Ctx, name, value string, ttl time.Duration) {
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Expires:  time.Now().Add(ttl),
		HTTPOnly: true,
		Secure:   s.secureCookies,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func (s *Server) clearTokenCookie(c *fiber.Ctx, name string) {
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   s.secureCookies,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
