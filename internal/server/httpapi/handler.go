package httpapi

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/dmitrijs2005/videotube/internal/common"
	"github.com/dmitrijs2005/videotube/internal/server/media"
	"github.com/dmitrijs2005/videotube/internal/server/services"
)

type loginRequest struct {
	UserName string `json:"userName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type tokensResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// POST /api/v1/users/register
func (s *Server) register(c *fiber.Ctx) error {
	in := services.RegisterInput{
		FullName: c.FormValue("fullName"),
		UserName: c.FormValue("userName"),
		Email:    c.FormValue("email"),
		Password: c.FormValue("password"),
	}

	avatar, closeAvatar, err := formFile(c, "avatar")
	if err != nil {
		return err
	}
	if closeAvatar != nil {
		defer closeAvatar()
	}
	in.Avatar = avatar

	cover, closeCover, err := formFile(c, "coverImage")
	if err != nil {
		return err
	}
	if closeCover != nil {
		defer closeCover()
	}
	in.CoverImage = cover

	user, err := s.service.Register(c.UserContext(), in)
	if err != nil {
		return err
	}

	return respond(c, fiber.StatusCreated, user, "user registered successfully")
}

// POST /api/v1/users/login
func (s *Server) login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fmt.Errorf("%w: invalid request body", common.ErrValidation)
	}

	user, pair, err := s.service.Login(c.UserContext(), req.UserName, req.Email, req.Password)
	if err != nil {
		return err
	}

	s.setTokenCookie(c, accessTokenCookie, pair.AccessToken, s.accessTokenTTL)
	s.setTokenCookie(c, refreshTokenCookie, pair.RefreshToken, s.refreshTokenTTL)

	// Tokens go out in the body too, for clients that do not use cookies.
	return respond(c, fiber.StatusOK, fiber.Map{
		"user":         user,
		"accessToken":  pair.AccessToken,
		"refreshToken": pair.RefreshToken,
	}, "user logged in successfully")
}

// POST /api/v1/users/logout
func (s *Server) logout(c *fiber.Ctx) error {
	userID, ok := c.Locals(userIDKey).(string)
	if !ok || userID == "" {
		return fmt.Errorf("%w: unauthorized request", common.ErrUnauthorized)
	}

	if err := s.service.Logout(c.UserContext(), userID); err != nil {
		return err
	}

	s.clearTokenCookie(c, accessTokenCookie)
	s.clearTokenCookie(c, refreshTokenCookie)

	return respond(c, fiber.StatusOK, fiber.Map{}, "user logged out")
}

// POST /api/v1/users/refresh-token
func (s *Server) refreshToken(c *fiber.Ctx) error {
	incoming := c.Cookies(refreshTokenCookie)
	if incoming == "" {
		var req refreshRequest
		if err := c.BodyParser(&req); err == nil {
			incoming = req.RefreshToken
		}
	}

	pair, err := s.service.Refresh(c.UserContext(), incoming)
	if err != nil {
		return err
	}

	s.setTokenCookie(c, accessTokenCookie, pair.AccessToken, s.accessTokenTTL)
	s.setTokenCookie(c, refreshTokenCookie, pair.RefreshToken, s.refreshTokenTTL)

	return respond(c, fiber.StatusOK, tokensResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, "access token refreshed")
}

// GET /api/v1/users/me
func (s *Server) me(c *fiber.Ctx) error {
	userID, ok := c.Locals(userIDKey).(string)
	if !ok || userID == "" {
		return fmt.Errorf("%w: unauthorized request", common.ErrUnauthorized)
	}

	user, err := s.service.GetProfile(c.UserContext(), userID)
	if err != nil {
		return err
	}

	return respond(c, fiber.StatusOK, user, "current user fetched successfully")
}

// GET /healthz
func (s *Server) healthz(c *fiber.Ctx) error {
	return respond(c, fiber.StatusOK, fiber.Map{"status": "OK"}, "ok")
}

// formFile extracts one multipart file. An absent file is not an error here;
// the service decides which files are required.
func formFile(c *fiber.Ctx, name string) (*media.File, func(), error) {
	fh, err := c.FormFile(name)
	if err != nil {
		return nil, nil, nil
	}

	f, err := fh.Open()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: could not read %s file", common.ErrValidation, name)
	}

	file := &media.File{
		Name:        fh.Filename,
		ContentType: fh.Header.Get(fiber.HeaderContentType),
		Body:        f,
	}

	return file, func() { _ = f.Close() }, nil
}
