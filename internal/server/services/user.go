// Package services contains server-side business logic. This file implements
// UserService, which handles registration, login, logout, and refresh-token
// rotation with server-stored refresh tokens.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/videotube/internal/common"
	"github.com/dmitrijs2005/videotube/internal/server/auth"
	"github.com/dmitrijs2005/videotube/internal/server/config"
	"github.com/dmitrijs2005/videotube/internal/server/media"
	"github.com/dmitrijs2005/videotube/internal/server/models"
	"github.com/dmitrijs2005/videotube/internal/server/repositories/users"
)

// TokenPair bundles a short-lived access token and a long-lived refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// MediaStorage uploads a file and returns its public URL.
type MediaStorage interface {
	Upload(ctx context.Context, folder string, file *media.File) (string, error)
}

// RegisterInput carries the registration form fields and files.
type RegisterInput struct {
	FullName   string
	UserName   string
	Email      string
	Password   string
	Avatar     *media.File
	CoverImage *media.File
}

// UserService provides the session flows:
// - Register: create users with uploaded media
// - Login: verify credentials and mint tokens
// - Logout: clear the stored refresh token
// - Refresh: rotate refresh tokens and mint new access tokens
type UserService struct {
	users                        users.Repository
	media                        MediaStorage
	accessTokenSecret            []byte
	refreshTokenSecret           []byte
	accessTokenValidityDuration  time.Duration
	refreshTokenValidityDuration time.Duration
}

// NewUserService constructs a UserService using the user repository, the
// media storage, and server config.
func NewUserService(repo users.Repository, storage MediaStorage, cfg *config.Config) *UserService {
	return &UserService{
		users:                        repo,
		media:                        storage,
		accessTokenSecret:            []byte(cfg.AccessTokenSecret),
		refreshTokenSecret:           []byte(cfg.RefreshTokenSecret),
		accessTokenValidityDuration:  cfg.AccessTokenValidityDuration,
		refreshTokenValidityDuration: cfg.RefreshTokenValidityDuration,
	}
}

// Register validates the form, uploads media, and creates the user record.
// The returned profile never carries the password hash or a refresh token.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {

	for _, field := range []string{in.FullName, in.UserName, in.Email, in.Password} {
		if strings.TrimSpace(field) == "" {
			return nil, fmt.Errorf("%w: all fields are required", common.ErrValidation)
		}
	}

	userName := strings.ToLower(strings.TrimSpace(in.UserName))
	email := strings.TrimSpace(in.Email)

	_, err := s.users.FindByUsernameOrEmail(ctx, userName, email)
	if err == nil {
		return nil, fmt.Errorf("%w: user with username or email already exists", common.ErrAlreadyExists)
	}
	if !errors.Is(err, common.ErrNotFound) {
		return nil, err
	}

	if in.Avatar == nil {
		return nil, fmt.Errorf("%w: avatar file is required", common.ErrValidation)
	}

	avatarURL, err := s.media.Upload(ctx, "avatars", in.Avatar)
	if err != nil {
		return nil, fmt.Errorf("%w: avatar file is required", common.ErrValidation)
	}

	// Cover image is optional: a failed upload degrades to no cover image.
	coverImageURL := ""
	if in.CoverImage != nil {
		if url, err := s.media.Upload(ctx, "covers", in.CoverImage); err == nil {
			coverImageURL = url
		}
	}

	passwordHash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInternal, err)
	}

	now := time.Now().UTC()
	user := &models.User{
		ID:         uuid.NewString(),
		FullName:   strings.TrimSpace(in.FullName),
		UserName:   userName,
		Email:      email,
		Password:   passwordHash,
		Avatar:     avatarURL,
		CoverImage: coverImageURL,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if _, err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, common.ErrAlreadyExists) {
			return nil, fmt.Errorf("%w: user with username or email already exists", common.ErrAlreadyExists)
		}
		return nil, err
	}

	created, err := s.users.GetByID(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: something went wrong while registering the user", common.ErrInternal)
	}

	return sanitize(created), nil
}

// Login verifies the password for the user matching username or email and,
// on success, returns the profile together with a freshly issued token pair.
// The refresh token is persisted on the user record before returning.
func (s *UserService) Login(ctx context.Context, userName, email, password string) (*models.User, *TokenPair, error) {

	if strings.TrimSpace(userName) == "" && strings.TrimSpace(email) == "" {
		return nil, nil, fmt.Errorf("%w: username or email is required", common.ErrValidation)
	}

	user, err := s.users.FindByUsernameOrEmail(ctx, strings.ToLower(strings.TrimSpace(userName)), strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, nil, fmt.Errorf("%w: user does not exist", common.ErrNotFound)
		}
		return nil, nil, err
	}

	if !auth.CheckPassword(user.Password, password) {
		return nil, nil, fmt.Errorf("%w: invalid user credentials", common.ErrUnauthorized)
	}

	pair, err := s.issueTokenPair(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}

	loggedIn, err := s.users.GetByID(ctx, user.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", common.ErrInternal, err)
	}

	return sanitize(loggedIn), pair, nil
}

// Logout clears the stored refresh token. No token validation is performed;
// the caller's identity is established by the auth middleware.
func (s *UserService) Logout(ctx context.Context, userID string) error {
	if err := s.users.ClearRefreshToken(ctx, userID); err != nil {
		return fmt.Errorf("%w: %v", common.ErrInternal, err)
	}
	return nil
}

// Refresh exchanges a valid refresh token for a rotated token pair. The
// incoming token must verify against the refresh secret and must equal the
// token currently stored on the user record; rotation invalidates it.
func (s *UserService) Refresh(ctx context.Context, incoming string) (*TokenPair, error) {

	if incoming == "" {
		return nil, fmt.Errorf("%w: unauthorized request", common.ErrUnauthorized)
	}

	userID, err := auth.GetUserIDFromToken(incoming, s.refreshTokenSecret)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrUnauthorized, err)
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid refresh token", common.ErrUnauthorized)
		}
		return nil, fmt.Errorf("%w: %v", common.ErrInternal, err)
	}

	// Compare the raw stored token string, not the decoded claims.
	if user.RefreshToken == "" || user.RefreshToken != incoming {
		return nil, fmt.Errorf("%w: refresh token is expired or used", common.ErrUnauthorized)
	}

	pair, err := s.signTokenPair(user.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: token generation failed", common.ErrInternal)
	}

	// Guarded rotation: the update matches only while the stored token is
	// still the one presented. A concurrent rotation or logout loses here.
	if err := s.users.RotateRefreshToken(ctx, user.ID, incoming, pair.RefreshToken); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, fmt.Errorf("%w: refresh token is expired or used", common.ErrUnauthorized)
		}
		return nil, fmt.Errorf("%w: token generation failed", common.ErrInternal)
	}

	return pair, nil
}

// GetProfile returns the profile for an authenticated user.
func (s *UserService) GetProfile(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, fmt.Errorf("%w: user does not exist", common.ErrNotFound)
		}
		return nil, fmt.Errorf("%w: %v", common.ErrInternal, err)
	}
	return sanitize(user), nil
}

// --- helpers below ---

func (s *UserService) signTokenPair(userID string) (*TokenPair, error) {
	access, err := auth.GenerateToken(userID, s.accessTokenSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, err
	}
	refresh, err := auth.GenerateToken(userID, s.refreshTokenSecret, s.refreshTokenValidityDuration)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// issueTokenPair mints a token pair and persists the refresh token as the
// single valid slot on the user record. Every failure mode is reported as
// the same opaque internal error.
func (s *UserService) issueTokenPair(ctx context.Context, userID string) (*TokenPair, error) {
	pair, err := s.signTokenPair(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: token generation failed", common.ErrInternal)
	}
	if err := s.users.SetRefreshToken(ctx, userID, pair.RefreshToken); err != nil {
		return nil, fmt.Errorf("%w: token generation failed", common.ErrInternal)
	}
	return pair, nil
}

func sanitize(u *models.User) *models.User {
	c := *u
	c.Password = ""
	c.RefreshToken = ""
	return &c
}
