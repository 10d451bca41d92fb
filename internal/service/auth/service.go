package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/the247care/clinic-api/internal/model"
	"github.com/the247care/clinic-api/internal/repository"
	"github.com/the247care/clinic-api/pkg/auth"
	apperrors "github.com/the247care/clinic-api/pkg/errors"
	"github.com/the247care/clinic-api/pkg/logger"
	"github.com/the247care/clinic-api/pkg/security"
)

// Service handles login, registration, token refresh, and the idempotent
// default-admin bootstrap.
type Service interface {
	Login(ctx context.Context, req *model.LoginRequest) (*model.TokenResponse, error)
	Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error)
	Refresh(ctx context.Context, req *model.RefreshTokenRequest) (*model.TokenResponse, error)
	EnsureDefaultAdmin(ctx context.Context, email, password string) error
}

type service struct {
	users  repository.UserRepository
	tokens auth.JWTService
	hasher security.PasswordHasher
	logger *logger.Logger
}

func NewService(
	users repository.UserRepository,
	tokens auth.JWTService,
	hasher security.PasswordHasher,
	log *logger.Logger,
) Service {
	return &service{users: users, tokens: tokens, hasher: hasher, logger: log}
}

func (s *service) Login(ctx context.Context, req *model.LoginRequest) (*model.TokenResponse, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.Unauthorized("invalid credentials", nil)
		}
		return nil, err
	}
	if err := s.hasher.Compare(user.PasswordHash, req.Password); err != nil {
		return nil, apperrors.Unauthorized("invalid credentials", nil)
	}
	return s.issueTokens(ctx, user)
}

func (s *service) Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error) {
	if req.Role == model.UserRoleDoctor && (req.DoctorID == nil || *req.DoctorID == "") {
		return nil, apperrors.Validation("doctor_id is required for doctor accounts", nil)
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, apperrors.Validation("invalid password", err)
	}

	user := &model.User{
		Base:         model.Base{ID: uuid.New()},
		Email:        req.Email,
		PasswordHash: hash,
		Role:         req.Role,
		DoctorID:     req.DoctorID,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Refresh validates the refresh token against both the signature and the
// stored copy, then rotates it.
func (s *service) Refresh(ctx context.Context, req *model.RefreshTokenRequest) (*model.TokenResponse, error) {
	userID, err := s.tokens.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		return nil, apperrors.Unauthorized("invalid refresh token", err)
	}

	user, err := s.users.Get(ctx, userID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.Unauthorized("invalid refresh token", nil)
		}
		return nil, err
	}
	if user.RefreshToken == nil || *user.RefreshToken != req.RefreshToken {
		return nil, apperrors.Unauthorized("refresh token revoked", nil)
	}
	return s.issueTokens(ctx, user)
}

func (s *service) issueTokens(ctx context.Context, user *model.User) (*model.TokenResponse, error) {
	doctorID := ""
	if user.DoctorID != nil {
		doctorID = *user.DoctorID
	}

	access, err := s.tokens.GenerateAccessToken(user.ID, user.Email, user.Role, doctorID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	refresh, err := s.tokens.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	user.RefreshToken = &refresh
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	return &model.TokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		User: model.UserInfo{
			ID:    user.ID.String(),
			Email: user.Email,
			Role:  user.Role,
		},
	}, nil
}

// EnsureDefaultAdmin creates the admin login if no user holds the given email
// yet. Safe to call on every startup.
func (s *service) EnsureDefaultAdmin(ctx context.Context, email, password string) error {
	_, err := s.users.GetByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !apperrors.IsNotFound(err) {
		return err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return err
	}
	user := &model.User{
		Base:         model.Base{ID: uuid.New()},
		Email:        email,
		PasswordHash: hash,
		Role:         model.UserRoleAdmin,
	}
	if err := s.users.Create(ctx, user); err != nil {
		// Lost a race with a concurrent bootstrap; the admin exists.
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) && appErr.Code == apperrors.ErrConflict {
			return nil
		}
		return err
	}
	s.logger.Info("default admin account created", "email", email)
	return nil
}
