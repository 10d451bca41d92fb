package auth

import (
	"context"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/the247care/clinic-api/internal/model"
	pkgauth "github.com/the247care/clinic-api/pkg/auth"
	apperrors "github.com/the247care/clinic-api/pkg/errors"
	"github.com/the247care/clinic-api/pkg/logger"
	"github.com/the247care/clinic-api/pkg/security"
)

type fakeUserRepo struct {
	users map[uuid.UUID]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*model.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, u *model.User) error {
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return apperrors.Conflict("user with email "+u.Email+" already exists", nil)
		}
	}
	clone := *u
	r.users[u.ID] = &clone
	return nil
}

func (r *fakeUserRepo) Get(_ context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, apperrors.NotFound("user", nil)
	}
	clone := *u
	return &clone, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, apperrors.NotFound("user", nil)
}

func (r *fakeUserRepo) Update(_ context.Context, u *model.User) error {
	if _, ok := r.users[u.ID]; !ok {
		return apperrors.NotFound("user", nil)
	}
	clone := *u
	r.users[u.ID] = &clone
	return nil
}

func newTestService() (Service, *fakeUserRepo) {
	repo := newFakeUserRepo()
	tokens := pkgauth.NewJWTService(pkgauth.Config{
		Secret:        "test-secret",
		RefreshSecret: "test-refresh-secret",
	})
	hasher := security.NewBcryptHasher(bcrypt.MinCost)
	log := logger.NewLogger(&logger.Config{Level: logger.ErrorLevel, Output: io.Discard})
	return NewService(repo, tokens, hasher, log), repo
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	code := "EMP0001"
	user, err := svc.Register(ctx, &model.RegisterRequest{
		Email:    "doc@the247care.com",
		Password: "secret-pass",
		Role:     model.UserRoleDoctor,
		DoctorID: &code,
	})
	require.NoError(t, err)
	assert.Equal(t, model.UserRoleDoctor, user.Role)

	tokens, err := svc.Login(ctx, &model.LoginRequest{
		Email:    "doc@the247care.com",
		Password: "secret-pass",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
	assert.Equal(t, "doc@the247care.com", tokens.User.Email)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Register(ctx, &model.RegisterRequest{
		Email:    "admin@the247care.com",
		Password: "secret-pass",
		Role:     model.UserRoleAdmin,
	})
	require.NoError(t, err)

	_, err = svc.Login(ctx, &model.LoginRequest{
		Email:    "admin@the247care.com",
		Password: "wrong-password",
	})
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrUnauthorized, appErr.Code)
}

func TestLoginUnknownEmailIsUnauthorizedNotNotFound(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Login(context.Background(), &model.LoginRequest{
		Email:    "ghost@the247care.com",
		Password: "whatever1",
	})
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrUnauthorized, appErr.Code)
}

func TestRegisterDoctorRequiresEmployeeCode(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Register(context.Background(), &model.RegisterRequest{
		Email:    "doc@the247care.com",
		Password: "secret-pass",
		Role:     model.UserRoleDoctor,
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestRefreshRotatesToken(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Register(ctx, &model.RegisterRequest{
		Email:    "admin@the247care.com",
		Password: "secret-pass",
		Role:     model.UserRoleAdmin,
	})
	require.NoError(t, err)

	tokens, err := svc.Login(ctx, &model.LoginRequest{
		Email:    "admin@the247care.com",
		Password: "secret-pass",
	})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(ctx, &model.RefreshTokenRequest{RefreshToken: tokens.RefreshToken})
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
}

func TestRefreshRejectsRevokedToken(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	_, err := svc.Register(ctx, &model.RegisterRequest{
		Email:    "admin@the247care.com",
		Password: "secret-pass",
		Role:     model.UserRoleAdmin,
	})
	require.NoError(t, err)

	tokens, err := svc.Login(ctx, &model.LoginRequest{
		Email:    "admin@the247care.com",
		Password: "secret-pass",
	})
	require.NoError(t, err)

	// Simulate rotation elsewhere: the stored token no longer matches.
	for _, u := range repo.users {
		rotated := "rotated-elsewhere"
		u.RefreshToken = &rotated
	}

	_, err = svc.Refresh(ctx, &model.RefreshTokenRequest{RefreshToken: tokens.RefreshToken})
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrUnauthorized, appErr.Code)
}

func TestEnsureDefaultAdminIsIdempotent(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	require.NoError(t, svc.EnsureDefaultAdmin(ctx, "admin@the247care.com", "admin123"))
	require.Len(t, repo.users, 1)

	require.NoError(t, svc.EnsureDefaultAdmin(ctx, "admin@the247care.com", "admin123"))
	require.Len(t, repo.users, 1)

	tokens, err := svc.Login(ctx, &model.LoginRequest{
		Email:    "admin@the247care.com",
		Password: "admin123",
	})
	require.NoError(t, err)
	assert.Equal(t, model.UserRoleAdmin, tokens.User.Role)
}
