package content

import (
	"context"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/the247care/clinic-api/internal/model"
	apperrors "github.com/the247care/clinic-api/pkg/errors"
	"github.com/the247care/clinic-api/pkg/logger"
)

type fakeContentRepo struct {
	services     map[uuid.UUID]*model.ClinicService
	coreValues   map[uuid.UUID]*model.CoreValue
	socialMedia  map[uuid.UUID]*model.SocialMedia
	leadership   map[uuid.UUID]*model.LeadershipTeam
	heroDiscount *model.HeroDiscount

	listServiceCalls int
}

func newFakeContentRepo() *fakeContentRepo {
	return &fakeContentRepo{
		services:    make(map[uuid.UUID]*model.ClinicService),
		coreValues:  make(map[uuid.UUID]*model.CoreValue),
		socialMedia: make(map[uuid.UUID]*model.SocialMedia),
		leadership:  make(map[uuid.UUID]*model.LeadershipTeam),
	}
}

func (r *fakeContentRepo) CreateService(_ context.Context, svc *model.ClinicService) error {
	r.services[svc.ID] = svc
	return nil
}

func (r *fakeContentRepo) GetService(_ context.Context, id uuid.UUID) (*model.ClinicService, error) {
	svc, ok := r.services[id]
	if !ok {
		return nil, apperrors.NotFound("service", nil)
	}
	return svc, nil
}

func (r *fakeContentRepo) UpdateService(_ context.Context, svc *model.ClinicService) error {
	if _, ok := r.services[svc.ID]; !ok {
		return apperrors.NotFound("service", nil)
	}
	r.services[svc.ID] = svc
	return nil
}

func (r *fakeContentRepo) DeleteService(_ context.Context, id uuid.UUID) error {
	if _, ok := r.services[id]; !ok {
		return apperrors.NotFound("service", nil)
	}
	delete(r.services, id)
	return nil
}

func (r *fakeContentRepo) ListServices(_ context.Context) ([]*model.ClinicService, error) {
	r.listServiceCalls++
	var out []*model.ClinicService
	for _, svc := range r.services {
		out = append(out, svc)
	}
	return out, nil
}

func (r *fakeContentRepo) CountServices(_ context.Context) (int64, error) {
	return int64(len(r.services)), nil
}

func (r *fakeContentRepo) CreateCoreValue(_ context.Context, cv *model.CoreValue) error {
	r.coreValues[cv.ID] = cv
	return nil
}

func (r *fakeContentRepo) GetCoreValue(_ context.Context, id uuid.UUID) (*model.CoreValue, error) {
	cv, ok := r.coreValues[id]
	if !ok {
		return nil, apperrors.NotFound("core value", nil)
	}
	return cv, nil
}

func (r *fakeContentRepo) UpdateCoreValue(_ context.Context, cv *model.CoreValue) error {
	r.coreValues[cv.ID] = cv
	return nil
}

func (r *fakeContentRepo) DeleteCoreValue(_ context.Context, id uuid.UUID) error {
	delete(r.coreValues, id)
	return nil
}

func (r *fakeContentRepo) ListCoreValues(_ context.Context) ([]*model.CoreValue, error) {
	var out []*model.CoreValue
	for _, cv := range r.coreValues {
		out = append(out, cv)
	}
	return out, nil
}

func (r *fakeContentRepo) CreateSocialMedia(_ context.Context, sm *model.SocialMedia) error {
	r.socialMedia[sm.ID] = sm
	return nil
}

func (r *fakeContentRepo) GetSocialMedia(_ context.Context, id uuid.UUID) (*model.SocialMedia, error) {
	sm, ok := r.socialMedia[id]
	if !ok {
		return nil, apperrors.NotFound("social media link", nil)
	}
	return sm, nil
}

func (r *fakeContentRepo) UpdateSocialMedia(_ context.Context, sm *model.SocialMedia) error {
	r.socialMedia[sm.ID] = sm
	return nil
}

func (r *fakeContentRepo) DeleteSocialMedia(_ context.Context, id uuid.UUID) error {
	delete(r.socialMedia, id)
	return nil
}

func (r *fakeContentRepo) ListSocialMedia(_ context.Context) ([]*model.SocialMedia, error) {
	var out []*model.SocialMedia
	for _, sm := range r.socialMedia {
		out = append(out, sm)
	}
	return out, nil
}

func (r *fakeContentRepo) CreateLeadershipTeam(_ context.Context, lt *model.LeadershipTeam) error {
	r.leadership[lt.ID] = lt
	return nil
}

func (r *fakeContentRepo) GetLeadershipTeam(_ context.Context, id uuid.UUID) (*model.LeadershipTeam, error) {
	lt, ok := r.leadership[id]
	if !ok {
		return nil, apperrors.NotFound("leadership team entry", nil)
	}
	return lt, nil
}

func (r *fakeContentRepo) UpdateLeadershipTeam(_ context.Context, lt *model.LeadershipTeam) error {
	r.leadership[lt.ID] = lt
	return nil
}

func (r *fakeContentRepo) DeleteLeadershipTeam(_ context.Context, id uuid.UUID) error {
	delete(r.leadership, id)
	return nil
}

func (r *fakeContentRepo) ListLeadershipTeam(_ context.Context) ([]*model.LeadershipTeam, error) {
	var out []*model.LeadershipTeam
	for _, lt := range r.leadership {
		out = append(out, lt)
	}
	return out, nil
}

func (r *fakeContentRepo) GetHeroDiscount(_ context.Context) (*model.HeroDiscount, error) {
	if r.heroDiscount == nil {
		return nil, apperrors.NotFound("hero discount", nil)
	}
	return r.heroDiscount, nil
}

func (r *fakeContentRepo) UpsertHeroDiscount(_ context.Context, hd *model.HeroDiscount) error {
	r.heroDiscount = hd
	return nil
}

type fakeDoctorLookup struct {
	doctors map[uuid.UUID]*model.Doctor
}

func (r *fakeDoctorLookup) Create(_ context.Context, d *model.Doctor) error {
	r.doctors[d.ID] = d
	return nil
}
func (r *fakeDoctorLookup) CreateBulk(_ context.Context, _ []*model.Doctor) error { return nil }
func (r *fakeDoctorLookup) Get(_ context.Context, id uuid.UUID) (*model.Doctor, error) {
	d, ok := r.doctors[id]
	if !ok {
		return nil, apperrors.NotFound("doctor", nil)
	}
	return d, nil
}
func (r *fakeDoctorLookup) GetByEmployeeID(_ context.Context, _ string) (*model.Doctor, error) {
	return nil, apperrors.NotFound("doctor", nil)
}
func (r *fakeDoctorLookup) Update(_ context.Context, _ *model.Doctor) error { return nil }
func (r *fakeDoctorLookup) Delete(_ context.Context, _ uuid.UUID) error     { return nil }
func (r *fakeDoctorLookup) List(_ context.Context, _ model.Pagination) ([]*model.Doctor, int64, error) {
	return nil, 0, nil
}
func (r *fakeDoctorLookup) ListAll(_ context.Context) ([]*model.Doctor, error) { return nil, nil }
func (r *fakeDoctorLookup) Count(_ context.Context) (int64, error)             { return 0, nil }
func (r *fakeDoctorLookup) AddAssignedQuery(_ context.Context, _, _ uuid.UUID) error {
	return nil
}
func (r *fakeDoctorLookup) RemoveAssignedQuery(_ context.Context, _, _ uuid.UUID) error {
	return nil
}

func newTestService() (Service, *fakeContentRepo, *fakeDoctorLookup) {
	repo := newFakeContentRepo()
	doctors := &fakeDoctorLookup{doctors: make(map[uuid.UUID]*model.Doctor)}
	log := logger.NewLogger(&logger.Config{Level: logger.ErrorLevel, Output: io.Discard})
	return NewService(repo, doctors, log), repo, doctors
}

func TestListServicesUsesCache(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	_, err := svc.CreateService(ctx, &model.CreateServiceRequest{
		Title:       "Home Care",
		Description: "Nursing at home",
	})
	require.NoError(t, err)

	_, err = svc.ListServices(ctx)
	require.NoError(t, err)
	_, err = svc.ListServices(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.listServiceCalls)
}

func TestServiceMutationInvalidatesCache(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	created, err := svc.CreateService(ctx, &model.CreateServiceRequest{
		Title:       "Home Care",
		Description: "Nursing at home",
	})
	require.NoError(t, err)

	_, err = svc.ListServices(ctx)
	require.NoError(t, err)

	title := "Home Care Plus"
	_, err = svc.UpdateService(ctx, created.ID, &model.UpdateServiceRequest{Title: &title})
	require.NoError(t, err)

	services, err := svc.ListServices(ctx)
	require.NoError(t, err)
	require.Len(t, services, 1)
	assert.Equal(t, "Home Care Plus", services[0].Title)
	assert.Equal(t, 2, repo.listServiceCalls)
}

func TestLeadershipTeamExpandsMember(t *testing.T) {
	svc, _, doctors := newTestService()
	ctx := context.Background()

	doc := &model.Doctor{
		Base:       model.Base{ID: uuid.New()},
		Name:       "Dr. Mehta",
		EmployeeID: "EMP0001",
	}
	require.NoError(t, doctors.Create(ctx, doc))

	_, err := svc.CreateLeadershipTeam(ctx, &model.CreateLeadershipTeamRequest{
		Designation: "Medical Director",
		MemberID:    doc.ID.String(),
	})
	require.NoError(t, err)

	entries, err := svc.ListLeadershipTeam(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.NotNil(t, entries[0].Member)
	assert.Equal(t, "Dr. Mehta", entries[0].Member.Name)
}

func TestCreateLeadershipTeamRejectsUnknownDoctor(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.CreateLeadershipTeam(context.Background(), &model.CreateLeadershipTeamRequest{
		Designation: "Medical Director",
		MemberID:    uuid.New().String(),
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestHeroDiscountUpsert(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.GetHeroDiscount(ctx)
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))

	discount := 20
	active := true
	created, err := svc.UpdateHeroDiscount(ctx, &model.UpdateHeroDiscountRequest{
		Discount: &discount,
		IsActive: &active,
	})
	require.NoError(t, err)
	assert.Equal(t, 20, created.Discount)
	assert.True(t, created.IsActive)

	newDiscount := 35
	updated, err := svc.UpdateHeroDiscount(ctx, &model.UpdateHeroDiscountRequest{
		Discount: &newDiscount,
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, 35, updated.Discount)
	assert.True(t, updated.IsActive)
}
