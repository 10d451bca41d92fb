package doctor

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

type fakeDoctorRepo struct {
	doctors map[uuid.UUID]*model.Doctor
}

func newFakeDoctorRepo() *fakeDoctorRepo {
	return &fakeDoctorRepo{doctors: make(map[uuid.UUID]*model.Doctor)}
}

func (r *fakeDoctorRepo) Create(_ context.Context, d *model.Doctor) error {
	for _, existing := range r.doctors {
		if existing.EmployeeID == d.EmployeeID {
			return apperrors.Conflict("doctor with employee id "+d.EmployeeID+" already exists", nil)
		}
	}
	clone := *d
	r.doctors[d.ID] = &clone
	return nil
}

func (r *fakeDoctorRepo) CreateBulk(ctx context.Context, doctors []*model.Doctor) error {
	// All-or-nothing, as the transactional implementation behaves.
	created := make([]uuid.UUID, 0, len(doctors))
	for _, d := range doctors {
		if err := r.Create(ctx, d); err != nil {
			for _, id := range created {
				delete(r.doctors, id)
			}
			return err
		}
		created = append(created, d.ID)
	}
	return nil
}

func (r *fakeDoctorRepo) Get(_ context.Context, id uuid.UUID) (*model.Doctor, error) {
	d, ok := r.doctors[id]
	if !ok {
		return nil, apperrors.NotFound("doctor", nil)
	}
	clone := *d
	return &clone, nil
}

func (r *fakeDoctorRepo) GetByEmployeeID(_ context.Context, employeeID string) (*model.Doctor, error) {
	for _, d := range r.doctors {
		if d.EmployeeID == employeeID {
			clone := *d
			return &clone, nil
		}
	}
	return nil, apperrors.NotFound("doctor", nil)
}

func (r *fakeDoctorRepo) Update(_ context.Context, d *model.Doctor) error {
	if _, ok := r.doctors[d.ID]; !ok {
		return apperrors.NotFound("doctor", nil)
	}
	clone := *d
	r.doctors[d.ID] = &clone
	return nil
}

func (r *fakeDoctorRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.doctors[id]; !ok {
		return apperrors.NotFound("doctor", nil)
	}
	delete(r.doctors, id)
	return nil
}

func (r *fakeDoctorRepo) List(_ context.Context, p model.Pagination) ([]*model.Doctor, int64, error) {
	var out []*model.Doctor
	for _, d := range r.doctors {
		clone := *d
		out = append(out, &clone)
	}
	return out, int64(len(r.doctors)), nil
}

func (r *fakeDoctorRepo) ListAll(ctx context.Context) ([]*model.Doctor, error) {
	out, _, err := r.List(ctx, model.Pagination{})
	return out, err
}

func (r *fakeDoctorRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.doctors)), nil
}

func (r *fakeDoctorRepo) AddAssignedQuery(_ context.Context, _, _ uuid.UUID) error {
	return nil
}

func (r *fakeDoctorRepo) RemoveAssignedQuery(_ context.Context, _, _ uuid.UUID) error {
	return nil
}

func newTestService() (Service, *fakeDoctorRepo) {
	repo := newFakeDoctorRepo()
	log := logger.NewLogger(&logger.Config{Level: logger.ErrorLevel, Output: io.Discard})
	return NewService(repo, log), repo
}

func createRequest(employeeID string) *model.CreateDoctorRequest {
	return &model.CreateDoctorRequest{
		Name:           "Dr. Mehta",
		Specialization: "Cardiology",
		Mobile:         "9123456789",
		EmployeeID:     employeeID,
		Gender:         model.GenderFemale,
	}
}

func TestCreateDoctorDefaultsAvailability(t *testing.T) {
	svc, _ := newTestService()

	doc, err := svc.Create(context.Background(), createRequest("EMP0001"))
	require.NoError(t, err)

	require.Len(t, doc.Availability, 7)
	days := make([]string, 0, 7)
	for _, slot := range doc.Availability {
		days = append(days, slot.Day)
		assert.False(t, slot.IsAvailable)
	}
	assert.Equal(t, model.Weekdays, days)
	assert.NotEmpty(t, doc.AvailabilityJSON)
}

func TestGetDoctorRestoresAvailability(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	start, end := "09:00", "17:00"
	req := createRequest("EMP0001")
	req.Availability = []model.AvailabilitySlot{
		{Day: "monday", StartTime: &start, EndTime: &end, IsAvailable: true},
	}

	created, err := svc.Create(ctx, req)
	require.NoError(t, err)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, got.Availability, 1)
	assert.Equal(t, "monday", got.Availability[0].Day)
	assert.True(t, got.Availability[0].IsAvailable)
	require.NotNil(t, got.Availability[0].StartTime)
	assert.Equal(t, "09:00", *got.Availability[0].StartTime)
}

func TestCreateBulkRejectsDuplicateEmployeeIDInBatch(t *testing.T) {
	svc, repo := newTestService()

	_, err := svc.CreateBulk(context.Background(), &model.BulkCreateDoctorRequest{
		Doctors: []model.CreateDoctorRequest{
			*createRequest("EMP0001"),
			*createRequest("EMP0001"),
		},
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Empty(t, repo.doctors)
}

func TestCreateDoctorDuplicateEmployeeIDConflicts(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Create(ctx, createRequest("EMP0001"))
	require.NoError(t, err)

	_, err = svc.Create(ctx, createRequest("EMP0001"))
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrConflict, appErr.Code)
}

func TestUpdateDoctorMergesFields(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, createRequest("EMP0001"))
	require.NoError(t, err)

	name := "Dr. A. Mehta"
	updated, err := svc.Update(ctx, created.ID, &model.UpdateDoctorRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Dr. A. Mehta", updated.Name)
	assert.Equal(t, "Cardiology", updated.Specialization)
	assert.Equal(t, "EMP0001", updated.EmployeeID)
}

func TestUpdateAvailabilityReplacesSlots(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, createRequest("EMP0001"))
	require.NoError(t, err)

	slots := make([]model.AvailabilitySlot, 0, 7)
	for _, day := range model.Weekdays {
		slots = append(slots, model.AvailabilitySlot{Day: day, IsAvailable: true})
	}

	updated, err := svc.UpdateAvailability(ctx, created.ID, &model.UpdateAvailabilityRequest{
		Availability: slots,
	})
	require.NoError(t, err)
	require.Len(t, updated.Availability, 7)
	for _, slot := range updated.Availability {
		assert.True(t, slot.IsAvailable)
	}
}
