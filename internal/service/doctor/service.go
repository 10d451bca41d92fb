package doctor

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/the247care/clinic-api/internal/model"
	"github.com/the247care/clinic-api/internal/repository"
	apperrors "github.com/the247care/clinic-api/pkg/errors"
	"github.com/the247care/clinic-api/pkg/logger"
)

// Service manages the doctor roster. Availability lives as a JSON document in
// the doctors table and is marshalled around the repository boundary here.
type Service interface {
	Create(ctx context.Context, req *model.CreateDoctorRequest) (*model.Doctor, error)
	CreateBulk(ctx context.Context, req *model.BulkCreateDoctorRequest) ([]*model.Doctor, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Doctor, error)
	GetByEmployeeID(ctx context.Context, employeeID string) (*model.Doctor, error)
	Update(ctx context.Context, id uuid.UUID, req *model.UpdateDoctorRequest) (*model.Doctor, error)
	UpdateAvailability(ctx context.Context, id uuid.UUID, req *model.UpdateAvailabilityRequest) (*model.Doctor, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, p model.Pagination) (*model.DoctorPage, error)
	ListAll(ctx context.Context) ([]*model.Doctor, error)
}

type service struct {
	doctors repository.DoctorRepository
	logger  *logger.Logger
}

func NewService(doctors repository.DoctorRepository, log *logger.Logger) Service {
	return &service{doctors: doctors, logger: log}
}

func (s *service) Create(ctx context.Context, req *model.CreateDoctorRequest) (*model.Doctor, error) {
	doctor, err := fromCreateRequest(req)
	if err != nil {
		return nil, err
	}
	if err := s.doctors.Create(ctx, doctor); err != nil {
		return nil, err
	}
	return doctor, nil
}

func (s *service) CreateBulk(ctx context.Context, req *model.BulkCreateDoctorRequest) ([]*model.Doctor, error) {
	doctors := make([]*model.Doctor, 0, len(req.Doctors))
	seen := make(map[string]struct{}, len(req.Doctors))
	for i := range req.Doctors {
		r := req.Doctors[i]
		if _, ok := seen[r.EmployeeID]; ok {
			return nil, apperrors.Validation(
				fmt.Sprintf("duplicate employee id %s in batch", r.EmployeeID), nil)
		}
		seen[r.EmployeeID] = struct{}{}

		doctor, err := fromCreateRequest(&r)
		if err != nil {
			return nil, err
		}
		doctors = append(doctors, doctor)
	}
	if err := s.doctors.CreateBulk(ctx, doctors); err != nil {
		return nil, err
	}
	return doctors, nil
}

func fromCreateRequest(req *model.CreateDoctorRequest) (*model.Doctor, error) {
	doctor := &model.Doctor{
		Base:            model.Base{ID: uuid.New()},
		Name:            req.Name,
		Specialization:  req.Specialization,
		Mobile:          req.Mobile,
		EmployeeID:      req.EmployeeID,
		Gender:          req.Gender,
		AvatarURL:       req.AvatarURL,
		Availability:    req.Availability,
		QueriesAssigned: []string{},
	}
	if len(doctor.Availability) == 0 {
		doctor.Availability = defaultAvailability()
	}
	if err := marshalAvailability(doctor); err != nil {
		return nil, err
	}
	return doctor, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*model.Doctor, error) {
	doctor, err := s.doctors.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := unmarshalAvailability(doctor); err != nil {
		return nil, err
	}
	return doctor, nil
}

func (s *service) GetByEmployeeID(ctx context.Context, employeeID string) (*model.Doctor, error) {
	doctor, err := s.doctors.GetByEmployeeID(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if err := unmarshalAvailability(doctor); err != nil {
		return nil, err
	}
	return doctor, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, req *model.UpdateDoctorRequest) (*model.Doctor, error) {
	doctor, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		doctor.Name = *req.Name
	}
	if req.Specialization != nil {
		doctor.Specialization = *req.Specialization
	}
	if req.Mobile != nil {
		doctor.Mobile = *req.Mobile
	}
	if req.EmployeeID != nil {
		doctor.EmployeeID = *req.EmployeeID
	}
	if req.Gender != nil {
		doctor.Gender = *req.Gender
	}
	if req.AvatarURL != nil {
		doctor.AvatarURL = req.AvatarURL
	}
	if req.Availability != nil {
		doctor.Availability = req.Availability
	}
	if err := marshalAvailability(doctor); err != nil {
		return nil, err
	}

	if err := s.doctors.Update(ctx, doctor); err != nil {
		return nil, err
	}
	return doctor, nil
}

func (s *service) UpdateAvailability(ctx context.Context, id uuid.UUID, req *model.UpdateAvailabilityRequest) (*model.Doctor, error) {
	doctor, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	doctor.Availability = req.Availability
	if err := marshalAvailability(doctor); err != nil {
		return nil, err
	}
	if err := s.doctors.Update(ctx, doctor); err != nil {
		return nil, err
	}
	return doctor, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.doctors.Delete(ctx, id)
}

func (s *service) List(ctx context.Context, p model.Pagination) (*model.DoctorPage, error) {
	p.Normalize()
	doctors, total, err := s.doctors.List(ctx, p)
	if err != nil {
		return nil, err
	}
	for _, doctor := range doctors {
		if err := unmarshalAvailability(doctor); err != nil {
			return nil, err
		}
	}
	return &model.DoctorPage{
		Data:       doctors,
		Total:      total,
		Page:       p.Page,
		Limit:      p.Limit,
		TotalPages: model.TotalPages(total, p.Limit),
	}, nil
}

func (s *service) ListAll(ctx context.Context) ([]*model.Doctor, error) {
	doctors, err := s.doctors.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, doctor := range doctors {
		if err := unmarshalAvailability(doctor); err != nil {
			return nil, err
		}
	}
	return doctors, nil
}

// defaultAvailability builds the seven weekly slots, all marked unavailable.
func defaultAvailability() []model.AvailabilitySlot {
	slots := make([]model.AvailabilitySlot, 0, len(model.Weekdays))
	for _, day := range model.Weekdays {
		slots = append(slots, model.AvailabilitySlot{Day: day})
	}
	return slots
}

func marshalAvailability(d *model.Doctor) error {
	data, err := json.Marshal(d.Availability)
	if err != nil {
		return fmt.Errorf("failed to marshal availability: %w", err)
	}
	d.AvailabilityJSON = string(data)
	return nil
}

func unmarshalAvailability(d *model.Doctor) error {
	if d.AvailabilityJSON == "" {
		d.Availability = []model.AvailabilitySlot{}
		return nil
	}
	if err := json.Unmarshal([]byte(d.AvailabilityJSON), &d.Availability); err != nil {
		return fmt.Errorf("failed to unmarshal availability: %w", err)
	}
	return nil
}
