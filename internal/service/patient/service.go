package patient

import (
	"context"

	"github.com/the247care/clinic-api/internal/model"
	"github.com/the247care/clinic-api/internal/repository"
)

// Service exposes the read-mostly patient directory. Patients are created and
// refreshed by enquiry intake, never through this surface.
type Service interface {
	GetByMobile(ctx context.Context, mobile string) (*model.Patient, error)
	List(ctx context.Context, p model.Pagination) (*model.PatientPage, error)
	ListAll(ctx context.Context) ([]*model.Patient, error)
}

type service struct {
	patients repository.PatientRepository
}

func NewService(patients repository.PatientRepository) Service {
	return &service{patients: patients}
}

func (s *service) GetByMobile(ctx context.Context, mobile string) (*model.Patient, error) {
	return s.patients.GetByMobile(ctx, mobile)
}

func (s *service) List(ctx context.Context, p model.Pagination) (*model.PatientPage, error) {
	p.Normalize()
	patients, total, err := s.patients.List(ctx, p)
	if err != nil {
		return nil, err
	}
	return &model.PatientPage{
		Data:       patients,
		Total:      total,
		Page:       p.Page,
		Limit:      p.Limit,
		TotalPages: model.TotalPages(total, p.Limit),
	}, nil
}

func (s *service) ListAll(ctx context.Context) ([]*model.Patient, error) {
	return s.patients.ListAll(ctx)
}
