package dashboard

import (
	"context"

	"github.com/the247care/clinic-api/internal/model"
	"github.com/the247care/clinic-api/internal/repository"
)

const recentEnquiryCount = 10

// Service aggregates the admin landing-page counters.
type Service interface {
	Stats(ctx context.Context) (*model.DashboardStats, error)
}

type service struct {
	enquiries repository.EnquiryRepository
	doctors   repository.DoctorRepository
	content   repository.ContentRepository
}

func NewService(
	enquiries repository.EnquiryRepository,
	doctors repository.DoctorRepository,
	content repository.ContentRepository,
) Service {
	return &service{enquiries: enquiries, doctors: doctors, content: content}
}

func (s *service) Stats(ctx context.Context) (*model.DashboardStats, error) {
	totalEnquiries, err := s.enquiries.Count(ctx, nil)
	if err != nil {
		return nil, err
	}
	newEnquiries, err := s.enquiries.Count(ctx, &model.EnquiryFilters{Status: model.EnquiryStatusNew})
	if err != nil {
		return nil, err
	}
	totalDoctors, err := s.doctors.Count(ctx)
	if err != nil {
		return nil, err
	}
	totalServices, err := s.content.CountServices(ctx)
	if err != nil {
		return nil, err
	}
	recent, err := s.enquiries.Recent(ctx, recentEnquiryCount)
	if err != nil {
		return nil, err
	}

	return &model.DashboardStats{
		TotalEnquiries:  totalEnquiries,
		NewEnquiries:    newEnquiries,
		TotalDoctors:    totalDoctors,
		TotalServices:   totalServices,
		RecentEnquiries: recent,
	}, nil
}
