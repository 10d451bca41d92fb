package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/the247care/clinic-api/internal/model"
)

// All repository interfaces in one file
type (
	// EnquiryRepository persists enquiries. Read methods return enquiries
	// with the assignee expanded to display fields.
	EnquiryRepository interface {
		Create(ctx context.Context, enquiry *model.Enquiry) error
		Get(ctx context.Context, id uuid.UUID) (*model.Enquiry, error)
		Update(ctx context.Context, enquiry *model.Enquiry) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context, filters *model.EnquiryFilters, p model.Pagination) ([]*model.Enquiry, int64, error)
		ListAll(ctx context.Context, filters *model.EnquiryFilters) ([]*model.Enquiry, error)
		Count(ctx context.Context, filters *model.EnquiryFilters) (int64, error)
		Recent(ctx context.Context, limit int) ([]*model.Enquiry, error)
	}

	// DoctorRepository persists the doctor roster and its assigned-queries
	// back-reference list. The array mutations are idempotent.
	DoctorRepository interface {
		Create(ctx context.Context, doctor *model.Doctor) error
		CreateBulk(ctx context.Context, doctors []*model.Doctor) error
		Get(ctx context.Context, id uuid.UUID) (*model.Doctor, error)
		GetByEmployeeID(ctx context.Context, employeeID string) (*model.Doctor, error)
		Update(ctx context.Context, doctor *model.Doctor) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context, p model.Pagination) ([]*model.Doctor, int64, error)
		ListAll(ctx context.Context) ([]*model.Doctor, error)
		Count(ctx context.Context) (int64, error)
		AddAssignedQuery(ctx context.Context, doctorID, enquiryID uuid.UUID) error
		RemoveAssignedQuery(ctx context.Context, doctorID, enquiryID uuid.UUID) error
	}

	// PatientRepository persists the deduplicated patient directory keyed by
	// mobile number.
	PatientRepository interface {
		Create(ctx context.Context, patient *model.Patient) error
		GetByMobile(ctx context.Context, mobile string) (*model.Patient, error)
		Update(ctx context.Context, patient *model.Patient) error
		List(ctx context.Context, p model.Pagination) ([]*model.Patient, int64, error)
		ListAll(ctx context.Context) ([]*model.Patient, error)
		AddRaisedQuery(ctx context.Context, patientID, enquiryID uuid.UUID) error
		RemoveRaisedQuery(ctx context.Context, patientID, enquiryID uuid.UUID) error
	}

	UserRepository interface {
		Create(ctx context.Context, user *model.User) error
		Get(ctx context.Context, id uuid.UUID) (*model.User, error)
		GetByEmail(ctx context.Context, email string) (*model.User, error)
		Update(ctx context.Context, user *model.User) error
	}

	// ContentRepository persists the static site content entities.
	ContentRepository interface {
		CreateService(ctx context.Context, svc *model.ClinicService) error
		GetService(ctx context.Context, id uuid.UUID) (*model.ClinicService, error)
		UpdateService(ctx context.Context, svc *model.ClinicService) error
		DeleteService(ctx context.Context, id uuid.UUID) error
		ListServices(ctx context.Context) ([]*model.ClinicService, error)
		CountServices(ctx context.Context) (int64, error)

		CreateCoreValue(ctx context.Context, cv *model.CoreValue) error
		GetCoreValue(ctx context.Context, id uuid.UUID) (*model.CoreValue, error)
		UpdateCoreValue(ctx context.Context, cv *model.CoreValue) error
		DeleteCoreValue(ctx context.Context, id uuid.UUID) error
		ListCoreValues(ctx context.Context) ([]*model.CoreValue, error)

		CreateSocialMedia(ctx context.Context, sm *model.SocialMedia) error
		GetSocialMedia(ctx context.Context, id uuid.UUID) (*model.SocialMedia, error)
		UpdateSocialMedia(ctx context.Context, sm *model.SocialMedia) error
		DeleteSocialMedia(ctx context.Context, id uuid.UUID) error
		ListSocialMedia(ctx context.Context) ([]*model.SocialMedia, error)

		CreateLeadershipTeam(ctx context.Context, lt *model.LeadershipTeam) error
		GetLeadershipTeam(ctx context.Context, id uuid.UUID) (*model.LeadershipTeam, error)
		UpdateLeadershipTeam(ctx context.Context, lt *model.LeadershipTeam) error
		DeleteLeadershipTeam(ctx context.Context, id uuid.UUID) error
		ListLeadershipTeam(ctx context.Context) ([]*model.LeadershipTeam, error)

		GetHeroDiscount(ctx context.Context) (*model.HeroDiscount, error)
		UpsertHeroDiscount(ctx context.Context, hd *model.HeroDiscount) error
	}

	OutboxRepository interface {
		Create(ctx context.Context, event *model.OutboxEvent) error
		GetPendingEvents(ctx context.Context, limit int) ([]*model.OutboxEvent, error)
		MarkProcessed(ctx context.Context, id uuid.UUID) error
		MarkFailed(ctx context.Context, id uuid.UUID, errMsg string) error
		DeleteProcessedBefore(ctx context.Context, before time.Time) (int64, error)
	}
)
