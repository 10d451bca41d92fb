package enquiry

import (
	"context"
	"strconv"

	"github.com/google/uuid"

	"github.com/the247care/clinic-api/internal/model"
	"github.com/the247care/clinic-api/internal/repository"
	apperrors "github.com/the247care/clinic-api/pkg/errors"
	"github.com/the247care/clinic-api/pkg/logger"
	"github.com/the247care/clinic-api/pkg/metrics"
)

// Service owns the enquiry lifecycle: public intake, the merge-patch update
// with assignee reconciliation, and the list projections.
type Service interface {
	Create(ctx context.Context, req *model.CreateEnquiryRequest) (*model.Enquiry, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Enquiry, error)
	Update(ctx context.Context, id uuid.UUID, req *model.UpdateEnquiryRequest) (*model.Enquiry, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filters *model.EnquiryFilters, p model.Pagination) (*model.EnquiryPage, error)
	ListByAssignee(ctx context.Context, doctorID uuid.UUID, p model.Pagination) (*model.EnquiryPage, error)
	ListAll(ctx context.Context, filters *model.EnquiryFilters) ([]*model.Enquiry, error)
}

type service struct {
	enquiries repository.EnquiryRepository
	doctors   repository.DoctorRepository
	patients  repository.PatientRepository
	logger    *logger.Logger
	metrics   *metrics.Metrics
}

func NewService(
	enquiries repository.EnquiryRepository,
	doctors repository.DoctorRepository,
	patients repository.PatientRepository,
	log *logger.Logger,
	m *metrics.Metrics,
) Service {
	return &service{
		enquiries: enquiries,
		doctors:   doctors,
		patients:  patients,
		logger:    log,
		metrics:   m,
	}
}

// Create handles public intake. The patient directory is upserted by mobile
// number before the enquiry is written, then the enquiry id is appended to the
// patient's raised-queries list. Status and assignee are forced to their
// intake values regardless of what the client sent.
func (s *service) Create(ctx context.Context, req *model.CreateEnquiryRequest) (*model.Enquiry, error) {
	if !model.ValidClinicService(req.Service) {
		return nil, apperrors.Validation("unknown service: "+req.Service, nil)
	}

	patient, err := s.upsertPatient(ctx, req)
	if err != nil {
		return nil, err
	}

	enq := &model.Enquiry{
		Base:          model.Base{ID: uuid.New()},
		PatientName:   req.PatientName,
		PatientAge:    req.PatientAge,
		PatientMob:    req.PatientMob,
		PatientGender: req.PatientGender,
		Message:       req.Message,
		Service:       req.Service,
		ModeOfConv:    req.ModeOfConv,
		Speciality:    req.Speciality,
		Status:        model.EnquiryStatusNew,
		AssigneeID:    nil,
	}
	if err := s.enquiries.Create(ctx, enq); err != nil {
		return nil, err
	}

	// Best effort: the enquiry is already durable, a failed back-reference
	// append is repaired by the next idempotent append for this pair.
	if err := s.patients.AddRaisedQuery(ctx, patient.ID, enq.ID); err != nil {
		s.logger.Error(err, "failed to append raised query",
			"patient_id", patient.ID.String(), "enquiry_id", enq.ID.String())
	}

	if s.metrics != nil {
		s.metrics.EnquiriesCreated.Inc()
	}
	return enq, nil
}

// upsertPatient finds the patient by mobile or creates one. On a hit, name
// and age are refreshed only when they differ; the stored gender is kept and
// an unchanged record is not rewritten.
func (s *service) upsertPatient(ctx context.Context, req *model.CreateEnquiryRequest) (*model.Patient, error) {
	patient, err := s.patients.GetByMobile(ctx, req.PatientMob)
	if err != nil {
		if !apperrors.IsNotFound(err) {
			return nil, err
		}
		gender := model.Gender(req.PatientGender)
		if gender == "" {
			gender = model.GenderMale
		}
		patient = &model.Patient{
			Base:          model.Base{ID: uuid.New()},
			PatientName:   req.PatientName,
			PatientAge:    strconv.Itoa(req.PatientAge),
			PatientGender: gender,
			PatientMob:    req.PatientMob,
		}
		if err := s.patients.Create(ctx, patient); err != nil {
			return nil, err
		}
		if s.metrics != nil {
			s.metrics.PatientUpserts.WithLabelValues("created").Inc()
		}
		return patient, nil
	}

	changed := false
	if patient.PatientName != req.PatientName {
		patient.PatientName = req.PatientName
		changed = true
	}
	if age := strconv.Itoa(req.PatientAge); patient.PatientAge != age {
		patient.PatientAge = age
		changed = true
	}
	if !changed {
		return patient, nil
	}
	if err := s.patients.Update(ctx, patient); err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.PatientUpserts.WithLabelValues("refreshed").Inc()
	}
	return patient, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*model.Enquiry, error) {
	return s.enquiries.Get(ctx, id)
}

// Update applies a merge patch and reconciles the doctors' back-reference
// lists when the assignee changes. The enquiry row is the source of truth;
// list maintenance is best effort and idempotent.
func (s *service) Update(ctx context.Context, id uuid.UUID, req *model.UpdateEnquiryRequest) (*model.Enquiry, error) {
	enq, err := s.enquiries.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	oldAssignee := enq.AssigneeID
	newAssignee := oldAssignee
	if req.Assignee.Set {
		if req.Assignee.Value == "" {
			newAssignee = nil
		} else {
			parsed, err := uuid.Parse(req.Assignee.Value)
			if err != nil {
				return nil, apperrors.Validation("invalid assignee id", err)
			}
			newAssignee = &parsed
		}
	}

	if req.PatientName != nil {
		enq.PatientName = *req.PatientName
	}
	if req.PatientAge != nil {
		enq.PatientAge = *req.PatientAge
	}
	if req.PatientMob != nil {
		enq.PatientMob = *req.PatientMob
	}
	if req.PatientGender != nil {
		enq.PatientGender = *req.PatientGender
	}
	if req.Message != nil {
		enq.Message = *req.Message
	}
	if req.Service != nil {
		if !model.ValidClinicService(*req.Service) {
			return nil, apperrors.Validation("unknown service: "+*req.Service, nil)
		}
		enq.Service = *req.Service
	}
	if req.ModeOfConv != nil {
		enq.ModeOfConv = *req.ModeOfConv
	}
	if req.Speciality != nil {
		enq.Speciality = *req.Speciality
	}
	if req.Status != nil {
		if !model.ValidEnquiryStatus(*req.Status) {
			return nil, apperrors.Validation("unknown status: "+string(*req.Status), nil)
		}
		enq.Status = *req.Status
	}
	enq.AssigneeID = newAssignee

	if err := s.enquiries.Update(ctx, enq); err != nil {
		return nil, err
	}

	s.reconcileAssignment(ctx, enq.ID, oldAssignee, newAssignee)

	return s.enquiries.Get(ctx, id)
}

// reconcileAssignment keeps doctors' assigned-queries lists consistent with
// the enquiry's assignee. Removing from the old doctor and appending to the
// new one are independent; a new doctor that no longer exists is skipped
// silently so the enquiry update itself never fails on a stale id.
func (s *service) reconcileAssignment(ctx context.Context, enquiryID uuid.UUID, prev, next *uuid.UUID) {
	if sameAssignee(prev, next) {
		return
	}

	if prev != nil {
		if err := s.doctors.RemoveAssignedQuery(ctx, *prev, enquiryID); err != nil {
			s.logger.Error(err, "failed to remove assigned query",
				"doctor_id", prev.String(), "enquiry_id", enquiryID.String())
		} else if s.metrics != nil {
			s.metrics.AssignmentReconciles.WithLabelValues("remove").Inc()
		}
	}

	if next != nil {
		if _, err := s.doctors.Get(ctx, *next); err != nil {
			if apperrors.IsNotFound(err) {
				if s.metrics != nil {
					s.metrics.AssignmentReconciles.WithLabelValues("skip_missing").Inc()
				}
				s.logger.Warn("assignee doctor missing, skipping back-reference",
					"doctor_id", next.String(), "enquiry_id", enquiryID.String())
				return
			}
			s.logger.Error(err, "failed to load assignee doctor",
				"doctor_id", next.String(), "enquiry_id", enquiryID.String())
			return
		}
		if err := s.doctors.AddAssignedQuery(ctx, *next, enquiryID); err != nil {
			s.logger.Error(err, "failed to add assigned query",
				"doctor_id", next.String(), "enquiry_id", enquiryID.String())
		} else if s.metrics != nil {
			s.metrics.AssignmentReconciles.WithLabelValues("add").Inc()
		}
	}
}

func sameAssignee(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// Delete removes the enquiry and prunes both back-reference lists.
func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	enq, err := s.enquiries.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.enquiries.Delete(ctx, id); err != nil {
		return err
	}

	if enq.AssigneeID != nil {
		if err := s.doctors.RemoveAssignedQuery(ctx, *enq.AssigneeID, id); err != nil {
			s.logger.Error(err, "failed to prune assigned query",
				"doctor_id", enq.AssigneeID.String(), "enquiry_id", id.String())
		}
	}

	patient, err := s.patients.GetByMobile(ctx, enq.PatientMob)
	if err != nil {
		if !apperrors.IsNotFound(err) {
			s.logger.Error(err, "failed to load patient for pruning",
				"patient_mob", enq.PatientMob, "enquiry_id", id.String())
		}
		return nil
	}
	if err := s.patients.RemoveRaisedQuery(ctx, patient.ID, id); err != nil {
		s.logger.Error(err, "failed to prune raised query",
			"patient_id", patient.ID.String(), "enquiry_id", id.String())
	}
	return nil
}

func (s *service) List(ctx context.Context, filters *model.EnquiryFilters, p model.Pagination) (*model.EnquiryPage, error) {
	p.Normalize()
	enquiries, total, err := s.enquiries.List(ctx, filters, p)
	if err != nil {
		return nil, err
	}
	return &model.EnquiryPage{
		Data:       enquiries,
		Total:      total,
		Page:       p.Page,
		Limit:      p.Limit,
		TotalPages: model.TotalPages(total, p.Limit),
	}, nil
}

// ListByAssignee is the doctor's "my enquiries" projection.
func (s *service) ListByAssignee(ctx context.Context, doctorID uuid.UUID, p model.Pagination) (*model.EnquiryPage, error) {
	return s.List(ctx, &model.EnquiryFilters{Assignee: &doctorID}, p)
}

// ListAll returns every matching enquiry without pagination, used by exports.
func (s *service) ListAll(ctx context.Context, filters *model.EnquiryFilters) ([]*model.Enquiry, error) {
	return s.enquiries.ListAll(ctx, filters)
}
