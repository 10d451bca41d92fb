package enquiry

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/the247care/clinic-api/internal/model"
	enquiryservice "github.com/the247care/clinic-api/internal/service/enquiry"
	"github.com/the247care/clinic-api/pkg/logger"
)

// stubEnquiryService records intake calls so tests can assert that rejected
// payloads never reach the service layer.
type stubEnquiryService struct {
	createCalls int
	lastCreate  *model.CreateEnquiryRequest
}

func (s *stubEnquiryService) Create(_ context.Context, req *model.CreateEnquiryRequest) (*model.Enquiry, error) {
	s.createCalls++
	s.lastCreate = req
	return &model.Enquiry{
		Base:        model.Base{ID: uuid.New()},
		PatientName: req.PatientName,
		PatientAge:  req.PatientAge,
		PatientMob:  req.PatientMob,
		Message:     req.Message,
		Service:     req.Service,
		Status:      model.EnquiryStatusNew,
	}, nil
}

func (s *stubEnquiryService) Get(_ context.Context, _ uuid.UUID) (*model.Enquiry, error) {
	return nil, nil
}

func (s *stubEnquiryService) Update(_ context.Context, _ uuid.UUID, _ *model.UpdateEnquiryRequest) (*model.Enquiry, error) {
	return nil, nil
}

func (s *stubEnquiryService) Delete(_ context.Context, _ uuid.UUID) error { return nil }

func (s *stubEnquiryService) List(_ context.Context, _ *model.EnquiryFilters, _ model.Pagination) (*model.EnquiryPage, error) {
	return nil, nil
}

func (s *stubEnquiryService) ListByAssignee(_ context.Context, _ uuid.UUID, _ model.Pagination) (*model.EnquiryPage, error) {
	return nil, nil
}

func (s *stubEnquiryService) ListAll(_ context.Context, _ *model.EnquiryFilters) ([]*model.Enquiry, error) {
	return nil, nil
}

var _ enquiryservice.Service = (*stubEnquiryService)(nil)

type stubOutboxRepo struct {
	events []*model.OutboxEvent
}

func (r *stubOutboxRepo) Create(_ context.Context, event *model.OutboxEvent) error {
	r.events = append(r.events, event)
	return nil
}

func (r *stubOutboxRepo) GetPendingEvents(_ context.Context, _ int) ([]*model.OutboxEvent, error) {
	return nil, nil
}

func (r *stubOutboxRepo) MarkProcessed(_ context.Context, _ uuid.UUID) error { return nil }

func (r *stubOutboxRepo) MarkFailed(_ context.Context, _ uuid.UUID, _ string) error { return nil }

func (r *stubOutboxRepo) DeleteProcessedBefore(_ context.Context, _ time.Time) (int64, error) {
	return 0, nil
}

type noopNotifier struct{}

func (noopNotifier) NotifyNewEnquiry(_ *model.Enquiry) {}

func newIntakeRouter() (*gin.Engine, *stubEnquiryService, *stubOutboxRepo) {
	gin.SetMode(gin.TestMode)

	svc := &stubEnquiryService{}
	outbox := &stubOutboxRepo{}
	log := logger.NewLogger(&logger.Config{Level: logger.ErrorLevel, Output: io.Discard})
	h := NewHandler(svc, nil, outbox, noopNotifier{}, log)

	engine := gin.New()
	h.RegisterPublicRoutes(engine.Group("/api/v1"))
	return engine, svc, outbox
}

func postIntake(t *testing.T, engine *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/enquiries", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestCreateEnquiryRejectsInvalidIntake(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"short mobile", `{"patient_name":"Asha Rao","patient_age":42,"patient_mob":"12345","message":"help","service":"Home Care"}`},
		{"non-numeric mobile", `{"patient_name":"Asha Rao","patient_age":42,"patient_mob":"98765abcde","message":"help","service":"Home Care"}`},
		{"age zero", `{"patient_name":"Asha Rao","patient_age":0,"patient_mob":"9876543210","message":"help","service":"Home Care"}`},
		{"age too high", `{"patient_name":"Asha Rao","patient_age":100,"patient_mob":"9876543210","message":"help","service":"Home Care"}`},
		{"message too long", `{"patient_name":"Asha Rao","patient_age":42,"patient_mob":"9876543210","message":"` + strings.Repeat("x", 201) + `","service":"Home Care"}`},
		{"missing service", `{"patient_name":"Asha Rao","patient_age":42,"patient_mob":"9876543210","message":"help"}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			engine, svc, outbox := newIntakeRouter()

			w := postIntake(t, engine, tc.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			// Binding failed, so nothing was written anywhere.
			assert.Zero(t, svc.createCalls)
			assert.Empty(t, outbox.events)
		})
	}
}

func TestCreateEnquiryAcceptsValidIntake(t *testing.T) {
	engine, svc, outbox := newIntakeRouter()

	w := postIntake(t, engine,
		`{"patient_name":"Asha Rao","patient_age":42,"patient_mob":"9876543210","message":"Need home care","service":"Home Care"}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	require.Equal(t, 1, svc.createCalls)
	assert.Equal(t, "9876543210", svc.lastCreate.PatientMob)

	require.Len(t, outbox.events, 1)
	assert.Equal(t, model.EventEnquiryCreated, outbox.events[0].EventType)
}
