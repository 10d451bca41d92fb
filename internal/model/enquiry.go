package model

import (
	"github.com/google/uuid"
)

type EnquiryStatus string

const (
	EnquiryStatusNew       EnquiryStatus = "new"
	EnquiryStatusViewed    EnquiryStatus = "viewed"
	EnquiryStatusCompleted EnquiryStatus = "completed"
)

// ValidEnquiryStatus reports whether s is one of the three known statuses.
// Transitions are not restricted, only the value set is.
func ValidEnquiryStatus(s EnquiryStatus) bool {
	switch s {
	case EnquiryStatusNew, EnquiryStatusViewed, EnquiryStatusCompleted:
		return true
	}
	return false
}

// ClinicServices is the fixed list of services an enquiry may request.
var ClinicServices = []string{
	"Medical Equipment on rent",
	"ICU and Ventilation Setup",
	"Home Care",
	"Doctor Consultation",
	"Second Opinion",
}

// ValidClinicService reports whether name is one of the enumerated services.
func ValidClinicService(name string) bool {
	for _, s := range ClinicServices {
		if s == name {
			return true
		}
	}
	return false
}

// AssigneeRef is the expanded display projection of an assigned doctor,
// embedded in enquiry responses.
type AssigneeRef struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Specialization string    `json:"specialization"`
	EmployeeID     string    `json:"employee_id"`
}

// Enquiry is a patient-submitted service request, the central workflow object.
type Enquiry struct {
	Base
	PatientName   string        `db:"patient_name" json:"patient_name"`
	PatientAge    int           `db:"patient_age" json:"patient_age"`
	PatientMob    string        `db:"patient_mob" json:"patient_mob"`
	PatientGender string        `db:"patient_gender" json:"patient_gender,omitempty"`
	Message       string        `db:"message" json:"message"`
	Service       string        `db:"service" json:"service"`
	ModeOfConv    string        `db:"mode_of_conversation" json:"mode_of_conversation,omitempty"`
	Speciality    string        `db:"speciality" json:"speciality,omitempty"`
	Status        EnquiryStatus `db:"status" json:"status"`
	AssigneeID    *uuid.UUID    `db:"assignee_id" json:"-"`
	Assignee      *AssigneeRef  `db:"-" json:"assignee"`
}

// CreateEnquiryRequest is the public intake payload. Status and assignee are
// deliberately absent; intake always starts at status "new" with no assignee,
// whatever the client sends.
type CreateEnquiryRequest struct {
	PatientName   string `json:"patient_name" binding:"required"`
	PatientAge    int    `json:"patient_age" binding:"required,min=1,max=99"`
	PatientMob    string `json:"patient_mob" binding:"required,len=10,numeric"`
	PatientGender string `json:"patient_gender" binding:"omitempty,oneof=male female"`
	Message       string `json:"message" binding:"max=200"`
	Service       string `json:"service" binding:"required"`
	ModeOfConv    string `json:"mode_of_conversation"`
	Speciality    string `json:"speciality"`
}

// UpdateEnquiryRequest is a merge patch: only fields present in the JSON are
// applied. Assignee uses NullableString so that an explicit null (or "")
// clears the assignment while an absent key leaves it unchanged.
type UpdateEnquiryRequest struct {
	PatientName   *string        `json:"patient_name" binding:"omitempty,min=1"`
	PatientAge    *int           `json:"patient_age" binding:"omitempty,min=1,max=99"`
	PatientMob    *string        `json:"patient_mob" binding:"omitempty,len=10,numeric"`
	PatientGender *string        `json:"patient_gender" binding:"omitempty,oneof=male female"`
	Message       *string        `json:"message" binding:"omitempty,max=200"`
	Service       *string        `json:"service"`
	ModeOfConv    *string        `json:"mode_of_conversation"`
	Speciality    *string        `json:"speciality"`
	Status        *EnquiryStatus `json:"status"`
	Assignee      NullableString `json:"assignee"`
}

// EnquiryFilters restrict list projections; both compose with AND.
type EnquiryFilters struct {
	Status   EnquiryStatus
	Assignee *uuid.UUID
}

// EnquiryPage is the pagination envelope returned by list projections.
type EnquiryPage struct {
	Data       []*Enquiry `json:"data"`
	Total      int64      `json:"total"`
	Page       int        `json:"page"`
	Limit      int        `json:"limit"`
	TotalPages int        `json:"totalPages"`
}
