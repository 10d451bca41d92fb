package model

import (
	"github.com/lib/pq"
)

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// Weekday names used in availability entries, one per day.
var Weekdays = []string{
	"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
}

// AvailabilitySlot describes a doctor's working window for one weekday.
type AvailabilitySlot struct {
	Day         string  `json:"day" binding:"required,oneof=monday tuesday wednesday thursday friday saturday sunday"`
	StartTime   *string `json:"startTime"`
	EndTime     *string `json:"endTime"`
	IsAvailable bool    `json:"isAvailable"`
}

// Doctor is a staff member who can be assigned enquiries. QueriesAssigned is
// the denormalized back-reference list mirroring enquiries whose assignee
// points at this doctor.
type Doctor struct {
	Base
	Name             string             `db:"name" json:"name"`
	Specialization   string             `db:"specialization" json:"specialization"`
	Mobile           string             `db:"mobile" json:"mobile"`
	EmployeeID       string             `db:"employee_id" json:"employee_id"`
	Gender           Gender             `db:"gender" json:"gender"`
	AvatarURL        *string            `db:"avatar_url" json:"avatar_url"`
	Availability     []AvailabilitySlot `db:"-" json:"availability"`
	AvailabilityJSON string             `db:"availability" json:"-"`
	QueriesAssigned  pq.StringArray     `db:"queries_assigned" json:"queries_assigned"`
}

type CreateDoctorRequest struct {
	Name           string             `json:"name" binding:"required"`
	Specialization string             `json:"specialization" binding:"required"`
	Mobile         string             `json:"mobile" binding:"required,len=10,numeric"`
	EmployeeID     string             `json:"employee_id" binding:"required"`
	Gender         Gender             `json:"gender" binding:"required,oneof=male female"`
	AvatarURL      *string            `json:"avatar_url"`
	Availability   []AvailabilitySlot `json:"availability" binding:"omitempty,dive"`
}

type BulkCreateDoctorRequest struct {
	Doctors []CreateDoctorRequest `json:"doctors" binding:"required,min=1,dive"`
}

// UpdateDoctorRequest is a merge patch. The employee code is excluded from the
// doctor self-service path at the handler layer.
type UpdateDoctorRequest struct {
	Name           *string            `json:"name"`
	Specialization *string            `json:"specialization"`
	Mobile         *string            `json:"mobile" binding:"omitempty,len=10,numeric"`
	EmployeeID     *string            `json:"employee_id"`
	Gender         *Gender            `json:"gender" binding:"omitempty,oneof=male female"`
	AvatarURL      *string            `json:"avatar_url"`
	Availability   []AvailabilitySlot `json:"availability" binding:"omitempty,dive"`
}

type UpdateAvailabilityRequest struct {
	Availability []AvailabilitySlot `json:"availability" binding:"required,len=7,dive"`
}

type DoctorPage struct {
	Data       []*Doctor `json:"data"`
	Total      int64     `json:"total"`
	Page       int       `json:"page"`
	Limit      int       `json:"limit"`
	TotalPages int       `json:"totalPages"`
}
