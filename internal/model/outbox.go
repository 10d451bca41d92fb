package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type OutboxStatus string

const (
	OutboxStatusPending   OutboxStatus = "pending"
	OutboxStatusProcessed OutboxStatus = "processed"
	OutboxStatusFailed    OutboxStatus = "failed"
)

// OutboxEvent is a persisted domain event awaiting publication to the broker.
type OutboxEvent struct {
	ID           uuid.UUID       `db:"id" json:"id"`
	EventType    string          `db:"event_type" json:"event_type"`
	Payload      json.RawMessage `db:"payload" json:"payload"`
	Status       OutboxStatus    `db:"status" json:"status"`
	ErrorMessage *string         `db:"error_message" json:"error_message,omitempty"`
	CreatedAt    time.Time       `db:"created_at" json:"created_at"`
	ProcessedAt  *time.Time      `db:"processed_at" json:"processed_at,omitempty"`
	UpdatedAt    time.Time       `db:"updated_at" json:"updated_at"`
}

// Event types emitted by mutation handlers.
const (
	EventEnquiryCreated = "ENQUIRY_CREATE"
	EventEnquiryUpdated = "ENQUIRY_UPDATE"
	EventEnquiryDeleted = "ENQUIRY_DELETE"
	EventDoctorCreated  = "DOCTOR_CREATE"
	EventDoctorUpdated  = "DOCTOR_UPDATE"
	EventDoctorDeleted  = "DOCTOR_DELETE"
)
