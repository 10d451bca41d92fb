package model

import (
	"github.com/lib/pq"
)

// Patient is a deduplicated profile keyed by 10-digit mobile number. Name and
// age always reflect the most recent enquiry filed under that number.
// QueriesRaised is the append-only back-reference list of enquiry ids.
type Patient struct {
	Base
	PatientName   string         `db:"patient_name" json:"patient_name"`
	PatientAge    string         `db:"patient_age" json:"patient_age"`
	PatientGender Gender         `db:"patient_gender" json:"patient_gender"`
	PatientMob    string         `db:"patient_mob" json:"patient_mob"`
	QueriesRaised pq.StringArray `db:"queries_raised" json:"queries_raised"`
}

type PatientPage struct {
	Data       []*Patient `json:"data"`
	Total      int64      `json:"total"`
	Page       int        `json:"page"`
	Limit      int        `json:"limit"`
	TotalPages int        `json:"totalPages"`
}
