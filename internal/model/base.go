package model

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Base contains common fields for all models
type Base struct {
	ID        uuid.UUID `json:"id" db:"id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// Pagination represents common pagination parameters. Page is 1-indexed.
type Pagination struct {
	Page  int `json:"page" form:"page"`
	Limit int `json:"limit" form:"limit"`
}

// Normalize clamps pagination to sane defaults.
func (p *Pagination) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = 10
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
}

// Offset returns the row offset for the current page.
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}

// TotalPages computes ceil(total/limit).
func TotalPages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

// NullableString distinguishes "field absent" from "field present but null or
// empty" in PATCH bodies. Set is true whenever the key appeared in the JSON;
// Value is empty when the client sent null or "".
type NullableString struct {
	Set   bool
	Value string
}

func (n *NullableString) UnmarshalJSON(data []byte) error {
	n.Set = true
	if bytes.Equal(data, []byte("null")) {
		n.Value = ""
		return nil
	}
	return json.Unmarshal(data, &n.Value)
}

func (n NullableString) MarshalJSON() ([]byte, error) {
	if !n.Set || n.Value == "" {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value)
}
