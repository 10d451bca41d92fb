package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/the247care/clinic-api/internal/model"
	"github.com/the247care/clinic-api/internal/repository"
	apperrors "github.com/the247care/clinic-api/pkg/errors"
)

type enquiryRepository struct {
	BaseRepository
}

func NewEnquiryRepository(db *sqlx.DB) repository.EnquiryRepository {
	return &enquiryRepository{NewBaseRepository(db)}
}

// enquiryRow carries the enquiry columns plus the LEFT JOINed assignee
// display fields.
type enquiryRow struct {
	model.Enquiry
	AssigneeName *string `db:"assignee_name"`
	AssigneeSpec *string `db:"assignee_specialization"`
	AssigneeCode *string `db:"assignee_employee_id"`
}

func (row *enquiryRow) toEnquiry() *model.Enquiry {
	e := row.Enquiry
	if e.AssigneeID != nil && row.AssigneeName != nil {
		e.Assignee = &model.AssigneeRef{
			ID:             *e.AssigneeID,
			Name:           *row.AssigneeName,
			Specialization: derefString(row.AssigneeSpec),
			EmployeeID:     derefString(row.AssigneeCode),
		}
	}
	return &e
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

const enquirySelect = `
	SELECT e.id, e.patient_name, e.patient_age, e.patient_mob, e.patient_gender,
		   e.message, e.service, e.mode_of_conversation, e.speciality,
		   e.status, e.assignee_id, e.created_at, e.updated_at,
		   d.name AS assignee_name,
		   d.specialization AS assignee_specialization,
		   d.employee_id AS assignee_employee_id
	FROM enquiries e
	LEFT JOIN doctors d ON d.id = e.assignee_id
`

func (r *enquiryRepository) Create(ctx context.Context, enquiry *model.Enquiry) error {
	query := `
		INSERT INTO enquiries (
			id, patient_name, patient_age, patient_mob, patient_gender,
			message, service, mode_of_conversation, speciality,
			status, assignee_id, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	enquiry.CreatedAt = time.Now()
	enquiry.UpdatedAt = enquiry.CreatedAt

	_, err := r.db.ExecContext(ctx, query,
		enquiry.ID,
		enquiry.PatientName,
		enquiry.PatientAge,
		enquiry.PatientMob,
		enquiry.PatientGender,
		enquiry.Message,
		enquiry.Service,
		enquiry.ModeOfConv,
		enquiry.Speciality,
		enquiry.Status,
		enquiry.AssigneeID,
		enquiry.CreatedAt,
		enquiry.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create enquiry: %w", err)
	}
	return nil
}

func (r *enquiryRepository) Get(ctx context.Context, id uuid.UUID) (*model.Enquiry, error) {
	var row enquiryRow
	err := r.db.GetContext(ctx, &row, enquirySelect+" WHERE e.id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("enquiry", err)
		}
		return nil, fmt.Errorf("failed to get enquiry: %w", err)
	}
	return row.toEnquiry(), nil
}

func (r *enquiryRepository) Update(ctx context.Context, enquiry *model.Enquiry) error {
	query := `
		UPDATE enquiries
		SET patient_name = $1, patient_age = $2, patient_mob = $3,
			patient_gender = $4, message = $5, service = $6,
			mode_of_conversation = $7, speciality = $8,
			status = $9, assignee_id = $10, updated_at = $11
		WHERE id = $12
	`
	enquiry.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		enquiry.PatientName,
		enquiry.PatientAge,
		enquiry.PatientMob,
		enquiry.PatientGender,
		enquiry.Message,
		enquiry.Service,
		enquiry.ModeOfConv,
		enquiry.Speciality,
		enquiry.Status,
		enquiry.AssigneeID,
		enquiry.UpdatedAt,
		enquiry.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update enquiry: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("enquiry", nil)
	}
	return nil
}

func (r *enquiryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM enquiries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete enquiry: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("enquiry", nil)
	}
	return nil
}

func buildEnquiryFilter(filters *model.EnquiryFilters) (string, []interface{}) {
	where := " WHERE 1=1"
	args := []interface{}{}
	argCount := 1

	if filters != nil {
		if filters.Status != "" {
			where += fmt.Sprintf(" AND e.status = $%d", argCount)
			args = append(args, filters.Status)
			argCount++
		}
		if filters.Assignee != nil {
			where += fmt.Sprintf(" AND e.assignee_id = $%d", argCount)
			args = append(args, *filters.Assignee)
			argCount++
		}
	}
	return where, args
}

func (r *enquiryRepository) List(ctx context.Context, filters *model.EnquiryFilters, p model.Pagination) ([]*model.Enquiry, int64, error) {
	where, args := buildEnquiryFilter(filters)

	total, err := r.count(ctx, where, args)
	if err != nil {
		return nil, 0, err
	}

	query := enquirySelect + where +
		fmt.Sprintf(" ORDER BY e.created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, p.Limit, p.Offset())

	var rows []*enquiryRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to list enquiries: %w", err)
	}

	enquiries := make([]*model.Enquiry, 0, len(rows))
	for _, row := range rows {
		enquiries = append(enquiries, row.toEnquiry())
	}
	return enquiries, total, nil
}

func (r *enquiryRepository) ListAll(ctx context.Context, filters *model.EnquiryFilters) ([]*model.Enquiry, error) {
	where, args := buildEnquiryFilter(filters)
	query := enquirySelect + where + " ORDER BY e.created_at DESC"

	var rows []*enquiryRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list enquiries for export: %w", err)
	}

	enquiries := make([]*model.Enquiry, 0, len(rows))
	for _, row := range rows {
		enquiries = append(enquiries, row.toEnquiry())
	}
	return enquiries, nil
}

func (r *enquiryRepository) Count(ctx context.Context, filters *model.EnquiryFilters) (int64, error) {
	where, args := buildEnquiryFilter(filters)
	return r.count(ctx, where, args)
}

func (r *enquiryRepository) count(ctx context.Context, where string, args []interface{}) (int64, error) {
	var total int64
	query := "SELECT COUNT(*) FROM enquiries e" + where
	if err := r.db.GetContext(ctx, &total, query, args...); err != nil {
		return 0, fmt.Errorf("failed to count enquiries: %w", err)
	}
	return total, nil
}

func (r *enquiryRepository) Recent(ctx context.Context, limit int) ([]*model.Enquiry, error) {
	query := enquirySelect + " ORDER BY e.created_at DESC LIMIT $1"

	var rows []*enquiryRow
	if err := r.db.SelectContext(ctx, &rows, query, limit); err != nil {
		return nil, fmt.Errorf("failed to load recent enquiries: %w", err)
	}

	enquiries := make([]*model.Enquiry, 0, len(rows))
	for _, row := range rows {
		enquiries = append(enquiries, row.toEnquiry())
	}
	return enquiries, nil
}
