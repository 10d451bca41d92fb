package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/the247care/clinic-api/internal/model"
	"github.com/the247care/clinic-api/internal/repository"
	apperrors "github.com/the247care/clinic-api/pkg/errors"
)

type doctorRepository struct {
	BaseRepository
}

func NewDoctorRepository(db *sqlx.DB) repository.DoctorRepository {
	return &doctorRepository{NewBaseRepository(db)}
}

const doctorColumns = `
	id, name, specialization, mobile, employee_id, gender, avatar_url,
	availability, queries_assigned, created_at, updated_at
`

const doctorInsert = `
	INSERT INTO doctors (
		id, name, specialization, mobile, employee_id, gender, avatar_url,
		availability, queries_assigned, created_at, updated_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
`

func (r *doctorRepository) Create(ctx context.Context, doctor *model.Doctor) error {
	doctor.CreatedAt = time.Now()
	doctor.UpdatedAt = doctor.CreatedAt

	_, err := r.db.ExecContext(ctx, doctorInsert, doctorArgs(doctor)...)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.Conflict(fmt.Sprintf("doctor with employee id %s already exists", doctor.EmployeeID), err)
		}
		return fmt.Errorf("failed to create doctor: %w", err)
	}
	return nil
}

// CreateBulk inserts a batch of doctors in a single transaction so a CSV
// import either lands whole or not at all.
func (r *doctorRepository) CreateBulk(ctx context.Context, doctors []*model.Doctor) error {
	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		for _, doctor := range doctors {
			doctor.CreatedAt = time.Now()
			doctor.UpdatedAt = doctor.CreatedAt
			if _, err := tx.ExecContext(ctx, doctorInsert, doctorArgs(doctor)...); err != nil {
				if isUniqueViolation(err) {
					return apperrors.Conflict(fmt.Sprintf("doctor with employee id %s already exists", doctor.EmployeeID), err)
				}
				return fmt.Errorf("failed to create doctor %s: %w", doctor.EmployeeID, err)
			}
		}
		return nil
	})
}

func doctorArgs(d *model.Doctor) []interface{} {
	return []interface{}{
		d.ID,
		d.Name,
		d.Specialization,
		d.Mobile,
		d.EmployeeID,
		d.Gender,
		d.AvatarURL,
		d.AvailabilityJSON,
		d.QueriesAssigned,
		d.CreatedAt,
		d.UpdatedAt,
	}
}

func (r *doctorRepository) Get(ctx context.Context, id uuid.UUID) (*model.Doctor, error) {
	var doctor model.Doctor
	err := r.db.GetContext(ctx, &doctor,
		`SELECT `+doctorColumns+` FROM doctors WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("doctor", err)
		}
		return nil, fmt.Errorf("failed to get doctor: %w", err)
	}
	return &doctor, nil
}

func (r *doctorRepository) GetByEmployeeID(ctx context.Context, employeeID string) (*model.Doctor, error) {
	var doctor model.Doctor
	err := r.db.GetContext(ctx, &doctor,
		`SELECT `+doctorColumns+` FROM doctors WHERE employee_id = $1`, employeeID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("doctor", err)
		}
		return nil, fmt.Errorf("failed to get doctor by employee id: %w", err)
	}
	return &doctor, nil
}

func (r *doctorRepository) Update(ctx context.Context, doctor *model.Doctor) error {
	query := `
		UPDATE doctors
		SET name = $1, specialization = $2, mobile = $3, employee_id = $4,
			gender = $5, avatar_url = $6, availability = $7, updated_at = $8
		WHERE id = $9
	`
	doctor.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		doctor.Name,
		doctor.Specialization,
		doctor.Mobile,
		doctor.EmployeeID,
		doctor.Gender,
		doctor.AvatarURL,
		doctor.AvailabilityJSON,
		doctor.UpdatedAt,
		doctor.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.Conflict(fmt.Sprintf("doctor with employee id %s already exists", doctor.EmployeeID), err)
		}
		return fmt.Errorf("failed to update doctor: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("doctor", nil)
	}
	return nil
}

func (r *doctorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM doctors WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete doctor: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("doctor", nil)
	}
	return nil
}

func (r *doctorRepository) List(ctx context.Context, p model.Pagination) ([]*model.Doctor, int64, error) {
	total, err := r.Count(ctx)
	if err != nil {
		return nil, 0, err
	}

	var doctors []*model.Doctor
	err = r.db.SelectContext(ctx, &doctors,
		`SELECT `+doctorColumns+` FROM doctors ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		p.Limit, p.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list doctors: %w", err)
	}
	return doctors, total, nil
}

func (r *doctorRepository) ListAll(ctx context.Context) ([]*model.Doctor, error) {
	var doctors []*model.Doctor
	err := r.db.SelectContext(ctx, &doctors,
		`SELECT `+doctorColumns+` FROM doctors ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list doctors for export: %w", err)
	}
	return doctors, nil
}

func (r *doctorRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM doctors`); err != nil {
		return 0, fmt.Errorf("failed to count doctors: %w", err)
	}
	return total, nil
}

// AddAssignedQuery appends enquiryID to the doctor's back-reference list
// unless it is already present. A missing doctor is a no-op.
func (r *doctorRepository) AddAssignedQuery(ctx context.Context, doctorID, enquiryID uuid.UUID) error {
	query := `
		UPDATE doctors
		SET queries_assigned = array_append(queries_assigned, $2), updated_at = $3
		WHERE id = $1 AND NOT ($2 = ANY(queries_assigned))
	`
	_, err := r.db.ExecContext(ctx, query, doctorID, enquiryID.String(), time.Now())
	if err != nil {
		return fmt.Errorf("failed to add assigned query: %w", err)
	}
	return nil
}

// RemoveAssignedQuery drops enquiryID from the doctor's back-reference list.
// A missing doctor or an absent entry is a no-op.
func (r *doctorRepository) RemoveAssignedQuery(ctx context.Context, doctorID, enquiryID uuid.UUID) error {
	query := `
		UPDATE doctors
		SET queries_assigned = array_remove(queries_assigned, $2), updated_at = $3
		WHERE id = $1
	`
	_, err := r.db.ExecContext(ctx, query, doctorID, enquiryID.String(), time.Now())
	if err != nil {
		return fmt.Errorf("failed to remove assigned query: %w", err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
