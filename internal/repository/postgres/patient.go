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

type patientRepository struct {
	BaseRepository
}

func NewPatientRepository(db *sqlx.DB) repository.PatientRepository {
	return &patientRepository{NewBaseRepository(db)}
}

const patientColumns = `
	id, patient_name, patient_age, patient_gender, patient_mob,
	queries_raised, created_at, updated_at
`

func (r *patientRepository) Create(ctx context.Context, patient *model.Patient) error {
	query := `
		INSERT INTO patients (
			id, patient_name, patient_age, patient_gender, patient_mob,
			queries_raised, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	patient.CreatedAt = time.Now()
	patient.UpdatedAt = patient.CreatedAt

	_, err := r.db.ExecContext(ctx, query,
		patient.ID,
		patient.PatientName,
		patient.PatientAge,
		patient.PatientGender,
		patient.PatientMob,
		patient.QueriesRaised,
		patient.CreatedAt,
		patient.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create patient: %w", err)
	}
	return nil
}

func (r *patientRepository) GetByMobile(ctx context.Context, mobile string) (*model.Patient, error) {
	var patient model.Patient
	err := r.db.GetContext(ctx, &patient,
		`SELECT `+patientColumns+` FROM patients WHERE patient_mob = $1`, mobile)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("patient", err)
		}
		return nil, fmt.Errorf("failed to get patient by mobile: %w", err)
	}
	return &patient, nil
}

func (r *patientRepository) Update(ctx context.Context, patient *model.Patient) error {
	query := `
		UPDATE patients
		SET patient_name = $1, patient_age = $2, patient_gender = $3, updated_at = $4
		WHERE id = $5
	`
	patient.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		patient.PatientName,
		patient.PatientAge,
		patient.PatientGender,
		patient.UpdatedAt,
		patient.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update patient: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("patient", nil)
	}
	return nil
}

func (r *patientRepository) List(ctx context.Context, p model.Pagination) ([]*model.Patient, int64, error) {
	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM patients`); err != nil {
		return nil, 0, fmt.Errorf("failed to count patients: %w", err)
	}

	var patients []*model.Patient
	err := r.db.SelectContext(ctx, &patients,
		`SELECT `+patientColumns+` FROM patients ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		p.Limit, p.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list patients: %w", err)
	}
	return patients, total, nil
}

func (r *patientRepository) ListAll(ctx context.Context) ([]*model.Patient, error) {
	var patients []*model.Patient
	err := r.db.SelectContext(ctx, &patients,
		`SELECT `+patientColumns+` FROM patients ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list patients for export: %w", err)
	}
	return patients, nil
}

// AddRaisedQuery appends enquiryID to the patient's raised-queries list
// unless it is already present.
func (r *patientRepository) AddRaisedQuery(ctx context.Context, patientID, enquiryID uuid.UUID) error {
	query := `
		UPDATE patients
		SET queries_raised = array_append(queries_raised, $2), updated_at = $3
		WHERE id = $1 AND NOT ($2 = ANY(queries_raised))
	`
	_, err := r.db.ExecContext(ctx, query, patientID, enquiryID.String(), time.Now())
	if err != nil {
		return fmt.Errorf("failed to add raised query: %w", err)
	}
	return nil
}

// RemoveRaisedQuery drops enquiryID from the patient's raised-queries list.
func (r *patientRepository) RemoveRaisedQuery(ctx context.Context, patientID, enquiryID uuid.UUID) error {
	query := `
		UPDATE patients
		SET queries_raised = array_remove(queries_raised, $2), updated_at = $3
		WHERE id = $1
	`
	_, err := r.db.ExecContext(ctx, query, patientID, enquiryID.String(), time.Now())
	if err != nil {
		return fmt.Errorf("failed to remove raised query: %w", err)
	}
	return nil
}
