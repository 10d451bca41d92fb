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

type contentRepository struct {
	BaseRepository
}

func NewContentRepository(db *sqlx.DB) repository.ContentRepository {
	return &contentRepository{NewBaseRepository(db)}
}

// Services

func (r *contentRepository) CreateService(ctx context.Context, svc *model.ClinicService) error {
	query := `
		INSERT INTO services (id, title, description, perks, book_via, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	svc.CreatedAt = time.Now()
	svc.UpdatedAt = svc.CreatedAt

	_, err := r.db.ExecContext(ctx, query,
		svc.ID, svc.Title, svc.Description, svc.Perks, svc.BookVia,
		svc.CreatedAt, svc.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create service: %w", err)
	}
	return nil
}

func (r *contentRepository) GetService(ctx context.Context, id uuid.UUID) (*model.ClinicService, error) {
	var svc model.ClinicService
	err := r.db.GetContext(ctx, &svc, `SELECT * FROM services WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("service", err)
		}
		return nil, fmt.Errorf("failed to get service: %w", err)
	}
	return &svc, nil
}

func (r *contentRepository) UpdateService(ctx context.Context, svc *model.ClinicService) error {
	query := `
		UPDATE services
		SET title = $1, description = $2, perks = $3, book_via = $4, updated_at = $5
		WHERE id = $6
	`
	svc.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		svc.Title, svc.Description, svc.Perks, svc.BookVia, svc.UpdatedAt, svc.ID)
	if err != nil {
		return fmt.Errorf("failed to update service: %w", err)
	}
	return requireRow(result, "service")
}

func (r *contentRepository) DeleteService(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM services WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete service: %w", err)
	}
	return requireRow(result, "service")
}

func (r *contentRepository) ListServices(ctx context.Context) ([]*model.ClinicService, error) {
	var services []*model.ClinicService
	err := r.db.SelectContext(ctx, &services, `SELECT * FROM services ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	return services, nil
}

func (r *contentRepository) CountServices(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM services`); err != nil {
		return 0, fmt.Errorf("failed to count services: %w", err)
	}
	return total, nil
}

// Core values

func (r *contentRepository) CreateCoreValue(ctx context.Context, cv *model.CoreValue) error {
	query := `
		INSERT INTO core_values (id, icon_url, title, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	cv.CreatedAt = time.Now()
	cv.UpdatedAt = cv.CreatedAt

	_, err := r.db.ExecContext(ctx, query,
		cv.ID, cv.IconURL, cv.Title, cv.Description, cv.CreatedAt, cv.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create core value: %w", err)
	}
	return nil
}

func (r *contentRepository) GetCoreValue(ctx context.Context, id uuid.UUID) (*model.CoreValue, error) {
	var cv model.CoreValue
	err := r.db.GetContext(ctx, &cv, `SELECT * FROM core_values WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("core value", err)
		}
		return nil, fmt.Errorf("failed to get core value: %w", err)
	}
	return &cv, nil
}

func (r *contentRepository) UpdateCoreValue(ctx context.Context, cv *model.CoreValue) error {
	query := `
		UPDATE core_values
		SET icon_url = $1, title = $2, description = $3, updated_at = $4
		WHERE id = $5
	`
	cv.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		cv.IconURL, cv.Title, cv.Description, cv.UpdatedAt, cv.ID)
	if err != nil {
		return fmt.Errorf("failed to update core value: %w", err)
	}
	return requireRow(result, "core value")
}

func (r *contentRepository) DeleteCoreValue(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM core_values WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete core value: %w", err)
	}
	return requireRow(result, "core value")
}

func (r *contentRepository) ListCoreValues(ctx context.Context) ([]*model.CoreValue, error) {
	var values []*model.CoreValue
	err := r.db.SelectContext(ctx, &values, `SELECT * FROM core_values ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list core values: %w", err)
	}
	return values, nil
}

// Social media

func (r *contentRepository) CreateSocialMedia(ctx context.Context, sm *model.SocialMedia) error {
	query := `
		INSERT INTO social_media (id, title, icon_url, href, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	sm.CreatedAt = time.Now()
	sm.UpdatedAt = sm.CreatedAt

	_, err := r.db.ExecContext(ctx, query,
		sm.ID, sm.Title, sm.IconURL, sm.Href, sm.CreatedAt, sm.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create social media link: %w", err)
	}
	return nil
}

func (r *contentRepository) GetSocialMedia(ctx context.Context, id uuid.UUID) (*model.SocialMedia, error) {
	var sm model.SocialMedia
	err := r.db.GetContext(ctx, &sm, `SELECT * FROM social_media WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("social media link", err)
		}
		return nil, fmt.Errorf("failed to get social media link: %w", err)
	}
	return &sm, nil
}

func (r *contentRepository) UpdateSocialMedia(ctx context.Context, sm *model.SocialMedia) error {
	query := `
		UPDATE social_media
		SET title = $1, icon_url = $2, href = $3, updated_at = $4
		WHERE id = $5
	`
	sm.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		sm.Title, sm.IconURL, sm.Href, sm.UpdatedAt, sm.ID)
	if err != nil {
		return fmt.Errorf("failed to update social media link: %w", err)
	}
	return requireRow(result, "social media link")
}

func (r *contentRepository) DeleteSocialMedia(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM social_media WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete social media link: %w", err)
	}
	return requireRow(result, "social media link")
}

func (r *contentRepository) ListSocialMedia(ctx context.Context) ([]*model.SocialMedia, error) {
	var links []*model.SocialMedia
	err := r.db.SelectContext(ctx, &links, `SELECT * FROM social_media ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list social media links: %w", err)
	}
	return links, nil
}

// Leadership team

func (r *contentRepository) CreateLeadershipTeam(ctx context.Context, lt *model.LeadershipTeam) error {
	query := `
		INSERT INTO leadership_team (id, designation, member_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	lt.CreatedAt = time.Now()
	lt.UpdatedAt = lt.CreatedAt

	_, err := r.db.ExecContext(ctx, query,
		lt.ID, lt.Designation, lt.MemberID, lt.CreatedAt, lt.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create leadership team entry: %w", err)
	}
	return nil
}

func (r *contentRepository) GetLeadershipTeam(ctx context.Context, id uuid.UUID) (*model.LeadershipTeam, error) {
	var lt model.LeadershipTeam
	err := r.db.GetContext(ctx, &lt, `SELECT * FROM leadership_team WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("leadership team entry", err)
		}
		return nil, fmt.Errorf("failed to get leadership team entry: %w", err)
	}
	return &lt, nil
}

func (r *contentRepository) UpdateLeadershipTeam(ctx context.Context, lt *model.LeadershipTeam) error {
	query := `
		UPDATE leadership_team
		SET designation = $1, member_id = $2, updated_at = $3
		WHERE id = $4
	`
	lt.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		lt.Designation, lt.MemberID, lt.UpdatedAt, lt.ID)
	if err != nil {
		return fmt.Errorf("failed to update leadership team entry: %w", err)
	}
	return requireRow(result, "leadership team entry")
}

func (r *contentRepository) DeleteLeadershipTeam(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM leadership_team WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete leadership team entry: %w", err)
	}
	return requireRow(result, "leadership team entry")
}

func (r *contentRepository) ListLeadershipTeam(ctx context.Context) ([]*model.LeadershipTeam, error) {
	var entries []*model.LeadershipTeam
	err := r.db.SelectContext(ctx, &entries, `SELECT * FROM leadership_team ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list leadership team: %w", err)
	}
	return entries, nil
}

// Hero discount (singleton row)

func (r *contentRepository) GetHeroDiscount(ctx context.Context) (*model.HeroDiscount, error) {
	var hd model.HeroDiscount
	err := r.db.GetContext(ctx, &hd, `SELECT * FROM hero_discount ORDER BY created_at ASC LIMIT 1`)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("hero discount", err)
		}
		return nil, fmt.Errorf("failed to get hero discount: %w", err)
	}
	return &hd, nil
}

func (r *contentRepository) UpsertHeroDiscount(ctx context.Context, hd *model.HeroDiscount) error {
	query := `
		INSERT INTO hero_discount (id, discount, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE
		SET discount = EXCLUDED.discount,
			is_active = EXCLUDED.is_active,
			updated_at = EXCLUDED.updated_at
	`
	now := time.Now()
	if hd.CreatedAt.IsZero() {
		hd.CreatedAt = now
	}
	hd.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, query,
		hd.ID, hd.Discount, hd.IsActive, hd.CreatedAt, hd.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert hero discount: %w", err)
	}
	return nil
}

func requireRow(result sql.Result, resource string) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound(resource, nil)
	}
	return nil
}
