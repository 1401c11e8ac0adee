package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/autoimport-crm/internal/domain/submission"
	"github.com/BruksfildServices01/autoimport-crm/internal/models"
)

type SubmissionGormRepository struct {
	db *gorm.DB
}

func NewSubmissionGormRepository(db *gorm.DB) *SubmissionGormRepository {
	return &SubmissionGormRepository{db: db}
}

// --------------------------------------------------
// Query
// --------------------------------------------------

// List aplica todos os filtros em conjunção (AND). O filtro de tags é
// resolvido antes, em submission_tags; sem ids, nenhuma consulta principal é feita.
func (r *SubmissionGormRepository) List(
	ctx context.Context,
	f domain.Filters,
) ([]models.Submission, error) {

	q := r.db.WithContext(ctx).
		Model(&models.Submission{}).
		Preload("SubmissionTags")

	if f.StatusID != nil {
		q = q.Where("status_id = ?", *f.StatusID)
	}

	if f.UserID != nil {
		q = q.Where("assigned_user_id = ?", *f.UserID)
	}

	if len(f.Referrers) > 0 {
		q = q.Where("ref IN ?", f.Referrers)
	}

	// datas chegam à meia-noite do fuso configurado; created_at é gravado em UTC
	if f.DateFrom != nil {
		q = q.Where("created_at >= ?", f.DateFrom.UTC())
	}

	if to := f.DateToExclusive(); to != nil {
		q = q.Where("created_at < ?", to.UTC())
	}

	if len(f.TagIDs) > 0 {
		ids, err := r.submissionIDsWithAnyTag(ctx, f.TagIDs)
		if err != nil {
			return nil, err
		}
		if len(ids) == 0 {
			return []models.Submission{}, nil
		}
		q = q.Where("id IN ?", ids)
	}

	var subs []models.Submission
	if err := q.
		Order("created_at DESC").
		Order("id DESC").
		Find(&subs).Error; err != nil {
		return nil, err
	}

	return subs, nil
}

func (r *SubmissionGormRepository) submissionIDsWithAnyTag(
	ctx context.Context,
	tagIDs []uint,
) ([]uint, error) {

	var ids []uint
	if err := r.db.WithContext(ctx).
		Model(&models.SubmissionTag{}).
		Distinct("submission_id").
		Where("tag_id IN ?", tagIDs).
		Pluck("submission_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *SubmissionGormRepository) Get(
	ctx context.Context,
	id uint,
) (*models.Submission, error) {

	var sub models.Submission
	if err := r.db.WithContext(ctx).
		Preload("SubmissionTags").
		First(&sub, id).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	return &sub, nil
}

// --------------------------------------------------
// Mutations
// --------------------------------------------------

func (r *SubmissionGormRepository) Create(
	ctx context.Context,
	s *models.Submission,
) error {
	if !s.CreatedAt.IsZero() {
		s.CreatedAt = s.CreatedAt.UTC()
	}
	return r.db.WithContext(ctx).Omit("SubmissionTags", "Status", "AssignedUser").Create(s).Error
}

// Update troca status/responsável e substitui as tags (apaga tudo, reinsere)
// numa única transação: uma falha em qualquer passo desfaz os anteriores.
func (r *SubmissionGormRepository) Update(
	ctx context.Context,
	id uint,
	in domain.Update,
) (*models.Submission, error) {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		if err := checkReferences(tx, in); err != nil {
			return err
		}

		res := tx.Model(&models.Submission{}).
			Where("id = ?", id).
			Updates(map[string]any{
				"status_id":        nullable(in.StatusID),
				"assigned_user_id": nullable(in.UserID),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrNotFound
		}

		if err := tx.
			Where("submission_id = ?", id).
			Delete(&models.SubmissionTag{}).Error; err != nil {
			return err
		}

		if len(in.TagIDs) == 0 {
			return nil
		}

		links := make([]models.SubmissionTag, 0, len(in.TagIDs))
		for _, tagID := range in.TagIDs {
			links = append(links, models.SubmissionTag{
				SubmissionID: id,
				TagID:        tagID,
			})
		}

		return tx.Omit("Tag").Create(&links).Error
	})
	if err != nil {
		return nil, err
	}

	return r.Get(ctx, id)
}

// checkReferences confirma status, responsável e tags antes de gravar, para
// que um id inexistente vire erro de negócio e não violação de FK.
func checkReferences(tx *gorm.DB, in domain.Update) error {
	if in.StatusID != nil {
		if n, err := countWhere(tx, &models.Status{}, "id = ?", *in.StatusID); err != nil {
			return err
		} else if n == 0 {
			return domain.ErrStatusNotFound
		}
	}

	if in.UserID != nil {
		if n, err := countWhere(tx, &models.Profile{}, "id = ?", *in.UserID); err != nil {
			return err
		} else if n == 0 {
			return domain.ErrUserNotFound
		}
	}

	if ids := domain.UniqueIDs(in.TagIDs); len(ids) > 0 {
		n, err := countWhere(tx, &models.Tag{}, "id IN ?", ids)
		if err != nil {
			return err
		}
		if n != int64(len(ids)) {
			return domain.ErrTagNotFound
		}
	}

	return nil
}

func countWhere(tx *gorm.DB, model any, query string, args ...any) (int64, error) {
	var n int64
	err := tx.Model(model).Where(query, args...).Count(&n).Error
	return n, err
}

func nullable[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}

// Compile-time check
var _ domain.Repository = (*SubmissionGormRepository)(nil)
