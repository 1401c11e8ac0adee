package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/autoimport-crm/internal/domain/submission"
	"github.com/BruksfildServices01/autoimport-crm/internal/models"
)

var ErrStatusNotFound = domain.ErrStatusNotFound

type LookupGormRepository struct {
	db *gorm.DB
}

func NewLookupGormRepository(db *gorm.DB) *LookupGormRepository {
	return &LookupGormRepository{db: db}
}

func (r *LookupGormRepository) ListStatuses(ctx context.Context) ([]models.Status, error) {
	var statuses []models.Status
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&statuses).Error; err != nil {
		return nil, err
	}
	return statuses, nil
}

// FindStatusByName compara sem diferenciar maiúsculas ("Open" == "open").
func (r *LookupGormRepository) FindStatusByName(
	ctx context.Context,
	name string,
) (*models.Status, error) {

	var status models.Status
	if err := r.db.WithContext(ctx).
		Where("LOWER(name) = LOWER(?)", name).
		Order("id ASC").
		First(&status).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStatusNotFound
		}
		return nil, err
	}
	return &status, nil
}

func (r *LookupGormRepository) ListTags(ctx context.Context) ([]models.Tag, error) {
	var tags []models.Tag
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

func (r *LookupGormRepository) ListProfiles(ctx context.Context) ([]models.Profile, error) {
	var profiles []models.Profile
	if err := r.db.WithContext(ctx).Order("full_name ASC").Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

// ListReferrers é a listagem derivada dos valores distintos de submissions.ref.
func (r *LookupGormRepository) ListReferrers(ctx context.Context) ([]string, error) {
	var refs []string
	if err := r.db.WithContext(ctx).
		Model(&models.Submission{}).
		Where("ref IS NOT NULL AND ref <> ''").
		Distinct("ref").
		Order("ref ASC").
		Pluck("ref", &refs).Error; err != nil {
		return nil, err
	}
	return refs, nil
}

// Compile-time check
var _ domain.LookupRepository = (*LookupGormRepository)(nil)
