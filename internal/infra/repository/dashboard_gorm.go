package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/autoimport-crm/internal/models"
	"github.com/BruksfildServices01/autoimport-crm/internal/usecase/dashboard"
)

type DashboardGormRepository struct {
	db *gorm.DB
}

func NewDashboardGormRepository(db *gorm.DB) *DashboardGormRepository {
	return &DashboardGormRepository{db: db}
}

func (r *DashboardGormRepository) StatusCounts(ctx context.Context) ([]dashboard.StatusCount, error) {
	var out []dashboard.StatusCount
	if err := r.db.WithContext(ctx).
		Model(&models.Status{}).
		Select("statuses.id AS id, statuses.name AS name, COUNT(submissions.id) AS count").
		Joins("LEFT JOIN submissions ON submissions.status_id = statuses.id").
		Group("statuses.id, statuses.name").
		Order("statuses.id ASC").
		Scan(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *DashboardGormRepository) CreatedBetween(
	ctx context.Context,
	from, to time.Time,
) (map[uint]int64, error) {

	var rows []struct {
		StatusID uint
		Total    int64
	}
	if err := r.db.WithContext(ctx).
		Model(&models.Submission{}).
		Select("status_id, COUNT(*) AS total").
		Where("status_id IS NOT NULL").
		Where("created_at >= ? AND created_at < ?", from, to).
		Group("status_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	out := make(map[uint]int64, len(rows))
	for _, row := range rows {
		out[row.StatusID] = row.Total
	}
	return out, nil
}

// Compile-time check
var _ dashboard.Repository = (*DashboardGormRepository)(nil)
