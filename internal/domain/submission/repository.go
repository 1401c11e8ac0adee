package submission

import (
	"context"

	"github.com/BruksfildServices01/autoimport-crm/internal/httperr"
	"github.com/BruksfildServices01/autoimport-crm/internal/models"
)

var (
	ErrNotFound       = httperr.ErrBusiness("submission_not_found")
	ErrStatusNotFound = httperr.ErrBusiness("status_not_found")
	ErrInvalidStatus  = httperr.ErrBusiness("invalid_status")
	ErrTagNotFound    = httperr.ErrBusiness("tag_not_found")
	ErrUserNotFound   = httperr.ErrBusiness("user_not_found")
)

// Update substitui status, responsável e o conjunto inteiro de tags.
type Update struct {
	StatusID *uint
	UserID   *string
	TagIDs   []uint
}

type Repository interface {
	List(ctx context.Context, f Filters) ([]models.Submission, error)
	Get(ctx context.Context, id uint) (*models.Submission, error)
	Create(ctx context.Context, s *models.Submission) error
	Update(ctx context.Context, id uint, in Update) (*models.Submission, error)
}

type LookupRepository interface {
	ListStatuses(ctx context.Context) ([]models.Status, error)
	FindStatusByName(ctx context.Context, name string) (*models.Status, error)
	ListTags(ctx context.Context) ([]models.Tag, error)
	ListProfiles(ctx context.Context) ([]models.Profile, error)
	ListReferrers(ctx context.Context) ([]string, error)
}

// FilterStore guarda o último Filters de cada usuário do painel.
type FilterStore interface {
	LoadFilters(ctx context.Context, userID string) (Filters, error)
	SaveFilters(ctx context.Context, userID string, f Filters) error
	DeleteFilters(ctx context.Context, userID string) error
}
