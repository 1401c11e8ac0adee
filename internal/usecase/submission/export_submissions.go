package submission

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/autoimport-crm/internal/domain/submission"
	"github.com/BruksfildServices01/autoimport-crm/internal/export"
)

type ExportResult struct {
	Filename string
	Content  string
	Rows     int
}

type ExportSubmissions struct {
	list *ListSubmissions
	loc  *time.Location
	now  func() time.Time
}

func NewExportSubmissions(list *ListSubmissions, loc *time.Location) *ExportSubmissions {
	return &ExportSubmissions{
		list: list,
		loc:  loc,
		now:  time.Now,
	}
}

// Execute usa os mesmos filtros e busca da lista e materializa o CSV em memória.
func (uc *ExportSubmissions) Execute(
	ctx context.Context,
	f domain.Filters,
	v View,
) (*ExportResult, error) {

	res, err := uc.list.Execute(ctx, f)
	if err != nil {
		return nil, err
	}

	rows := Present(res.Submissions, v)
	lookups := export.NewLookups(res.Statuses, res.Tags, res.Users, uc.loc)

	return &ExportResult{
		Filename: export.Filename(uc.now()),
		Content:  export.Submissions(rows, lookups),
		Rows:     len(rows),
	}, nil
}
