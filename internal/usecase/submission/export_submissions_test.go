package submission

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/autoimport-crm/internal/domain/submission"
	"github.com/BruksfildServices01/autoimport-crm/internal/listing"
)

func TestExportSubmissions_UsesListFiltersAndSearch(t *testing.T) {
	repo := newFakeRepo(sampleSubs()...)
	uc := NewExportSubmissions(NewListSubmissions(repo, defaultLookups()), time.UTC)
	uc.now = func() time.Time { return time.Date(2025, 3, 4, 8, 0, 0, 0, time.UTC) }

	f := domain.Filters{Referrers: []string{"otomoto"}}
	res, err := uc.Execute(context.Background(), f, View{Search: "kowal", Sort: "name", Order: listing.Asc})
	require.NoError(t, err)

	assert.Equal(t, f, repo.lastFilters)
	assert.Equal(t, "submissions-export-2025-03-04.csv", res.Filename)
	assert.Equal(t, 2, res.Rows)

	lines := strings.Split(res.Content, "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "id,name,phone"))
	assert.Equal(t, "3,Anna Kowalska,500,Coupe,80000,90000,No status,Unassigned,,,2025-03-01", lines[1])
	assert.Equal(t, "1,Jan Kowalski,600,SUV,30000,50000,open,Unassigned,,vip,2025-03-01", lines[2])
}

func TestExportSubmissions_EmptyResult(t *testing.T) {
	uc := NewExportSubmissions(NewListSubmissions(newFakeRepo(), defaultLookups()), time.UTC)

	res, err := uc.Execute(context.Background(), domain.Filters{}, View{})
	require.NoError(t, err)
	assert.Equal(t, "", res.Content)
	assert.Equal(t, 0, res.Rows)
}
