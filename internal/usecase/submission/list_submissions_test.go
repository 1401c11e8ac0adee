package submission

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/autoimport-crm/internal/domain/submission"
	"github.com/BruksfildServices01/autoimport-crm/internal/listing"
	"github.com/BruksfildServices01/autoimport-crm/internal/models"
)

func sampleSubs() []models.Submission {
	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	return []models.Submission{
		{ID: 1, Name: "Jan Kowalski", Phone: "600", VehicleType: "SUV", BudgetFrom: 30000, BudgetTo: 50000, StatusID: ptr(uint(1)), CreatedAt: base,
			SubmissionTags: []models.SubmissionTag{{SubmissionID: 1, TagID: 1}}},
		{ID: 2, Name: "Piotr Zieliński", Phone: "700", VehicleType: "Sedan", BudgetFrom: 10000, BudgetTo: 20000, CreatedAt: base.Add(time.Hour)},
		{ID: 3, Name: "Anna Kowalska", Phone: "500", VehicleType: "Coupe", BudgetFrom: 80000, BudgetTo: 90000, CreatedAt: base.Add(2 * time.Hour)},
	}
}

func TestListSubmissions_ReturnsRowsAndLookups(t *testing.T) {
	repo := newFakeRepo(sampleSubs()...)
	uc := NewListSubmissions(repo, defaultLookups())

	f := domain.Filters{StatusID: ptr(uint(1))}
	res, err := uc.Execute(context.Background(), f)
	require.NoError(t, err)

	assert.Equal(t, f, repo.lastFilters)
	require.Len(t, res.Submissions, 3)
	assert.Equal(t, []uint{1}, res.Submissions[0].TagIDs)
	assert.Empty(t, res.Submissions[1].TagIDs)
	assert.Len(t, res.Statuses, 2)
	assert.Len(t, res.Tags, 2)
	assert.Len(t, res.Users, 1)
	assert.NotNil(t, res.Referrers)
}

func TestListSubmissions_AnyFailureAbortsBatch(t *testing.T) {
	repo := newFakeRepo(sampleSubs()...)
	lookups := defaultLookups()
	lookups.err = errBoom

	res, err := NewListSubmissions(repo, lookups).Execute(context.Background(), domain.Filters{})
	assert.ErrorIs(t, err, errBoom)
	assert.Nil(t, res)

	repo.listErr = errBoom
	res, err = NewListSubmissions(repo, defaultLookups()).Execute(context.Background(), domain.Filters{})
	assert.ErrorIs(t, err, errBoom)
	assert.Nil(t, res)
}

func TestPresent_SearchAndSort(t *testing.T) {
	res, err := NewListSubmissions(newFakeRepo(sampleSubs()...), defaultLookups()).
		Execute(context.Background(), domain.Filters{})
	require.NoError(t, err)

	rows := Present(res.Submissions, View{Search: "  KOWAL ", Sort: "budget_from", Order: listing.Desc})
	require.Len(t, rows, 2)
	assert.Equal(t, "Anna Kowalska", rows[0].Name)
	assert.Equal(t, "Jan Kowalski", rows[1].Name)

	rows = Present(res.Submissions, View{Sort: "phone", Order: listing.Asc})
	assert.Equal(t, []string{"500", "600", "700"}, []string{rows[0].Phone, rows[1].Phone, rows[2].Phone})

	// coluna fora da lista mantém a ordem recebida
	rows = Present(res.Submissions, View{Sort: "status_id; DROP TABLE"})
	assert.Equal(t, uint(1), rows[0].ID)
	assert.False(t, IsSortColumn("status_id"))
	assert.True(t, IsSortColumn("created_at"))
}
