package submission

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/BruksfildServices01/autoimport-crm/internal/dto"
	"github.com/BruksfildServices01/autoimport-crm/internal/listing"
)

func names(rows []dto.SubmissionRow) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.Name)
	}
	return out
}

func TestPresent(t *testing.T) {
	rows := []dto.SubmissionRow{
		{ID: 1, Name: "Zofia Nowak", BudgetTo: 30000},
		{ID: 2, Name: "Adam Kowalski", BudgetTo: 50000},
		{ID: 3, Name: "Jan Kowalski", BudgetTo: 30000},
	}

	t.Run("search is case-insensitive on name", func(t *testing.T) {
		got := Present(rows, View{Search: "KOWAL"})
		assert.Equal(t, []string{"Adam Kowalski", "Jan Kowalski"}, names(got))
	})

	t.Run("stable sort keeps ties in fetch order", func(t *testing.T) {
		got := Present(rows, View{Sort: "budget_to", Order: listing.Asc})
		assert.Equal(t, []string{"Zofia Nowak", "Jan Kowalski", "Adam Kowalski"}, names(got))
	})

	t.Run("descending", func(t *testing.T) {
		got := Present(rows, View{Sort: "name", Order: listing.Desc})
		assert.Equal(t, []string{"Zofia Nowak", "Jan Kowalski", "Adam Kowalski"}, names(got))
	})

	t.Run("unknown column keeps order", func(t *testing.T) {
		got := Present(rows, View{Sort: "password"})
		assert.Equal(t, []string{"Zofia Nowak", "Adam Kowalski", "Jan Kowalski"}, names(got))
	})

	assert.True(t, IsSortColumn("created_at"))
	assert.False(t, IsSortColumn("status"))
}
