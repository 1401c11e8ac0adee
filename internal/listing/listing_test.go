package listing

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type row struct {
	name   string
	budget float64
}

func TestPaginate(t *testing.T) {
	items := make([]int, 45)
	for i := range items {
		items[i] = i
	}

	p := Paginate(items, 3, DefaultPageSize)
	assert.Equal(t, []int{40, 41, 42, 43, 44}, p.Items)
	assert.Equal(t, 45, p.Total)
	assert.Equal(t, 3, p.TotalPages)

	first := Paginate(items, 0, 0)
	assert.Equal(t, 1, first.Page)
	assert.Len(t, first.Items, 20)

	beyond := Paginate(items, 9, 20)
	assert.Empty(t, beyond.Items)
	assert.NotNil(t, beyond.Items)

	empty := Paginate([]int{}, 1, 20)
	assert.Equal(t, 0, empty.TotalPages)
}

func TestSearch_CaseInsensitiveAcrossFields(t *testing.T) {
	rows := []row{{name: "Jan Kowalski"}, {name: "Anna Nowak"}, {name: "Piotr"}}
	fields := func(r row) []string { return []string{r.name} }

	assert.Len(t, Search(rows, "  KOW ", fields), 1)
	assert.Len(t, Search(rows, "", fields), 3)
	assert.Empty(t, Search(rows, "zzz", fields))
}

func TestSort_StableInBothDirections(t *testing.T) {
	rows := []row{{"b", 2}, {"a", 2}, {"c", 1}}

	asc := Sort(rows, By(func(r row) float64 { return r.budget }), Asc)
	assert.Equal(t, []string{"c", "b", "a"}, namesOf(asc))

	desc := Sort(rows, By(func(r row) string { return r.name }), ParseOrder("DESC"))
	assert.Equal(t, []string{"c", "b", "a"}, namesOf(desc))

	// a entrada não é reordenada
	assert.Equal(t, "b", rows[0].name)
}

func namesOf(rows []row) []string {
	var out []string
	for _, r := range rows {
		out = append(out, r.name)
	}
	return out
}

func TestBuckets(t *testing.T) {
	// quarta-feira, 2025-06-18 15:00
	now := time.Date(2025, 6, 18, 15, 0, 0, 0, time.UTC)

	tests := []struct {
		bucket Bucket
		at     time.Time
		want   bool
	}{
		{BucketToday, time.Date(2025, 6, 18, 0, 0, 0, 0, time.UTC), true},
		{BucketToday, time.Date(2025, 6, 17, 23, 59, 59, 0, time.UTC), false},
		{BucketYesterday, time.Date(2025, 6, 17, 8, 0, 0, 0, time.UTC), true},
		{BucketYesterday, time.Date(2025, 6, 18, 0, 0, 0, 0, time.UTC), false},
		{BucketThisWeek, time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), true},
		{BucketThisWeek, time.Date(2025, 6, 14, 23, 0, 0, 0, time.UTC), false},
		{BucketThisMonth, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), true},
		{BucketThisMonth, time.Date(2025, 5, 31, 23, 0, 0, 0, time.UTC), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.bucket)+"_"+strings.ReplaceAll(tt.at.Format(time.DateTime), " ", "T"), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.bucket.Contains(tt.at, now))
		})
	}
}

func TestParseBucket(t *testing.T) {
	b, ok := ParseBucket("thisWeek")
	assert.True(t, ok)
	assert.Equal(t, BucketThisWeek, b)

	_, ok = ParseBucket("lastYear")
	assert.False(t, ok)
}
