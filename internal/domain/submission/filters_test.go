package submission

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestFiltersApply_ReplacesOnlyPatchedDimensions(t *testing.T) {
	base := Filters{
		StatusID:  ptr(uint(1)),
		TagIDs:    []uint{1, 2},
		Referrers: []string{"facebook"},
	}

	next := base.Apply(FilterPatch{
		TagIDs: Some([]uint{3, 3, 4}),
		UserID: Some(ptr("0d6f0c8e-9c57-4bd9-9a53-4cb0f2a3e0b1")),
	})

	assert.Equal(t, uint(1), *next.StatusID)
	assert.Equal(t, []uint{3, 4}, next.TagIDs)
	assert.Equal(t, []string{"facebook"}, next.Referrers)
	require.NotNil(t, next.UserID)

	// o estado anterior permanece intacto
	assert.Equal(t, []uint{1, 2}, base.TagIDs)
	assert.Nil(t, base.UserID)
}

func TestFiltersApply_NullClears(t *testing.T) {
	base := Filters{StatusID: ptr(uint(7)), UserID: ptr("u-1")}

	next := base.Apply(FilterPatch{
		StatusID: Some[*uint](nil),
		UserID:   Some(ptr("")),
	})

	assert.Nil(t, next.StatusID)
	assert.Nil(t, next.UserID)
	assert.True(t, next.IsEmpty())
}

func TestFiltersApply_DoesNotAliasPatchSlices(t *testing.T) {
	tags := []uint{5}
	next := Filters{}.Apply(FilterPatch{TagIDs: Some(tags)})

	tags[0] = 99
	assert.Equal(t, []uint{5}, next.TagIDs)
}

func TestFilterPatch_JSONDistinguishesAbsentFromNull(t *testing.T) {
	var p struct {
		StatusID Optional[*uint]   `json:"status_id"`
		UserID   Optional[*string] `json:"user_id"`
		TagIDs   Optional[[]uint]  `json:"tag_ids"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"status_id": null, "tag_ids": [1,2]}`), &p))

	assert.True(t, p.StatusID.Set)
	assert.Nil(t, p.StatusID.Value)
	assert.False(t, p.UserID.Set)
	assert.True(t, p.TagIDs.Set)
	assert.Equal(t, []uint{1, 2}, p.TagIDs.Value)
}

func TestDateToExclusive(t *testing.T) {
	assert.Nil(t, Filters{}.DateToExclusive())

	to := time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC)
	got := Filters{DateTo: &to}.DateToExclusive()

	require.NotNil(t, got)
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), *got)
}

func TestFiltersIn_ReanchorsAcrossDaylightSaving(t *testing.T) {
	warsaw, err := time.LoadLocation("Europe/Warsaw")
	require.NoError(t, err)

	// 30/03/2025: Varsóvia passa de +01:00 para +02:00
	to := time.Date(2025, 3, 30, 0, 0, 0, 0, warsaw)
	b, err := json.Marshal(Filters{DateTo: &to})
	require.NoError(t, err)

	var decoded Filters
	require.NoError(t, json.Unmarshal(b, &decoded))

	got := decoded.In(warsaw).DateToExclusive()
	require.NotNil(t, got)
	assert.True(t, got.Equal(time.Date(2025, 3, 31, 0, 0, 0, 0, warsaw)))
	assert.Nil(t, decoded.In(warsaw).DateFrom)
}
