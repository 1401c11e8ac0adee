package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/autoimport-crm/internal/domain/submission"
)

func TestMemory_Filters(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	f, err := m.LoadFilters(ctx, "u-1")
	require.NoError(t, err)
	assert.True(t, f.IsEmpty())

	status := uint(3)
	require.NoError(t, m.SaveFilters(ctx, "u-1", domain.Filters{StatusID: &status}))

	f, err = m.LoadFilters(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, uint(3), *f.StatusID)

	other, err := m.LoadFilters(ctx, "u-2")
	require.NoError(t, err)
	assert.True(t, other.IsEmpty())

	require.NoError(t, m.DeleteFilters(ctx, "u-1"))
	f, err = m.LoadFilters(ctx, "u-1")
	require.NoError(t, err)
	assert.True(t, f.IsEmpty())
}

func TestMemory_RevocationExpires(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	m := NewMemory()
	m.now = func() time.Time { return now }

	require.NoError(t, m.Revoke(ctx, "jti-1", time.Hour))
	require.NoError(t, m.Revoke(ctx, "jti-expired", 0))

	revoked, err := m.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, _ = m.IsRevoked(ctx, "jti-expired")
	assert.False(t, revoked)

	now = now.Add(time.Hour)
	revoked, _ = m.IsRevoked(ctx, "jti-1")
	assert.False(t, revoked)
}

func TestMemory_AllowFixedWindow(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	m := NewMemory()
	m.now = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		ok, err := m.Allow(ctx, "1.2.3.4", 3, time.Minute)
		require.NoError(t, err)
		assert.True(t, ok, "attempt %d", i+1)
	}

	ok, _ := m.Allow(ctx, "1.2.3.4", 3, time.Minute)
	assert.False(t, ok)

	ok, _ = m.Allow(ctx, "5.6.7.8", 3, time.Minute)
	assert.True(t, ok)

	now = now.Add(time.Minute)
	ok, _ = m.Allow(ctx, "1.2.3.4", 3, time.Minute)
	assert.True(t, ok)
}

func TestRedis_Keys(t *testing.T) {
	assert.Equal(t, "crm:filters:u-1", filtersKey("u-1"))
	assert.Equal(t, "crm:revoked:abc", revokedKey("abc"))
	assert.Equal(t, "crm:ratelimit:public:1.2.3.4", rateKey("public:1.2.3.4"))
}

func TestRedis_UnreachableServerSurfacesErrors(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 200 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	r := NewRedis(client, time.UTC)
	ctx := context.Background()

	_, err := r.LoadFilters(ctx, "u-1")
	assert.Error(t, err)

	_, err = r.IsRevoked(ctx, "jti")
	assert.Error(t, err)

	ok, err := r.Allow(ctx, "k", 5, time.Minute)
	assert.Error(t, err)
	assert.False(t, ok)
}

// pipelineRecorder registra os comandos e aborta antes de tocar a rede.
type pipelineRecorder struct {
	single []string
	piped  []string
}

var errStop = errors.New("stop")

func (h *pipelineRecorder) BeforeProcess(ctx context.Context, cmd redis.Cmder) (context.Context, error) {
	h.single = append(h.single, cmd.Name())
	return ctx, errStop
}

func (h *pipelineRecorder) AfterProcess(context.Context, redis.Cmder) error { return nil }

func (h *pipelineRecorder) BeforeProcessPipeline(ctx context.Context, cmds []redis.Cmder) (context.Context, error) {
	for _, c := range cmds {
		h.piped = append(h.piped, c.Name())
	}
	return ctx, errStop
}

func (h *pipelineRecorder) AfterProcessPipeline(context.Context, []redis.Cmder) error { return nil }

func TestRedis_AllowSetsExpiryInSameTransaction(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1})
	defer client.Close()

	rec := &pipelineRecorder{}
	client.AddHook(rec)

	_, err := NewRedis(client, time.UTC).Allow(context.Background(), "public:1.2.3.4", 5, time.Minute)
	require.ErrorIs(t, err, errStop)

	assert.Empty(t, rec.single)
	assert.Equal(t, []string{"multi", "set", "incr", "exec"}, rec.piped)
}

func TestDecodeFilters_UsesConfiguredZone(t *testing.T) {
	warsaw, err := time.LoadLocation("Europe/Warsaw")
	require.NoError(t, err)

	f, err := decodeFilters([]byte(`{"date_to":"2025-03-30T00:00:00+01:00"}`), warsaw)
	require.NoError(t, err)

	require.NotNil(t, f.DateTo)
	assert.Equal(t, warsaw, f.DateTo.Location())
	assert.True(t, f.DateToExclusive().Equal(time.Date(2025, 3, 31, 0, 0, 0, 0, warsaw)))

	_, err = decodeFilters([]byte(`{`), warsaw)
	assert.Error(t, err)
}
