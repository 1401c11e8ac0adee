package audit

import (
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	dbpkg "github.com/BruksfildServices01/autoimport-crm/internal/db"
	"github.com/BruksfildServices01/autoimport-crm/internal/models"
)

type memorySink struct {
	mu     sync.Mutex
	events []Event
	fail   bool
}

func (s *memorySink) Log(ev Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return errors.New("sink down")
	}
	s.events = append(s.events, ev)
	return nil
}

func TestDispatcher_CloseFlushesQueuedEvents(t *testing.T) {
	sink := &memorySink{}
	d := NewDispatcher(sink, zap.NewNop())

	for i := 0; i < 10; i++ {
		d.Dispatch(Event{Action: "submission_updated"})
	}
	d.Close()
	d.Close()

	assert.Len(t, sink.events, 10)
}

func TestDispatcher_SinkErrorsAreSwallowed(t *testing.T) {
	sink := &memorySink{fail: true}
	d := NewDispatcher(sink, zap.NewNop())

	d.Dispatch(Event{Action: "anything"})
	d.Close()

	assert.Empty(t, sink.events)
}

func TestLogger_PersistsSnapshotsAndPublicActor(t *testing.T) {
	conn, err := dbpkg.OpenSQLite(filepath.Join(t.TempDir(), "audit_test.db"))
	require.NoError(t, err)
	require.NoError(t, dbpkg.Migrate(conn))

	err = New(conn).Log(Event{
		Action:        "submission_created",
		EntityType:    "submission",
		EntityID:      "42",
		NewValues:     map[string]any{"name": "Jan Kowalski"},
		SubmitterName: "Jan Kowalski",
		IPAddress:     "10.0.0.1",
		UserAgent:     "curl/8.0",
	})
	require.NoError(t, err)

	var got models.AuditLog
	require.NoError(t, conn.First(&got).Error)

	assert.Nil(t, got.UserID)
	assert.Equal(t, "submission_created", got.Action)
	assert.JSONEq(t, `{"name":"Jan Kowalski"}`, string(got.NewValues))
	assert.Empty(t, got.OldValues)
	assert.False(t, got.Timestamp.IsZero())
}

func TestTruncate_KeepsRuneBoundary(t *testing.T) {
	assert.Equal(t, "curl/8.0", truncate("curl/8.0", 255))
	assert.Equal(t, "aa", truncate("aał", 3))
	assert.Equal(t, "aał", truncate("aałb", 4))

	agent := strings.Repeat("a", 254) + "żółw"
	got := truncate(agent, 255)
	assert.True(t, utf8.ValidString(got))
	assert.Len(t, got, 254)
}
