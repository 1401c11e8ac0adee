package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/autoimport-crm/internal/models"
)

func TestMigrateAndSeed_AreIdempotent(t *testing.T) {
	conn, err := OpenSQLite(filepath.Join(t.TempDir(), "crm_test.db"))
	require.NoError(t, err)

	require.NoError(t, Migrate(conn))
	require.NoError(t, Seed(conn))
	require.NoError(t, Seed(conn))

	var statuses []models.Status
	require.NoError(t, conn.Order("id ASC").Find(&statuses).Error)

	require.Len(t, statuses, 3)
	assert.Equal(t, models.OpenStatusName, statuses[0].Name)
}
