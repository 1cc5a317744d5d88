package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhasakgbb/physioSim-sub001/internal/database"
)

func openTestDB(t *testing.T, dir, name string, profile database.DatabaseProfile) *database.DB {
	t.Helper()

	db, err := database.New(database.Config{
		Path:    filepath.Join(dir, name+".db"),
		Profile: profile,
		Name:    name,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, db.Migrate())
	return db
}

func newTestSystemHandlers(t *testing.T) *SystemHandlers {
	t.Helper()

	dir := t.TempDir()
	catalogDB := openTestDB(t, dir, "catalog", database.ProfileReference)
	profilesDB := openTestDB(t, dir, "profiles", database.ProfileStandard)
	stacksDB := openTestDB(t, dir, "stacks", database.ProfileStandard)

	return NewSystemHandlers(zerolog.Nop(), dir, catalogDB, profilesDB, stacksDB, nil, nil)
}

func TestHandleSystemStatus(t *testing.T) {
	h := newTestSystemHandlers(t)

	req := httptest.NewRequest(http.MethodGet, "/api/system/status", nil)
	rec := httptest.NewRecorder()
	h.HandleSystemStatus(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp SystemStatusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, 0, resp.ProfileCount)
	assert.Equal(t, 0, resp.StackCount)
	assert.Equal(t, 0, resp.SnapshotCount)
	assert.GreaterOrEqual(t, resp.UptimeSeconds, 0.0)
}

func TestHandleDatabaseStats(t *testing.T) {
	h := newTestSystemHandlers(t)

	req := httptest.NewRequest(http.MethodGet, "/api/system/database/stats", nil)
	rec := httptest.NewRecorder()
	h.HandleDatabaseStats(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp DatabaseStatsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	require.Len(t, resp.Databases, 3)
	names := []string{resp.Databases[0].Name, resp.Databases[1].Name, resp.Databases[2].Name}
	assert.Contains(t, names, "catalog")
	assert.Contains(t, names, "profiles")
	assert.Contains(t, names, "stacks")
	assert.Greater(t, resp.TotalSizeMB, 0.0)
}

func TestHandleDiskUsage(t *testing.T) {
	h := newTestSystemHandlers(t)

	req := httptest.NewRequest(http.MethodGet, "/api/system/disk", nil)
	rec := httptest.NewRecorder()
	h.HandleDiskUsage(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp DiskUsageResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Greater(t, resp.TotalMB, 0.0)
}
