package dashboard

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sekolahku_dashboard/internals/backend"
	"sekolahku_dashboard/internals/constants"
	"sekolahku_dashboard/internals/storage"
)

func TestSeedDashboardFromJSON_BundledFile(t *testing.T) {
	client := backend.NewLocalClient(storage.NewMemoryStore())

	counts, err := SeedDashboardFromJSON(context.Background(), client, "data_dashboard.json", nil)
	require.NoError(t, err)
	assert.Equal(t, 2, counts[constants.ResourceSemesters])
	assert.Equal(t, 4, counts[constants.ResourceUsers])

	raw, err := client.List(context.Background(), constants.ResourceSchedules, backend.Query{"kelasId": "k1"})
	require.NoError(t, err)
	assert.Len(t, raw, 2)
}

func TestSeedDashboard_UnknownResource(t *testing.T) {
	client := backend.NewLocalClient(storage.NewMemoryStore())

	_, err := SeedDashboard(context.Background(), client, map[string]any{
		constants.ResourceClasses: []any{},
		"kantin":                  []any{},
	}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "kantin")
}

func TestSeedDashboardFromJSON_BadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "seed.json")
	require.NoError(t, os.WriteFile(path, []byte("{bukan json"), 0o600))

	_, err := SeedDashboardFromJSON(context.Background(), backend.NewLocalClient(storage.NewMemoryStore()), path, nil)
	assert.Error(t, err)

	_, err = SeedDashboardFromJSON(context.Background(), backend.NewLocalClient(storage.NewMemoryStore()), filepath.Join(dir, "tidak-ada.json"), nil)
	assert.Error(t, err)
}
