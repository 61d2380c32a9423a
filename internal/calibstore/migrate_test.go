package calibstore

import (
	"path/filepath"
	"testing"

	"github.com/Zenobia000/gallup-strengths-assessment-sub000/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateStoreNoneBackend(t *testing.T) {
	err := MigrateStore(schema.NoneBackend, "", -1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not supported")
}

func TestMigrateStoreUnsupportedBackend(t *testing.T) {
	err := MigrateStore(schema.StoreBackend("oracle"), "", -1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported backend")
}

func TestMigrateStoreSQLiteUpAndDown(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "migrate.db")

	// Up to latest creates the artifact and profile tables.
	require.NoError(t, MigrateStore(schema.SQLiteBackend, dbPath, -1))

	store, err := NewStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	require.NoError(t, store.PutCalibration(testCalibration("calib-v1")))
	require.NoError(t, store.Close())

	// Running again is a no-op.
	require.NoError(t, MigrateStore(schema.SQLiteBackend, dbPath, -1))

	// Down removes everything.
	require.NoError(t, MigrateStore(schema.SQLiteBackend, dbPath, 0))
}
