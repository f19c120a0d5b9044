package migrations

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/golang-migrate/migrate/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMigrator struct {
	upErr      error
	downErr    error
	versionVal uint
	dirty      bool
	versionErr error
}

func (m *fakeMigrator) Up() error   { return m.upErr }
func (m *fakeMigrator) Down() error { return m.downErr }
func (m *fakeMigrator) Version() (uint, bool, error) {
	return m.versionVal, m.dirty, m.versionErr
}

func useMigrator(t *testing.T, m migrator, err error) {
	orig := migratorFactory
	t.Cleanup(func() { migratorFactory = orig })
	migratorFactory = func(_ *sql.DB) (migrator, error) {
		return m, err
	}
}

func TestMigrationFilesEmbedded(t *testing.T) {
	entries, err := migrationFiles.ReadDir("sql")
	require.NoError(t, err)

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.ElementsMatch(t, []string{
		"000001_traffic_measurements.up.sql",
		"000001_traffic_measurements.down.sql",
	}, names)

	up, err := migrationFiles.ReadFile("sql/000001_traffic_measurements.up.sql")
	require.NoError(t, err)
	assert.Contains(t, string(up), "CREATE TABLE")
	assert.Contains(t, string(up), "UNIQUE (device_id, detector_id, measured_time)")

	down, err := migrationFiles.ReadFile("sql/000001_traffic_measurements.down.sql")
	require.NoError(t, err)
	assert.Contains(t, string(down), "DROP TABLE")
}

func TestRun(t *testing.T) {
	logger := zerolog.Nop()

	t.Run("success", func(t *testing.T) {
		useMigrator(t, &fakeMigrator{versionVal: 1}, nil)
		assert.NoError(t, Run(nil, logger))
	})

	t.Run("no change is not an error", func(t *testing.T) {
		useMigrator(t, &fakeMigrator{upErr: migrate.ErrNoChange, versionVal: 1}, nil)
		assert.NoError(t, Run(nil, logger))
	})

	t.Run("up error", func(t *testing.T) {
		useMigrator(t, &fakeMigrator{upErr: errors.New("up failed")}, nil)
		err := Run(nil, logger)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "running migrations")
	})

	t.Run("factory error", func(t *testing.T) {
		useMigrator(t, nil, errors.New("factory failed"))
		err := Run(nil, logger)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "factory failed")
	})

	t.Run("version error", func(t *testing.T) {
		useMigrator(t, &fakeMigrator{versionErr: errors.New("version failed")}, nil)
		err := Run(nil, logger)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "getting migration version")
	})

	t.Run("nil version is not an error", func(t *testing.T) {
		useMigrator(t, &fakeMigrator{versionErr: migrate.ErrNilVersion}, nil)
		assert.NoError(t, Run(nil, logger))
	})

	t.Run("dirty state still succeeds", func(t *testing.T) {
		useMigrator(t, &fakeMigrator{versionVal: 1, dirty: true}, nil)
		assert.NoError(t, Run(nil, logger))
	})
}

func TestDown(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		useMigrator(t, &fakeMigrator{}, nil)
		assert.NoError(t, Down(nil))
	})

	t.Run("no change is not an error", func(t *testing.T) {
		useMigrator(t, &fakeMigrator{downErr: migrate.ErrNoChange}, nil)
		assert.NoError(t, Down(nil))
	})

	t.Run("down error", func(t *testing.T) {
		useMigrator(t, &fakeMigrator{downErr: errors.New("down failed")}, nil)
		err := Down(nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "rolling back migrations")
	})
}

func TestVersion(t *testing.T) {
	useMigrator(t, &fakeMigrator{versionVal: 1}, nil)

	version, dirty, err := Version(nil)
	require.NoError(t, err)
	assert.Equal(t, uint(1), version)
	assert.False(t, dirty)
}
