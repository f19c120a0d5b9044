//go:build integration

package migrations

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "github.com/lib/pq"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

func TestMigrations(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx, "postgres:16",
		postgres.WithDatabase("traffic"),
		postgres.WithUsername("traffic"),
		postgres.WithPassword("traffic"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)
	defer func() { _ = pgContainer.Terminate(ctx) }()

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := sql.Open("postgres", connStr)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	t.Run("Run creates the measurements table", func(t *testing.T) {
		require.NoError(t, Run(db, zerolog.Nop()))

		var exists bool
		err := db.QueryRow(`
			SELECT EXISTS (
				SELECT FROM information_schema.tables
				WHERE table_name = 'traffic_measurements'
			)
		`).Scan(&exists)
		require.NoError(t, err)
		require.True(t, exists)
	})

	t.Run("Run is idempotent", func(t *testing.T) {
		require.NoError(t, Run(db, zerolog.Nop()))

		version, dirty, err := Version(db)
		require.NoError(t, err)
		require.False(t, dirty)
		require.Equal(t, uint(1), version)
	})

	t.Run("Down drops the table", func(t *testing.T) {
		require.NoError(t, Down(db))

		var exists bool
		err := db.QueryRow(`
			SELECT EXISTS (
				SELECT FROM information_schema.tables
				WHERE table_name = 'traffic_measurements'
			)
		`).Scan(&exists)
		require.NoError(t, err)
		require.False(t, exists)
	})
}
