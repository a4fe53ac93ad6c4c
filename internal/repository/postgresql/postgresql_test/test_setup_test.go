package postgresql_test

import (
	"context"
	"os"
	"testing"

	"github.com/cmlabs-hris/stamp-request-go/internal/pkg/database"
	"github.com/cmlabs-hris/stamp-request-go/internal/repository/postgresql"
	"github.com/stretchr/testify/require"
)

// newTestDatabase connects to TEST_DATABASE_URL, applies the schema and empties
// the tables. The test is skipped when the variable is not set.
func newTestDatabase(t *testing.T) *database.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	db, err := database.NewPostgreSQLDB(ctx, database.Config{DSN: dsn, MaxConns: 10, MinConns: 1})
	require.NoError(t, err)
	t.Cleanup(db.Close)

	require.NoError(t, postgresql.Migrate(ctx, db))
	truncateAllTables(t, db)

	return db
}

func truncateAllTables(t *testing.T, db *database.DB) {
	t.Helper()

	ctx := context.Background()
	tx, err := db.BeginTx(ctx)
	require.NoError(t, err)
	defer tx.Rollback(ctx)

	for _, table := range []string{"stamp_requests", "clock_entries"} {
		_, err := tx.Exec(ctx, "TRUNCATE TABLE "+table+" CASCADE")
		require.NoError(t, err, "truncate %s", table)
	}

	require.NoError(t, tx.Commit(ctx))
}

func insertClockEntry(t *testing.T, db *database.DB, employeeID, date, in, out string) string {
	t.Helper()

	var id string
	err := db.QueryRow(context.Background(), `
		INSERT INTO clock_entries (employee_id, date, in_time, out_time)
		VALUES ($1, $2::date, $3::time, $4::time)
		RETURNING id
	`, employeeID, date, in, out).Scan(&id)
	require.NoError(t, err)
	return id
}
