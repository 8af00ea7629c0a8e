//go:build integration
// +build integration

package postgres

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mpeshwe/TaskManager/internal/store"
	"github.com/mpeshwe/TaskManager/internal/store/storetest"
)

// mustResolveTestPostgres connects to the database named by TM_TEST_POSTGRES_DSN and
// recreates the schema from scratch.
func mustResolveTestPostgres(t *testing.T) *DB {
	dsn := os.Getenv("TM_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("TM_TEST_POSTGRES_DSN is not set")
	}
	ctx := context.Background()
	db, err := ConnectDSN(ctx, dsn, false)
	require.NoError(t, err, "failed to connect to postgres")

	_, err = db.bun.ExecContext(ctx, `DROP TABLE IF EXISTS memberships, tasks, groups, users`)
	require.NoError(t, err)
	require.NoError(t, db.Migrate(ctx))
	require.NoError(t, db.Migrate(ctx), "migrating twice is a no-op")
	return db
}

func TestContract(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.Store { return mustResolveTestPostgres(t) })
}
