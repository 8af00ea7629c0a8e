package mysql

import (
	"database/sql"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/mpeshwe/TaskManager/internal/config"
	"github.com/mpeshwe/TaskManager/internal/store"
)

func TestMatchSentinelError(t *testing.T) {
	cases := []struct {
		in   error
		want error
	}{
		{sql.ErrNoRows, store.ErrNotFound},
		{errors.Wrap(sql.ErrNoRows, "wrapped"), store.ErrNotFound},
		{&mysql.MySQLError{Number: erDupEntry, Message: "Duplicate entry"}, store.ErrDuplicateRecord},
		{&mysql.MySQLError{Number: erNoReferencedRow2}, store.ErrNotFound},
	}
	for _, tc := range cases {
		t.Run(fmt.Sprint(tc.in), func(t *testing.T) {
			require.Equal(t, tc.want, MatchSentinelError(tc.in))
		})
	}

	other := &mysql.MySQLError{Number: 1045, Message: "Access denied"}
	require.Equal(t, error(other), MatchSentinelError(other))
	require.NoError(t, MatchSentinelError(nil))
}

func TestDSN(t *testing.T) {
	dsn := DSN(&config.DBConfig{
		User: "tm", Password: "secret", Host: "db.local", Port: "3306", Name: "tasks",
	})
	cfg, err := mysql.ParseDSN(dsn)
	require.NoError(t, err)
	require.Equal(t, "tm", cfg.User)
	require.Equal(t, "secret", cfg.Passwd)
	require.Equal(t, "db.local:3306", cfg.Addr)
	require.Equal(t, "tasks", cfg.DBName)
	require.True(t, cfg.ClientFoundRows)
}
