// Package postgres implements store.Store on Postgres using bun over the pgx driver.
package postgres

import (
	"context"
	"database/sql"
	"net"
	"net/url"

	"github.com/jackc/pgconn"
	_ "github.com/jackc/pgx/v4/stdlib" // Import Postgres driver.
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/extra/bundebug"

	"github.com/mpeshwe/TaskManager/internal/config"
	"github.com/mpeshwe/TaskManager/internal/store"
)

const maxOpenConns = 24

// Postgres error codes, from https://www.postgresql.org/docs/current/errcodes-appendix.html
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

// DB is a store.Store backed by Postgres.
type DB struct {
	bun *bun.DB
}

var _ store.Store = (*DB)(nil)

// DSN builds a connection URL from the database options.
func DSN(opts *config.DBConfig) string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(opts.User, opts.Password),
		Host:   net.JoinHostPort(opts.Host, opts.Port),
		Path:   "/" + opts.Name,
		RawQuery: url.Values{
			"application_name": {"taskmanager"},
			"sslmode":          {opts.SSLMode},
		}.Encode(),
	}
	return u.String()
}

// Connect opens a connection pool and verifies it with a ping.
func Connect(ctx context.Context, opts *config.DBConfig) (*DB, error) {
	log.Infof("connecting to postgres %s:%s", opts.Host, opts.Port)
	db, err := ConnectDSN(ctx, DSN(opts), opts.Debug)
	if err != nil {
		return nil, errors.Wrapf(err, "error connecting to database: %s:%s", opts.Host, opts.Port)
	}
	return db, nil
}

// ConnectDSN opens a connection pool from a raw URL. With debug set every query is logged.
func ConnectDSN(ctx context.Context, dsn string, debug bool) (*DB, error) {
	sqlDB, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(maxOpenConns)

	bunDB := bun.NewDB(sqlDB, pgdialect.New())
	if debug {
		bunDB.AddQueryHook(bundebug.NewQueryHook(bundebug.WithVerbose(true)))
	}
	if err := bunDB.PingContext(ctx); err != nil {
		if cErr := bunDB.Close(); cErr != nil {
			log.WithError(cErr).Error("error closing postgres pool after failed ping")
		}
		return nil, err
	}
	return &DB{bun: bunDB}, nil
}

// Ping implements store.Store.
func (db *DB) Ping(ctx context.Context) error {
	return db.bun.PingContext(ctx)
}

// Close implements store.Store.
func (db *DB) Close() error {
	return db.bun.Close()
}

// MatchSentinelError maps driver errors onto the store sentinels.
func MatchSentinelError(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}

	switch pgErrCode(err) {
	case codeForeignKeyViolation:
		return store.ErrNotFound
	case codeUniqueViolation:
		return store.ErrDuplicateRecord
	}
	return err
}

func pgErrCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// mustHaveAffectedRows returns store.ErrNotFound if the statement touched no rows.
func mustHaveAffectedRows(result sql.Result, err error) error {
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return store.ErrNotFound
	}
	return nil
}
