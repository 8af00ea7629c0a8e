// Package mysql implements store.Store on MySQL using go-sql-driver/mysql and sqlx.
package mysql

import (
	"context"
	"database/sql"
	"net"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/mpeshwe/TaskManager/internal/config"
	"github.com/mpeshwe/TaskManager/internal/store"
)

const maxOpenConns = 24

// MySQL error numbers, from
// https://dev.mysql.com/doc/mysql-errors/8.0/en/server-error-reference.html
const (
	erDupEntry         = 1062
	erNoReferencedRow2 = 1452
	erRowIsReferenced2 = 1451
)

// DB is a store.Store backed by MySQL.
type DB struct {
	sql *sqlx.DB
}

var _ store.Store = (*DB)(nil)

// DSN builds a driver DSN from the database options.
func DSN(opts *config.DBConfig) string {
	cfg := mysql.NewConfig()
	cfg.User = opts.User
	cfg.Passwd = opts.Password
	cfg.Net = "tcp"
	cfg.Addr = net.JoinHostPort(opts.Host, opts.Port)
	cfg.DBName = opts.Name
	cfg.ParseTime = true
	// Report matched rather than changed rows so no-op updates still count as found.
	cfg.ClientFoundRows = true
	return cfg.FormatDSN()
}

// Connect opens a connection pool and verifies it with a ping.
func Connect(ctx context.Context, opts *config.DBConfig) (*DB, error) {
	log.Infof("connecting to mysql %s:%s", opts.Host, opts.Port)
	db, err := ConnectDSN(ctx, DSN(opts))
	if err != nil {
		return nil, errors.Wrapf(err, "error connecting to database: %s:%s", opts.Host, opts.Port)
	}
	return db, nil
}

// ConnectDSN opens a connection pool from a raw DSN.
func ConnectDSN(ctx context.Context, dsn string) (*DB, error) {
	sqlDB, err := sqlx.ConnectContext(ctx, "mysql", dsn)
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(maxOpenConns)
	return &DB{sql: sqlDB}, nil
}

// Ping implements store.Store.
func (db *DB) Ping(ctx context.Context) error {
	return db.sql.PingContext(ctx)
}

// Close implements store.Store.
func (db *DB) Close() error {
	return db.sql.Close()
}

// MatchSentinelError maps driver errors onto the store sentinels.
func MatchSentinelError(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case erDupEntry:
			return store.ErrDuplicateRecord
		case erNoReferencedRow2, erRowIsReferenced2:
			return store.ErrNotFound
		}
	}
	return err
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

func lastInsertID(result sql.Result, err error) (int, error) {
	if err != nil {
		return 0, err
	}
	id, err := result.LastInsertId()
	return int(id), err
}
