// Package sqlite provides the SQLite database holding sessions, passkey users and their credentials.
package sqlite

import (
	"context"
	"fmt"
	"github.com/intinc/platformexplorer/internal/errors"
	"github.com/jmoiron/sqlx"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"log/slog"
	"strings"
	"time"

	_ "embed"
	_ "github.com/mattn/go-sqlite3" // Enable sqlite3 driver
)

//go:embed schema.sql
var schemaDefinition string

const (
	driverName   = "sqlite3"
	maxReadConns = 10
	dbNameLength = 20
	// dbNameAlphabet keeps generated names safe inside a file: URI.
	dbNameAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// randomDBName names a private in-memory database.
func randomDBName() (string, error) {
	name, err := gonanoid.Generate(dbNameAlphabet, dbNameLength)
	if err != nil {
		return "", errors.Wrap(err, "generate database name")
	}
	return name, nil
}

// Database has separate pools for writes and reads. The write pool holds a single connection.
type Database struct {
	ReadWrite *sqlx.DB
	ReadOnly  *sqlx.DB
	logger    *slog.Logger
}

// NewDatabase connects to the database at url and brings its schema up to date.
//
// url is the path to the database file or ":memory:" for a private in-memory database.
func NewDatabase(ctx context.Context, url string, logger *slog.Logger) (*Database, error) {
	db, err := connect(url, logger)
	if err != nil {
		return nil, errors.Wrap(err, "connect")
	}
	if err = db.migrateTo(ctx, schemaDefinition); err != nil {
		return nil, errors.Wrap(err, "migrate schema")
	}
	return db, nil
}

type dataSourceNames struct {
	readWrite string
	readOnly  string
}

// newDataSourceNames builds the connection strings. Options prefixed with '_' are pragmas
// (https://www.sqlite.org/pragma.html), the rest are URI parameters (https://www.sqlite.org/uri.html).
func newDataSourceNames(url string) (dataSourceNames, error) {
	common := []string{
		"_journal_mode=wal",
		"_busy_timeout=5000",
		"_synchronous=normal",
		"_foreign_keys=on",
	}
	readWriteMode, readOnlyMode := "mode=rwc", "mode=ro"

	// Both pools must see the same in-memory database, and parallel tests must not.
	if strings.Contains(url, ":memory:") {
		name, err := randomDBName()
		if err != nil {
			return dataSourceNames{}, err
		}
		url = name
		readWriteMode = "mode=memory&cache=shared"
		readOnlyMode = readWriteMode
	}
	options := strings.Join(common, "&")
	return dataSourceNames{
		readWrite: fmt.Sprintf("file:%s?%s&_txlock=immediate&%s", url, readWriteMode, options),
		readOnly:  fmt.Sprintf("file:%s?%s&_txlock=deferred&_query_only=true&%s", url, readOnlyMode, options),
	}, nil
}

func connect(url string, logger *slog.Logger) (*Database, error) {
	dsn, err := newDataSourceNames(url)
	if err != nil {
		return nil, err
	}

	var readWrite, readOnly *sqlx.DB
	if readWrite, err = sqlx.Open(driverName, dsn.readWrite); err != nil {
		return nil, errors.Wrap(err, "open read-write database")
	}
	readWrite.SetMaxOpenConns(1)
	readWrite.SetMaxIdleConns(1)
	readWrite.SetConnMaxLifetime(time.Hour)
	readWrite.SetConnMaxIdleTime(time.Hour)

	// The shared in-memory database lives as long as one connection is open.
	if err = readWrite.Ping(); err != nil {
		return nil, errors.Wrap(err, "ping read-write database")
	}

	if readOnly, err = sqlx.Open(driverName, dsn.readOnly); err != nil {
		return nil, errors.Wrap(err, "open read-only database")
	}
	readOnly.SetMaxOpenConns(maxReadConns)
	readOnly.SetMaxIdleConns(maxReadConns)
	readOnly.SetConnMaxLifetime(time.Hour)
	readOnly.SetConnMaxIdleTime(time.Hour)

	return &Database{
		ReadWrite: readWrite,
		ReadOnly:  readOnly,
		logger:    logger,
	}, nil
}

// Close closes both pools.
func (db *Database) Close() error {
	return errors.Join(
		errors.Wrap(db.ReadOnly.Close(), "close read-only database"),
		errors.Wrap(db.ReadWrite.Close(), "close read-write database"),
	)
}
