package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"eventify/internal/status"

	"github.com/pocketbase/dbx"
	_ "modernc.org/sqlite"
)

const sqlitePragmas = "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_txlock=immediate"

// Store is a unit of work over the relational schema. It is bound either to
// the database handle or to one open transaction; RunInTransaction yields
// the latter.
type Store struct {
	db dbx.Builder
}

func New(db dbx.Builder) *Store {
	return &Store{db: db}
}

// Open opens the SQLite file at path. A single connection is used so that
// write transactions are serialized in-process instead of racing on the
// file lock.
func Open(path string) (*dbx.DB, error) {
	dsn := path + "?" + sqlitePragmas + "&_pragma=journal_mode(WAL)"
	return open(dsn)
}

// OpenMemory opens a private in-memory database, mostly for tests.
func OpenMemory(name string) (*dbx.DB, error) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&%s", name, sqlitePragmas)
	return open(dsn)
}

func open(dsn string) (*dbx.DB, error) {
	db, err := dbx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("store: open: %w", err)
	}
	db.DB().SetMaxOpenConns(1)
	db.DB().SetMaxIdleConns(1)

	if err := db.DB().Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: ping: %w", err)
	}
	return db, nil
}

// RunInTransaction runs fn against a Store bound to a single transaction.
// The transaction commits when fn returns nil and rolls back otherwise.
// Nested calls reuse the outer transaction.
func (s *Store) RunInTransaction(ctx context.Context, fn func(tx *Store) error) error {
	switch db := s.db.(type) {
	case *dbx.Tx:
		return fn(s)
	case *dbx.DB:
		if err := ctx.Err(); err != nil {
			return err
		}
		return db.Transactional(func(tx *dbx.Tx) error {
			return fn(New(tx))
		})
	default:
		return fmt.Errorf("store: transactions are not supported by %T", s.db)
	}
}

// Ping checks that the database answers.
func (s *Store) Ping(ctx context.Context) error {
	var one int
	return s.db.NewQuery("SELECT 1").WithContext(ctx).Row(&one)
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}

func notFound(err error, what string, id int64) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s %d: %w", what, id, status.ErrNotFound)
	}
	return err
}

func isUniqueViolation(err error, column string) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed: "+column)
}

// affectedOrNotFound turns a zero-row UPDATE into ErrNotFound.
func affectedOrNotFound(res sql.Result, what string, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s %d: %w", what, id, status.ErrNotFound)
	}
	return nil
}
