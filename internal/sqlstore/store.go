// Package sqlstore implements the key-value backing store over a single SQL table,
// on sqlite (modernc) or postgres (pgx).
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/rpggio/stratdesk/internal/kv"
	"github.com/rpggio/stratdesk/internal/metrics"
	"github.com/rpggio/stratdesk/migrations"
)

const table = "kv_entries"

// Store implements kv.Store. Every key is one row; version increments on each write
// and guards conditional updates.
type Store struct {
	db     *sql.DB
	driver string
	sql    sq.StatementBuilderType
}

var _ kv.Store = (*Store)(nil)

// Open connects to the database and applies the embedded migrations.
func Open(ctx context.Context, driver, dsn string) (*Store, error) {
	driver = normalizeDriver(driver)
	if dsn == "" {
		return nil, fmt.Errorf("dsn is empty")
	}

	var driverName, dialect string
	var placeholder sq.PlaceholderFormat
	switch driver {
	case "sqlite":
		driverName, dialect, placeholder = "sqlite", "sqlite3", sq.Question
	case "postgres":
		driverName, dialect, placeholder = "pgx", "postgres", sq.Dollar
	default:
		return nil, fmt.Errorf("unsupported driver %q", driver)
	}

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if driver == "sqlite" {
		// One connection keeps :memory: databases alive and serializes writers.
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(20)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(30 * time.Minute)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}
	if err := migrate(ctx, db, dialect); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{
		db:     db,
		driver: driver,
		sql:    sq.StatementBuilder.PlaceholderFormat(placeholder),
	}, nil
}

func migrate(ctx context.Context, db *sql.DB, dialect string) error {
	goose.SetBaseFS(migrations.FS)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}

func normalizeDriver(driver string) string {
	d := strings.ToLower(strings.TrimSpace(driver))
	switch d {
	case "postgres", "postgresql", "pgx":
		return "postgres"
	case "sqlite", "sqlite3":
		return "sqlite"
	default:
		return d
	}
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// DB exposes the connection pool, mainly for tests.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Get returns the value stored under key.
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	query, args, err := s.selectEntry(key).ToSql()
	if err != nil {
		return "", false, fmt.Errorf("build get query: %w", err)
	}
	value, _, ok, err := scanEntry(s.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		return "", false, fmt.Errorf("get %q: %w", key, err)
	}
	return value, ok, nil
}

// Set upserts key.
func (s *Store) Set(ctx context.Context, key, value string) error {
	q := s.sql.Insert(table).
		Columns("entry_key", "entry_value", "version", "updated_at").
		Values(key, value, 1, time.Now().UTC()).
		Suffix("ON CONFLICT (entry_key) DO UPDATE SET entry_value = excluded.entry_value, version = " + table + ".version + 1, updated_at = excluded.updated_at")

	query, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build set query: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}
	return nil
}

// SetIfAbsent inserts key only when no row exists for it.
func (s *Store) SetIfAbsent(ctx context.Context, key, value string) (bool, error) {
	query, args, err := s.insertIfAbsent(key, value).ToSql()
	if err != nil {
		return false, fmt.Errorf("build insert query: %w", err)
	}
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("set if absent %q: %w", key, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("get rows affected: %w", err)
	}
	return n == 1, nil
}

// Update runs fn inside a transaction and writes its result conditionally on the
// version read, retrying when another writer got there first.
func (s *Store) Update(ctx context.Context, key string, fn kv.UpdateFunc) error {
	conflict := func() { metrics.Global().UpdateConflicts.WithLabelValues("sql").Inc() }
	return kv.RetryConflicts(ctx, conflict, func(ctx context.Context) (bool, error) {
		return s.tryUpdate(ctx, key, fn)
	})
}

func (s *Store) tryUpdate(ctx context.Context, key string, fn kv.UpdateFunc) (bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	sel := s.selectEntry(key)
	if s.driver == "postgres" {
		sel = sel.Suffix("FOR UPDATE")
	}
	query, args, err := sel.ToSql()
	if err != nil {
		return false, fmt.Errorf("build get query: %w", err)
	}
	old, version, ok, err := scanEntry(tx.QueryRowContext(ctx, query, args...))
	if err != nil {
		return false, fmt.Errorf("get %q: %w", key, err)
	}

	value, write, err := fn(old, ok)
	if err != nil {
		return false, err
	}
	if !write {
		return true, nil
	}

	var stmt sq.Sqlizer
	if ok {
		stmt = s.sql.Update(table).
			Set("entry_value", value).
			Set("version", sq.Expr("version + 1")).
			Set("updated_at", time.Now().UTC()).
			Where(sq.Eq{"entry_key": key, "version": version})
	} else {
		stmt = s.insertIfAbsent(key, value)
	}
	query, args, err = stmt.ToSql()
	if err != nil {
		return false, fmt.Errorf("build write query: %w", err)
	}
	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("write %q: %w", key, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("get rows affected: %w", err)
	}
	if n == 0 {
		return false, nil
	}
	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit transaction: %w", err)
	}
	return true, nil
}

func (s *Store) selectEntry(key string) sq.SelectBuilder {
	return s.sql.Select("entry_value", "version").From(table).Where(sq.Eq{"entry_key": key})
}

func (s *Store) insertIfAbsent(key, value string) sq.InsertBuilder {
	return s.sql.Insert(table).
		Columns("entry_key", "entry_value", "version", "updated_at").
		Values(key, value, 1, time.Now().UTC()).
		Suffix("ON CONFLICT (entry_key) DO NOTHING")
}

func scanEntry(row *sql.Row) (value string, version int64, ok bool, err error) {
	err = row.Scan(&value, &version)
	if errors.Is(err, sql.ErrNoRows) {
		return "", 0, false, nil
	}
	if err != nil {
		return "", 0, false, err
	}
	return value, version, true, nil
}
