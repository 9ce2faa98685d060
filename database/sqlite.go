package database

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/mattn/go-sqlite3"
	"github.com/mbolis/event-intake/model"
)

// SQLite is a local stand-in for the hosted store, for development and tests.
type SQLite struct {
	db *sql.DB
}

func OpenSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	_, err = db.Exec("PRAGMA foreign_keys = ON")
	if err != nil {
		db.Close()
		return nil, err
	}

	// db tuning options
	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(10)
	db.SetConnMaxIdleTime(5 * time.Minute)
	db.SetConnMaxLifetime(2 * time.Hour)

	err = migrateDB(db)
	if err != nil {
		db.Close()
		return nil, err
	}

	return &SQLite{db}, nil
}

func (s *SQLite) Insert(ctx context.Context, table string, row model.Row) (any, error) {
	query := insertStatement(table, row.Columns(), quoteSQLite, func(int) string { return "?" })

	var id int64
	err := s.db.QueryRowContext(ctx, query, row.Values()...).Scan(&id)
	if err != nil {
		return nil, newError("insert", table, sqliteCode(err), err)
	}
	return id, nil
}

func (s *SQLite) Ping(ctx context.Context, table string) error {
	rows, err := s.db.QueryContext(ctx, "SELECT id FROM "+quoteSQLite(table)+" LIMIT 1")
	if err != nil {
		return newError("ping", table, sqliteCode(err), err)
	}
	return rows.Close()
}

func (s *SQLite) Close() {
	s.db.Close()
}

func quoteSQLite(ident string) string {
	return `"` + strings.ReplaceAll(ident, `"`, `""`) + `"`
}

func sqliteCode(err error) string {
	var serr sqlite3.Error
	if errors.As(err, &serr) {
		return serr.ExtendedCode.Error()
	}
	return ""
}
