package database

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mbolis/event-intake/model"
)

// Postgres writes straight into the hosted PostgreSQL instance.
type Postgres struct {
	pool *pgxpool.Pool
}

func OpenPostgres(ctx context.Context, url string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres ping: %w", err)
	}
	return &Postgres{pool}, nil
}

func (p *Postgres) Insert(ctx context.Context, table string, row model.Row) (any, error) {
	query := insertStatement(table, row.Columns(), quotePostgres, placeholderPostgres)

	var id any
	err := p.pool.QueryRow(ctx, query, row.Values()...).Scan(&id)
	if err != nil {
		return nil, newError("insert", table, pgCode(err), err)
	}
	return normalizeID(id), nil
}

func (p *Postgres) Ping(ctx context.Context, table string) error {
	_, err := p.pool.Exec(ctx, "SELECT id FROM "+quotePostgres(table)+" LIMIT 1")
	if err != nil {
		return newError("ping", table, pgCode(err), err)
	}
	return nil
}

func (p *Postgres) Close() {
	p.pool.Close()
}

func quotePostgres(ident string) string {
	return pgx.Identifier{ident}.Sanitize()
}

func placeholderPostgres(i int) string {
	return "$" + strconv.Itoa(i)
}

// normalizeID renders uuid keys as strings; numeric keys pass through.
func normalizeID(id any) any {
	switch v := id.(type) {
	case [16]byte:
		return uuid.UUID(v).String()
	case []byte:
		return string(v)
	}
	return id
}

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}
