package database

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/mbolis/event-intake/config"
	"github.com/mbolis/event-intake/metrics"
	"github.com/mbolis/event-intake/model"
)

// Gateway is the row-insert service registrations are persisted through.
type Gateway interface {
	// Insert writes row into table and returns the identifier the store
	// assigned to it.
	Insert(ctx context.Context, table string, row model.Row) (any, error)
	// Ping checks that table is reachable.
	Ping(ctx context.Context, table string) error
	Close()
}

// ErrNotConfigured means no datastore credentials were provided.
var ErrNotConfigured = errors.New("datastore not configured")

// Open picks the first configured backend: the hosted REST interface, a
// direct PostgreSQL connection, then a local SQLite file.
func Open(ctx context.Context, cfg config.Config) (Gateway, error) {
	switch {
	case cfg.SupabaseURL != "" && cfg.SupabaseAPIKey() != "":
		g, err := NewPostgREST(cfg.SupabaseURL, cfg.SupabaseAPIKey(), cfg.GatewayTimeout)
		if err != nil {
			return nil, err
		}
		return Instrument(g, "postgrest"), nil
	case cfg.DatabaseURL != "":
		g, err := OpenPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return Instrument(g, "postgres"), nil
	case cfg.SQLitePath != "":
		g, err := OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return Instrument(g, "sqlite"), nil
	}
	return nil, ErrNotConfigured
}

type instrumented struct {
	Gateway
	backend string
}

// Instrument records call latency of g under the given backend label.
func Instrument(g Gateway, backend string) Gateway {
	return &instrumented{g, backend}
}

func (g *instrumented) Insert(ctx context.Context, table string, row model.Row) (any, error) {
	defer metrics.ObserveGateway(g.backend, "insert", time.Now())
	return g.Gateway.Insert(ctx, table, row)
}

func (g *instrumented) Ping(ctx context.Context, table string) error {
	defer metrics.ObserveGateway(g.backend, "ping", time.Now())
	return g.Gateway.Ping(ctx, table)
}

// insertStatement renders INSERT ... RETURNING id with quoted identifiers.
func insertStatement(table string, columns []string, quote func(string) string, placeholder func(int) string) string {
	var b strings.Builder
	b.WriteString("INSERT INTO ")
	b.WriteString(quote(table))
	b.WriteString(" (")
	for i, c := range columns {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(quote(c))
	}
	b.WriteString(") VALUES (")
	for i := range columns {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(placeholder(i + 1))
	}
	b.WriteString(") RETURNING id")
	return b.String()
}
