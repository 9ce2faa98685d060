package database

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/mbolis/event-intake/model"
	"github.com/supabase-community/postgrest-go"
)

// PostgREST talks to the hosted store through its REST interface
// (<base>/rest/v1/<table>), authenticating with the project API key.
type PostgREST struct {
	client  *postgrest.Client
	timeout time.Duration
}

// postgrest-go renders error bodies as "(<code>) <message>"
var rePostgRESTError = regexp.MustCompile(`^\(([^)]*)\) `)

func NewPostgREST(baseURL, key string, timeout time.Duration) (*PostgREST, error) {
	base, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("postgrest: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("postgrest: unsupported url %q", baseURL)
	}

	client := postgrest.NewClient(base.JoinPath("rest", "v1").String(), "", map[string]string{
		"apikey":        key,
		"Authorization": "Bearer " + key,
	})
	if client.ClientError != nil {
		return nil, fmt.Errorf("postgrest: %w", client.ClientError)
	}
	return &PostgREST{client: client, timeout: timeout}, nil
}

func (p *PostgREST) Insert(ctx context.Context, table string, row model.Row) (any, error) {
	ctx, cancel := p.withTimeout(ctx)
	defer cancel()

	body, _, err := p.client.From(table).
		Insert(row.Map(), false, "", "representation", "").
		ExecuteWithContext(ctx)
	if err != nil {
		return nil, postgrestError("insert", table, err)
	}

	var inserted []map[string]any
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(&inserted); err != nil {
		return nil, newError("insert", table, "", fmt.Errorf("decode response: %w", err))
	}
	if len(inserted) == 0 || inserted[0]["id"] == nil {
		return nil, newError("insert", table, "", errors.New("no row returned from insert"))
	}
	return inserted[0]["id"], nil
}

func (p *PostgREST) Ping(ctx context.Context, table string) error {
	ctx, cancel := p.withTimeout(ctx)
	defer cancel()

	_, _, err := p.client.From(table).
		Select("id", "", false).
		Limit(1, "").
		ExecuteWithContext(ctx)
	if err != nil {
		return postgrestError("ping", table, err)
	}
	return nil
}

// Close is a no-op: the client keeps no connections of its own.
func (p *PostgREST) Close() {}

func (p *PostgREST) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if p.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, p.timeout)
}

func postgrestError(op, table string, err error) *Error {
	var code string
	if m := rePostgRESTError.FindStringSubmatch(err.Error()); m != nil {
		code = m[1]
	}
	return newError(op, table, code, err)
}
