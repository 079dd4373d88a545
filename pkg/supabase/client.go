// Package supabase is a small client for the PostgREST interface exposed by a
// Supabase project (https://<project>.supabase.co/rest/v1).
//
// Only the handful of operations the site needs are implemented: insert with
// representation, filtered select, filtered delete and a connectivity probe.
package supabase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	restPath       = "/rest/v1"
	defaultTimeout = 10 * time.Second

	// ProbeTable is queried by Ping. It does not need to exist: PostgREST
	// answering with an error still proves the credentials reached the project.
	ProbeTable = "information"

	uniqueViolation = "23505"
)

// ErrNoRows is returned by Insert when the server did not return the created row.
var ErrNoRows = errors.New("supabase: no rows returned")

// APIError is the error body PostgREST returns for non-2xx responses.
type APIError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details"`
	Hint    string `json:"hint"`
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("supabase: HTTP %d", e.Status)
}

// IsUniqueViolation reports whether err is a PostgREST conflict caused by a
// unique constraint.
func IsUniqueViolation(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.Code == uniqueViolation || apiErr.Status == http.StatusConflict
}

// Query describes a filtered select.
type Query struct {
	Columns string            // defaults to "*"
	Eq      map[string]string // column = value filters
	Order   string            // PostgREST order expression, e.g. "created_at.desc"
	Limit   int               // 0 means no limit
}

func (q Query) values() url.Values {
	v := url.Values{}
	cols := q.Columns
	if cols == "" {
		cols = "*"
	}
	v.Set("select", cols)
	for col, val := range q.Eq {
		v.Set(col, "eq."+val)
	}
	if q.Order != "" {
		v.Set("order", q.Order)
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	return v
}

// Option customises the underlying resty client.
type Option func(*resty.Client)

// WithTimeout overrides the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *resty.Client) { c.SetTimeout(d) }
}

// Client talks to one Supabase project with one API key.
type Client struct {
	http *resty.Client
}

// NewClient returns a client for the project at baseURL (the SUPABASE_URL value,
// without the /rest/v1 suffix) authenticated with apiKey.
func NewClient(baseURL, apiKey string, opts ...Option) *Client {
	rc := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")+restPath).
		SetTimeout(defaultTimeout).
		SetHeader("apikey", apiKey).
		SetAuthToken(apiKey).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	for _, opt := range opts {
		opt(rc)
	}
	return &Client{http: rc}
}

// Insert creates row in table and decodes the stored representation into out,
// which must be a pointer to a slice.
func (c *Client) Insert(ctx context.Context, table string, row, out any) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Prefer", "return=representation").
		SetBody([]any{row}).
		SetResult(out).
		SetError(&APIError{}).
		Post("/" + table)
	return checkResponse(resp, err, "insert into "+table)
}

// Select runs q against table and decodes the rows into out, which must be a
// pointer to a slice.
func (c *Client) Select(ctx context.Context, table string, q Query, out any) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParamsFromValues(q.values()).
		SetResult(out).
		SetError(&APIError{}).
		Get("/" + table)
	return checkResponse(resp, err, "select from "+table)
}

// Delete removes every row of table matching all eq filters. Matching no row
// is not an error. At least one filter is required.
func (c *Client) Delete(ctx context.Context, table string, eq map[string]string) error {
	if len(eq) == 0 {
		return fmt.Errorf("supabase: delete from %s: refusing unfiltered delete", table)
	}
	params := url.Values{}
	for col, val := range eq {
		params.Set(col, "eq."+val)
	}
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Prefer", "return=minimal").
		SetQueryParamsFromValues(params).
		SetError(&APIError{}).
		Delete("/" + table)
	return checkResponse(resp, err, "delete from "+table)
}

// Ping issues a one-row select against ProbeTable. A transport failure is
// returned as is; an answer from PostgREST that is not 2xx is an *APIError.
func (c *Client) Ping(ctx context.Context) error {
	var rows []map[string]any
	return c.Select(ctx, ProbeTable, Query{Limit: 1}, &rows)
}

func checkResponse(resp *resty.Response, err error, op string) error {
	if err != nil {
		return fmt.Errorf("supabase: %s: %w", op, err)
	}
	if !resp.IsError() {
		return nil
	}
	apiErr, ok := resp.Error().(*APIError)
	if !ok || apiErr == nil {
		apiErr = &APIError{}
	}
	apiErr.Status = resp.StatusCode()
	if apiErr.Message == "" {
		apiErr.Message = strings.TrimSpace(resp.String())
	}
	return apiErr
}
