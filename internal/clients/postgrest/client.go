package postgrest

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/quoc48/expense-tracker/internal/model/customerr"
)

const (
	restPath       = "/rest/v1/"
	defaultTimeout = 10 * time.Second

	preferRepresentation = "return=representation"
	preferExactCount     = "count=exact"
)

type config interface {
	URL() string
	AnonKey() string
}

type tokenProvider interface {
	Token() string
}

// Client talks to a PostgREST-compatible endpoint. Requests authenticate
// with the project API key plus a bearer token; without a token provider
// the API key doubles as the bearer (anonymous access under RLS).
type Client struct {
	baseURL string
	anonKey string
	token   tokenProvider
	http    *http.Client
}

type Option func(*Client)

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.Timeout = d
	}
}

func New(cfg config, token tokenProvider, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(cfg.URL(), "/"),
		anonKey: cfg.AnonKey(),
		token:   token,
		http:    &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Select fetches the rows matching q into dest.
func (c *Client) Select(ctx context.Context, table string, q Query, dest any) error {
	body, _, err := c.do(ctx, http.MethodGet, table, q, "", nil)
	if err != nil {
		return err
	}
	return decode(body, dest)
}

// Insert writes row and decodes the created representation into dest.
func (c *Client) Insert(ctx context.Context, table string, row any, dest any) error {
	body, _, err := c.do(ctx, http.MethodPost, table, Query{}, preferRepresentation, row)
	if err != nil {
		return err
	}
	return decode(body, dest)
}

// Update patches the rows matching q with the given partial field map.
func (c *Client) Update(ctx context.Context, table string, q Query, patch any) error {
	_, _, err := c.do(ctx, http.MethodPatch, table, q, "", patch)
	return err
}

// Delete removes the rows matching q.
func (c *Client) Delete(ctx context.Context, table string, q Query) error {
	_, _, err := c.do(ctx, http.MethodDelete, table, q, "", nil)
	return err
}

// Count returns the exact number of rows matching q, taken from the
// Content-Range response header.
func (c *Client) Count(ctx context.Context, table string, q Query) (int64, error) {
	_, header, err := c.do(ctx, http.MethodGet, table, q.Limit(1), preferExactCount, nil)
	if err != nil {
		return 0, err
	}
	return parseContentRange(header.Get("Content-Range"))
}

// Ping issues a bare GET against the REST root to verify connectivity and
// the API key.
func (c *Client) Ping(ctx context.Context) error {
	_, _, err := c.do(ctx, http.MethodGet, "", Query{}, "", nil)
	return err
}

func (c *Client) do(ctx context.Context, method, table string, q Query, prefer string, payload any) ([]byte, http.Header, error) {
	var reqBody io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, nil, errors.Wrap(err, "marshalling request body")
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+restPath+table, reqBody)
	if err != nil {
		return nil, nil, errors.Wrap(err, "building request")
	}
	req.URL.RawQuery = q.Values().Encode()

	req.Header.Set("apikey", c.anonKey)
	req.Header.Set("Authorization", "Bearer "+c.bearer())
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if prefer != "" {
		req.Header.Set("Prefer", prefer)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return nil, nil, errors.Wrap(err, "remote store request")
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, nil, errors.Wrap(err, "reading response body")
	}

	switch res.StatusCode {
	case http.StatusOK, http.StatusCreated, http.StatusNoContent, http.StatusPartialContent:
		return body, res.Header, nil
	default:
		return nil, nil, &customerr.RequestError{Status: res.StatusCode}
	}
}

func (c *Client) bearer() string {
	if c.token != nil {
		if t := c.token.Token(); t != "" {
			return t
		}
	}
	return c.anonKey
}

func decode(body []byte, dest any) error {
	if dest == nil {
		return nil
	}
	if err := json.Unmarshal(body, dest); err != nil {
		return &customerr.ParseError{Err: err}
	}
	return nil
}

// parseContentRange extracts the total from a "start-end/total" header.
func parseContentRange(value string) (int64, error) {
	idx := strings.LastIndex(value, "/")
	if idx < 0 || idx == len(value)-1 {
		return 0, errors.Errorf("malformed Content-Range header %q", value)
	}
	total := value[idx+1:]
	if total == "*" {
		return 0, errors.New("store did not report an exact count")
	}
	n, err := strconv.ParseInt(total, 10, 64)
	if err != nil {
		return 0, errors.Wrap(err, "parsing Content-Range total")
	}
	return n, nil
}
