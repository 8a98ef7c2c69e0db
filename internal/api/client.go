package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

// maxErrorBody caps how much of a failed response is echoed into FetchError.
const maxErrorBody = 512

// RequestInfo describes a request at the moment it is issued.
type RequestInfo struct {
	ID       string
	Method   string
	Endpoint string
	At       time.Time
}

// Observer is notified of every request before it goes on the wire.
type Observer func(RequestInfo)

// Client issues JSON requests against endpoints resolved from a RoleContext.
type Client struct {
	httpClient *http.Client
	timeout    time.Duration
	observers  []Observer
	now        func() time.Time

	// reads collapses concurrent Gets. Keys carry the write generation so a
	// Get issued after a completed Post never joins a flight that began
	// before it.
	reads  singleflight.Group
	writes atomic.Uint64
}

// Option configures the client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithTimeout sets a per-request timeout on a copy of the HTTP client. Zero
// leaves the client as installed.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithObserver registers a callback invoked as each request is issued.
func WithObserver(o Observer) Option {
	return func(c *Client) {
		c.observers = append(c.observers, o)
	}
}

// NewClient creates a client. Requests have no timeout unless WithTimeout is given.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{},
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{}
	}
	if c.timeout > 0 {
		hc := *c.httpClient
		hc.Timeout = c.timeout
		c.httpClient = &hc
	}
	return c
}

// Get fetches endpoint and decodes the JSON body into out. Concurrent Gets of
// the same endpoint share one round trip unless a Post completed in between.
func (c *Client) Get(ctx context.Context, endpoint string, out any) error {
	raw, err := c.read(ctx, endpoint)
	if err != nil {
		return err
	}
	return decode(endpoint, raw, out)
}

// Post sends body as JSON and decodes the JSON response into out. out may be
// nil when the caller only cares about success.
func (c *Client) Post(ctx context.Context, endpoint string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return &FetchError{Kind: KindDecode, Endpoint: endpoint, Message: "encode request body", Err: err}
	}
	raw, err := c.write(ctx, endpoint, payload)
	if err != nil {
		return err
	}
	return decode(endpoint, raw, out)
}

// getValidated is Get with the body checked against schema before decoding.
func (c *Client) getValidated(ctx context.Context, endpoint string, schema *Schema, out any) error {
	raw, err := c.read(ctx, endpoint)
	if err != nil {
		return err
	}
	if err := validate(endpoint, schema, raw); err != nil {
		return err
	}
	return decode(endpoint, raw, out)
}

// postValidated is Post with the response checked against schema before decoding.
func (c *Client) postValidated(ctx context.Context, endpoint string, body any, schema *Schema, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return &FetchError{Kind: KindDecode, Endpoint: endpoint, Message: "encode request body", Err: err}
	}
	raw, err := c.write(ctx, endpoint, payload)
	if err != nil {
		return err
	}
	if err := validate(endpoint, schema, raw); err != nil {
		return err
	}
	return decode(endpoint, raw, out)
}

func (c *Client) read(ctx context.Context, endpoint string) ([]byte, error) {
	key := endpoint + "#" + strconv.FormatUint(c.writes.Load(), 10)
	raw, err, _ := c.reads.Do(key, func() (any, error) {
		return c.do(ctx, http.MethodGet, endpoint, nil)
	})
	if err != nil {
		return nil, err
	}
	return raw.([]byte), nil
}

// write bumps the generation even on failure: the server may have applied it.
func (c *Client) write(ctx context.Context, endpoint string, payload []byte) ([]byte, error) {
	defer c.writes.Add(1)
	return c.do(ctx, http.MethodPost, endpoint, payload)
}

func (c *Client) do(ctx context.Context, method, endpoint string, payload []byte) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, &FetchError{Kind: KindNetwork, Endpoint: endpoint, Message: "build request", Err: err}
	}

	id := uuid.New().String()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", id)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	info := RequestInfo{ID: id, Method: method, Endpoint: endpoint, At: c.now()}
	for _, o := range c.observers {
		o(info)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &FetchError{Kind: KindNetwork, Endpoint: endpoint, Message: "request failed", Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{Kind: KindNetwork, Endpoint: endpoint, Message: "read response body", Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &FetchError{
			Kind:     KindStatus,
			Endpoint: endpoint,
			Status:   resp.StatusCode,
			Message:  errorMessage(raw),
		}
	}

	return raw, nil
}

func decode(endpoint string, raw []byte, out any) error {
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &FetchError{Kind: KindDecode, Endpoint: endpoint, Message: "decode response", Err: err}
	}
	return nil
}

// errorMessage pulls {"error": "..."} out of a failed response, falling back
// to the (truncated) raw body.
func errorMessage(raw []byte) string {
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err == nil && body.Error != "" {
		return body.Error
	}
	msg := strings.TrimSpace(string(raw))
	if len(msg) > maxErrorBody {
		msg = msg[:maxErrorBody] + "..."
	}
	if msg == "" {
		return "empty response"
	}
	return fmt.Sprintf("%q", msg)
}
