// Package host implements ports.HostClient over HTTP, talking to the
// external host process that owns durable storage in hosted mode.
package host

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/formaniuktaras/Price20/pkg/codec"
	"github.com/formaniuktaras/Price20/pkg/ports"
)

// maxResponseBody caps host response reads (1 MiB). Error bodies are
// surfaced to the user verbatim, so an unbounded read is a liability.
const maxResponseBody int64 = 1 << 20

// defaultTimeout bounds a single host round trip.
const defaultTimeout = 15 * time.Second

// Client implements ports.HostClient against the host's session API.
type Client struct {
	base   string
	client *http.Client
}

var _ ports.HostClient = (*Client)(nil)

type Option func(*Client)

// WithHTTPClient substitutes the underlying HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.client = c
	}
}

// New creates a Client for the host at baseURL (scheme + authority).
func New(baseURL string, opts ...Option) *Client {
	cl := &Client{
		base:   strings.TrimRight(baseURL, "/"),
		client: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(cl)
	}
	return cl
}

func (c *Client) stateURL(session string) string {
	return c.base + "/api/session/" + url.PathEscape(session) + "/state"
}

func (c *Client) saveURL(session string) string {
	return c.base + "/api/session/" + url.PathEscape(session) + "/save"
}

// FetchState retrieves the session payload from the host.
func (c *Client) FetchState(ctx context.Context, session string) (codec.PersistedState, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.stateURL(session), nil)
	if err != nil {
		return codec.PersistedState{}, fmt.Errorf("build fetch request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return codec.PersistedState{}, fmt.Errorf("fetch state: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return codec.PersistedState{}, fmt.Errorf("read host response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return codec.PersistedState{}, &HostError{Status: resp.StatusCode, Body: string(body)}
	}

	payload, err := codec.DecodeState(body)
	if err != nil {
		return codec.PersistedState{}, fmt.Errorf("host state payload: %w", err)
	}
	return payload, nil
}

// PushState submits the full canonical payload as one atomic snapshot.
func (c *Client) PushState(ctx context.Context, session string, state codec.PersistedState) error {
	data, err := codec.EncodeState(state)
	if err != nil {
		return fmt.Errorf("encode push payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.saveURL(session), bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("build push request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("push state: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return fmt.Errorf("read host response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return &HostError{Status: resp.StatusCode, Body: string(body)}
	}
	return nil
}
