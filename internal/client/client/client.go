package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/clinicdesk/internal/client/storage"
	"github.com/dmitrijs2005/clinicdesk/internal/logging"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// maxBodySize caps how much of a response body is read.
const maxBodySize = 4 << 20

// Options configures an APIClient.
type Options struct {
	BaseURL   string
	Timeout   time.Duration
	Storage   storage.Storage
	Session   SessionClearer
	Navigator Navigator
	LoginPath string
	Logger    logging.Logger
	// Transport is the innermost round tripper; http.DefaultTransport when nil.
	Transport http.RoundTripper
}

type APIClient struct {
	baseURL string
	http    *http.Client
	log     logging.Logger
}

// New builds the shared API client.
func New(opts Options) (*APIClient, error) {
	u, err := url.Parse(opts.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse api base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("api base url %q: scheme must be http or https", opts.BaseURL)
	}
	if opts.Storage == nil {
		return nil, errors.New("api client: storage is required")
	}

	log := opts.Logger
	if log == nil {
		log = logging.Discard()
	}
	log = log.With("component", "api")

	base := opts.Transport
	if base == nil {
		base = http.DefaultTransport
	}

	var rt http.RoundTripper = otelhttp.NewTransport(base)
	rt = &authTransport{next: rt, storage: opts.Storage, log: log}
	rt = &unauthorizedTransport{
		next:      rt,
		session:   opts.Session,
		navigator: opts.Navigator,
		loginPath: opts.LoginPath,
		log:       log,
	}

	return &APIClient{
		baseURL: strings.TrimRight(u.String(), "/"),
		http:    &http.Client{Transport: rt, Timeout: opts.Timeout},
		log:     log,
	}, nil
}

// Do sends in (when non-nil) as JSON and decodes the response into out
// (when non-nil).
func (c *APIClient) Do(ctx context.Context, method, path string, in, out any) error {
	body, err := c.do(ctx, method, path, in)
	if err != nil {
		return err
	}
	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func (c *APIClient) do(ctx context.Context, method, path string, in any) ([]byte, error) {
	var reader io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/"+strings.TrimLeft(path, "/"), reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrUnavailable, err)
	}
	c.log.Debug(ctx, "api call", "method", method, "path", path, "status", resp.StatusCode,
		"duration", time.Since(start))

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, &APIError{StatusCode: resp.StatusCode, Method: method, Path: path, Body: body}
	}
	return body, nil
}
