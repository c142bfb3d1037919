// Package crmapi is the HTTP client for the CRM REST backend. A single
// Client is shared by the whole portal; it authenticates each request with
// the session carried by the request context.
package crmapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/crmdesk/portal/internal/api/metrics"
	"github.com/crmdesk/portal/internal/core/domain"
)

const (
	DefaultBaseURL = "http://localhost:8000/api"

	// maxErrorBody bounds how much of a failed response is kept on APIError.
	maxErrorBody = 1 << 20
)

// Config captures the settings of the backend client.
type Config struct {
	BaseURL string
	// Timeout bounds a whole request. Zero keeps the transport defaults.
	Timeout time.Duration
	// Transport is the underlying round tripper. Defaults to
	// http.DefaultTransport.
	Transport http.RoundTripper
}

// Client issues one backend request per facade call. It is safe for
// concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger

	companies resource[domain.Company]
	contacts  resource[domain.Contact]
	deals     resource[domain.Deal]
	tasks     resource[domain.Task]
	meetings  resource[domain.Meeting]
}

// New builds a Client for cfg.BaseURL (DefaultBaseURL when empty).
func New(cfg Config, log zerolog.Logger) (*Client, error) {
	base := cfg.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("crmapi: parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("crmapi: base url %q must be http or https", base)
	}

	rt := cfg.Transport
	if rt == nil {
		rt = http.DefaultTransport
	}

	c := &Client{
		baseURL: strings.TrimRight(u.String(), "/"),
		http: &http.Client{
			Transport: &authTransport{base: rt},
			Timeout:   cfg.Timeout,
		},
		log: log.With().Str("component", "crmapi").Logger(),
	}
	c.companies = newResource[domain.Company](c, "company", "companies", restPaths("/companies/"))
	c.contacts = newResource[domain.Contact](c, "contact", "contacts", restPaths("/contacts/"))
	c.deals = newResource[domain.Deal](c, "deal", "deals", restPaths("/deals/"))
	c.tasks = newResource[domain.Task](c, "task", "tasks", restPaths("/tasks/"))
	c.meetings = newResource[domain.Meeting](c, "meeting", "meetings", meetingPaths)
	return c, nil
}

// BaseURL returns the normalised backend address.
func (c *Client) BaseURL() string { return c.baseURL }

// do issues a single request. in is JSON-encoded when non-nil; the response
// body is decoded into out when out is non-nil and the backend sent one.
func (c *Client) do(ctx context.Context, op, method, path string, query url.Values, in, out any) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%s: encode body: %w", op, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return fmt.Errorf("%s: new request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	elapsed := time.Since(start)
	metrics.BackendRequestDuration.WithLabelValues(op).Observe(elapsed.Seconds())
	if err != nil {
		metrics.BackendRequestsTotal.WithLabelValues(op, "transport_error").Inc()
		c.log.Warn().Err(err).Str("op", op).Str("method", method).Str("path", path).Msg("backend request failed")
		return err
	}
	defer resp.Body.Close()

	metrics.BackendRequestsTotal.WithLabelValues(op, strconv.Itoa(resp.StatusCode)).Inc()
	c.log.Debug().
		Str("op", op).
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("elapsed", elapsed).
		Msg("backend request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &APIError{
			Op:          op,
			Method:      method,
			Path:        path,
			StatusCode:  resp.StatusCode,
			ContentType: resp.Header.Get("Content-Type"),
			Body:        data,
		}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if err == io.EOF {
			return nil
		}
		return fmt.Errorf("%s: decode response: %w", op, err)
	}
	return nil
}
