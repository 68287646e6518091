package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	cache "github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"

	"github.com/jwalitptl/clinic-portal/pkg/metrics"
)

// Config configures the shared backend client.
type Config struct {
	BaseURL string
	Timeout time.Duration
	// CacheTTL bounds how long roster and busy-slot reads are served from
	// the local shadow cache before hitting the backend again.
	CacheTTL time.Duration
	Logger   zerolog.Logger
	// Metrics is optional; when set, every backend call is counted and
	// timed per resource.
	Metrics *metrics.Metrics
}

// Client is the single HTTP client every resource client shares. It owns
// the base URL, the cookie jar carrying backend credentials, and a small
// TTL cache for hot read paths.
type Client struct {
	http    *http.Client
	baseURL string
	cache   *cache.Cache
	log     zerolog.Logger
	metrics *metrics.Metrics

	Auth      *AuthClient
	Doctors   *DoctorsClient
	Patients  *PatientsClient
	Schedules *SchedulesClient
	Booking   *BookingClient
	Chatbot   *ChatbotClient
}

func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	if _, err := url.Parse(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 30 * time.Second
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	return newClient(&http.Client{
		Timeout: cfg.Timeout,
		Jar:     jar,
	}, cfg.BaseURL, cache.New(cfg.CacheTTL, 2*cfg.CacheTTL), cfg.Logger, cfg.Metrics), nil
}

// WithSession derives a client with its own cookie jar, so each browser
// session carries its own backend credentials and one user's login can
// never ride on another session's calls. The shadow cache, logger and
// metrics stay shared; they hold no identity-scoped data.
func (c *Client) WithSession() (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}
	return newClient(&http.Client{
		Timeout: c.http.Timeout,
		Jar:     jar,
	}, c.baseURL, c.cache, c.log, c.metrics), nil
}

func newClient(h *http.Client, baseURL string, store *cache.Cache, log zerolog.Logger, m *metrics.Metrics) *Client {
	c := &Client{
		http:    h,
		baseURL: baseURL,
		cache:   store,
		log:     log,
		metrics: m,
	}
	c.Auth = &AuthClient{c: c}
	c.Doctors = &DoctorsClient{c: c}
	c.Patients = &PatientsClient{c: c}
	c.Schedules = &SchedulesClient{c: c}
	c.Booking = &BookingClient{c: c}
	c.Chatbot = &ChatbotClient{c: c}
	return c
}

// envelope is the backend's uniform response body.
type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// do issues one request and decodes the envelope. A non-success outcome is
// always returned as *APIError; the raw body is never handed to callers.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(buf)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return &APIError{Kind: KindNetwork, Message: genericErrorMessage, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Error().Err(err).Str("method", method).Str("path", path).Msg("backend request failed")
		c.observe(path, "network_error", start)
		return &APIError{Kind: KindNetwork, Message: genericErrorMessage, Err: err}
	}
	defer resp.Body.Close()

	c.log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("backend request")
	c.observe(path, fmt.Sprintf("%d", resp.StatusCode), start)

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &APIError{Kind: KindNetwork, Message: genericErrorMessage, Err: err}
	}

	var env envelope
	structured := json.Unmarshal(raw, &env) == nil && env.Status != ""

	if resp.StatusCode >= 400 || (structured && env.Status == "error") {
		msg := genericErrorMessage
		if structured && env.Message != "" {
			msg = env.Message
		}
		if isNoFieldsChangedMessage(msg) {
			return fmt.Errorf("%s: %w", msg, ErrNoFieldsChanged)
		}
		return &APIError{
			Kind:       kindForStatus(resp.StatusCode),
			StatusCode: resp.StatusCode,
			Message:    msg,
		}
	}

	// Some backend routes answer with the benign no-op message on a 200.
	if structured && isNoFieldsChangedMessage(env.Message) {
		return fmt.Errorf("%s: %w", env.Message, ErrNoFieldsChanged)
	}

	if out != nil {
		payload := env.Data
		if !structured {
			payload = raw
		}
		if len(payload) == 0 {
			return nil
		}
		if err := json.Unmarshal(payload, out); err != nil {
			return &APIError{Kind: KindServer, Message: genericErrorMessage, Err: err}
		}
	}
	return nil
}

// observe records one backend call under its top-level resource segment.
func (c *Client) observe(path, status string, start time.Time) {
	if c.metrics == nil {
		return
	}
	resource := strings.SplitN(strings.TrimPrefix(path, "/"), "/", 2)[0]
	c.metrics.BackendCalls.WithLabelValues(resource, status).Inc()
	c.metrics.BackendLatency.WithLabelValues(resource).Observe(time.Since(start).Seconds())
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) put(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}
