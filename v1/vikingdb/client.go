package vikingdb

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/skylarkhq/vikingdb-go/v1/observability"
	"github.com/skylarkhq/vikingdb-go/v1/signer"
)

// Logger is the subset of std logger methods this package uses.
type Logger interface {
	Debug(msg string, err error, fields ...map[string]interface{})
	Info(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
}

// Client is the public entrypoint for both API planes. It hides request
// signing and envelope decoding from the application layer.
//
// Client is safe for concurrent use.
type Client struct {
	cfg      *Config
	signer   *signer.Signer
	http     *http.Client
	logger   Logger
	observer observability.Observer
}

// NewClient constructs a Client from Config and Credentials. It
// validates the config and builds the request signer internally.
// Application code should depend on *Client, not on the signer.
func NewClient(cfg *Config, creds signer.Credentials) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("vikingdb: invalid config: %w", err)
	}
	s, err := signer.New(creds)
	if err != nil {
		return nil, fmt.Errorf("vikingdb: failed to create signer: %w", err)
	}
	return &Client{
		cfg:    cfg,
		signer: s,
		http:   &http.Client{Timeout: time.Duration(cfg.HTTPTimeoutS) * time.Second},
	}, nil
}

// WithObserver attaches an observability hook. Returns the same instance
// for chaining.
func (c *Client) WithObserver(observer observability.Observer) *Client {
	c.observer = observer
	return c
}

// WithLogger attaches a structured logger. Returns the same instance for
// chaining.
func (c *Client) WithLogger(logger Logger) *Client {
	c.logger = logger
	return c
}

// WithHTTPClient replaces the underlying HTTP client. Useful for tests
// and custom transports. Returns the same instance for chaining.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.http = hc
	return c
}

// controlEnvelope is the control-plane response shape.
type controlEnvelope struct {
	ResponseMetadata struct {
		RequestID string `json:"RequestId"`
		Action    string `json:"Action"`
		Version   string `json:"Version"`
		Error     *struct {
			Code    string `json:"Code"`
			Message string `json:"Message"`
		} `json:"Error"`
	} `json:"ResponseMetadata"`
	Result json.RawMessage `json:"Result"`
}

// dataEnvelope is the data-plane response shape.
type dataEnvelope struct {
	Code      responseCode    `json:"code"`
	Message   string          `json:"message"`
	RequestID string          `json:"request_id"`
	Result    json.RawMessage `json:"result"`
}

// responseCode tolerates both code conventions the service family uses:
// string codes ("Success") and numeric codes (0 on success, e.g.
// 1000005 on error).
type responseCode string

func (c *responseCode) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*c = responseCode(s)
		return nil
	}
	// Not a JSON string; keep the literal (number, null, ...) as-is.
	*c = responseCode(data)
	return nil
}

func (c responseCode) success() bool {
	switch c {
	case "", "Success", "0", "null":
		return true
	}
	return false
}

// callControlPlane POSTs to "/" on the control-plane host with Action
// and Version as query parameters, decoding Result into out when out is
// non-nil.
func (c *Client) callControlPlane(ctx context.Context, action string, body, out interface{}) error {
	if c.cfg.ControlPlaneHost == "" {
		return ErrControlPlaneNotConfigured
	}
	query := url.Values{"Action": {action}, "Version": {c.cfg.Version}}

	start := time.Now()
	raw, status, err := c.post(ctx, c.cfg.ControlPlaneHost, "/", query, body)
	if err == nil {
		err = decodeControlEnvelope(raw, status, out)
	}
	c.observeOperation(action, c.cfg.ControlPlaneHost, "/", time.Since(start), err, int64(len(raw)), map[string]interface{}{
		"plane":  "control",
		"action": action,
	})
	if err != nil {
		c.logError("control-plane call failed", err, action)
		return err
	}
	return nil
}

// callDataPlane POSTs to an operation-specific path on the data-plane
// host, decoding result into out when out is non-nil.
func (c *Client) callDataPlane(ctx context.Context, operation, path string, body, out interface{}) error {
	if c.cfg.DataPlaneHost == "" {
		return ErrDataPlaneNotConfigured
	}

	start := time.Now()
	raw, status, err := c.post(ctx, c.cfg.DataPlaneHost, path, nil, body)
	if err == nil {
		err = decodeDataEnvelope(raw, status, out)
	}
	c.observeOperation(operation, c.cfg.DataPlaneHost, path, time.Since(start), err, int64(len(raw)), map[string]interface{}{
		"plane": "data",
	})
	if err != nil {
		c.logError("data-plane call failed", err, operation)
		return err
	}
	return nil
}

// post signs and sends one request, returning the response body and
// status. The signer and the transport see the identical byte buffer and
// the identical normalized query string.
func (c *Client) post(ctx context.Context, host, path string, query url.Values, body interface{}) ([]byte, int, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, 0, fmt.Errorf("vikingdb: marshal request body: %w", err)
	}

	headers, err := c.signer.Sign(signer.Request{
		Method:  http.MethodPost,
		Path:    path,
		Query:   query,
		Body:    payload,
		Host:    host,
		Region:  c.cfg.Region,
		Service: c.cfg.Service,
	})
	if err != nil {
		return nil, 0, err
	}

	u := &url.URL{
		Scheme:   c.cfg.Scheme,
		Host:     host,
		Path:     path,
		RawQuery: signer.NormalizeQuery(query),
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), bytes.NewReader(payload))
	if err != nil {
		return nil, 0, fmt.Errorf("vikingdb: build request: %w", err)
	}
	req.Host = headers.Get("Host")
	for _, name := range []string{"Content-Type", "X-Date", "X-Content-Sha256", "Authorization"} {
		req.Header.Set(name, headers.Get(name))
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("vikingdb: transport: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("vikingdb: read response: %w", err)
	}
	return raw, resp.StatusCode, nil
}

func decodeControlEnvelope(raw []byte, status int, out interface{}) error {
	var env controlEnvelope
	decodeErr := json.Unmarshal(raw, &env)

	if status < 200 || status >= 300 || (decodeErr == nil && env.ResponseMetadata.Error != nil) {
		apiErr := &APIError{StatusCode: status, RawBody: raw}
		if decodeErr == nil {
			apiErr.RequestID = env.ResponseMetadata.RequestID
			if env.ResponseMetadata.Error != nil {
				apiErr.Code = env.ResponseMetadata.Error.Code
				apiErr.Message = env.ResponseMetadata.Error.Message
			}
		}
		return apiErr
	}
	if decodeErr != nil {
		return fmt.Errorf("vikingdb: decode response: %w", decodeErr)
	}
	if out != nil && len(env.Result) > 0 {
		if err := json.Unmarshal(env.Result, out); err != nil {
			return fmt.Errorf("vikingdb: decode result: %w", err)
		}
	}
	return nil
}

func decodeDataEnvelope(raw []byte, status int, out interface{}) error {
	var env dataEnvelope
	decodeErr := json.Unmarshal(raw, &env)

	// A 2xx with a non-success code is still a remote rejection.
	if status < 200 || status >= 300 || (decodeErr == nil && !env.Code.success()) {
		apiErr := &APIError{StatusCode: status, RawBody: raw}
		if decodeErr == nil {
			apiErr.Message = env.Message
			apiErr.RequestID = env.RequestID
			if !env.Code.success() {
				apiErr.Code = string(env.Code)
			}
		}
		return apiErr
	}
	if decodeErr != nil {
		return fmt.Errorf("vikingdb: decode response: %w", decodeErr)
	}
	if out != nil && len(env.Result) > 0 {
		if err := json.Unmarshal(env.Result, out); err != nil {
			return fmt.Errorf("vikingdb: decode result: %w", err)
		}
	}
	return nil
}

func (c *Client) logError(msg string, err error, operation string) {
	if c.logger == nil {
		return
	}
	c.logger.Error(msg, err, map[string]interface{}{
		"operation": operation,
		"region":    c.cfg.Region,
	})
}
