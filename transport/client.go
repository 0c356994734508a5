package transport

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldlog"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// DefaultTimeout applies when NewClient is given no *http.Client.
const DefaultTimeout = 30 * time.Second

// Config carries the per-call options recognized by every verb.
type Config struct {
	Headers map[string]string
	// Params is encoded as the query string.
	Params map[string]string
	// TimeoutMS optionally bounds this call, on top of the client's own timeout.
	TimeoutMS ldvalue.OptionalInt
}

// Response is the normalized result of one call.
type Response struct {
	Data    interface{}
	Status  int
	Headers map[string]string
}

// Adapter is the transport boundary consumed by the dispatcher.
type Adapter interface {
	Get(ctx context.Context, url string, cfg Config) (Response, error)
	Post(ctx context.Context, url string, data interface{}, cfg Config) (Response, error)
	Put(ctx context.Context, url string, data interface{}, cfg Config) (Response, error)
	Delete(ctx context.Context, url string, cfg Config) (Response, error)
}

var defaultHeaders = map[string]string{
	"Content-Type": "application/json",
	"Accept":       "application/json",
}

// Client is the net/http implementation of Adapter. It holds no state between calls apart from
// the underlying *http.Client.
type Client struct {
	baseURL    string
	httpClient *http.Client
	loggers    ldlog.Loggers
}

var _ Adapter = (*Client)(nil)

// NewClient creates a Client whose URLs are relative to baseURL.
func NewClient(baseURL string, httpClient *http.Client, loggers ldlog.Loggers) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: httpClient,
		loggers:    loggers,
	}
}

func (c *Client) Get(ctx context.Context, url string, cfg Config) (Response, error) {
	return c.do(ctx, http.MethodGet, url, nil, cfg)
}

func (c *Client) Post(ctx context.Context, url string, data interface{}, cfg Config) (Response, error) {
	return c.do(ctx, http.MethodPost, url, data, cfg)
}

func (c *Client) Put(ctx context.Context, url string, data interface{}, cfg Config) (Response, error) {
	return c.do(ctx, http.MethodPut, url, data, cfg)
}

func (c *Client) Delete(ctx context.Context, url string, cfg Config) (Response, error) {
	return c.do(ctx, http.MethodDelete, url, nil, cfg)
}

func (c *Client) do(
	ctx context.Context,
	method string,
	path string,
	data interface{},
	cfg Config,
) (Response, error) {
	body, err := encodeBody(data)
	if err != nil {
		return Response{}, err
	}
	if cfg.TimeoutMS.IsDefined() {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(cfg.TimeoutMS.IntValue())*time.Millisecond)
		defer cancel()
	}

	var bodyReader io.Reader
	if body != nil {
		bodyReader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return Response{}, errors.Wrapf(err, "error creating request %s %s", method, path)
	}
	req.Header = mergeHeaders(cfg.Headers)
	if len(cfg.Params) > 0 {
		q := req.URL.Query()
		for k, v := range cfg.Params {
			q.Set(k, v)
		}
		req.URL.RawQuery = q.Encode()
	}
	if c.loggers.IsDebugEnabled() {
		c.loggers.Debug(curlCommand(req, body))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Response{}, &TransportError{
			Method: method,
			URL:    req.URL.String(),
			Err:    errors.Wrap(err, "error invoking API"),
		}
	}
	defer resp.Body.Close()
	c.loggers.Debugf("%s %s returned %d", method, req.URL, resp.StatusCode)

	ret := Response{Status: resp.StatusCode, Headers: flattenHeaders(resp.Header)}
	if resp.StatusCode == http.StatusNoContent {
		return ret, nil
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return Response{}, &TransportError{
			Method: method,
			URL:    req.URL.String(),
			Err:    errors.Wrap(err, "error reading response body"),
		}
	}
	if ret.Data, err = decodeBody(raw, resp.Header); err != nil {
		c.loggers.Debugf("%s %s: returning body as received: %s", method, req.URL, err)
	}
	return ret, nil
}

func encodeBody(data interface{}) ([]byte, error) {
	switch d := data.(type) {
	case nil:
		return nil, nil
	case []byte:
		return d, nil
	case json.RawMessage:
		return d, nil
	case string:
		return []byte(d), nil
	}
	body, err := json.Marshal(data)
	if err != nil {
		return nil, errors.Wrap(err, "error marshaling request body")
	}
	return body, nil
}

// mergeHeaders applies the JSON defaults and then the caller's headers, so the caller wins on a
// case-insensitive collision.
func mergeHeaders(headers map[string]string) http.Header {
	h := make(http.Header, len(defaultHeaders)+len(headers))
	for k, v := range defaultHeaders {
		h.Set(k, v)
	}
	for k, v := range headers {
		h.Set(k, v)
	}
	return h
}

func flattenHeaders(h http.Header) map[string]string {
	ret := make(map[string]string, len(h))
	for k, vs := range h {
		ret[strings.ToLower(k)] = strings.Join(vs, ", ")
	}
	return ret
}
