// Package totvs runs named SQL queries through the TOTVS RM
// "RealizaConsulta" REST endpoint.
package totvs

import (
	"context"
	"crypto/tls"
	"encoding/base64"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"enrollment-dashboard-service/internal/enrollments/core/domain"
	"enrollment-dashboard-service/internal/enrollments/core/ports"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/valyala/fasthttp"
	"golang.org/x/time/rate"
)

const (
	DefaultTimeout = 120 * time.Second
	// MaxRedirects bounds redirect hops, e.g. an http to https move.
	MaxRedirects = 30
)

type Config struct {
	Endpoint     string // base URL up to .../RealizaConsulta
	Username     string
	Password     string
	QueryName    string
	QueryVersion int
	QueryScope   string

	Timeout time.Duration
	// InsecureSkipVerify disables TLS certificate checks. The reporting
	// servers in use present certificates that do not verify.
	InsecureSkipVerify bool

	RequestRateLimit float64 // requests per second, <= 0 means unlimited
	RequestRateBurst int
}

type Client struct {
	cfg     Config
	url     string
	http    *fasthttp.Client
	limiter *rate.Limiter
	json    jsoniter.API

	newRequestID func() string
	now          func() time.Time
}

var _ ports.ReportQueryPort = (*Client)(nil)

func NewClient(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	limit := rate.Inf
	if cfg.RequestRateLimit > 0 {
		limit = rate.Limit(cfg.RequestRateLimit)
	}
	burst := cfg.RequestRateBurst
	if burst < 1 {
		burst = 1
	}

	return &Client{
		cfg: cfg,
		url: QueryURL(cfg.Endpoint, cfg.QueryName, cfg.QueryVersion, cfg.QueryScope),
		http: &fasthttp.Client{
			Name:         "enrollment-dashboard",
			ReadTimeout:  cfg.Timeout,
			WriteTimeout: cfg.Timeout,
			TLSConfig:    &tls.Config{InsecureSkipVerify: cfg.InsecureSkipVerify}, //nolint:gosec
		},
		limiter:      rate.NewLimiter(limit, burst),
		json:         jsoniter.ConfigCompatibleWithStandardLibrary,
		newRequestID: uuid.NewString,
		now:          time.Now,
	}
}

// QueryURL joins the base endpoint with the query name, version and scope.
func QueryURL(endpoint, name string, version int, scope string) string {
	return strings.TrimRight(endpoint, "/") + "/" +
		url.PathEscape(name) + "/" +
		strconv.Itoa(version) + "/" +
		url.PathEscape(scope)
}

// URL returns the resolved query URL.
func (c *Client) URL() string { return c.url }

// RunQuery issues one GET for the configured query and returns the decoded
// array elements. Elements that are not JSON objects come back as nil records.
func (c *Client) RunQuery(ctx context.Context) ([]domain.RawRecord, domain.QueryMetadata, error) {
	meta := domain.QueryMetadata{
		Timestamp: c.now(),
		Method:    fasthttp.MethodGet,
		URL:       c.url,
		RequestID: c.newRequestID(),
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, meta, &domain.RemoteQueryError{
			Kind:  domain.KindTransport,
			Cause: "request not sent",
			Meta:  meta,
			Err:   err,
		}
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.url)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set(fasthttp.HeaderAuthorization, basicAuth(c.cfg.Username, c.cfg.Password))
	req.Header.Set(fasthttp.HeaderAccept, "application/json")
	req.Header.Set("X-Request-Id", meta.RequestID)

	// the timeout covers the whole redirect chain
	req.SetTimeout(c.cfg.Timeout)

	start := time.Now()
	err := c.http.DoRedirects(req, resp, MaxRedirects)
	meta.Elapsed = time.Since(start)
	meta.URL = string(req.URI().FullURI())
	meta.RequestHeaders = requestHeaders(&req.Header)

	if err != nil {
		return nil, meta, &domain.RemoteQueryError{
			Kind:  domain.KindTransport,
			Cause: fmt.Sprintf("request to %s failed", c.cfg.QueryName),
			Meta:  meta,
			Err:   err,
		}
	}

	meta.StatusCode = resp.StatusCode()
	meta.ResponseHeaders, meta.CorrelationIDs = responseHeaders(&resp.Header)

	// resp is released on return
	body := append([]byte(nil), resp.Body()...)

	if meta.StatusCode != fasthttp.StatusOK {
		meta.ErrorBody = domain.Truncate(string(body), domain.MaxErrorBody)
		return nil, meta, &domain.RemoteQueryError{
			Kind:       domain.KindStatus,
			Cause:      fmt.Sprintf("HTTP %d running %s", meta.StatusCode, c.cfg.QueryName),
			StatusCode: meta.StatusCode,
			Body:       meta.ErrorBody,
			Meta:       meta,
		}
	}

	var payload any
	if err := c.json.Unmarshal(body, &payload); err != nil {
		meta.ErrorBody = domain.Truncate(string(body), domain.MaxErrorBody)
		return nil, meta, &domain.RemoteQueryError{
			Kind:       domain.KindInvalidJSON,
			Cause:      "invalid JSON",
			StatusCode: meta.StatusCode,
			Body:       meta.ErrorBody,
			Meta:       meta,
		}
	}

	items, ok := payload.([]any)
	if !ok {
		return nil, meta, &domain.RemoteQueryError{
			Kind:       domain.KindUnexpectedShape,
			Cause:      fmt.Sprintf("unexpected JSON shape: expected array, got %s", jsonKind(payload)),
			StatusCode: meta.StatusCode,
			Meta:       meta,
		}
	}

	records := make([]domain.RawRecord, len(items))
	for i, item := range items {
		if obj, ok := item.(map[string]any); ok {
			records[i] = domain.RawRecord(obj)
		}
	}

	return records, meta, nil
}

func basicAuth(username, password string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(username+":"+password))
}

func requestHeaders(h *fasthttp.RequestHeader) map[string]string {
	out := make(map[string]string)
	h.VisitAll(func(k, v []byte) {
		key := string(k)
		if strings.EqualFold(key, fasthttp.HeaderAuthorization) {
			out[key] = "[redacted]"
			return
		}
		out[key] = string(v)
	})
	return out
}

func responseHeaders(h *fasthttp.ResponseHeader) (map[string]string, map[string]string) {
	all := make(map[string]string)
	h.VisitAll(func(k, v []byte) {
		all[string(k)] = string(v)
	})

	ids := make(map[string]string)
	for _, name := range domain.CorrelationHeaders {
		if v := h.Peek(name); len(v) > 0 {
			ids[name] = string(v)
		}
	}
	return all, ids
}

func jsonKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "object"
	case string:
		return "string"
	case float64:
		return "number"
	case bool:
		return "boolean"
	default:
		return fmt.Sprintf("%T", v)
	}
}
