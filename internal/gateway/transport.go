package gateway

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"sort"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/valyala/bytebufferpool"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/fieldside/tourney-admin/internal/platform/logging"
	"github.com/fieldside/tourney-admin/internal/platform/resilience"
)

const (
	defaultTimeout   = 20 * time.Second
	maxResponseBytes = 8 << 20
)

// ErrSessionExpired marks a 401 on an authenticated call. The transport has
// already torn the session down when this is returned; callers route the
// operator back to login.
var ErrSessionExpired = crerr.New("session expired")

var errTransient = crerr.New("tournament api transient failure")

// APIError carries the server's error payload upward unchanged.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// TokenSource is the slice of the session the transport needs: the current
// bearer token and the global 401 teardown. Invalidate must be idempotent;
// concurrent 401s each call it.
type TokenSource interface {
	Token() string
	Invalidate()
}

type TransportConfig struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *logging.Logger
	Instrument bool
	// DedupeReads collapses concurrent identical GETs into one upstream
	// request.
	DedupeReads    bool
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Transport wraps every request to the tournament API: bearer token
// injection, request IDs, JSON/multipart bodies, and the global 401
// teardown. No retries and no idempotency keys; duplicate submissions
// reach the server as duplicates.
type Transport struct {
	httpClient     *http.Client
	baseURL        string
	session        TokenSource
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	dedupeReads    bool
	flight         resilience.SingleFlight
}

func NewTransport(cfg TransportConfig, session TokenSource) *Transport {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	if cfg.Instrument && httpClient.Transport == nil {
		httpClient.Transport = otelhttp.NewTransport(http.DefaultTransport)
	}

	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Transport{
		httpClient:     httpClient,
		baseURL:        strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		session:        session,
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
		dedupeReads:    cfg.DedupeReads,
	}
}

type call struct {
	method string
	path   string
	query  url.Values
	body   *payloadBody
	// anonymous calls (login/register) skip the bearer header and do not
	// trigger session teardown on 401; a 401 there is bad credentials.
	anonymous bool
}

type payloadBody struct {
	contentType string
	data        []byte
}

func (t *Transport) do(ctx context.Context, c call, target any) error {
	if t.circuitEnabled {
		if err := t.breaker.Allow(); err != nil {
			t.logger.WarnContext(ctx, "circuit breaker rejected request", "path", c.path, "state", t.breaker.State())
			return fmt.Errorf("tournament api is temporarily unavailable: %w", err)
		}
	}

	var raw []byte
	var err error
	if t.dedupeReads && c.method == http.MethodGet {
		// Concurrent identical reads share one upstream round trip; only
		// the leader records a breaker outcome.
		key := c.path + "?" + c.query.Encode()
		out, flightErr, _ := t.flight.Do(key, func() (any, error) {
			return t.roundTrip(ctx, c)
		})
		err = flightErr
		if shared, ok := out.([]byte); ok {
			raw = shared
		}
	} else {
		raw, err = t.roundTrip(ctx, c)
	}
	if err != nil {
		return err
	}

	if target == nil || len(raw) == 0 {
		return nil
	}
	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode %s %s response: %w", c.method, c.path, err)
	}

	return nil
}

func (t *Transport) roundTrip(ctx context.Context, c call) ([]byte, error) {
	raw, err := t.execute(ctx, c)
	if t.circuitEnabled {
		if err != nil && crerr.Is(err, errTransient) {
			t.breaker.RecordFailure()
		} else {
			t.breaker.RecordSuccess()
		}
	}
	return raw, err
}

func (t *Transport) execute(ctx context.Context, c call) ([]byte, error) {
	fullURL := t.baseURL + c.path
	if encoded := c.query.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	var bodyReader io.Reader
	if c.body != nil {
		bodyReader = bytes.NewReader(c.body.data)
	}

	req, err := http.NewRequestWithContext(ctx, c.method, fullURL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("create %s %s request: %w", c.method, c.path, err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if c.body != nil {
		req.Header.Set("Content-Type", c.body.contentType)
	}
	if !c.anonymous {
		if token := t.session.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return nil, crerr.Mark(fmt.Errorf("call tournament api: %w", err), errTransient)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, crerr.Mark(fmt.Errorf("read %s %s response: %w", c.method, c.path, err), errTransient)
	}

	if resp.StatusCode == http.StatusUnauthorized && !c.anonymous {
		t.session.Invalidate()
		t.logger.WarnContext(ctx, "session torn down after 401", "path", c.path)
		return nil, fmt.Errorf("%w: %s", ErrSessionExpired, serverMessage(raw, resp.StatusCode))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: serverMessage(raw, resp.StatusCode)}
		if resp.StatusCode >= 500 {
			return nil, crerr.Mark(apiErr, errTransient)
		}
		return nil, apiErr
	}

	return raw, nil
}

// serverMessage extracts the {"message": ...} payload the API uses for all
// error responses, falling back to a generic status line.
func serverMessage(raw []byte, statusCode int) string {
	var envelope struct {
		Message string `json:"message"`
	}
	if err := sonic.Unmarshal(raw, &envelope); err == nil && strings.TrimSpace(envelope.Message) != "" {
		return strings.TrimSpace(envelope.Message)
	}
	return fmt.Sprintf("request failed with status %d", statusCode)
}

// FileAttachment is a binary upload carried inside a multipart form.
type FileAttachment struct {
	Name        string
	ContentType string
	Data        []byte
}

// multipartForm is implemented by payloads that may carry an image. These
// are always sent as multipart: pushing an image through JSON would
// silently drop the file.
type multipartForm interface {
	FormFields() map[string]string
	FormFile() (string, *FileAttachment)
}

func encodeJSON(v any) (*payloadBody, error) {
	data, err := sonic.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode request body: %w", err)
	}
	return &payloadBody{contentType: "application/json", data: data}, nil
}

func encodeMultipart(form multipartForm) (*payloadBody, error) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	w := multipart.NewWriter(buf)

	fields := form.FormFields()
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if err := w.WriteField(key, fields[key]); err != nil {
			return nil, fmt.Errorf("write form field %q: %w", key, err)
		}
	}

	if field, file := form.FormFile(); file != nil {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, field, file.Name))
		contentType := file.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		header.Set("Content-Type", contentType)

		part, err := w.CreatePart(header)
		if err != nil {
			return nil, fmt.Errorf("create form file %q: %w", field, err)
		}
		if _, err := part.Write(file.Data); err != nil {
			return nil, fmt.Errorf("write form file %q: %w", field, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("finalize multipart body: %w", err)
	}

	// The pooled buffer is reused after return; the body must own its bytes.
	data := append([]byte(nil), buf.B...)

	return &payloadBody{contentType: w.FormDataContentType(), data: data}, nil
}
