// Package sofascore is the single gateway to the upstream football data
// provider. It resolves logical operations into the wire shape of the
// configured variant, performs one GET per call and classifies failures.
package sofascore

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/matchday/internal/platform/logging"
)

const (
	DefaultLegacyBaseURL   = "http://155.117.46.251:8004"
	DefaultStandardBaseURL = "https://api.sofascore.com/api/v1"
	defaultTimeout         = 10 * time.Second
	defaultImageType       = "image/png"
)

var (
	ErrNotFound      = crerr.New("sofascore: resource not found")
	ErrBlocked       = crerr.New("sofascore: request blocked")
	ErrUpstream      = crerr.New("sofascore: upstream failure")
	ErrMalformed     = crerr.New("sofascore: malformed response")
	ErrInvalidParams = crerr.New("sofascore: invalid params")
)

type Config struct {
	BaseURL   string
	Variant   Variant
	Timeout   time.Duration
	ProxyURL  string
	Logger    *logging.Logger
	Transport Doer
}

type Client struct {
	baseURL   string
	variant   Variant
	resolver  EndpointResolver
	timeout   time.Duration
	transport Doer
	logger    *logging.Logger
	now       func() time.Time
}

func NewClient(cfg Config) (*Client, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	variant := cfg.Variant
	if variant == "" {
		variant = VariantLegacy
	}
	if variant != VariantLegacy && variant != VariantStandard {
		return nil, crerr.Newf("unknown sofascore variant %q", variant)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultLegacyBaseURL
		if variant == VariantStandard {
			baseURL = DefaultStandardBaseURL
		}
	}

	transport := cfg.Transport
	if transport == nil {
		browser, err := NewBrowserTransport(cfg.ProxyURL, timeout)
		if err != nil {
			return nil, crerr.Wrap(err, "build sofascore transport")
		}
		transport = browser
	}

	return &Client{
		baseURL:   baseURL,
		variant:   variant,
		resolver:  NewResolver(variant),
		timeout:   timeout,
		transport: transport,
		logger:    logger.With("component", "sofascore", "variant", string(variant)),
		now:       time.Now,
	}, nil
}

func (c *Client) Variant() Variant {
	return c.variant
}

// Fetch performs the operation and returns the response payload, unwrapped
// from the legacy envelope when one is present.
func (c *Client) Fetch(ctx context.Context, op Operation, p Params) ([]byte, error) {
	endpoint, err := c.resolver.Resolve(op, p)
	if err != nil {
		return nil, err
	}

	fullURL := c.baseURL + endpoint.String()
	resp, err := c.get(ctx, op, fullURL, "application/json")
	if err != nil {
		return nil, err
	}

	if !sonic.Valid(resp.Body) {
		c.logger.ErrorContext(ctx, "sofascore returned invalid json",
			"operation", op.String(),
			"url", fullURL,
			"body", abbreviateBody(resp.Body),
		)
		return nil, crerr.Wrapf(ErrMalformed, "%s: body is not valid json", op)
	}

	return c.unwrap(resp.Body), nil
}

// TeamImage fetches the binary crest of a team.
func (c *Client) TeamImage(ctx context.Context, teamID string) (*Image, error) {
	endpoint, err := c.resolver.Resolve(OpTeamImage, Params{ID: teamID})
	if err != nil {
		return nil, err
	}

	resp, err := c.get(ctx, OpTeamImage, c.baseURL+endpoint.String(), "image/avif,image/webp,image/png,image/*;q=0.8")
	if err != nil {
		return nil, err
	}

	contentType := strings.TrimSpace(resp.ContentType)
	if contentType == "" {
		contentType = defaultImageType
	}
	return &Image{Body: resp.Body, ContentType: contentType}, nil
}

func (c *Client) get(ctx context.Context, op Operation, fullURL, accept string) (Response, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	startedAt := c.now()
	resp, err := c.transport.Do(ctx, Request{URL: fullURL, Accept: accept}, c.timeout)
	if err != nil {
		c.logger.ErrorContext(ctx, "sofascore request failed",
			"operation", op.String(),
			"url", fullURL,
			"duration_ms", c.now().Sub(startedAt).Milliseconds(),
			"error", err,
		)
		return Response{}, crerr.Wrapf(crerr.Mark(err, ErrUpstream), "%s: send request", op)
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		c.logger.DebugContext(ctx, "sofascore request completed",
			"operation", op.String(),
			"status", resp.StatusCode,
			"duration_ms", c.now().Sub(startedAt).Milliseconds(),
		)
		return resp, nil
	case resp.StatusCode == 404:
		c.logger.WarnContext(ctx, "sofascore resource not found",
			"operation", op.String(),
			"url", fullURL,
		)
		return Response{}, crerr.Wrapf(statusError(resp.StatusCode, ErrNotFound), "%s", op)
	case resp.StatusCode == 403:
		c.logger.ErrorContext(ctx, "sofascore request blocked",
			"operation", op.String(),
			"url", fullURL,
			"body", abbreviateBody(resp.Body),
		)
		return Response{}, crerr.Wrapf(statusError(resp.StatusCode, ErrBlocked), "%s", op)
	default:
		c.logger.ErrorContext(ctx, "sofascore returned unexpected status",
			"operation", op.String(),
			"url", fullURL,
			"status", resp.StatusCode,
			"body", abbreviateBody(resp.Body),
		)
		return Response{}, crerr.Wrapf(statusError(resp.StatusCode, ErrUpstream), "%s", op)
	}
}

// StatusError carries the upstream HTTP status of a classified failure.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return "status=" + strconv.Itoa(e.Code)
}

func statusError(code int, kind error) error {
	return crerr.Mark(&StatusError{Code: code}, kind)
}

// UpstreamStatus returns the upstream HTTP status behind err, or 0 when the
// request never got a response.
func UpstreamStatus(err error) int {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Code
	}
	return 0
}

type legacyEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
}

func (c *Client) unwrap(body []byte) []byte {
	if c.variant != VariantLegacy {
		return body
	}

	var envelope legacyEnvelope
	if err := sonic.Unmarshal(body, &envelope); err != nil {
		return body
	}
	data := strings.TrimSpace(string(envelope.Data))
	if !envelope.Success || data == "" || data == "null" {
		return body
	}
	return []byte(envelope.Data)
}

// decode fetches op and decodes the payload into T. The result is nil
// whenever err is not.
func decode[T any](ctx context.Context, c *Client, op Operation, p Params) (*T, error) {
	raw, err := c.Fetch(ctx, op, p)
	if err != nil {
		return nil, err
	}

	out := new(T)
	if err := sonic.Unmarshal(raw, out); err != nil {
		c.logger.ErrorContext(ctx, "decode sofascore payload failed",
			"operation", op.String(),
			"error", err,
		)
		return nil, crerr.Wrapf(crerr.Mark(err, ErrMalformed), "%s: decode payload", op)
	}
	return out, nil
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}
