// Package indexnow submits changed URLs to the IndexNow search engine
// endpoints.
package indexnow

import (
	"context"
	"net/url"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/matchday/internal/platform/logging"
	"github.com/riskibarqy/matchday/internal/platform/resilience"
	"github.com/sourcegraph/conc/iter"
	"github.com/valyala/bytebufferpool"
	"github.com/valyala/fasthttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	MaxURLsPerRequest = 10000
	contentType       = "application/json; charset=utf-8"
)

var DefaultEndpoints = []string{
	"https://api.indexnow.org/indexnow",
	"https://www.bing.com/indexnow",
	"https://yandex.com/indexnow",
}

var errTransient = crerr.New("indexnow transient failure")

type Config struct {
	Key            string
	Endpoints      []string
	Timeout        time.Duration
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Result reports the outcome of one endpoint submission.
type Result struct {
	Endpoint string `json:"endpoint"`
	Success  bool   `json:"success"`
	Status   int    `json:"status,omitempty"`
	Error    string `json:"error,omitempty"`
}

type payload struct {
	Host        string   `json:"host"`
	Key         string   `json:"key"`
	KeyLocation string   `json:"keyLocation"`
	URLList     []string `json:"urlList"`
}

type endpointTarget struct {
	url     string
	breaker *resilience.CircuitBreaker
}

type Publisher struct {
	client         *fasthttp.Client
	key            string
	timeout        time.Duration
	targets        []endpointTarget
	circuitEnabled bool
	logger         *logging.Logger
}

func NewPublisher(cfg Config, logger *logging.Logger) *Publisher {
	if logger == nil {
		logger = logging.Default()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	endpoints := cfg.Endpoints
	if len(endpoints) == 0 {
		endpoints = DefaultEndpoints
	}
	breakerCfg := cfg.CircuitBreaker.Normalize()

	targets := make([]endpointTarget, 0, len(endpoints))
	for _, endpoint := range endpoints {
		targets = append(targets, endpointTarget{
			url:     strings.TrimSpace(endpoint),
			breaker: resilience.NewCircuitBreaker(breakerCfg, nil),
		})
	}

	return &Publisher{
		client: &fasthttp.Client{
			Name:                "matchday-indexnow",
			MaxResponseBodySize: 64 << 10,
		},
		key:            strings.TrimSpace(cfg.Key),
		timeout:        timeout,
		targets:        targets,
		circuitEnabled: breakerCfg.Enabled,
		logger:         logger,
	}
}

func (p *Publisher) Key() string {
	return p.key
}

// Notify submits urls to every endpoint in parallel. The results keep the
// endpoint order. An empty list returns nil without any request.
func (p *Publisher) Notify(ctx context.Context, urls []string) ([]Result, error) {
	urls = compactURLs(urls)
	if len(urls) == 0 {
		p.logger.InfoContext(ctx, "indexnow has no urls to submit")
		return nil, nil
	}

	first, err := url.Parse(urls[0])
	if err != nil || first.Host == "" {
		return nil, crerr.Newf("indexnow: first url %q has no host", urls[0])
	}
	if len(urls) > MaxURLsPerRequest {
		urls = urls[:MaxURLsPerRequest]
	}

	body, err := sonic.Marshal(payload{
		Host:        first.Host,
		Key:         p.key,
		KeyLocation: "https://" + first.Host + "/" + p.key + ".txt",
		URLList:     urls,
	})
	if err != nil {
		return nil, crerr.Wrap(err, "marshal indexnow payload")
	}

	span := trace.SpanFromContext(ctx)
	if span.IsRecording() {
		span.SetAttributes(
			attribute.String("indexnow.host", first.Host),
			attribute.Int("indexnow.url_count", len(urls)),
		)
	}
	p.logger.InfoContext(ctx, "indexnow submitting urls",
		"host", first.Host,
		"url_count", len(urls),
		"endpoints", len(p.targets),
	)

	results := iter.Map(p.targets, func(target *endpointTarget) Result {
		return p.submit(ctx, *target, body)
	})

	accepted := 0
	for _, result := range results {
		if result.Success {
			accepted++
		}
	}
	p.logger.InfoContext(ctx, "indexnow submission finished",
		"accepted", accepted,
		"endpoints", len(results),
		"summary", summarize(results),
	)
	return results, nil
}

// NotifyURL reports whether any endpoint accepted the url.
func (p *Publisher) NotifyURL(ctx context.Context, rawURL string) bool {
	results, err := p.Notify(ctx, []string{rawURL})
	if err != nil {
		p.logger.WarnContext(ctx, "indexnow notify url failed", "url", rawURL, "error", err)
		return false
	}
	for _, result := range results {
		if result.Success {
			return true
		}
	}
	return false
}

func (p *Publisher) submit(ctx context.Context, target endpointTarget, body []byte) Result {
	result := Result{Endpoint: target.url}

	if p.circuitEnabled {
		if err := target.breaker.Allow(); err != nil {
			p.logger.WarnContext(ctx, "indexnow circuit breaker rejected request",
				"endpoint", target.url,
				"state", target.breaker.State(),
			)
			result.Error = err.Error()
			return result
		}
	}

	if err := ctx.Err(); err != nil {
		p.recordCircuitResult(target, crerr.Mark(err, errTransient))
		result.Error = err.Error()
		return result
	}

	deadline := time.Now().Add(p.timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(target.url)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType(contentType)
	req.SetBody(body)

	if err := p.client.DoDeadline(req, resp, deadline); err != nil {
		p.logger.ErrorContext(ctx, "indexnow request failed", "endpoint", target.url, "error", err)
		p.recordCircuitResult(target, crerr.Mark(err, errTransient))
		result.Error = err.Error()
		return result
	}

	result.Status = resp.StatusCode()
	if result.Status/100 == 2 {
		result.Success = true
		p.logger.InfoContext(ctx, "indexnow endpoint accepted", "endpoint", target.url, "status", result.Status)
		p.recordCircuitResult(target, nil)
		return result
	}

	result.Error = strings.TrimSpace(string(resp.Body()))
	if result.Error == "" {
		result.Error = "Unknown error"
	}
	p.logger.WarnContext(ctx, "indexnow endpoint rejected submission",
		"endpoint", target.url,
		"status", result.Status,
		"body", truncateForLog(result.Error, 512),
	)

	var callErr error = crerr.Newf("indexnow status=%d", result.Status)
	if isRetryableStatus(result.Status) {
		callErr = crerr.Mark(callErr, errTransient)
	}
	p.recordCircuitResult(target, callErr)
	return result
}

func (p *Publisher) recordCircuitResult(target endpointTarget, err error) {
	if !p.circuitEnabled || target.breaker == nil {
		return
	}
	target.breaker.Record(err != nil && crerr.Is(err, errTransient))
}

func isRetryableStatus(statusCode int) bool {
	return statusCode == fasthttp.StatusRequestTimeout ||
		statusCode == fasthttp.StatusTooManyRequests ||
		statusCode >= fasthttp.StatusInternalServerError
}

func compactURLs(urls []string) []string {
	out := make([]string, 0, len(urls))
	for _, raw := range urls {
		if item := strings.TrimSpace(raw); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// summarize renders "endpoint=status" pairs for a single log line.
func summarize(results []Result) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	for i, result := range results {
		if i > 0 {
			_ = buf.WriteByte(' ')
		}
		_, _ = buf.WriteString(result.Endpoint)
		_ = buf.WriteByte('=')
		switch {
		case result.Success:
			_, _ = buf.WriteString("ok")
		case result.Status > 0:
			_, _ = buf.WriteString("status_")
			_, _ = buf.WriteString(strconv.Itoa(result.Status))
		default:
			_, _ = buf.WriteString("error")
		}
	}
	return buf.String()
}

func truncateForLog(value string, max int) string {
	if max <= 0 || len(value) <= max {
		return value
	}
	return value[:max] + "...(truncated)"
}
