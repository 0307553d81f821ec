package sofascore

import (
	"context"
	"net/url"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttpproxy"
)

const maxResponseBodySize = 6 << 20

// Request is one outbound GET.
type Request struct {
	URL    string
	Accept string
}

// Response is a fully read upstream response.
type Response struct {
	StatusCode  int
	Body        []byte
	ContentType string
}

// Doer sends a single request without retrying.
type Doer interface {
	Do(ctx context.Context, req Request, timeout time.Duration) (Response, error)
}

// browserProfile mimics a desktop Chrome 130 on Windows with an en-US locale,
// which the upstream bot protection lets through.
var browserProfile = [][2]string{
	{"User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/130.0.0.0 Safari/537.36"},
	{"sec-ch-ua", `"Chromium";v="130", "Google Chrome";v="130", "Not?A_Brand";v="99"`},
	{"sec-ch-ua-mobile", "?0"},
	{"sec-ch-ua-platform", `"Windows"`},
	{"Accept-Language", "en-US,en;q=0.9"},
	{"Accept-Encoding", "gzip, deflate, br"},
	{"Origin", "https://www.sofascore.com"},
	{"Referer", "https://www.sofascore.com/"},
	{"Sec-Fetch-Dest", "empty"},
	{"Sec-Fetch-Mode", "cors"},
	{"Sec-Fetch-Site", "same-site"},
	{"Cache-Control", "no-cache"},
}

// BrowserTransport is a fasthttp-backed Doer that sends browser headers and
// optionally dials through an HTTP or SOCKS5 proxy.
type BrowserTransport struct {
	client *fasthttp.Client
}

func NewBrowserTransport(proxyURL string, dialTimeout time.Duration) (*BrowserTransport, error) {
	if dialTimeout <= 0 {
		dialTimeout = defaultTimeout
	}

	client := &fasthttp.Client{
		Name:                     "",
		NoDefaultUserAgentHeader: true,
		MaxResponseBodySize:      maxResponseBodySize,
		MaxIdleConnDuration:      30 * time.Second,
		ReadBufferSize:           16 << 10,
	}

	proxyURL = strings.TrimSpace(proxyURL)
	if proxyURL != "" {
		dial, err := proxyDialer(proxyURL, dialTimeout)
		if err != nil {
			return nil, err
		}
		client.Dial = dial
	}

	return &BrowserTransport{client: client}, nil
}

func proxyDialer(raw string, timeout time.Duration) (fasthttp.DialFunc, error) {
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Host == "" {
		return nil, crerr.Newf("invalid proxy url %q", raw)
	}

	switch strings.ToLower(parsed.Scheme) {
	case "socks5", "socks5h":
		return fasthttpproxy.FasthttpSocksDialer(raw), nil
	case "http", "https", "":
		addr := parsed.Host
		if parsed.User != nil {
			addr = parsed.User.String() + "@" + addr
		}
		return fasthttpproxy.FasthttpHTTPDialerTimeout(addr, timeout), nil
	default:
		return nil, crerr.Newf("unsupported proxy scheme %q", parsed.Scheme)
	}
}

func (t *BrowserTransport) Do(ctx context.Context, in Request, timeout time.Duration) (Response, error) {
	if err := ctx.Err(); err != nil {
		return Response{}, err
	}

	deadline := time.Now().Add(timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(in.URL)
	req.Header.SetMethod(fasthttp.MethodGet)
	for _, header := range browserProfile {
		req.Header.Set(header[0], header[1])
	}
	accept := in.Accept
	if accept == "" {
		accept = "application/json"
	}
	req.Header.Set("Accept", accept)

	if err := t.client.DoDeadline(req, resp, deadline); err != nil {
		return Response{}, err
	}

	body, err := decodeBody(resp)
	if err != nil {
		return Response{}, crerr.Wrap(err, "decode response body")
	}

	return Response{
		StatusCode:  resp.StatusCode(),
		Body:        body,
		ContentType: string(resp.Header.ContentType()),
	}, nil
}

// decodeBody copies the body out of the pooled response, undoing any
// content encoding the server applied.
func decodeBody(resp *fasthttp.Response) ([]byte, error) {
	var (
		body []byte
		err  error
	)
	switch strings.ToLower(string(resp.Header.ContentEncoding())) {
	case "gzip":
		body, err = resp.BodyGunzip()
	case "deflate":
		body, err = resp.BodyInflate()
	case "br":
		body, err = resp.BodyUnbrotli()
	default:
		body = resp.Body()
	}
	if err != nil {
		return nil, err
	}
	return append([]byte(nil), body...), nil
}
