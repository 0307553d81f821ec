package sofascore

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/matchday/internal/platform/logging"
)

type fakeDoer struct {
	mu       sync.Mutex
	requests []Request
	respond  func(Request) (Response, error)
}

func (d *fakeDoer) Do(_ context.Context, req Request, _ time.Duration) (Response, error) {
	d.mu.Lock()
	d.requests = append(d.requests, req)
	d.mu.Unlock()
	return d.respond(req)
}

func (d *fakeDoer) count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.requests)
}

func jsonDoer(status int, body string) *fakeDoer {
	return &fakeDoer{respond: func(Request) (Response, error) {
		return Response{StatusCode: status, Body: []byte(body), ContentType: "application/json"}, nil
	}}
}

func newTestClient(t *testing.T, variant Variant, baseURL string, doer Doer) *Client {
	t.Helper()

	client, err := NewClient(Config{
		BaseURL:   baseURL,
		Variant:   variant,
		Timeout:   time.Second,
		Logger:    logging.NewNop(),
		Transport: doer,
	})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return client
}

func TestFetchRequestsResolvedEndpointPerVariant(t *testing.T) {
	t.Parallel()

	var (
		mu   sync.Mutex
		seen []string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		seen = append(seen, r.URL.RequestURI())
		mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	for _, variant := range []Variant{VariantLegacy, VariantStandard} {
		client, err := NewClient(Config{BaseURL: srv.URL, Variant: variant, Timeout: 2 * time.Second, Logger: logging.NewNop()})
		if err != nil {
			t.Fatalf("new client: %v", err)
		}
		resolver := NewResolver(variant)

		for _, op := range Operations() {
			if op == OpTeamImage {
				continue
			}
			mu.Lock()
			seen = seen[:0]
			mu.Unlock()

			if _, err := client.Fetch(context.Background(), op, fullParams); err != nil {
				t.Fatalf("%s %s: fetch: %v", variant, op, err)
			}

			endpoint, _ := resolver.Resolve(op, fullParams)
			mu.Lock()
			got := append([]string(nil), seen...)
			mu.Unlock()
			if len(got) != 1 {
				t.Fatalf("%s %s: expected exactly one request, got %d", variant, op, len(got))
			}
			if got[0] != endpoint.String() {
				t.Fatalf("%s %s: requested %q, want %q", variant, op, got[0], endpoint.String())
			}
		}
	}
}

func TestFetchSendsBrowserProfile(t *testing.T) {
	t.Parallel()

	headers := make(chan http.Header, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		headers <- r.Header.Clone()
		_, _ = w.Write([]byte(`{"events":[]}`))
	}))
	defer srv.Close()

	client, err := NewClient(Config{BaseURL: srv.URL, Variant: VariantStandard, Logger: logging.NewNop()})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	if _, err := client.ScheduledEvents(context.Background(), time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("scheduled events: %v", err)
	}

	got := <-headers
	if ua := got.Get("User-Agent"); !strings.Contains(ua, "Chrome/130") || !strings.Contains(ua, "Windows NT 10.0") {
		t.Fatalf("unexpected user agent: %q", ua)
	}
	if got.Get("Accept-Language") != "en-US,en;q=0.9" {
		t.Fatalf("unexpected accept-language: %q", got.Get("Accept-Language"))
	}
	if got.Get("Accept") != "application/json" {
		t.Fatalf("unexpected accept: %q", got.Get("Accept"))
	}
	if got.Get("Referer") != "https://www.sofascore.com/" {
		t.Fatalf("unexpected referer: %q", got.Get("Referer"))
	}
}

func TestFetchUnwrapsLegacyEnvelope(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		variant Variant
		body    string
		want    string
	}{
		{name: "legacy success", variant: VariantLegacy, body: `{"success":true,"data":{"events":[]}}`, want: `{"events":[]}`},
		{name: "legacy failure keeps body", variant: VariantLegacy, body: `{"success":false,"data":{"x":1}}`, want: `{"success":false,"data":{"x":1}}`},
		{name: "legacy null data keeps body", variant: VariantLegacy, body: `{"success":true,"data":null}`, want: `{"success":true,"data":null}`},
		{name: "legacy bare payload", variant: VariantLegacy, body: `{"events":[]}`, want: `{"events":[]}`},
		{name: "legacy array payload", variant: VariantLegacy, body: `[1,2]`, want: `[1,2]`},
		{name: "standard never unwraps", variant: VariantStandard, body: `{"success":true,"data":{"events":[]}}`, want: `{"success":true,"data":{"events":[]}}`},
	}

	for _, tc := range cases {
		client := newTestClient(t, tc.variant, "http://upstream.test", jsonDoer(http.StatusOK, tc.body))
		raw, err := client.Fetch(context.Background(), OpEvent, Params{ID: "1"})
		if err != nil {
			t.Fatalf("%s: fetch: %v", tc.name, err)
		}
		if string(raw) != tc.want {
			t.Fatalf("%s: got %s, want %s", tc.name, raw, tc.want)
		}
	}
}

func TestFetchClassifiesFailures(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{name: "not found", status: http.StatusNotFound, body: `{"error":{"code":404}}`, want: ErrNotFound},
		{name: "blocked", status: http.StatusForbidden, body: `<html>challenge</html>`, want: ErrBlocked},
		{name: "server error", status: http.StatusBadGateway, body: `bad gateway`, want: ErrUpstream},
		{name: "invalid json", status: http.StatusOK, body: `<html>not json</html>`, want: ErrMalformed},
	}

	for _, tc := range cases {
		client := newTestClient(t, VariantLegacy, "http://upstream.test", jsonDoer(tc.status, tc.body))

		detail, err := client.Event(context.Background(), "42")
		if !crerr.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
		if detail != nil {
			t.Fatalf("%s: expected nil result on failure", tc.name)
		}
		if tc.want != ErrMalformed && UpstreamStatus(err) != tc.status {
			t.Fatalf("%s: expected upstream status %d, got %d", tc.name, tc.status, UpstreamStatus(err))
		}
	}

	transportErr := &fakeDoer{respond: func(Request) (Response, error) {
		return Response{}, fmt.Errorf("dial tcp: connection refused")
	}}
	client := newTestClient(t, VariantStandard, "http://upstream.test", transportErr)
	_, err := client.Lineups(context.Background(), "42")
	if !crerr.Is(err, ErrUpstream) {
		t.Fatalf("expected transport error to be ErrUpstream, got %v", err)
	}
	if UpstreamStatus(err) != 0 {
		t.Fatalf("transport errors carry no status")
	}
	if transportErr.count() != 1 {
		t.Fatalf("expected a single attempt, got %d", transportErr.count())
	}
}

func TestFetchTimesOutWithoutRetry(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	var (
		mu    sync.Mutex
		calls int
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		calls++
		mu.Unlock()
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	client, err := NewClient(Config{BaseURL: srv.URL, Variant: VariantStandard, Timeout: 150 * time.Millisecond, Logger: logging.NewNop()})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	startedAt := time.Now()
	_, err = client.Fetch(context.Background(), OpEvent, Params{ID: "1"})
	if !crerr.Is(err, ErrUpstream) {
		t.Fatalf("expected ErrUpstream on timeout, got %v", err)
	}
	if elapsed := time.Since(startedAt); elapsed > 2*time.Second {
		t.Fatalf("timeout not honoured, took %s", elapsed)
	}

	mu.Lock()
	defer mu.Unlock()
	if calls != 1 {
		t.Fatalf("expected one request, got %d", calls)
	}
}

func TestFetchConcurrentCallersKeepOwnContext(t *testing.T) {
	t.Parallel()

	doer := &fakeDoer{}
	doer.respond = func(Request) (Response, error) {
		return Response{StatusCode: 200, Body: []byte(`{"event":{"id":1}}`), ContentType: "application/json"}, nil
	}
	slow := &ctxDoer{fakeDoer: doer, delay: 200 * time.Millisecond}
	client := newTestClient(t, VariantStandard, "https://api.test/api/v1", slow)

	shortCtx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	var (
		wg         sync.WaitGroup
		errA, errB error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, errA = client.Fetch(shortCtx, OpEvent, Params{ID: "1"})
	}()
	go func() {
		defer wg.Done()
		_, errB = client.Fetch(context.Background(), OpEvent, Params{ID: "1"})
	}()
	wg.Wait()

	if !crerr.Is(errA, ErrUpstream) {
		t.Fatalf("expected the short deadline caller to fail upstream, got %v", errA)
	}
	if errB != nil {
		t.Fatalf("expected the background caller to succeed, got %v", errB)
	}
	if got := doer.count(); got != 2 {
		t.Fatalf("expected one outbound request per call, got %d", got)
	}
}

// ctxDoer waits delay before answering and gives up when the call context ends.
type ctxDoer struct {
	*fakeDoer
	delay time.Duration
}

func (d *ctxDoer) Do(ctx context.Context, req Request, timeout time.Duration) (Response, error) {
	select {
	case <-time.After(d.delay):
		return d.fakeDoer.Do(ctx, req, timeout)
	case <-ctx.Done():
		d.fakeDoer.mu.Lock()
		d.fakeDoer.requests = append(d.fakeDoer.requests, req)
		d.fakeDoer.mu.Unlock()
		return Response{}, ctx.Err()
	}
}

func TestInvalidParamsSkipIO(t *testing.T) {
	t.Parallel()

	doer := jsonDoer(http.StatusOK, `{}`)
	client := newTestClient(t, VariantLegacy, "http://upstream.test", doer)

	if _, err := client.Standings(context.Background(), 17, 0); !crerr.Is(err, ErrInvalidParams) {
		t.Fatalf("expected ErrInvalidParams, got %v", err)
	}
	if score, err := client.FetchLiveScore(context.Background(), " "); score != nil || !crerr.Is(err, ErrInvalidParams) {
		t.Fatalf("expected nil live score with ErrInvalidParams, got %+v %v", score, err)
	}
	if doer.count() != 0 {
		t.Fatalf("expected no upstream call, got %d", doer.count())
	}
}

func TestTeamDetailFallsBackToBareObject(t *testing.T) {
	t.Parallel()

	wrapped := newTestClient(t, VariantStandard, "http://upstream.test",
		jsonDoer(http.StatusOK, `{"team":{"id":42,"name":"Arsenal","venue":{"name":"Emirates Stadium","capacity":60704}}}`))
	detail, err := wrapped.Team(context.Background(), "42")
	if err != nil {
		t.Fatalf("team: %v", err)
	}
	if detail.Team.Name != "Arsenal" || detail.Team.Venue == nil || *detail.Team.Venue.Capacity != 60704 {
		t.Fatalf("unexpected wrapped team: %+v", detail.Team)
	}

	bare := newTestClient(t, VariantLegacy, "http://upstream.test",
		jsonDoer(http.StatusOK, `{"success":true,"data":{"id":42,"name":"Arsenal","manager":{"name":"Mikel Arteta"}}}`))
	detail, err = bare.Team(context.Background(), "42")
	if err != nil {
		t.Fatalf("team: %v", err)
	}
	if detail.Team.ID != 42 || detail.Team.Manager == nil || detail.Team.Manager.Name != "Mikel Arteta" {
		t.Fatalf("unexpected bare team: %+v", detail.Team)
	}
}

func TestPlayerTransfersAcceptsBothKeys(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, VariantLegacy, "http://upstream.test",
		jsonDoer(http.StatusOK, `{"transfers":[{"id":1,"transferFeeDescription":"€ 35M"}]}`))
	transfers, err := client.PlayerTransfers(context.Background(), "934235")
	if err != nil {
		t.Fatalf("player transfers: %v", err)
	}
	if all := transfers.All(); len(all) != 1 || all[0].TransferFeeDescription != "€ 35M" {
		t.Fatalf("unexpected transfers: %+v", all)
	}
}

func TestTeamImage(t *testing.T) {
	t.Parallel()

	doer := &fakeDoer{respond: func(req Request) (Response, error) {
		return Response{StatusCode: http.StatusOK, Body: []byte{0x89, 'P', 'N', 'G'}}, nil
	}}
	client := newTestClient(t, VariantLegacy, "http://upstream.test", doer)

	img, err := client.TeamImage(context.Background(), "42")
	if err != nil {
		t.Fatalf("team image: %v", err)
	}
	if img.ContentType != "image/png" {
		t.Fatalf("expected default content type, got %q", img.ContentType)
	}
	if len(img.Body) != 4 {
		t.Fatalf("unexpected body length %d", len(img.Body))
	}
	if got := doer.requests[0].URL; got != "http://upstream.test/images/team/download/full?team_id=42" {
		t.Fatalf("unexpected image url %q", got)
	}

	missing := newTestClient(t, VariantStandard, "http://upstream.test", jsonDoer(http.StatusNotFound, ``))
	if img, err := missing.TeamImage(context.Background(), "42"); img != nil || !crerr.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFetchLiveScore(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 1, 16, 10, 0, 0, time.UTC)
	body := fmt.Sprintf(`{"success":true,"data":{"event":{"id":1,
		"status":{"code":7,"description":"2nd half","type":"inprogress"},
		"time":{"currentPeriodStartTimestamp":%d},
		"homeScore":{"current":2},"awayScore":{"current":1}}}}`, now.Add(-10*time.Minute).Unix())

	client := newTestClient(t, VariantLegacy, "http://upstream.test", jsonDoer(http.StatusOK, body))
	client.now = func() time.Time { return now }

	score, err := client.FetchLiveScore(context.Background(), "1")
	if err != nil {
		t.Fatalf("live score: %v", err)
	}
	if score.HomeScore != 2 || score.AwayScore != 1 {
		t.Fatalf("unexpected score %+v", score)
	}
	if score.Minute != 55 || !score.IsRunning || score.Status != "2nd half" {
		t.Fatalf("unexpected live state %+v", score)
	}

	notStarted := newTestClient(t, VariantStandard, "http://upstream.test",
		jsonDoer(http.StatusOK, `{"event":{"id":1,"status":{"code":0,"type":"notstarted"}}}`))
	score, err = notStarted.FetchLiveScore(context.Background(), "1")
	if err != nil {
		t.Fatalf("live score: %v", err)
	}
	if score.Status != "Unknown" || score.Minute != 0 || score.IsRunning || score.HomeScore != 0 {
		t.Fatalf("unexpected defaults %+v", score)
	}
}
