package sparql

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

const resultsJSON = `{
  "head": {"vars": ["wrk", "l"]},
  "results": {"bindings": [
    {"wrk": {"type": "uri", "value": "http://www.wikidata.org/entity/Q1"},
     "l": {"type": "literal", "xml:lang": "en", "value": "First"}},
    {"wrk": {"type": "uri", "value": "http://www.wikidata.org/entity/Q2"}}
  ]}
}`

func newTestClient(t *testing.T, endpoint string, maxRetries int) (*Client, *[]time.Duration) {
	t.Helper()
	c := NewClient(NewClientParams{
		Endpoint:   endpoint,
		UserAgent:  "test-agent/1.0",
		MaxRetries: maxRetries,
	})
	var sleeps []time.Duration
	c.sleep = func(d time.Duration) { sleeps = append(sleeps, d) }
	return c, &sleeps
}

func TestSelect_ParsesSparseRows(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("User-Agent"); got != "test-agent/1.0" {
			t.Errorf("expected custom user agent, got %q", got)
		}
		if got := r.Header.Get("Accept"); got != "application/sparql-results+json" {
			t.Errorf("expected sparql-results accept header, got %q", got)
		}
		w.Write([]byte(resultsJSON))
	}))
	defer srv.Close()

	c, _ := newTestClient(t, srv.URL, 1)
	rows, err := c.Select(context.Background(), "SELECT ?wrk ?l WHERE {}")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].ID("wrk") != "Q1" {
		t.Fatalf("expected id Q1, got %q", rows[0].ID("wrk"))
	}
	if label, ok := rows[0].Value("l"); !ok || label != "First" {
		t.Fatalf("expected label First, got %q (ok=%v)", label, ok)
	}
	// The second binding has no label; Value must report the absence.
	if _, ok := rows[1].Value("l"); ok {
		t.Fatal("expected unbound column to be absent")
	}
}

func TestSelect_EmptyResultIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results": {"bindings": []}}`))
	}))
	defer srv.Close()

	c, _ := newTestClient(t, srv.URL, 1)
	rows, err := c.Select(context.Background(), "SELECT * WHERE {}")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected no rows, got %d", len(rows))
	}
}

func TestSelect_ThrottleHonorsRetryAfterAndExhausts(t *testing.T) {
	var attempts int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.Header().Set("Retry-After", "2")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c, sleeps := newTestClient(t, srv.URL, 3)
	_, err := c.Select(context.Background(), "SELECT * WHERE {}")
	if !errors.Is(err, ErrRetriesExhausted) {
		t.Fatalf("expected ErrRetriesExhausted, got %v", err)
	}
	if attempts != 3 {
		t.Fatalf("expected exactly 3 attempts, got %d", attempts)
	}
	// No sleep after the final attempt.
	if len(*sleeps) != 2 {
		t.Fatalf("expected 2 waits, got %d", len(*sleeps))
	}
	for i, d := range *sleeps {
		if d != 2*time.Second {
			t.Fatalf("expected wait %d to honor Retry-After of 2s, got %v", i, d)
		}
	}
}

func TestSelect_ThrottleWithoutRetryAfterUsesDefaultWait(t *testing.T) {
	var attempts int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(resultsJSON))
	}))
	defer srv.Close()

	c, sleeps := newTestClient(t, srv.URL, 3)
	rows, err := c.Select(context.Background(), "SELECT * WHERE {}")
	if err != nil {
		t.Fatalf("expected recovery after throttle, got %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows after retry, got %d", len(rows))
	}
	if len(*sleeps) != 1 || (*sleeps)[0] != defaultThrottleWait {
		t.Fatalf("expected one default throttle wait, got %v", *sleeps)
	}
}

func TestSelect_ServerErrorBacksOffThenRecovers(t *testing.T) {
	var attempts int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(resultsJSON))
	}))
	defer srv.Close()

	c, sleeps := newTestClient(t, srv.URL, 5)
	_, err := c.Select(context.Background(), "SELECT * WHERE {}")
	if err != nil {
		t.Fatalf("expected recovery after server errors, got %v", err)
	}
	if attempts != 3 {
		t.Fatalf("expected 3 attempts, got %d", attempts)
	}
	want := []time.Duration{serverErrorBackoff(1), serverErrorBackoff(2)}
	if len(*sleeps) != 2 || (*sleeps)[0] != want[0] || (*sleeps)[1] != want[1] {
		t.Fatalf("expected backoffs %v, got %v", want, *sleeps)
	}
}

func TestSelect_ClientErrorFailsImmediately(t *testing.T) {
	var attempts int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	c, sleeps := newTestClient(t, srv.URL, 5)
	_, err := c.Select(context.Background(), "SELECT * WHERE {}")
	if err == nil {
		t.Fatal("expected an error for status 400")
	}
	if errors.Is(err, ErrRetriesExhausted) {
		t.Fatalf("expected a non-retry error, got %v", err)
	}
	if !strings.Contains(err.Error(), "400") {
		t.Fatalf("expected status in error, got %v", err)
	}
	if attempts != 1 || len(*sleeps) != 0 {
		t.Fatalf("expected a single attempt without waits, got %d attempts, %v waits", attempts, *sleeps)
	}
}

func TestParseRetryAfter(t *testing.T) {
	now := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		header string
		want   time.Duration
		ok     bool
	}{
		{"empty", "", 0, false},
		{"seconds", "7", 7 * time.Second, true},
		{"negative seconds clamp", "-3", 0, true},
		{"http date ahead", now.Add(90 * time.Second).Format(http.TimeFormat), 90 * time.Second, true},
		{"http date in past clamp", now.Add(-time.Hour).Format(http.TimeFormat), 0, true},
		{"garbage", "soon", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseRetryAfter(tt.header, now)
			if ok != tt.ok || got != tt.want {
				t.Fatalf("parseRetryAfter(%q) = (%v, %v), want (%v, %v)", tt.header, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestServerErrorBackoff_Capped(t *testing.T) {
	if got := serverErrorBackoff(1); got != time.Second {
		t.Fatalf("expected 1s for the first attempt, got %v", got)
	}
	if serverErrorBackoff(2) <= serverErrorBackoff(1) {
		t.Fatal("expected backoff to grow with attempts")
	}
	if got := serverErrorBackoff(20); got != maxServerErrorWait {
		t.Fatalf("expected cap %v, got %v", maxServerErrorWait, got)
	}
}
