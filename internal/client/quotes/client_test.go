package quotes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestQuotes_ParsesNumbersAndNumericStrings(t *testing.T) {
	var gotQuery, gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("symbols")
		gotKey = r.Header.Get("X-API-Key")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"AAPL": 189.5, "msft": "410.25", "TSLA": "n/a", "SPY": null, "QQQ": -1}`))
	}))
	defer srv.Close()

	c := NewClient(srv.Client(), srv.URL+"/", WithAPIKey("secret"))
	res := c.Quotes(context.Background(), []string{"msft", "AAPL", "aapl", " ", "TSLA"})
	if res.Err != nil {
		t.Fatalf("err=%v", res.Err)
	}
	if gotQuery != "AAPL,MSFT,TSLA" {
		t.Fatalf("symbols query=%q want AAPL,MSFT,TSLA", gotQuery)
	}
	if gotKey != "secret" {
		t.Fatalf("api key header=%q", gotKey)
	}
	if len(res.Prices) != 2 {
		t.Fatalf("prices=%v want 2 entries", res.Prices)
	}
	if res.Prices["AAPL"] != 189.5 || res.Prices["MSFT"] != 410.25 {
		t.Fatalf("prices=%v", res.Prices)
	}
}

func TestQuotes_HTTPErrorDegradesToEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer srv.Close()

	res := NewClient(srv.Client(), srv.URL).Quotes(context.Background(), []string{"AAPL"})
	if res.Err == nil {
		t.Fatalf("expected error")
	}
	if got := res.PricesOrEmpty(); len(got) != 0 {
		t.Fatalf("PricesOrEmpty=%v want empty", got)
	}
}

func TestQuotes_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[1,2,3]`))
	}))
	defer srv.Close()

	res := NewClient(srv.Client(), srv.URL).Quotes(context.Background(), []string{"AAPL"})
	if res.Err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestQuotes_TimeoutIsBounded(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	hc := &http.Client{Timeout: 50 * time.Millisecond}
	start := time.Now()
	res := NewClient(hc, srv.URL).Quotes(context.Background(), []string{"AAPL"})
	if res.Err == nil {
		t.Fatalf("expected timeout error")
	}
	if time.Since(start) > 2*time.Second {
		t.Fatalf("fetch took %s, timeout not applied", time.Since(start))
	}
}

func TestQuotes_NotConfigured(t *testing.T) {
	res := NewClient(nil, "").Quotes(context.Background(), []string{"AAPL"})
	if res.Err != ErrNotConfigured {
		t.Fatalf("err=%v want ErrNotConfigured", res.Err)
	}
}

func TestQuotes_NoSymbolsSkipsRequest(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	res := NewClient(srv.Client(), srv.URL, WithRateLimit(1, 1)).Quotes(context.Background(), nil)
	if res.Err != nil || called {
		t.Fatalf("err=%v called=%v want no request", res.Err, called)
	}
}
