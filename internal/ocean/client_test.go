package ocean

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func noSleep(time.Duration) {}

func TestGetRetriesUntilSuccess(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls <= 2 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"data":[{"id":"0","symbol":"DFI"}]}`)
	}))
	defer srv.Close()

	var slept []time.Duration
	client := NewClient(srv.URL, Options{
		RetryDelay: time.Second,
		Sleep:      func(d time.Duration) { slept = append(slept, d) },
	}, nil)

	var resp TokensResponse
	if err := client.Get(context.Background(), srv.URL, &resp); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if calls != 3 {
		t.Fatalf("expected 3 calls, got %d", calls)
	}
	if len(slept) != 2 {
		t.Fatalf("expected 2 retry sleeps, got %d", len(slept))
	}
	for _, d := range slept {
		if d != time.Second {
			t.Fatalf("expected 1s retry delay, got %s", d)
		}
	}
	if len(resp.Data) != 1 || resp.Data[0].Symbol != "DFI" {
		t.Fatalf("unexpected body: %+v", resp)
	}
}

func TestGetBoundedAttempts(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, Options{MaxAttempts: 3, Sleep: noSleep}, nil)

	var resp TokensResponse
	if err := client.Get(context.Background(), srv.URL, &resp); err == nil {
		t.Fatal("expected error after exhausting attempts")
	}
	if calls != 3 {
		t.Fatalf("expected 3 calls, got %d", calls)
	}
}

func TestGetStopsOnCancel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	client := NewClient(srv.URL, Options{Sleep: func(time.Duration) { cancel() }}, nil)

	var resp TokensResponse
	err := client.Get(ctx, srv.URL, &resp)
	if err == nil {
		t.Fatal("expected error after cancellation")
	}
}

func TestPoolPairCourtesyDelay(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/poolpairs/5" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"data":{"id":"5","tokenA":{"id":"0","reserve":"100"},"tokenB":{"id":"3","reserve":"200"}}}`)
	}))
	defer srv.Close()

	var slept []time.Duration
	client := NewClient(srv.URL, Options{
		Sleep: func(d time.Duration) { slept = append(slept, d) },
	}, nil)

	pair, err := client.PoolPair(context.Background(), "5")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pair.TokenA.Reserve != "100" || pair.TokenB.ID != "3" {
		t.Fatalf("unexpected pair: %+v", pair)
	}
	if len(slept) != 1 || slept[0] != 300*time.Millisecond {
		t.Fatalf("expected one 300ms courtesy sleep, got %v", slept)
	}
}
