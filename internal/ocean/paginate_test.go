package ocean

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestPaginateFollowsCursors(t *testing.T) {
	pages := map[string]string{
		"":   `{"data":[{"id":"a"},{"id":"b"}],"page":{"next":"c1"}}`,
		"c1": `{"data":[{"id":"c"}],"page":{"next":"c2"}}`,
		"c2": `{"data":[{"id":"d"}]}`,
	}
	var cursors []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cursor := r.URL.Query().Get("next")
		cursors = append(cursors, cursor)
		body, ok := pages[cursor]
		if !ok {
			t.Errorf("unexpected cursor %q", cursor)
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, body)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, Options{Sleep: noSleep}, nil)

	var pageSizes []int
	err := client.Paginate(context.Background(), srv.URL+"/prices", func(page PageBody) error {
		pageSizes = append(pageSizes, len(page.Data))
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(cursors) != 3 || cursors[0] != "" || cursors[1] != "c1" || cursors[2] != "c2" {
		t.Fatalf("unexpected request order: %v", cursors)
	}

	total := 0
	for _, n := range pageSizes {
		total += n
	}
	if total != 4 {
		t.Fatalf("expected 4 records across pages, got %d", total)
	}
	if len(pageSizes) != 3 {
		t.Fatalf("expected 3 pages, got %d", len(pageSizes))
	}
}

func TestPaginateEmptyFirstPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"data":[]}`)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, Options{Sleep: noSleep}, nil)

	pages := 0
	err := client.Paginate(context.Background(), srv.URL+"/prices", func(page PageBody) error {
		pages++
		if len(page.Data) != 0 {
			t.Errorf("expected empty page, got %d records", len(page.Data))
		}
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pages != 1 {
		t.Fatalf("expected a single empty page, got %d", pages)
	}
}

func TestPricesFlattensPages(t *testing.T) {
	pages := map[string]string{
		"":   `{"data":[{"id":"DFI-USD","price":{"token":"DFI","aggregated":{"amount":"2.81"}}}],"page":{"next":"n1"}}`,
		"n1": `{"data":[{"id":"BTC-USD","price":{"token":"BTC","aggregated":{"amount":"43000.5"}}}]}`,
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, pages[r.URL.Query().Get("next")])
	}))
	defer srv.Close()

	client := NewClient(srv.URL, Options{Sleep: noSleep}, nil)

	tickers, err := client.Prices(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tickers) != 2 {
		t.Fatalf("expected 2 tickers, got %d", len(tickers))
	}
	if tickers[0].Price.Token != "DFI" || tickers[1].ID != "BTC-USD" {
		t.Fatalf("unexpected tickers: %+v", tickers)
	}
	if tickers[1].Price.Aggregated.Amount != "43000.5" {
		t.Fatalf("unexpected price: %+v", tickers[1])
	}
}
