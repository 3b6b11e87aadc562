package pricing

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"epicerie/internal/units"
)

func TestLookupPrice_OfflineCatalogue(t *testing.T) {
	client := &CarrefourClient{} // no api key

	quote, err := client.LookupPrice(context.Background(), "farine de blé T55")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !quote.UnitPrice.Equal(decimal.RequireFromString("1.10")) {
		t.Errorf("expected 1.10, got %s", quote.UnitPrice)
	}
	if quote.Unit != units.Kg || quote.Currency != "EUR" {
		t.Errorf("unexpected quote: %+v", quote)
	}
}

func TestLookupPrice_OfflineCatalogueMiss(t *testing.T) {
	client := &CarrefourClient{}

	if _, err := client.LookupPrice(context.Background(), "safran"); !errors.Is(err, ErrUnresolved) {
		t.Fatalf("expected ErrUnresolved, got %v", err)
	}
}

func TestLookupPrice_EmptyTerm(t *testing.T) {
	client := &CarrefourClient{}

	if _, err := client.LookupPrice(context.Background(), ""); !errors.Is(err, ErrUnresolved) {
		t.Fatalf("expected ErrUnresolved, got %v", err)
	}
}

func TestLookupPrice_APIResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("unexpected auth header: %q", got)
		}
		if got := r.URL.Query().Get("q"); got != "lait entier" {
			t.Errorf("unexpected query: %q", got)
		}
		fmt.Fprint(w, `{"products":[{"id":"p1","name":"Lait entier 1L","price":1.29,"unit":"L"}]}`)
	}))
	defer srv.Close()

	client := &CarrefourClient{
		apiKey:  "test-key",
		apiURL:  srv.URL,
		httpCli: srv.Client(),
	}

	quote, err := client.LookupPrice(context.Background(), "lait entier")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !quote.UnitPrice.Equal(decimal.RequireFromString("1.29")) {
		t.Errorf("expected 1.29, got %s", quote.UnitPrice)
	}
	if quote.Unit != units.L {
		t.Errorf("expected L, got %s", quote.Unit)
	}
}

func TestLookupPrice_APIEmptyResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"products":[]}`)
	}))
	defer srv.Close()

	client := &CarrefourClient{apiKey: "test-key", apiURL: srv.URL, httpCli: srv.Client()}

	if _, err := client.LookupPrice(context.Background(), "truffe"); !errors.Is(err, ErrUnresolved) {
		t.Fatalf("expected ErrUnresolved, got %v", err)
	}
}

func TestLookupPrice_APINotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := &CarrefourClient{apiKey: "test-key", apiURL: srv.URL, httpCli: srv.Client()}

	if _, err := client.LookupPrice(context.Background(), "truffe"); !errors.Is(err, ErrUnresolved) {
		t.Fatalf("expected ErrUnresolved, got %v", err)
	}
}

func TestLookupPrice_APIServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := &CarrefourClient{apiKey: "test-key", apiURL: srv.URL, httpCli: srv.Client()}

	_, err := client.LookupPrice(context.Background(), "lait")
	if err == nil || errors.Is(err, ErrUnresolved) {
		t.Fatalf("expected a transport error, got %v", err)
	}
}

func TestLookupPrice_UnknownProviderUnit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"products":[{"id":"p1","name":"Pack","price":4.99,"unit":"pack"}]}`)
	}))
	defer srv.Close()

	client := &CarrefourClient{apiKey: "test-key", apiURL: srv.URL, httpCli: srv.Client()}

	if _, err := client.LookupPrice(context.Background(), "lait"); !errors.Is(err, ErrUnresolved) {
		t.Fatalf("expected ErrUnresolved for an unmappable unit, got %v", err)
	}
}

func TestLookupPrice_RespectsContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		fmt.Fprint(w, `{"products":[]}`)
	}))
	defer srv.Close()

	client := &CarrefourClient{apiKey: "test-key", apiURL: srv.URL, httpCli: srv.Client()}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	if _, err := client.LookupPrice(ctx, "lait"); err == nil {
		t.Fatal("expected a context deadline error")
	}
}

func TestParseProviderUnit(t *testing.T) {
	cases := []struct {
		raw      string
		expected units.Unit
		ok       bool
	}{
		{"kg", units.Kg, true},
		{"KG", units.Kg, true},
		{" l ", units.L, true},
		{"unité", units.Count, true},
		{"pièce", units.Count, true},
		{"pack", "", false},
	}

	for _, tc := range cases {
		unit, ok := parseProviderUnit(tc.raw)
		if ok != tc.ok || unit != tc.expected {
			t.Errorf("%q: expected (%s, %v), got (%s, %v)", tc.raw, tc.expected, tc.ok, unit, ok)
		}
	}
}
