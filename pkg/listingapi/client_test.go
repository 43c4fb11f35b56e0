package listingapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (fn roundTripFunc) RoundTrip(request *http.Request) (*http.Response, error) {
	return fn(request)
}

func TestFetchListings(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/properties/" {
			t.Errorf("path = %s, want /api/properties/", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id": 1, "title": "Sunrise Hostel", "price_per_month": "80", "distance": 5.0, "walking_minutes": 60}, {"id": 2, "title": "Campus Corner", "price_per_month": "150.50", "distance": null, "walking_minutes": null}]`))
	}))
	defer server.Close()

	client := NewClient(server.Client(), server.URL)
	listings, err := client.FetchListings(context.Background(), "")
	if err != nil {
		t.Fatalf("FetchListings: %v", err)
	}
	if len(listings) != 2 {
		t.Fatalf("len(listings) = %d, want 2", len(listings))
	}
	if listings[0].Title != "Sunrise Hostel" {
		t.Errorf("title = %q, want %q", listings[0].Title, "Sunrise Hostel")
	}
	if listings[0].Distance == nil || *listings[0].Distance != 5.0 {
		t.Errorf("distance = %v, want 5.0", listings[0].Distance)
	}
	if listings[1].Distance != nil || listings[1].WalkingMinutes != nil {
		t.Errorf("null annotations decoded as non-nil: %v, %v", listings[1].Distance, listings[1].WalkingMinutes)
	}
	if !listings[1].PricePerMonth.Equal(decimal.New(15050, -2)) {
		t.Errorf("price = %s, want 150.50", listings[1].PricePerMonth)
	}
}

func TestFetchListingsAuthorizationHeader(t *testing.T) {
	tests := []struct {
		name  string
		token string
		want  string
	}{
		{"with token", "viewer-token", "Bearer viewer-token"},
		{"anonymous", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotHeader string
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotHeader = r.Header.Get("Authorization")
				w.Write([]byte(`[]`))
			}))
			defer server.Close()

			client := NewClient(server.Client(), server.URL)
			if _, err := client.FetchListings(context.Background(), tt.token); err != nil {
				t.Fatalf("FetchListings: %v", err)
			}
			if gotHeader != tt.want {
				t.Errorf("Authorization = %q, want %q", gotHeader, tt.want)
			}
		})
	}
}

func TestFetchListingsNonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail": "Internal server error."}`, http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.Client(), server.URL)
	_, err := client.FetchListings(context.Background(), "")
	var fetchError *FetchError
	if !errors.As(err, &fetchError) {
		t.Fatalf("error = %v, want *FetchError", err)
	}
	if fetchError.StatusCode != http.StatusInternalServerError {
		t.Errorf("StatusCode = %d, want 500", fetchError.StatusCode)
	}
}

func TestFetchListingsMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"not": "a list"`))
	}))
	defer server.Close()

	client := NewClient(server.Client(), server.URL)
	_, err := client.FetchListings(context.Background(), "")
	var fetchError *FetchError
	if !errors.As(err, &fetchError) {
		t.Fatalf("error = %v, want *FetchError", err)
	}
	if fetchError.Err == nil {
		t.Error("FetchError.Err is nil for a decode failure")
	}
}

func TestFetchListingTransportError(t *testing.T) {
	transportErr := errors.New("connection refused")
	httpClient := &http.Client{Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
		return nil, transportErr
	})}

	client := NewClient(httpClient, "http://listings.invalid")
	_, err := client.FetchListing(context.Background(), 7, "")
	var fetchError *FetchError
	if !errors.As(err, &fetchError) {
		t.Fatalf("error = %v, want *FetchError", err)
	}
	if !errors.Is(err, transportErr) {
		t.Errorf("FetchError does not wrap the transport error: %v", err)
	}
}

func TestFetchListingsCancelledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewClient(server.Client(), server.URL)
	if _, err := client.FetchListings(ctx, ""); err == nil {
		t.Fatal("expected an error for a cancelled context")
	}
}
