package listingapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/TadaisheChibondo/campus-accomodation/pkg/property"
)

// FetchError reports a failed call to the listings endpoint, either a
// transport failure or a non-2xx status. Callers are expected to fall back
// to an empty state; there is no partial result to salvage.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (fetchError *FetchError) Error() string {
	if fetchError.Err != nil {
		return fmt.Sprintf("fetch %s: %s", fetchError.URL, fetchError.Err.Error())
	}
	return fmt.Sprintf("fetch %s: unexpected status %d", fetchError.URL, fetchError.StatusCode)
}

func (fetchError *FetchError) Unwrap() error {
	return fetchError.Err
}

// Client fetches property listings from a campus-accomodation REST API.
// The viewer token is passed per call rather than read from ambient state:
// its presence deterministically governs whether is_favorited flags are
// populated by the server.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

func NewClient(httpClient *http.Client, baseURL string) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{httpClient: httpClient, baseURL: baseURL}
}

// FetchListings retrieves the full listing set visible to the viewer.
// An empty viewerToken fetches the public view.
func (client *Client) FetchListings(ctx context.Context, viewerToken string) ([]property.Property, error) {
	url := client.baseURL + "/api/properties/"
	var listings []property.Property
	if err := client.getJSON(ctx, url, viewerToken, &listings); err != nil {
		return nil, err
	}
	return listings, nil
}

// FetchListing retrieves a single listing by id.
func (client *Client) FetchListing(ctx context.Context, id int64, viewerToken string) (*property.Property, error) {
	url := fmt.Sprintf("%s/api/properties/%d/", client.baseURL, id)
	var listing property.Property
	if err := client.getJSON(ctx, url, viewerToken, &listing); err != nil {
		return nil, err
	}
	return &listing, nil
}

func (client *Client) getJSON(ctx context.Context, url string, viewerToken string, target any) error {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return &FetchError{URL: url, Err: err}
	}
	if viewerToken != "" {
		request.Header.Set("Authorization", "Bearer "+viewerToken)
	}
	response, err := client.httpClient.Do(request)
	if err != nil {
		return &FetchError{URL: url, Err: err}
	}
	defer response.Body.Close()
	if response.StatusCode < 200 || response.StatusCode > 299 {
		return &FetchError{URL: url, StatusCode: response.StatusCode}
	}
	if err := json.NewDecoder(response.Body).Decode(target); err != nil {
		return &FetchError{URL: url, StatusCode: response.StatusCode, Err: err}
	}
	return nil
}
