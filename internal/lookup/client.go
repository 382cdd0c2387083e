package lookup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// ErrNotFound is returned when the metadata service does not know the barcode
var ErrNotFound = errors.New("release not found")

// Release is the metadata resolved for a scanned barcode
type Release struct {
	Title    string `json:"title"`
	Artist   string `json:"artist"`
	Year     int    `json:"year"`
	Genre    string `json:"genre"`
	Format   string `json:"format"`
	CoverURL string `json:"cover_url"`
}

// Client talks to the barcode metadata service and, when the primary result
// carries no cover image, to the cover-art fallback service.
type Client struct {
	httpClient      *http.Client
	metadataBaseURL string
	coverArtBaseURL string
}

// NewClient creates a lookup client for the given provider base URLs
func NewClient(metadataBaseURL, coverArtBaseURL string) *Client {
	return &Client{
		httpClient:      &http.Client{Timeout: 10 * time.Second},
		metadataBaseURL: metadataBaseURL,
		coverArtBaseURL: coverArtBaseURL,
	}
}

// LookupBarcode resolves a barcode to release metadata. Returns ErrNotFound
// when the provider has no match; cover-art fallback failures are ignored
// and leave CoverURL empty.
func (c *Client) LookupBarcode(ctx context.Context, barcode string) (*Release, error) {
	reqURL := fmt.Sprintf("%s/lookup?upc=%s", c.metadataBaseURL, url.QueryEscape(barcode))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("metadata lookup failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("metadata lookup returned status %d", resp.StatusCode)
	}

	var release Release
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return nil, fmt.Errorf("failed to decode lookup response: %w", err)
	}
	if release.Title == "" {
		return nil, ErrNotFound
	}

	if release.CoverURL == "" {
		if cover, err := c.lookupCover(ctx, barcode); err == nil {
			release.CoverURL = cover
		}
	}

	return &release, nil
}

// lookupCover queries the cover-art fallback service for a front image URL
func (c *Client) lookupCover(ctx context.Context, barcode string) (string, error) {
	reqURL := fmt.Sprintf("%s/release/%s/front", c.coverArtBaseURL, url.PathEscape(barcode))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("cover art lookup returned status %d", resp.StatusCode)
	}

	var body struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", err
	}
	if body.URL == "" {
		return "", errors.New("cover art response missing url")
	}
	return body.URL, nil
}
