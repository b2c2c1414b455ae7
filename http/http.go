// Package http wraps the plain GET downloads used to fetch structures.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultTimeout bounds a single download.
const DefaultTimeout = 120 * time.Second

// Get downloads url and returns the response body.
// Non-200 responses and bodies containing the RCSB "sorry" page are errors.
func Get(ctx context.Context, url string) ([]byte, error) {
	client := http.Client{
		Timeout: DefaultTimeout,
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept-Encoding", "text/html")

	res, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP status code %d", res.StatusCode)
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}

	if strings.Contains(strings.ToLower(string(body[:min(len(body), 512)])), "sorry") {
		return nil, fmt.Errorf("%s: not available", url)
	}

	return body, nil
}
