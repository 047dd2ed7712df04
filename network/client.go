// Package network provides the pre-configured HTTP client shared by every
// remote lookup: video metadata, thumbnails and update checks.
package network

import (
	"net/http"
	"time"

	"github.com/vidmark-cli/vidmark/constant"
)

// Client is the singleton HTTP client shared across the application.
// Lookups are small and bursty (a metadata probe plus a thumbnail per video),
// so a modest pool with short timeouts fits better than per-call clients.
var Client = &http.Client{
	Timeout:   30 * time.Second,
	Transport: newTransport(),
}

func newTransport() *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = 20
	t.MaxIdleConnsPerHost = 10
	t.IdleConnTimeout = 30 * time.Second
	t.ResponseHeaderTimeout = 15 * time.Second
	return t
}

// Get issues a GET request with the application user agent set.
func Get(url string) (*http.Response, error) {
	request, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	request.Header.Set("User-Agent", constant.UserAgent)
	return Client.Do(request)
}
