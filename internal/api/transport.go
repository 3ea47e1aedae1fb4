package api

import (
	"net/http"
	"strings"
)

// transport adds the base URL and, when a session exists, the bearer token to
// every request sent by an http.Client that uses it.
type transport struct {
	baseURL string
	token   func() string
}

// RoundTrip rewrites the request URL onto the configured origin and attaches
// Authorization before delegating to the default transport.
func (t *transport) RoundTrip(req *http.Request) (*http.Response, error) {
	baseURL := strings.TrimSuffix(t.baseURL, "/")
	path := "/" + strings.TrimPrefix(req.URL.String(), "/")
	newURL, err := req.URL.Parse(baseURL + path)
	if err != nil {
		return nil, err
	}
	req.URL = newURL

	if token := t.token(); token != "" && req.Header.Get("Authorization") == "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return http.DefaultTransport.RoundTrip(req)
}
