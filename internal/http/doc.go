// Package http provides the HTTP client used by the library backends.
//
// The Client in this package handles:
//   - User-Agent headers
//   - Timeout handling
//   - Status checking and JSON decoding
//
// # Basic Usage
//
//	client := http.NewClient()
//
//	// Fetch raw bytes, e.g. cover art
//	data, err := client.Get(ctx, coverURL)
//
//	// Decode a JSON document
//	var doc map[string]any
//	err = client.GetJSON(ctx, apiURL, &doc)
//
// Non-200 responses are reported as *StatusError.
package http
