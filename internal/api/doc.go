// Package api provides the HTTP client for the platform's paginated
// history endpoints.
//
// Every endpoint serves GET <url>?page=N&pageSize=P with an optional
// createdFrom/createdTo window, authenticated by a bearer token plus an
// Origin header, and responds with {items, pageCount, totalCount}.
//
// The upstream is treated as untrusted and unstable: any non-2xx status
// or undecodable body is a retryable failure, bounded by a RetryPolicy.
package api
