// Package httputil provides HTTP utilities for fetching remote art targets.
//
// # Overview
//
// This package provides the infrastructure behind URL image targets:
//
//   - [Fetch]: Download a resource with size limits and retry
//   - [Retry]: Automatic retry with exponential backoff
//
// # Fetching
//
// [Fetch] downloads a URL into memory, capping the response size so a
// misbehaving server cannot exhaust memory. Transient failures (network
// errors, 5xx responses, 429 rate limits) are retried with exponential
// backoff; other HTTP errors fail immediately.
//
//	data, err := httputil.Fetch(ctx, nil, "https://example.com/target.png")
//
// Fetched bytes are handed to the image conversion pipeline unchanged, so
// the conversion cache keys on content rather than URL.
//
// # Retry
//
// [Retry] executes a function with exponential backoff. Only errors wrapped
// in [RetryableError] are retried:
//
//	err := httputil.RetryWithBackoff(ctx, func() error {
//	    return doRequest()
//	})
//
// # Configuration
//
// Default settings are suitable for most use cases:
//
//   - Max attempts: 3 (the first try plus two retries)
//   - Base backoff: 1 second
//   - Max response size: 32 MiB
package httputil
