package services

import "fmt"

// Error types surfaced by the content pipelines and chat backends.
// Handlers map these onto API error codes.

type UnsupportedSourceError struct{ URL string }

func (e *UnsupportedSourceError) Error() string {
	return fmt.Sprintf("unsupported source %q: only Reddit or YouTube URLs are supported", e.URL)
}

// FetchError wraps any network or HTTP failure from Reddit, the YouTube
// metadata source, or the transcript source. Status is zero when the
// failure happened below the HTTP layer.
type FetchError struct {
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetch failed with HTTP %d", e.Status)
	}
	return fmt.Sprintf("fetch failed: %v", e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ExtractionError means the fetched response had an unexpected shape,
// or a video ID could not be parsed out of the URL.
type ExtractionError struct{ Message string }

func (e *ExtractionError) Error() string { return e.Message }

// ChatDispatchError is a failure talking to the chat backend.
type ChatDispatchError struct{ Err error }

func (e *ChatDispatchError) Error() string { return fmt.Sprintf("chat dispatch failed: %v", e.Err) }

func (e *ChatDispatchError) Unwrap() error { return e.Err }
