package services

import "context"

// ContentSource turns a supported URL into a summarization prompt.
type ContentSource interface {
	// Name identifies the source in API responses ("reddit", "youtube").
	Name() string
	// Matches reports whether this source claims the URL. Matching is a
	// plain substring test; malformed URLs are only caught when the
	// fetch or ID extraction fails downstream.
	Matches(rawURL string) bool
	// BuildPrompt runs the full fetch → extract → format pipeline.
	BuildPrompt(ctx context.Context, rawURL string) (string, error)
}

// Classifier dispatches a URL to the first registered source that claims
// it. Registration order is the match policy: Reddit is registered before
// YouTube, so a reddit.com thread URL that happens to carry a youtube.com
// query parameter still routes to Reddit.
type Classifier struct {
	sources []ContentSource
}

func NewClassifier(sources ...ContentSource) *Classifier {
	return &Classifier{sources: sources}
}

// Resolve returns the source responsible for rawURL, or
// *UnsupportedSourceError when none claims it.
func (c *Classifier) Resolve(rawURL string) (ContentSource, error) {
	for _, s := range c.sources {
		if s.Matches(rawURL) {
			return s, nil
		}
	}
	return nil, &UnsupportedSourceError{URL: rawURL}
}
