package models

// TranscriptSnippet is one caption segment, in playback order.
type TranscriptSnippet struct {
	Text     string  `json:"text"`
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
}

// VideoMetadata describes the video a transcript belongs to.
type VideoMetadata struct {
	Title         string `json:"title"`
	Channel       string `json:"channel"`
	URL           string `json:"url"`
	LengthSeconds int    `json:"length_seconds"`
	PublishDate   string `json:"publish_date"` // YYYYMMDD
	Views         int    `json:"views"`
}
