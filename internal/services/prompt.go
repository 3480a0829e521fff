package services

import (
	"fmt"
	"strings"

	"url2tldr-backend/internal/models"
)

// maxPromptRunes caps every generated prompt. The cut is a hard one, not
// word-boundary aware.
const maxPromptRunes = 100000

const (
	// NoCommentsPrompt is returned when filtering leaves no Reddit comments.
	NoCommentsPrompt = "No relevant comments found."
	// NoTranscriptPrompt is returned when a video has an empty transcript.
	NoTranscriptPrompt = "No transcript available."
)

// RedditPrompt assembles the summarization prompt for a Reddit thread:
// instructional preamble, thread-info block, then one bullet per comment.
func RedditPrompt(meta models.ThreadMetadata, comments []models.Comment) string {
	if len(comments) == 0 {
		return NoCommentsPrompt
	}

	lines := make([]string, 0, len(comments))
	for _, c := range comments {
		lines = append(lines, "- "+c.Body)
	}

	threadInfo := fmt.Sprintf(
		"Subreddit: r/%s\n"+
			"Title: %s\n"+
			"Author: %s\n"+
			"Post score: %d | Comments: %d\n"+
			"URL: %s\n",
		meta.Subreddit, meta.Title, meta.Author, meta.Score, meta.NumComments, meta.Permalink,
	)

	prompt := "You are an assistant that summarizes Reddit discussions.\n" +
		"Please analyze the following thread and provide a concise summary:\n" +
		"- Only include the most relevant information and opinions.\n" +
		"- Format your output as clear bullet points.\n" +
		"- Avoid unnecessary repetition or minor details.\n\n" +
		"Thread information:\n" +
		threadInfo + "\n" +
		"Reddit comments:\n\n" +
		strings.Join(lines, "\n")

	return capPrompt(prompt)
}

// YouTubePrompt assembles the summarization prompt for a video:
// instructional preamble, video-info block, then the transcript with
// snippet texts joined by single spaces.
func YouTubePrompt(meta models.VideoMetadata, transcript []models.TranscriptSnippet) string {
	if len(transcript) == 0 {
		return NoTranscriptPrompt
	}

	texts := make([]string, 0, len(transcript))
	for _, s := range transcript {
		texts = append(texts, s.Text)
	}

	prompt := fmt.Sprintf(
		"You are an assistant that summarizes YouTube videos.\n"+
			"Please read the following transcript and provide a concise summary:\n"+
			"- Only include the most relevant information and insights.\n"+
			"- Format your output as clear bullet points.\n"+
			"- Avoid unnecessary repetition or minor details.\n\n"+
			"Video information:\n"+
			"- Title: %s\n"+
			"- Channel: %s\n"+
			"- URL: %s\n"+
			"- Length (seconds): %d\n"+
			"- Publish date: %s\n"+
			"- Views: %d\n\n"+
			"Transcript:\n\n"+
			"%s",
		meta.Title, meta.Channel, meta.URL, meta.LengthSeconds, meta.PublishDate, meta.Views,
		strings.Join(texts, " "),
	)

	return capPrompt(prompt)
}

// capPrompt truncates to maxPromptRunes. Counting runes, not bytes, keeps
// the cut from splitting a multi-byte character.
func capPrompt(s string) string {
	if len(s) <= maxPromptRunes {
		return s
	}
	runes := []rune(s)
	if len(runes) <= maxPromptRunes {
		return s
	}
	return string(runes[:maxPromptRunes])
}
