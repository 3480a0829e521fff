package services

import (
	"context"
	"encoding/xml"
	"fmt"
	"html"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	ytapi "github.com/hightemp/youtube-transcript-api-go/api"
	yt "github.com/kkdai/youtube/v2"

	"url2tldr-backend/internal/models"
)

// videoIDRegex pulls the 11-character video ID following "v=" or "/".
// Covers watch?v=, youtu.be/, embed/ and shorts/ forms.
var videoIDRegex = regexp.MustCompile(`(?:v=|/)([0-9A-Za-z_-]{11})`)

type YouTubeService struct {
	httpClient    *http.Client
	transcriptAPI *ytapi.YouTubeTranscriptApi
	ytClient      *yt.Client
}

type timedTextXML struct {
	XMLName xml.Name  `xml:"transcript"`
	Texts   []textXML `xml:"text"`
}

type textXML struct {
	Start string `xml:"start,attr"`
	Dur   string `xml:"dur,attr"`
	Text  string `xml:",chardata"`
}

func NewYouTubeService() *YouTubeService {
	return &YouTubeService{
		httpClient:    &http.Client{Timeout: 30 * time.Second},
		transcriptAPI: ytapi.NewYouTubeTranscriptApi(),
		ytClient:      &yt.Client{},
	}
}

func (s *YouTubeService) Name() string { return "youtube" }

func (s *YouTubeService) Matches(rawURL string) bool {
	return strings.Contains(rawURL, "youtube.com") || strings.Contains(rawURL, "youtu.be")
}

// BuildPrompt runs the whole YouTube pipeline: extract the video ID,
// fetch metadata and transcript, assemble the summarization prompt.
func (s *YouTubeService) BuildPrompt(ctx context.Context, rawURL string) (string, error) {
	videoID := ExtractVideoID(rawURL)
	if videoID == "" {
		return "", &ExtractionError{Message: "could not extract YouTube video ID"}
	}

	meta, err := s.GetMetadata(ctx, videoID)
	if err != nil {
		return "", err
	}

	transcript, err := s.GetTranscript(ctx, videoID)
	if err != nil {
		return "", err
	}

	return YouTubePrompt(meta, transcript), nil
}

// ExtractVideoID returns the video ID embedded in a YouTube URL, or the
// empty string when no 11-character ID segment is present.
func ExtractVideoID(rawURL string) string {
	m := videoIDRegex.FindStringSubmatch(rawURL)
	if len(m) < 2 {
		return ""
	}
	return m[1]
}

// GetMetadata queries the video's title, channel, duration, publish date
// and view count via the canonical watch URL.
func (s *YouTubeService) GetMetadata(ctx context.Context, videoID string) (models.VideoMetadata, error) {
	watchURL := "https://www.youtube.com/watch?v=" + videoID

	video, err := s.ytClient.GetVideoContext(ctx, watchURL)
	if err != nil {
		return models.VideoMetadata{}, &FetchError{Err: fmt.Errorf("failed to fetch video metadata: %w", err)}
	}

	return models.VideoMetadata{
		Title:         video.Title,
		Channel:       video.Author,
		URL:           watchURL,
		LengthSeconds: int(video.Duration.Seconds()),
		PublishDate:   video.PublishDate.Format("20060102"),
		Views:         video.Views,
	}, nil
}

// GetTranscript fetches the video's captions in whatever languages are
// listed for it. When the transcript API fails, the watch page's
// timedtext track is tried once before giving up.
func (s *YouTubeService) GetTranscript(ctx context.Context, videoID string) ([]models.TranscriptSnippet, error) {
	// nil languages means every caption track the listing exposes.
	transcript, err := s.transcriptAPI.GetTranscript(videoID, nil)
	if err != nil {
		snippets, legacyErr := s.getTranscriptViaTimedText(ctx, videoID)
		if legacyErr != nil {
			return nil, &FetchError{Err: fmt.Errorf("no captions via transcript API (%v) and timedtext fallback failed (%v)", err, legacyErr)}
		}
		return snippets, nil
	}

	snippets := make([]models.TranscriptSnippet, 0, len(transcript.Entries))
	for _, entry := range transcript.Entries {
		snippets = append(snippets, models.TranscriptSnippet{
			Text:     entry.Text,
			Start:    entry.Start,
			Duration: entry.Duration,
		})
	}

	return snippets, nil
}

func (s *YouTubeService) getTranscriptViaTimedText(ctx context.Context, videoID string) ([]models.TranscriptSnippet, error) {
	pageURL := "https://www.youtube.com/watch?v=" + videoID
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch YouTube page: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read YouTube page: %w", err)
	}

	captionURL, err := extractCaptionURL(string(body))
	if err != nil {
		return nil, err
	}

	captionReq, err := http.NewRequestWithContext(ctx, http.MethodGet, captionURL, nil)
	if err != nil {
		return nil, err
	}
	captionResp, err := s.httpClient.Do(captionReq)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch captions: %w", err)
	}
	defer captionResp.Body.Close()

	captionBody, err := io.ReadAll(captionResp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read captions: %w", err)
	}

	snippets, err := parseCaptionsXML(captionBody)
	if err != nil {
		return nil, fmt.Errorf("failed to parse captions XML: %w", err)
	}

	return snippets, nil
}

func extractCaptionURL(pageHTML string) (string, error) {
	re := regexp.MustCompile(`"captionTracks"\s*:\s*\[(.*?)\],\s*"`)
	matches := re.FindStringSubmatch(pageHTML)
	if len(matches) < 2 {
		return "", fmt.Errorf("no captions available for this video")
	}

	tracksJSON := matches[1]
	reURL := regexp.MustCompile(`"baseUrl"\s*:\s*"(.*?)"`)
	urlMatches := reURL.FindStringSubmatch(tracksJSON)
	if len(urlMatches) < 2 {
		return "", fmt.Errorf("caption track found but baseUrl missing")
	}

	u := urlMatches[1]
	// The player JSON escapes ampersands as \u0026 and slashes as \/.
	u = strings.ReplaceAll(u, `\u0026`, "&")
	u = strings.ReplaceAll(u, `\/`, "/")

	return u, nil
}

func parseCaptionsXML(data []byte) ([]models.TranscriptSnippet, error) {
	var tt timedTextXML
	if err := xml.Unmarshal(data, &tt); err != nil {
		return nil, err
	}

	snippets := make([]models.TranscriptSnippet, 0, len(tt.Texts))
	for _, t := range tt.Texts {
		text := strings.TrimSpace(html.UnescapeString(t.Text))
		if text == "" {
			continue
		}
		start, _ := strconv.ParseFloat(t.Start, 64)
		dur, _ := strconv.ParseFloat(t.Dur, 64)
		snippets = append(snippets, models.TranscriptSnippet{
			Text:     text,
			Start:    start,
			Duration: dur,
		})
	}

	if len(snippets) == 0 {
		return nil, fmt.Errorf("captions XML empty")
	}

	return snippets, nil
}
