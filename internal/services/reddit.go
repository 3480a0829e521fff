package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"url2tldr-backend/internal/models"
)

const (
	redditFetchTimeout = 10 * time.Second

	// defaultMaxTreeDepth bounds the reply-tree walk. Real threads nest a
	// few dozen levels at most; anything deeper is treated as a hard
	// fetch failure.
	defaultMaxTreeDepth = 64

	minCommentBodyLen = 10
	minCommentScore   = 1
)

// emoteRegex matches Reddit image-emote markup like ![img](emote|t5_abc|123).
var emoteRegex = regexp.MustCompile(`!\[img\]\(emote\|`)

type RedditService struct {
	httpClient *http.Client
	userAgent  string
	maxDepth   int
}

func NewRedditService(userAgent string) *RedditService {
	return &RedditService{
		httpClient: &http.Client{Timeout: redditFetchTimeout},
		userAgent:  userAgent,
		maxDepth:   defaultMaxTreeDepth,
	}
}

func (s *RedditService) Name() string { return "reddit" }

func (s *RedditService) Matches(rawURL string) bool {
	return strings.Contains(rawURL, "reddit.com")
}

// BuildPrompt runs the whole Reddit pipeline: fetch the thread's JSON
// endpoint, pull submission metadata, flatten and filter the comment
// tree, and assemble the summarization prompt.
func (s *RedditService) BuildPrompt(ctx context.Context, rawURL string) (string, error) {
	listings, err := s.FetchThread(ctx, rawURL)
	if err != nil {
		return "", err
	}

	meta, err := s.ExtractMetadata(listings[0])
	if err != nil {
		return "", err
	}

	comments, err := s.FlattenComments(listings[1])
	if err != nil {
		return "", err
	}

	return RedditPrompt(meta, FilterComments(comments)), nil
}

// Wire shapes for Reddit's listing JSON. A thread endpoint returns a
// two-element array: [submission listing, comment listing].

type redditListing struct {
	Kind string `json:"kind"`
	Data struct {
		Children []redditThing `json:"children"`
	} `json:"data"`
}

type redditThing struct {
	Kind string          `json:"kind"` // "t1" comment, "t3" submission, "more" stub
	Data redditThingData `json:"data"`
}

type redditThingData struct {
	// Submission fields
	Title       string `json:"title"`
	Subreddit   string `json:"subreddit"`
	NumComments int    `json:"num_comments"`
	Permalink   string `json:"permalink"`

	// Comment fields
	Author     string  `json:"author"`
	Body       string  `json:"body"`
	Score      int     `json:"score"`
	CreatedUTC float64 `json:"created_utc"`
	ID         string  `json:"id"`
	ParentID   string  `json:"parent_id"`

	// Replies is either the empty string or a nested listing.
	Replies json.RawMessage `json:"replies"`
}

// FetchThread derives the thread's canonical JSON endpoint and performs a
// single GET. No retry on failure.
func (s *RedditService) FetchThread(ctx context.Context, rawURL string) ([]json.RawMessage, error) {
	jsonURL := strings.TrimRight(rawURL, "/") + ".json"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, jsonURL, nil)
	if err != nil {
		return nil, &FetchError{Err: err}
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, &FetchError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &FetchError{Status: resp.StatusCode}
	}

	var listings []json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&listings); err != nil {
		return nil, &ExtractionError{Message: fmt.Sprintf("could not decode Reddit JSON: %v", err)}
	}
	if len(listings) < 2 {
		return nil, &ExtractionError{Message: "Reddit JSON is not a two-element listing array"}
	}

	return listings, nil
}

// ExtractMetadata reads the submission listing (first array element).
func (s *RedditService) ExtractMetadata(listing json.RawMessage) (models.ThreadMetadata, error) {
	var l redditListing
	if err := json.Unmarshal(listing, &l); err != nil {
		return models.ThreadMetadata{}, &ExtractionError{Message: fmt.Sprintf("could not parse submission listing: %v", err)}
	}
	if len(l.Data.Children) == 0 {
		return models.ThreadMetadata{}, &ExtractionError{Message: "submission listing has no children"}
	}

	post := l.Data.Children[0].Data
	return models.ThreadMetadata{
		Title:       post.Title,
		Subreddit:   post.Subreddit,
		Author:      post.Author,
		Score:       post.Score,
		NumComments: post.NumComments,
		Permalink:   "https://www.reddit.com" + post.Permalink,
	}, nil
}

// FlattenComments walks the comment listing (second array element)
// depth-first with an explicit stack, collecting every "t1" node into a
// flat slice. "more" stubs are skipped. Depth past s.maxDepth fails the
// whole fetch.
func (s *RedditService) FlattenComments(listing json.RawMessage) ([]models.Comment, error) {
	var l redditListing
	if err := json.Unmarshal(listing, &l); err != nil {
		return nil, &ExtractionError{Message: fmt.Sprintf("could not parse comment listing: %v", err)}
	}

	type frame struct {
		thing redditThing
		depth int
	}

	var comments []models.Comment
	stack := make([]frame, 0, len(l.Data.Children))

	// Push in reverse so pops preserve the source tree's pre-order.
	for i := len(l.Data.Children) - 1; i >= 0; i-- {
		stack = append(stack, frame{thing: l.Data.Children[i]})
	}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if f.thing.Kind != "t1" {
			continue
		}

		d := f.thing.Data
		comments = append(comments, models.Comment{
			Author:     d.Author,
			Body:       d.Body,
			Score:      d.Score,
			CreatedUTC: d.CreatedUTC,
			ID:         d.ID,
			ParentID:   d.ParentID,
		})

		replies, ok := parseReplies(d.Replies)
		if !ok {
			continue
		}
		if f.depth+1 > s.maxDepth {
			return nil, &FetchError{Err: fmt.Errorf("comment tree nested deeper than %d levels", s.maxDepth)}
		}
		for i := len(replies) - 1; i >= 0; i-- {
			stack = append(stack, frame{thing: replies[i], depth: f.depth + 1})
		}
	}

	return comments, nil
}

// parseReplies decodes a comment's replies field, which Reddit serves as
// either "" or a nested listing object.
func parseReplies(raw json.RawMessage) ([]redditThing, bool) {
	if len(raw) == 0 || string(raw) == `""` || string(raw) == "null" {
		return nil, false
	}
	var l redditListing
	if err := json.Unmarshal(raw, &l); err != nil {
		return nil, false
	}
	return l.Data.Children, true
}

// FilterComments applies the cleanup rules in their required order: drop
// short bodies, drop low scores, keep only comments sharing the first
// survivor's parent_id (isolates top-level replies), drop image emotes,
// then sort by score descending. The input slice is not modified.
func FilterComments(comments []models.Comment) []models.Comment {
	kept := make([]models.Comment, 0, len(comments))
	for _, c := range comments {
		if utf8.RuneCountInString(c.Body) <= minCommentBodyLen {
			continue
		}
		if c.Score < minCommentScore {
			continue
		}
		kept = append(kept, c)
	}

	if len(kept) > 0 {
		linkID := kept[0].ParentID
		topLevel := kept[:0]
		for _, c := range kept {
			if c.ParentID == linkID {
				topLevel = append(topLevel, c)
			}
		}
		kept = topLevel
	}

	noEmotes := kept[:0]
	for _, c := range kept {
		if emoteRegex.MatchString(c.Body) {
			continue
		}
		noEmotes = append(noEmotes, c)
	}
	kept = noEmotes

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Score > kept[j].Score
	})

	return kept
}
