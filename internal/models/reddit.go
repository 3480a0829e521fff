package models

// Comment is a single Reddit comment flattened out of the nested reply tree.
type Comment struct {
	Author     string  `json:"author"`
	Body       string  `json:"body"`
	Score      int     `json:"score"`
	CreatedUTC float64 `json:"created_utc"`
	ID         string  `json:"id"`
	ParentID   string  `json:"parent_id"` // "t3_..." for top-level, "t1_..." for replies
}

// ThreadMetadata describes the submission a comment tree belongs to.
type ThreadMetadata struct {
	Title       string `json:"title"`
	Subreddit   string `json:"subreddit"`
	Author      string `json:"author"`
	Score       int    `json:"score"`
	NumComments int    `json:"num_comments"`
	Permalink   string `json:"permalink"`
}
