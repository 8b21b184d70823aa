package entity

import "time"

// FeedPost is a post enriched with author info and interaction counts,
// shaped the way the feed endpoint returns it.
type FeedPost struct {
	ID             string    `json:"id"`
	AuthorID       string    `json:"author_id"`
	AuthorUsername string    `json:"author_username"`
	Title          string    `json:"title"`
	Content        string    `json:"content"`
	Visibility     string    `json:"visibility"`
	LikeCount      int64     `json:"like_count"`
	CommentCount   int64     `json:"comment_count"`
	CreatedAt      time.Time `json:"created_at"`
}

// FeedPage is one page of the feed. Next and Previous hold page numbers
// and are null at the edges. Count is the total number of candidate
// posts, not the page length.
type FeedPage struct {
	Results  []FeedPost `json:"results"`
	Next     *int       `json:"next"`
	Previous *int       `json:"previous"`
	Count    int64      `json:"count"`
}
