package model

import "time"

// Article is a news item returned by the search provider
type Article struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Content     string        `json:"content,omitempty"` // Provider snippet, usually truncated
	URL         string        `json:"url"`
	Image       string        `json:"image,omitempty"`
	PublishedAt time.Time     `json:"published_at"`
	Source      ArticleSource `json:"source"`
}

// ArticleSource identifies the outlet that published an article
type ArticleSource struct {
	Name string `json:"name,omitempty"`
	URL  string `json:"url,omitempty"`
}
