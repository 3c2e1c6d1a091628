// Package forum serves the read-only mock catalog behind the forum pages.
package forum

import (
	"errors"
	"time"
)

var ErrPostNotFound = errors.New("post not found")

type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type Author struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
}

type Post struct {
	ID           int       `json:"id"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	Author       Author    `json:"author"`
	Category     Category  `json:"category"`
	Tags         []string  `json:"tags"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
	ViewCount    int       `json:"viewCount"`
	LikeCount    int       `json:"likeCount"`
	CommentCount int       `json:"commentCount"`
	Pinned       bool      `json:"pinned"`
	Hot          bool      `json:"hot"`
}

// Edited reports whether the post was updated after it was created.
func (p Post) Edited() bool {
	return p.UpdatedAt.After(p.CreatedAt)
}

type Comment struct {
	ID        int       `json:"id"`
	Content   string    `json:"content"`
	Author    Author    `json:"author"`
	CreatedAt time.Time `json:"createdAt"`
	LikeCount int       `json:"likeCount"`
	Replies   []Comment `json:"replies,omitempty"`
}

// Sort orders for List. Pinned posts always come first.
const (
	SortLatest    = "latest"
	SortHot       = "hot"
	SortCommented = "commented"
)

// Filter narrows List. Zero values match everything.
type Filter struct {
	CategoryID int
	Tag        string
	Sort       string
}
