package forum

import (
	"slices"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Catalog is an immutable in-memory set of categories, posts and comments.
type Catalog struct {
	categories []Category
	tags       []string
	posts      []Post
	comments   map[int][]Comment
}

func NewCatalog(categories []Category, tags []string, posts []Post, comments map[int][]Comment) *Catalog {
	if comments == nil {
		comments = make(map[int][]Comment)
	}
	return &Catalog{categories: categories, tags: tags, posts: posts, comments: comments}
}

func (c *Catalog) Categories() []Category {
	return slices.Clone(c.categories)
}

// Tags returns the popular tags shown beside the post list.
func (c *Catalog) Tags() []string {
	return slices.Clone(c.tags)
}

func (c *Catalog) Category(id int) (Category, bool) {
	for _, cat := range c.categories {
		if cat.ID == id {
			return cat, true
		}
	}
	return Category{}, false
}

// List returns the posts matching f, pinned posts first.
func (c *Catalog) List(f Filter) []Post {
	out := make([]Post, 0, len(c.posts))
	for _, p := range c.posts {
		if f.CategoryID != 0 && p.Category.ID != f.CategoryID {
			continue
		}
		if f.Tag != "" && !slices.Contains(p.Tags, f.Tag) {
			continue
		}
		out = append(out, p)
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Pinned != b.Pinned {
			return a.Pinned
		}
		switch f.Sort {
		case SortHot:
			return a.ViewCount > b.ViewCount
		case SortCommented:
			return a.CommentCount > b.CommentCount
		default:
			return a.CreatedAt.After(b.CreatedAt)
		}
	})
	return out
}

func (c *Catalog) Post(id int) (Post, error) {
	for _, p := range c.posts {
		if p.ID == id {
			return p, nil
		}
	}
	return Post{}, ErrPostNotFound
}

// Comments returns the top-level comments of a post with their replies.
func (c *Catalog) Comments(postID int) []Comment {
	return slices.Clone(c.comments[postID])
}

// Paragraphs splits post content on blank lines.
func Paragraphs(content string) []string {
	var out []string
	for _, p := range strings.Split(content, "\n\n") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// FormatAge renders t relative to now: "just now", hours within a day, days
// within a week, then the calendar date.
func FormatAge(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Hour:
		return "just now"
	case d < 24*time.Hour:
		h := int(d / time.Hour)
		if h == 1 {
			return "1 hour ago"
		}
		return strconv.Itoa(h) + " hours ago"
	case d < 7*24*time.Hour:
		days := int(d / (24 * time.Hour))
		if days == 1 {
			return "1 day ago"
		}
		return strconv.Itoa(days) + " days ago"
	default:
		return t.Format("2006-01-02")
	}
}
