package forum

import "strings"

// Draft is the input of the compose form.
type Draft struct {
	Title      string
	Content    string
	CategoryID int
	Tags       string
}

type DraftErrors struct {
	Title    string
	Content  string
	Category string
}

func (e DraftErrors) Valid() bool {
	return e == DraftErrors{}
}

const (
	MsgTitleRequired    = "title is required"
	MsgContentRequired  = "content is required"
	MsgCategoryRequired = "choose a category"
)

// ValidateDraft checks the required fields of a new post against c's categories.
func (c *Catalog) ValidateDraft(d Draft) DraftErrors {
	var errs DraftErrors
	if strings.TrimSpace(d.Title) == "" {
		errs.Title = MsgTitleRequired
	}
	if strings.TrimSpace(d.Content) == "" {
		errs.Content = MsgContentRequired
	}
	if _, ok := c.Category(d.CategoryID); !ok {
		errs.Category = MsgCategoryRequired
	}
	return errs
}

// ParseTags splits a comma separated tag list, dropping blanks and duplicates.
func ParseTags(s string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, t := range strings.Split(s, ",") {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
