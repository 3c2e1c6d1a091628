package main

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/crucial707/forum-web/internal/forum"
)

// homeLimit is how many posts the front page shows.
const homeLimit = 5

func (a *app) home(w http.ResponseWriter, r *http.Request) {
	posts := a.catalog.List(forum.Filter{Sort: forum.SortLatest})
	if len(posts) > homeLimit {
		posts = posts[:homeLimit]
	}
	a.render(w, r, http.StatusOK, "home.html", map[string]interface{}{
		"Title": "Home",
		"Posts": posts,
	})
}

func (a *app) postsList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := forum.Filter{Tag: q.Get("tag"), Sort: q.Get("sort")}
	if f.Sort == "" {
		f.Sort = forum.SortLatest
	}
	if s := q.Get("category"); s != "" {
		id, err := strconv.Atoi(s)
		if err != nil {
			a.notFound(w, r)
			return
		}
		f.CategoryID = id
	}

	data := map[string]interface{}{
		"Title":     "Posts",
		"Posts":     a.catalog.List(f),
		"Tags":      a.catalog.Tags(),
		"Filter":    f,
		"Published": q.Get("published") == "1",
	}
	if cat, ok := a.catalog.Category(f.CategoryID); ok {
		data["Category"] = cat
		data["Title"] = cat.Name
	}
	a.render(w, r, http.StatusOK, "posts.html", data)
}

func (a *app) postDetail(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		a.notFound(w, r)
		return
	}
	post, err := a.catalog.Post(id)
	if errors.Is(err, forum.ErrPostNotFound) {
		a.notFound(w, r)
		return
	}
	a.render(w, r, http.StatusOK, "post.html", map[string]interface{}{
		"Title":    post.Title,
		"Post":     post,
		"Comments": a.catalog.Comments(post.ID),
	})
}

func (a *app) newPostForm(w http.ResponseWriter, r *http.Request) {
	a.render(w, r, http.StatusOK, "new_post.html", map[string]interface{}{
		"Title":  "New post",
		"Draft":  forum.Draft{},
		"Errors": forum.DraftErrors{},
	})
}

// newPostSubmit validates the draft. The catalog is read-only, so a valid
// draft is acknowledged and discarded.
func (a *app) newPostSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	categoryID, _ := strconv.Atoi(r.PostFormValue("category"))
	d := forum.Draft{
		Title:      r.PostFormValue("title"),
		Content:    r.PostFormValue("content"),
		CategoryID: categoryID,
		Tags:       r.PostFormValue("tags"),
	}

	errs := a.catalog.ValidateDraft(d)
	if !errs.Valid() {
		a.render(w, r, http.StatusUnprocessableEntity, "new_post.html", map[string]interface{}{
			"Title":  "New post",
			"Draft":  d,
			"Errors": errs,
		})
		return
	}

	if r.PostFormValue("preview") != "" {
		a.render(w, r, http.StatusOK, "new_post.html", map[string]interface{}{
			"Title":    "New post",
			"Draft":    d,
			"Errors":   errs,
			"Preview":  true,
			"Tags":     forum.ParseTags(d.Tags),
			"Category": mustCategory(a.catalog, d.CategoryID),
		})
		return
	}

	a.log.InfoContext(r.Context(), "post submitted", "title", d.Title, "category_id", d.CategoryID)
	http.Redirect(w, r, "/posts?published=1", http.StatusSeeOther)
}

func mustCategory(c *forum.Catalog, id int) forum.Category {
	cat, _ := c.Category(id)
	return cat
}

func (a *app) notFound(w http.ResponseWriter, r *http.Request) {
	a.render(w, r, http.StatusNotFound, "not_found.html", map[string]interface{}{"Title": "Not found"})
}
