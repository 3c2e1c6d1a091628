package posts

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/crucial707/forum-web/cmd/cli/output"
	"github.com/crucial707/forum-web/internal/forum"
)

// catalog and now are replaced in tests.
var (
	catalog = forum.Mock()
	now     = time.Now
)

// ==========================
// Init Posts
// ==========================
func InitPosts(rootCmd *cobra.Command) {
	postsCmd := &cobra.Command{
		Use:   "posts",
		Short: "Browse posts",
	}

	postsCmd.AddCommand(
		listPostsCmd(),
		showPostCmd(),
		categoriesCmd(),
	)

	rootCmd.AddCommand(postsCmd)
}

// ==========================
// LIST
// ==========================
func listPostsCmd() *cobra.Command {
	var f forum.Filter

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List posts, pinned first",
		RunE: func(cmd *cobra.Command, args []string) error {
			switch f.Sort {
			case forum.SortLatest, forum.SortHot, forum.SortCommented:
			default:
				return fmt.Errorf("unknown sort %q (use latest, hot or commented)", f.Sort)
			}
			if f.CategoryID != 0 {
				if _, ok := catalog.Category(f.CategoryID); !ok {
					return fmt.Errorf("unknown category %d", f.CategoryID)
				}
			}

			posts := catalog.List(f)
			if len(posts) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No posts found.")
				return nil
			}

			rows := make([][]interface{}, 0, len(posts))
			for _, p := range posts {
				title := p.Title
				if p.Pinned {
					title = "[pinned] " + title
				}
				rows = append(rows, []interface{}{
					p.ID,
					title,
					p.Category.Name,
					p.Author.Name,
					p.ViewCount,
					p.CommentCount,
					forum.FormatAge(p.CreatedAt, now()),
				})
			}
			output.RenderTable(cmd.OutOrStdout(),
				[]string{"ID", "Title", "Category", "Author", "Views", "Comments", "Posted"}, rows)
			return nil
		},
	}

	cmd.Flags().IntVar(&f.CategoryID, "category", 0, "only posts in this category id")
	cmd.Flags().StringVar(&f.Tag, "tag", "", "only posts with this tag")
	cmd.Flags().StringVar(&f.Sort, "sort", forum.SortLatest, "latest, hot or commented")
	return cmd
}

// ==========================
// SHOW
// ==========================
func showPostCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a post with its comments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid post id %q", args[0])
			}
			p, err := catalog.Post(id)
			if err != nil {
				return fmt.Errorf("post %d: %w", id, err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, p.Title)
			fmt.Fprintln(out, strings.Repeat("=", len(p.Title)))
			fmt.Fprintf(out, "%s · %s · %s", p.Author.Name, p.Category.Name, p.CreatedAt.Format(time.DateTime))
			if p.Edited() {
				fmt.Fprintf(out, " (edited %s)", p.UpdatedAt.Format(time.DateTime))
			}
			fmt.Fprintln(out)
			if len(p.Tags) > 0 {
				fmt.Fprintf(out, "#%s\n", strings.Join(p.Tags, " #"))
			}
			for _, para := range forum.Paragraphs(p.Content) {
				fmt.Fprintf(out, "\n%s\n", para)
			}

			comments := catalog.Comments(p.ID)
			fmt.Fprintf(out, "\nComments (%d)\n", len(comments))
			for _, c := range comments {
				printComment(out, c, 0)
			}
			return nil
		},
	}
}

func printComment(w io.Writer, c forum.Comment, depth int) {
	indent := strings.Repeat("    ", depth)
	fmt.Fprintf(w, "%s- %s (%s, %d likes)\n", indent, c.Author.Name, forum.FormatAge(c.CreatedAt, now()), c.LikeCount)
	fmt.Fprintf(w, "%s  %s\n", indent, c.Content)
	for _, r := range c.Replies {
		printComment(w, r, depth+1)
	}
}

// ==========================
// CATEGORIES
// ==========================
func categoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			cats := catalog.Categories()
			rows := make([][]interface{}, 0, len(cats))
			for _, c := range cats {
				rows = append(rows, []interface{}{c.ID, c.Name, len(catalog.List(forum.Filter{CategoryID: c.ID}))})
			}
			output.RenderTable(cmd.OutOrStdout(), []string{"ID", "Name", "Posts"}, rows)
			return nil
		},
	}
}
