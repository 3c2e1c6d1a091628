package main

import (
	"github.com/crucial707/forum-web/cmd/cli/auth"
	"github.com/crucial707/forum-web/cmd/cli/posts"
	"github.com/crucial707/forum-web/cmd/cli/root"
)

func main() {
	rootCmd := root.GetRoot()
	auth.InitAuth(rootCmd)
	posts.InitPosts(rootCmd)

	root.Execute()
}
