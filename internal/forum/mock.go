package forum

import "time"

func at(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

var (
	catGeneral = Category{ID: 1, Name: "General"}
	catTech    = Category{ID: 2, Name: "Tech Talk"}
	catLife    = Category{ID: 3, Name: "Life"}
	catHobby   = Category{ID: 4, Name: "Hobbies"}
	catHelp    = Category{ID: 5, Name: "Help & Questions"}

	authorCoder   = Author{ID: 1, Name: "codefan", Avatar: "/static/avatars/1.svg"}
	authorReact   = Author{ID: 101, Name: "react_learner", Avatar: "/static/avatars/2.svg"}
	authorPhoto   = Author{ID: 102, Name: "light_chaser", Avatar: "/static/avatars/3.svg"}
	authorRemote  = Author{ID: 103, Name: "remote_worker", Avatar: "/static/avatars/4.svg"}
	authorPython  = Author{ID: 104, Name: "pythonista"}
	authorReader  = Author{ID: 105, Name: "bookworm"}
	authorLearner = Author{ID: 10, Name: "new_learner"}
	authorGuru    = Author{ID: 12, Name: "code_guru"}
	authorExpert  = Author{ID: 15, Name: "tech_expert"}
)

// Mock returns the catalog shown by the web and CLI front-ends.
func Mock() *Catalog {
	posts := []Post{
		{
			ID:    1,
			Title: "How to start programming: a beginner's guide",
			Content: "Programming is one of the most valuable skills today. Here is how to start from zero.\n\n" +
				"First, pick a beginner friendly language such as Python or JavaScript.\n\n" +
				"Then find good learning material: official docs, online courses and tutorials.\n\n" +
				"Next, practice with small projects like a calculator, a todo list or a personal blog.\n\n" +
				"Finally, join a community and ask questions. Keep learning and keep building.",
			Author:       authorCoder,
			Category:     catTech,
			Tags:         []string{"Programming", "Learning", "Beginners"},
			CreatedAt:    at("2023-11-15T08:30:00Z"),
			UpdatedAt:    at("2023-11-15T10:15:00Z"),
			ViewCount:    358,
			LikeCount:    42,
			CommentCount: 24,
			Pinned:       true,
			Hot:          true,
		},
		{
			ID:           2,
			Title:        "Just started React, any good learning resources?",
			Content:      "I recently started learning React and I am looking for structured material. Tutorials, videos or books are all welcome, thanks!",
			Author:       authorReact,
			Category:     catTech,
			Tags:         []string{"React", "Frontend", "Learning"},
			CreatedAt:    at("2023-07-15T08:30:00Z"),
			UpdatedAt:    at("2023-07-15T08:30:00Z"),
			ViewCount:    342,
			LikeCount:    56,
			CommentCount: 24,
			Hot:          true,
		},
		{
			ID:           3,
			Title:        "My photo series: the city by day and night",
			Content:      "I shoot cityscapes in my spare time. This series follows the city from early morning to dusk and into the night.",
			Author:       authorPhoto,
			Category:     catHobby,
			Tags:         []string{"Photography", "City"},
			CreatedAt:    at("2023-07-14T15:45:00Z"),
			UpdatedAt:    at("2023-07-14T15:45:00Z"),
			ViewCount:    271,
			LikeCount:    89,
			CommentCount: 17,
			Hot:          true,
		},
		{
			ID:           4,
			Title:        "One year of remote work",
			Content:      "I switched to remote work last year. Some notes on time management, communication and keeping work apart from life.",
			Author:       authorRemote,
			Category:     catLife,
			Tags:         []string{"Remote Work", "Career", "Time Management"},
			CreatedAt:    at("2023-07-13T10:20:00Z"),
			UpdatedAt:    at("2023-07-13T10:20:00Z"),
			ViewCount:    498,
			LikeCount:    132,
			CommentCount: 45,
		},
		{
			ID:           5,
			Title:        "Web scraping with Python in practice",
			Content:      "A tour of the common ways to scrape pages with Python: requests with BeautifulSoup, the Scrapy framework, and dealing with anti-bot measures.",
			Author:       authorPython,
			Category:     catTech,
			Tags:         []string{"Python", "Backend", "Data"},
			CreatedAt:    at("2023-07-12T14:30:00Z"),
			UpdatedAt:    at("2023-07-12T14:30:00Z"),
			ViewCount:    623,
			LikeCount:    98,
			CommentCount: 31,
		},
		{
			ID:           6,
			Title:        "Building a reading habit that sticks",
			Content:      "Reading well matters more than ever. These are the methods and habits I have kept for years.",
			Author:       authorReader,
			Category:     catLife,
			Tags:         []string{"Reading", "Habits"},
			CreatedAt:    at("2023-07-11T09:15:00Z"),
			UpdatedAt:    at("2023-07-11T09:15:00Z"),
			ViewCount:    376,
			LikeCount:    72,
			CommentCount: 28,
		},
		{
			ID:           7,
			Title:        "Welcome! Read this before posting",
			Content:      "Be kind, stay on topic, and search before asking.\n\nPosts in the wrong category may be moved.",
			Author:       authorCoder,
			Category:     catGeneral,
			Tags:         []string{"Announcement"},
			CreatedAt:    at("2023-06-01T00:00:00Z"),
			UpdatedAt:    at("2023-06-01T00:00:00Z"),
			ViewCount:    1024,
			LikeCount:    12,
			CommentCount: 3,
		},
		{
			ID:           8,
			Title:        "Which laptop for a CS student?",
			Content:      "Budget is limited. Is 16GB of RAM enough for a few years of coursework?",
			Author:       authorLearner,
			Category:     catHelp,
			Tags:         []string{"Hardware", "Learning"},
			CreatedAt:    at("2023-07-10T19:00:00Z"),
			UpdatedAt:    at("2023-07-10T19:00:00Z"),
			ViewCount:    150,
			LikeCount:    4,
			CommentCount: 9,
		},
	}

	comments := map[int][]Comment{
		1: {
			{
				ID:        1,
				Content:   "Thanks for sharing! I just started and this helps a lot. Any Python book you would recommend?",
				Author:    authorLearner,
				CreatedAt: at("2023-11-15T09:45:00Z"),
				LikeCount: 5,
				Replies: []Comment{{
					ID:        3,
					Content:   "Python Crash Course is a good one: easy to follow, with plenty of projects.",
					Author:    authorCoder,
					CreatedAt: at("2023-11-15T10:20:00Z"),
					LikeCount: 3,
				}},
			},
			{
				ID:        2,
				Content:   "Joining a community is great advice. Don't be afraid to ask questions and share your code.",
				Author:    authorGuru,
				CreatedAt: at("2023-11-15T11:30:00Z"),
				LikeCount: 8,
			},
			{
				ID:        4,
				Content:   "Pick the language for your goal: JavaScript for the web, Python for data, Swift or Kotlin for mobile.",
				Author:    authorExpert,
				CreatedAt: at("2023-11-15T14:05:00Z"),
				LikeCount: 12,
				Replies: []Comment{{
					ID:        5,
					Content:   "Agreed. For complete beginners I would still start with Python or JavaScript.",
					Author:    authorCoder,
					CreatedAt: at("2023-11-15T14:30:00Z"),
					LikeCount: 7,
				}},
			},
		},
	}

	tags := []string{
		"Frontend", "Backend", "Design", "React", "Vue", "Python", "Java",
		"Career", "Learning", "Reading", "Travel", "Photography", "Food", "Fitness",
	}

	return NewCatalog(
		[]Category{catGeneral, catTech, catLife, catHobby, catHelp},
		tags,
		posts,
		comments,
	)
}
