package content

// Fallback records shown when the store is empty or unreachable.

var FallbackPersonalInfo = PersonalInfo{
	Name:     "Zach Kordas-Potter",
	Title:    "Software Developer",
	Email:    "hello@example.com",
	Location: "Minneapolis, MN",
	Description: `I love building software that's both useful and fun, and I'm always curious about how things work behind the scenes.
Most of my projects start with a simple idea and turn into a chance to learn something new, whether it's exploring a
different language, experimenting with tools, or solving tricky problems.`,
}

var FallbackSkills = []Skill{
	{ID: "fallback-go", Name: "Go", Image: "/static/img/go.svg"},
	{ID: "fallback-htmx", Name: "HTMX", Image: "/static/img/htmx.svg"},
	{ID: "fallback-sqlite", Name: "SQLite", Image: "/static/img/sqlite.svg"},
}

var FallbackExperiences = []Experience{
	{
		ID:       "fallback-target",
		Company:  "Target",
		Position: "Presentation Expert",
		Period:   "Aug 2023 - Present",
		Responsibilities: []string{
			"Executed over 300 merchandising transitions on tight timelines by organizing team workflows and adapting quickly to changing priorities",
			"Boosted operational efficiency by managing backroom inventory processes and streamlining communication between floor and logistics teams",
		},
	},
	{
		ID:       "fallback-jasons",
		Company:  "Jasons Catered Events",
		Position: "Manager",
		Period:   "Aug 2016 - Present",
		Responsibilities: []string{
			"Supported event technology by troubleshooting AV equipment and managing digital order tracking systems",
			"Maintained supply inventory and coordinated timely delivery between venues",
		},
	},
}

var FallbackProjects = []Project{
	{
		ID:           "fallback-mail",
		Title:        "Terminal Mail",
		Description:  "A terminal-based email client with fuzzy finding, built on the Charmbracelet TUI framework and go-imap.",
		Technologies: []string{"Go", "Bubble Tea", "IMAP"},
		Responsibilities: []string{
			"Designed the keyboard-driven inbox view",
		},
	},
	{
		ID:           "fallback-music",
		Title:        "Terminal Music",
		Description:  "A TUI music player that streams YouTube Music through yt-dlp and mpv.",
		Technologies: []string{"Go", "yt-dlp", "mpv"},
		Responsibilities: []string{
			"Wrapped the playback processes behind a small player interface",
		},
	},
	{
		ID:           "fallback-games",
		Title:        "Game Recommender",
		Description:  "Recommends games with TF-IDF vectors and cosine similarity, with filtering by reviews and ratings.",
		Technologies: []string{"Python", "scikit-learn", "Plotly"},
		Responsibilities: []string{
			"Built the content-analysis pipeline",
			"Added interactive visualizations",
		},
	},
	{
		ID:           "fallback-portfolio",
		Title:        "Portfolio Site",
		Description:  "This site: Go, Gin and HTMX with an embedded document store and a small admin editor.",
		Technologies: []string{"Go", "Gin", "HTMX", "SQLite"},
		Responsibilities: []string{
			"Everything",
		},
	},
}
