package content

const projectImage = "https://images.unsplash.com/photo-1618005182384-a83a8bd57fbe?auto=format&fit=crop&q=80&w=800"

// Default returns the built-in portfolio. Each call returns a fresh copy.
func Default() *Portfolio {
	return &Portfolio{
		Sections: []Section{
			{ID: "home", Label: "Home", Icon: "home"},
			{ID: "experience", Label: "Exp.", Icon: "briefcase"},
			{ID: "work", Label: "Work", Icon: "code"},
			{ID: "contact", Label: "Contact", Icon: "mail"},
		},
		Hero: Hero{
			Name:       "Dhyey Thummar",
			Headline:   "Full Stack Developer",
			Avatar:     "/static/profile.jpg",
			Bio:        Bio,
			Philosophy: Philosophy,
			Stats: []Stat{
				{Value: "01+", Label: "Years"},
				{Value: "5+", Label: "Projects"},
				{Value: "100%", Label: "Precision"},
			},
		},
		Technologies: []Badge{
			{Name: "HTML", Color: "#E34F26"},
			{Name: "CSS", Color: "#1572B6"},
			{Name: "JavaScript", Color: "#F7DF1E"},
			{Name: "React", Color: "#61DAFB"},
			{Name: "Node.js", Color: "#339933"},
			{Name: "Express", Color: "#000000"},
			{Name: "MongoDB", Color: "#47A248"},
			{Name: "SQL", Color: "#4479A1"},
			{Name: "TypeScript", Color: "#3178C6"},
		},
		Tools: []Badge{
			{Name: "Git", Color: "#F05032", Icon: "git-branch"},
			{Name: "GitHub", Color: "currentColor", Icon: "github"},
			{Name: "Figma", Color: "#F24E1E", Icon: "palette"},
			{Name: "Postman", Color: "#FF6C37", Icon: "send"},
			{Name: "VS Code", Color: "#007ACC", Icon: "command"},
			{Name: "MongoDB Compass", Color: "#47A248", Icon: "database"},
			{Name: "Docker", Color: "#2496ED", Icon: "box"},
		},
		Education: []Education{
			{
				Title:       "SSC",
				Institute:   "Alpha Vidhya Sankul, Junagadh",
				Span:        "2021",
				Description: "Completed secondary education with a strong academic foundation.",
			},
			{
				Title:       "HSC (PCM)",
				Institute:   "Alpha Vidhya Sankul, Junagadh",
				Span:        "2023",
				Description: "Focused on Physics, Chemistry, and Mathematics, building analytical and problem-solving skills.",
			},
			{
				Title:       "B.Tech Computer Science Engineering",
				Institute:   "Charusat University, Changa",
				Span:        "2023 - 2027",
				Description: "Pursuing a degree in Computer Science with focus on MERN stack development, UI engineering, and data analytics.",
			},
		},
		Experience: []Experience{
			{
				Role:        "Data Analyst",
				Company:     "CODEALPHA",
				Span:        "2024",
				Description: "Created efficient analytics systems focused on data clarity, performance, and scalable intelligence.",
			},
		},
		Certifications: []Certification{
			{Title: "Red Hat Linux", Issuer: "Red Hat", ID: "RHL-449"},
			{Title: "Software project management", Issuer: "Coursera", ID: "SPM-202"},
		},
		Projects: []Project{
			{Title: "Recipe Corner", Category: "Web App", Image: projectImage},
			{Title: "College Placement Insights", Category: "Data Analytics", Image: projectImage},
			{Title: "Background Remover", Category: "Utility", Image: projectImage},
			{Title: "RoadGuard", Category: "Mobile", Image: projectImage},
		},
		Hobbies: []Hobby{
			{Label: "Film Making", Icon: "film", Color: "red"},
			{Label: "Music", Icon: "music", Color: "purple"},
			{Label: "Traveling", Icon: "plane", Color: "emerald"},
		},
		Socials: []Social{
			{Network: "github", URL: "#"},
			{Network: "linkedin", URL: "#"},
			{Network: "instagram", URL: "#"},
		},
		Footer: Footer,
	}
}
