package content

var (
	Bio = `Full-stack developer working across the MERN stack, UI engineering and data analytics.
	I like turning loose ideas into small, sharp products and learning whatever the next one needs.`

	Philosophy = `I build intuitive user interfaces powered by scalable MERN stack architecture,
	focusing on performance, usability, and clean system design.`

	Footer = "© 2026 crafted with ❤️ & ☕️ by Dhyey patel"
)
