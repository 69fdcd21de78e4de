package main

import "strings"

type NavLink struct {
	Href  string
	Label string
}

type SocialLink struct {
	Href   string
	Kicker string
	Label  string
	NewTab bool
}

// Profile is the static part of the site around the collection sections.
type Profile struct {
	FirstName  string
	MiddleName string
	LastName   string
	Roles      []string
	Nav        []NavLink
	Social     []SocialLink
	Email      string

	ContactHeading string
	ContactBlurb   string

	Copyright string
	Motto     string
	BuiltWith string
}

// FullName joins the name parts.
func (p Profile) FullName() string {
	return strings.Join([]string{p.FirstName, p.MiddleName, p.LastName}, " ")
}

// Tagline renders the roles the way the hero shows them.
func (p Profile) Tagline() string {
	return strings.Join(p.Roles, " // ")
}

func defaultProfile(email string) Profile {
	return Profile{
		FirstName:  "PRIYABRATA",
		MiddleName: "SUBHRANSU",
		LastName:   "BEHERA",
		Roles:      []string{"Full Stack Developer", "Space Tech Enthusiast", "Problem Solver"},
		Nav: []NavLink{
			{Href: "#home", Label: "Home"},
			{Href: "#projects", Label: "Projects"},
			{Href: "#skills", Label: "Skills"},
			{Href: "#passion", Label: "Passion"},
			{Href: "#contact", Label: "Contact"},
		},
		Social: []SocialLink{
			{Href: "mailto:" + email, Kicker: "DIRECT_MAIL", Label: email},
			{Href: "https://github.com/Priyabratasubhransubehera", Kicker: "REPOSITORY", Label: "GitHub", NewTab: true},
			{Href: "https://www.linkedin.com/in/priyabrata-subhransu-behera-a3992a369/", Kicker: "NETWORK", Label: "LinkedIn", NewTab: true},
		},
		Email: email,

		ContactHeading: "INITIATE CONTACT",
		ContactBlurb:   "Ready to collaborate on the next generation of digital experiences. Signal strength is strong.",

		Copyright: "© 2026 Priyabrata Subhransu Behera",
		Motto:     "Innovating through Code & Curiosity",
		BuiltWith: "Built with Go, Gin & HTMX",
	}
}
