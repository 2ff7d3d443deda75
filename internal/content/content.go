// Package content holds the static tables the portfolio renders: navigable
// sections, the hero block, the technology and tool marquees, education,
// experience, certifications, projects, hobbies and social links.
//
// Content is immutable once built. A Store hands out the current *Portfolio
// and swaps it atomically when an override file is reloaded.
package content

import (
	"errors"
	"fmt"
)

// Section is one navigable region of the page.
type Section struct {
	ID    string `json:"id" yaml:"id"`
	Label string `json:"label" yaml:"label"`
	Icon  string `json:"icon" yaml:"icon"`
}

// Stat is a headline figure in the philosophy block.
type Stat struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label" yaml:"label"`
}

// Hero is the introduction at the top of the page.
type Hero struct {
	Name       string `json:"name" yaml:"name"`
	Headline   string `json:"headline" yaml:"headline"`
	Avatar     string `json:"avatar" yaml:"avatar"`
	Bio        string `json:"bio" yaml:"bio"`
	Philosophy string `json:"philosophy" yaml:"philosophy"`
	Stats      []Stat `json:"stats" yaml:"stats"`
}

// Badge is an entry in the technology or tool marquee.
type Badge struct {
	Name  string `json:"name" yaml:"name"`
	Color string `json:"color" yaml:"color"`
	Icon  string `json:"icon,omitempty" yaml:"icon,omitempty"`
}

type Education struct {
	Title       string `json:"title" yaml:"title"`
	Institute   string `json:"institute" yaml:"institute"`
	Span        string `json:"span" yaml:"span"`
	Description string `json:"description" yaml:"description"`
}

type Experience struct {
	Role        string `json:"role" yaml:"role"`
	Company     string `json:"company" yaml:"company"`
	Span        string `json:"span" yaml:"span"`
	Description string `json:"description" yaml:"description"`
}

type Certification struct {
	Title  string `json:"title" yaml:"title"`
	Issuer string `json:"issuer" yaml:"issuer"`
	ID     string `json:"id" yaml:"id"`
}

type Project struct {
	Title    string `json:"title" yaml:"title"`
	Category string `json:"category" yaml:"category"`
	Image    string `json:"image" yaml:"image"`
	Source   string `json:"source,omitempty" yaml:"source,omitempty"`
	Demo     string `json:"demo,omitempty" yaml:"demo,omitempty"`
}

type Hobby struct {
	Label string `json:"label" yaml:"label"`
	Icon  string `json:"icon" yaml:"icon"`
	Color string `json:"color" yaml:"color"`
}

type Social struct {
	Network string `json:"network" yaml:"network"`
	URL     string `json:"url" yaml:"url"`
}

// Portfolio is the complete set of content tables.
type Portfolio struct {
	Sections       []Section       `json:"sections" yaml:"sections"`
	Hero           Hero            `json:"hero" yaml:"hero"`
	Technologies   []Badge         `json:"technologies" yaml:"technologies"`
	Tools          []Badge         `json:"tools" yaml:"tools"`
	Education      []Education     `json:"education" yaml:"education"`
	Experience     []Experience    `json:"experience" yaml:"experience"`
	Certifications []Certification `json:"certifications" yaml:"certifications"`
	Projects       []Project       `json:"projects" yaml:"projects"`
	Hobbies        []Hobby         `json:"hobbies" yaml:"hobbies"`
	Socials        []Social        `json:"socials" yaml:"socials"`
	Footer         string          `json:"footer" yaml:"footer"`
}

// ErrNoSections is returned by Validate for a portfolio with nothing to navigate.
var ErrNoSections = errors.New("content: at least one section is required")

// Validate checks the invariants navigation relies on: a non-empty section
// list with unique, non-empty ids.
func (p *Portfolio) Validate() error {
	if len(p.Sections) == 0 {
		return ErrNoSections
	}
	seen := make(map[string]struct{}, len(p.Sections))
	for i, s := range p.Sections {
		if s.ID == "" {
			return fmt.Errorf("content: section %d has an empty id", i)
		}
		if _, dup := seen[s.ID]; dup {
			return fmt.Errorf("content: duplicate section id %q", s.ID)
		}
		seen[s.ID] = struct{}{}
	}
	return nil
}

// SectionIDs returns the section ids in page order.
func (p *Portfolio) SectionIDs() []string {
	ids := make([]string, len(p.Sections))
	for i, s := range p.Sections {
		ids[i] = s.ID
	}
	return ids
}
