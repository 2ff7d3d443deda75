package session

import (
	"github.com/Zachkp/portfolio/internal/contact"
	"github.com/Zachkp/portfolio/internal/content"
)

// Inbound message types, browser to server.
const (
	TypeVisibility = "visibility"
	TypeNavigate   = "navigate"
	TypeField      = "field"
	TypeSubmit     = "submit"
	TypeTheme      = "theme"
)

// Outbound message types, server to browser.
const (
	TypeHello  = "hello"
	TypeNav    = "nav"
	TypeScroll = "scroll"
	TypeForm   = "form"
	TypeNotice = "notice"
)

// Notice codes.
const (
	NoticeValidation   = "validation"
	NoticeBusy         = "busy"
	NoticeUnknownField = "unknown_field"
	NoticeBadMessage   = "bad_message"
)

// Inbound is one frame from the browser. Which fields are set depends on Type.
type Inbound struct {
	Type         string  `json:"type"`
	Section      string  `json:"section,omitempty"`
	Ratio        float64 `json:"ratio,omitempty"`
	Intersecting bool    `json:"intersecting,omitempty"`
	Name         string  `json:"name,omitempty"`
	Value        string  `json:"value,omitempty"`
	Dark         *bool   `json:"dark,omitempty"`
}

// Outbound is one frame to the browser.
type Outbound struct {
	Type     string            `json:"type"`
	Session  string            `json:"session,omitempty"`
	Sections []content.Section `json:"sections,omitempty"`
	Active   string            `json:"active,omitempty"`
	Section  string            `json:"section,omitempty"`
	Dark     *bool             `json:"dark,omitempty"`
	Form     *contact.State    `json:"form,omitempty"`
	Code     string            `json:"code,omitempty"`
}
