package chatbot

import (
	"encoding/json"
	"strings"
)

// Section is a top-level navigation topic of the chat menu
type Section string

// Navigation sections
const (
	SectionArticles Section = "Articles"
	SectionProjects Section = "Projects"
	SectionAbout    Section = "About"
	SectionContact  Section = "Contact"
)

// Sections lists the navigation sections in menu order
var Sections = []Section{SectionArticles, SectionProjects, SectionAbout, SectionContact}

var sectionRoutes = map[Section]string{
	SectionArticles: "/articles",
	SectionProjects: "/projects",
	SectionAbout:    "/about",
	SectionContact:  "/contact",
}

var sectionDescriptions = map[Section]string{
	SectionArticles: "Read my latest articles and blog posts",
	SectionProjects: "Explore my portfolio and projects",
	SectionAbout:    "Learn more about me and my background",
	SectionContact:  "Get in touch with me",
}

// ParseSection resolves a section name, ignoring case and surrounding space
func ParseSection(name string) (Section, bool) {
	name = strings.TrimSpace(name)
	for _, s := range Sections {
		if strings.EqualFold(string(s), name) {
			return s, true
		}
	}
	return "", false
}

// Valid reports whether s is one of the navigation sections
func (s Section) Valid() bool {
	_, ok := sectionRoutes[s]
	return ok
}

// Route returns the page path of the section
func (s Section) Route() string {
	return sectionRoutes[s]
}

// Description returns a one-line summary of the section
func (s Section) Description() string {
	return sectionDescriptions[s]
}

// Message is a single entry of the conversation log. Buttons, IsFullWidth and
// SelectedSection are only set on bot messages.
type Message struct {
	ID              string   `json:"id"`
	Content         string   `json:"content"`
	IsBot           bool     `json:"is_bot"`
	Timestamp       string   `json:"timestamp"`
	Buttons         []string `json:"buttons,omitempty"`
	IsFullWidth     bool     `json:"is_full_width,omitempty"`
	SelectedSection Section  `json:"selected_section,omitempty"`
}

func (m Message) clone() Message {
	if m.Buttons != nil {
		m.Buttons = append([]string(nil), m.Buttons...)
	}
	return m
}

// ContactStep is the current step of the contact sub-flow. The zero value
// means no contact flow is active and is encoded as JSON null.
type ContactStep string

// Contact steps
const (
	ContactNone         ContactStep = ""
	ContactEmail        ContactStep = "email"
	ContactMessage      ContactStep = "message"
	ContactConfirmation ContactStep = "confirmation"
)

// MarshalJSON encodes ContactNone as null
func (s ContactStep) MarshalJSON() ([]byte, error) {
	return marshalNullable(string(s))
}

// UnmarshalJSON decodes null as ContactNone
func (s *ContactStep) UnmarshalJSON(data []byte) error {
	v, err := unmarshalNullable(data)
	*s = ContactStep(v)
	return err
}

// AboutStep is the current step of the About sub-flow. The zero value means
// no About flow is active and is encoded as JSON null.
type AboutStep string

// About steps
const (
	AboutNone    AboutStep = ""
	AboutInitial AboutStep = "initial"
)

// MarshalJSON encodes AboutNone as null
func (s AboutStep) MarshalJSON() ([]byte, error) {
	return marshalNullable(string(s))
}

// UnmarshalJSON decodes null as AboutNone
func (s *AboutStep) UnmarshalJSON(data []byte) error {
	v, err := unmarshalNullable(data)
	*s = AboutStep(v)
	return err
}

func marshalNullable(v string) ([]byte, error) {
	if v == "" {
		return []byte("null"), nil
	}
	return json.Marshal(v)
}

func unmarshalNullable(data []byte) (string, error) {
	if string(data) == "null" {
		return "", nil
	}
	var v string
	err := json.Unmarshal(data, &v)
	return v, err
}

// ContactData is the contact submission staged by the contact flow
type ContactData struct {
	Email   string `json:"email"`
	Message string `json:"message"`
}

// State is a snapshot of a conversation. Revision increases with every
// mutation so transports can discard out-of-order snapshots.
type State struct {
	Revision           uint64      `json:"revision"`
	Messages           []Message   `json:"messages"`
	ShowInitialButtons bool        `json:"show_initial_buttons"`
	IsExpanded         bool        `json:"is_expanded"`
	IsInputEnabled     bool        `json:"is_input_enabled"`
	ContactStep        ContactStep `json:"contact_step"`
	AboutStep          AboutStep   `json:"about_step"`
	ContactData        ContactData `json:"contact_data"`
	IsEmailSending     bool        `json:"is_email_sending"`
}

func (s State) clone() State {
	msgs := make([]Message, len(s.Messages))
	for i, m := range s.Messages {
		msgs[i] = m.clone()
	}
	s.Messages = msgs
	return s
}
