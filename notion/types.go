package notion

import "strings"

// Page is a database row
type Page struct {
	ID             string              `json:"id"`
	CreatedTime    string              `json:"created_time"`
	LastEditedTime string              `json:"last_edited_time"`
	Archived       bool                `json:"archived"`
	InTrash        bool                `json:"in_trash"`
	Cover          *File               `json:"cover"`
	Properties     map[string]Property `json:"properties"`
}

// File is a hosted or external file reference
type File struct {
	Type     string   `json:"type"`
	File     *FileURL `json:"file,omitempty"`
	External *FileURL `json:"external,omitempty"`
}

// FileURL holds the location of a File
type FileURL struct {
	URL string `json:"url"`
}

// URL returns the file location, preferring hosted files
func (f *File) URL() string {
	switch {
	case f == nil:
		return ""
	case f.File != nil:
		return f.File.URL
	case f.External != nil:
		return f.External.URL
	}
	return ""
}

// Property is a page property value. Only the field matching Type is set.
type Property struct {
	Type        string         `json:"type"`
	Title       []RichText     `json:"title,omitempty"`
	RichText    []RichText     `json:"rich_text,omitempty"`
	Select      *SelectOption  `json:"select,omitempty"`
	MultiSelect []SelectOption `json:"multi_select,omitempty"`
	Date        *Date          `json:"date,omitempty"`
	URL         *string        `json:"url,omitempty"`
	Checkbox    bool           `json:"checkbox,omitempty"`
}

// RichText is a run of formatted text
type RichText struct {
	PlainText string `json:"plain_text"`
}

// SelectOption is a select or multi-select choice
type SelectOption struct {
	Name string `json:"name"`
}

// Date is a date property value
type Date struct {
	Start string `json:"start"`
}

func joinText(runs []RichText) string {
	var b strings.Builder
	for _, r := range runs {
		b.WriteString(r.PlainText)
	}
	return strings.TrimSpace(b.String())
}

// Text returns the plain text of a title or rich text property
func (p Property) Text() string {
	if len(p.Title) > 0 {
		return joinText(p.Title)
	}
	return joinText(p.RichText)
}

// SelectName returns the selected option, or "" if none
func (p Property) SelectName() string {
	if p.Select == nil {
		return ""
	}
	return p.Select.Name
}

// Names returns the non-empty multi-select option names
func (p Property) Names() []string {
	names := []string{}
	for _, o := range p.MultiSelect {
		if o.Name != "" {
			names = append(names, o.Name)
		}
	}
	return names
}

// DateStart returns the start of a date property, or "" if unset
func (p Property) DateStart() string {
	if p.Date == nil {
		return ""
	}
	return p.Date.Start
}

// URLValue returns the URL property value, or "" if unset
func (p Property) URLValue() string {
	if p.URL == nil {
		return ""
	}
	return *p.URL
}
