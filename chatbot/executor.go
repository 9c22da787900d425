package chatbot

import (
	"fmt"
)

// EventType names an external event of the conversation
type EventType string

// Event types
const (
	EventSection EventType = "section"
	EventSend    EventType = "send"
	EventConfirm EventType = "confirm"
	EventCancel  EventType = "cancel"
	EventButton  EventType = "button"
	EventReturn  EventType = "return"
)

// Event is a serializable form of a machine call. Value carries the section
// name, the submitted text or the button label.
type Event struct {
	Type  EventType `json:"type"`
	Value string    `json:"value,omitempty"`
}

// ErrUnknownEvent is returned by Dispatch for an unrecognized event type
type ErrUnknownEvent struct {
	Type EventType
}

func (e ErrUnknownEvent) Error() string {
	return fmt.Sprintf("unknown event type: %q", string(e.Type))
}

// Dispatch routes ev to the matching handler. link is only set when an About
// button resolves to an external link.
func (m *Machine) Dispatch(ev Event) (link string, err error) {
	switch ev.Type {
	case EventSection:
		section, ok := ParseSection(ev.Value)
		if !ok {
			return "", ErrUnknownSection
		}
		return "", m.SectionClick(section)
	case EventSend:
		return "", m.SendMessage(ev.Value)
	case EventConfirm:
		return "", m.ConfirmSend()
	case EventCancel:
		return "", m.CancelSend()
	case EventButton:
		return m.AboutButtonClick(ev.Value)
	case EventReturn:
		return "", m.ReturnHome()
	default:
		return "", ErrUnknownEvent{Type: ev.Type}
	}
}
