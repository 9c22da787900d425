package chatbot

// ClientMessage is the message format from client to server
type ClientMessage struct {
	Type  string `json:"type"`            // "event" or "ping"
	Event *Event `json:"event,omitempty"` // sent with "event"
}

// ServerMessage is the message format from server to client
type ServerMessage struct {
	Type      string `json:"type"`                 // "session", "state", "open_link", "error" or "pong"
	SessionID string `json:"session_id,omitempty"` // sent with "session"
	State     *State `json:"state,omitempty"`      // sent with "session" and "state"
	URL       string `json:"url,omitempty"`        // sent with "open_link"
	Error     string `json:"error,omitempty"`      // sent with "error"
}

// Client message types
const (
	ClientTypeEvent = "event"
	ClientTypePing  = "ping"
)

// Server message types
const (
	MessageTypeSession  = "session"
	MessageTypeState    = "state"
	MessageTypeOpenLink = "open_link"
	MessageTypeError    = "error"
	MessageTypePong     = "pong"
)
