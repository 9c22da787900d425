package chatbot

import (
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/60cod/ygna-chat/metrics"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const writeTimeout = 10 * time.Second

// Handler serves chat sessions over WebSocket
type Handler struct {
	store    SessionStore
	metrics  *metrics.ChatMetrics
	upgrader websocket.Upgrader
}

// NewHandler creates a new chat handler. checkOrigin may be nil to allow any origin.
func NewHandler(store SessionStore, m *metrics.ChatMetrics, checkOrigin func(r *http.Request) bool) *Handler {
	if checkOrigin == nil {
		checkOrigin = func(r *http.Request) bool { return true }
	}
	return &Handler{
		store:    store,
		metrics:  m,
		upgrader: websocket.Upgrader{CheckOrigin: checkOrigin},
	}
}

// Session returns the session with the given id, or nil if it does not exist
func (h *Handler) Session(id string) (*Session, error) {
	s, err := h.store.Get(id)
	h.metrics.SetSessions(h.store.Len())
	return s, err
}

// CreateSession starts a new session at the root menu
func (h *Handler) CreateSession() (*Session, error) {
	s, err := h.store.Create()
	if err != nil {
		return nil, err
	}
	h.metrics.SetSessions(h.store.Len())
	return s, nil
}

// Apply dispatches ev to the session's conversation and records the outcome
func (h *Handler) Apply(s *Session, ev Event) (link string, err error) {
	link, err = s.Machine.Dispatch(ev)

	result := metrics.ResultOK
	if err != nil {
		result = metrics.ResultRejected
		var unknown ErrUnknownEvent
		if errors.As(err, &unknown) {
			result = metrics.ResultError
		}
		log.Debug().Str("session_id", s.ID).Str("event", string(ev.Type)).Err(err).Msg("Event rejected")
	}
	h.metrics.ObserveEvent(string(ev.Type), result)
	return link, err
}

// conn serializes writes to a WebSocket and drops state frames older than the
// last one written
type conn struct {
	ws       *websocket.Conn
	mu       sync.Mutex
	revision uint64
}

func (c *conn) write(msg ServerMessage) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if msg.State != nil {
		if msg.State.Revision <= c.revision {
			return nil
		}
		c.revision = msg.State.Revision
	}

	c.ws.SetWriteDeadline(time.Now().Add(writeTimeout))
	return c.ws.WriteJSON(msg)
}

// ServeHTTP upgrades the connection, attaches it to a session and relays
// events until the client disconnects
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var session *Session
	var err error

	if id := r.URL.Query().Get("session_id"); id != "" {
		if session, err = h.Session(id); err != nil {
			log.Error().Err(err).Str("session_id", id).Msg("Failed to load session")
			http.Error(w, "Failed to load session", http.StatusInternalServerError)
			return
		}
	}

	if session == nil {
		if session, err = h.CreateSession(); err != nil {
			log.Error().Err(err).Msg("Failed to create session")
			http.Error(w, "Failed to create session", http.StatusInternalServerError)
			return
		}
	}

	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer ws.Close()

	c := &conn{ws: ws}

	// hold the write lock until the session frame is out so no pushed state
	// can precede it
	c.mu.Lock()
	unsubscribe := session.Machine.Subscribe(func(s State) {
		if err := c.write(ServerMessage{Type: MessageTypeState, State: &s}); err != nil {
			log.Debug().Err(err).Str("session_id", session.ID).Msg("Failed to push state")
		}
	})
	defer unsubscribe()

	state := session.Machine.State()
	c.revision = state.Revision
	ws.SetWriteDeadline(time.Now().Add(writeTimeout))
	err = ws.WriteJSON(ServerMessage{Type: MessageTypeSession, SessionID: session.ID, State: &state})
	c.mu.Unlock()
	if err != nil {
		log.Debug().Err(err).Str("session_id", session.ID).Msg("Failed to write session")
		return
	}

	log.Info().Str("session_id", session.ID).Msg("Chat connected")

	for {
		var msg ClientMessage
		if err := ws.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Warn().Err(err).Str("session_id", session.ID).Msg("Chat read failed")
			}
			break
		}

		var reply *ServerMessage
		switch msg.Type {
		case ClientTypePing:
			reply = &ServerMessage{Type: MessageTypePong}
		case ClientTypeEvent:
			if msg.Event == nil {
				reply = &ServerMessage{Type: MessageTypeError, Error: "Missing event"}
				break
			}
			link, err := h.Apply(session, *msg.Event)
			if err != nil {
				reply = &ServerMessage{Type: MessageTypeError, Error: err.Error()}
			} else if link != "" {
				reply = &ServerMessage{Type: MessageTypeOpenLink, URL: link}
			}
		default:
			reply = &ServerMessage{Type: MessageTypeError, Error: "Unknown message type"}
		}

		if reply != nil {
			if err := c.write(*reply); err != nil {
				log.Debug().Err(err).Str("session_id", session.ID).Msg("Failed to write reply")
				break
			}
		}
	}

	log.Info().Str("session_id", session.ID).Msg("Chat disconnected")
}
