package chatbot_test

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/60cod/ygna-chat/chatbot"
	"github.com/60cod/ygna-chat/metrics"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	*httptest.Server
	sched *chatbot.ManualScheduler
	store *chatbot.LRUStore
	gw    *recordingGateway
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	ts := &testServer{sched: chatbot.NewManualScheduler(), gw: &recordingGateway{}}
	ts.store = chatbot.NewLRUStore(1<<20, time.Hour, func() *chatbot.Machine {
		return chatbot.NewMachine(testFactory(), ts.sched, ts.gw)
	})
	handler := chatbot.NewHandler(ts.store, metrics.NewChatMetrics(prometheus.NewRegistry()), nil)
	ts.Server = httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	return ts
}

func (ts *testServer) dial(t *testing.T, query string) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + query
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("Failed to connect: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func read(t *testing.T, conn *websocket.Conn) chatbot.ServerMessage {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var msg chatbot.ServerMessage
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("Failed to read: %v", err)
	}
	return msg
}

func sendEvent(t *testing.T, conn *websocket.Conn, typ chatbot.EventType, value string) {
	t.Helper()
	err := conn.WriteJSON(chatbot.ClientMessage{Type: chatbot.ClientTypeEvent, Event: &chatbot.Event{Type: typ, Value: value}})
	if err != nil {
		t.Fatalf("Failed to send event: %v", err)
	}
}

func TestWebSocketSessionLifecycle(t *testing.T) {
	ts := newTestServer(t)
	conn := ts.dial(t, "")

	hello := read(t, conn)
	require.Equal(t, chatbot.MessageTypeSession, hello.Type)
	require.NotEmpty(t, hello.SessionID)
	require.NotNil(t, hello.State)
	assert.True(t, hello.State.ShowInitialButtons)
	assert.Len(t, hello.State.Messages, 1)

	sendEvent(t, conn, chatbot.EventSection, "Articles")
	msg := read(t, conn)
	require.Equal(t, chatbot.MessageTypeState, msg.Type)
	assert.True(t, msg.State.IsExpanded)
	assert.Len(t, msg.State.Messages, 2)

	ts.sched.Flush()
	msg = read(t, conn)
	require.Equal(t, chatbot.MessageTypeState, msg.Type)
	require.Len(t, msg.State.Messages, 3)
	assert.True(t, msg.State.Messages[2].IsFullWidth)
	assert.Equal(t, chatbot.SectionArticles, msg.State.Messages[2].SelectedSection)
	conn.Close()

	// reconnecting resumes the same conversation
	again := ts.dial(t, "?session_id="+hello.SessionID)
	resumed := read(t, again)
	assert.Equal(t, hello.SessionID, resumed.SessionID)
	assert.Len(t, resumed.State.Messages, 3)

	// unknown ids start a fresh session
	fresh := ts.dial(t, "?session_id=nope")
	other := read(t, fresh)
	assert.NotEqual(t, hello.SessionID, other.SessionID)
	assert.Len(t, other.State.Messages, 1)
}

func TestWebSocketRejectionsAndLinks(t *testing.T) {
	ts := newTestServer(t)
	conn := ts.dial(t, "")
	read(t, conn)

	sendEvent(t, conn, chatbot.EventSend, "hello")
	msg := read(t, conn)
	assert.Equal(t, chatbot.MessageTypeError, msg.Type)
	assert.Equal(t, chatbot.ErrInputDisabled.Error(), msg.Error)

	require.NoError(t, conn.WriteJSON(chatbot.ClientMessage{Type: chatbot.ClientTypePing}))
	assert.Equal(t, chatbot.MessageTypePong, read(t, conn).Type)

	require.NoError(t, conn.WriteJSON(chatbot.ClientMessage{Type: "shout"}))
	assert.Equal(t, chatbot.MessageTypeError, read(t, conn).Type)

	require.NoError(t, conn.WriteJSON(chatbot.ClientMessage{Type: chatbot.ClientTypeEvent}))
	assert.Equal(t, chatbot.MessageTypeError, read(t, conn).Type)

	sendEvent(t, conn, chatbot.EventSection, "About")
	read(t, conn)
	ts.sched.Flush()
	read(t, conn)

	sendEvent(t, conn, chatbot.EventButton, chatbot.ButtonGitHub)
	msg = read(t, conn)
	assert.Equal(t, chatbot.MessageTypeOpenLink, msg.Type)
	assert.Equal(t, chatbot.DefaultProfile.GitHubURL, msg.URL)
}

func TestWebSocketContactFlow(t *testing.T) {
	ts := newTestServer(t)
	conn := ts.dial(t, "")
	read(t, conn)

	sendEvent(t, conn, chatbot.EventSection, "Contact")
	read(t, conn)
	ts.sched.Flush()
	msg := read(t, conn)
	require.True(t, msg.State.IsInputEnabled)

	sendEvent(t, conn, chatbot.EventSend, "me@test.com")
	read(t, conn)
	ts.sched.Flush()
	read(t, conn)
	msg = read(t, conn)
	require.Equal(t, chatbot.ContactMessage, msg.State.ContactStep)

	sendEvent(t, conn, chatbot.EventSend, "Hello there")
	read(t, conn)
	ts.sched.Flush()
	read(t, conn)
	msg = read(t, conn)
	require.Equal(t, chatbot.ContactConfirmation, msg.State.ContactStep)

	sendEvent(t, conn, chatbot.EventConfirm, "")
	msg = read(t, conn)
	assert.True(t, msg.State.IsEmailSending)

	ts.sched.Flush()
	msg = read(t, conn)
	assert.False(t, msg.State.IsEmailSending)
	assert.Equal(t, chatbot.ContactNone, msg.State.ContactStep)
	assert.Equal(t, []chatbot.ContactRequest{{Email: "me@test.com", Message: "Hello there"}}, ts.gw.requests())
}
