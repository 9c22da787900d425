package chatbot_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/60cod/ygna-chat/chatbot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPGatewaySend(t *testing.T) {
	var got chatbot.ContactRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(chatbot.ContactResponse{Success: true, MessageID: "abc"})
	}))
	defer server.Close()

	gw := chatbot.NewHTTPGateway(server.URL)
	err := gw.Send(context.Background(), chatbot.ContactRequest{Email: "me@test.com", Message: "Hello there"})
	require.NoError(t, err)
	assert.Equal(t, chatbot.ContactRequest{Email: "me@test.com", Message: "Hello there"}, got)
}

func TestHTTPGatewayFailures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"error":"Failed to send email"}`))
		}},
		{"not success", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"success":false,"error":"nope"}`))
		}},
		{"bad body", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`<html>`))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			err := chatbot.NewHTTPGateway(server.URL).Send(context.Background(), chatbot.ContactRequest{Email: "a@b.co", Message: "x"})
			assert.Error(t, err)
		})
	}
}

func TestHTTPGatewayHonorsContext(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer server.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := chatbot.NewHTTPGateway(server.URL).Send(ctx, chatbot.ContactRequest{Email: "a@b.co", Message: "x"})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestHTTPGatewayUnreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	err := chatbot.NewHTTPGateway(url).Send(context.Background(), chatbot.ContactRequest{Email: "a@b.co", Message: "x"})
	assert.Error(t, err)
}
