package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/60cod/ygna-chat/chatbot"
	"github.com/gorilla/mux"
)

//readSession returns the session named in the path, or a handlerResponse if there isn't one
func readSession(h *chatbot.Handler, r *http.Request) (*chatbot.Session, *handlerResponse) {
	id := mux.Vars(r)["id"]
	session, err := h.Session(id)
	if err != nil {
		return nil, handleError(http.StatusInternalServerError, fmt.Errorf("Could not read session: %v", err))
	}
	if session == nil {
		return nil, handleError(http.StatusNotFound, fmt.Errorf("Could not find session %q", id))
	}
	return session, nil
}

//POST /chat/sessions
func handleCreateChatSession(h *chatbot.Handler) returnHandler {
	return func(w http.ResponseWriter, r *http.Request) *handlerResponse {
		session, err := h.CreateSession()
		if err != nil {
			return handleError(http.StatusInternalServerError, fmt.Errorf("Could not create session: %v", err))
		}

		state := session.Machine.State()
		return &handlerResponse{Code: http.StatusCreated, Body: &ChatSessionResponse{SessionID: session.ID, State: &state}}
	}
}

//GET /chat/sessions/:id
func handleReadChatSession(h *chatbot.Handler) returnHandler {
	return func(w http.ResponseWriter, r *http.Request) *handlerResponse {
		session, resp := readSession(h, r)
		if resp != nil {
			return resp
		}

		state := session.Machine.State()
		return &handlerResponse{Code: http.StatusOK, Body: &ChatSessionResponse{SessionID: session.ID, State: &state}}
	}
}

//POST /chat/sessions/:id/events
func handleChatEvent(h *chatbot.Handler) returnHandler {
	return func(w http.ResponseWriter, r *http.Request) *handlerResponse {
		session, resp := readSession(h, r)
		if resp != nil {
			return resp
		}

		var ev *chatbot.Event
		d := json.NewDecoder(r.Body)
		if err := d.Decode(&ev); err != nil || ev == nil {
			return handleErrorMessage(http.StatusBadRequest, "Invalid event", fmt.Errorf("Could not decode JSON: %v", err))
		}

		link, err := h.Apply(session, *ev)
		if err != nil {
			var unknown chatbot.ErrUnknownEvent
			if errors.As(err, &unknown) {
				return handleErrorMessage(http.StatusBadRequest, err.Error(), err)
			}
			return handleErrorMessage(http.StatusConflict, err.Error(), err)
		}

		state := session.Machine.State()
		return &handlerResponse{Code: http.StatusOK, Body: &ChatSessionResponse{SessionID: session.ID, State: &state, URL: link}}
	}
}
