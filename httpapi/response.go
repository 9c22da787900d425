package httpapi

import (
	"github.com/60cod/ygna-chat/chatbot"
)

//ListResponse is the envelope of the content endpoints. Page fields are only set when pagination was requested.
type ListResponse struct {
	Success    bool        `json:"success"`
	Data       interface{} `json:"data"`
	Count      *int        `json:"count,omitempty"`
	Page       *int        `json:"page,omitempty"`
	PerPage    int         `json:"per_page,omitempty"`
	TotalPages *int        `json:"total_pages,omitempty"`
}

//SendEmailResponse is a successful contact form submission
type SendEmailResponse struct {
	Success   bool   `json:"success"`
	MessageID string `json:"message_id"`
}

//ChatSessionResponse is the state of a chat session. URL is set when an event resolved to an external link.
type ChatSessionResponse struct {
	SessionID string         `json:"session_id"`
	State     *chatbot.State `json:"state"`
	URL       string         `json:"url,omitempty"`
}

func intPtr(i int) *int {
	return &i
}

//FlushCacheResponse is a successful cache flush
type FlushCacheResponse struct {
	Success bool `json:"success"`
}
