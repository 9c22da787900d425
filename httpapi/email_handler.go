package httpapi

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/60cod/ygna-chat/api"
	"github.com/60cod/ygna-chat/chatbot"
	"github.com/60cod/ygna-chat/metrics"
	"github.com/rs/zerolog/log"
)

//ContactMailer delivers contact form submissions
type ContactMailer interface {
	Send(ctx context.Context, email, message string) (messageID string, err error)
}

const maxMessageLength = 10000

//POST /send-email
func handleSendEmail(mailer ContactMailer, db *sql.DB, m *metrics.ChatMetrics) returnHandler {
	return func(w http.ResponseWriter, r *http.Request) *handlerResponse {
		var req *SendEmailRequest
		d := json.NewDecoder(r.Body)

		err := d.Decode(&req)
		if err != nil || req == nil {
			return handleErrorMessage(http.StatusBadRequest, "Invalid request body", fmt.Errorf("Could not decode JSON: %v", err))
		}

		email := strings.TrimSpace(req.Email)
		message := strings.TrimSpace(req.Message)

		if email == "" || message == "" {
			return handleErrorMessage(http.StatusBadRequest, "Email and message are required", errors.New("Missing email or message"))
		}
		if !chatbot.IsValidEmail(email) {
			return handleErrorMessage(http.StatusBadRequest, "Invalid email format", fmt.Errorf("Invalid email: %q", email))
		}
		if len(message) > maxMessageLength {
			return handleErrorMessage(http.StatusBadRequest, "Message is too long", fmt.Errorf("Message length %d", len(message)))
		}

		id, err := mailer.Send(r.Context(), email, message)
		m.ObserveContactSend(err)
		if err != nil {
			return handleErrorMessage(http.StatusInternalServerError, "Failed to send email", err)
		}

		if db != nil {
			submission := &api.Submission{Email: email, Message: message, MessageID: id}
			if err = archiveSubmission(r.Context(), db, submission); err != nil {
				log.Warn().Err(err).Str("message_id", id).Msg("Could not archive submission")
			}
		}

		return &handlerResponse{Code: http.StatusOK, Body: &SendEmailResponse{Success: true, MessageID: id}}
	}
}

//archiveSubmission stores a delivered submission in its own transaction
func archiveSubmission(ctx context.Context, db *sql.DB, submission *api.Submission) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("Could not begin transaction: %v", err)
	}

	if _, err = api.CreateSubmission(context.WithValue(ctx, api.TransactionKey, tx), submission); err != nil {
		if rErr := tx.Rollback(); rErr != nil && rErr != sql.ErrTxDone {
			log.Error().Err(rErr).Msg("Could not rollback transaction")
		}
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("Could not commit transaction: %v", err)
	}
	return nil
}
