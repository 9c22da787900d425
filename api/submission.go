package api

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
)

//Submission is an archived contact form submission
type Submission struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	MessageID string    `json:"message_id"`
	CreatedAt time.Time `json:"created_at"`
}

//Validate cleans and validates the given Submission
func (s *Submission) Validate() error {
	s.Email = strings.TrimSpace(s.Email)
	s.Message = strings.TrimSpace(s.Message)

	if err := ValidateString("email", s.Email, 255); err != nil {
		return err
	}
	if err := ValidateString("message", s.Message, 10000); err != nil {
		return err
	}
	return nil
}

//CreateSubmission archives the given Submission (ID and CreatedAt are ignored and created) and returns its ID, or an error if one occurred
func CreateSubmission(ctx context.Context, submission *Submission) (id int64, err error) {
	tx := ctx.Value(TransactionKey).(*sql.Tx)

	if err = submission.Validate(); err != nil {
		return 0, &Error{Description: "Could not validate Submission", Type: ErrorTypeUser, Err: err}
	}

	res, err := tx.Exec("INSERT INTO contact_submission(email, message, message_id) VALUES(?, ?, ?);",
		submission.Email,
		submission.Message,
		submission.MessageID,
	)
	if err != nil {
		if e, ok := err.(*mysql.MySQLError); ok && e.Number == 1406 {
			return 0, &Error{Description: "Could not insert Submission", Type: ErrorTypeUser, Err: err}
		}
		return 0, &Error{Description: "Could not insert Submission", Type: ErrorTypeServer, Err: err}
	}

	id, err = res.LastInsertId()
	if err != nil {
		return 0, &Error{Description: "Could not fetch Submission", Type: ErrorTypeServer, Err: err}
	}

	return id, nil
}

//ReadSubmission returns the Submission with the given id, or nil if it doesn't exist
func ReadSubmission(ctx context.Context, id int64) (*Submission, error) {
	tx := ctx.Value(TransactionKey).(*sql.Tx)

	submission := &Submission{ID: id}

	row := tx.QueryRow("SELECT email, message, message_id, created_at FROM contact_submission WHERE id=?", id)
	err := row.Scan(&(submission.Email), &(submission.Message), &(submission.MessageID), &(submission.CreatedAt))

	switch {
	case err == sql.ErrNoRows:
		return nil, nil
	case err != nil:
		return nil, &Error{Description: fmt.Sprintf("Could not query Submission(%d)", id), Type: ErrorTypeServer, Err: err}
	}

	return submission, nil
}
