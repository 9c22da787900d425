package api

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func txContext(t *testing.T) (context.Context, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	mock.ExpectBegin()
	tx, err := db.Begin()
	require.NoError(t, err)

	return context.WithValue(context.Background(), TransactionKey, tx), mock
}

var insertSubmission = regexp.QuoteMeta("INSERT INTO contact_submission(email, message, message_id) VALUES(?, ?, ?);")

func TestCreateSubmission(t *testing.T) {
	ctx, mock := txContext(t)
	mock.ExpectExec(insertSubmission).
		WithArgs("me@test.com", "Hello there", "msg-1").
		WillReturnResult(sqlmock.NewResult(7, 1))

	id, err := CreateSubmission(ctx, &Submission{Email: " me@test.com ", Message: "Hello there\n", MessageID: "msg-1"})
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateSubmissionErrors(t *testing.T) {
	t.Run("validation", func(t *testing.T) {
		ctx, mock := txContext(t)
		_, err := CreateSubmission(ctx, &Submission{Email: "me@test.com", Message: "   "})

		var apiErr *Error
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, ErrorTypeUser, apiErr.Type)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("too long", func(t *testing.T) {
		ctx, mock := txContext(t)
		mock.ExpectExec(insertSubmission).WillReturnError(&mysql.MySQLError{Number: 1406, Message: "Data too long"})

		_, err := CreateSubmission(ctx, &Submission{Email: "me@test.com", Message: strings.Repeat("x", 20)})
		var apiErr *Error
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, ErrorTypeUser, apiErr.Type)
	})

	t.Run("server", func(t *testing.T) {
		ctx, mock := txContext(t)
		mock.ExpectExec(insertSubmission).WillReturnError(errors.New("connection reset"))

		_, err := CreateSubmission(ctx, &Submission{Email: "me@test.com", Message: "hi"})
		var apiErr *Error
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, ErrorTypeServer, apiErr.Type)
		assert.Contains(t, apiErr.Error(), "connection reset")
	})
}

func TestReadSubmission(t *testing.T) {
	ctx, mock := txContext(t)
	created := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT email, message, message_id, created_at FROM contact_submission WHERE id=?")).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"email", "message", "message_id", "created_at"}).
			AddRow("me@test.com", "Hello there", "msg-1", created))

	s, err := ReadSubmission(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, &Submission{ID: 7, Email: "me@test.com", Message: "Hello there", MessageID: "msg-1", CreatedAt: created}, s)

	mock.ExpectQuery("SELECT").WithArgs(int64(8)).WillReturnRows(sqlmock.NewRows([]string{"email", "message", "message_id", "created_at"}))
	s, err = ReadSubmission(ctx, 8)
	require.NoError(t, err)
	assert.Nil(t, s)
}
