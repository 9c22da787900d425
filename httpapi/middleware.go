package httpapi

import (
	"context"
	"crypto/subtle"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"time"

	"github.com/60cod/ygna-chat/api"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type handlerResponse struct {
	Code int
	Body interface{}
	Err  error
}

type returnHandler func(http.ResponseWriter, *http.Request) *handlerResponse

//logMiddleware tags the request with an id and writes one log line after the handler returns
func logMiddleware(next returnHandler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		reqID := r.Header.Get("X-Request-Id")
		if reqID == "" {
			reqID = uuid.NewString()
		}
		w.Header().Set("X-Request-Id", reqID)

		resp := next(w, r)

		ev := log.Info()
		if resp.Code >= http.StatusInternalServerError {
			ev = log.Error()
		} else if resp.Code >= http.StatusBadRequest {
			ev = log.Warn()
		}

		ev.Str("request_id", reqID).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("query", r.URL.RawQuery).
			Int("code", resp.Code).
			Str("status", http.StatusText(resp.Code)).
			Dur("duration", time.Since(start)).
			Err(resp.Err).
			Msg("request")
	})
}

func jsonMiddleware(next returnHandler) returnHandler {
	return func(w http.ResponseWriter, r *http.Request) *handlerResponse {
		var resp *handlerResponse

		if r.Method != http.MethodGet && r.ContentLength != 0 {
			mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
			if err != nil {
				resp = handleError(http.StatusBadRequest, errors.New("Could not parse Content-Type"))
				goto serve
			}
			if mediaType != "application/json" {
				resp = handleError(http.StatusBadRequest, errors.New("Content-Type not application/json"))
				goto serve
			}
		}

		resp = next(w, r)

	serve:
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(resp.Code)
		e := json.NewEncoder(w)
		err := e.Encode(resp.Body)
		if err != nil {
			return handleError(http.StatusInternalServerError, fmt.Errorf("Could encode json: %v", err))
		}
		return resp
	}
}

//adminMiddleware rejects requests without the X-Admin-Key header matching key
func adminMiddleware(next returnHandler, key string) returnHandler {
	return func(w http.ResponseWriter, r *http.Request) *handlerResponse {
		got := r.Header.Get("X-Admin-Key")
		if got == "" {
			return handleError(http.StatusUnauthorized, errors.New("X-Admin-Key header empty"))
		}
		if subtle.ConstantTimeCompare([]byte(got), []byte(key)) != 1 {
			return handleError(http.StatusUnauthorized, errors.New("Invalid admin key"))
		}
		return next(w, r)
	}
}

//txMiddleware runs next inside a transaction. If db is nil, next runs without one.
func txMiddleware(next returnHandler, db *sql.DB) returnHandler {
	if db == nil {
		return next
	}

	return func(w http.ResponseWriter, r *http.Request) *handlerResponse {
		tx, err := db.BeginTx(r.Context(), nil)
		if err != nil {
			return handleError(http.StatusInternalServerError, fmt.Errorf("Could not begin transaction: %v", err))
		}

		ctx := context.WithValue(r.Context(), api.TransactionKey, tx)
		resp := next(w, r.WithContext(ctx))

		if resp.Code >= http.StatusInternalServerError {
			if rErr := tx.Rollback(); rErr != nil && rErr != sql.ErrTxDone {
				log.Error().Err(rErr).Msg("Could not rollback transaction")
			}
			return resp
		}

		if err = tx.Commit(); err != nil {
			if rErr := tx.Rollback(); rErr != nil && rErr != sql.ErrTxDone {
				return handleError(http.StatusInternalServerError, fmt.Errorf("Could not rollback transaction: %v", rErr))
			}
			return handleError(http.StatusInternalServerError, fmt.Errorf("Could not commit transaction: %v", err))
		}

		return resp
	}
}
