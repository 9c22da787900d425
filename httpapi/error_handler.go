package httpapi

import (
	"errors"
	"net/http"

	"github.com/60cod/ygna-chat/api"
)

//ErrorResponse represents an HTTP error
type ErrorResponse struct {
	Success bool   `json:"success"`
	Code    int    `json:"code"`
	Error   string `json:"error"`
}

//handleError returns a handlerResponse response for the given code
func handleError(code int, err error) *handlerResponse {
	return handleErrorMessage(code, http.StatusText(code), err)
}

//handleErrorMessage returns a handlerResponse response for the given code with a message shown to the client
func handleErrorMessage(code int, message string, err error) *handlerResponse {
	return &handlerResponse{Code: code, Body: &ErrorResponse{Code: code, Error: message}, Err: err}
}

//notFoundHandler returns a 404 handlerResponse
func notFoundHandler(w http.ResponseWriter, r *http.Request) *handlerResponse {
	return handleError(http.StatusNotFound, errors.New("Could not find handler"))
}

//methodNotAllowedHandler returns a 405 handlerResponse
func methodNotAllowedHandler(w http.ResponseWriter, r *http.Request) *handlerResponse {
	return handleError(http.StatusMethodNotAllowed, errors.New("Method not allowed"))
}

//checkAPIError checks an api.Error and returns a handlerResponse for it, or nil if there was no error
func checkAPIError(err error) *handlerResponse {
	if err == nil {
		return nil
	}

	var e *api.Error
	if errors.As(err, &e) && e.Type == api.ErrorTypeUser {
		return handleErrorMessage(http.StatusBadRequest, e.Public(), err)
	}
	return handleError(http.StatusInternalServerError, err)
}
