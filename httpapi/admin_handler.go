package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/60cod/ygna-chat/api"
	"github.com/gorilla/mux"
)

//CacheInvalidator is a content source that can drop its cached listings
type CacheInvalidator interface {
	Invalidate(ctx context.Context) error
}

//GET /admin/submissions/{id}
func handleReadSubmission(w http.ResponseWriter, r *http.Request) *handlerResponse {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		return handleError(http.StatusBadRequest, fmt.Errorf("Could not parse id: %v", err))
	}

	submission, err := api.ReadSubmission(r.Context(), id)
	if resp := checkAPIError(err); resp != nil {
		return resp
	}
	if submission == nil {
		return handleError(http.StatusNotFound, fmt.Errorf("Could not find Submission(%d)", id))
	}

	return &handlerResponse{Code: http.StatusOK, Body: submission}
}

//POST /admin/cache/flush
func handleFlushCache(content api.ContentSource) returnHandler {
	return func(w http.ResponseWriter, r *http.Request) *handlerResponse {
		c, ok := content.(CacheInvalidator)
		if !ok {
			return handleErrorMessage(http.StatusConflict, "Content is not cached", errors.New("Content source has no cache"))
		}
		if err := c.Invalidate(r.Context()); err != nil {
			return handleError(http.StatusInternalServerError, fmt.Errorf("Could not flush cache: %v", err))
		}
		return &handlerResponse{Code: http.StatusOK, Body: &FlushCacheResponse{Success: true}}
	}
}
