package httpapi

import (
	"net/http"
	"strconv"

	"github.com/60cod/ygna-chat/query"
)

//SendEmailRequest is a contact form submission
type SendEmailRequest struct {
	Email   string `json:"email"`
	Message string `json:"message"`
}

//pageRequest is the optional pagination of a list request
type pageRequest struct {
	Page    int
	PerPage int
	Set     bool
}

//parsePageRequest reads ?page= and ?per_page= from r. Pages are zero-based.
func parsePageRequest(r *http.Request) (pageRequest, error) {
	q := r.URL.Query()
	req := pageRequest{PerPage: query.DefaultPerPage}

	if v := q.Get("page"); v != "" {
		page, err := strconv.Atoi(v)
		if err != nil || page < 0 {
			return req, errInvalidPage
		}
		req.Page = page
		req.Set = true
	}

	if v := q.Get("per_page"); v != "" {
		per, err := strconv.Atoi(v)
		if err != nil || per <= 0 || per > maxPerPage {
			return req, errInvalidPerPage
		}
		req.PerPage = per
		req.Set = true
	}

	return req, nil
}
