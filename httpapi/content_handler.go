package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/60cod/ygna-chat/api"
	"github.com/60cod/ygna-chat/metrics"
	"github.com/60cod/ygna-chat/query"
)

const maxPerPage = 100

var (
	errInvalidPage     = errors.New("page must be a non-negative integer")
	errInvalidPerPage  = fmt.Errorf("per_page must be between 1 and %d", maxPerPage)
	errInvalidCategory = errors.New("unknown category")
)

//measuredSource records the latency of every fetch from src
type measuredSource struct {
	src     api.ContentSource
	name    string
	metrics *metrics.ChatMetrics
}

func (s *measuredSource) Articles(ctx context.Context) ([]*api.Article, error) {
	defer s.observe(time.Now())
	return s.src.Articles(ctx)
}

func (s *measuredSource) Projects(ctx context.Context) ([]*api.Project, error) {
	defer s.observe(time.Now())
	return s.src.Projects(ctx)
}

func (s *measuredSource) observe(start time.Time) {
	s.metrics.ObserveContentFetch(s.name, time.Since(start))
}

//listResponse returns items wrapped in a ListResponse, paginated if requested
func listResponse[T any](items []T, req pageRequest) *handlerResponse {
	if !req.Set {
		return &handlerResponse{Code: http.StatusOK, Body: &ListResponse{Success: true, Data: items, Count: intPtr(len(items))}}
	}

	page := query.Paginate(items, req.Page, req.PerPage)
	return &handlerResponse{Code: http.StatusOK, Body: &ListResponse{
		Success:    true,
		Data:       page.Items,
		Count:      intPtr(page.Total),
		Page:       intPtr(page.Page),
		PerPage:    page.PerPage,
		TotalPages: intPtr(page.TotalPages),
	}}
}

//parseCategoryFilter returns the category named by ?category=, or "" if none was given
func parseCategoryFilter(r *http.Request) (api.ArticleCategory, error) {
	name := r.URL.Query().Get("category")
	if name == "" {
		return "", nil
	}
	for _, c := range api.Categories {
		if string(c) == name {
			return c, nil
		}
	}
	return "", errInvalidCategory
}

//GET /articles
func handleReadArticles(src api.ContentSource) returnHandler {
	return func(w http.ResponseWriter, r *http.Request) *handlerResponse {
		req, err := parsePageRequest(r)
		if err != nil {
			return handleErrorMessage(http.StatusBadRequest, err.Error(), err)
		}

		category, err := parseCategoryFilter(r)
		if err != nil {
			return handleErrorMessage(http.StatusBadRequest, fmt.Sprintf("%v: %s", err, r.URL.Query().Get("category")), err)
		}

		var articles []*api.Article
		if category == "" {
			articles, err = src.Articles(r.Context())
		} else {
			var groups map[api.ArticleCategory][]*api.Article
			groups, err = api.ReadArticlesByCategory(r.Context(), src)
			articles = groups[category]
		}
		if resp := checkAPIError(err); resp != nil {
			return resp
		}
		if articles == nil {
			articles = []*api.Article{}
		}

		return listResponse(articles, req)
	}
}

//GET /articles/categories
func handleReadCategories(src api.ContentSource) returnHandler {
	return func(w http.ResponseWriter, r *http.Request) *handlerResponse {
		categories, err := api.ReadCategories(r.Context(), src)
		if resp := checkAPIError(err); resp != nil {
			return resp
		}

		return &handlerResponse{Code: http.StatusOK, Body: &ListResponse{Success: true, Data: categories}}
	}
}

//GET /projects
func handleReadProjects(src api.ContentSource) returnHandler {
	return func(w http.ResponseWriter, r *http.Request) *handlerResponse {
		req, err := parsePageRequest(r)
		if err != nil {
			return handleErrorMessage(http.StatusBadRequest, err.Error(), err)
		}

		projects, err := src.Projects(r.Context())
		if resp := checkAPIError(err); resp != nil {
			return resp
		}
		if projects == nil {
			projects = []*api.Project{}
		}

		return listResponse(projects, req)
	}
}

//GET /projects/featured
func handleReadFeaturedProjects(src api.ContentSource) returnHandler {
	return func(w http.ResponseWriter, r *http.Request) *handlerResponse {
		projects, err := api.ReadFeaturedProjects(r.Context(), src)
		if resp := checkAPIError(err); resp != nil {
			return resp
		}

		return &handlerResponse{Code: http.StatusOK, Body: &ListResponse{Success: true, Data: projects, Count: intPtr(len(projects))}}
	}
}
