package notion

import (
	"context"
	"fmt"
	"time"

	"github.com/60cod/ygna-chat/api"
)

// Article database properties
const (
	propArticleTitle    = "article_title"
	propArticleCategory = "article_category"
	propArticleTags     = "article_tags"
	propArticleDate     = "article_date"
	propArticleExcerpt  = "article_excerpt"
)

// Project database properties
const (
	propProjectTitle        = "project_title"
	propProjectDescription  = "project_description"
	propProjectStatus       = "project_status"
	propProjectTechnologies = "project_technologies"
	propProjectDemoURL      = "project_demo_url"
	propProjectGithubURL    = "project_github_url"
	propProjectStartDate    = "project_start_date"
)

// Source is an api.ContentSource backed by two Notion databases
type Source struct {
	client     *Client
	articlesDB string
	projectsDB string
	now        func() time.Time
}

// NewSource creates a Source reading articles and projects from the given databases
func NewSource(client *Client, articlesDB, projectsDB string) *Source {
	return &Source{client: client, articlesDB: articlesDB, projectsDB: projectsDB, now: time.Now}
}

// Articles returns the published articles, newest first. Archived and trashed pages are skipped.
func (s *Source) Articles(ctx context.Context) ([]*api.Article, error) {
	if s.articlesDB == "" {
		return nil, fmt.Errorf("articles database is not configured")
	}

	pages, err := s.client.QueryDatabase(ctx, s.articlesDB)
	if err != nil {
		return nil, fmt.Errorf("failed to query articles: %w", err)
	}

	articles := make([]*api.Article, 0, len(pages))
	for _, page := range pages {
		if page.Archived || page.InTrash {
			continue
		}
		articles = append(articles, s.article(page))
	}
	api.SortArticles(articles)
	return articles, nil
}

func (s *Source) article(page Page) *api.Article {
	props := page.Properties

	title := props[propArticleTitle].Text()
	if title == "" {
		title = "Untitled"
	}

	published := props[propArticleDate].DateStart()
	if published == "" {
		published = s.now().Format(api.DateLayout)
	}

	return &api.Article{
		ID:          page.ID,
		Title:       title,
		Summary:     props[propArticleExcerpt].Text(),
		Category:    api.ParseCategory(props[propArticleCategory].SelectName()),
		PublishedAt: published,
		Tags:        props[propArticleTags].Names(),
		Thumbnail:   page.Cover.URL(),
	}
}

// Projects returns the projects, newest first
func (s *Source) Projects(ctx context.Context) ([]*api.Project, error) {
	if s.projectsDB == "" {
		return nil, fmt.Errorf("projects database is not configured")
	}

	pages, err := s.client.QueryDatabase(ctx, s.projectsDB)
	if err != nil {
		return nil, fmt.Errorf("failed to query projects: %w", err)
	}

	projects := make([]*api.Project, 0, len(pages))
	for _, page := range pages {
		projects = append(projects, project(page))
	}
	api.SortProjects(projects)
	return projects, nil
}

func project(page Page) *api.Project {
	props := page.Properties

	title := props[propProjectTitle].Text()
	if title == "" {
		title = "Untitled Project"
	}

	description := props[propProjectDescription].Text()
	if description == "" {
		description = "No description available"
	}

	created := props[propProjectStartDate].DateStart()
	if created == "" {
		created = page.CreatedTime
	}

	return &api.Project{
		ID:          page.ID,
		Title:       title,
		Description: description,
		TechStack:   props[propProjectTechnologies].Names(),
		LiveURL:     props[propProjectDemoURL].URLValue(),
		GithubURL:   props[propProjectGithubURL].URLValue(),
		CreatedAt:   created,
		Status:      api.ParseProjectStatus(props[propProjectStatus].SelectName()),
	}
}
