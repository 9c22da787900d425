package api

import (
	"sort"
	"strings"
)

//ProjectStatus is the development status of a Project
type ProjectStatus string

//ProjectStatuses
const (
	StatusActive     ProjectStatus = "Active"
	StatusCompleted  ProjectStatus = "Completed"
	StatusInProgress ProjectStatus = "In Progress"
	StatusArchived   ProjectStatus = "Archived"
)

//ParseProjectStatus matches name case-insensitively, defaulting to StatusActive
func ParseProjectStatus(name string) ProjectStatus {
	for _, s := range []ProjectStatus{StatusActive, StatusCompleted, StatusInProgress, StatusArchived} {
		if strings.EqualFold(string(s), strings.TrimSpace(name)) {
			return s
		}
	}
	return StatusActive
}

//FeaturedCount is the number of projects returned by FeaturedProjects
const FeaturedCount = 4

//Project represents a portfolio project. CreatedAt is a date or RFC3339 timestamp.
type Project struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Thumbnail   string        `json:"thumbnail"`
	TechStack   []string      `json:"tech_stack"`
	LiveURL     string        `json:"live_url,omitempty"`
	GithubURL   string        `json:"github_url,omitempty"`
	CreatedAt   string        `json:"created_at"`
	Status      ProjectStatus `json:"status"`
}

//SortProjects sorts projects newest first. Projects with the same date keep their order.
func SortProjects(projects []*Project) {
	sort.SliceStable(projects, func(i, j int) bool {
		return parseDate(projects[i].CreatedAt).After(parseDate(projects[j].CreatedAt))
	})
}

//Featured returns the first FeaturedCount projects
func Featured(projects []*Project) []*Project {
	if len(projects) > FeaturedCount {
		return projects[:FeaturedCount]
	}
	return projects
}
