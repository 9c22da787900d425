package api

import (
	"sort"
	"time"
)

//ArticleCategory is the category an Article is filed under
type ArticleCategory string

//ArticleCategories
const (
	CategoryWebDevelopment ArticleCategory = "Web Development"
	CategoryDesign         ArticleCategory = "Design"
	CategoryTechnology     ArticleCategory = "Technology"
	CategoryCareer         ArticleCategory = "Career"
	CategoryTutorial       ArticleCategory = "Tutorial"
	CategoryOpinion        ArticleCategory = "Opinion"
)

//Categories lists every ArticleCategory in display order
var Categories = []ArticleCategory{
	CategoryWebDevelopment,
	CategoryDesign,
	CategoryTechnology,
	CategoryCareer,
	CategoryTutorial,
	CategoryOpinion,
}

//DefaultCategory is used for articles with a missing or unknown category
const DefaultCategory = CategoryTechnology

//ParseCategory returns the ArticleCategory with the given name, or DefaultCategory if there isn't one
func ParseCategory(name string) ArticleCategory {
	for _, c := range Categories {
		if string(c) == name {
			return c
		}
	}
	return DefaultCategory
}

//Article represents a published article. PublishedAt is a date (YYYY-MM-DD).
type Article struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Summary     string          `json:"summary"`
	Category    ArticleCategory `json:"category"`
	PublishedAt string          `json:"published_at"`
	ReadTime    int             `json:"read_time,omitempty"`
	Tags        []string        `json:"tags"`
	Thumbnail   string          `json:"thumbnail"`
	Author      string          `json:"author,omitempty"`
}

//DateLayout is the layout of Article.PublishedAt
const DateLayout = "2006-01-02"

//parseDate parses a date or timestamp, returning the zero time if it can't be parsed
func parseDate(s string) time.Time {
	for _, layout := range []string{DateLayout, time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

//SortArticles sorts articles newest first. Articles with the same date keep their order.
func SortArticles(articles []*Article) {
	sort.SliceStable(articles, func(i, j int) bool {
		return parseDate(articles[i].PublishedAt).After(parseDate(articles[j].PublishedAt))
	})
}

//GroupByCategory returns articles keyed by category. Every category is present, even if empty.
func GroupByCategory(articles []*Article) map[ArticleCategory][]*Article {
	groups := make(map[ArticleCategory][]*Article, len(Categories))
	for _, c := range Categories {
		groups[c] = []*Article{}
	}
	for _, a := range articles {
		groups[a.Category] = append(groups[a.Category], a)
	}
	return groups
}

//UsedCategories returns the distinct categories of articles in first-seen order
func UsedCategories(articles []*Article) []ArticleCategory {
	seen := make(map[ArticleCategory]bool)
	categories := []ArticleCategory{}
	for _, a := range articles {
		if !seen[a.Category] {
			seen[a.Category] = true
			categories = append(categories, a.Category)
		}
	}
	return categories
}
