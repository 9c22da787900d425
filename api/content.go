package api

import "context"

//ContentSource provides the articles and projects shown by the site. Both methods return items newest first.
type ContentSource interface {
	Articles(ctx context.Context) ([]*Article, error)
	Projects(ctx context.Context) ([]*Project, error)
}

//ReadArticlesByCategory returns the articles of src grouped by category
func ReadArticlesByCategory(ctx context.Context, src ContentSource) (map[ArticleCategory][]*Article, error) {
	articles, err := src.Articles(ctx)
	if err != nil {
		return nil, err
	}
	return GroupByCategory(articles), nil
}

//ReadCategories returns the categories used by the articles of src
func ReadCategories(ctx context.Context, src ContentSource) ([]ArticleCategory, error) {
	articles, err := src.Articles(ctx)
	if err != nil {
		return nil, err
	}
	return UsedCategories(articles), nil
}

//ReadFeaturedProjects returns the featured projects of src
func ReadFeaturedProjects(ctx context.Context, src ContentSource) ([]*Project, error) {
	projects, err := src.Projects(ctx)
	if err != nil {
		return nil, err
	}
	return Featured(projects), nil
}
