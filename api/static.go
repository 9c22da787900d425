package api

import "context"

const staticAuthor = "Yugyeong Na"

var staticArticles = []Article{
	{ID: "1", Title: "Building Scalable React Applications", Summary: "Learn best practices for creating maintainable and scalable React applications with modern patterns.",
		Category: CategoryWebDevelopment, PublishedAt: "2024-01-15", ReadTime: 8, Tags: []string{"React", "JavaScript", "Architecture"}},
	{ID: "2", Title: "Next.js 14 App Router Deep Dive", Summary: "Comprehensive guide to the new App Router in Next.js 14 with practical examples.",
		Category: CategoryWebDevelopment, PublishedAt: "2024-01-20", ReadTime: 12, Tags: []string{"Next.js", "React", "Routing"}},
	{ID: "3", Title: "TypeScript Advanced Patterns", Summary: "Master advanced TypeScript patterns for better code quality and developer experience.",
		Category: CategoryWebDevelopment, PublishedAt: "2024-02-01", ReadTime: 10, Tags: []string{"TypeScript", "JavaScript", "Patterns"}},
	{ID: "4", Title: "Modern UI/UX Design Principles", Summary: "Essential design principles for creating beautiful and functional user interfaces.",
		Category: CategoryDesign, PublishedAt: "2024-01-10", ReadTime: 6, Tags: []string{"UI", "UX", "Design"}},
	{ID: "5", Title: "Color Theory in Web Design", Summary: "Understanding color psychology and creating effective color schemes for web applications.",
		Category: CategoryDesign, PublishedAt: "2024-01-25", ReadTime: 5, Tags: []string{"Color", "Design", "Psychology"}},
	{ID: "6", Title: "The Future of Web Technologies", Summary: "Exploring emerging web technologies and their impact on modern development.",
		Category: CategoryTechnology, PublishedAt: "2024-02-05", ReadTime: 7, Tags: []string{"Web", "Technology", "Future"}},
	{ID: "7", Title: "AI in Frontend Development", Summary: "How artificial intelligence is transforming the way we build user interfaces.",
		Category: CategoryTechnology, PublishedAt: "2024-02-10", ReadTime: 9, Tags: []string{"AI", "Frontend", "Development"}},
	{ID: "8", Title: "From Junior to Senior Developer", Summary: "A roadmap for growing your skills and advancing your career in software development.",
		Category: CategoryCareer, PublishedAt: "2024-01-30", ReadTime: 11, Tags: []string{"Career", "Growth", "Development"}},
	{ID: "9", Title: "Building Your Developer Portfolio", Summary: "Tips for showcasing your work and standing out to employers.",
		Category: CategoryCareer, PublishedAt: "2024-02-08", ReadTime: 6, Tags: []string{"Portfolio", "Career", "Tips"}},
}

var staticProjects = []Project{
	{ID: "p1", Title: "Portfolio Chat", Description: "Conversational portfolio site with a guided chat menu and contact form.",
		TechStack: []string{"Next.js", "TypeScript", "Tailwind CSS"}, GithubURL: "https://github.com/60cod", CreatedAt: "2025-08-01", Status: StatusInProgress},
	{ID: "p2", Title: "Data Visualization Dashboard", Description: "Processing and charting APIs for operational data.",
		TechStack: []string{"Java", "Spring", "React"}, CreatedAt: "2024-05-10", Status: StatusCompleted},
	{ID: "p3", Title: "CI/CD Pipeline Templates", Description: "Reusable deployment pipelines for AWS environments.",
		TechStack: []string{"AWS", "GitHub Actions", "Docker"}, CreatedAt: "2025-09-15", Status: StatusActive},
	{ID: "p4", Title: "Legacy Report Generator", Description: "Batch reporting service replaced by the dashboard.",
		TechStack: []string{"Java", "Oracle"}, CreatedAt: "2023-03-02", Status: StatusArchived},
	{ID: "p5", Title: "Study Notes", Description: "Algorithm and system design notes.",
		TechStack: []string{"Markdown"}, GithubURL: "https://github.com/60cod", CreatedAt: "2024-11-20", Status: StatusActive},
}

//StaticSource is a ContentSource serving built-in sample content
type StaticSource struct{}

//Articles returns copies of the sample articles, newest first
func (StaticSource) Articles(ctx context.Context) ([]*Article, error) {
	articles := make([]*Article, len(staticArticles))
	for i := range staticArticles {
		a := staticArticles[i]
		a.Tags = append([]string(nil), a.Tags...)
		a.Author = staticAuthor
		articles[i] = &a
	}
	SortArticles(articles)
	return articles, nil
}

//Projects returns copies of the sample projects, newest first
func (StaticSource) Projects(ctx context.Context) ([]*Project, error) {
	projects := make([]*Project, len(staticProjects))
	for i := range staticProjects {
		p := staticProjects[i]
		p.TechStack = append([]string(nil), p.TechStack...)
		projects[i] = &p
	}
	SortProjects(projects)
	return projects, nil
}
