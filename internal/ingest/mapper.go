package ingest

import (
	"strings"

	"newsview/internal/article"
)

func MapArticle(a APIArticle) article.Article {
	return article.Article{
		Title:       StripQuotes(a.Title),
		Description: StripQuotes(a.Description),
		Author:      StripQuotes(a.Author),
		URL:         deref(a.URL),
		ImageURL:    deref(a.URLToImage),
		PublishedAt: deref(a.PublishedAt),
		Source: article.Source{
			Name: deref(a.Source.Name),
		},
	}
}

// StripQuotes turns null into "" and drops every double quote, e.g.
// `He said "hi"` becomes `He said hi`.
func StripQuotes(s *string) string {
	if s == nil {
		return ""
	}
	return strings.ReplaceAll(*s, `"`, "")
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
