package article

// Article is one normalized news item. Title, Description and Author never
// contain double quotes.
type Article struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Author      string `json:"author"`
	URL         string `json:"url"`
	ImageURL    string `json:"imageUrl"`
	PublishedAt string `json:"publishedAt"`
	Source      Source `json:"source"`

	// Page is the 1-based result page the article was fetched from.
	Page int `json:"page"`
}

type Source struct {
	Name string `json:"name"`
}
