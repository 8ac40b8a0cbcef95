package cli

import "strings"

type messages struct {
	CountryPrompt  string
	CategoryPrompt string
	TotalResults   string
	ArticleCount   string

	// article block labels, in print order
	No          string
	Title       string
	Description string
	URL         string
	ImageURL    string
	Author      string
	PublishedAt string
	Source      string
}

var catalog = map[string]messages{
	"en": {
		CountryPrompt:  "Select a country >>>",
		CategoryPrompt: "Select a category >>>",
		TotalResults:   "Total Results",
		ArticleCount:   "Count of articles",
		No:             "No",
		Title:          "Title",
		Description:    "Description",
		URL:            "URL",
		ImageURL:       "Image URL",
		Author:         "Author",
		PublishedAt:    "Published At",
		Source:         "Source",
	},
	"ko": {
		CountryPrompt:  "나라를 선택하세요 >>>",
		CategoryPrompt: "카테고리를 선택하세요 >>>",
		TotalResults:   "전체 결과",
		ArticleCount:   "기사 수",
		No:             "번호",
		Title:          "제목",
		Description:    "설명",
		URL:            "URL",
		ImageURL:       "이미지 URL",
		Author:         "작성자",
		PublishedAt:    "게시일",
		Source:         "출처",
	},
}

// messagesFor falls back to English for unknown locales.
func messagesFor(locale string) messages {
	if m, ok := catalog[strings.ToLower(locale)]; ok {
		return m
	}
	return catalog["en"]
}
