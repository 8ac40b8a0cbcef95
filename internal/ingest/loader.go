package ingest

import (
	"context"
	"errors"
	"fmt"
	"log"

	"newsview/internal/article"
)

const (
	DefaultArticlesPerPage = 20
	TopicCategory          = "topic" // no category filter, top headlines only
	StatusNotYet           = "not yet"
)

var ErrLoad = errors.New("unable to load news")

type FeedClient interface {
	FetchPage(ctx context.Context, pageURL string) (APIResponse, error)
}

// Loader accumulates the articles of one run. It is not safe for
// concurrent use.
type Loader struct {
	client          FeedClient
	articlesPerPage int
	maxPages        int
	logger          *log.Logger

	status       string
	totalResults int
	totalPages   int
	articles     []article.Article
}

// NewLoader returns a Loader that computes page counts from articlesPerPage.
// maxPages caps the number of requests, -1 means no cap.
func NewLoader(client FeedClient, articlesPerPage, maxPages int, logger *log.Logger) *Loader {
	if logger == nil {
		logger = log.Default()
	}

	return &Loader{
		client:          client,
		articlesPerPage: articlesPerPage,
		maxPages:        maxPages,
		logger:          logger,
		status:          StatusNotYet,
	}
}

// LoadAll fetches the first page, derives the page count from its
// totalResults and then fetches pages 2..n in order. The first failure
// stops the run; pages loaded before it stay available via Articles.
func (l *Loader) LoadAll(ctx context.Context, baseURL, apiKey, lang, category string) error {
	firstURL := BuildURL(baseURL, apiKey, lang, category)

	if err := l.loadPage(ctx, firstURL, 1); err != nil {
		return err
	}

	if pages, ok := TotalPages(l.totalResults, l.articlesPerPage); ok {
		l.totalPages = pages
	}

	for page := 2; page <= l.totalPages; page++ {
		if l.maxPages >= 0 && page > l.maxPages {
			l.logger.Printf("reached configured page limit %d", l.maxPages)
			break
		}
		if err := l.loadPage(ctx, PageURL(firstURL, page), page); err != nil {
			return err
		}
	}

	l.logger.Printf("loaded %d articles (%d reported, %d pages)", len(l.articles), l.totalResults, l.totalPages)
	return nil
}

func (l *Loader) loadPage(ctx context.Context, pageURL string, page int) error {
	resp, err := l.client.FetchPage(ctx, pageURL)
	if err != nil {
		err = fmt.Errorf("%w: page %d: %w", ErrLoad, page, err)
		l.logger.Printf("fetch failed: %v", err)
		return err
	}

	if resp.Status != StatusOK {
		err = fmt.Errorf("%w: page %d: status %q", ErrLoad, page, resp.Status)
		if resp.Code != "" || resp.Message != "" {
			err = fmt.Errorf("%w (%s: %s)", err, resp.Code, resp.Message)
		}
		l.logger.Printf("fetch failed: %v", err)
		return err
	}

	if resp.TotalResults < 0 {
		err = fmt.Errorf("%w: page %d: negative totalResults %d", ErrLoad, page, resp.TotalResults)
		l.logger.Printf("fetch failed: %v", err)
		return err
	}

	for _, a := range resp.Articles {
		art := MapArticle(a)
		art.Page = page
		l.articles = append(l.articles, art)
	}
	l.status = resp.Status
	l.totalResults = int(resp.TotalResults)

	l.logger.Printf("page %d: %d articles", page, len(resp.Articles))
	return nil
}

// TotalPages is ceil(totalResults / perPage). ok is false when perPage is
// not positive or totalResults is negative, in which case no page count can
// be derived.
func TotalPages(totalResults, perPage int) (pages int, ok bool) {
	if perPage <= 0 || totalResults < 0 {
		return 0, false
	}
	pages = totalResults / perPage
	if totalResults%perPage != 0 {
		pages++
	}
	return pages, true
}

func (l *Loader) Articles() []article.Article {
	return l.articles
}

func (l *Loader) TotalResults() int {
	return l.totalResults
}

func (l *Loader) TotalPages() int {
	return l.totalPages
}

func (l *Loader) Status() string {
	return l.status
}
