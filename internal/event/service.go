package event

import (
	"context"
	"log"

	"newsview/internal/article"
)

type Publisher interface {
	PublishArticleLoaded(ctx context.Context, sel Selection, position int, a *article.Article) error
}

type Service struct {
	publisher Publisher
	logger    *log.Logger
}

func NewService(publisher Publisher, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.Default()
	}

	return &Service{
		publisher: publisher,
		logger:    logger,
	}
}

// PublishAll sends the articles of one run in order. A failed article is
// logged and skipped; only context cancellation ends the run early.
func (s *Service) PublishAll(ctx context.Context, sel Selection, articles []article.Article) (int, error) {
	published := 0

	for i := range articles {
		if err := ctx.Err(); err != nil {
			s.logger.Printf("events: stopping after %d of %d articles: %v", published, len(articles), err)
			return published, err
		}

		if err := s.publisher.PublishArticleLoaded(ctx, sel, i+1, &articles[i]); err != nil {
			s.logger.Printf("events: failed publishing article %d (%s): %v", i+1, articles[i].URL, err)
			continue
		}
		published++
	}

	s.logger.Printf("events: published %d of %d %s/%s articles", published, len(articles), sel.Country, sel.Category)
	return published, nil
}
