package event

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"newsview/internal/article"

	amqp "github.com/rabbitmq/amqp091-go"
)

const ArticleLoadedEvent = "article.loaded"

// Selection is what the reader picked for the run that loaded the articles.
type Selection struct {
	Country      string `json:"country"`
	Category     string `json:"category"`
	TotalResults int    `json:"totalResults"`
}

// ArticleLoadedMessage is the JSON body of every published article.
// Position is the article's 1-based place in the run.
type ArticleLoadedMessage struct {
	Event     string          `json:"event"`
	Timestamp time.Time       `json:"timestamp"`
	Country   string          `json:"country"`
	Category  string          `json:"category"`
	Page      int             `json:"page"`
	Position  int             `json:"position"`
	Total     int             `json:"totalResults"`
	Article   article.Article `json:"article"`
}

func NewArticleLoadedMessage(sel Selection, position int, a article.Article, now time.Time) ArticleLoadedMessage {
	return ArticleLoadedMessage{
		Event:     ArticleLoadedEvent,
		Timestamp: now.UTC(),
		Country:   sel.Country,
		Category:  sel.Category,
		Page:      a.Page,
		Position:  position,
		Total:     sel.TotalResults,
		Article:   a,
	}
}

// RoutingKey appends the category as the last topic word, so consumers can
// bind "article.loaded.business" or "article.loaded.#". Dots and spaces in
// the category would split the word and become dashes.
func RoutingKey(prefix, category string) string {
	word := strings.ToLower(strings.TrimSpace(category))
	word = strings.NewReplacer(".", "-", " ", "-", "*", "-", "#", "-").Replace(word)
	if word == "" {
		return prefix
	}
	return prefix + "." + word
}

// PublishingChannel is the part of *amqp.Channel the publisher needs.
type PublishingChannel interface {
	PublishWithContext(
		ctx context.Context,
		exchange, key string,
		mandatory, immediate bool,
		msg amqp.Publishing,
	) error
	Close() error
}

type RabbitPublisher struct {
	conn      *amqp.Connection
	ch        PublishingChannel
	exchange  string
	keyPrefix string
	logger    *log.Logger
	now       func() time.Time
}

// NewRabbitPublisher dials uri and declares a durable topic exchange.
// keyPrefix is extended with the category of each run, see RoutingKey.
func NewRabbitPublisher(uri, exchange, keyPrefix string, logger *log.Logger) (*RabbitPublisher, error) {
	if logger == nil {
		logger = log.Default()
	}

	conn, err := amqp.Dial(uri)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq connection failed: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("rabbitmq channel creation failed: %w", err)
	}

	if err := ch.ExchangeDeclare(exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("exchange declare %q failed: %w", exchange, err)
	}

	logger.Printf("events: publishing to exchange %q with keys %s.<category>", exchange, keyPrefix)
	return newRabbitPublisher(conn, ch, exchange, keyPrefix, logger), nil
}

func newRabbitPublisher(conn *amqp.Connection, ch PublishingChannel, exchange, keyPrefix string, logger *log.Logger) *RabbitPublisher {
	return &RabbitPublisher{
		conn:      conn,
		ch:        ch,
		exchange:  exchange,
		keyPrefix: keyPrefix,
		logger:    logger,
		now:       time.Now,
	}
}

func (p *RabbitPublisher) Close() {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
}

// PublishArticleLoaded sends one article of the run described by sel. The
// selection is also copied into the headers for header-based filtering.
func (p *RabbitPublisher) PublishArticleLoaded(ctx context.Context, sel Selection, position int, a *article.Article) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	now := p.now()
	body, err := json.Marshal(NewArticleLoadedMessage(sel, position, *a, now))
	if err != nil {
		return err
	}

	return p.ch.PublishWithContext(
		ctx,
		p.exchange,
		RoutingKey(p.keyPrefix, sel.Category),
		false,
		false,
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			Type:         ArticleLoadedEvent,
			Timestamp:    now.UTC(),
			Headers: amqp.Table{
				"country":  sel.Country,
				"category": sel.Category,
				"page":     int32(a.Page),
			},
			Body: body,
		},
	)
}
