// Package cli drives the interactive news reader: pick a country and a
// category, load every page and print the articles.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"

	"newsview/internal/config"
	"newsview/internal/event"
	"newsview/internal/ingest"
)

type Options struct {
	In         io.Reader
	Out        io.Writer
	HTTPClient *http.Client
	ConfigPath string

	ArticlesPerPage int
	MaxPages        int // -1 for no cap
	Locale          string

	// Publisher receives every loaded article after printing. Optional.
	Publisher event.Publisher

	Logger *log.Logger

	// FeedClient replaces the HTTP-backed client when set.
	FeedClient ingest.FeedClient
}

// Run executes one interactive session. It returns the first error; the
// caller decides how to exit.
func Run(ctx context.Context, opts Options) error {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	cfg, err := config.Load(opts.ConfigPath, logger)
	if err != nil {
		return err
	}

	msg := messagesFor(opts.Locale)
	p := newPrinter(opts.Out, msg)
	in := bufio.NewScanner(opts.In)

	fmt.Fprintln(opts.Out, cfg)
	p.clear()

	p.languages(cfg.GetLanguages())
	sel, err := readSelection(in, opts.Out, msg.CountryPrompt)
	if err != nil {
		logger.Printf("country selection: %v", err)
		return err
	}
	lang, err := cfg.LangCode(sel - 1)
	if err != nil {
		logger.Printf("country selection: %v", err)
		return err
	}

	fmt.Fprintln(opts.Out)

	p.categories(cfg.GetCategories())
	sel, err = readSelection(in, opts.Out, msg.CategoryPrompt)
	if err != nil {
		logger.Printf("category selection: %v", err)
		return err
	}
	category, err := cfg.Category(sel - 1)
	if err != nil {
		logger.Printf("category selection: %v", err)
		return err
	}

	p.clear()

	feed := opts.FeedClient
	if feed == nil {
		feed = ingest.NewNewsAPIClient(opts.HTTPClient)
	}
	loader := ingest.NewLoader(feed, opts.ArticlesPerPage, opts.MaxPages, logger)
	if err := loader.LoadAll(ctx, cfg.BaseURL, cfg.APIKey, lang, category); err != nil {
		return err
	}

	articles := loader.Articles()
	p.summary(loader.TotalResults(), len(articles))
	for i, a := range articles {
		p.article(i+1, a)
	}

	if opts.Publisher != nil {
		// fan-out is best effort, a broker problem must not fail the read
		sel := event.Selection{Country: lang, Category: category, TotalResults: loader.TotalResults()}
		_, _ = event.NewService(opts.Publisher, logger).PublishAll(ctx, sel, articles)
	}

	return nil
}

func readSelection(in *bufio.Scanner, out io.Writer, prompt string) (int, error) {
	fmt.Fprint(out, prompt)

	if !in.Scan() {
		if err := in.Err(); err != nil {
			return 0, fmt.Errorf("%w: %w", config.ErrSelection, err)
		}
		return 0, fmt.Errorf("%w: %w", config.ErrSelection, io.ErrUnexpectedEOF)
	}

	text := strings.TrimSpace(in.Text())
	n, err := strconv.Atoi(text)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", config.ErrSelection, text)
	}
	return n, nil
}
