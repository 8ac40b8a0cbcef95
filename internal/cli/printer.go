package cli

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"newsview/internal/article"
	"newsview/internal/config"

	"github.com/mattn/go-runewidth"
)

const (
	separator   = "---------------------------------------------"
	clearScreen = "\033[H\033[2J"
)

type printer struct {
	out        io.Writer
	msg        messages
	labelWidth int
}

// newPrinter pads labels only for catalogs with wide characters. Plain
// single-width catalogs keep the "Label : value" layout.
func newPrinter(out io.Writer, msg messages) *printer {
	p := &printer{out: out, msg: msg}
	if !hasWideLabels(msg.labels()) {
		return p
	}
	for _, l := range msg.labels() {
		if w := runewidth.StringWidth(l); w > p.labelWidth {
			p.labelWidth = w
		}
	}
	return p
}

func hasWideLabels(labels []string) bool {
	for _, l := range labels {
		if runewidth.StringWidth(l) != utf8.RuneCountInString(l) {
			return true
		}
	}
	return false
}

func (m messages) labels() []string {
	return []string{m.No, m.Title, m.Description, m.URL, m.ImageURL, m.Author, m.PublishedAt, m.Source}
}

func (p *printer) clear() {
	fmt.Fprint(p.out, clearScreen)
}

func (p *printer) languages(langs []config.Language) {
	for i, l := range langs {
		fmt.Fprintf(p.out, "%d : %s, %s\n", i+1, l.Code, l.Name)
	}
}

func (p *printer) categories(cats []string) {
	for i, c := range cats {
		fmt.Fprintf(p.out, "%d : %s\n", i+1, c)
	}
}

func (p *printer) summary(totalResults, count int) {
	fmt.Fprintf(p.out, "%s: %d\n\n", p.msg.TotalResults, totalResults)
	fmt.Fprintf(p.out, "%s: %d\n\n", p.msg.ArticleCount, count)
}

// article prints one block. With labelWidth set the labels are padded to the
// same display width so the colons line up.
func (p *printer) article(no int, a article.Article) {
	var sb strings.Builder
	sb.WriteString(separator)
	sb.WriteByte('\n')

	values := []string{
		fmt.Sprint(no),
		a.Title,
		a.Description,
		a.URL,
		a.ImageURL,
		a.Author,
		a.PublishedAt,
		a.Source.Name,
	}
	for i, label := range p.msg.labels() {
		sb.WriteString(runewidth.FillRight(label, p.labelWidth))
		sb.WriteString(" : ")
		sb.WriteString(values[i])
		sb.WriteByte('\n')
	}

	fmt.Fprint(p.out, sb.String())
}
