// Package article downloads web pages and extracts their readable text.
package article

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"clover/internal/upstream"

	"github.com/PuerkitoBio/goquery"
)

const (
	// MaxPageSize bounds a downloaded page.
	MaxPageSize = 5 << 20
	// MaxTextLength bounds the text handed to the rewriter.
	MaxTextLength = 20000
)

var ErrNoContent = errors.New("no readable content found")

type Article struct {
	Title string
	Text  string
}

type Extractor struct {
	hc *http.Client
}

// NewExtractor uses hc for downloads, which should refuse private targets.
func NewExtractor(hc *http.Client) *Extractor {
	return &Extractor{hc: hc}
}

func (e *Extractor) Fetch(ctx context.Context, url string) (*Article, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("constructing page request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; CloverBot/1.0)")
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	res, err := e.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching page: %w", err)
	}
	defer res.Body.Close()

	if err := upstream.CheckResponse("page", res); err != nil {
		return nil, err
	}

	return Extract(io.LimitReader(res.Body, MaxPageSize))
}

// contentSelectors are tried in order; the first with enough text wins.
var contentSelectors = []string{"article", "main", "[role=main]", ".post-content", ".entry-content", "#content", "body"}

const minContentLength = 200

// Extract parses HTML and returns the title and the main text.
func Extract(r io.Reader) (*Article, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing page: %w", err)
	}

	doc.Find("script, style, noscript, nav, header, footer, aside, form, iframe, svg").Remove()

	title := strings.TrimSpace(doc.Find("meta[property='og:title']").AttrOr("content", ""))
	if title == "" {
		title = strings.TrimSpace(doc.Find("h1").First().Text())
	}
	if title == "" {
		title = strings.TrimSpace(doc.Find("title").First().Text())
	}

	var text string
	for _, sel := range contentSelectors {
		candidate := blockText(doc.Find(sel).First())
		if len(candidate) >= minContentLength || (sel == "body" && candidate != "") {
			text = candidate
			break
		}
	}
	if text == "" {
		return nil, ErrNoContent
	}

	if len(text) > MaxTextLength {
		text = truncate(text, MaxTextLength)
	}

	return &Article{Title: title, Text: text}, nil
}

// blockText joins headings, paragraphs and list items one per line.
func blockText(s *goquery.Selection) string {
	var lines []string
	s.Find("h1, h2, h3, h4, p, li, blockquote, pre").Each(func(_ int, b *goquery.Selection) {
		if line := collapse(b.Text()); line != "" {
			lines = append(lines, line)
		}
	})
	if len(lines) == 0 {
		return collapse(s.Text())
	}
	return strings.Join(lines, "\n")
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// truncate cuts at a rune boundary no later than n bytes.
func truncate(s string, n int) string {
	for n > 0 && n < len(s) && (s[n]&0xC0) == 0x80 {
		n--
	}
	return s[:n]
}
