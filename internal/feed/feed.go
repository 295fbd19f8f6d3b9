// Package feed fetches RSS and Atom feeds.
package feed

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"
)

// MaxItems caps how many entries a fetch returns.
const MaxItems = 20

type Info struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
}

type Item struct {
	Title       string `json:"title"`
	Link        string `json:"link"`
	Description string `json:"description"`
	PubDate     string `json:"pubDate"`
	Author      string `json:"author"`
}

type Feed struct {
	Feed  Info   `json:"feed"`
	Items []Item `json:"items"`
}

type Fetcher struct {
	parser *gofeed.Parser
}

// NewFetcher uses hc for downloads, which should refuse private targets.
func NewFetcher(hc *http.Client) *Fetcher {
	p := gofeed.NewParser()
	p.Client = hc
	return &Fetcher{parser: p}
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (*Feed, error) {
	parsed, err := f.parser.ParseURLWithContext(url, ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching feed: %w", err)
	}
	return convert(parsed, url), nil
}

func convert(parsed *gofeed.Feed, url string) *Feed {
	out := &Feed{
		Feed: Info{
			Title:       parsed.Title,
			Description: parsed.Description,
			URL:         url,
		},
		Items: []Item{},
	}
	if parsed.Link != "" {
		out.Feed.URL = parsed.Link
	}

	for i, it := range parsed.Items {
		if i == MaxItems {
			break
		}

		item := Item{
			Title:       it.Title,
			Link:        it.Link,
			Description: it.Description,
			PubDate:     it.Published,
		}
		if it.PublishedParsed != nil {
			item.PubDate = it.PublishedParsed.UTC().Format(time.RFC3339)
		}
		if it.Description == "" {
			item.Description = it.Content
		}
		if it.Author != nil {
			item.Author = it.Author.Name
		} else if len(it.Authors) > 0 && it.Authors[0] != nil {
			item.Author = it.Authors[0].Name
		}

		out.Items = append(out.Items, item)
	}

	return out
}
