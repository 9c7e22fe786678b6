package fetcher

import (
	"context"
	"log"
	"sort"
	"strings"

	"github.com/mmcdole/gofeed"

	"github.com/NunoEsteves18/F1-Insights-App/internal/model"
)

// DefaultFeeds are the F1 news RSS feeds polled for headlines.
var DefaultFeeds = []string{
	"https://www.autosport.com/rss/f1/news/",
	"https://www.motorsport.com/rss/f1/news/",
	"https://www.formula1.com/content/fom-website/en/latest/all.xml",
}

// FeedClient fetches F1 news headlines from RSS feeds.
type FeedClient struct {
	parser *gofeed.Parser
	feeds  []string
}

// NewFeedClient creates a feed client. A nil feed list selects
// DefaultFeeds.
func NewFeedClient(feeds []string) *FeedClient {
	if len(feeds) == 0 {
		feeds = DefaultFeeds
	}
	return &FeedClient{
		parser: gofeed.NewParser(),
		feeds:  feeds,
	}
}

// Latest fetches all feeds and returns up to limit headlines, newest
// first. A feed that fails is logged and skipped; only when every feed
// fails is an error returned.
func (f *FeedClient) Latest(ctx context.Context, limit int) ([]model.Headline, error) {
	headlines := make([]model.Headline, 0, limit)
	var lastErr error

	for _, feedURL := range f.feeds {
		feed, err := f.parser.ParseURLWithContext(feedURL, ctx)
		if err != nil {
			log.Printf("[Feeds] RSS error for %s: %v", feedURL, err)
			lastErr = err
			continue
		}

		for _, item := range feed.Items {
			if item.Link == "" {
				continue
			}
			headlines = append(headlines, model.Headline{
				Title:     strings.TrimSpace(item.Title),
				URL:       item.Link,
				Source:    feed.Title,
				Snippet:   strings.TrimSpace(item.Description),
				Published: item.PublishedParsed,
			})
		}
	}

	if len(headlines) == 0 && lastErr != nil {
		return nil, lastErr
	}

	sort.SliceStable(headlines, func(i, j int) bool {
		pi, pj := headlines[i].Published, headlines[j].Published
		if pi == nil || pj == nil {
			return pj == nil && pi != nil
		}
		return pi.After(*pj)
	})

	if limit > 0 && len(headlines) > limit {
		headlines = headlines[:limit]
	}
	return headlines, nil
}
