package service

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"log"
	"net/url"
	"strings"
	"time"

	"github.com/NunoEsteves18/F1-Insights-App/internal/cache"
	"github.com/NunoEsteves18/F1-Insights-App/internal/fetcher"
	"github.com/NunoEsteves18/F1-Insights-App/internal/model"
	"github.com/NunoEsteves18/F1-Insights-App/internal/sse"
)

// NewsCacheTTL is how long a news analysis stays cached.
const NewsCacheTTL = 24 * time.Hour

// NewsService implements the news analysis pipeline: fetch, extract,
// AI analysis, streamed as cards over SSE.
type NewsService struct {
	articles fetcher.ArticleFetcher
	llm      fetcher.LLMClient
	cache    cache.Cache
}

// NewNewsService creates a news service.
func NewNewsService(articles fetcher.ArticleFetcher, llm fetcher.LLMClient, c cache.Cache) *NewsService {
	return &NewsService{
		articles: articles,
		llm:      llm,
		cache:    c,
	}
}

// isArticleURL reports whether the query is a URL rather than raw
// article text.
func isArticleURL(query string) bool {
	if !strings.HasPrefix(query, "http://") && !strings.HasPrefix(query, "https://") {
		return false
	}
	u, err := url.Parse(query)
	return err == nil && u.Host != ""
}

// articleCacheKey derives a stable cache key from an article URL.
func articleCacheKey(rawURL string) string {
	sum := sha1.Sum([]byte(rawURL))
	return hex.EncodeToString(sum[:])
}

// Analyze runs the pipeline for a query, which is either an article
// URL or raw article text. Results for URLs are cached; raw text is
// analyzed fresh every time.
func (s *NewsService) Analyze(ctx context.Context, query string, w *sse.Writer) error {
	log.Printf("[News Service] Analyze started, query length: %d", len(query))

	w.SetQuery(query)
	w.SetAction(0, "Starting analysis...")

	var article *model.Article

	if isArticleURL(query) {
		cacheKey := articleCacheKey(query)

		if s.cache != nil {
			cached, err := s.cache.Get(ctx, cacheKey)
			if err == nil && cached != nil {
				log.Printf("[News Service] Cache HIT for %s", query)
				w.SetAction(5, "Loading from cache...")
				return s.sendCachedCards(w, cached.Data)
			}
			log.Printf("[News Service] Cache MISS for %s", query)
		}

		w.SetAction(10, "Fetching article...")

		fetched, err := s.articles.Fetch(ctx, query)
		if err != nil {
			log.Printf("[News Service] ERROR: Failed to fetch article: %v", err)
			w.SetError(model.CardArticle, err.Error(), "Failed to fetch article")
			w.SendGlobalError("Failed to fetch article: " + err.Error())
			return err
		}
		article = fetched

		w.SetCard(model.CardArticle, model.ArticleCard{
			URL:       article.URL,
			Title:     article.Title,
			SiteName:  article.SiteName,
			Excerpt:   article.Excerpt,
			WordCount: len(strings.Fields(article.Text)),
		}, "Article extracted")
	} else {
		// Raw text pasted by the user
		article = &model.Article{
			Text:   strings.TrimSpace(query),
			Length: len(strings.TrimSpace(query)),
		}
		if article.Text == "" {
			w.SendGlobalError("Article text is empty")
			return errors.New("article text is empty")
		}
		w.SetCard(model.CardArticle, model.ArticleCard{
			WordCount: len(strings.Fields(article.Text)),
		}, "Article text received")
	}

	w.SetAction(40, "AI analyzing article...")

	result, err := s.llm.AnalyzeArticle(ctx, article)
	if err != nil {
		log.Printf("[News Service] ERROR: Analysis failed: %v", err)
		action := "Analysis failed"
		if errors.Is(err, fetcher.ErrMissingAPIKey) {
			action = "AI not configured"
		}
		w.SetError(model.CardSummary, err.Error(), action)
		w.SetError(model.CardSentiment, err.Error(), action)
		w.SetError(model.CardEntities, err.Error(), action)
		w.SendGlobalError(err.Error())
		return err
	}

	w.SetCard(model.CardSummary, model.SummaryCard{Summary: result.Summary}, "Summary complete")
	w.SetCard(model.CardSentiment, model.SentimentCard{Sentiment: result.Sentiment}, "Sentiment complete")

	entities := result.Entities
	if entities == nil {
		entities = []model.Entity{}
	}
	w.SetCard(model.CardEntities, model.EntitiesCard{Entities: entities}, "Entities complete")

	if s.cache != nil && article.URL != "" {
		if cacheData := w.GetAllCardsData(); cacheData != nil {
			if err := s.cache.Set(ctx, articleCacheKey(article.URL), cacheData, NewsCacheTTL); err != nil {
				log.Printf("[News Service] Cache write failed: %v", err)
			}
		}
	}

	w.Done()
	return nil
}

// sendCachedCards replays cached card data onto the stream.
func (s *NewsService) sendCachedCards(w *sse.Writer, data map[string]interface{}) error {
	progress := 10
	for _, cardType := range model.AllCards {
		cardData, ok := data[string(cardType)]
		if !ok {
			continue
		}
		w.SetCard(cardType, cardData, "Loaded from cache")
		progress += 20
		if progress > 95 {
			progress = 95
		}
		w.SetAction(progress, "Loading cached data...")
	}

	w.Done()
	return nil
}
