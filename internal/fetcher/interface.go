package fetcher

import (
	"context"

	"github.com/NunoEsteves18/F1-Insights-App/internal/model"
)

// DriverAPI is the OpenF1 surface the services consume.
type DriverAPI interface {
	Drivers(ctx context.Context, fullName string) ([]model.Driver, error)
	Results(ctx context.Context, driverNumber, year int) ([]model.DriverResult, error)
	Session(ctx context.Context, sessionKey int) (*model.Session, error)
	RaceSessions(ctx context.Context) ([]model.Session, error)
}

// ArticleFetcher fetches a news page and extracts its article text.
type ArticleFetcher interface {
	Fetch(ctx context.Context, url string) (*model.Article, error)
}

// LLMClient is the generative-AI surface (Gemini).
type LLMClient interface {
	AnalyzeArticle(ctx context.Context, article *model.Article) (*model.AnalysisResult, error)
	CompareDrivers(ctx context.Context, data1, data2 string) (string, error)
}

// FeedFetcher returns the latest F1 news headlines.
type FeedFetcher interface {
	Latest(ctx context.Context, limit int) ([]model.Headline, error)
}
