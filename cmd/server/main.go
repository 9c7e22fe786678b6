package main

import (
	"log"
	"net/http"

	"github.com/joho/godotenv"

	"github.com/NunoEsteves18/F1-Insights-App/config"
	"github.com/NunoEsteves18/F1-Insights-App/internal/cache"
	"github.com/NunoEsteves18/F1-Insights-App/internal/fetcher"
	"github.com/NunoEsteves18/F1-Insights-App/internal/handler"
	"github.com/NunoEsteves18/F1-Insights-App/internal/service"
)

func main() {
	// Load .env if present
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	if cfg.GoogleAPIKey == "" {
		log.Println("Warning: GOOGLE_API_KEY not configured, AI analysis will not work")
	}

	newsCache := buildCache(cfg, "news")
	calendarCache := buildCache(cfg, "calendar")

	openf1 := fetcher.NewOpenF1Client(cfg.OpenF1BaseURL)
	articles := fetcher.NewArticleClient()
	gemini := fetcher.NewGeminiClient(cfg.GoogleAPIKey)
	feeds := fetcher.NewFeedClient(nil)

	driverService := service.NewDriverService(openf1)
	newsService := service.NewNewsService(articles, gemini, newsCache)
	compareService := service.NewCompareService(driverService, gemini)
	calendarService := service.NewCalendarService(openf1, calendarCache)

	driverHandler := handler.NewDriverHandler(driverService)
	newsHandler := handler.NewNewsHandler(newsService, feeds)
	compareHandler := handler.NewCompareHandler(compareService)
	calendarHandler := handler.NewCalendarHandler(calendarService)

	mux := http.NewServeMux()
	mux.HandleFunc("/health", driverHandler.Health)
	mux.HandleFunc("/api/drivers", driverHandler.Lookup)
	mux.HandleFunc("/api/drivers/results", driverHandler.Results)
	mux.HandleFunc("/api/analyze/news/sse", newsHandler.AnalyzeSSE)
	mux.HandleFunc("/api/analyze/compare", compareHandler.Compare)
	mux.HandleFunc("/api/news/latest", newsHandler.Latest)
	mux.HandleFunc("/api/calendar", calendarHandler.Calendar)

	corsHandler := corsMiddleware(mux)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, corsHandler); err != nil {
		log.Fatal(err)
	}
}

// buildCache picks a cache backend: Postgres when DATABASE_URL is set,
// then Redis when REDIS_ADDR is set, in-memory otherwise.
func buildCache(cfg *config.Config, source string) cache.Cache {
	if cfg.DatabaseURL != "" {
		pgCache, err := cache.NewPostgresCache(cfg.DatabaseURL, source)
		if err == nil {
			log.Printf("Using PostgreSQL cache for %s", source)
			return pgCache
		}
		log.Printf("Warning: Failed to connect to PostgreSQL, falling back: %v", err)
	}

	if cfg.RedisAddr != "" {
		redisCache, err := cache.NewRedisCache(cfg.RedisAddr, source)
		if err == nil {
			log.Printf("Using Redis cache for %s", source)
			return redisCache
		}
		log.Printf("Warning: Failed to connect to Redis, falling back: %v", err)
	}

	log.Printf("Using memory cache for %s", source)
	return cache.NewMemoryCache(source)
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
