package handler

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/NunoEsteves18/F1-Insights-App/internal/fetcher"
	"github.com/NunoEsteves18/F1-Insights-App/internal/service"
	"github.com/NunoEsteves18/F1-Insights-App/internal/sse"
)

// headlineLimit caps GET /api/news/latest responses.
const headlineLimit = 20

// NewsHandler serves news analysis and headline requests.
type NewsHandler struct {
	service *service.NewsService
	feeds   fetcher.FeedFetcher
}

// NewNewsHandler creates a news handler.
func NewNewsHandler(svc *service.NewsService, feeds fetcher.FeedFetcher) *NewsHandler {
	return &NewsHandler{service: svc, feeds: feeds}
}

// AnalyzeSSE handles POST /api/analyze/news/sse.
// Body: {"query": "<article url or raw text>"}
func (h *NewsHandler) AnalyzeSSE(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if req.Query == "" {
		http.Error(w, "query is required", http.StatusBadRequest)
		return
	}

	writer, err := sse.NewWriter(w)
	if err != nil {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}
	defer writer.StopHeartbeat()

	log.Printf("Starting news SSE analysis, query length: %d", len(req.Query))

	if err := h.service.Analyze(r.Context(), req.Query, writer); err != nil {
		log.Printf("News analysis error: %v", err)
	}

	log.Printf("News SSE analysis completed")
}

// Latest handles GET /api/news/latest.
func (h *NewsHandler) Latest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	headlines, err := h.feeds.Latest(r.Context(), headlineLimit)
	if err != nil {
		log.Printf("Headlines error: %v", err)
		writeError(w, http.StatusBadGateway, "failed to fetch headlines: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, headlines)
}
