package fetcher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/NunoEsteves18/F1-Insights-App/internal/model"
)

// ErrMissingAPIKey is returned when GOOGLE_API_KEY is not configured.
// The check happens before any network call so the rest of the service
// keeps working without a key.
var ErrMissingAPIKey = errors.New("GOOGLE_API_KEY is not configured")

// geminiModel matches the model the original application used.
const geminiModel = "gemini-1.0-pro"

// maxArticleChars caps the article text forwarded to the model.
const maxArticleChars = 24000

// GeminiClient calls the Google generative-AI API.
type GeminiClient struct {
	apiKey    string
	modelName string

	mu     sync.Mutex
	client *genai.Client
}

// NewGeminiClient creates a Gemini client. The underlying connection is
// established lazily on first use.
func NewGeminiClient(apiKey string) *GeminiClient {
	return &GeminiClient{
		apiKey:    apiKey,
		modelName: geminiModel,
	}
}

// Close releases the underlying client, if one was created.
func (g *GeminiClient) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.client == nil {
		return nil
	}
	err := g.client.Close()
	g.client = nil
	return err
}

func (g *GeminiClient) ensureClient(ctx context.Context) (*genai.Client, error) {
	if g.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.client != nil {
		return g.client, nil
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(g.apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	g.client = client
	return client, nil
}

func (g *GeminiClient) generate(ctx context.Context, prompt string) (string, error) {
	client, err := g.ensureClient(ctx)
	if err != nil {
		return "", err
	}

	resp, err := client.GenerativeModel(g.modelName).GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}

	var sb strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				sb.WriteString(string(text))
			}
		}
	}

	out := strings.TrimSpace(sb.String())
	if out == "" {
		return "", fmt.Errorf("no response from model")
	}
	return out, nil
}

const analysisPrompt = `You are a Formula 1 news editor. Analyze the following news article.

Return JSON only, no other text:
{
  "summary": "concise 3-4 sentence summary of the article",
  "sentiment": "positive" | "neutral" | "negative",
  "entities": [{"name": "entity name", "type": "driver|team|circuit|race|person|organization|other"}]
}

Article title: %s

Article text:
%s`

// AnalyzeArticle asks Gemini for a summary, sentiment label and named
// entities for an article.
func (g *GeminiClient) AnalyzeArticle(ctx context.Context, article *model.Article) (*model.AnalysisResult, error) {
	if article == nil || strings.TrimSpace(article.Text) == "" {
		return nil, fmt.Errorf("article text is empty")
	}

	text := article.Text
	if len(text) > maxArticleChars {
		text = text[:maxArticleChars]
	}

	response, err := g.generate(ctx, fmt.Sprintf(analysisPrompt, article.Title, text))
	if err != nil {
		return nil, err
	}
	return parseAnalysis(response), nil
}

// parseAnalysis decodes the model output. When the model ignores the
// JSON instruction the raw text is kept as the summary with neutral
// sentiment, so malformed output is displayed rather than dropped.
func parseAnalysis(response string) *model.AnalysisResult {
	var parsed model.AnalysisResult
	if err := json.Unmarshal([]byte(extractJSON(response)), &parsed); err != nil || parsed.Summary == "" {
		return &model.AnalysisResult{
			Summary:   response,
			Sentiment: "neutral",
		}
	}
	parsed.Sentiment = normalizeSentiment(parsed.Sentiment)
	return &parsed
}

// normalizeSentiment maps the model's label onto
// positive/neutral/negative.
func normalizeSentiment(label string) string {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "1", "+1", "positive":
		return "positive"
	case "-1", "- 1", "negative":
		return "negative"
	default:
		return "neutral"
	}
}

const comparisonPrompt = `Analyze and compare the recent performance of the following two Formula 1 drivers based on the provided data. ` +
	`Focus on identifying strengths and weaknesses, consistency, and significant results for both. ` +
	`Provide a conclusion on who demonstrated superior or more consistent performance.

Driver 1 Data:
%s

Driver 2 Data:
%s

Present your analysis concisely, impartially, and in clear bullet points or paragraphs. Avoid generic introductions and conclusions.`

// CompareDrivers asks Gemini for a comparative analysis of two drivers
// given their compiled recent results.
func (g *GeminiClient) CompareDrivers(ctx context.Context, data1, data2 string) (string, error) {
	return g.generate(ctx, fmt.Sprintf(comparisonPrompt, data1, data2))
}

// extractJSON pulls the JSON payload out of a model response, handling
// markdown code fences.
func extractJSON(response string) string {
	re := regexp.MustCompile("(?s)```(?:json)?\\s*\\n?(.*?)\\n?```")
	if matches := re.FindStringSubmatch(response); len(matches) > 1 {
		return strings.TrimSpace(matches[1])
	}

	start := strings.Index(response, "{")
	end := strings.LastIndex(response, "}")
	if start != -1 && end > start {
		return response[start : end+1]
	}

	return response
}
