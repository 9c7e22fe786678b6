package fetcher

import (
	"context"
	"errors"
	"testing"

	"github.com/NunoEsteves18/F1-Insights-App/internal/model"
)

func TestAnalyzeArticleMissingAPIKey(t *testing.T) {
	client := NewGeminiClient("")

	// The configuration error must surface before any network call
	_, err := client.AnalyzeArticle(context.Background(), &model.Article{Text: "some article"})
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("error = %v, want ErrMissingAPIKey", err)
	}

	_, err = client.CompareDrivers(context.Background(), "data1", "data2")
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("error = %v, want ErrMissingAPIKey", err)
	}
}

func TestAnalyzeArticleEmptyText(t *testing.T) {
	client := NewGeminiClient("test-key")
	if _, err := client.AnalyzeArticle(context.Background(), &model.Article{Text: "   "}); err == nil {
		t.Fatal("expected error for empty article text, got nil")
	}
}

func TestExtractJSON(t *testing.T) {
	testCases := []struct {
		name     string
		response string
		want     string
	}{
		{
			name:     "fenced json block",
			response: "```json\n{\"summary\": \"ok\"}\n```",
			want:     `{"summary": "ok"}`,
		},
		{
			name:     "fenced without language",
			response: "```\n{\"summary\": \"ok\"}\n```",
			want:     `{"summary": "ok"}`,
		},
		{
			name:     "braces with prose around",
			response: "Here you go: {\"summary\": \"ok\"} hope it helps",
			want:     `{"summary": "ok"}`,
		},
		{
			name:     "no json at all",
			response: "plain text answer",
			want:     "plain text answer",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := extractJSON(tc.response); got != tc.want {
				t.Errorf("extractJSON(%q) = %q, want %q", tc.response, got, tc.want)
			}
		})
	}
}

func TestParseAnalysis(t *testing.T) {
	result := parseAnalysis("```json\n{\"summary\": \"A short summary.\", \"sentiment\": \"Positive\", \"entities\": [{\"name\": \"Max Verstappen\", \"type\": \"driver\"}]}\n```")

	if result.Summary != "A short summary." {
		t.Errorf("summary = %q", result.Summary)
	}
	if result.Sentiment != "positive" {
		t.Errorf("sentiment = %q, want positive", result.Sentiment)
	}
	if len(result.Entities) != 1 || result.Entities[0].Name != "Max Verstappen" {
		t.Errorf("entities = %+v", result.Entities)
	}
}

func TestParseAnalysisMalformedOutput(t *testing.T) {
	// A model response that ignored the JSON instruction is displayed
	// as-is with neutral sentiment
	raw := "The article discusses the Bahrain Grand Prix in glowing terms."
	result := parseAnalysis(raw)

	if result.Summary != raw {
		t.Errorf("summary = %q, want raw response", result.Summary)
	}
	if result.Sentiment != "neutral" {
		t.Errorf("sentiment = %q, want neutral", result.Sentiment)
	}
}

func TestNormalizeSentiment(t *testing.T) {
	testCases := []struct {
		in   string
		want string
	}{
		{"positive", "positive"},
		{"Positive", "positive"},
		{"+1", "positive"},
		{"1", "positive"},
		{"negative", "negative"},
		{"-1", "negative"},
		{"neutral", "neutral"},
		{"0", "neutral"},
		{"mixed bag", "neutral"},
		{"", "neutral"},
	}

	for _, tc := range testCases {
		if got := normalizeSentiment(tc.in); got != tc.want {
			t.Errorf("normalizeSentiment(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
