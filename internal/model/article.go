package model

import "time"

// Article is the text extracted from a news page. Request-scoped, never
// persisted; only the analysis result derived from it is cached.
type Article struct {
	URL      string `json:"url,omitempty"`
	Title    string `json:"title,omitempty"`
	SiteName string `json:"site_name,omitempty"`
	Excerpt  string `json:"excerpt,omitempty"`
	Text     string `json:"text"`
	Length   int    `json:"length"`
}

// Entity is a named entity the model found in an article.
type Entity struct {
	Name string `json:"name"`
	Type string `json:"type,omitempty"`
}

// AnalysisResult is what the AI model produced for an article. The
// service does not validate it beyond JSON shape; malformed model
// output is surfaced as-is in Summary.
type AnalysisResult struct {
	Summary   string   `json:"summary"`
	Sentiment string   `json:"sentiment"`
	Entities  []Entity `json:"entities,omitempty"`
}

// Headline is one item from the F1 news feeds.
type Headline struct {
	Title     string     `json:"title"`
	URL       string     `json:"url"`
	Source    string     `json:"source,omitempty"`
	Snippet   string     `json:"snippet,omitempty"`
	Published *time.Time `json:"published,omitempty"`
}
