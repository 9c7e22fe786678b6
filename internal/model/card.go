package model

import (
	"encoding/json"
	"sync"
)

// CardType identifies one card of the news analysis stream.
type CardType string

const (
	CardArticle   CardType = "article_card"
	CardSummary   CardType = "summary_card"
	CardSentiment CardType = "sentiment_card"
	CardEntities  CardType = "entities_card"
)

// AllCards lists every card of an analysis, in display order.
var AllCards = []CardType{
	CardArticle, CardSummary, CardSentiment, CardEntities,
}

// CardStatus is the lifecycle state of a card.
type CardStatus string

const (
	StatusPending CardStatus = "pending"
	StatusDone    CardStatus = "done"
	StatusError   CardStatus = "error"
)

// CardState is the state of a single card.
type CardState struct {
	Status CardStatus  `json:"status"`
	Data   interface{} `json:"data,omitempty"`
	Error  string      `json:"error,omitempty"`
}

// CardMap is a concurrency-safe map of card states.
type CardMap struct {
	m sync.Map
}

// NewCardMap creates an empty CardMap.
func NewCardMap() *CardMap {
	return &CardMap{}
}

// Set stores the state of a card.
func (c *CardMap) Set(card CardType, state *CardState) {
	c.m.Store(card, state)
}

// Get returns the state of a card, or nil if unknown.
func (c *CardMap) Get(card CardType) *CardState {
	v, ok := c.m.Load(card)
	if !ok {
		return nil
	}
	return v.(*CardState)
}

// CountDone counts cards that reached a terminal state.
func (c *CardMap) CountDone() int {
	count := 0
	c.m.Range(func(_, v interface{}) bool {
		if state := v.(*CardState); state.Status == StatusDone || state.Status == StatusError {
			count++
		}
		return true
	})
	return count
}

// MarshalJSON serializes the map as a plain JSON object.
func (c *CardMap) MarshalJSON() ([]byte, error) {
	m := make(map[CardType]*CardState)
	c.m.Range(func(k, v interface{}) bool {
		m[k.(CardType)] = v.(*CardState)
		return true
	})
	return json.Marshal(m)
}

// AnalysisState is the full analysis state; every SSE event carries the
// whole structure so the client never has to reassemble partial deltas.
type AnalysisState struct {
	Status        string   `json:"status"` // "analyzing" | "completed" | "error"
	Query         string   `json:"query,omitempty"`
	Overall       int      `json:"overall"` // 0-100, monotone
	CurrentAction string   `json:"current_action"`
	Cards         *CardMap `json:"cards"`
	Error         string   `json:"error,omitempty"`
}

// NewAnalysisState creates the initial state with all cards pending.
func NewAnalysisState() *AnalysisState {
	cards := NewCardMap()
	for _, card := range AllCards {
		cards.Set(card, &CardState{Status: StatusPending})
	}
	return &AnalysisState{
		Status:        "analyzing",
		Overall:       0,
		CurrentAction: "Starting...",
		Cards:         cards,
	}
}

// ArticleCard is the extracted-article card payload.
type ArticleCard struct {
	URL       string `json:"url,omitempty"`
	Title     string `json:"title,omitempty"`
	SiteName  string `json:"site_name,omitempty"`
	Excerpt   string `json:"excerpt,omitempty"`
	WordCount int    `json:"word_count"`
}

// SummaryCard carries the AI summary of the article.
type SummaryCard struct {
	Summary string `json:"summary"`
}

// SentimentCard carries the sentiment label of the article.
type SentimentCard struct {
	Sentiment string `json:"sentiment"`
}

// EntitiesCard carries the named entities found in the article.
type EntitiesCard struct {
	Entities []Entity `json:"entities"`
}
