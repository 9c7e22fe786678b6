package sse

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/NunoEsteves18/F1-Insights-App/internal/model"
)

// Writer streams the full analysis state to the client as SSE events.
type Writer struct {
	w         http.ResponseWriter
	flusher   http.Flusher
	mu        sync.Mutex
	state     *model.AnalysisState
	stopHeart chan struct{}
	heartOnce sync.Once
}

// NewWriter prepares the response for SSE streaming and starts the
// heartbeat.
func NewWriter(w http.ResponseWriter) (*Writer, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, fmt.Errorf("streaming not supported")
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	writer := &Writer{
		w:         w,
		flusher:   flusher,
		state:     model.NewAnalysisState(),
		stopHeart: make(chan struct{}),
	}

	go writer.heartbeat()

	return writer, nil
}

// heartbeat keeps the connection alive through proxies during long
// model calls.
func (s *Writer) heartbeat() {
	ticker := time.NewTicker(15 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.mu.Lock()
			heartbeat := map[string]interface{}{
				"status":         "heartbeat",
				"overall":        s.state.Overall,
				"current_action": s.state.CurrentAction,
			}
			data, _ := json.Marshal(heartbeat)
			fmt.Fprintf(s.w, "data: %s\n\n", data)
			s.flusher.Flush()
			s.mu.Unlock()
		case <-s.stopHeart:
			return
		}
	}
}

// StopHeartbeat stops the heartbeat goroutine. Safe to call more than
// once.
func (s *Writer) StopHeartbeat() {
	s.heartOnce.Do(func() { close(s.stopHeart) })
}

func (s *Writer) send() error {
	data, err := json.Marshal(s.state)
	if err != nil {
		return err
	}
	if _, err = fmt.Fprintf(s.w, "data: %s\n\n", data); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}

// SetQuery records the query being analyzed.
func (s *Writer) SetQuery(query string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Query = query
}

// SetAction updates the current action and progress and sends the
// state. Progress never decreases.
func (s *Writer) SetAction(progress int, action string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if progress > s.state.Overall {
		s.state.Overall = progress
	}
	s.state.CurrentAction = action
	return s.send()
}

// SetCard marks a card done with its data and sends the state.
func (s *Writer) SetCard(card model.CardType, data interface{}, action string) error {
	// CardMap is concurrency-safe on its own
	s.state.Cards.Set(card, &model.CardState{
		Status: model.StatusDone,
		Data:   data,
	})
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.CurrentAction = action
	s.recalcOverall()
	return s.send()
}

// SetError marks a card failed and sends the state.
func (s *Writer) SetError(card model.CardType, errMsg string, action string) error {
	s.state.Cards.Set(card, &model.CardState{
		Status: model.StatusError,
		Error:  errMsg,
	})
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.CurrentAction = action
	s.recalcOverall()
	return s.send()
}

// SendGlobalError reports a failure of the whole analysis.
func (s *Writer) SendGlobalError(errMsg string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Status = "error"
	s.state.CurrentAction = "Analysis failed"
	s.state.Error = errMsg
	return s.send()
}

// Done marks the analysis completed.
func (s *Writer) Done() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Status = "completed"
	s.state.Overall = 100
	s.state.CurrentAction = "Analysis completed"
	return s.send()
}

// recalcOverall derives progress from finished cards, never decreasing.
func (s *Writer) recalcOverall() {
	done := s.state.Cards.CountDone()
	newOverall := done * 100 / len(model.AllCards)
	if newOverall > s.state.Overall {
		s.state.Overall = newOverall
	}
}

// GetAllCardsData collects finished card data for caching.
func (s *Writer) GetAllCardsData() map[string]interface{} {
	result := make(map[string]interface{})
	for _, cardType := range model.AllCards {
		state := s.state.Cards.Get(cardType)
		if state != nil && state.Status == model.StatusDone && state.Data != nil {
			result[string(cardType)] = state.Data
		}
	}
	if len(result) == 0 {
		return nil
	}
	return result
}
