package app

import "sync"

// SuggestionPool rotates suggestion questions per topic without repeating
// any question until a topic's whole pool has been surfaced. Once a draw
// cannot be filled from unseen questions the topic's seen set is cleared
// and the cycle starts over.
type SuggestionPool struct {
	mu     sync.Mutex
	topics []Topic
	byID   map[string]Topic
	seen   map[string]map[string]bool
}

func NewSuggestionPool(topics []Topic) *SuggestionPool {
	byID := make(map[string]Topic, len(topics))
	for _, t := range topics {
		byID[t.ID] = t
	}
	return &SuggestionPool{
		topics: topics,
		byID:   byID,
		seen:   make(map[string]map[string]bool),
	}
}

// Topics returns the taxonomy in declared order.
func (p *SuggestionPool) Topics() []Topic {
	return p.topics
}

// Topic looks up a topic by id.
func (p *SuggestionPool) Topic(id string) (Topic, bool) {
	t, ok := p.byID[id]
	return t, ok
}

// Detect resolves free text to a topic id, first declared match wins.
func (p *SuggestionPool) Detect(text string) (string, bool) {
	return DetectTopic(p.topics, text)
}

// NextBatch returns up to count questions from the topic's pool, in pool
// order, skipping questions already surfaced this cycle and anything in
// excluding (typically the question the user just asked). If the unseen
// questions cannot fill the batch, the cycle is treated as exhausted: the
// seen set resets and the remainder is drawn from the full pool, still
// honoring excluding and never repeating a question within the batch. A
// pool smaller than count yields a short batch, not an error.
func (p *SuggestionPool) NextBatch(topicID string, count int, excluding []string) []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	topic, ok := p.byID[topicID]
	if !ok || count <= 0 {
		return nil
	}

	skip := make(map[string]bool, len(excluding))
	for _, q := range excluding {
		skip[q] = true
	}

	seen := p.seen[topicID]
	if seen == nil {
		seen = make(map[string]bool)
		p.seen[topicID] = seen
	}

	var batch []string
	picked := make(map[string]bool)
	for _, q := range topic.Pool {
		if len(batch) == count {
			break
		}
		if seen[q] || skip[q] {
			continue
		}
		seen[q] = true
		picked[q] = true
		batch = append(batch, q)
	}

	if len(batch) < count {
		// Cycle exhausted: reset and refill from the top, keeping what we
		// already picked and still suppressing excluded questions.
		seen = make(map[string]bool)
		p.seen[topicID] = seen
		for q := range picked {
			seen[q] = true
		}
		for _, q := range topic.Pool {
			if len(batch) == count {
				break
			}
			if picked[q] || skip[q] {
				continue
			}
			seen[q] = true
			picked[q] = true
			batch = append(batch, q)
		}
	}

	return batch
}

// Reset clears the seen set for one topic, or all topics when id is empty.
func (p *SuggestionPool) Reset(topicID string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if topicID == "" {
		p.seen = make(map[string]map[string]bool)
		return
	}
	delete(p.seen, topicID)
}
