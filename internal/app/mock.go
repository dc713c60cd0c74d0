package app

import (
	"context"
	"strings"
)

// MockBackend is a canned FAQ answerer used by --mock mode and tests: it
// never touches the network, is always healthy, and answers by keyword
// the way the real retrieval server roughly would.
type MockBackend struct {
	topics []Topic
}

func NewMockBackend(topics []Topic) *MockBackend {
	return &MockBackend{topics: topics}
}

func (m *MockBackend) Health(ctx context.Context) error { return nil }

func (m *MockBackend) Ask(ctx context.Context, message string) (string, error) {
	if id, ok := DetectTopic(m.topics, message); ok {
		if reply, ok := mockAnswers[id]; ok {
			return reply, nil
		}
	}
	lowered := strings.ToLower(message)
	switch {
	case strings.Contains(lowered, "hello"), strings.Contains(lowered, "hi"):
		return "Hi! I'm your Industrial Training assistant. You can start asking questions anytime.", nil
	case strings.Contains(lowered, "thank"), strings.Contains(lowered, "bye"):
		return FarewellText, nil
	default:
		return "I couldn't find that in the Industrial Training documents. Please rephrase or ask another question.", nil
	}
}

var mockAnswers = map[string]string{
	"forms":     "Form A must be submitted before the end of week 2 of the semester. Download it from the faculty portal, have it signed by your academic advisor, and hand it in at the Industrial Training office.",
	"deadlines": "The key deadlines are published in the Industrial Training handbook: Form A by week 2, company confirmation by week 6, and the final report two weeks after the internship ends.",
	"report":    "Fill in your logbook weekly and have your company supervisor initial each entry. The final report follows the faculty template and is graded by your faculty supervisor.",
	"cv":        "Keep your CV to two pages, lead with your skills and projects, and export it as PDF. The faculty CV checker can review it before you apply.",
	"placement": "You can find placements through the faculty's partner list or apply directly to companies. Overseas placements need prior approval from the coordinator.",
	"contact":   "The Industrial Training coordinator can be reached through the faculty office email. Your assigned faculty supervisor is listed in the placement confirmation letter.",
}
