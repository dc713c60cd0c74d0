package tui

import (
	"strings"
	"testing"

	"fist-chat/internal/app"
)

func suggestFixture() suggestModel {
	return newSuggestModel([]app.Topic{
		{ID: "forms", Label: "Forms & Registration"},
		{ID: "deadlines", Label: "Deadlines & Submission"},
	})
}

func TestSuggestModel_StartsInTopicMenu(t *testing.T) {
	s := suggestFixture()
	if !s.inMenu() {
		t.Fatal("panel must start at the topic menu")
	}
	id, ok := s.selectedTopic()
	if !ok || id != "forms" {
		t.Fatalf("selectedTopic = %q,%v", id, ok)
	}
	if _, ok := s.selectedQuestion(); ok {
		t.Fatal("no question can be selected in menu mode")
	}
}

func TestSuggestModel_BatchSwitchesToQuestions(t *testing.T) {
	s := suggestFixture()
	s.setBatch("forms", []string{"q1", "q2", "q3"})

	if s.inMenu() {
		t.Fatal("panel must leave menu mode once a batch arrives")
	}
	q, ok := s.selectedQuestion()
	if !ok || q != "q1" {
		t.Fatalf("selectedQuestion = %q,%v", q, ok)
	}

	// A nil batch (panel hidden / topic left) falls back to the menu.
	s.setBatch("forms", nil)
	if !s.inMenu() {
		t.Fatal("empty batch must fall back to the topic menu")
	}
}

func TestSuggestModel_CursorWraps(t *testing.T) {
	s := suggestFixture()
	s.setBatch("forms", []string{"q1", "q2"})

	s.moveCursor(1)
	if q, _ := s.selectedQuestion(); q != "q2" {
		t.Fatalf("after down, selected %q", q)
	}
	s.moveCursor(1)
	if q, _ := s.selectedQuestion(); q != "q1" {
		t.Fatalf("cursor did not wrap forward, selected %q", q)
	}
	s.moveCursor(-1)
	if q, _ := s.selectedQuestion(); q != "q2" {
		t.Fatalf("cursor did not wrap backward, selected %q", q)
	}
}

func TestSuggestModel_CursorResetsWithNewBatch(t *testing.T) {
	s := suggestFixture()
	s.setBatch("forms", []string{"q1", "q2", "q3"})
	s.moveCursor(2)
	s.setBatch("forms", []string{"r1", "r2"})
	if q, _ := s.selectedQuestion(); q != "r1" {
		t.Fatalf("cursor not reset for new batch, selected %q", q)
	}
}

func TestSuggestModel_ViewListsContent(t *testing.T) {
	s := suggestFixture()
	out := s.view(20)
	if !strings.Contains(out, "Topics") || !strings.Contains(out, "Forms & Registration") {
		t.Fatalf("menu view missing topics: %q", out)
	}

	s.setBatch("forms", []string{"When is Form A due?"})
	out = s.view(20)
	if !strings.Contains(out, "When is Form A due?") {
		t.Fatalf("question view missing batch item: %q", out)
	}
}
