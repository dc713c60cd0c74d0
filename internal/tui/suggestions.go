package tui

import (
	"fmt"
	"strings"

	"fist-chat/internal/app"

	"github.com/charmbracelet/lipgloss"
)

const sidebarWidth = 34

// suggestModel is the sidebar panel: the topic menu at the top level,
// or the current topic's rotating question batch once the user is in a
// topic. The session decides what the panel shows; this model only
// tracks cursor and focus.
type suggestModel struct {
	topics  []app.Topic
	topicID string
	items   []string
	cursor  int
	focused bool
}

func newSuggestModel(topics []app.Topic) suggestModel {
	return suggestModel{topics: topics}
}

func (s *suggestModel) inMenu() bool { return s.topicID == "" }

// setBatch applies a suggestion event: a nil batch hides the questions
// and falls back to the topic menu.
func (s *suggestModel) setBatch(topicID string, items []string) {
	if len(items) == 0 {
		s.showMenu()
		return
	}
	s.topicID = topicID
	s.items = items
	s.cursor = 0
}

func (s *suggestModel) showMenu() {
	s.topicID = ""
	s.items = nil
	s.cursor = 0
}

func (s *suggestModel) toggleFocus() { s.focused = !s.focused }

func (s *suggestModel) length() int {
	if s.inMenu() {
		return len(s.topics)
	}
	return len(s.items)
}

func (s *suggestModel) moveCursor(delta int) {
	n := s.length()
	if n == 0 {
		return
	}
	s.cursor = (s.cursor + delta + n) % n
}

func (s *suggestModel) selectedTopic() (string, bool) {
	if !s.inMenu() || s.cursor >= len(s.topics) {
		return "", false
	}
	return s.topics[s.cursor].ID, true
}

func (s *suggestModel) selectedQuestion() (string, bool) {
	if s.inMenu() || s.cursor >= len(s.items) {
		return "", false
	}
	return s.items[s.cursor], true
}

func (s *suggestModel) view(height int) string {
	var b strings.Builder

	if s.inMenu() {
		b.WriteString(sidebarTitle.Render(" Topics "))
		b.WriteString("\n\n")
		for i, t := range s.topics {
			b.WriteString(s.renderItem(i, t.Label))
		}
	} else {
		b.WriteString(sidebarTitle.Render(" Suggested questions "))
		b.WriteString("\n\n")
		for i, q := range s.items {
			b.WriteString(s.renderItem(i, q))
		}
		b.WriteString("\n")
		b.WriteString(sidebarHint.Render("esc: all topics"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if s.focused {
		b.WriteString(sidebarHint.Render("↑/↓ move · enter pick · tab: input"))
	} else {
		b.WriteString(sidebarHint.Render("tab: browse suggestions"))
	}

	border := sidebarStyle
	if s.focused {
		border = sidebarFocusedStyle
	}
	return border.Height(height - 2).Render(b.String())
}

func (s *suggestModel) renderItem(i int, label string) string {
	marker := "○"
	style := sidebarItem
	if i == s.cursor && s.focused {
		marker = "●"
		style = sidebarItemActive
	}
	return style.Render(fmt.Sprintf(" %s %s", marker, label)) + "\n"
}

var (
	sidebarStyle = lipgloss.NewStyle().
			Width(sidebarWidth).
			Foreground(lipgloss.Color(colorFgMuted)).
			Background(lipgloss.Color(colorBgAlt)).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(colorBorder)).
			Padding(1, 1)

	sidebarFocusedStyle = sidebarStyle.
				BorderForeground(lipgloss.Color("#7D56F4"))

	sidebarTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1).
			Width(sidebarWidth - 4)

	sidebarItem = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorFgMuted)).
			Width(sidebarWidth - 4)

	sidebarItemActive = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#FAFAFA")).
				Width(sidebarWidth - 4)

	sidebarHint = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#64748B")).
			Italic(true)
)
