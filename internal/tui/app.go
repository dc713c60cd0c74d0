package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"fist-chat/internal/app"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const welcomeText = "Hi! I'm your Industrial Training assistant. Pick a topic from the panel or just type your question."

// Model is the chat screen: transcript viewport, input box, suggestion
// panel, and a status bar reflecting backend liveness.
type Model struct {
	app     *app.Application
	session *app.Session

	input    textarea.Model
	viewport viewport.Model
	suggest  suggestModel
	help     helpModel
	markdown *MarkdownRenderer

	width    int
	height   int
	ready    bool
	showHelp bool

	loading    bool
	spinnerPos int
	online     bool
}

type (
	spinMsg         struct{}
	sendDoneMsg     struct{ err error }
	sessionEventMsg struct{ ev app.Event }
)

var spinner = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

func New(application *app.Application) *Model {
	ta := textarea.New()
	ta.Placeholder = "Type a question... (Tab for suggestions, Enter to send)"
	ta.Focus()
	ta.CharLimit = 2000
	ta.SetWidth(60)
	ta.SetHeight(3)
	ta.Prompt = "▍ "

	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.BlurredStyle.CursorLine = lipgloss.NewStyle()
	ta.FocusedStyle.Placeholder = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	ta.BlurredStyle.Placeholder = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))

	m := &Model{
		app:      application,
		session:  application.Session,
		input:    ta,
		suggest:  newSuggestModel(application.Session.Pool().Topics()),
		help:     newHelpModel(),
		markdown: NewMarkdownRenderer(),
		width:    100,
		height:   30,
	}

	m.session.Timeline().Append(app.RoleBot, welcomeText)
	return m
}

func (m *Model) Init() tea.Cmd {
	m.session.Start()
	return tea.Batch(textarea.Blink, m.waitEvent())
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport = viewport.New(m.chatWidth(), m.chatHeight())
		m.viewport.Style = viewportStyle
		m.input.SetWidth(m.chatWidth())
		m.help.SetWidth(msg.Width)
		m.ready = true
		m.refreshViewport()
		return m, nil

	case tea.KeyMsg:
		return m.updateKeys(msg)

	case sessionEventMsg:
		switch msg.ev.Kind {
		case app.EventTimeline:
			m.refreshViewport()
			m.viewport.GotoBottom()
		case app.EventSuggestions:
			m.suggest.setBatch(msg.ev.TopicID, msg.ev.Suggestions)
		case app.EventLiveness:
			m.online = msg.ev.Online
		}
		return m, m.waitEvent()

	case sendDoneMsg:
		m.loading = false
		if msg.err != nil && errors.Is(msg.err, app.ErrClosed) {
			return m, tea.Quit
		}
		return m, nil

	case spinMsg:
		m.spinnerPos = (m.spinnerPos + 1) % len(spinner)
		if m.loading {
			m.refreshViewport()
			return m, m.spinTick()
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.help.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.help.keys.Help):
		m.showHelp = !m.showHelp
		return m, nil

	case key.Matches(msg, m.help.keys.Focus):
		m.suggest.toggleFocus()
		if m.suggest.focused {
			m.input.Blur()
		} else {
			m.input.Focus()
		}
		return m, nil
	}

	if m.suggest.focused {
		return m.updateSuggestKeys(msg)
	}

	if key.Matches(msg, m.help.keys.Enter) {
		text := strings.TrimSpace(m.input.Value())
		// Empty input sends nothing; the server-side greeting covers
		// the blank-message case and the client never issues it.
		if text == "" || m.loading {
			return m, nil
		}
		m.input.Reset()
		return m, m.send(text, "")
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) updateSuggestKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.help.keys.Up):
		m.suggest.moveCursor(-1)
	case key.Matches(msg, m.help.keys.Down):
		m.suggest.moveCursor(1)
	case key.Matches(msg, m.help.keys.Back):
		// Back out to the top-level topic menu.
		m.session.LeaveTopic()
		m.suggest.showMenu()
	case key.Matches(msg, m.help.keys.Enter):
		if m.loading {
			return m, nil
		}
		if m.suggest.inMenu() {
			if id, ok := m.suggest.selectedTopic(); ok {
				m.session.EnterTopic(id)
			}
			return m, nil
		}
		if question, ok := m.suggest.selectedQuestion(); ok {
			return m, m.send(question, m.suggest.topicID)
		}
	}
	return m, nil
}

// send kicks off the pipeline; input stays locked until sendDoneMsg so a
// second send cannot start while one is in flight.
func (m *Model) send(text, forcedTopic string) tea.Cmd {
	m.loading = true
	m.spinnerPos = 0
	return tea.Batch(m.sendCmd(text, forcedTopic), m.spinTick())
}

func (m *Model) sendCmd(text, forcedTopic string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		return sendDoneMsg{err: m.session.Send(ctx, text, forcedTopic)}
	}
}

func (m *Model) waitEvent() tea.Cmd {
	return func() tea.Msg {
		return sessionEventMsg{ev: <-m.session.Events()}
	}
}

func (m *Model) spinTick() tea.Cmd {
	return tea.Tick(time.Millisecond*100, func(_ time.Time) tea.Msg {
		return spinMsg{}
	})
}

func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}
	var b strings.Builder
	for _, msg := range m.session.Timeline().Messages() {
		b.WriteString(renderMessage(msg, m.markdown, m.chatWidth()-4))
		b.WriteString("\n")
	}
	if m.loading {
		sp := spinner[m.spinnerPos]
		b.WriteString(loadingStyle.Width(m.chatWidth() - 4).Render(fmt.Sprintf("%s Waiting for the assistant...", sp)))
	}
	m.viewport.SetContent(b.String())
}

func (m *Model) chatWidth() int  { return m.width - sidebarWidth - 4 }
func (m *Model) chatHeight() int { return m.height - 12 }

func (m *Model) View() string {
	if !m.ready {
		return "Starting..."
	}
	if m.width < 80 || m.height < 20 {
		return fmt.Sprintf("Resize terminal to at least 80x20. Current: %dx%d", m.width, m.height)
	}
	if m.showHelp {
		return m.help.View()
	}

	var b strings.Builder
	b.WriteString(renderHeader(m.width))
	b.WriteString("\n")

	chat := lipgloss.NewStyle().
		Width(m.chatWidth()).
		Height(m.chatHeight()).
		Render(m.viewport.View())
	side := m.suggest.view(m.chatHeight())
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, chat, side))
	b.WriteString("\n")

	b.WriteString(m.renderStatusBar())
	b.WriteString("\n")
	b.WriteString(inputStyle.Width(m.chatWidth()).Render(m.input.View()))

	return b.String()
}

func renderMessage(msg app.Message, md *MarkdownRenderer, width int) string {
	var bubbleStyle lipgloss.Style
	var roleLabel string

	switch {
	case msg.Role == app.RoleUser:
		bubbleStyle = userBubbleStyle
		roleLabel = "You"
	case msg.ID != "":
		bubbleStyle = typingBubbleStyle
		roleLabel = "Assistant"
	default:
		bubbleStyle = botBubbleStyle
		roleLabel = "Assistant"
	}

	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FAFAFA")).
		Background(bubbleStyle.GetBackground()).
		Padding(0, 1).
		Width(width).
		Render(fmt.Sprintf(" %s • %s ", roleLabel, msg.Timestamp.Format("15:04")))

	content := msg.Text
	if msg.Role == app.RoleBot && msg.ID == "" {
		content = md.Render(msg.Text, width-4)
	}
	body := bubbleStyle.Width(width).Render(content)

	return header + "\n" + body
}

func renderHeader(width int) string {
	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FAFAFA")).
		Background(lipgloss.Color("#7D56F4")).
		Padding(0, 2).
		Width(width - 4).
		Render(" Industrial Training FAQ ")

	border := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#7D56F4")).
		Render(strings.Repeat("━", width-4))

	return lipgloss.NewStyle().
		Width(width).
		Render(header + "\n" + border)
}

func (m *Model) renderStatusBar() string {
	return renderStatusBar(m.width, m.online, m.topicLabel(), time.Now())
}

func renderStatusBar(width int, online bool, topicLabel string, now time.Time) string {
	state := offlineStyle.Render(" OFFLINE ")
	if online {
		state = onlineStyle.Render(" ONLINE ")
	}

	topic := "all topics"
	if topicLabel != "" {
		topic = topicLabel
	}
	left := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FAFAFA")).
		Background(lipgloss.Color(colorBgAlt)).
		Padding(0, 1).
		Render(fmt.Sprintf(" fist-chat | %s ", topic))

	right := lipgloss.NewStyle().
		Foreground(lipgloss.Color(colorFgMuted)).
		Background(lipgloss.Color(colorBgAlt)).
		Padding(0, 1).
		Render(now.Format("15:04"))

	middleWidth := width - lipgloss.Width(left) - lipgloss.Width(state) - lipgloss.Width(right)
	if middleWidth < 0 {
		middleWidth = 0
	}
	middle := strings.Repeat(" ", middleWidth)

	return lipgloss.NewStyle().
		MaxWidth(width).
		Background(lipgloss.Color(colorBgAlt)).
		Render(left + state + middle + right)
}

func (m *Model) topicLabel() string {
	id := m.session.PendingTopic()
	if id == "" {
		return ""
	}
	if t, ok := m.session.Pool().Topic(id); ok {
		return t.Label
	}
	return id
}

const (
	colorBg      = "#0F172A"
	colorBgAlt   = "#1E293B"
	colorFg      = "#F8FAFC"
	colorFgMuted = "#94A3B8"
	colorBorder  = "#334155"
)

var (
	viewportStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorFg)).
			Background(lipgloss.Color(colorBg)).
			Padding(0, 1)

	userBubbleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#3B82F6")).
			Padding(1, 2)

	botBubbleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#10B981")).
			Padding(1, 2)

	typingBubbleStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#94A3B8")).
				Background(lipgloss.Color(colorBgAlt)).
				Italic(true).
				Padding(1, 2)

	loadingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#60A5FA")).
			Padding(1, 1)

	inputStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorFg)).
			Background(lipgloss.Color(colorBgAlt)).
			Padding(1, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(colorBorder))

	onlineStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#0F172A")).
			Background(lipgloss.Color("#10B981")).
			Bold(true)

	offlineStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#EF4444")).
			Bold(true)
)
