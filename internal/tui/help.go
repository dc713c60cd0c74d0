package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

type helpModel struct {
	keys  keyMap
	width int
}

func newHelpModel() helpModel {
	return helpModel{
		keys:  defaultKeyMap(),
		width: 80,
	}
}

func (m *helpModel) SetWidth(width int) {
	m.width = width
}

func (m helpModel) View() string {
	var b strings.Builder

	b.WriteString(helpTitleStyle.Render("fist-chat help"))
	b.WriteString("\n\n")

	b.WriteString(helpSectionStyle.Render("chat"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %s  send your question\n", helpKeyStyle.Render("enter")))
	b.WriteString(fmt.Sprintf("  %s  jump between input and the suggestion panel\n", helpKeyStyle.Render("tab")))
	b.WriteString(fmt.Sprintf("  %s  back out to the topic menu\n", helpKeyStyle.Render("esc")))
	b.WriteString("\n")

	b.WriteString(helpSectionStyle.Render("suggestions"))
	b.WriteString("\n")
	b.WriteString(helpDescriptionStyle.Render("  pick a topic to get rotating suggested questions;"))
	b.WriteString("\n")
	b.WriteString(helpDescriptionStyle.Render("  picking a question sends it straight away"))
	b.WriteString("\n\n")

	b.WriteString(helpSectionStyle.Render("connection"))
	b.WriteString("\n")
	b.WriteString(helpDescriptionStyle.Render("  the status bar shows ONLINE/OFFLINE; the client probes"))
	b.WriteString("\n")
	b.WriteString(helpDescriptionStyle.Render("  the server every 10s and retries failed sends 3 times"))
	b.WriteString("\n\n")

	b.WriteString(helpFooterStyle.Render("? close help | shift+q quit | enter send"))

	return b.String()
}

type keyMap struct {
	Quit  key.Binding
	Enter key.Binding
	Focus key.Binding
	Back  key.Binding
	Up    key.Binding
	Down  key.Binding
	Help  key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("Q", "ctrl+c"),
			key.WithHelp("shift+q", "quit"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "send message"),
		),
		Focus: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "toggle suggestion panel"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back to topics"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up", "previous suggestion"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down", "next suggestion"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Enter, k.Focus, k.Back, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Enter, k.Focus, k.Back, k.Up, k.Down, k.Quit},
	}
}

// Minimal transparent styles
var (
	helpTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFB86C"))

	helpSectionStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#BD93F9"))

	helpKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF79C6"))

	helpDescriptionStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#6272A4"))

	helpFooterStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#44475A")).
			Italic(true)
)
