package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"fist-chat/internal/app"
)

// SetupWizard walks a first run through pointing the client at a FAQ
// server and saving the result to the config file.
type SetupWizard struct {
	step      int
	serverURL string
	reachable bool
	statusMsg string
	input     textinput.Model
	done      bool
	cfg       *app.Config
	width     int
	height    int
}

func NewSetupWizard(cfg *app.Config) *SetupWizard {
	s := &SetupWizard{
		step:  0,
		cfg:   cfg,
		input: textinput.New(),
	}
	s.input.Placeholder = "http://localhost:8000"
	s.input.Focus()
	return s
}

func (s *SetupWizard) Init() tea.Cmd {
	return textinput.Blink
}

func (s *SetupWizard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			s.done = true
			return s, tea.Quit

		case "enter":
			switch s.step {
			case 0:
				s.serverURL = strings.TrimSpace(s.input.Value())
				if s.serverURL == "" {
					s.serverURL = "http://localhost:8000"
				}
				if !strings.HasPrefix(s.serverURL, "http://") && !strings.HasPrefix(s.serverURL, "https://") {
					s.statusMsg = "Warning: server URL doesn't look like an HTTP address"
					break
				}
				client := app.NewChatClient(s.serverURL, "")
				s.reachable = client.Health(context.Background()) == nil
				s.step = 1
			case 1:
				s.step = 2
			case 2:
				s.cfg.ServerURL = s.serverURL

				if err := app.SaveConfig(*s.cfg, app.DefaultConfigPath()); err != nil {
					s.statusMsg = fmt.Sprintf("Error saving config: %v", err)
				} else {
					s.statusMsg = "Configuration saved successfully!"
					s.done = true
					return s, tea.Quit
				}
			}

		case "up", "k":
			if s.step > 0 {
				s.step--
				if s.step == 0 {
					s.input.Focus()
				}
			}

		default:
			if s.step == 0 {
				s.input, cmd = s.input.Update(msg)
				return s, cmd
			}
		}

	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
	}

	return s, cmd
}

func (s *SetupWizard) View() string {
	if s.done {
		return ""
	}

	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FAFAFA")).
		Background(lipgloss.Color("#7D56F4")).
		Padding(0, 2).
		Width(s.width - 4).
		Render("  Industrial Training FAQ Setup  ")

	var body string
	var progressBar string

	switch s.step {
	case 0:
		progressBar = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4")).
			Render("▓▓▓▓▓▓▓▓▓▓▓▓▓▓▓▓▓▓▓░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░")
		body = fmt.Sprintf(`
Step 1 of 3: FAQ Server Address

Enter the base URL of the FAQ server. Leave empty for the default.

%s

Server URL: %s

Enter to test the connection, Ctrl+C to cancel.
`, s.statusMsg, s.input.View())
		s.statusMsg = ""

	case 1:
		progressBar = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4")).
			Render("▓▓▓▓▓▓▓▓▓▓▓▓▓▓▓▓▓▓▓▓▓▓▓▓▓▓▓▓▓▓▓▓▓▓▓▓░░░░░░░░░░░░░░░░░░")
		check := "✗ Server did not answer the health probe.\n    You can still save and start it later."
		if s.reachable {
			check = "✓ Server is reachable and healthy."
		}
		body = fmt.Sprintf(`
Step 2 of 3: Connection Check

  %s

Use ↑ to go back, Enter to continue, Ctrl+C to cancel.
`, check)

	case 2:
		progressBar = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4")).
			Render("▓▓▓▓▓▓▓▓▓▓▓▓▓▓▓▓▓▓▓▓▓▓▓▓▓▓▓▓▓▓▓▓▓▓▓▓▓▓▓▓▓▓▓▓▓▓▓▓▓▓▓▓▓▓▓")
		body = fmt.Sprintf(`
Step 3 of 3: Confirm Configuration

  ✓ Server URL: %s
  ✓ Reachable:  %v

Configuration saved to:
%s

Use ↑ to go back, Enter to confirm, Ctrl+C to cancel.
`, s.serverURL, s.reachable, app.DefaultConfigPath())
	}

	help := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#6B7280")).
		Render("\n↑ Back  |  Enter Confirm  |  Ctrl+C Cancel")

	content := header + "\n\n" + progressBar + "\n\n" + body + help

	paddingTop := maxInt(0, (s.height-16)/2)
	paddingSides := maxInt(0, (s.width-lipgloss.Width(content)-4)/2)

	result := strings.Repeat("\n", paddingTop)
	if paddingSides > 0 {
		result += strings.Repeat(" ", paddingSides)
	}
	result += content

	return lipgloss.NewStyle().
		Width(s.width).
		Height(s.height).
		Render(result)
}

func (s *SetupWizard) Done() bool {
	return s.done
}

// maxInt returns the larger of two integers (Go 1.18 compatibility)
func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
