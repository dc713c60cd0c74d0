package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"fist-chat/internal/app"
	"fist-chat/internal/tui"

	"github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

const version = "1.0.0"

func applyEnvOverrides(cfg *app.Config) {
	if v := os.Getenv("FIST_SERVER_URL"); v != "" {
		cfg.ServerURL = v
	}
	if v := os.Getenv("FIST_LOG_FILE"); v != "" {
		cfg.LogFile = v
	}
}

func generateCompletion(shell string) error {
	switch shell {
	case "bash":
		fmt.Println("# bash completion for fistchat")
		fmt.Println("_fistchat_completions() {")
		fmt.Println("    local cur opts")
		fmt.Println("    COMPREPLY=()")
		fmt.Println("    cur=\"${COMP_WORDS[COMP_CWORD]}\"")
		fmt.Println("    opts=\"health setup completion help version --server --mock --help\"")
		fmt.Println("    if [[ $COMP_CWORD -eq 1 ]]; then")
		fmt.Println("        COMPREPLY=( $(compgen -W \"${opts}\" -- \"${cur}\") )")
		fmt.Println("    fi")
		fmt.Println("    return 0")
		fmt.Println("}")
		fmt.Println("complete -F _fistchat_completions fistchat")
	case "zsh":
		fmt.Println("# zsh completion for fistchat")
		fmt.Println("compdef _fistchat fistchat")
		fmt.Println("_fistchat() {")
		fmt.Println("    _arguments -C \\")
		fmt.Println("        '(-h --help)'{-h,--help}'[show help]' \\")
		fmt.Println("        '(-v --version)'{-v,--version}'[print version]' \\")
		fmt.Println("        '--server[FAQ server base URL]:url:' \\")
		fmt.Println("        '--mock[run against the built-in mock backend]' \\")
		fmt.Println("        '*::command:(health setup completion)'")
		fmt.Println("}")
	case "fish":
		fmt.Println("# fish completion for fistchat")
		fmt.Println("complete -c fistchat -f -a 'health setup completion help version'")
		fmt.Println("complete -c fistchat -s h -l help -d 'Show help'")
		fmt.Println("complete -c fistchat -s v -l version -d 'Print version'")
		fmt.Println("complete -c fistchat -l server -d 'FAQ server base URL'")
		fmt.Println("complete -c fistchat -l mock -d 'Use the built-in mock backend'")
	default:
		return fmt.Errorf("unsupported shell: %s", shell)
	}
	return nil
}

func loadConfig(serverFlag string, mockFlag bool) (app.Config, bool, error) {
	cfg, err := app.LoadConfig(app.DefaultConfigPath())
	if err != nil {
		return cfg, false, err
	}
	applyEnvOverrides(&cfg)
	if serverFlag != "" {
		cfg.ServerURL = serverFlag
	}
	if cfg.LogFile == "" {
		cfg.LogFile = app.DefaultLogPath()
	}
	return cfg, mockFlag || cfg.Mock, nil
}

func main() {
	var (
		serverFlag string
		mockFlag   bool
	)

	root := &cobra.Command{
		Use:     "fistchat",
		Short:   "Industrial Training FAQ chat client",
		Long:    "fistchat is a terminal chat client for the Industrial Training FAQ service.\n\nRun without arguments to start a conversation. Use --mock to try it without a server.",
		Version: version,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, mock, err := loadConfig(serverFlag, mockFlag)
			if err != nil {
				return err
			}

			application, err := app.NewApplication(cfg, mock)
			if err != nil {
				return err
			}
			defer application.Close()

			p := tea.NewProgram(tui.New(application), tea.WithAltScreen())
			if _, err := p.Run(); err != nil {
				return err
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&serverFlag, "server", "", "FAQ server base URL (overrides config and FIST_SERVER_URL)")
	root.Flags().BoolVar(&mockFlag, "mock", false, "Use the built-in mock backend instead of a server")

	healthCmd := &cobra.Command{
		Use:   "health",
		Short: "Probe the FAQ server once and report its state",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfig(serverFlag, false)
			if err != nil {
				return err
			}

			client := app.NewChatClient(cfg.ServerURL, "")
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := client.Health(ctx); err != nil {
				fmt.Printf("offline: %s (%v)\n", cfg.ServerURL, err)
				os.Exit(1)
			}
			fmt.Printf("online: %s\n", cfg.ServerURL)
			return nil
		},
	}
	root.AddCommand(healthCmd)

	setupCmd := &cobra.Command{
		Use:   "setup",
		Short: "Interactive first-run configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfig(serverFlag, false)
			if err != nil {
				return err
			}

			wizard := tui.NewSetupWizard(&cfg)
			p := tea.NewProgram(wizard, tea.WithAltScreen())
			if _, err := p.Run(); err != nil {
				return err
			}
			return nil
		},
	}
	root.AddCommand(setupCmd)

	completionCmd := &cobra.Command{
		Use:   "completion [shell]",
		Short: "Generate shell completion",
		Long:  "Generate shell completion script for fistchat.\n\nExamples:\n  - fistchat completion bash >> ~/.bashrc\n  - fistchat completion zsh > ~/.zsh/completion/_fistchat\n  - fistchat completion fish > ~/.config/fish/completions/fistchat.fish",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return generateCompletion(args[0])
		},
	}
	root.AddCommand(completionCmd)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
