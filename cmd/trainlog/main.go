// cmd/trainlog/main.go
//
// This is the entry point for the trainlog CLI.
// Running `trainlog` with no arguments opens the TUI; the subcommands run a
// single action and print the same message the TUI would show.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/kingrea/trainlog/internal/config"
	"github.com/kingrea/trainlog/internal/tui"
)

type rootOptions struct {
	projectDir string
	serverURL  string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "trainlog",
		Short:         "Registro de treinos e etapas do atleta",
		Long:          "trainlog registra treinos no mar e na academia, resultados de etapas e consulta o prognóstico no servidor de treinos.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, opts)
		},
	}
	root.PersistentFlags().StringVar(&opts.projectDir, "project", "", "directory holding .trainlog/ (defaults to cwd)")
	root.PersistentFlags().StringVar(&opts.serverURL, "server", "", "training-log server base URL (overrides config)")

	root.AddCommand(
		newTrainingCmd(opts, "mar", "Registra um treino no mar"),
		newTrainingCmd(opts, "academia", "Registra um treino na academia"),
		newStageCmd(opts),
		newPrognosisCmd(opts),
	)
	return root
}

// loadConfig prepares .trainlog/ in the project directory and applies the
// --server override.
func loadConfig(opts *rootOptions) (*config.Config, error) {
	project := opts.projectDir
	if project == "" {
		var err error
		project, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("determine working directory: %w", err)
		}
	}
	absoluteProject, err := filepath.Abs(project)
	if err != nil {
		return nil, fmt.Errorf("resolve project dir: %w", err)
	}
	if err := config.InitDir(absoluteProject); err != nil {
		return nil, err
	}
	cfg, err := config.NewConfig(absoluteProject)
	if err != nil {
		return nil, err
	}
	if err := cfg.SetServerURL(opts.serverURL); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runTUI(cmd *cobra.Command, opts *rootOptions) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error loading configuration: %v\n", err)
		return err
	}
	app, err := tui.NewApp(cfg, tui.WithContext(cmd.Context()))
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error starting trainlog: %v\n", err)
		return err
	}
	defer app.Close()

	// Run blocks until the user quits
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error running TUI: %v\n", err)
		return err
	}
	return nil
}
