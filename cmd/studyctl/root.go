package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/studymate/backend/internal/config"
	"github.com/studymate/backend/internal/logger"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "studyctl",
		Short:         "StudyMate operator tool",
		Long:          "studyctl generates flashcards and notes with the configured LLM provider and manages the database schema.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().String("provider", "", "LLM provider override (anthropic, openai, gemini, cli, mock)")

	root.AddCommand(newSubjectsCmd())
	root.AddCommand(newGenerateCmd())
	root.AddCommand(newMigrateCmd())
	return root
}

// loadConfig reads the shared configuration and applies the --provider
// override.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if p, _ := cmd.Flags().GetString("provider"); p != "" {
		cfg.LLM.Provider = p
		if err := cfg.LLM.Validate(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// cliLogger logs to stderr so stdout carries only command output.
func cliLogger(cfg *config.Config) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logger.ParseLevel(cfg.Server.LogLevel),
	}))
}
