package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/studymate/backend/internal/generator"
	"github.com/studymate/backend/internal/models"
	"github.com/studymate/backend/internal/study"
)

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Run a generation pipeline once and print the result",
	}

	cmd.PersistentFlags().String("topic", "", "Topic to study (required)")
	cmd.PersistentFlags().String("subject", "", "Subject; classified from the topic when empty")
	cmd.PersistentFlags().String("difficulty", "", "easy, intermediate or hard")
	cmd.PersistentFlags().Bool("json", false, "Print the response as JSON")

	flashcards := &cobra.Command{
		Use:   "flashcards",
		Short: "Generate a flashcard set",
		RunE:  runGenerateFlashcards,
	}
	flashcards.Flags().Int("count", models.DefaultNumCards, "Number of cards")

	notes := &cobra.Command{
		Use:   "notes",
		Short: "Generate markdown study notes",
		RunE:  runGenerateNotes,
	}

	cmd.AddCommand(flashcards, notes)
	return cmd
}

func newPipeline(cmd *cobra.Command) (*study.Service, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	log := cliLogger(cfg)

	client, err := generator.NewClient(cmd.Context(), cfg.LLM, log)
	if err != nil {
		return nil, err
	}
	return study.NewService(generator.NewGateway(client, log), nil, log), nil
}

func runGenerateFlashcards(cmd *cobra.Command, _ []string) error {
	topic, _ := cmd.Flags().GetString("topic")
	subject, _ := cmd.Flags().GetString("subject")
	difficulty, _ := cmd.Flags().GetString("difficulty")
	count, _ := cmd.Flags().GetInt("count")
	asJSON, _ := cmd.Flags().GetBool("json")

	svc, err := newPipeline(cmd)
	if err != nil {
		return err
	}

	resp, err := svc.GenerateFlashcards(cmd.Context(), models.GenerateFlashcardsRequest{
		Topic:      topic,
		Subject:    subject,
		Difficulty: models.Difficulty(difficulty),
		NumCards:   count,
	})
	if err != nil {
		return reportFailure(cmd.OutOrStdout(), err, asJSON)
	}

	if asJSON {
		return writeJSON(cmd.OutOrStdout(), resp)
	}
	printFlashcards(cmd.OutOrStdout(), resp)
	return nil
}

func runGenerateNotes(cmd *cobra.Command, _ []string) error {
	topic, _ := cmd.Flags().GetString("topic")
	subject, _ := cmd.Flags().GetString("subject")
	difficulty, _ := cmd.Flags().GetString("difficulty")
	asJSON, _ := cmd.Flags().GetBool("json")

	svc, err := newPipeline(cmd)
	if err != nil {
		return err
	}

	resp, err := svc.GenerateNotes(cmd.Context(), models.GenerateNotesRequest{
		Topic:      topic,
		Subject:    subject,
		Difficulty: models.Difficulty(difficulty),
	})
	if err != nil {
		return reportFailure(cmd.OutOrStdout(), err, asJSON)
	}

	if asJSON {
		return writeJSON(cmd.OutOrStdout(), resp)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "<!-- %s · %s · %s · %s -->\n\n",
		resp.Metadata.Topic, resp.Metadata.Subject, resp.Metadata.Difficulty, resp.Metadata.AIModel)
	fmt.Fprintln(cmd.OutOrStdout(), resp.Notes)
	return nil
}

// reportFailure prints any fallback content, then returns the pipeline error
// so the process exits non-zero.
func reportFailure(w io.Writer, err error, asJSON bool) error {
	var pe *study.PipelineError
	if !errors.As(err, &pe) || pe.Fallback == nil {
		return err
	}

	if asJSON {
		resp := models.NewErrorResponse(pe.Message)
		resp.Fallback = pe.Fallback
		if werr := writeJSON(w, resp); werr != nil {
			return werr
		}
		return err
	}

	switch fb := pe.Fallback.(type) {
	case []models.Flashcard:
		fmt.Fprintln(w, "Placeholder flashcards:")
		printCards(w, fb)
	case string:
		fmt.Fprintln(w, fb)
	}
	return err
}

func printFlashcards(w io.Writer, resp *models.FlashcardsResponse) {
	m := resp.Metadata
	fmt.Fprintf(w, "%s (%s, %s) · %d of %d cards · %s\n",
		m.Topic, m.Subject, m.Difficulty, m.NumCards, m.RequestedCards, m.AIModel)
	fmt.Fprintln(w, strings.Repeat("─", 60))
	printCards(w, resp.Flashcards)
}

func printCards(w io.Writer, cards []models.Flashcard) {
	for i, c := range cards {
		fmt.Fprintf(w, "%2d. [%s] %s\n", i+1, c.Difficulty, c.Front)
		fmt.Fprintf(w, "    → %s\n", c.Back)
		if c.Hint != "" {
			fmt.Fprintf(w, "    hint: %s\n", c.Hint)
		}
		if len(c.Tags) > 0 {
			fmt.Fprintf(w, "    tags: %s\n", strings.Join(c.Tags, ", "))
		}
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
