package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jonathan/candidate-assessor/internal/ingest"
	"github.com/jonathan/candidate-assessor/internal/observability"
	"github.com/jonathan/candidate-assessor/internal/profile"
	"github.com/jonathan/candidate-assessor/internal/types"
	"github.com/spf13/cobra"
)

var questionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "Generate an interview question set for a role",
	Long:  "Generate role-targeted interview questions, optionally personalized with a candidate resume. Uses the external assist service when configured and falls back to the built-in question bank.",
	RunE:  runQuestions,
}

var (
	questionsRole       string
	questionsResumeFile string
	questionsCount      int
	questionsJSON       bool
)

func init() {
	questionsCmd.Flags().StringVar(&questionsRole, "role", "", "Target role, e.g. \"backend engineer\"")
	questionsCmd.Flags().StringVarP(&questionsResumeFile, "resume", "r", "", "Path to resume file for personalized questions (optional)")
	questionsCmd.Flags().IntVar(&questionsCount, "count", 0, "Number of questions to generate (default from config)")
	questionsCmd.Flags().BoolVar(&questionsJSON, "json", false, "Print the questions as JSON")
	_ = questionsCmd.MarkFlagRequired("role")

	rootCmd.AddCommand(questionsCmd)
}

func runQuestions(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	a, err := buildApp(ctx, true)
	if err != nil {
		return err
	}
	defer a.Close()

	var prof *types.CandidateProfile
	if questionsResumeFile != "" {
		text, err := ingest.FromFile(questionsResumeFile)
		if err != nil {
			return fmt.Errorf("failed to read resume: %w", err)
		}
		prof = profile.NewExtractor().Extract(text)
	}

	count := a.cfg.Assessment.QuestionCount
	if cmd.Flags().Changed("count") {
		count = questionsCount
	}

	qs := a.generator.Generate(ctx, questionsRole, prof, count)

	if questionsJSON {
		return printJSON(qs)
	}

	observability.NewPrinter(os.Stdout).PrintQuestions(qs)
	return nil
}
