package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/jonathan/candidate-assessor/internal/ingest"
	"github.com/jonathan/candidate-assessor/internal/observability"
	"github.com/jonathan/candidate-assessor/internal/profile"
	"github.com/jonathan/candidate-assessor/internal/types"
	"github.com/spf13/cobra"
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Score a single interview answer",
	Long:  "Score one free-text answer against a question across the six assessment dimensions and print the evaluation with feedback.",
	RunE:  runEvaluate,
}

var (
	evaluateRole       string
	evaluateQuestion   string
	evaluateCategory   string
	evaluateAnswer     string
	evaluateAnswerFile string
	evaluateResumeFile string
	evaluateJSON       bool
)

func init() {
	evaluateCmd.Flags().StringVar(&evaluateRole, "role", "", "Target role the answer is evaluated for")
	evaluateCmd.Flags().StringVarP(&evaluateQuestion, "question", "q", "", "Question text the answer responds to")
	evaluateCmd.Flags().StringVar(&evaluateCategory, "category", types.CategoryTechnical, "Question category: technical, problem_solving, system_design, behavioral or innovation")
	evaluateCmd.Flags().StringVar(&evaluateAnswer, "answer", "", "Answer text (mutually exclusive with --answer-file)")
	evaluateCmd.Flags().StringVarP(&evaluateAnswerFile, "answer-file", "a", "", "Path to answer text file (mutually exclusive with --answer)")
	evaluateCmd.Flags().StringVarP(&evaluateResumeFile, "resume", "r", "", "Path to resume file for skill-alignment context (optional)")
	evaluateCmd.Flags().BoolVar(&evaluateJSON, "json", false, "Print the evaluation as JSON")
	_ = evaluateCmd.MarkFlagRequired("role")
	_ = evaluateCmd.MarkFlagRequired("question")

	rootCmd.AddCommand(evaluateCmd)
}

func runEvaluate(_ *cobra.Command, _ []string) error {
	if evaluateAnswer != "" && evaluateAnswerFile != "" {
		return fmt.Errorf("--answer and --answer-file are mutually exclusive; provide only one")
	}
	if evaluateAnswer == "" && evaluateAnswerFile == "" {
		return fmt.Errorf("either --answer or --answer-file must be provided")
	}

	answer := evaluateAnswer
	if evaluateAnswerFile != "" {
		data, err := os.ReadFile(evaluateAnswerFile)
		if err != nil {
			return fmt.Errorf("failed to read answer file: %w", err)
		}
		answer = string(data)
	}

	ctx := context.Background()

	a, err := buildApp(ctx, true)
	if err != nil {
		return err
	}
	defer a.Close()

	var prof *types.CandidateProfile
	if evaluateResumeFile != "" {
		text, err := ingest.FromFile(evaluateResumeFile)
		if err != nil {
			return fmt.Errorf("failed to read resume: %w", err)
		}
		prof = profile.NewExtractor().Extract(text)
	}

	q := types.Question{
		Index:    1,
		Text:     evaluateQuestion,
		Category: strings.ToLower(strings.TrimSpace(evaluateCategory)),
	}

	eval, err := a.engine.EvaluateAnswer(ctx, evaluateRole, q, answer, prof)
	if err != nil {
		return err
	}

	if evaluateJSON {
		return printJSON(eval)
	}

	observability.NewPrinter(os.Stdout).PrintEvaluation(&eval)
	return nil
}
