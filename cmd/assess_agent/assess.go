package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/jonathan/candidate-assessor/internal/assessment"
	"github.com/jonathan/candidate-assessor/internal/ingest"
	"github.com/jonathan/candidate-assessor/internal/observability"
	"github.com/jonathan/candidate-assessor/internal/types"
	"github.com/spf13/cobra"
)

var assessCmd = &cobra.Command{
	Use:   "assess",
	Short: "Run a full offline assessment from a resume and answer file",
	Long: `Run a complete assessment session in one shot: extract the candidate profile,
generate the question set, score every answer in order, and print the final
report with the hiring verdict.

The answers file is a JSON array of strings, one entry per question in order.`,
	RunE: runAssess,
}

var (
	assessRole        string
	assessName        string
	assessResumeFile  string
	assessAnswersFile string
	assessCount       int
	assessJSON        bool
)

func init() {
	assessCmd.Flags().StringVar(&assessRole, "role", "", "Target role the candidate is assessed for")
	assessCmd.Flags().StringVarP(&assessName, "name", "n", "", "Candidate name (default: extracted from the resume)")
	assessCmd.Flags().StringVarP(&assessResumeFile, "resume", "r", "", "Path to resume file (optional)")
	assessCmd.Flags().StringVarP(&assessAnswersFile, "answers", "a", "", "Path to JSON file with the ordered answer array")
	assessCmd.Flags().IntVar(&assessCount, "count", 0, "Number of questions (default: one per answer)")
	assessCmd.Flags().BoolVar(&assessJSON, "json", false, "Print the report as JSON instead of the boxed summary")
	_ = assessCmd.MarkFlagRequired("role")
	_ = assessCmd.MarkFlagRequired("answers")

	rootCmd.AddCommand(assessCmd)
}

func runAssess(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	a, err := buildApp(ctx, true)
	if err != nil {
		return err
	}
	defer a.Close()

	report, err := assessCandidate(ctx, a, assessRole, assessName, assessResumeFile, assessAnswersFile, assessCount)
	if err != nil {
		return err
	}

	if assessJSON {
		return printJSON(report)
	}

	observability.NewPrinter(os.Stdout).PrintReport(report)
	return nil
}

// assessCandidate runs one offline session end to end. batch reuses it for
// every candidate directory.
func assessCandidate(ctx context.Context, a *app, role, name, resumeFile, answersFile string, count int) (*types.AssessmentReport, error) {
	var resumeText string
	if resumeFile != "" {
		text, err := ingest.FromFile(resumeFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read resume: %w", err)
		}
		resumeText = text
	}

	answers, err := readAnswers(answersFile)
	if err != nil {
		return nil, err
	}

	return a.engine.Assess(ctx, assessment.AssessRequest{
		Role:          role,
		CandidateName: name,
		ResumeText:    resumeText,
		Answers:       answers,
		QuestionCount: count,
	})
}

// readAnswers loads a JSON array of answer strings.
func readAnswers(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read answers file: %w", err)
	}

	var answers []string
	if err := json.Unmarshal(data, &answers); err != nil {
		return nil, fmt.Errorf("failed to parse answers file %s (expected a JSON array of strings): %w", path, err)
	}
	if len(answers) == 0 {
		return nil, fmt.Errorf("answers file %s is empty", path)
	}
	return answers, nil
}
