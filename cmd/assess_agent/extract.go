package main

import (
	"fmt"
	"os"

	"github.com/jonathan/candidate-assessor/internal/ingest"
	"github.com/jonathan/candidate-assessor/internal/observability"
	"github.com/jonathan/candidate-assessor/internal/profile"
	"github.com/spf13/cobra"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract a structured candidate profile from a resume file",
	Long:  "Extract contact details, skills, experience and education from a resume file (plain text, markdown or HTML) and print the structured profile.",
	RunE:  runExtract,
}

var (
	extractResumeFile string
	extractJSON       bool
)

func init() {
	extractCmd.Flags().StringVarP(&extractResumeFile, "resume", "r", "", "Path to resume file")
	extractCmd.Flags().BoolVar(&extractJSON, "json", false, "Print the profile as JSON instead of the boxed summary")
	_ = extractCmd.MarkFlagRequired("resume")

	rootCmd.AddCommand(extractCmd)
}

func runExtract(_ *cobra.Command, _ []string) error {
	text, err := ingest.FromFile(extractResumeFile)
	if err != nil {
		return fmt.Errorf("failed to read resume: %w", err)
	}

	prof := profile.NewExtractor().Extract(text)

	if extractJSON {
		return printJSON(prof)
	}

	observability.NewPrinter(os.Stdout).PrintProfile(prof)
	return nil
}
