// Package main provides the entry point for the Candidate Assessor CLI and
// HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "assess_agent",
	Short: "Candidate Assessment Engine",
	Long:  "Candidate Assessor extracts structured profiles from resume text, generates role-targeted interview questions, scores free-text answers across six dimensions, and aggregates the results into a hiring verdict, via CLI or REST API.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
