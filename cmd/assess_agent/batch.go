package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/candidate-assessor/internal/observability"
	"github.com/jonathan/candidate-assessor/internal/types"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Assess every candidate directory under a root concurrently",
	Long: `Assess a directory of candidates in one run. Every subdirectory containing
an answers.json file is treated as one candidate; a resume.txt, resume.md or
resume.html file next to it is used for profile extraction when present.

Candidates are assessed concurrently with bounded parallelism; reports print
in directory order once all candidates finish.`,
	RunE: runBatch,
}

var (
	batchDir      string
	batchRole     string
	batchParallel int
	batchCount    int
	batchJSON     bool
)

// resumeFileNames are probed in order inside each candidate directory.
var resumeFileNames = []string{"resume.txt", "resume.md", "resume.html"}

func init() {
	batchCmd.Flags().StringVarP(&batchDir, "dir", "d", "", "Directory with one subdirectory per candidate")
	batchCmd.Flags().StringVar(&batchRole, "role", "", "Target role all candidates are assessed for")
	batchCmd.Flags().IntVar(&batchParallel, "parallel", 4, "Maximum candidates assessed concurrently")
	batchCmd.Flags().IntVar(&batchCount, "count", 0, "Number of questions per candidate (default: one per answer)")
	batchCmd.Flags().BoolVar(&batchJSON, "json", false, "Print the reports as a JSON array")
	_ = batchCmd.MarkFlagRequired("dir")
	_ = batchCmd.MarkFlagRequired("role")

	rootCmd.AddCommand(batchCmd)
}

// batchCandidate is one discovered candidate directory.
type batchCandidate struct {
	name        string
	resumeFile  string
	answersFile string
}

type batchResult struct {
	Candidate string                  `json:"candidate"`
	Report    *types.AssessmentReport `json:"report"`
}

func runBatch(_ *cobra.Command, _ []string) error {
	if batchParallel < 1 {
		return fmt.Errorf("--parallel must be at least 1")
	}

	candidates, err := discoverCandidates(batchDir)
	if err != nil {
		return err
	}
	if len(candidates) == 0 {
		return fmt.Errorf("no candidate directories with an answers.json found under %s", batchDir)
	}

	ctx := context.Background()

	a, err := buildApp(ctx, true)
	if err != nil {
		return err
	}
	defer a.Close()

	// Workers write only their own slot, so reports print in directory
	// order without further coordination.
	results := make([]batchResult, len(candidates))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(batchParallel)
	for i, cand := range candidates {
		g.Go(func() error {
			report, err := assessCandidate(gctx, a, batchRole, "", cand.resumeFile, cand.answersFile, batchCount)
			if err != nil {
				return fmt.Errorf("candidate %s: %w", cand.name, err)
			}
			results[i] = batchResult{Candidate: cand.name, Report: report}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if batchJSON {
		return printJSON(results)
	}

	printer := observability.NewPrinter(os.Stdout)
	for _, res := range results {
		fmt.Fprintf(os.Stdout, "Candidate: %s\n", res.Candidate)
		printer.PrintReport(res.Report)
	}
	fmt.Fprintf(os.Stdout, "Assessed %d candidate(s)\n", len(results))
	return nil
}

// discoverCandidates lists subdirectories of root that contain an
// answers.json. Directories without one are skipped with a notice.
func discoverCandidates(root string) ([]batchCandidate, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("failed to read candidate directory: %w", err)
	}

	var candidates []batchCandidate
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dir := filepath.Join(root, entry.Name())

		answersFile := filepath.Join(dir, "answers.json")
		if _, err := os.Stat(answersFile); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: skipping %s: no answers.json\n", entry.Name())
			continue
		}

		cand := batchCandidate{name: entry.Name(), answersFile: answersFile}
		for _, name := range resumeFileNames {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				cand.resumeFile = path
				break
			}
		}
		candidates = append(candidates, cand)
	}
	return candidates, nil
}
