package cli

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/kennyfrc/llmctx/internal/engine"
)

var (
	generateRankQuery    string
	generatePatterns     []string
	generateSkipCodemap  bool
	generateOutput       string
	generateQuiet        bool
	generateInstructions string
)

// generateCmd assembles the full context bundle.
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Assemble the context bundle for the project",
	Long: `Generate discovers the project's source files, extracts the code map,
and writes the assembled <context> payload to stdout or a file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		root, cfg, err := setup()
		if err != nil {
			return err
		}

		eng, err := engine.New(root, cfg)
		if err != nil {
			return err
		}
		defer eng.Close()

		req := engine.Request{
			Patterns:     generatePatterns,
			RankQuery:    generateRankQuery,
			Instructions: generateInstructions,
			SkipCodemap:  generateSkipCodemap,
		}
		if req.RankQuery == "" {
			req.RankQuery = cfg.Bundle.RankQuery
		}

		var reporter *ProgressReporter
		if !generateQuiet {
			reporter = NewProgressReporter("Extracting entities")
			req.Progress = reporter.Step
		}

		res, err := eng.Generate(cmd.Context(), req)
		if reporter != nil {
			reporter.Finish()
		}
		if err != nil {
			return err
		}

		if generateOutput != "" {
			if err := os.WriteFile(generateOutput, []byte(res.Bundle.Text), 0o644); err != nil {
				return err
			}
			log.Printf("wrote %d files, ~%d tokens to %s",
				len(res.Bundle.Files), res.Bundle.TokenEstimate, generateOutput)
		} else {
			fmt.Print(res.Bundle.Text)
		}

		if res.Bundle.OverBudget {
			log.Printf("warning: estimate %d tokens exceeds budget %d",
				res.Bundle.TokenEstimate, cfg.Bundle.TokenBudget)
		}
		return nil
	},
}

func init() {
	generateCmd.Flags().StringVarP(&generateRankQuery, "rank", "r", "", "order files by relevance to this query")
	generateCmd.Flags().StringVarP(&generateInstructions, "instructions", "m", "", "user instructions block included in the bundle")
	generateCmd.Flags().StringSliceVarP(&generatePatterns, "pattern", "p", nil, "restrict the code map to matching paths")
	generateCmd.Flags().BoolVar(&generateSkipCodemap, "no-codemap", false, "leave the code map out of the bundle")
	generateCmd.Flags().StringVarP(&generateOutput, "output", "o", "", "write the bundle to a file instead of stdout")
	generateCmd.Flags().BoolVarP(&generateQuiet, "quiet", "q", false, "suppress progress output")
	rootCmd.AddCommand(generateCmd)
}
