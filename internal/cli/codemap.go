package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kennyfrc/llmctx/internal/engine"
)

var (
	codemapPatterns []string
	codemapQuiet    bool
)

// codemapCmd extracts and prints the code map alone.
var codemapCmd = &cobra.Command{
	Use:   "codemap",
	Short: "Extract the structural code map",
	Long: `Codemap parses the project's source files and prints the per-file map
of classes, functions, and types without bundling file contents.`,
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

		var progress func(done, total int)
		var reporter *ProgressReporter
		if !codemapQuiet {
			reporter = NewProgressReporter("Extracting entities")
			progress = reporter.Step
		}

		text, err := eng.Codemap(codemapPatterns, progress)
		if reporter != nil {
			reporter.Finish()
		}
		if err != nil {
			return err
		}

		fmt.Print(text)
		return nil
	},
}

func init() {
	codemapCmd.Flags().StringSliceVarP(&codemapPatterns, "pattern", "p", nil, "restrict the code map to matching paths")
	codemapCmd.Flags().BoolVarP(&codemapQuiet, "quiet", "q", false, "suppress progress output")
	rootCmd.AddCommand(codemapCmd)
}
