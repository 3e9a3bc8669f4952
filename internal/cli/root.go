// Package cli implements the llmctx command tree.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kennyfrc/llmctx/internal/config"
)

var (
	rootDir string
	verbose bool
	debug   bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "llmctx",
	Short: "llmctx - bundle project context for LLMs",
	Long: `llmctx assembles source files and a structural code map into a single
context payload ready to paste into an LLM conversation or serve to an
agent over MCP.`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. Called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&rootDir, "root", "C", "", "project root (default is the working directory)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "keep language-pack stdout/stderr visible")
}

// projectRoot resolves the --root flag against the working directory.
func projectRoot() (string, error) {
	if rootDir != "" {
		return rootDir, nil
	}
	return os.Getwd()
}

// setup resolves the project root and loads its configuration, applying
// global flag overrides.
func setup() (string, *config.Config, error) {
	root, err := projectRoot()
	if err != nil {
		return "", nil, err
	}
	cfg, err := config.LoadConfigFromDir(root)
	if err != nil {
		return "", nil, err
	}
	if debug {
		cfg.Packs.Debug = true
	}
	return root, cfg, nil
}
