package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kennyfrc/llmctx/internal/engine"
)

// packsCmd lists the language packs and their status.
var packsCmd = &cobra.Command{
	Use:   "packs",
	Short: "List language packs and their status",
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

		for _, p := range eng.Packs() {
			status := "available"
			if !p.Available {
				status = "unavailable"
			}
			origin := "built-in"
			if p.Path != "" {
				origin = p.Path
			}
			fmt.Printf("%-12s %-12s %-10s %s\n",
				p.Name, status, origin, strings.Join(p.Extensions(), " "))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(packsCmd)
}
