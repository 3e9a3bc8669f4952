package cli

import (
	"github.com/spf13/cobra"

	"github.com/kennyfrc/llmctx/internal/engine"
	"github.com/kennyfrc/llmctx/internal/mcp"
)

// mcpCmd serves context generation over the Model Context Protocol.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve context generation over MCP on stdio",
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

		return mcp.NewServer(eng).Serve(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
