package cli

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kennyfrc/llmctx/internal/engine"
	"github.com/kennyfrc/llmctx/internal/watcher"
)

var watchOutput string

// watchCmd regenerates the bundle whenever watched sources change.
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Regenerate the bundle on source changes",
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

		var exts []string
		for _, p := range eng.Packs() {
			exts = append(exts, p.Extensions()...)
		}

		w, err := watcher.New(root, exts)
		if err != nil {
			return err
		}
		defer w.Stop()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		regenerate := func(files []string) {
			log.Printf("watch: %d files changed, regenerating", len(files))
			res, err := eng.Generate(ctx, engine.Request{RankQuery: cfg.Bundle.RankQuery})
			if err != nil {
				log.Printf("watch: generation failed: %v", err)
				return
			}
			if err := writeBundle(watchOutput, res.Bundle.Text); err != nil {
				log.Printf("watch: writing bundle: %v", err)
				return
			}
			log.Printf("watch: wrote %d files, ~%d tokens",
				len(res.Bundle.Files), res.Bundle.TokenEstimate)
		}

		// Produce an initial bundle before waiting for changes.
		regenerate(nil)

		w.Start(ctx, regenerate)
		log.Printf("watch: watching %s", root)
		<-ctx.Done()
		return nil
	},
}

func writeBundle(path, text string) error {
	return os.WriteFile(path, []byte(text), 0o644)
}

func init() {
	watchCmd.Flags().StringVarP(&watchOutput, "output", "o", "context.txt", "file the bundle is written to")
	rootCmd.AddCommand(watchCmd)
}
