// Package bundle assembles the final context payload: the selected files'
// contents framed in a delimited envelope, with the rendered codemap
// appended and a token estimate attached.
package bundle

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/kennyfrc/llmctx/internal/tokens"
)

const (
	envelopeOpen  = "<context>"
	envelopeClose = "</context>"
	fileRule      = "----------------------------------------"
)

// Options tune one assembly run.
type Options struct {
	// Instructions is an optional user prompt rendered in its own block at
	// the top of the envelope.
	Instructions string

	// MaxFileBytes skips any file larger than this. Zero means no ceiling.
	MaxFileBytes int

	// Counter estimates the bundle's token footprint. Optional.
	Counter tokens.Counter

	// TokenBudget marks the bundle over budget when the estimate exceeds
	// it. Zero disables the check.
	TokenBudget int
}

// Bundle is one assembled context payload.
type Bundle struct {
	Text          string
	Files         []string // paths included, in bundle order
	Skipped       []string // paths dropped (unreadable or oversized)
	TokenEstimate int
	OverBudget    bool
}

// Assemble reads paths in order and builds the payload. codemapText, when
// non-empty, is appended inside the envelope after the file sections.
// Unreadable and oversized files degrade to warnings.
func Assemble(paths []string, codemapText string, opts Options) *Bundle {
	var sb strings.Builder
	sb.WriteString(envelopeOpen)
	sb.WriteString("\n")

	if opts.Instructions != "" {
		sb.WriteString("<user_instructions>\n")
		sb.WriteString(opts.Instructions)
		if !strings.HasSuffix(opts.Instructions, "\n") {
			sb.WriteString("\n")
		}
		sb.WriteString("</user_instructions>\n")
	}

	b := &Bundle{}
	for _, path := range paths {
		content, err := os.ReadFile(path)
		if err != nil {
			log.Printf("bundle: warning: reading %s: %v", path, err)
			b.Skipped = append(b.Skipped, path)
			continue
		}
		if opts.MaxFileBytes > 0 && len(content) > opts.MaxFileBytes {
			log.Printf("bundle: warning: %s exceeds the %d byte ceiling, skipped", path, opts.MaxFileBytes)
			b.Skipped = append(b.Skipped, path)
			continue
		}

		b.Files = append(b.Files, path)
		fmt.Fprintf(&sb, "\nFile: %s\n%s\n", path, fileRule)
		sb.Write(content)
		if len(content) > 0 && content[len(content)-1] != '\n' {
			sb.WriteString("\n")
		}
	}

	if codemapText != "" {
		sb.WriteString("\n")
		sb.WriteString(codemapText)
	}

	sb.WriteString(envelopeClose)
	sb.WriteString("\n")
	b.Text = sb.String()

	if opts.Counter != nil {
		b.TokenEstimate = opts.Counter.Count(b.Text)
		b.OverBudget = opts.TokenBudget > 0 && b.TokenEstimate > opts.TokenBudget
	}
	return b
}
