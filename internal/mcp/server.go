// Package mcp exposes context generation over the Model Context Protocol
// so agent hosts can pull bundles and codemaps without shelling out.
package mcp

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/mark3labs/mcp-go/server"

	"github.com/kennyfrc/llmctx/internal/engine"
)

// Server manages the MCP server lifecycle around one engine.
type Server struct {
	engine *engine.Engine
	mcp    *server.MCPServer
}

// NewServer creates the stdio MCP server and registers the llmctx tools.
func NewServer(eng *engine.Engine) *Server {
	mcpServer := server.NewMCPServer(
		"llmctx",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	AddGenerateContextTool(mcpServer, eng)
	AddGetCodemapTool(mcpServer, eng)

	return &Server{engine: eng, mcp: mcpServer}
}

// Serve starts the server on stdio and blocks until shutdown.
func (s *Server) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("mcp: serving on stdio")
		if err := server.ServeStdio(s.mcp); err != nil {
			errCh <- err
		}
	}()

	select {
	case <-sigCh:
		log.Printf("mcp: shutdown signal received")
		return nil
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
