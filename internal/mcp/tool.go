package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/kennyfrc/llmctx/internal/engine"
	"github.com/kennyfrc/llmctx/internal/packs"
)

// GenerateContextResponse is the generate_context tool payload.
type GenerateContextResponse struct {
	Context       string   `json:"context"`
	Files         []string `json:"files"`
	Skipped       []string `json:"skipped,omitempty"`
	TokenEstimate int      `json:"token_estimate"`
	OverBudget    bool     `json:"over_budget"`
}

// AddGenerateContextTool registers the generate_context tool.
func AddGenerateContextTool(s *server.MCPServer, eng *engine.Engine) {
	tool := mcp.NewTool(
		"generate_context",
		mcp.WithDescription("Assemble an LLM context bundle from the project: selected source files plus a structural code map, wrapped in a <context> envelope."),
		mcp.WithString("rank_query",
			mcp.Description("Optional relevance query; matching files move to the front of the bundle")),
		mcp.WithString("instructions",
			mcp.Description("Optional user instructions rendered at the top of the bundle")),
		mcp.WithArray("patterns",
			mcp.Description("Optional glob patterns restricting which files the code map covers")),
		mcp.WithBoolean("skip_codemap",
			mcp.Description("Leave the code map out of the bundle")),
	)

	s.AddTool(tool, createGenerateContextHandler(eng))
}

func createGenerateContextHandler(eng *engine.Engine) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		argsMap, ok := request.Params.Arguments.(map[string]interface{})
		if !ok {
			argsMap = map[string]interface{}{}
		}

		req := engine.Request{}
		if q, ok := argsMap["rank_query"].(string); ok {
			req.RankQuery = q
		}
		if inst, ok := argsMap["instructions"].(string); ok {
			req.Instructions = inst
		}
		if skip, ok := argsMap["skip_codemap"].(bool); ok {
			req.SkipCodemap = skip
		}
		req.Patterns = stringSlice(argsMap["patterns"])

		res, err := eng.Generate(ctx, req)
		if err != nil {
			return nil, fmt.Errorf("context generation failed: %w", err)
		}

		response := &GenerateContextResponse{
			Context:       res.Bundle.Text,
			Files:         res.Bundle.Files,
			Skipped:       res.Bundle.Skipped,
			TokenEstimate: res.Bundle.TokenEstimate,
			OverBudget:    res.Bundle.OverBudget,
		}
		jsonData, err := json.Marshal(response)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal response: %w", err)
		}
		return mcp.NewToolResultText(string(jsonData)), nil
	}
}

// AddGetCodemapTool registers the get_codemap tool.
func AddGetCodemapTool(s *server.MCPServer, eng *engine.Engine) {
	tool := mcp.NewTool(
		"get_codemap",
		mcp.WithDescription("Extract the structural code map alone: classes, functions, and types per file, without file contents."),
		mcp.WithArray("patterns",
			mcp.Description("Optional glob patterns restricting which files the code map covers")),
	)

	s.AddTool(tool, createGetCodemapHandler(eng))
}

func createGetCodemapHandler(eng *engine.Engine) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		argsMap, _ := request.Params.Arguments.(map[string]interface{})

		text, err := eng.Codemap(stringSlice(argsMap["patterns"]), nil)
		if errors.Is(err, packs.ErrEmptyCodemap) {
			return mcp.NewToolResultError("no entities extracted from any file"), nil
		}
		if err != nil {
			return nil, fmt.Errorf("codemap generation failed: %w", err)
		}
		return mcp.NewToolResultText(text), nil
	}
}

func stringSlice(v interface{}) []string {
	items, ok := v.([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
