package mcpserver

import (
	"context"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/panbanda/strata/internal/output"
	"github.com/panbanda/strata/pkg/analyzer/commitlog"
	"github.com/panbanda/strata/pkg/analyzer/history"
	"github.com/panbanda/strata/pkg/analyzer/search"
	"github.com/panbanda/strata/pkg/config"
)

// Common input structures for tools

// AnalyzeInput is the base input for all analysis tools.
type AnalyzeInput struct {
	Path   string `json:"path,omitempty" jsonschema:"Repository path to analyze. Defaults to current directory if empty."`
	Format string `json:"format,omitempty" jsonschema:"Output format: toon (default), json, or markdown."`
}

// HistoryInput configures the longitudinal metrics tool.
type HistoryInput struct {
	AnalyzeInput
	Window     string   `json:"window,omitempty" jsonschema:"Trailing history window such as 30d, 2w, 6m, or 1y. Default 1y."`
	Extensions []string `json:"extensions,omitempty" jsonschema:"File extensions whose content is measured. Defaults to the configured set."`
}

// ExtractInput configures the commit-history extraction tool.
type ExtractInput struct {
	AnalyzeInput
	Window string `json:"window,omitempty" jsonschema:"Trailing history window such as 1y or 10y. Default 10y."`
}

// SearchInput configures the keyword search tool.
type SearchInput struct {
	AnalyzeInput
	Keywords   []string `json:"keywords" jsonschema:"Keywords to search for in files at HEAD."`
	IgnoreCase bool     `json:"ignore_case,omitempty" jsonschema:"Case-insensitive matching."`
}

// Helper functions

func getPath(input AnalyzeInput) string {
	if input.Path == "" {
		return "."
	}
	return input.Path
}

func getFormat(input AnalyzeInput) output.Format {
	switch input.Format {
	case "json":
		return output.FormatJSON
	case "markdown", "md":
		return output.FormatMarkdown
	default:
		return output.FormatTOON
	}
}

func getWindow(value, fallback string) (time.Duration, error) {
	s := value
	if s == "" {
		s = fallback
	}
	return config.ParseWindow(s)
}

func formatOutput(data any, format output.Format) (string, error) {
	out, err := output.MarshalTOON(data)
	if err != nil {
		return "", err
	}
	if format == output.FormatMarkdown {
		return "```\n" + out + "\n```", nil
	}
	return out, nil
}

func toolResult(data any, format output.Format) (*mcp.CallToolResult, any, error) {
	text, err := formatOutput(data, format)
	if err != nil {
		return nil, nil, err
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}, nil, nil
}

func toolError(msg string) (*mcp.CallToolResult, any, error) {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: "Error: " + msg},
		},
		IsError: true,
	}, nil, nil
}

// Tool handlers

func handleAnalyzeHistory(ctx context.Context, req *mcp.CallToolRequest, input HistoryInput) (*mcp.CallToolResult, any, error) {
	format := getFormat(input.AnalyzeInput)
	cfg := config.LoadOrDefault()

	winDur, err := getWindow(input.Window, cfg.Analysis.Window)
	if err != nil {
		return toolError(err.Error())
	}

	exts := input.Extensions
	if len(exts) == 0 {
		exts = cfg.Analysis.Extensions
	}

	a := history.New(
		history.WithWindow(winDur),
		history.WithExtensions(exts),
		history.WithExcludeFunc(cfg.ShouldExclude),
		history.WithWorkers(cfg.Analysis.Workers),
		history.WithMaxFileSize(cfg.Analysis.MaxFileSize),
	)
	defer a.Close()

	ds, err := a.Analyze(ctx, getPath(input.AnalyzeInput))
	if err != nil {
		return toolError(err.Error())
	}

	return toolResult(ds, format)
}

func handleExtractCommits(ctx context.Context, req *mcp.CallToolRequest, input ExtractInput) (*mcp.CallToolResult, any, error) {
	format := getFormat(input.AnalyzeInput)
	cfg := config.LoadOrDefault()

	winDur, err := getWindow(input.Window, cfg.Extract.Window)
	if err != nil {
		return toolError(err.Error())
	}

	a := commitlog.New(commitlog.WithWindow(winDur))
	defer a.Close()

	doc, err := a.Analyze(ctx, getPath(input.AnalyzeInput))
	if err != nil {
		return toolError(err.Error())
	}

	return toolResult(doc, format)
}

func handleSearchKeywords(ctx context.Context, req *mcp.CallToolRequest, input SearchInput) (*mcp.CallToolResult, any, error) {
	format := getFormat(input.AnalyzeInput)

	if len(input.Keywords) == 0 {
		return toolError("at least one keyword is required")
	}

	cfg := config.LoadOrDefault()
	a := search.New(input.Keywords,
		search.WithIgnoreCase(input.IgnoreCase),
		search.WithWorkers(cfg.Analysis.Workers),
		search.WithMaxFileSize(cfg.Analysis.MaxFileSize),
	)
	defer a.Close()

	report, err := a.Analyze(ctx, getPath(input.AnalyzeInput))
	if err != nil {
		return toolError(err.Error())
	}

	return toolResult(report, format)
}
