package mcpserver

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/panbanda/strata/internal/output"
)

// TestServerCreation verifies the MCP server can be created without panicking.
func TestServerCreation(t *testing.T) {
	server := NewServer("1.0.0-test")
	if server == nil {
		t.Fatal("NewServer() returned nil")
	}
	if server.server == nil {
		t.Fatal("NewServer().server is nil")
	}
}

// TestServerCreationEmptyVersion verifies empty version defaults to "dev".
func TestServerCreationEmptyVersion(t *testing.T) {
	server := NewServer("")
	if server == nil {
		t.Fatal("NewServer(\"\") returned nil")
	}
}

// TestToolDescriptions verifies all description functions return the
// guidance sections the tools rely on.
func TestToolDescriptions(t *testing.T) {
	descriptions := map[string]func() string{
		"history": describeHistory,
		"extract": describeExtract,
		"search":  describeSearch,
	}

	for name, fn := range descriptions {
		t.Run(name, func(t *testing.T) {
			desc := fn()
			if desc == "" {
				t.Errorf("%s description is empty", name)
			}
			if !strings.Contains(desc, "USE WHEN:") {
				t.Errorf("%s description missing USE WHEN section", name)
			}
			if !strings.Contains(desc, "INTERPRETING RESULTS:") {
				t.Errorf("%s description missing INTERPRETING RESULTS section", name)
			}
			if !strings.Contains(desc, "METRICS RETURNED:") {
				t.Errorf("%s description missing METRICS RETURNED section", name)
			}
		})
	}
}

func TestGetPath(t *testing.T) {
	if got := getPath(AnalyzeInput{}); got != "." {
		t.Errorf("getPath(empty) = %q, want %q", got, ".")
	}
	if got := getPath(AnalyzeInput{Path: "/tmp/repo"}); got != "/tmp/repo" {
		t.Errorf("getPath = %q, want %q", got, "/tmp/repo")
	}
}

func TestGetFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected output.Format
	}{
		{"", output.FormatTOON},
		{"toon", output.FormatTOON},
		{"json", output.FormatJSON},
		{"markdown", output.FormatMarkdown},
		{"md", output.FormatMarkdown},
		{"bogus", output.FormatTOON},
	}
	for _, tt := range tests {
		if got := getFormat(AnalyzeInput{Format: tt.input}); got != tt.expected {
			t.Errorf("getFormat(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestGetWindow(t *testing.T) {
	d, err := getWindow("", "1y")
	if err != nil {
		t.Fatalf("getWindow fallback returned error: %v", err)
	}
	if d != 365*24*time.Hour {
		t.Errorf("getWindow fallback = %v, want one year", d)
	}

	d, err = getWindow("30d", "1y")
	if err != nil {
		t.Fatalf("getWindow returned error: %v", err)
	}
	if d != 30*24*time.Hour {
		t.Errorf("getWindow(30d) = %v, want 30 days", d)
	}

	if _, err := getWindow("nope", "1y"); err == nil {
		t.Error("getWindow with invalid value should fail")
	}
}

func TestToolError(t *testing.T) {
	result, _, err := toolError("boom")
	if err != nil {
		t.Fatalf("toolError returned error: %v", err)
	}
	if !result.IsError {
		t.Error("toolError result should have IsError set")
	}
	text := result.Content[0].(*mcp.TextContent).Text
	if text != "Error: boom" {
		t.Errorf("toolError text = %q", text)
	}
}

func TestToolResultMarkdownFencing(t *testing.T) {
	data := map[string]int{"commits": 3}

	result, _, err := toolResult(data, output.FormatMarkdown)
	if err != nil {
		t.Fatalf("toolResult returned error: %v", err)
	}
	text := result.Content[0].(*mcp.TextContent).Text
	if !strings.HasPrefix(text, "```\n") || !strings.HasSuffix(text, "\n```") {
		t.Errorf("markdown result not fenced: %q", text)
	}

	result, _, err = toolResult(data, output.FormatTOON)
	if err != nil {
		t.Fatalf("toolResult returned error: %v", err)
	}
	text = result.Content[0].(*mcp.TextContent).Text
	if strings.Contains(text, "```") {
		t.Errorf("toon result should not be fenced: %q", text)
	}
}

func TestHandleAnalyzeHistory(t *testing.T) {
	dir := fixtureRepo(t)

	result, _, err := handleAnalyzeHistory(context.Background(), nil, HistoryInput{
		AnalyzeInput: AnalyzeInput{Path: dir},
		Window:       "1y",
	})
	if err != nil {
		t.Fatalf("handleAnalyzeHistory returned error: %v", err)
	}
	if result.IsError {
		t.Fatalf("handleAnalyzeHistory returned tool error: %v", result.Content)
	}
	text := result.Content[0].(*mcp.TextContent).Text
	if !strings.Contains(text, "records") {
		t.Errorf("history output missing records: %q", text)
	}
}

func TestHandleAnalyzeHistoryBadWindow(t *testing.T) {
	result, _, err := handleAnalyzeHistory(context.Background(), nil, HistoryInput{
		Window: "soon",
	})
	if err != nil {
		t.Fatalf("handleAnalyzeHistory returned error: %v", err)
	}
	if !result.IsError {
		t.Error("invalid window should produce a tool error")
	}
}

func TestHandleExtractCommits(t *testing.T) {
	dir := fixtureRepo(t)

	result, _, err := handleExtractCommits(context.Background(), nil, ExtractInput{
		AnalyzeInput: AnalyzeInput{Path: dir, Format: "json"},
	})
	if err != nil {
		t.Fatalf("handleExtractCommits returned error: %v", err)
	}
	if result.IsError {
		t.Fatalf("handleExtractCommits returned tool error: %v", result.Content)
	}
	text := result.Content[0].(*mcp.TextContent).Text
	if !strings.Contains(text, "commit_hash") {
		t.Errorf("extract output missing commit hashes: %q", text)
	}
}

func TestHandleSearchKeywords(t *testing.T) {
	dir := fixtureRepo(t)

	result, _, err := handleSearchKeywords(context.Background(), nil, SearchInput{
		AnalyzeInput: AnalyzeInput{Path: dir},
		Keywords:     []string{"def"},
	})
	if err != nil {
		t.Fatalf("handleSearchKeywords returned error: %v", err)
	}
	if result.IsError {
		t.Fatalf("handleSearchKeywords returned tool error: %v", result.Content)
	}
	text := result.Content[0].(*mcp.TextContent).Text
	if !strings.Contains(text, "main.py") {
		t.Errorf("search output missing match path: %q", text)
	}
}

func TestHandleSearchKeywordsEmpty(t *testing.T) {
	result, _, err := handleSearchKeywords(context.Background(), nil, SearchInput{})
	if err != nil {
		t.Fatalf("handleSearchKeywords returned error: %v", err)
	}
	if !result.IsError {
		t.Error("empty keyword list should produce a tool error")
	}
}

func TestHandlersNotARepository(t *testing.T) {
	input := AnalyzeInput{Path: t.TempDir()}

	result, _, err := handleAnalyzeHistory(context.Background(), nil, HistoryInput{AnalyzeInput: input})
	if err != nil {
		t.Fatalf("handleAnalyzeHistory returned error: %v", err)
	}
	if !result.IsError {
		t.Error("history on a plain directory should produce a tool error")
	}

	result, _, err = handleSearchKeywords(context.Background(), nil, SearchInput{
		AnalyzeInput: input,
		Keywords:     []string{"x"},
	})
	if err != nil {
		t.Fatalf("handleSearchKeywords returned error: %v", err)
	}
	if !result.IsError {
		t.Error("search on a plain directory should produce a tool error")
	}
}

func TestGenerateManifest(t *testing.T) {
	data, err := GenerateManifest("1.2.3")
	if err != nil {
		t.Fatalf("GenerateManifest returned error: %v", err)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("manifest is not valid JSON: %v", err)
	}
	if m.Name != "io.github.panbanda/strata" {
		t.Errorf("manifest name = %q", m.Name)
	}
	if m.Version != "1.2.3" {
		t.Errorf("manifest version = %q", m.Version)
	}
	if len(m.Packages) == 0 || m.Packages[0].Transport.Type != "stdio" {
		t.Error("manifest missing stdio package transport")
	}
}

func TestParseFrontmatter(t *testing.T) {
	content := []byte("---\ndescription: test prompt\n---\n\nBody text here.")
	desc, body := parseFrontmatter(content)
	if desc != "test prompt" {
		t.Errorf("description = %q", desc)
	}
	if body != "Body text here." {
		t.Errorf("body = %q", body)
	}

	plain := []byte("no frontmatter")
	desc, body = parseFrontmatter(plain)
	if desc != "" || body != "no frontmatter" {
		t.Errorf("plain content mishandled: %q / %q", desc, body)
	}
}

func TestPromptHandler(t *testing.T) {
	handler := makePromptHandler("desc", "body")
	result, err := handler(context.Background(), nil)
	if err != nil {
		t.Fatalf("prompt handler returned error: %v", err)
	}
	if result.Description != "desc" {
		t.Errorf("description = %q", result.Description)
	}
	if len(result.Messages) != 1 {
		t.Fatalf("messages = %d, want 1", len(result.Messages))
	}
	if text := result.Messages[0].Content.(*mcp.TextContent).Text; text != "body" {
		t.Errorf("message text = %q", text)
	}
}

// fixtureRepo builds a two-commit repository with a Python file at HEAD.
func fixtureRepo(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("Failed to init git repo: %v", err)
	}

	w, err := repo.Worktree()
	if err != nil {
		t.Fatalf("Failed to get worktree: %v", err)
	}

	commits := []struct {
		content string
		message string
		when    time.Time
	}{
		{"import os\n\n\ndef main():\n    return 1\n", "initial", time.Now().Add(-48 * time.Hour)},
		{"import os\n\n\ndef main():\n    return 2\n", "update", time.Now().Add(-24 * time.Hour)},
	}
	for _, c := range commits {
		path := filepath.Join(dir, "main.py")
		if err := os.WriteFile(path, []byte(c.content), 0644); err != nil {
			t.Fatalf("Failed to write file: %v", err)
		}
		if _, err := w.Add("main.py"); err != nil {
			t.Fatalf("Failed to add file: %v", err)
		}
		sig := &object.Signature{Name: "alice", Email: "alice@example.com", When: c.when}
		if _, err := w.Commit(c.message, &git.CommitOptions{Author: sig, Committer: sig}); err != nil {
			t.Fatalf("Failed to commit: %v", err)
		}
	}
	return dir
}
