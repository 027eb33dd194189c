package mcpserver

import (
	"bytes"
	"context"
	"embed"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"gopkg.in/yaml.v3"
)

//go:embed prompts/*.md
var promptFS embed.FS

// promptMeta holds the YAML frontmatter of an embedded prompt file.
type promptMeta struct {
	Description string `yaml:"description"`
}

// registerPrompts exposes each embedded markdown file as an MCP prompt,
// named after the file minus its extension.
func (s *Server) registerPrompts() {
	entries, err := promptFS.ReadDir("prompts")
	if err != nil {
		return
	}

	for _, entry := range entries {
		name, ok := strings.CutSuffix(entry.Name(), ".md")
		if !ok || entry.IsDir() {
			continue
		}

		content, err := promptFS.ReadFile("prompts/" + entry.Name())
		if err != nil {
			continue
		}

		desc, body := parseFrontmatter(content)
		s.server.AddPrompt(
			&mcp.Prompt{Name: name, Description: desc},
			makePromptHandler(desc, body),
		)
	}
}

// parseFrontmatter splits a prompt file into its frontmatter description
// and markdown body. Files without frontmatter are returned whole.
func parseFrontmatter(content []byte) (description string, body string) {
	const fence = "---\n"

	if !bytes.HasPrefix(content, []byte(fence)) {
		return "", string(content)
	}

	rest := content[len(fence):]
	end := bytes.Index(rest, []byte("\n"+fence))
	if end < 0 {
		return "", string(content)
	}

	var meta promptMeta
	if err := yaml.Unmarshal(rest[:end], &meta); err != nil {
		return "", string(content)
	}

	body = strings.TrimPrefix(string(rest[end+len(fence)+1:]), "\n")
	return meta.Description, body
}

// makePromptHandler returns a handler serving a static prompt body as a
// single user message.
func makePromptHandler(description, body string) mcp.PromptHandler {
	return func(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
		return &mcp.GetPromptResult{
			Description: description,
			Messages: []*mcp.PromptMessage{
				{Role: "user", Content: &mcp.TextContent{Text: body}},
			},
		}, nil
	}
}
