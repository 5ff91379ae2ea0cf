// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/policy-engine/pkg/types"
)

// ErrUnknownFormat is returned for an unsupported export format.
var ErrUnknownFormat = errors.New("unknown export format")

// Document is the serialized form of a draft in JSON and YAML exports.
type Document struct {
	PolicyID   string              `json:"policy_id" yaml:"policy_id"`
	PolicyType types.PolicyType    `json:"policy_type" yaml:"policy_type"`
	Content    string              `json:"content" yaml:"content"`
	Metadata   types.DraftMetadata `json:"metadata" yaml:"metadata"`
	Components map[string]string   `json:"components" yaml:"components"`
}

// Formats lists the supported export formats.
func Formats() []types.ExportFormat {
	return []types.ExportFormat{types.ExportJSON, types.ExportYAML, types.ExportMarkdown, types.ExportHTML}
}

// Extension returns the file extension for f, without the dot.
func Extension(f types.ExportFormat) (string, error) {
	switch f {
	case types.ExportJSON:
		return "json", nil
	case types.ExportYAML:
		return "yaml", nil
	case types.ExportMarkdown:
		return "md", nil
	case types.ExportHTML:
		return "html", nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
}

// Render serializes d with policyID in format f.
func Render(d types.PolicyDraft, policyID string, f types.ExportFormat) ([]byte, error) {
	doc := Document{
		PolicyID:   policyID,
		PolicyType: d.PolicyType,
		Content:    d.Content,
		Metadata:   d.Metadata,
		Components: d.Components,
	}
	switch f {
	case types.ExportJSON:
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling JSON: %w", err)
		}
		return data, nil
	case types.ExportYAML:
		data, err := yaml.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("marshaling YAML: %w", err)
		}
		return data, nil
	case types.ExportMarkdown:
		return []byte(d.Content), nil
	case types.ExportHTML:
		return renderHTML(d, policyID)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
}

var pageTmpl = template.Must(template.New("policy").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>{{.Title}}</title>
<style>
body { font-family: Arial, sans-serif; line-height: 1.6; max-width: 900px; margin: 0 auto; padding: 20px; color: #333; }
h1 { color: #2c3e50; border-bottom: 3px solid #3498db; padding-bottom: 10px; }
h2 { color: #34495e; margin-top: 30px; }
.metadata { background-color: #ecf0f1; padding: 15px; border-radius: 5px; margin-bottom: 20px; }
.metadata p { margin: 5px 0; }
</style>
</head>
<body>
<div class="metadata">
<p><strong>Policy ID:</strong> {{.PolicyID}}</p>
<p><strong>Generated:</strong> {{.GeneratedAt}}</p>
<p><strong>Evidence Count:</strong> {{.EvidenceCount}}</p>
</div>
{{range .Blocks}}{{if eq .Kind "h1"}}<h1>{{.Text}}</h1>
{{else if eq .Kind "h2"}}<h2>{{.Text}}</h2>
{{else if eq .Kind "h3"}}<h3>{{.Text}}</h3>
{{else if eq .Kind "ul"}}<ul>
{{range .Items}}<li>{{.}}</li>
{{end}}</ul>
{{else}}<p>{{.Text}}</p>
{{end}}{{end}}</body>
</html>
`))

type htmlPage struct {
	Title         string
	PolicyID      string
	GeneratedAt   string
	EvidenceCount int
	Blocks        []block
}

// block is one rendered element: a heading, a paragraph line or a list.
type block struct {
	Kind  string
	Text  string
	Items []string
}

func renderHTML(d types.PolicyDraft, policyID string) ([]byte, error) {
	title := d.Components["title"]
	if title == "" {
		title = "Policy Document"
	}
	generated := d.Metadata.GeneratedAt
	if generated == "" {
		generated = "N/A"
	}
	page := htmlPage{
		Title:         title,
		PolicyID:      policyID,
		GeneratedAt:   generated,
		EvidenceCount: d.Metadata.EvidenceCount,
		Blocks:        toBlocks(d.Content),
	}
	var buf bytes.Buffer
	if err := pageTmpl.Execute(&buf, page); err != nil {
		return nil, fmt.Errorf("rendering HTML: %w", err)
	}
	return buf.Bytes(), nil
}

// toBlocks converts the heading, list and paragraph lines of a Markdown
// document into blocks. Consecutive "- " lines form one list; blank lines
// and any other line end a list.
func toBlocks(md string) []block {
	var blocks []block
	var list *block
	flush := func() {
		if list != nil {
			blocks = append(blocks, *list)
			list = nil
		}
	}
	for _, raw := range strings.Split(md, "\n") {
		line := strings.TrimSpace(raw)
		switch {
		case strings.HasPrefix(line, "- "):
			if list == nil {
				list = &block{Kind: "ul"}
			}
			list.Items = append(list.Items, strings.TrimPrefix(line, "- "))
			continue
		case line == "":
			flush()
			continue
		}
		flush()
		switch {
		case strings.HasPrefix(line, "### "):
			blocks = append(blocks, block{Kind: "h3", Text: strings.TrimPrefix(line, "### ")})
		case strings.HasPrefix(line, "## "):
			blocks = append(blocks, block{Kind: "h2", Text: strings.TrimPrefix(line, "## ")})
		case strings.HasPrefix(line, "# "):
			blocks = append(blocks, block{Kind: "h1", Text: strings.TrimPrefix(line, "# ")})
		default:
			blocks = append(blocks, block{Kind: "p", Text: line})
		}
	}
	flush()
	return blocks
}
