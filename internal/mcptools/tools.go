// Package mcptools exposes scanning and filling as MCP tools so an agent can
// drive autofill over stdio.
package mcptools

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/jonathan/job-autofill/internal/dom"
	"github.com/jonathan/job-autofill/internal/fetch"
	"github.com/jonathan/job-autofill/internal/pipeline"
	"github.com/jonathan/job-autofill/internal/profile"
	"github.com/jonathan/job-autofill/internal/types"
)

// Tool names.
const (
	ToolScan            = "autofill_scan"
	ToolFill            = "autofill_fill"
	ToolProfileTemplate = "autofill_profile_template"
	ToolProfileCheck    = "autofill_profile_check"
)

// Config configures the tool set.
type Config struct {
	// Profile is used by fill calls that do not pass their own.
	Profile *types.Profile
	Fetch   *fetch.Options
	Verbose bool
}

// Tools holds the state shared by the registered tools.
type Tools struct {
	cfg Config
}

// New creates the tool set.
func New(cfg Config) *Tools {
	if cfg.Fetch == nil {
		cfg.Fetch = fetch.DefaultOptions()
	}
	return &Tools{cfg: cfg}
}

// NewServer returns an MCP server with every tool registered.
func (t *Tools) NewServer(version string) *mcp.Server {
	srv := mcp.NewServer(&mcp.Implementation{Name: "job-autofill", Version: version}, nil)
	t.Register(srv)
	return srv
}

// Serve runs the tools over stdio until ctx is done or the client disconnects.
func (t *Tools) Serve(ctx context.Context, version string) error {
	return t.NewServer(version).Run(ctx, &mcp.StdioTransport{})
}

// Register adds the tools to srv.
func (t *Tools) Register(srv *mcp.Server) {
	pageProps := map[string]any{
		"html": map[string]any{"type": "string", "description": "Page HTML. Takes precedence over url."},
		"url":  map[string]any{"type": "string", "description": "Page address; fetched when html is empty."},
	}

	scanProps := withProps(pageProps, map[string]any{
		"debug": map[string]any{"type": "boolean", "description": "Include the text signals behind each classification."},
	})
	addTool(srv, &mcp.Tool{
		Name:        ToolScan,
		Description: "Locate the form fields on a page and report the profile category detected for each.",
		InputSchema: inputSchema(scanProps, nil),
	}, t.scan)

	fillProps := withProps(pageProps, map[string]any{
		"profile": map[string]any{"type": "object", "description": "Profile document with a personalInfo section."},
	})
	addTool(srv, &mcp.Tool{
		Name:        ToolFill,
		Description: "Fill the recognized form fields on a page from a profile and return the per-field results and the resulting HTML.",
		InputSchema: inputSchema(fillProps, nil),
	}, t.fill)

	addTool(srv, &mcp.Tool{
		Name:        ToolProfileTemplate,
		Description: "Return an empty profile document to start from.",
		InputSchema: inputSchema(map[string]any{}, nil),
	}, func(context.Context, json.RawMessage) (any, error) {
		return profile.Template(), nil
	})

	addTool(srv, &mcp.Tool{
		Name:        ToolProfileCheck,
		Description: "Validate a JSON or YAML profile document and report how complete it is.",
		InputSchema: inputSchema(map[string]any{
			"document": map[string]any{"type": "string", "description": "Profile document text."},
		}, []string{"document"}),
	}, t.checkProfile)
}

type pageArgs struct {
	HTML  string `json:"html"`
	URL   string `json:"url"`
	Debug bool   `json:"debug"`
}

type fillArgs struct {
	pageArgs
	Profile json.RawMessage `json:"profile"`
}

// FillOutput is the result of the fill tool.
type FillOutput struct {
	Summary *types.FillSummary `json:"summary"`
	HTML    string             `json:"html"`
}

// ProfileCheck is the result of the profile check tool.
type ProfileCheck struct {
	Completion int    `json:"completion"`
	Name       string `json:"name,omitempty"`
}

func (t *Tools) scan(ctx context.Context, raw json.RawMessage) (any, error) {
	var args pageArgs
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	doc, err := t.loadPage(ctx, args)
	if err != nil {
		return nil, err
	}
	defer doc.ClearHighlights()
	return pipeline.Scan(doc, pipeline.Options{Debug: args.Debug, Verbose: t.cfg.Verbose})
}

func (t *Tools) fill(ctx context.Context, raw json.RawMessage) (any, error) {
	var args fillArgs
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}

	p := t.cfg.Profile
	if len(args.Profile) > 0 && string(args.Profile) != "null" {
		decoded, err := profile.Decode(args.Profile, profile.FormatJSON)
		if err != nil {
			return nil, err
		}
		p = decoded
	}
	if p == nil {
		return nil, pipeline.ErrNoProfile
	}

	doc, err := t.loadPage(ctx, args.pageArgs)
	if err != nil {
		return nil, err
	}
	summary, err := pipeline.Fill(doc, p, pipeline.Options{Pace: -1, Verbose: t.cfg.Verbose})
	if err != nil {
		return nil, err
	}
	html, err := doc.Render()
	if err != nil {
		return nil, fmt.Errorf("render page: %w", err)
	}
	return &FillOutput{Summary: summary, HTML: html}, nil
}

func (t *Tools) checkProfile(_ context.Context, raw json.RawMessage) (any, error) {
	var args struct {
		Document string `json:"document"`
	}
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	p, err := profile.DecodeString(args.Document)
	if err != nil {
		return nil, err
	}
	name, _ := profile.ResolveValue(types.CategoryFullName, p)
	return &ProfileCheck{Completion: profile.Completion(p), Name: name}, nil
}

func (t *Tools) loadPage(ctx context.Context, args pageArgs) (*dom.Document, error) {
	return fetch.Document(ctx, args.HTML, args.URL, t.cfg.Fetch)
}

// handlerFunc computes a tool result from the raw call arguments.
type handlerFunc func(ctx context.Context, args json.RawMessage) (any, error)

// addTool registers h, reporting failures as tool errors and successes as
// JSON text content.
func addTool(srv *mcp.Server, tool *mcp.Tool, h handlerFunc) {
	srv.AddTool(tool, func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		resp, err := h(ctx, req.Params.Arguments)
		if err != nil {
			log.Printf("[MCP] %s failed: %v", tool.Name, err)
			var res mcp.CallToolResult
			res.SetError(err)
			return &res, nil
		}

		data, err := json.Marshal(resp)
		if err != nil {
			var res mcp.CallToolResult
			res.SetError(fmt.Errorf("marshal: %w", err))
			return &res, nil
		}
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: string(data)}},
		}, nil
	})
}

func decodeArgs(raw json.RawMessage, v any) error {
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}

func inputSchema(properties map[string]any, required []string) map[string]any {
	s := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		s["required"] = required
	}
	return s
}

func withProps(base, extra map[string]any) map[string]any {
	out := make(map[string]any, len(base)+len(extra))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}
