package server

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// NewMCPServer builds an MCP server exposing the Firestore tools over the
// official SDK. The caller picks the transport (stdio for agent use).
func NewMCPServer(store Store) *mcp.Server {
	d := NewDispatcher(store)
	srv := mcp.NewServer(&mcp.Implementation{
		Name:    "firestore-read",
		Version: "0.1.0",
	}, nil)

	srv.AddTool(&mcp.Tool{
		Name:        "list-collections",
		Description: "List all collections in the database",
		InputSchema: &jsonschema.Schema{
			Type:       "object",
			Properties: map[string]*jsonschema.Schema{},
		},
		Annotations: readOnlyAnnotations(),
	}, toolFunc(d, "list-collections"))

	srv.AddTool(&mcp.Tool{
		Name:        "get-collection",
		Description: "Get all documents from a collection",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"collection": {Type: "string"},
			},
			Required: []string{"collection"},
		},
		Annotations: readOnlyAnnotations(),
	}, toolFunc(d, "get-collection"))

	srv.AddTool(&mcp.Tool{
		Name:        "create-document",
		Description: "Create a new document in an existing collection",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"collection":    {Type: "string"},
				"document_data": {Type: "object"},
			},
			Required: []string{"collection", "document_data"},
		},
		Annotations: writeAnnotations(),
	}, toolFunc(d, "create-document"))

	return srv
}

func toolFunc(d *Dispatcher, name string) mcp.ToolHandler {
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return callTool(ctx, d, name, req.Params.Arguments)
	}
}

// callTool runs one dispatcher tool and renders the outcome the way the
// protocol expects: structured results as indented JSON text, confirmation
// strings verbatim, failures as in-band tool errors so the session keeps
// serving further invocations.
func callTool(ctx context.Context, d *Dispatcher, name string, rawArgs json.RawMessage) (*mcp.CallToolResult, error) {
	args := map[string]any{}
	if len(rawArgs) > 0 {
		if err := json.Unmarshal(rawArgs, &args); err != nil {
			return errorResult(fmt.Sprintf("Error executing %s: invalid arguments: %v", name, err)), nil
		}
	}
	result, err := d.Dispatch(ctx, name, args)
	if err != nil {
		return errorResult(fmt.Sprintf("Error executing %s: %v", name, err)), nil
	}
	text, ok := result.(string)
	if !ok {
		b, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return errorResult(fmt.Sprintf("Error executing %s: %v", name, err)), nil
		}
		text = string(b)
	}
	return textResult(text), nil
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

func errorResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

func boolPtr(b bool) *bool { return &b }

func readOnlyAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		ReadOnlyHint:   true,
		IdempotentHint: true,
		OpenWorldHint:  boolPtr(false),
	}
}

func writeAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		DestructiveHint: boolPtr(false),
		OpenWorldHint:   boolPtr(false),
	}
}
