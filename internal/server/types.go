package server

// Tool describes an MCP tool and its input schema.
type Tool struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"inputSchema"`
}

// CallRequest is the body of a tool invocation.
type CallRequest struct {
	Name string         `json:"name"`
	Args map[string]any `json:"arguments"`
}

// toolCatalog lists the three Firestore tools exposed by every transport.
func toolCatalog() []Tool {
	return []Tool{
		{
			Name:        "list-collections",
			Description: "List all collections in the database",
			InputSchema: map[string]any{
				"type":       "object",
				"properties": map[string]any{},
			},
		},
		{
			Name:        "get-collection",
			Description: "Get all documents from a collection",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"collection": map[string]any{"type": "string"},
				},
				"required": []string{"collection"},
			},
		},
		{
			Name:        "create-document",
			Description: "Create a new document in an existing collection",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"collection":    map[string]any{"type": "string"},
					"document_data": map[string]any{"type": "object"},
				},
				"required": []string{"collection", "document_data"},
			},
		},
	}
}
