package server

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"firestore-mcp/internal/firestore"
)

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.Len(t, res.Content, 1)
	tc, ok := res.Content[0].(*mcp.TextContent)
	require.True(t, ok)
	return tc.Text
}

func TestCallToolListCollections(t *testing.T) {
	store := &fakeStore{collections: []string{"users", "projects", "tasks"}}
	d := NewDispatcher(store)

	res, err := callTool(context.Background(), d, "list-collections", nil)
	require.NoError(t, err)
	assert.False(t, res.IsError)

	var entries []map[string]string
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &entries))
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e["name"])
	}
	assert.ElementsMatch(t, []string{"users", "projects", "tasks"}, names)
}

func TestCallToolGetCollection(t *testing.T) {
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	store := &fakeStore{docs: map[string][]firestore.Document{
		"users": {{ID: "user123", Data: map[string]any{"name": "John Doe", "createdAt": created}}},
	}}
	d := NewDispatcher(store)

	res, err := callTool(context.Background(), d, "get-collection", json.RawMessage(`{"collection":"users"}`))
	require.NoError(t, err)
	assert.False(t, res.IsError)

	var entries []map[string]any
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "user123", entries[0]["id"])
	assert.Equal(t, map[string]any{"name": "John Doe", "createdAt": "2024-01-01T00:00:00Z"}, entries[0]["data"])
}

func TestCallToolCreateDocument(t *testing.T) {
	store := &fakeStore{}
	d := NewDispatcher(store)

	res, err := callTool(context.Background(), d, "create-document",
		json.RawMessage(`{"collection":"test","document_data":{"foo":"bar"}}`))
	require.NoError(t, err)
	assert.False(t, res.IsError)
	assert.Equal(t, "Created new document with ID newdoc1 in 'test'", resultText(t, res))
}

func TestCallToolArgumentErrorIsInBand(t *testing.T) {
	store := &fakeStore{}
	d := NewDispatcher(store)

	res, err := callTool(context.Background(), d, "get-collection", json.RawMessage(`{}`))
	require.NoError(t, err, "failed invocations are tool errors, not protocol errors")
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "Error executing get-collection")
	assert.Zero(t, store.calls)
}

func TestCallToolMalformedArguments(t *testing.T) {
	d := NewDispatcher(&fakeStore{})

	res, err := callTool(context.Background(), d, "get-collection", json.RawMessage(`[1,2]`))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "invalid arguments")
}

func TestNewMCPServer(t *testing.T) {
	srv := NewMCPServer(&fakeStore{})
	require.NotNil(t, srv)
}
