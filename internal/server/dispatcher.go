package server

import (
	"context"
	"errors"
	"fmt"

	"firestore-mcp/internal/firestore"
)

// Store is the database surface the dispatcher needs. *firestore.Client
// satisfies it; tests supply fakes.
type Store interface {
	ListCollections(ctx context.Context) ([]string, error)
	ListDocuments(ctx context.Context, collection string) ([]firestore.Document, error)
	AddDocument(ctx context.Context, collection string, data map[string]any) (string, error)
}

// ErrUnknownTool is returned when the requested tool name is not registered.
var ErrUnknownTool = errors.New("unknown tool")

// ArgumentError reports a rejected invocation: a required argument is missing
// or has the wrong shape. The store is never called in that case.
type ArgumentError struct {
	Msg string
}

func (e *ArgumentError) Error() string { return e.Msg }

func argErrorf(format string, args ...any) error {
	return &ArgumentError{Msg: fmt.Sprintf(format, args...)}
}

// IsArgumentError reports whether err is a rejected-invocation error.
func IsArgumentError(err error) bool {
	var ae *ArgumentError
	return errors.As(err, &ae)
}

type toolHandler func(ctx context.Context, args map[string]any) (any, error)

// Dispatcher maps tool names to handlers over an injected Store. Each
// invocation is stateless; concurrent use is fine as long as the Store is
// safe for it.
type Dispatcher struct {
	store    Store
	handlers map[string]toolHandler
}

// NewDispatcher constructs a Dispatcher with the fixed tool table registered.
func NewDispatcher(store Store) *Dispatcher {
	d := &Dispatcher{store: store}
	d.handlers = map[string]toolHandler{
		"list-collections": d.listCollections,
		"get-collection":   d.getCollection,
		"create-document":  d.createDocument,
	}
	return d
}

// Dispatch runs the named tool and returns its JSON-serializable result.
func (d *Dispatcher) Dispatch(ctx context.Context, name string, args map[string]any) (any, error) {
	h, ok := d.handlers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTool, name)
	}
	return h(ctx, args)
}

func (d *Dispatcher) listCollections(ctx context.Context, _ map[string]any) (any, error) {
	names, err := d.store.ListCollections(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]map[string]string, 0, len(names))
	for _, n := range names {
		out = append(out, map[string]string{"name": n})
	}
	return out, nil
}

func (d *Dispatcher) getCollection(ctx context.Context, args map[string]any) (any, error) {
	collection, err := stringArg(args, "collection")
	if err != nil {
		return nil, err
	}
	docs, err := d.store.ListDocuments(ctx, collection)
	if err != nil {
		return nil, err
	}
	out := make([]map[string]any, 0, len(docs))
	for _, doc := range docs {
		out = append(out, map[string]any{"id": doc.ID, "data": normalizeMap(doc.Data)})
	}
	return out, nil
}

func (d *Dispatcher) createDocument(ctx context.Context, args map[string]any) (any, error) {
	collection, err := stringArg(args, "collection")
	if err != nil {
		return nil, err
	}
	raw, ok := args["document_data"]
	if !ok || raw == nil {
		return nil, argErrorf("missing required argument %q", "document_data")
	}
	data, ok := raw.(map[string]any)
	if !ok {
		return nil, argErrorf("argument %q must be an object", "document_data")
	}
	id, err := d.store.AddDocument(ctx, collection, data)
	if err != nil {
		return nil, err
	}
	return fmt.Sprintf("Created new document with ID %s in '%s'", id, collection), nil
}

func stringArg(args map[string]any, key string) (string, error) {
	v, ok := args[key]
	if !ok || v == nil {
		return "", argErrorf("missing required argument %q", key)
	}
	s, ok := v.(string)
	if !ok {
		return "", argErrorf("argument %q must be a string", key)
	}
	if s == "" {
		return "", argErrorf("argument %q must not be empty", key)
	}
	return s, nil
}
