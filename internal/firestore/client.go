// Package firestore wraps the Firebase admin SDK with the small surface the
// tool dispatcher needs: enumerate collections, list documents, add a document.
package firestore

import (
	"context"
	"errors"
	"fmt"
	"time"

	fs "cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const defaultTimeout = 30 * time.Second

// Config holds the credentials and limits used to open a client.
type Config struct {
	ProjectID string
	// APIKey mirrors the web config the server historically accepted; the
	// admin SDK authenticates via credentials, not API keys, so it is unused.
	APIKey          string
	CredentialsFile string
	Timeout         time.Duration
}

// Document is a single record in a collection.
type Document struct {
	ID   string         `json:"id"`
	Data map[string]any `json:"data"`
}

// Client is a thin handle over a Firestore connection. Safe for concurrent
// use; the underlying SDK client is.
type Client struct {
	fs      *fs.Client
	timeout time.Duration
}

// Open initializes the Firebase app for the configured project and returns a
// connected client. Credentials come from the configured service-account file
// or, when unset, application-default credentials.
func Open(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.ProjectID == "" {
		return nil, errors.New("project ID missing")
	}
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.ProjectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("initialize firebase app: %w", err)
	}
	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("open firestore client: %w", err)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{fs: client, timeout: timeout}, nil
}

// Close releases the underlying gRPC connection.
func (c *Client) Close() error { return c.fs.Close() }

// ListCollections returns the IDs of all root collections.
func (c *Client) ListCollections(ctx context.Context) ([]string, error) {
	ctx, cancel := c.bound(ctx)
	defer cancel()
	names := make([]string, 0)
	it := c.fs.Collections(ctx)
	for {
		col, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list collections: %w", describe(err))
		}
		names = append(names, col.ID)
	}
	return names, nil
}

// ListDocuments returns every document in the named collection. A collection
// with no documents yields an empty slice, not an error.
func (c *Client) ListDocuments(ctx context.Context, collection string) ([]Document, error) {
	ctx, cancel := c.bound(ctx)
	defer cancel()
	docs := make([]Document, 0)
	it := c.fs.Collection(collection).Documents(ctx)
	defer it.Stop()
	for {
		snap, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read collection %q: %w", collection, describe(err))
		}
		docs = append(docs, Document{ID: snap.Ref.ID, Data: snap.Data()})
	}
	return docs, nil
}

// AddDocument writes data under a client-generated ID and returns that ID.
func (c *Client) AddDocument(ctx context.Context, collection string, data map[string]any) (string, error) {
	ctx, cancel := c.bound(ctx)
	defer cancel()
	ref, _, err := c.fs.Collection(collection).Add(ctx, data)
	if err != nil {
		return "", fmt.Errorf("create document in %q: %w", collection, describe(err))
	}
	return ref.ID, nil
}

// bound caps one outbound call so a stalled backend surfaces as an error
// instead of hanging the invocation.
func (c *Client) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, c.timeout)
}

// describe rewrites gRPC status errors into their code name and message so
// callers see "PermissionDenied: ..." rather than a raw transport error.
// Context deadlines (the per-call bound) are classified the same way.
func describe(err error) error {
	s, ok := status.FromError(err)
	if !ok {
		s = status.FromContextError(err)
	}
	switch s.Code() {
	case codes.OK, codes.Unknown:
		return err
	}
	return fmt.Errorf("%s: %s", s.Code(), s.Message())
}
