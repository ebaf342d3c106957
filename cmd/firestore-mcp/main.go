// Command firestore-mcp starts the Firestore MCP server on stdio.
// Stdout carries the protocol, so all logging goes to stderr.
package main

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"firestore-mcp/internal/firestore"
	"firestore-mcp/internal/server"
)

func main() {
	_ = godotenv.Load()
	logger := log.New(os.Stderr, "[firestore-mcp] ", log.LstdFlags)

	cfg := firestore.Config{
		ProjectID:       os.Getenv("FIREBASE_PROJECT_ID"),
		APIKey:          os.Getenv("FIREBASE_API_KEY"),
		CredentialsFile: os.Getenv("FIREBASE_CREDENTIALS_FILE"),
		Timeout:         getEnvSeconds("FIRESTORE_TIMEOUT", 30),
	}
	if cfg.ProjectID == "" {
		logger.Fatal("FIREBASE_PROJECT_ID is required")
	}

	ctx := context.Background()
	store, err := firestore.Open(ctx, cfg)
	if err != nil {
		logger.Fatalf("firestore init: %v", err)
	}
	defer store.Close()
	logger.Println("Firestore initialized successfully")

	srv := server.NewMCPServer(store)
	if err := srv.Run(ctx, &mcp.StdioTransport{}); err != nil {
		logger.Fatalf("server error: %v", err)
	}
}

func getEnvSeconds(key string, def int) time.Duration {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil && i > 0 {
			return time.Duration(i) * time.Second
		}
	}
	return time.Duration(def) * time.Second
}
