// Command firestore-mcp-http starts the Firestore MCP HTTP server.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"firestore-mcp/internal/firestore"
	"firestore-mcp/internal/server"
)

func main() {
	_ = godotenv.Load()

	fsCfg := firestore.Config{
		ProjectID:       os.Getenv("FIREBASE_PROJECT_ID"),
		APIKey:          os.Getenv("FIREBASE_API_KEY"),
		CredentialsFile: os.Getenv("FIREBASE_CREDENTIALS_FILE"),
		Timeout:         getEnvSeconds("FIRESTORE_TIMEOUT", 30),
	}
	if fsCfg.ProjectID == "" {
		log.Fatal("FIREBASE_PROJECT_ID is required")
	}

	cfg := server.Config{
		Port:  getEnv("PORT", "3000"),
		Token: os.Getenv("MCP_TOKEN"),
	}
	if cfg.Token == "" {
		log.Println("WARN: MCP_TOKEN not set; endpoints will be open. Set MCP_TOKEN to secure.")
	}

	ctx := context.Background()
	store, err := firestore.Open(ctx, fsCfg)
	if err != nil {
		log.Fatalf("firestore init: %v", err)
	}
	defer store.Close()

	srv := server.New(cfg, store)
	log.Printf("Starting Firestore MCP HTTP server on :%s\n", cfg.Port)

	certFile := os.Getenv("TLS_CERT_FILE")
	keyFile := os.Getenv("TLS_KEY_FILE")
	if certFile != "" && keyFile != "" {
		log.Println("TLS enabled: using provided certificate and key")
		if err := http.ListenAndServeTLS(":"+cfg.Port, certFile, keyFile, srv.Router()); err != nil {
			log.Fatalf("server error: %v", err)
		}
		return
	}
	log.Println("WARN: TLS_CERT_FILE/TLS_KEY_FILE not set; serving plain HTTP. Run behind a TLS-terminating proxy for remote use.")
	if err := http.ListenAndServe(":"+cfg.Port, srv.Router()); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvSeconds(key string, def int) time.Duration {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil && i > 0 {
			return time.Duration(i) * time.Second
		}
	}
	return time.Duration(def) * time.Second
}
