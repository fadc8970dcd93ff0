// Command decorctl drives the simple-decor admin backend from a terminal:
// it logs in, inspects the restored session, and reads the listings the
// dashboard renders, exercising the same session and cache machinery.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/Shunadesu/simple-decor-sub001/internal/admin/app"
)

func main() {
	// Missing .env is fine; the environment may already be set.
	_ = godotenv.Load()

	cfg := app.LoadConfig()

	application, err := app.New(cfg)
	if err != nil {
		log.Fatalf("failed to initialize application: %v", err)
	}

	if err := run(application, os.Args[1:]); err != nil {
		application.Close()
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	if err := application.Close(); err != nil {
		log.Fatalf("shutdown error: %v", err)
	}
}
