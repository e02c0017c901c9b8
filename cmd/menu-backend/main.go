package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/ironsheep/menu-lens/internal/backend"
	"github.com/ironsheep/menu-lens/internal/config"
	"github.com/ironsheep/menu-lens/internal/logging"
	"github.com/ironsheep/menu-lens/internal/ocr"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	configPath := "menulens.yaml"
	args := os.Args[1:]

	for len(args) > 0 {
		switch args[0] {
		case "--version", "-v", "version":
			fmt.Printf("menu-backend %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("menu-backend - development menu recognition and translation service")
			fmt.Println()
			fmt.Println("Usage: menu-backend [--config <file>]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --config <file>  Configuration file (default menulens.yaml)")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("The backend section of the configuration sets the listen address,")
			fmt.Println("the Tesseract language and an optional YAML glossary.")
			return
		case "--config", "-c":
			if len(args) < 2 {
				fmt.Fprintln(os.Stderr, "--config needs a file")
				os.Exit(2)
			}
			configPath = args[1]
			args = args[2:]
			continue
		default:
			fmt.Fprintf(os.Stderr, "unknown argument %q\n", args[0])
			os.Exit(2)
		}
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger := logging.New(cfg.LogLevel, os.Stderr)

	glossary, err := backend.LoadGlossary(cfg.Backend.Glossary)
	if err != nil {
		logger.Error("glossary unavailable", "error", err)
		os.Exit(1)
	}
	logger.Info("menu-backend starting", "version", Version, "language", cfg.Backend.Language, "glossary_entries", len(glossary))

	srv := backend.New(ocr.Tesseract{Language: cfg.Backend.Language}, glossary, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.ListenAndServe(ctx, cfg.Backend.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}
