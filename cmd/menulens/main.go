package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/ironsheep/menu-lens/internal/capture"
	"github.com/ironsheep/menu-lens/internal/config"
	"github.com/ironsheep/menu-lens/internal/imaging"
	"github.com/ironsheep/menu-lens/internal/logging"
	"github.com/ironsheep/menu-lens/internal/session"
	"github.com/ironsheep/menu-lens/internal/shell"
	"github.com/ironsheep/menu-lens/internal/translate"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func usage() {
	fmt.Println("menulens - photograph a menu, read it in your language")
	fmt.Println()
	fmt.Println("Usage: menulens [options] [command [args...]]")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --config <file>  Configuration file (default menulens.yaml)")
	fmt.Println("  --version, -v    Print version information")
	fmt.Println("  --help, -h       Print this help message")
	fmt.Println()
	fmt.Println("Environment variables:")
	fmt.Println("  MENULENS_SERVER_URL=http://host:8000   Translation service address")
	fmt.Println("  MENULENS_LOG_LEVEL=debug               Log level (debug, info, warn, error)")
	fmt.Println()
	fmt.Println("Without a command an interactive shell is started.")
}

func main() {
	configPath := "menulens.yaml"
	args := os.Args[1:]

	for len(args) > 0 {
		switch args[0] {
		case "--version", "-v", "version":
			fmt.Printf("menulens %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			usage()
			return
		case "--config", "-c":
			if len(args) < 2 {
				fmt.Fprintln(os.Stderr, "--config needs a file")
				os.Exit(2)
			}
			configPath = args[1]
			args = args[2:]
			continue
		}
		break
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// Logs go to stderr so shell output stays clean
	logger := logging.New(cfg.LogLevel, os.Stderr)
	logger.Debug("menulens starting", "version", Version, "built", BuildTime, "commit", GitCommit,
		"server", cfg.ServerURL, "storage", cfg.StorageDir)

	client, err := translate.NewClient(cfg.ServerURL,
		translate.WithTimeout(cfg.Timeout),
		translate.WithLogger(logger))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	queue := &capture.Queue{}
	store := imaging.NewStore(cfg.StorageDir, cfg.JPEGQuality, logger)
	ctrl := session.New(queue, store, client, session.WithLogger(logger))

	// Advisory pre-flight: a down service is logged and the shell still starts
	healthCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	ctrl.Health(healthCtx)
	cancel()

	shellCtx := shell.NewShellCtxt(ctrl, queue, cfg.RenderWidth, logger)
	if err := shell.RunShell(shellCtx, args); err != nil {
		logger.Error("command failed", "error", err)
		os.Exit(1)
	}
}
