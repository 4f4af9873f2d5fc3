package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/ironsheep/image-editor-mcp/internal/config"
	"github.com/ironsheep/image-editor-mcp/internal/editor"
	"github.com/ironsheep/image-editor-mcp/internal/history"
	"github.com/ironsheep/image-editor-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func usage() {
	fmt.Println("image-editor-mcp - MCP server for raster image editing")
	fmt.Println()
	fmt.Println("Usage: image-editor-mcp [options]")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --version, -v    Print version information")
	fmt.Println("  --help, -h       Print this help message")
	fmt.Println("  --debug, -debug  Log at debug level")
	fmt.Println()
	fmt.Println("Environment variables:")
	fmt.Printf("  %s=debug           Log level (default info)\n", config.EnvLogLevel)
	fmt.Printf("  %s=json           Log format, text or json\n", config.EnvLogFormat)
	fmt.Printf("  %s=20          Max undo snapshots, 0 = unbounded\n", config.EnvHistoryDepth)
	fmt.Printf("  %s=true      Compress older undo snapshots\n", config.EnvCompactHistory)
	fmt.Printf("  %s=best      default, none, speed or best\n", config.EnvPNGCompression)
	fmt.Println()
	fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
	fmt.Println("Configure it in your MCP client (e.g., Claude Desktop).")
}

func main() {
	debug := false
	for _, arg := range os.Args[1:] {
		switch arg {
		case "--version", "-v", "version":
			fmt.Printf("image-editor-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			usage()
			return
		case "--debug", "-debug":
			debug = true
		default:
			fmt.Fprintf(os.Stderr, "unknown option: %s\n\n", arg)
			usage()
			os.Exit(2)
		}
	}

	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}
	if debug {
		cfg.LogLevel = logrus.DebugLevel
	}

	// Logs go to stderr; stdout is for MCP protocol
	logger := cfg.NewLogger()
	logger.WithFields(logrus.Fields{
		"version":       Version,
		"build_time":    BuildTime,
		"commit":        GitCommit,
		"history_depth": cfg.HistoryDepth,
		"compact":       cfg.CompactHistory,
	}).Debug("Image editor MCP server starting")

	session, err := editor.New(editor.Options{
		History: history.Options{
			MaxDepth: cfg.HistoryDepth,
			Compact:  cfg.CompactHistory,
		},
		PNGCompression: cfg.PNGCompression,
		Logger:         logger,
	})
	if err != nil {
		logger.WithError(err).Fatal("Failed to create editing session")
	}
	defer session.Close()

	server.Version = Version
	srv := server.New(session, logger)
	if err := srv.Run(); err != nil {
		logger.WithError(err).Error("Server error")
		session.Close()
		os.Exit(1)
	}
}
