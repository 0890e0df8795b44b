package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/ironsheep/image-edit-mcp/internal/config"
	"github.com/ironsheep/image-edit-mcp/internal/logging"
	"github.com/ironsheep/image-edit-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version and -v flags
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("image-edit-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("image-edit-mcp - MCP server for resizing, rotating and converting images")
			fmt.Println()
			fmt.Println("Usage: image-edit-mcp [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables (also read from .env):")
			fmt.Println("  IMAGE_MCP_LOG_LEVEL=debug       Log level: debug, info, warn, error")
			fmt.Println("  IMAGE_MCP_JPEG_QUALITY=75       JPEG quality (1-100)")
			fmt.Println("  IMAGE_MCP_WEBP_QUALITY=80       WEBP quality (0-100)")
			fmt.Println("  IMAGE_MCP_WEBP_LOSSLESS=false   Encode WEBP losslessly")
			fmt.Println("  IMAGE_MCP_GIF_COLORS=256        GIF palette size (1-256)")
			fmt.Println("  IMAGE_MCP_BACKGROUND=#000000    Default rotate fill colour")
			fmt.Println()
			fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
			fmt.Println("Configure it in your MCP client.")
			return
		}
	}

	cfg, err := config.Load()
	if err != nil {
		logging.Setup("info")
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	// Logs go to stderr (stdout is for MCP protocol)
	logging.Setup(cfg.LogLevel)
	log.Debug().
		Str("version", Version).
		Str("built", BuildTime).
		Str("commit", GitCommit).
		Msg("image-edit-mcp starting")

	srv, err := server.NewWithConfig(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create server")
	}
	if err := srv.Run(); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}
