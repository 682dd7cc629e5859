package main

import (
	"fmt"
	"log"
	"os"

	"github.com/ironsheep/hough-lines-mcp/internal/edges"
	"github.com/ironsheep/hough-lines-mcp/internal/pipeline"
	"github.com/ironsheep/hough-lines-mcp/internal/server"
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
			fmt.Printf("hough-lines-mcp %s\n", Version)
			fmt.Printf("  Build time:   %s\n", BuildTime)
			fmt.Printf("  Git commit:   %s\n", GitCommit)
			fmt.Printf("  Edge backend: %s\n", edges.Backend)
			return
		case "--help", "-h", "help":
			fmt.Println("hough-lines-mcp - MCP server for Hough line detection")
			fmt.Println()
			fmt.Println("Usage: hough-lines-mcp [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables:")
			fmt.Println("  HOUGH_MCP_LOG_LEVEL=debug    Enable debug logging")
			fmt.Println("  HOUGH_EDGE_LOW, HOUGH_EDGE_HIGH, HOUGH_BLUR_SIGMA")
			fmt.Println("  HOUGH_RHO_RESOLUTION, HOUGH_THETA_RESOLUTION, HOUGH_VOTE_THRESHOLD")
			fmt.Println("  HOUGH_SUPPRESS_RADIUS, HOUGH_MAX_LINES, HOUGH_WORKERS")
			fmt.Println("                               Default detection settings")
			fmt.Println()
			fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
			return
		}
	}

	// Configure logging to stderr (stdout is for MCP protocol)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	debug := os.Getenv("HOUGH_MCP_LOG_LEVEL") == "debug"
	if debug {
		log.Printf("Hough MCP Server v%s (built %s, commit %s, edges %s)", Version, BuildTime, GitCommit, edges.Backend)
	}

	cfg, err := pipeline.FromEnv(pipeline.DefaultConfig())
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	server.Version = Version
	srv := server.New(cfg)
	srv.Debug = debug
	if err := srv.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
