package main

import (
	"fmt"
	"log"
	"os"

	"github.com/carelane/medscan-mcp/internal/server"
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
			fmt.Printf("medscan-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("medscan-mcp - MCP server for medication document scanning")
			fmt.Println()
			fmt.Println("Usage: medscan-mcp [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables:")
			fmt.Println("  MEDSCAN_LOG_LEVEL=debug      Enable debug logging")
			fmt.Println("  MEDSCAN_OCR_LANGUAGE         OCR language hint (default eng)")
			fmt.Println("  MEDSCAN_FDA_URL              Drug registry endpoint override")
			fmt.Println("  MEDSCAN_UPC_URL              Product registry endpoint override")
			fmt.Println("  MEDSCAN_UPC_FALLBACK_URL     Fallback product registry override")
			fmt.Println()
			fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
			fmt.Println("Configure it in your MCP client (e.g., Claude Desktop).")
			return
		}
	}

	// Configure logging to stderr (stdout is for MCP protocol)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	logLevel := os.Getenv("MEDSCAN_LOG_LEVEL")
	if logLevel == "debug" {
		log.Printf("Medscan MCP Server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
	}

	srv := server.New(server.Config{
		Language:           os.Getenv("MEDSCAN_OCR_LANGUAGE"),
		DrugRegistryURL:    os.Getenv("MEDSCAN_FDA_URL"),
		ProductRegistryURL: os.Getenv("MEDSCAN_UPC_URL"),
		ProductFallbackURL: os.Getenv("MEDSCAN_UPC_FALLBACK_URL"),
	})
	if err := srv.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
