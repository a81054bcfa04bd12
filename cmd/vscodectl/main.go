// Command vscodectl is an interactive client for the VS Code MCP
// WebSocket server. It connects to a running extension instance and drives
// the editor from a numbered menu: opening and creating files, typing
// text, saving, and running arbitrary VS Code commands.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	vscodemcp "github.com/vscodemcp/vscode-mcp-sdk-go"
)

func main() {
	var (
		host       = flag.String("host", "", "host to connect to (default: localhost)")
		port       = flag.Int("port", 0, "port to connect to (default: 3000)")
		configPath = flag.String("config", "", "path to a YAML config file")
		timeout    = flag.Duration("timeout", 0, "per-command timeout (default: 10s)")
		verbose    = flag.Bool("verbose", false, "enable debug logging to stderr")
	)

	flag.Parse()

	cfg := DefaultConfig()

	if *configPath != "" {
		loaded, err := LoadConfig(*configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, errorStyle.Render(err.Error()))
			os.Exit(1)
		}

		cfg = loaded
	}

	// Flags override config file values.
	if *host != "" {
		cfg.Host = *host
	}

	if *port != 0 {
		cfg.Port = *port
	}

	if *timeout != 0 {
		cfg.TimeoutSeconds = int(timeout.Seconds())
	}

	logger := vscodemcp.NopLogger()
	if *verbose {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	}

	if err := run(cfg, logger); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render(err.Error()))
		os.Exit(1)
	}
}

func run(cfg *Config, logger *slog.Logger) error {
	fmt.Printf("Connecting to VS Code MCP Server at %s...\n", cfg.URL())

	client := vscodemcp.NewClient()
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)

	err := client.Connect(ctx, cfg.URL(),
		vscodemcp.WithLogger(logger),
		vscodemcp.WithCommandTimeout(cfg.Timeout()),
	)

	cancel()

	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}

	fmt.Println(successStyle.Render("Connected to VS Code MCP Server at " + cfg.URL()))

	menu := newMenu(client, os.Stdin, os.Stdout)

	return menu.Run(context.Background())
}
