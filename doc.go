// Package vscodemcp provides a Go SDK for the VS Code MCP WebSocket server.
//
// The SDK connects to the WebSocket server exposed by the VS Code MCP
// extension and controls the editor programmatically: opening and creating
// files, typing text, saving, and running arbitrary VS Code commands. Each
// command is correlated with its response by a unique id, so any number of
// commands may be in flight concurrently and responses may arrive in any
// order.
//
// # Basic Usage
//
//	ctx := context.Background()
//
//	client := vscodemcp.NewClient()
//	defer client.Close()
//
//	err := client.Connect(ctx, "ws://localhost:3000",
//	    vscodemcp.WithLogger(slog.Default()),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	if _, err := client.OpenFile(ctx, "main.go"); err != nil {
//	    log.Fatal(err)
//	}
//
//	content, err := client.GetFileContent(ctx, "")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(content)
//
// # Raw Commands
//
// Actions the SDK has no typed wrapper for can be sent directly; the
// correlation layer treats action names and params as opaque:
//
//	result, err := client.SendCommand(ctx, "openFile",
//	    map[string]any{"path": "main.go"}, "Open file: main.go")
//
// # Error Handling
//
// The SDK provides typed errors for the different failure scenarios:
//
//	_, err := client.OpenFile(ctx, "gone.go")
//	if err != nil {
//	    var remote *vscodemcp.RemoteError
//	    if errors.As(err, &remote) {
//	        log.Printf("server rejected %s: %s", remote.Action, remote.Message)
//	    }
//	    if errors.Is(err, vscodemcp.ErrCommandTimeout) {
//	        log.Print("no response in time")
//	    }
//	}
//
// Commands still pending when the connection closes fail with
// ErrConnectionClosed rather than hanging forever.
//
// # Logging
//
// For detailed operation tracking, use WithLogger:
//
//	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
//	err := client.Connect(ctx, url, vscodemcp.WithLogger(logger))
package vscodemcp
