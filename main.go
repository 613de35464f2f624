package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/flightdesk/flightdesk/bootstrap"
	"github.com/flightdesk/flightdesk/config"
	"github.com/flightdesk/flightdesk/log"
	"github.com/flightdesk/flightdesk/reqcontext"
)

// toolRequest is one line of input: a tool name plus its arguments.
type toolRequest struct {
	Tool string                 `json:"tool"`
	Args map[string]interface{} `json:"args"`
}

type toolResponse struct {
	Text  string `json:"text,omitempty"`
	Error string `json:"error,omitempty"`
}

func main() {
	log.Init()
	log.SetOutput(os.Stderr)

	// Load .env if present
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf(context.Background(), "Failed to load config: %v", err)
	}
	log.SetLevel(cfg.Log.Level)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Infof(context.Background(), "Shutting down flight search service...")
		cancel()
	}()

	app, err := bootstrap.Setup(ctx, cfg)
	if err != nil {
		log.Fatalf(ctx, "Setup failed: %v", err)
	}

	log.Infof(ctx, "Serving tool requests on stdin")
	serve(ctx, app)
}

// serve reads one JSON tool request per line from stdin and writes
// one JSON response per line to stdout. Logs go to stderr so the
// response stream stays clean.
func serve(ctx context.Context, app *bootstrap.App) {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(os.Stdin)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	encoder := json.NewEncoder(os.Stdout)
	for {
		select {
		case <-ctx.Done():
			return
		case line, ok := <-lines:
			if !ok {
				return
			}
			if line == "" {
				continue
			}
			encoder.Encode(handle(ctx, app, line))
		}
	}
}

func handle(ctx context.Context, app *bootstrap.App, line string) toolResponse {
	reqCtx := reqcontext.WithRequestID(ctx, reqcontext.NewRequestID())

	var req toolRequest
	if err := json.Unmarshal([]byte(line), &req); err != nil {
		return toolResponse{Error: fmt.Sprintf("malformed request: %v", err)}
	}
	if req.Tool == "" {
		return toolResponse{Error: "tool name is required"}
	}

	log.Infof(reqCtx, "Tool called: %s", req.Tool)

	text, err := app.Registry.Execute(reqCtx, req.Tool, req.Args)
	if err != nil {
		log.Errorf(reqCtx, "Tool %s failed: %v", req.Tool, err)
		return toolResponse{Error: fmt.Sprintf("error executing %s: %v", req.Tool, err)}
	}
	return toolResponse{Text: text}
}
