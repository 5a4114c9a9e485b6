// Command chatcheck sends probe messages through the configured chat backend
// and reports whether each reply came from the backend or the local table.
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/wolfman30/eventpulse-api/cmd/mainconfig"
	"github.com/wolfman30/eventpulse-api/internal/app/bootstrap"
	"github.com/wolfman30/eventpulse-api/internal/chat"
	appconfig "github.com/wolfman30/eventpulse-api/internal/config"
	"github.com/wolfman30/eventpulse-api/pkg/logging"
)

var defaultProbes = []string{
	"Hi there!",
	"What hackathons are coming up?",
	"Who made you?",
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := appconfig.Load()
	logger := logging.NewWithWriter(os.Stderr, cfg.LogLevel, "text")

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	backend, err := bootstrap.BuildChatBackend(ctx, cfg, logger, mainconfig.LoadAWSConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "chat backend unavailable: %v\n", err)
	}
	if closer, ok := backend.(io.Closer); ok {
		defer closer.Close()
	}

	responder := chat.NewResponder(chat.ResponderConfig{
		Backend: backend,
		Timeout: cfg.ChatTimeout,
		Logger:  logger,
	})

	probes := os.Args[1:]
	if len(probes) == 0 {
		probes = defaultProbes
	}
	if remote := runProbes(ctx, responder, probes, os.Stdout); remote == 0 && backend != nil {
		os.Exit(1)
	}
}

// runProbes prints one block per message and returns how many replies came
// from the remote backend.
func runProbes(ctx context.Context, responder *chat.Responder, probes []string, out io.Writer) int {
	fmt.Fprintf(out, "backend: %s\n", responder.BackendName())
	remote := 0
	for i, probe := range probes {
		start := time.Now()
		reply, err := responder.Respond(ctx, probe)
		elapsed := time.Since(start).Round(time.Millisecond)
		fmt.Fprintf(out, "\n[%d] %s\n", i+1, probe)
		if err != nil {
			fmt.Fprintf(out, "    error: %v\n", err)
			continue
		}
		if reply.Source == chat.SourceRemote {
			remote++
		}
		fmt.Fprintf(out, "    source=%s elapsed=%s\n", reply.Source, elapsed)
		fmt.Fprintf(out, "    %s\n", strings.ReplaceAll(reply.Text, "\n", "\n    "))
	}
	fmt.Fprintf(out, "\n%d/%d replies from %s\n", remote, len(probes), responder.BackendName())
	return remote
}
