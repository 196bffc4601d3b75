// Package main is the entry point for the draftsync command line tool.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/plexkit/draftsync/internal/config"
	"github.com/plexkit/draftsync/internal/message"
	"github.com/plexkit/draftsync/internal/parser"
	"github.com/plexkit/draftsync/internal/provider"
	"github.com/plexkit/draftsync/internal/provider/graph"
	"github.com/plexkit/draftsync/internal/provider/ses"
	"github.com/plexkit/draftsync/internal/provider/stdout"
)

func main() {
	configPath := flag.String("config", "", "path to YAML configuration file (optional)")
	to := flag.String("to", "", "comma-separated addresses to add to the To list")
	cc := flag.String("cc", "", "comma-separated addresses to add to the Cc list")
	bcc := flag.String("bcc", "", "comma-separated addresses to add to the Bcc list")
	remove := flag.String("remove", "", "comma-separated addresses to remove from every recipient list")
	subject := flag.String("subject", "", "replace the draft subject")
	patch := flag.Bool("patch", false, "print only the changed fields instead of the full draft")
	send := flag.Bool("send", false, "deliver the draft via the configured provider")
	flag.Parse()

	// Load configuration
	cfg, err := loadConfig(*configPath)
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup structured logging
	setupLogger(cfg.Logging.Level)

	// Load the draft: a JSON or RFC 5322 file, or a fresh draft if no
	// input file is given.
	d, err := loadDraft(flag.Arg(0))
	if err != nil {
		slog.Error("failed to load draft", "error", err)
		os.Exit(1)
	}

	if err := applyEdits(d, *to, *cc, *bcc, *remove, *subject); err != nil {
		slog.Error("failed to apply edits", "error", err)
		os.Exit(1)
	}

	if *send {
		prov := selectProvider(cfg)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)

		go func() {
			sig := <-sigCh
			slog.Info("received signal, cancelling send", "signal", sig)
			cancel()
		}()

		slog.Info("sending draft",
			"provider", prov.Name(),
			"to", d.To().Len(),
			"subject", d.Subject(),
		)
		if err := prov.Send(ctx, d); err != nil {
			slog.Error("send failed", "provider", prov.Name(), "error", err)
			os.Exit(1)
		}
		d.ResetChanges()
		slog.Info("draft sent", "provider", prov.Name())
		return
	}

	var payload map[string]any
	if *patch {
		payload = d.Patch()
	} else {
		payload = d.CloudJSON()
	}

	out, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		slog.Error("failed to encode draft", "error", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}

// loadDraft reads a draft from the given path. JSON input is hydrated
// through the cloud representation; anything else is parsed as an
// RFC 5322 message. An empty path yields a fresh draft.
func loadDraft(path string) (*message.Draft, error) {
	if path == "" {
		return message.NewDraft(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input file: %w", err)
	}

	if bytes.HasPrefix(bytes.TrimLeft(data, " \t\r\n"), []byte("{")) {
		var raw map[string]any
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse JSON draft: %w", err)
		}
		return message.HydrateDraft(raw), nil
	}

	return parser.Parse(data)
}

// applyEdits mutates the draft per the command line flags. Only the
// fields actually touched become dirty.
func applyEdits(d *message.Draft, to, cc, bcc, remove, subject string) error {
	edits := []struct {
		raw  string
		add  func(any) error
		name string
	}{
		{to, d.To().Add, "to"},
		{cc, d.Cc().Add, "cc"},
		{bcc, d.Bcc().Add, "bcc"},
	}
	for _, e := range edits {
		addrs := splitList(e.raw)
		if len(addrs) == 0 {
			continue
		}
		if err := e.add(addrs); err != nil {
			return fmt.Errorf("invalid -%s value: %w", e.name, err)
		}
	}

	if addrs := splitList(remove); len(addrs) > 0 {
		d.To().Remove(addrs...)
		d.Cc().Remove(addrs...)
		d.Bcc().Remove(addrs...)
	}

	if subject != "" {
		d.SetSubject(subject)
	}

	return nil
}

// splitList splits a comma-separated flag value, dropping empty parts.
func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// loadConfig loads configuration from the specified path (YAML + env override)
// or from environment variables only if no path is given.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFromFile(path)
	}
	return config.Load()
}

// setupLogger configures the global slog logger with JSON output and the
// specified log level.
func setupLogger(level string) {
	var logLevel slog.Level

	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})
	slog.SetDefault(slog.New(handler))
}

// selectProvider chooses the delivery backend based on configuration.
// If the provider setting is empty, it falls back to auto-detection
// (Graph if configured, then SES, else stdout).
func selectProvider(cfg *config.Config) provider.Provider {
	switch cfg.Provider {
	case "ses":
		if !cfg.SESConfigured() {
			slog.Error("SES provider selected but SES_REGION and SES_SENDER are required")
			os.Exit(1)
		}
		slog.Info("using AWS SES provider",
			"region", cfg.SES.Region,
			"sender", cfg.SES.Sender,
		)
		p, err := ses.New(context.Background(), ses.Config{
			Region:          cfg.SES.Region,
			AccessKeyID:     cfg.SES.AccessKeyID,
			SecretAccessKey: cfg.SES.SecretAccessKey,
			Sender:          cfg.SES.Sender,
		})
		if err != nil {
			slog.Error("failed to create SES provider", "error", err)
			os.Exit(1)
		}
		return p

	case "graph":
		if !cfg.GraphConfigured() {
			slog.Error("Graph provider selected but GRAPH_TENANT_ID, GRAPH_CLIENT_ID, GRAPH_CLIENT_SECRET, and GRAPH_SENDER are required")
			os.Exit(1)
		}
		slog.Info("using Microsoft Graph provider",
			"sender", cfg.Graph.Sender,
		)
		return graph.New(graph.Config{
			TenantID:     cfg.Graph.TenantID,
			ClientID:     cfg.Graph.ClientID,
			ClientSecret: cfg.Graph.ClientSecret,
			Sender:       cfg.Graph.Sender,
		})

	case "stdout":
		slog.Info("using stdout provider")
		return stdout.New()

	case "":
		if cfg.GraphConfigured() {
			slog.Info("using Microsoft Graph provider (auto-detected)",
				"sender", cfg.Graph.Sender,
			)
			return graph.New(graph.Config{
				TenantID:     cfg.Graph.TenantID,
				ClientID:     cfg.Graph.ClientID,
				ClientSecret: cfg.Graph.ClientSecret,
				Sender:       cfg.Graph.Sender,
			})
		}
		if cfg.SESConfigured() {
			slog.Info("using AWS SES provider (auto-detected)",
				"region", cfg.SES.Region,
				"sender", cfg.SES.Sender,
			)
			p, err := ses.New(context.Background(), ses.Config{
				Region:          cfg.SES.Region,
				AccessKeyID:     cfg.SES.AccessKeyID,
				SecretAccessKey: cfg.SES.SecretAccessKey,
				Sender:          cfg.SES.Sender,
			})
			if err != nil {
				slog.Error("failed to create SES provider", "error", err)
				os.Exit(1)
			}
			return p
		}
		slog.Info("no provider configured, using stdout provider")
		return stdout.New()

	default:
		slog.Error("unknown provider", "provider", cfg.Provider)
		os.Exit(1)
		return nil
	}
}
