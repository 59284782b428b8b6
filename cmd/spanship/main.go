package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/bft-labs/spanship"
	"github.com/bft-labs/spanship/internal/cliconfig"
	"github.com/bft-labs/spanship/internal/spool"
	"github.com/bft-labs/spanship/pkg/log"
)

const longHelp = `Ship spans to a local trace collection agent without slowing the producer.

spanship reads newline-delimited JSON spans from stdin (or from a spool
directory with --spool-dir), batches them in memory, and posts msgpack
batches to the agent. Shipping is best effort: spans past the queue bound
or lost to a down agent are dropped, never retried, and never block the
producer.`

const exampleUsage = `  tracer-app | spanship --agent-host localhost --agent-port 8126
  spanship --spool-dir /var/spool/spans --service checkout
  spanship --config $HOME/.spanship/config.toml --once`

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	logger := log.NewConsoleLogger()

	root := &cobra.Command{
		Use:     "spanship",
		Short:   "Ship spans to a local trace collection agent",
		Long:    longHelp,
		Example: strings.TrimSpace(exampleUsage),
		Version: fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Load config file first (default $HOME/.spanship/config.toml),
			// then env, then flag overrides.
			cfgFile := cfgPath
			if cfgFile == "" {
				cfgFile = cliconfig.DefaultConfigPath()
			}

			changed := map[string]bool{}
			cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

			if cfgFile != "" && cliconfig.FileExists(cfgFile) {
				fc, err := cliconfig.LoadFileConfig(cfgFile)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				if err := cliconfig.ApplyFileConfig(&cfg, fc, changed); err != nil {
					return err
				}
			}

			if err := cliconfig.ApplyEnvConfig(&cfg, changed); err != nil {
				return err
			}

			if err := cfg.Validate(); err != nil {
				return err
			}

			logger.Info("configuration",
				log.String("agent_host", cfg.AgentHost),
				log.Int("agent_port", cfg.AgentPort),
				log.Duration("write_period", cfg.WritePeriod),
				log.Int("max_queued_spans", cfg.MaxQueuedSpans),
				log.String("spool_dir", cfg.SpoolDir),
				log.Bool("once", cfg.Once),
			)

			return run(cmd.Context(), cfg, logger)
		},
	}

	flags := root.Flags()
	flags.StringVar(&cfgPath, "config", "", "path to config file (default $HOME/.spanship/config.toml)")
	flags.StringVar(&cfg.AgentHost, "agent-host", cfg.AgentHost, "collection agent host")
	flags.IntVar(&cfg.AgentPort, "agent-port", cfg.AgentPort, "collection agent port")
	flags.DurationVar(&cfg.WritePeriod, "write-period", cfg.WritePeriod, "interval between batch sends")
	flags.IntVar(&cfg.MaxQueuedSpans, "max-queued-spans", cfg.MaxQueuedSpans, "queue bound; spans past it are dropped")
	flags.StringVar(&cfg.Service, "service", cfg.Service, "service name stamped on spans without one")
	flags.StringVar(&cfg.SpoolDir, "spool-dir", cfg.SpoolDir, "read spans from *.ndjson files in this directory instead of stdin")
	flags.BoolVar(&cfg.Once, "once", cfg.Once, "process available spans, flush, and exit")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := root.ExecuteContext(ctx); err != nil {
		logger.Error("spanship failed", log.Err(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg cliconfig.Config, logger *log.ZerologLogger) error {
	w, err := spanship.New(spanship.Config{
		Host:             cfg.AgentHost,
		Port:             cfg.AgentPort,
		WritePeriod:      cfg.WritePeriod,
		MaxQueuedRecords: cfg.MaxQueuedSpans,
		TracerVersion:    getVersion(),
	}, spanship.WithLogger(logger))
	if err != nil {
		return err
	}
	// Attempt whatever is still queued, then release the worker.
	defer func() {
		w.Flush()
		w.Stop()
		stats := w.Stats()
		logger.Info("shipping summary",
			log.Uint64("enqueued", stats.Enqueued),
			log.Uint64("dropped_full", stats.DroppedFull),
			log.Uint64("dropped_send", stats.DroppedSend),
			log.Uint64("batches_sent", stats.BatchesSent),
		)
	}()

	if cfg.SpoolDir != "" {
		return runSpool(ctx, cfg, w, logger)
	}
	return runStdin(ctx, cfg, w, logger)
}

func runSpool(ctx context.Context, cfg cliconfig.Config, w *spanship.Writer, logger *log.ZerologLogger) error {
	watcher := spool.New(cfg.SpoolDir, w, cfg.Service, logger)
	if cfg.Once {
		return watcher.Scan()
	}
	if err := watcher.Run(ctx); err != nil && err != context.Canceled {
		return err
	}
	return nil
}

func runStdin(ctx context.Context, cfg cliconfig.Config, w *spanship.Writer, logger *log.ZerologLogger) error {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(os.Stdin)
		scanner.Buffer(make([]byte, 0, 64*1024), 4<<20)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		if err := scanner.Err(); err != nil {
			logger.Error("read stdin", log.Err(err))
		}
	}()

	shipped := 0
	for {
		select {
		case <-ctx.Done():
			logger.Info("interrupted", log.Int("spans", shipped))
			return nil
		case line, ok := <-lines:
			if !ok {
				logger.Info("input drained", log.Int("spans", shipped))
				return nil
			}
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			var span spanship.Span
			if err := json.Unmarshal([]byte(line), &span); err != nil {
				logger.Warn("bad span line", log.Err(err))
				continue
			}
			if span.Service == "" {
				span.Service = cfg.Service
			}
			w.Write(span)
			shipped++
		}
	}
}
