// Package spool feeds spans from a spool directory into the writer.
//
// Producers drop newline-delimited JSON span files (*.ndjson) into the
// directory; the watcher ships every span in them and renames processed
// files with a ".sent" suffix so they are not shipped twice. Unreadable
// files and unparseable lines are logged and skipped, matching the
// writer's failure-containment posture.
package spool

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/bft-labs/spanship/internal/domain"
	"github.com/bft-labs/spanship/pkg/log"
)

const (
	spoolExt = ".ndjson"
	sentExt  = ".sent"

	// settleDelay lets a burst of writes to the directory quiet down
	// before rescanning.
	settleDelay = 100 * time.Millisecond
)

// SpanWriter is the slice of the writer API the watcher needs.
type SpanWriter interface {
	Write(span domain.Span)
}

// Watcher ships spool files from a directory to a SpanWriter.
type Watcher struct {
	dir     string
	writer  SpanWriter
	logger  log.Logger
	service string
}

// New creates a watcher over dir. Spans without a service name get
// service stamped on them.
func New(dir string, w SpanWriter, service string, logger log.Logger) *Watcher {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &Watcher{
		dir:     dir,
		writer:  w,
		logger:  logger,
		service: service,
	}
}

// Scan ships every unprocessed spool file currently in the directory,
// oldest name first.
func (w *Watcher) Scan() error {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		return fmt.Errorf("read spool dir: %w", err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), spoolExt) {
			continue
		}
		files = append(files, e.Name())
	}
	sort.Strings(files)

	for _, name := range files {
		path := filepath.Join(w.dir, name)
		count, err := w.shipFile(path)
		if err != nil {
			w.logger.Error("spool file skipped", log.String("file", name), log.Err(err))
			continue
		}
		w.logger.Info("spool file shipped", log.String("file", name), log.Int("spans", count))
	}
	return nil
}

// Run watches the directory until the context is cancelled, shipping
// spool files as they appear. Files already present are shipped first.
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(w.dir); err != nil {
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}

	if err := w.Scan(); err != nil {
		w.logger.Error("initial spool scan", log.Err(err))
	}

	var settle *time.Timer
	var settleC <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !strings.HasSuffix(event.Name, spoolExt) {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			if settle == nil {
				settle = time.NewTimer(settleDelay)
				settleC = settle.C
			} else {
				settle.Reset(settleDelay)
			}

		case <-settleC:
			settle = nil
			settleC = nil
			if err := w.Scan(); err != nil {
				w.logger.Error("spool scan", log.Err(err))
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("spool watcher error", log.Err(err))
		}
	}
}

// shipFile writes every span in the file and renames it with the sent
// suffix. Lines that do not parse are logged and skipped.
func (w *Watcher) shipFile(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}

	count := 0
	lineNo := 0
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4<<20)
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var span domain.Span
		if err := json.Unmarshal([]byte(line), &span); err != nil {
			w.logger.Warn("bad span line",
				log.String("file", filepath.Base(path)),
				log.Int("line", lineNo),
				log.Err(err),
			)
			continue
		}
		if span.Service == "" {
			span.Service = w.service
		}
		w.writer.Write(span)
		count++
	}
	scanErr := scanner.Err()
	f.Close()
	if scanErr != nil {
		return count, scanErr
	}

	if err := os.Rename(path, path+sentExt); err != nil {
		return count, fmt.Errorf("mark sent: %w", err)
	}
	return count, nil
}
