package spool

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/bft-labs/spanship/internal/domain"
	"github.com/bft-labs/spanship/pkg/log"
)

type collectingWriter struct {
	mu    sync.Mutex
	spans []domain.Span
}

func (c *collectingWriter) Write(span domain.Span) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.spans = append(c.spans, span)
}

func (c *collectingWriter) Spans() []domain.Span {
	c.mu.Lock()
	defer c.mu.Unlock()
	spans := make([]domain.Span, len(c.spans))
	copy(spans, c.spans)
	return spans
}

func writeSpoolFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition not reached before timeout")
}

func TestScan_ShipsExistingFiles(t *testing.T) {
	dir := t.TempDir()
	writeSpoolFile(t, dir, "a.ndjson", `{"trace_id":1,"span_id":1,"service":"checkout","name":"op-a","start":1,"duration":2}
{"trace_id":1,"span_id":2,"name":"op-b","start":3,"duration":4}
`)

	sink := &collectingWriter{}
	w := New(dir, sink, "fallback-svc", log.NewNoopLogger())
	if err := w.Scan(); err != nil {
		t.Fatalf("Scan: %v", err)
	}

	spans := sink.Spans()
	if len(spans) != 2 {
		t.Fatalf("shipped %d spans, want 2", len(spans))
	}
	if spans[0].Name != "op-a" || spans[1].Name != "op-b" {
		t.Errorf("span order = [%s %s], want [op-a op-b]", spans[0].Name, spans[1].Name)
	}
	if spans[0].Service != "checkout" {
		t.Errorf("Service = %q, want checkout (explicit service kept)", spans[0].Service)
	}
	if spans[1].Service != "fallback-svc" {
		t.Errorf("Service = %q, want fallback-svc (default stamped)", spans[1].Service)
	}

	if _, err := os.Stat(filepath.Join(dir, "a.ndjson.sent")); err != nil {
		t.Errorf("processed file not renamed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "a.ndjson")); !os.IsNotExist(err) {
		t.Error("original spool file still present after shipping")
	}
}

func TestScan_SkipsBadLines(t *testing.T) {
	dir := t.TempDir()
	writeSpoolFile(t, dir, "mixed.ndjson", `{"span_id":1,"name":"good"}
this is not json
{"span_id":2,"name":"also-good"}
`)

	sink := &collectingWriter{}
	w := New(dir, sink, "svc", log.NewNoopLogger())
	if err := w.Scan(); err != nil {
		t.Fatalf("Scan: %v", err)
	}

	if got := len(sink.Spans()); got != 2 {
		t.Errorf("shipped %d spans, want 2 (bad line skipped)", got)
	}
}

func TestScan_IgnoresProcessedAndForeignFiles(t *testing.T) {
	dir := t.TempDir()
	writeSpoolFile(t, dir, "done.ndjson.sent", `{"span_id":9,"name":"done"}`)
	writeSpoolFile(t, dir, "notes.txt", "unrelated")

	sink := &collectingWriter{}
	w := New(dir, sink, "svc", log.NewNoopLogger())
	if err := w.Scan(); err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if got := len(sink.Spans()); got != 0 {
		t.Errorf("shipped %d spans, want 0", got)
	}
}

func TestRun_ShipsNewFiles(t *testing.T) {
	dir := t.TempDir()
	sink := &collectingWriter{}
	w := New(dir, sink, "svc", log.NewNoopLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = w.Run(ctx)
	}()

	// Give the watcher a moment to register before the file appears.
	time.Sleep(50 * time.Millisecond)
	writeSpoolFile(t, dir, "new.ndjson", `{"span_id":5,"name":"fresh"}`)

	waitFor(t, 3*time.Second, func() bool { return len(sink.Spans()) == 1 })

	if spans := sink.Spans(); spans[0].Name != "fresh" {
		t.Errorf("span name = %q, want fresh", spans[0].Name)
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
