package chatlog

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

type lineCollector struct {
	mu    sync.Mutex
	lines []string
}

func (c *lineCollector) add(line string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = append(c.lines, line)
}

func (c *lineCollector) snapshot() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.lines...)
}

func TestConsumeSplitsCompleteLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "console.log")
	collector := &lineCollector{}
	w := NewWatcher(path, collector.add)

	writeLog(t, path, "[ALL] Bob: hi\n[CT] Alice: par")
	w.consume()

	if got := collector.snapshot(); len(got) != 1 || got[0] != "[ALL] Bob: hi" {
		t.Fatalf("expected only the complete line, got %v", got)
	}

	// дозапись завершает хвост предыдущего чтения
	appendLog(t, path, "tial tail\n")
	w.consume()

	got := collector.snapshot()
	if len(got) != 2 || got[1] != "[CT] Alice: partial tail" {
		t.Fatalf("expected buffered tail to complete, got %v", got)
	}
}

func TestConsumeDoesNotRereadSeenBytes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "console.log")
	collector := &lineCollector{}
	w := NewWatcher(path, collector.add)

	writeLog(t, path, "one\n")
	w.consume()
	w.consume()

	if got := collector.snapshot(); len(got) != 1 {
		t.Fatalf("expected a single delivery, got %v", got)
	}
}

func TestConsumeResetsOnTruncation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "console.log")
	collector := &lineCollector{}
	w := NewWatcher(path, collector.add)

	writeLog(t, path, "old session line\n")
	w.consume()

	writeLog(t, path, "new\n")
	w.consume()

	got := collector.snapshot()
	if len(got) != 2 || got[1] != "new" {
		t.Fatalf("expected read from start after truncation, got %v", got)
	}
}

func TestRunDeliversAppendedLines(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "console.log")
	writeLog(t, path, "before start\n")

	collector := &lineCollector{}
	w := NewWatcher(path, collector.add)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// даём наблюдателю подписаться на каталог
	time.Sleep(200 * time.Millisecond)
	appendLog(t, path, "[T] Carol: _tl de\n")

	waitForLines(t, collector, 1)
	if got := collector.snapshot(); got[0] != "[T] Carol: _tl de" {
		t.Fatalf("unexpected lines: %v", got)
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("watcher did not stop after cancel")
	}
}

func waitForLines(t *testing.T, c *lineCollector, expected int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if len(c.snapshot()) >= expected {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("expected at least %d lines, got %v", expected, c.snapshot())
}

func writeLog(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write log: %v", err)
	}
}

func appendLog(t *testing.T, path, content string) {
	t.Helper()
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		t.Fatalf("open log: %v", err)
	}
	defer f.Close()
	if _, err := f.WriteString(content); err != nil {
		t.Fatalf("append log: %v", err)
	}
}
