package game

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// filePeekPresser читает cfg-файл в момент нажатия: проверяет, что запись
// завершена раньше нажатия.
type filePeekPresser struct {
	path    string
	keys    []string
	content []string
}

func (p *filePeekPresser) Press(_ context.Context, key string) error {
	data, err := os.ReadFile(p.path)
	if err != nil {
		return err
	}
	p.keys = append(p.keys, key)
	p.content = append(p.content, string(data))
	return nil
}

func newTestSink(t *testing.T) (*Sink, *filePeekPresser) {
	t.Helper()
	dir := t.TempDir()
	presser := &filePeekPresser{path: filepath.Join(dir, SayFile)}
	s := NewSink(dir, "=", presser)
	s.settle = time.Millisecond
	return s, presser
}

func TestDeliverWritesBeforePress(t *testing.T) {
	s, presser := newTestSink(t)

	if err := s.Deliver(context.Background(), "Alice said - Hallo - (from Russian)", false); err != nil {
		t.Fatalf("deliver failed: %v", err)
	}

	if len(presser.keys) != 1 || presser.keys[0] != "=" {
		t.Fatalf("unexpected key presses: %v", presser.keys)
	}
	want := "say \"Alice said - Hallo - (from Russian)\"\n"
	if presser.content[0] != want {
		t.Fatalf("cfg content at press time = %q, want %q", presser.content[0], want)
	}
}

func TestDeliverUsesTeamSay(t *testing.T) {
	s, presser := newTestSink(t)

	if err := s.Deliver(context.Background(), "hi", true); err != nil {
		t.Fatalf("deliver failed: %v", err)
	}
	if presser.content[0] != "say_team \"hi\"\n" {
		t.Fatalf("unexpected cfg content: %q", presser.content[0])
	}
}

func TestDeliverEscapesMessage(t *testing.T) {
	s, presser := newTestSink(t)

	if err := s.Deliver(context.Background(), `quote " and slash \`, false); err != nil {
		t.Fatalf("deliver failed: %v", err)
	}
	want := `say "quote \" and slash \\"` + "\n"
	if presser.content[0] != want {
		t.Fatalf("unexpected cfg content: %q", presser.content[0])
	}
}

func TestDeliverStopsOnCancelledContext(t *testing.T) {
	s, presser := newTestSink(t)
	s.settle = time.Hour

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := s.Deliver(ctx, "hi", false); err == nil {
		t.Fatalf("expected context error")
	}
	if len(presser.keys) != 0 {
		t.Fatalf("key must not be pressed after cancel: %v", presser.keys)
	}
}

func TestEscape(t *testing.T) {
	cases := []struct{ in, want string }{
		{`plain`, `plain`},
		{`a "b"`, `a \"b\"`},
		{`back\slash`, `back\\slash`},
		{`\"`, `\\\"`},
	}

	for _, tc := range cases {
		if got := Escape(tc.in); got != tc.want {
			t.Fatalf("Escape(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
