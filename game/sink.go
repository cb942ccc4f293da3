package game

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// SayFile — имя cfg-файла, который игра выполняет по нажатию бинда.
const SayFile = "translate_say.cfg"

const defaultSettle = 150 * time.Millisecond

// KeyPresser симулирует нажатие клавиши во внешнем приложении.
type KeyPresser interface {
	Press(ctx context.Context, key string) error
}

// XdotoolPresser нажимает клавишу утилитой xdotool.
type XdotoolPresser struct{}

// Press выполняет "xdotool key <key>".
func (XdotoolPresser) Press(ctx context.Context, key string) error {
	if err := exec.CommandContext(ctx, "xdotool", "key", key).Run(); err != nil {
		return fmt.Errorf("xdotool key %s: %w", key, err)
	}
	return nil
}

// Sink пишет ответ в cfg-файл игры и отправляет его нажатием бинда.
type Sink struct {
	cfgDir  string
	bindKey string
	presser KeyPresser
	settle  time.Duration
}

// NewSink собирает Sink для каталога cfg игры.
func NewSink(cfgDir, bindKey string, presser KeyPresser) *Sink {
	return &Sink{cfgDir: cfgDir, bindKey: bindKey, presser: presser, settle: defaultSettle}
}

// Deliver записывает say/say_team команду и после короткой паузы нажимает
// бинд. Запись всегда завершается до нажатия; пауза даёт игре увидеть файл.
func (s *Sink) Deliver(ctx context.Context, message string, team bool) error {
	say := "say"
	if team {
		say = "say_team"
	}
	line := say + " \"" + Escape(message) + "\"\n"

	path := filepath.Join(s.cfgDir, SayFile)
	if err := os.WriteFile(path, []byte(line), 0o644); err != nil {
		return fmt.Errorf("sink: write %s: %w", path, err)
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(s.settle):
	}

	if err := s.presser.Press(ctx, s.bindKey); err != nil {
		return fmt.Errorf("sink: press bind key: %w", err)
	}
	return nil
}

// Escape экранирует символы, значимые для консольного синтаксиса игры.
func Escape(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"`, `\"`)
}
