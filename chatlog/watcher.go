package chatlog

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
)

// Watcher следит за дозаписью игрового лога и отдаёт новые строки обработчику.
// Уже прочитанные байты никогда не перечитываются; усечение файла
// (новая сессия игры) сбрасывает позицию на начало.
type Watcher struct {
	path    string
	handler func(line string)

	offset int64
	buf    []byte
}

// NewWatcher создаёт наблюдатель для файла path. handler вызывается
// по одному разу на каждую завершённую строку.
func NewWatcher(path string, handler func(line string)) *Watcher {
	return &Watcher{path: path, handler: handler}
}

// Run подписывается на события файловой системы и блокируется до отмены
// контекста. Стартовая позиция — текущий конец файла: история не переводится.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watcher: fsnotify init: %w", err)
	}
	defer fw.Close()

	// наблюдаем каталог: сам лог может быть пересоздан игрой
	if err := fw.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("watcher: add %s: %w", filepath.Dir(w.path), err)
	}

	if fi, err := os.Stat(w.path); err == nil {
		w.offset = fi.Size()
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if ev.Name != w.path {
				continue
			}
			if ev.Op.Has(fsnotify.Create) {
				w.offset = 0
				w.buf = w.buf[:0]
			}
			if ev.Op.Has(fsnotify.Write) || ev.Op.Has(fsnotify.Create) {
				w.consume()
			}
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			log.Printf("наблюдатель: ошибка fsnotify: %v", err)
		}
	}
}

// consume дочитывает файл от сохранённой позиции и отдаёт завершённые строки.
// Незаконченный хвост остаётся в буфере до следующей дозаписи.
func (w *Watcher) consume() {
	f, err := os.Open(w.path)
	if err != nil {
		log.Printf("наблюдатель: открытие %s: %v", w.path, err)
		return
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		log.Printf("наблюдатель: stat %s: %v", w.path, err)
		return
	}
	if fi.Size() < w.offset {
		// файл усечён
		w.offset = 0
		w.buf = w.buf[:0]
	}

	if _, err := f.Seek(w.offset, io.SeekStart); err != nil {
		log.Printf("наблюдатель: seek %s: %v", w.path, err)
		return
	}

	data, err := io.ReadAll(f)
	if err != nil {
		log.Printf("наблюдатель: чтение %s: %v", w.path, err)
		return
	}
	w.offset += int64(len(data))
	w.buf = append(w.buf, data...)

	for {
		i := bytes.IndexByte(w.buf, '\n')
		if i < 0 {
			return
		}
		line := strings.TrimRight(string(w.buf[:i]), "\r")
		w.buf = w.buf[i+1:]
		if line != "" {
			w.handler(line)
		}
	}
}
