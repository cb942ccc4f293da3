package service

import (
	"context"

	"cs-chat-translate/chatlog"
	"cs-chat-translate/dispatch"
)

// Service связывает наблюдатель лога, парсер и диспетчер команд.
type Service struct {
	watcher    *chatlog.Watcher
	dispatcher *dispatch.Dispatcher
	baseCtx    context.Context
}

// New собирает Service для файла лога logPath.
func New(logPath string, dispatcher *dispatch.Dispatcher) *Service {
	s := &Service{dispatcher: dispatcher}
	s.watcher = chatlog.NewWatcher(logPath, s.handleLine)
	return s
}

// Run запускает наблюдение за логом и блокируется до отмены контекста.
func (s *Service) Run(ctx context.Context) error {
	s.baseCtx = ctx
	return s.watcher.Run(ctx)
}

// handleLine обрабатывает одну добавленную строку лога. Каждое событие
// уходит в отдельную горутину: сетевой перевод одного сообщения не
// задерживает разбор соседних строк, порядок ответов не гарантируется.
func (s *Service) handleLine(line string) {
	ev, ok := chatlog.Parse(line)
	if !ok {
		return
	}
	go s.dispatcher.Handle(s.context(), ev)
}

func (s *Service) context() context.Context {
	if s.baseCtx != nil {
		return s.baseCtx
	}
	return context.Background()
}
