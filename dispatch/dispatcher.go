package dispatch

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strings"
	"sync/atomic"
	"time"
	"unicode"

	"cs-chat-translate/lang"
	"cs-chat-translate/model"
	"cs-chat-translate/translate"
)

// Sink доставляет готовый ответ обратно в игровой чат.
type Sink interface {
	Deliver(ctx context.Context, message string, team bool) error
}

// Archiver принимает записи переведённого чата для архивирования.
type Archiver interface {
	Enqueue(model.TranslatedMessage) bool
}

const (
	defaultTargetLang = "en"
	noRecentReply     = "No recent message to translate."
	noMatchReply      = "Language not found. Common codes: en, ru, de, fr, es, pt."
)

type commandKind int

const (
	kindPlain commandKind = iota
	kindTranslateLast
	kindLookup
	kindInline
	kindNoop
)

// command — классифицированное сообщение чата.
type command struct {
	kind commandKind
	lang string
	text string
}

// Порядок проверок — контракт: _tl раньше code, code раньше tm_.
var (
	reTranslateLast = regexp.MustCompile(`^(?i)_tl\b(?:\s+(\S+))?`)
	reLookup        = regexp.MustCompile(`^(?i)code[_\s]+(.*)$`)
	reInline        = regexp.MustCompile(`^(?i)tm_([a-z_]{2,5})\b(?:\s+(.*))?$`)
)

// classify относит обрезанное сообщение к одной из команд либо к обычному
// сообщению. Регистр ключевого слова не важен; первое совпадение побеждает.
func classify(message string) command {
	msg := strings.TrimSpace(message)

	if m := reTranslateLast.FindStringSubmatch(msg); m != nil {
		target := defaultTargetLang
		if m[1] != "" {
			target = strings.ToLower(m[1])
		}
		return command{kind: kindTranslateLast, lang: target}
	}
	if m := reLookup.FindStringSubmatch(msg); m != nil {
		return command{kind: kindLookup, text: strings.TrimSpace(m[1])}
	}
	if m := reInline.FindStringSubmatch(msg); m != nil {
		return command{kind: kindInline, lang: strings.ToLower(m[1]), text: strings.TrimSpace(m[2])}
	}
	if strings.HasPrefix(strings.ToLower(msg), "tm_") {
		// искалеченная команда перевода: не действие и не обычное сообщение
		return command{kind: kindNoop}
	}

	return command{kind: kindPlain, text: msg}
}

// Dispatcher классифицирует события чата, помнит последнее обычное
// сообщение и выполняет команды. Ячейка памяти атомарна: при гонках
// побеждает последняя запись.
type Dispatcher struct {
	resolver *translate.Resolver
	sink     Sink
	archiver Archiver
	last     atomic.Pointer[model.LastMessage]
}

// NewDispatcher собирает Dispatcher. archiver может быть nil —
// тогда архив выключен.
func NewDispatcher(resolver *translate.Resolver, sink Sink, archiver Archiver) *Dispatcher {
	return &Dispatcher{resolver: resolver, sink: sink, archiver: archiver}
}

// Last возвращает запомненное сообщение либо nil.
func (d *Dispatcher) Last() *model.LastMessage {
	return d.last.Load()
}

// Handle обрабатывает одно событие чата. На каждое командное событие
// уходит ровно один ответ; обычные сообщения в чат не отвечают.
func (d *Dispatcher) Handle(ctx context.Context, ev model.ChatEvent) {
	cmd := classify(ev.Message)

	if cmd.kind == kindPlain && hasContent(cmd.text) {
		d.last.Store(&model.LastMessage{Sender: ev.Sender, Message: ev.Message, Channel: ev.Channel})
	}

	switch cmd.kind {
	case kindInline:
		if cmd.text == "" {
			return
		}
		d.replyTranslated(ctx, ev.Sender, cmd.text, cmd.lang, ev.Channel)
	case kindTranslateLast:
		last := d.last.Load()
		if last == nil {
			d.deliver(ctx, noRecentReply, ev.Channel.Team())
			return
		}
		d.replyTranslated(ctx, last.Sender, last.Message, cmd.lang, ev.Channel)
	case kindLookup:
		d.replyLookup(ctx, cmd.text, ev.Channel.Team())
	case kindPlain:
		if !hasContent(cmd.text) {
			return
		}
		res, shown := d.resolver.Echo(ctx, ev.Sender, cmd.text)
		if shown {
			d.archive(ev, cmd.text, res, d.resolver.DefaultTarget())
		}
	}
}

func (d *Dispatcher) replyTranslated(ctx context.Context, sender, text, target string, ch model.Channel) {
	res := d.resolver.Resolve(ctx, text, target)
	reply := fmt.Sprintf("%s said - %s - (from %s)", sender, res.Text, lang.Name(res.SourceCode))
	d.deliver(ctx, reply, ch.Team())
	d.archive(model.ChatEvent{Channel: ch, Sender: sender, Message: text}, text, res, target)
}

func (d *Dispatcher) replyLookup(ctx context.Context, query string, team bool) {
	if lang.Normalize(query) == "" {
		// пустой запрос — распознанная команда без действия
		return
	}
	if m := lang.Resolve(query); m != nil {
		d.deliver(ctx, fmt.Sprintf("For %s use tm_%s", m.Name, m.Code), team)
		return
	}
	d.deliver(ctx, noMatchReply, team)
}

func (d *Dispatcher) deliver(ctx context.Context, message string, team bool) {
	if err := d.sink.Deliver(ctx, message, team); err != nil {
		log.Printf("диспетчер: доставка ответа не удалась: %v", err)
	}
}

func (d *Dispatcher) archive(ev model.ChatEvent, text string, res model.TranslationResult, target string) {
	if d.archiver == nil {
		return
	}
	rec := model.TranslatedMessage{
		Channel:    ev.Channel.String(),
		Sender:     ev.Sender,
		Text:       text,
		Translated: res.Text,
		SourceLang: res.SourceCode,
		TargetLang: target,
		SaidAt:     time.Now().UTC(),
	}
	if ok := d.archiver.Enqueue(rec); !ok {
		log.Printf("диспетчер: архив переполнен, запись от %s отброшена", ev.Sender)
	}
}

// hasContent сообщает, есть ли в сообщении что-то кроме пробелов и точек.
func hasContent(s string) bool {
	return strings.IndexFunc(s, func(r rune) bool {
		return !unicode.IsSpace(r) && r != '.'
	}) >= 0
}
