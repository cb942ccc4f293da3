package translate

import (
	"context"
	"fmt"
	"io"
	"log"
	"unicode"

	"cs-chat-translate/lang"
	"cs-chat-translate/model"
)

// Resolver оборачивает внешний переводчик эвристикой принудительного
// русского источника и деградацией при отказе сети. Наружу ошибки
// никогда не поднимаются.
type Resolver struct {
	client        Client
	defaultTarget string
	forceRussian  bool
	console       io.Writer
}

// NewResolver собирает Resolver. console — канал диагностических строк
// для оператора (обычно stdout).
func NewResolver(client Client, defaultTarget string, forceRussian bool, console io.Writer) *Resolver {
	return &Resolver{
		client:        client,
		defaultTarget: defaultTarget,
		forceRussian:  forceRussian,
		console:       console,
	}
}

// DefaultTarget возвращает язык консольной проекции.
func (r *Resolver) DefaultTarget() string {
	return r.defaultTarget
}

// Resolve переводит текст на язык target. При отказе первого запроса
// возвращается исходный текст с кодом "unknown"; повторных попыток нет.
func (r *Resolver) Resolve(ctx context.Context, text, target string) model.TranslationResult {
	first, err := r.client.Translate(ctx, text, target, "")
	if err != nil {
		log.Printf("переводчик: запрос не удался: %v", err)
		return model.TranslationResult{Text: text, SourceCode: "unknown"}
	}

	if r.forceRussian && first.SourceCode != "ru" && hasCyrillic(text) {
		// детектор не согласен, но кириллица в тексте есть: пробуем
		// принудительный русский; неудача второго запроса не фатальна
		forced, err := r.client.Translate(ctx, text, target, "ru")
		if err == nil {
			return model.TranslationResult{Text: forced.Text, SourceCode: "ru", Overridden: true}
		}
		log.Printf("переводчик: принудительный ru не удался: %v", err)
	}

	return model.TranslationResult{Text: first.Text, SourceCode: first.SourceCode}
}

// Echo печатает перевод обычного сообщения в консоль оператора.
// Сообщения, уже написанные на целевом языке, не дублируются; второй
// результат сообщает, была ли строка напечатана.
func (r *Resolver) Echo(ctx context.Context, sender, text string) (model.TranslationResult, bool) {
	res := r.Resolve(ctx, text, r.defaultTarget)
	if res.SourceCode == r.defaultTarget {
		return res, false
	}
	fmt.Fprintf(r.console, "%s: %s (%s)\n", sender, res.Text, lang.Name(res.SourceCode))
	return res, true
}

func hasCyrillic(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Cyrillic, r) {
			return true
		}
	}
	return false
}
