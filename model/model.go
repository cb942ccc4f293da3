package model

import "time"

// Channel определяет область видимости сообщения в игровом чате.
type Channel int

const (
	ChannelAll Channel = iota
	ChannelCT
	ChannelT
)

// Team сообщает, является ли канал командным (CT или T).
func (c Channel) Team() bool {
	return c == ChannelCT || c == ChannelT
}

func (c Channel) String() string {
	switch c {
	case ChannelCT:
		return "CT"
	case ChannelT:
		return "T"
	default:
		return "ALL"
	}
}

// ChatEvent — нормализованная модель одной строки игрового чата.
type ChatEvent struct {
	Channel Channel
	Sender  string
	Message string
}

// LastMessage — последнее «обычное» сообщение, запомненное для команды _tl.
type LastMessage struct {
	Sender  string
	Message string
	Channel Channel
}

// TranslationResult — результат одного обращения к переводчику.
// Overridden=true означает, что эвристика принудительно выбрала
// исходный язык вместо автоопределения.
type TranslationResult struct {
	Text       string
	SourceCode string
	Overridden bool
}

// TranslatedMessage — запись архива: исходное сообщение чата и его перевод.
type TranslatedMessage struct {
	Channel    string
	Sender     string
	Text       string
	Translated string
	SourceLang string
	TargetLang string
	SaidAt     time.Time
}
