package chatlog

import (
	"regexp"
	"strings"

	"cs-chat-translate/model"
)

// chatLine описывает формат строки чата в console.log:
// "[канал] отправитель: сообщение". Двоеточия внутри сообщения допустимы.
var chatLine = regexp.MustCompile(`^\[(CT|T|ALL)\]([^:]*):(.*)$`)

// Parse разбирает одну строку лога. Строки, не похожие на сообщение чата
// (киллфид, вывод движка и прочий шум), отбрасываются без ошибки.
func Parse(line string) (model.ChatEvent, bool) {
	m := chatLine.FindStringSubmatch(line)
	if m == nil {
		return model.ChatEvent{}, false
	}

	return model.ChatEvent{
		Channel: toChannel(m[1]),
		Sender:  strings.TrimSpace(m[2]),
		Message: strings.TrimSpace(m[3]),
	}, true
}

func toChannel(token string) model.Channel {
	switch token {
	case "CT":
		return model.ChannelCT
	case "T":
		return model.ChannelT
	default:
		return model.ChannelAll
	}
}
