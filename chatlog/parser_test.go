package chatlog

import (
	"testing"

	"cs-chat-translate/model"
)

func TestParseAcceptsChatLines(t *testing.T) {
	cases := []struct {
		line    string
		channel model.Channel
		sender  string
		message string
	}{
		{"[CT] Alice: tm_de hello friend", model.ChannelCT, "Alice", "tm_de hello friend"},
		{"[T] Dan: code brasil", model.ChannelT, "Dan", "code brasil"},
		{"[ALL] Bob: Привет", model.ChannelAll, "Bob", "Привет"},
		{"[ALL]  spaced name : ping : pong", model.ChannelAll, "spaced name", "ping : pong"},
		{"[CT] x:", model.ChannelCT, "x", ""},
	}

	for _, tc := range cases {
		ev, ok := Parse(tc.line)
		if !ok {
			t.Fatalf("line %q: expected event", tc.line)
		}
		if ev.Channel != tc.channel || ev.Sender != tc.sender || ev.Message != tc.message {
			t.Fatalf("line %q: unexpected event %+v", tc.line, ev)
		}
	}
}

func TestParseRejectsNonChatLines(t *testing.T) {
	lines := []string{
		"",
		"Player connected",
		"[VO] Fire in the hole!",
		"[CT] no colon here",
		"CT] broken: bracket",
		"[all] lower: case channel",
		"Alice: no channel prefix",
	}

	for _, line := range lines {
		if _, ok := Parse(line); ok {
			t.Fatalf("line %q: expected no event", line)
		}
	}
}
