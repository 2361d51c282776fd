package action

import "testing"

type ping struct{}

func (ping) ActionType() string { return "test.ping" }

func TestCmd(t *testing.T) {
	msg, ok := Cmd("library", ping{})().(Msg)
	if !ok {
		t.Fatal("Cmd did not emit a Msg")
	}
	if msg.Source != "library" || msg.Action != (ping{}) {
		t.Errorf("msg = %+v", msg)
	}
	if got := msg.String(); got != "library: test.ping" {
		t.Errorf("String() = %q", got)
	}
	if got := (Msg{Source: "queuepanel"}).String(); got != "queuepanel" {
		t.Errorf("String() without action = %q", got)
	}
}
