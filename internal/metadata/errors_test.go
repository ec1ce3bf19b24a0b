package metadata

import (
	"errors"
	"io/fs"
	"strings"
	"testing"
)

func TestWrapKeepsMarkerAndCause(t *testing.T) {
	err := Wrap(ErrMalformed, "manifest", "parse", "episode.xml", fs.ErrInvalid)
	if !errors.Is(err, ErrMalformed) {
		t.Fatal("expected ErrMalformed marker")
	}
	if !errors.Is(err, fs.ErrInvalid) {
		t.Fatal("expected cause to be preserved")
	}
	if !strings.Contains(err.Error(), "manifest: parse: episode.xml") {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestWrapDefaults(t *testing.T) {
	err := Wrap(nil, "", "", "", nil)
	if !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected default marker, got %v", err)
	}
	if !strings.Contains(err.Error(), "extraction failure") {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		err  error
		want EventKind
	}{
		{nil, ""},
		{Wrap(ErrUnavailable, "embedded", "read", "", nil), EventUnavailable},
		{Wrap(ErrUnreadable, "embedded", "open", "", nil), EventUnreadable},
		{Wrap(ErrMalformed, "embedded", "read", "", nil), EventMalformed},
		{errors.New("boom"), EventMalformed},
	}
	for _, tt := range tests {
		if got := KindOf(tt.err); got != tt.want {
			t.Fatalf("KindOf(%v): expected %q, got %q", tt.err, tt.want, got)
		}
	}
}

func TestEventLevels(t *testing.T) {
	if (Event{Kind: EventUnavailable}).Warning() {
		t.Fatal("unavailable must be silent")
	}
	if (Event{Kind: EventDegraded}).Warning() {
		t.Fatal("degraded must not warn")
	}
	if !(Event{Kind: EventMalformed}).Warning() || !(Event{Kind: EventUnreadable}).Warning() {
		t.Fatal("malformed and unreadable must warn")
	}
	ev := Event{Message: "fallback", Err: errors.New("cause")}
	if ev.Reason() != "cause" {
		t.Fatalf("expected error text as reason, got %q", ev.Reason())
	}
}
