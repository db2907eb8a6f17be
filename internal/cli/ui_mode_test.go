package cli

import (
	"io"
	"testing"
)

func stubTerminal(t *testing.T, tty bool) {
	t.Helper()
	original := isTerminal
	isTerminal = func(io.Writer) bool { return tty }
	t.Cleanup(func() { isTerminal = original })
}

func TestResolveUIModeVerboseForcesPlain(t *testing.T) {
	stubTerminal(t, true)
	decision, err := resolveUIMode("live", true, io.Discard)
	if err != nil {
		t.Fatalf("resolveUIMode: %v", err)
	}
	if decision.useLive {
		t.Error("verbose mode enabled the live UI")
	}
}

func TestResolveUIModeAutoFollowsTTY(t *testing.T) {
	stubTerminal(t, true)
	decision, err := resolveUIMode("auto", false, io.Discard)
	if err != nil {
		t.Fatalf("resolveUIMode: %v", err)
	}
	if !decision.useLive {
		t.Error("auto with a TTY did not enable the live UI")
	}

	stubTerminal(t, false)
	decision, err = resolveUIMode("", false, io.Discard)
	if err != nil {
		t.Fatalf("resolveUIMode: %v", err)
	}
	if decision.useLive {
		t.Error("auto without a TTY enabled the live UI")
	}
}

func TestResolveUIModeLiveWithoutTTYFallsBack(t *testing.T) {
	stubTerminal(t, false)
	decision, err := resolveUIMode("live", false, io.Discard)
	if err != nil {
		t.Fatalf("resolveUIMode: %v", err)
	}
	if decision.useLive {
		t.Error("live without a TTY enabled the live UI")
	}
	if decision.warning == "" {
		t.Error("no fallback warning emitted")
	}
}

func TestResolveUIModePlain(t *testing.T) {
	stubTerminal(t, true)
	decision, err := resolveUIMode("plain", false, io.Discard)
	if err != nil {
		t.Fatalf("resolveUIMode: %v", err)
	}
	if decision.useLive {
		t.Error("plain mode enabled the live UI")
	}
}

func TestResolveUIModeRejectsUnknownMode(t *testing.T) {
	stubTerminal(t, true)
	if _, err := resolveUIMode("fancy", false, io.Discard); err == nil {
		t.Fatal("resolveUIMode accepted an unknown mode")
	}
}
