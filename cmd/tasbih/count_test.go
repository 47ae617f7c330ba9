package main

import (
	"strings"
	"testing"
)

func TestCountCmd_Usage(t *testing.T) {
	cmd := newCountCmd()
	if cmd.Use != "count <counter-id>" {
		t.Errorf("Use = %q, want %q", cmd.Use, "count <counter-id>")
	}
	if cmd.Flags().Lookup("config") == nil {
		t.Error("count: expected --config flag")
	}
}

func TestCountCmd_NoArgs(t *testing.T) {
	cfgPath := writeTestConfig(t)
	if _, err := runCLI(t, "count", "-c", cfgPath); err == nil {
		t.Fatal("expected error for missing counter id")
	}
}

func TestCountCmd_BadID(t *testing.T) {
	cfgPath := writeTestConfig(t)
	_, err := runCLI(t, "count", "-c", cfgPath, "abc")
	if err == nil {
		t.Fatal("expected error for non-numeric counter id")
	}
	if !strings.Contains(err.Error(), "invalid counter id") {
		t.Errorf("expected invalid-id error, got: %v", err)
	}
}

func TestCountCmd_UnknownCounter(t *testing.T) {
	cfgPath := writeTestConfig(t)
	if _, err := runCLI(t, "count", "-c", cfgPath, "42"); err == nil {
		t.Fatal("expected error for unknown counter id")
	}
}

func TestCountCmd_RequiresTerminal(t *testing.T) {
	cfgPath := writeTestConfig(t)
	if _, err := runCLI(t, "counter", "new", "-c", cfgPath, "--title", "SubhanAllah", "--target", "33"); err != nil {
		t.Fatalf("counter new failed: %v", err)
	}

	// Test stdin is not a terminal, so the session refuses to start.
	_, err := runCLI(t, "count", "-c", cfgPath, "1")
	if err == nil {
		t.Fatal("expected error when stdin is not a terminal")
	}
	if !strings.Contains(err.Error(), "terminal") {
		t.Errorf("expected terminal error, got: %v", err)
	}
}
