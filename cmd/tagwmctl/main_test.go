package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/1broseidon/tagwm/internal/config"
)

type fakeConn struct {
	name   string
	closed bool
}

func (f *fakeConn) RootName() string { return f.name }

func (f *fakeConn) SetRootName(name string) error {
	f.name = name
	return nil
}

func (f *fakeConn) Close() { f.closed = true }

// execute runs the command tree against a fake display.
func execute(t *testing.T, conn *fakeConn, args ...string) (string, error) {
	t.Helper()
	prev := openRoot
	openRoot = func(string) (rootConn, error) { return conn, nil }
	t.Cleanup(func() { openRoot = prev })

	printOnly, noColor, configPath, configPrintDefaults = false, true, "", false

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestRootCommand_HasSubcommands(t *testing.T) {
	found := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		found[c.Name()] = true
	}
	for _, name := range []string{"queue", "swallow", "status", "set-status", "version", "config"} {
		if !found[name] {
			t.Errorf("expected subcommand %q not found", name)
		}
	}
}

func TestQueue_PublishesCommand(t *testing.T) {
	conn := &fakeConn{}
	if _, err := execute(t, conn, "queue", "0x1400003", "mpv"); err != nil {
		t.Fatalf("queue error: %v", err)
	}
	if conn.name != "#!swallowqueue###0x1400003###mpv" {
		t.Fatalf("unexpected root name %q", conn.name)
	}
	if !conn.closed {
		t.Fatalf("expected connection closed")
	}
}

func TestQueue_SelfUsesWindowID(t *testing.T) {
	t.Setenv("WINDOWID", "20971523")
	conn := &fakeConn{}
	if _, err := execute(t, conn, "queue", "self", "", "", "vim"); err != nil {
		t.Fatalf("queue error: %v", err)
	}
	if conn.name != "#!swallowqueue###0x1400003#########vim" {
		t.Fatalf("unexpected root name %q", conn.name)
	}
}

func TestQueue_BadWindowID(t *testing.T) {
	conn := &fakeConn{}
	if _, err := execute(t, conn, "queue", "nope"); err == nil {
		t.Fatalf("expected error for a bad window id")
	}
	if conn.name != "" {
		t.Fatalf("expected nothing published, got %q", conn.name)
	}
}

func TestSwallow_PrintOnly(t *testing.T) {
	conn := &fakeConn{}
	out, err := execute(t, conn, "swallow", "--print", "0x10", "0x20")
	if err != nil {
		t.Fatalf("swallow error: %v", err)
	}
	if strings.TrimSpace(out) != "#!swallow###0x10###0x20" {
		t.Fatalf("unexpected output %q", out)
	}
	if conn.name != "" {
		t.Fatalf("expected nothing published with --print")
	}
}

func TestSwallow_RejectsSameWindow(t *testing.T) {
	if _, err := execute(t, &fakeConn{}, "swallow", "16", "0x10"); err == nil {
		t.Fatalf("expected error when a window swallows itself")
	}
}

func TestStatus(t *testing.T) {
	out, err := execute(t, &fakeConn{name: "vol 40% | 12:00"}, "status")
	if err != nil {
		t.Fatalf("status error: %v", err)
	}
	if strings.TrimSpace(out) != "vol 40% | 12:00" {
		t.Fatalf("unexpected output %q", out)
	}

	out, err = execute(t, &fakeConn{name: "#!swallow###1###2"}, "status")
	if err != nil {
		t.Fatalf("status error: %v", err)
	}
	if !strings.HasPrefix(out, "pending command: ") {
		t.Fatalf("expected pending command marker, got %q", out)
	}
}

func TestSetStatus_RejectsCommandPrefix(t *testing.T) {
	conn := &fakeConn{}
	if _, err := execute(t, conn, "set-status", "#!swallow###1###2"); err == nil {
		t.Fatalf("expected error for command-prefixed status text")
	}
	if _, err := execute(t, conn, "set-status", "hello"); err != nil {
		t.Fatalf("set-status error: %v", err)
	}
	if conn.name != "hello" {
		t.Fatalf("unexpected root name %q", conn.name)
	}
}

func TestConfigExplain(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("border_px: 3\n"), 0o644); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}

	out, err := execute(t, &fakeConn{}, "config", "explain", "--path", path, "border_px")
	if err != nil {
		t.Fatalf("explain error: %v", err)
	}
	if !strings.Contains(out, "source: file:") || !strings.Contains(out, "config.yaml:1:") {
		t.Fatalf("expected file source in output, got %q", out)
	}
	if !strings.Contains(out, "value:\n3\n") {
		t.Fatalf("expected value 3 in output, got %q", out)
	}
}

func TestFormatSource(t *testing.T) {
	if got := formatSource(config.Source{Kind: config.SourceDefault, Name: "defaults"}); got != "default:defaults" {
		t.Fatalf("unexpected default source %q", got)
	}
	if got := formatSource(config.Source{Kind: config.SourceFile, File: "/a.yaml"}); got != "file:/a.yaml" {
		t.Fatalf("unexpected file source %q", got)
	}
}
