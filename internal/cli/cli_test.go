package cli

import (
	"bytes"
	"io"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewCLI(t *testing.T) {
	c := New(io.Discard, LogInfo)
	if c.Logger == nil {
		t.Fatal("New() should set a logger")
	}
}

func TestSetLogLevel(t *testing.T) {
	var buf bytes.Buffer
	c := New(&buf, LogInfo)

	c.Logger.Debug("hidden")
	if buf.Len() != 0 {
		t.Error("debug message should be filtered at info level")
	}

	c.SetLogLevel(LogDebug)
	c.Logger.Debug("visible")
	if buf.Len() == 0 {
		t.Error("debug message should appear at debug level")
	}
}

func TestRootCommandSubcommands(t *testing.T) {
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()

	want := []string{"convert", "art", "meta", "cache", "completion"}
	for _, name := range want {
		found := false
		for _, cmd := range root.Commands() {
			if cmd.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("root command missing subcommand %q", name)
		}
	}
}

func TestRootCommandUse(t *testing.T) {
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()

	if root.Use != "waifufy" {
		t.Errorf("root.Use = %q, want %q", root.Use, "waifufy")
	}
	if !root.SilenceUsage {
		t.Error("root command should silence usage on errors")
	}
}

func TestRootCommandHelp(t *testing.T) {
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"--help"})

	if err := root.Execute(); err != nil {
		t.Fatalf("help execution failed: %v", err)
	}
	if !bytes.Contains(out.Bytes(), []byte("convert")) {
		t.Error("help output should list the convert command")
	}
}

func TestLogLevelAliases(t *testing.T) {
	if LogDebug != log.DebugLevel {
		t.Error("LogDebug should alias log.DebugLevel")
	}
	if LogInfo != log.InfoLevel {
		t.Error("LogInfo should alias log.InfoLevel")
	}
}
