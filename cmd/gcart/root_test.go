package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestRootCmd_Help(t *testing.T) {
	cmd := newRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"--help"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("--help failed: %v", err)
	}

	out := buf.String()
	for _, sub := range []string{"login", "logout", "whoami", "driver", "route", "order", "simulate", "dashboard", "version"} {
		if !strings.Contains(out, sub) {
			t.Errorf("expected help to list %q subcommand, got: %s", sub, out)
		}
	}
}

func TestVersionCmd(t *testing.T) {
	cmd := newRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"version"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("version failed: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "gcart dev") {
		t.Errorf("expected default version string, got: %s", out)
	}
	if !strings.Contains(out, "commit: none") {
		t.Errorf("expected default commit, got: %s", out)
	}
}

func TestExecute_UnknownCommand(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"no-such-command"})

	if code := execute(cmd); code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
}
