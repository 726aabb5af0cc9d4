package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestDashboardCmd_Help(t *testing.T) {
	cmd := newRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"dashboard", "--help"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("dashboard --help failed: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "--port") {
		t.Errorf("expected --port flag, got: %s", out)
	}
	if !strings.Contains(out, "--config") {
		t.Errorf("expected --config flag, got: %s", out)
	}
}

func TestNewDashboardCmd_Flags(t *testing.T) {
	cmd := newDashboardCmd()
	port := cmd.Flags().Lookup("port")
	if port == nil {
		t.Fatal("expected --port flag")
	}
	if port.Shorthand != "p" {
		t.Errorf("shorthand = %q, want p", port.Shorthand)
	}
	if port.DefValue != "0" {
		t.Errorf("--port default = %q, want 0 (use config value)", port.DefValue)
	}
}
