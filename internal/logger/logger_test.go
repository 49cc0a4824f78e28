package logger

import (
	"bytes"
	"strings"
	"testing"
)

// TestDiag tests that diagnostic lines carry no prefix, so test harnesses
// see the raw line
func TestDiag(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger([]string{"diag"}, &buf)

	l.Diag("Using DB driver %s (from %s connection params)", "sqlite3", "fallback")

	want := "Using DB driver sqlite3 (from fallback connection params)\n"
	if buf.String() != want {
		t.Errorf("Diag output = %q, want %q", buf.String(), want)
	}
}

// TestLevels tests that disabled levels produce no output
func TestLevels(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger([]string{"error"}, &buf)

	l.Diag("diag line")
	l.Info("info line")
	l.Warn("warn line")

	if buf.Len() != 0 {
		t.Errorf("disabled levels must not write, got %q", buf.String())
	}

	l.Error("boom: %d", 42)
	if !strings.Contains(buf.String(), "[ERROR] boom: 42") {
		t.Errorf("unexpected error output %q", buf.String())
	}
}

// TestLevelAliases tests warn/warning parsing
func TestLevelAliases(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger([]string{"warning"}, &buf)

	l.Warn("careful")
	if !strings.Contains(buf.String(), "[WARN] careful") {
		t.Errorf("expected warn output, got %q", buf.String())
	}
}
