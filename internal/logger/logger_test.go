package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestLevels(t *testing.T) {
	tests := []struct {
		name      string
		level     Level
		wantDebug bool
		wantInfo  bool
	}{
		{"off", LevelOff, false, false},
		{"normal", LevelNormal, false, true},
		{"verbose", LevelVerbose, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			log := New(tt.level, &buf)

			log.Debug("debug %d", 1)
			log.Info("info %d", 2)

			out := buf.String()
			if got := strings.Contains(out, "[DBG] "); got != tt.wantDebug {
				t.Fatalf("expected debug=%v, got output %q", tt.wantDebug, out)
			}
			if got := strings.Contains(out, "[INF] "); got != tt.wantInfo {
				t.Fatalf("expected info=%v, got output %q", tt.wantInfo, out)
			}
		})
	}
}

func TestNamedSharesLevel(t *testing.T) {
	var buf bytes.Buffer
	root := New(LevelOff, &buf)
	child := root.Named("session").Named("submit")

	child.Info("dropped")
	if buf.Len() != 0 {
		t.Fatalf("expected no output at LevelOff, got %q", buf.String())
	}

	root.SetLevel(LevelNormal)
	child.Warn("hello %s", "chef")

	out := buf.String()
	if !strings.Contains(out, "[WRN] ") {
		t.Fatalf("expected warn prefix, got %q", out)
	}
	if !strings.Contains(out, "session.submit: hello chef") {
		t.Fatalf("expected component tag, got %q", out)
	}
	if child.GetLevel() != LevelNormal {
		t.Fatalf("expected child level normal, got %s", child.GetLevel())
	}
}

func TestLevelFromFlags(t *testing.T) {
	tests := []struct {
		verbose, quiet bool
		want           Level
	}{
		{false, false, LevelNormal},
		{true, false, LevelVerbose},
		{false, true, LevelOff},
		{true, true, LevelOff},
	}
	for _, tt := range tests {
		if got := LevelFromFlags(tt.verbose, tt.quiet); got != tt.want {
			t.Fatalf("verbose=%v quiet=%v: expected %s, got %s", tt.verbose, tt.quiet, tt.want, got)
		}
	}
}
