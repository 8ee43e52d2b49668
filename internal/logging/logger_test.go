// Reelmatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

// captureGlobal points the global logger at a buffer for the test's duration.
func captureGlobal(t *testing.T, level string) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	Init(Config{Level: level, Format: "json", Output: &buf})
	t.Cleanup(func() { Init(DefaultConfig()) })
	return &buf
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	if cfg.Level != "info" {
		t.Errorf("Level = %q, want info", cfg.Level)
	}
	if cfg.Format != "json" {
		t.Errorf("Format = %q, want json", cfg.Format)
	}
	if !cfg.Timestamp {
		t.Error("Timestamp should default to true")
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"DEBUG", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"disabled", zerolog.Disabled},
		{"bogus", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		if got := parseLevel(tt.in); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestInitFiltersBelowLevel(t *testing.T) {
	buf := captureGlobal(t, "warn")

	Info().Msg("hidden")
	Warn().Msg("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info line should be filtered at warn level: %s", out)
	}
	if !strings.Contains(out, `"message":"shown"`) {
		t.Errorf("warn line missing: %s", out)
	}
}

func TestWithComponent(t *testing.T) {
	buf := captureGlobal(t, "debug")

	logger := WithComponent("catalog")
	logger.Info().Msg("loaded")

	if !strings.Contains(buf.String(), `"component":"catalog"`) {
		t.Errorf("component field missing: %s", buf.String())
	}
}

func TestConsoleFormat(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "info", Format: "console", Output: &buf})
	t.Cleanup(func() { Init(DefaultConfig()) })

	Info().Msg("hello console")

	out := buf.String()
	if strings.HasPrefix(strings.TrimSpace(out), "{") {
		t.Errorf("console output should not be JSON: %s", out)
	}
	if !strings.Contains(out, "hello console") {
		t.Errorf("message missing: %s", out)
	}
}

func TestErr(t *testing.T) {
	buf := captureGlobal(t, "info")

	Err(errTest("boom")).Msg("failed")

	if !strings.Contains(buf.String(), `"error":"boom"`) {
		t.Errorf("error field missing: %s", buf.String())
	}
}

type errTest string

func (e errTest) Error() string { return string(e) }
