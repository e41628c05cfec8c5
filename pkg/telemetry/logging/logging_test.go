package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestSetupWriterLevels(t *testing.T) {
	var buf bytes.Buffer
	logger, err := SetupWriter("warn", "json", &buf)
	if err != nil {
		t.Fatalf("SetupWriter() error = %v", err)
	}

	logger.Info("hidden")
	logger.Warn("visible")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("info line emitted at warn level")
	}
	if !strings.Contains(out, "visible") {
		t.Error("warn line missing")
	}
	if !strings.Contains(out, `"msg"`) {
		t.Error("expected JSON output")
	}
}

func TestSetupWriterRejectsUnknown(t *testing.T) {
	var buf bytes.Buffer
	if _, err := SetupWriter("loud", "json", &buf); err == nil {
		t.Error("expected error for unknown level")
	}
	if _, err := SetupWriter("info", "xml", &buf); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestRedactKey(t *testing.T) {
	if got := RedactKey("sk-live-abcdef123456"); got != "****3456" {
		t.Errorf("RedactKey() = %q", got)
	}
	if got := RedactKey("short"); got != "****" {
		t.Errorf("RedactKey(short) = %q", got)
	}
	if got := RedactKey(""); got != "****" {
		t.Errorf("RedactKey(empty) = %q", got)
	}
}
