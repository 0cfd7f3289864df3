package logx

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestWithViewAddsFields(t *testing.T) {
	capture := &logCapture{}
	log := WithView(New(capture, "info"), "editor", "group-1")
	log.Info("hello")

	entry := capture.firstEntry(t)
	if entry["view_type"] != "editor" {
		t.Fatalf("expected view_type field, got %+v", entry)
	}
	if entry["tab_group"] != "group-1" {
		t.Fatalf("expected tab_group field, got %+v", entry)
	}
}

func TestWithURISkipsEmpty(t *testing.T) {
	capture := &logCapture{}
	log := WithURI(New(capture, "info"), "")
	log.Info("hello")

	entry := capture.firstEntry(t)
	if _, ok := entry["uri"]; ok {
		t.Fatalf("did not expect uri for empty value, got %+v", entry)
	}
}

func TestLevelFiltersDebug(t *testing.T) {
	capture := &logCapture{}
	log := New(capture, "warn")
	log.Debug("dropped")
	log.Info("dropped")
	if capture.buf.Len() != 0 {
		t.Fatalf("expected no output below warn, got %q", capture.buf.String())
	}
	log.Warn("kept")
	if capture.buf.Len() == 0 {
		t.Fatal("expected warn output")
	}
}

func TestOrDiscardNil(t *testing.T) {
	if OrDiscard(nil) == nil {
		t.Fatal("expected a logger for nil input")
	}
}

type logCapture struct {
	buf bytes.Buffer
}

func (c *logCapture) Write(p []byte) (int, error) {
	return c.buf.Write(p)
}

func (c *logCapture) firstEntry(t *testing.T) map[string]any {
	t.Helper()
	data := c.buf.Bytes()
	idx := bytes.IndexByte(data, '\n')
	if idx == -1 {
		idx = len(data)
	}
	line := bytes.TrimSpace(data[:idx])
	entry := map[string]any{}
	if err := json.Unmarshal(line, &entry); err != nil {
		t.Fatalf("parse log entry: %v", err)
	}
	return entry
}
