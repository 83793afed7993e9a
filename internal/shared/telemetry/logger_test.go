package telemetry

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
)

func TestWriteEmitsJSONLine(t *testing.T) {
	var buf bytes.Buffer
	prev := SetOutput(&buf)
	t.Cleanup(func() { SetOutput(prev) })

	Warn("assist.fallback", map[string]any{"op": "summary", "err": errors.New("timeout"), "level": "spoofed"})

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("decode: %v (%s)", err, buf.String())
	}
	if entry["level"] != "warn" || entry["msg"] != "assist.fallback" {
		t.Fatalf("unexpected entry: %v", entry)
	}
	if entry["err"] != "timeout" || entry["op"] != "summary" {
		t.Fatalf("fields not carried: %v", entry)
	}
	if _, ok := entry["ts"]; !ok {
		t.Fatalf("missing timestamp")
	}
}
