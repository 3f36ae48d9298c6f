package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"
)

func TestLogLevelString(t *testing.T) {
	tests := []struct {
		level    Level
		expected string
	}{
		{DebugLevel, "DEBUG"},
		{InfoLevel, "INFO"},
		{WarnLevel, "WARN"},
		{ErrorLevel, "ERROR"},
		{Level(42), "UNKNOWN"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.level.String(); got != tt.expected {
				t.Errorf("Level.String() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
	}{
		{"DEBUG", DebugLevel},
		{"debug", DebugLevel},
		{" Info ", InfoLevel},
		{"WARN", WarnLevel},
		{"warning", WarnLevel},
		{"ERROR", ErrorLevel},
		{"invalid", InfoLevel},
		{"", InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseLevel(tt.input); got != tt.expected {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	if ParseFormat("JSON") != FormatJSON {
		t.Error("ParseFormat(JSON) != FormatJSON")
	}
	if ParseFormat("text") != FormatText {
		t.Error("ParseFormat(text) != FormatText")
	}
	if ParseFormat("") != FormatText {
		t.Error("ParseFormat(\"\") should default to FormatText")
	}
}

func TestFieldConstructors(t *testing.T) {
	tests := []struct {
		name      string
		field     Field
		wantKey   string
		wantValue any
	}{
		{"String", String("key", "value"), "key", "value"},
		{"Int", Int("count", 42), "count", 42},
		{"Uint64", Uint64("id", 9876543210), "id", uint64(9876543210)},
		{"Float64", Float64("ratio", 0.25), "ratio", 0.25},
		{"Bool", Bool("enabled", true), "enabled", true},
		{"Duration", Duration("timeout", 5*time.Second), "timeout", "5s"},
		{"Error", Error(errors.New("boom")), "error", "boom"},
		{"ErrorNil", Error(nil), "error", nil},
		{"NodeID", NodeID(7), "node_id", uint64(7)},
		{"Source", Source("edges.txt.gz"), "source", "edges.txt.gz"},
		{"Line", Line(12), "line", 12},
		{"Phase", Phase("count"), "phase", "count"},
		{"Triangles", Triangles(4), "triangles", uint64(4)},
		{"Workers", Workers(8), "workers", 8},
		{"RunID", RunID("abc"), "run_id", "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.field.Key != tt.wantKey || tt.field.Value != tt.wantValue {
				t.Errorf("%s = %+v, want {Key:%s Value:%v}", tt.name, tt.field, tt.wantKey, tt.wantValue)
			}
		})
	}
}

func TestJSONLogger_BasicLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, DebugLevel)

	logger.Info("graph loaded", Source("edges.txt"), Count(3))

	var entry LogEntry
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Failed to unmarshal log entry: %v", err)
	}

	if entry.Level != "INFO" {
		t.Errorf("Level = %v, want INFO", entry.Level)
	}
	if entry.Message != "graph loaded" {
		t.Errorf("Message = %v, want 'graph loaded'", entry.Message)
	}
	if entry.Fields["source"] != "edges.txt" {
		t.Errorf("Fields[source] = %v, want edges.txt", entry.Fields["source"])
	}
	if entry.Fields["count"] != float64(3) {
		t.Errorf("Fields[count] = %v, want 3", entry.Fields["count"])
	}
	if entry.Time == "" {
		t.Error("Time field is empty")
	}
}

func TestJSONLogger_NoFieldsOmitted(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, InfoLevel)

	logger.Info("plain")

	if strings.Contains(buf.String(), "fields") {
		t.Errorf("expected fields to be omitted, got %s", buf.String())
	}
}

func TestStreamLogger_LevelFiltering(t *testing.T) {
	for _, format := range []Format{FormatJSON, FormatText} {
		var buf bytes.Buffer
		logger := New(&buf, WarnLevel, format)

		logger.Debug("debug message")
		logger.Info("info message")
		logger.Warn("warn message")
		logger.Error("error message")

		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		if len(lines) != 2 {
			t.Errorf("format %d: expected 2 log entries, got %d", format, len(lines))
		}
	}
}

func TestTextLogger_Layout(t *testing.T) {
	var buf bytes.Buffer
	logger := NewTextLogger(&buf, InfoLevel)

	logger.Warn("skipped line", Line(7), String("reason", "out of range"), Source("a.txt"))

	out := strings.TrimSpace(buf.String())
	if !strings.Contains(out, "WARN  skipped line") {
		t.Errorf("missing level and message: %q", out)
	}
	// Keys are sorted and values with spaces are quoted
	if !strings.HasSuffix(out, `line=7 reason="out of range" source=a.txt`) {
		t.Errorf("unexpected field layout: %q", out)
	}
}

func TestStreamLogger_With(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, InfoLevel)

	child := logger.With(Component("loader"), RunID("r1"))
	child.Info("read", Line(3))

	var entry LogEntry
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Failed to unmarshal: %v", err)
	}
	if entry.Fields["component"] != "loader" {
		t.Errorf("component field = %v, want loader", entry.Fields["component"])
	}
	if entry.Fields["run_id"] != "r1" {
		t.Errorf("run_id field = %v, want r1", entry.Fields["run_id"])
	}
	if entry.Fields["line"] != float64(3) {
		t.Errorf("line field = %v, want 3", entry.Fields["line"])
	}
}

func TestStreamLogger_SetLevelPropagatesToChildren(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, InfoLevel)
	child := logger.With(Component("counter"))

	logger.SetLevel(ErrorLevel)

	if child.GetLevel() != ErrorLevel {
		t.Errorf("child level = %v, want ErrorLevel", child.GetLevel())
	}

	child.Info("suppressed")
	if buf.Len() != 0 {
		t.Error("expected no output for Info at ErrorLevel")
	}

	child.Error("kept")
	if buf.Len() == 0 {
		t.Error("expected output for Error at ErrorLevel")
	}
}

type unmarshalable struct{}

func (unmarshalable) MarshalJSON() ([]byte, error) {
	return nil, errors.New(`bad "value"` + "\n")
}

func TestJSONLogger_MarshalFailureStaysValid(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, InfoLevel)

	logger.Info(`read "edges.txt"`, Field{Key: "value", Value: unmarshalable{}})

	line := bytes.TrimSpace(buf.Bytes())
	if !json.Valid(line) {
		t.Fatalf("fallback entry is not valid JSON: %s", line)
	}
	var entry LogEntry
	if err := json.Unmarshal(line, &entry); err != nil {
		t.Fatalf("Failed to unmarshal: %v", err)
	}
	if entry.Level != "ERROR" {
		t.Errorf("Level = %v, want ERROR", entry.Level)
	}
	if entry.Fields["dropped_msg"] != `read "edges.txt"` {
		t.Errorf("dropped_msg = %v", entry.Fields["dropped_msg"])
	}
	if !strings.Contains(fmt.Sprint(entry.Fields["error"]), `bad "value"`) {
		t.Errorf("error field = %v", entry.Fields["error"])
	}
}

func TestTextLogger_QuotesUnsafeValues(t *testing.T) {
	tests := []struct {
		name  string
		field Field
		want  string
	}{
		{"plain", String("k", "edges.txt"), "k=edges.txt"},
		{"space", String("k", "a b"), `k="a b"`},
		{"newline", String("k", "a\nb"), `k="a\nb"`},
		{"carriage return", String("k", "a\rb"), `k="a\rb"`},
		{"quote", String("k", `say "hi"`), `k="say \"hi\""`},
		{"equals", String("k", "a=b"), `k="a=b"`},
		{"empty", String("k", ""), `k=""`},
		{"control", String("k", "a\x00b"), `k="a\x00b"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			NewTextLogger(&buf, InfoLevel).Info("m", tt.field)

			out := buf.String()
			if strings.Count(out, "\n") != 1 {
				t.Fatalf("entry spans several lines: %q", out)
			}
			if !strings.HasSuffix(out, " "+tt.want+"\n") {
				t.Errorf("got %q, want suffix %q", out, tt.want)
			}
		})
	}
}

func TestTextLogger_QuotesMultilineMessage(t *testing.T) {
	var buf bytes.Buffer
	NewTextLogger(&buf, InfoLevel).Info("first\nsecond")

	out := buf.String()
	if strings.Count(out, "\n") != 1 || !strings.Contains(out, `"first\nsecond"`) {
		t.Errorf("message not quoted onto one line: %q", out)
	}
}

func TestTimedOperation(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, InfoLevel)

	timer := StartTimer(logger, "count triangles", Phase("count"))
	elapsed := timer.End(Triangles(4))
	if elapsed < 0 {
		t.Errorf("elapsed = %v", elapsed)
	}

	var entry LogEntry
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Failed to unmarshal: %v", err)
	}
	if entry.Fields["phase"] != "count" || entry.Fields["triangles"] != float64(4) {
		t.Errorf("unexpected fields: %v", entry.Fields)
	}
	if _, ok := entry.Fields["latency"]; !ok {
		t.Error("latency field missing")
	}

	buf.Reset()
	StartTimer(logger, "load").EndError(errors.New("unreadable"))
	if !strings.Contains(buf.String(), `"error":"unreadable"`) {
		t.Errorf("EndError output missing error: %s", buf.String())
	}
}

func TestNopLogger(t *testing.T) {
	var l Logger = NewNopLogger()
	l.Info("ignored")
	if l.With(Count(1)) == nil {
		t.Error("NopLogger.With returned nil")
	}
	if OrNop(nil) == nil {
		t.Error("OrNop(nil) returned nil")
	}
}
