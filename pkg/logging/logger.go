package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// New creates a logger writing entries in the given format.
func New(writer io.Writer, level Level, format Format) *StreamLogger {
	return &StreamLogger{
		writer: writer,
		format: format,
		state:  &streamState{level: level},
	}
}

// NewJSONLogger creates a logger that writes one JSON object per line
func NewJSONLogger(writer io.Writer, level Level) *StreamLogger {
	return New(writer, level, FormatJSON)
}

// NewTextLogger creates a logger that writes key=value lines
func NewTextLogger(writer io.Writer, level Level) *StreamLogger {
	return New(writer, level, FormatText)
}

func (l *StreamLogger) log(level Level, msg string, fields ...Field) {
	l.state.mu.Lock()
	defer l.state.mu.Unlock()

	if level < l.state.level {
		return
	}

	merged := make([]Field, 0, len(l.fields)+len(fields))
	merged = append(merged, l.fields...)
	merged = append(merged, fields...)

	now := time.Now().Format(time.RFC3339Nano)

	var line []byte
	if l.format == FormatJSON {
		line = encodeJSON(now, level, msg, merged)
	} else {
		line = encodeText(now, level, msg, merged)
	}
	l.writer.Write(line)
}

func encodeJSON(now string, level Level, msg string, fields []Field) []byte {
	entry := LogEntry{
		Time:    now,
		Level:   level.String(),
		Message: msg,
	}
	if len(fields) > 0 {
		entry.Fields = make(map[string]any, len(fields))
		for _, f := range fields {
			entry.Fields[f.Key] = f.Value
		}
	}

	data, err := json.Marshal(entry)
	if err != nil {
		// Only strings remain, so this cannot fail.
		data, _ = json.Marshal(LogEntry{
			Time:    now,
			Level:   ErrorLevel.String(),
			Message: "failed to marshal log entry",
			Fields:  map[string]any{"error": err.Error(), "dropped_msg": msg},
		})
	}
	return append(data, '\n')
}

func encodeText(now string, level Level, msg string, fields []Field) []byte {
	// Later fields override earlier ones with the same key
	values := make(map[string]any, len(fields))
	for _, f := range fields {
		values[f.Key] = f.Value
	}
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	if strings.ContainsFunc(msg, func(r rune) bool { return !unicode.IsPrint(r) }) {
		msg = strconv.Quote(msg)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %-5s %s", now, level.String(), msg)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%s", k, textValue(fmt.Sprint(values[k])))
	}
	b.WriteByte('\n')
	return []byte(b.String())
}

// textValue quotes values that would break the key=value layout or the line.
func textValue(v string) string {
	if v == "" || strings.ContainsFunc(v, func(r rune) bool {
		return r == '"' || r == '=' || unicode.IsSpace(r) || !unicode.IsPrint(r)
	}) {
		return strconv.Quote(v)
	}
	return v
}

// Debug logs a debug-level message
func (l *StreamLogger) Debug(msg string, fields ...Field) {
	l.log(DebugLevel, msg, fields...)
}

// Info logs an info-level message
func (l *StreamLogger) Info(msg string, fields ...Field) {
	l.log(InfoLevel, msg, fields...)
}

// Warn logs a warning-level message
func (l *StreamLogger) Warn(msg string, fields ...Field) {
	l.log(WarnLevel, msg, fields...)
}

// Error logs an error-level message
func (l *StreamLogger) Error(msg string, fields ...Field) {
	l.log(ErrorLevel, msg, fields...)
}

// With creates a child logger with the given fields pre-set
func (l *StreamLogger) With(fields ...Field) Logger {
	newFields := make([]Field, 0, len(l.fields)+len(fields))
	newFields = append(newFields, l.fields...)
	newFields = append(newFields, fields...)

	return &StreamLogger{
		writer: l.writer,
		format: l.format,
		fields: newFields,
		state:  l.state,
	}
}

// SetLevel sets the minimum log level for this logger and all its children
func (l *StreamLogger) SetLevel(level Level) {
	l.state.mu.Lock()
	defer l.state.mu.Unlock()
	l.state.level = level
}

// GetLevel returns the current log level
func (l *StreamLogger) GetLevel() Level {
	l.state.mu.Lock()
	defer l.state.mu.Unlock()
	return l.state.level
}

// OrNop returns l, or a NopLogger when l is nil.
func OrNop(l Logger) Logger {
	if l == nil {
		return NopLogger{}
	}
	return l
}

// StartTimer begins timing an operation
func StartTimer(logger Logger, msg string, fields ...Field) *TimedOperation {
	return &TimedOperation{
		logger: OrNop(logger),
		msg:    msg,
		start:  time.Now(),
		fields: fields,
	}
}

// Elapsed returns the time since the timer started
func (t *TimedOperation) Elapsed() time.Duration {
	return time.Since(t.start)
}

// End logs the operation with its duration and returns it
func (t *TimedOperation) End(fields ...Field) time.Duration {
	elapsed := time.Since(t.start)
	all := append(append(slices.Clone(t.fields), fields...), Latency(elapsed))
	t.logger.Info(t.msg, all...)
	return elapsed
}

// EndError logs the operation as an error with its duration
func (t *TimedOperation) EndError(err error) time.Duration {
	elapsed := time.Since(t.start)
	all := append(slices.Clone(t.fields), Latency(elapsed), Error(err))
	t.logger.Error(t.msg, all...)
	return elapsed
}
