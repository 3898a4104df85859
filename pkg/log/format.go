package log

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/keyboardio/testplan/internal/errors"
)

const (
	textTimestampFormat = "15:04:05.000"
	jsonTimestampFormat = time.RFC3339
)

var (
	_ Formatter = new(TextFormatter)
	_ Formatter = new(JSONFormatter)
)

// TextFormatter writes one human readable line per entry:
//
//	15:04:05.000 INF [path/to/scope] message key=value
type TextFormatter struct {
	colors         compiledColorScheme
	disabledColors bool
}

// NewTextFormatter returns a TextFormatter with colors enabled.
func NewTextFormatter() *TextFormatter {
	return &TextFormatter{colors: defaultColorScheme.Compile()}
}

// DisableColors turns ANSI coloring off.
func (f *TextFormatter) DisableColors() *TextFormatter {
	f.disabledColors = true
	return f
}

// DisabledColors implements Formatter.
func (f *TextFormatter) DisabledColors() bool {
	return f.disabledColors
}

// Format implements Formatter.
func (f *TextFormatter) Format(entry *Entry) ([]byte, error) {
	buf := entry.Buffer
	if buf == nil {
		buf = new(bytes.Buffer)
	}

	colorize := func(name ColorStyleName, str string) string {
		if f.disabledColors {
			return str
		}

		return f.colors.ColorFunc(name)(str)
	}

	level := entry.Level.ShortName()
	if !f.disabledColors {
		level = f.colors.LevelColorFunc(entry.Level)(level)
	}

	fmt.Fprintf(buf, "%s %s ", colorize(TimestampStyle, entry.Time.Format(textTimestampFormat)), level)

	if prefix, ok := entry.Fields[FieldKeyPrefix]; ok {
		fmt.Fprintf(buf, "[%s] ", colorize(PrefixStyle, fmt.Sprint(prefix)))
	}

	buf.WriteString(entry.Message)

	for _, key := range entry.Fields.Keys(FieldKeyPrefix) {
		fmt.Fprintf(buf, " %s=%v", key, entry.Fields[key])
	}

	buf.WriteByte('\n')

	return buf.Bytes(), nil
}

// JSONFormatter writes one JSON object per entry.
type JSONFormatter struct{}

// NewJSONFormatter returns a JSONFormatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// DisabledColors implements Formatter.
func (f *JSONFormatter) DisabledColors() bool {
	return true
}

// Format implements Formatter.
func (f *JSONFormatter) Format(entry *Entry) ([]byte, error) {
	data := make(Fields, len(entry.Fields)+3) //nolint:mnd

	for key, val := range entry.Fields {
		if err, ok := val.(error); ok {
			// encoding/json drops error values
			val = err.Error()
		}

		switch key {
		case FieldKeyMsg, FieldKeyLevel, FieldKeyTime:
			key = "fields." + key
		}

		data[key] = val
	}

	data[FieldKeyMsg] = entry.Message
	data[FieldKeyLevel] = entry.Level.String()
	data[FieldKeyTime] = entry.Time.Format(jsonTimestampFormat)

	buf := entry.Buffer
	if buf == nil {
		buf = new(bytes.Buffer)
	}

	if err := json.NewEncoder(buf).Encode(data); err != nil {
		return nil, errors.Errorf("failed to marshal log entry to JSON: %w", err)
	}

	return buf.Bytes(), nil
}
