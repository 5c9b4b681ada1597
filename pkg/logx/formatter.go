package logx

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Formatter is the interface for log formatters
type Formatter interface {
	Format(entry *LogEntry) ([]byte, error)
}

// LogEntry represents a single log entry
type LogEntry struct {
	Level     Level
	Message   string
	Fields    Fields
	Error     error
	Timestamp time.Time
	Caller    string
}

// Fields is a map of structured data
type Fields map[string]interface{}

const redactedValue = "***"

// redact returns a copy of fields with sensitive values masked.
func redact(fields Fields, keys []string) Fields {
	if len(fields) == 0 || len(keys) == 0 {
		return fields
	}

	out := make(Fields, len(fields))
	for k, v := range fields {
		out[k] = v
		for _, key := range keys {
			if strings.EqualFold(k, key) {
				out[k] = redactedValue
				break
			}
		}
	}
	return out
}

// sortedKeys keeps console output stable between runs.
func sortedKeys(fields Fields) []string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// formatTimestamp formats the timestamp based on the config
func formatTimestamp(t time.Time, format string) string {
	switch format {
	case "unix":
		return fmt.Sprintf("%d", t.Unix())
	case "unixmilli":
		return fmt.Sprintf("%d", t.UnixMilli())
	default:
		return t.Format(format)
	}
}
