package logx

import (
	"encoding/json"
	"time"
)

// JSONFormatter formats logs as JSON
type JSONFormatter struct {
	config *Config
}

// NewJSONFormatter creates a new JSON formatter
func NewJSONFormatter(config *Config) *JSONFormatter {
	return &JSONFormatter{config: config}
}

// Format formats a log entry as a single JSON line
func (f *JSONFormatter) Format(entry *LogEntry) ([]byte, error) {
	data := make(map[string]interface{}, len(entry.Fields)+4)

	for k, v := range entry.Fields {
		data[k] = v
	}

	data["level"] = entry.Level.String()
	data["message"] = entry.Message

	if f.config.EnableTimestamp {
		switch f.config.TimeFormat {
		case "unix":
			data["timestamp"] = entry.Timestamp.Unix()
		case "unixmilli":
			data["timestamp"] = entry.Timestamp.UnixMilli()
		default:
			data["timestamp"] = entry.Timestamp.Format(time.RFC3339Nano)
		}
	}

	if f.config.EnableCaller && entry.Caller != "" {
		data["caller"] = entry.Caller
	}

	if entry.Error != nil {
		data["error"] = entry.Error.Error()
	}

	bytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return append(bytes, '\n'), nil
}
