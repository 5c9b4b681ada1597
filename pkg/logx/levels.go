package logx

import "strings"

// Level orders log severities from most to least verbose.
type Level uint8

const (
	LevelTrace Level = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal // logs then exits
	LevelOff
)

type levelStyle struct {
	name  string
	color string
}

// levelStyles is indexed by Level. Names are padded to five characters in
// console output so messages line up.
var levelStyles = [...]levelStyle{
	LevelTrace: {"TRACE", colorGray},
	LevelDebug: {"DEBUG", colorBoldCyan},
	LevelInfo:  {"INFO", colorBoldGreen},
	LevelWarn:  {"WARN", colorBoldYellow},
	LevelError: {"ERROR", colorBoldRed},
	LevelFatal: {"FATAL", colorBoldRed},
	LevelOff:   {"OFF", ""},
}

var levelAliases = map[string]Level{
	"WARNING": LevelWarn,
	"ERR":     LevelError,
	"NONE":    LevelOff,
}

func (l Level) String() string {
	if int(l) < len(levelStyles) {
		return levelStyles[l].name
	}
	return "UNKNOWN"
}

func (l Level) color() string {
	if int(l) < len(levelStyles) {
		return levelStyles[l].color
	}
	return ""
}

// ParseLevel accepts level names case-insensitively, plus a few common
// aliases. Anything else is LevelInfo.
func ParseLevel(level string) Level {
	name := strings.ToUpper(strings.TrimSpace(level))
	for l, style := range levelStyles {
		if style.name == name {
			return Level(l)
		}
	}
	if l, ok := levelAliases[name]; ok {
		return l
	}
	return LevelInfo
}

// Enabled reports whether target is at or above l.
func (l Level) Enabled(target Level) bool {
	return l <= target
}
