package logger

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"
	"sync"
	"time"
)

type Level int

const (
	Debug Level = iota
	Info
	Warn
	Error
)

func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return Debug
	case "warn", "warning":
		return Warn
	case "error":
		return Error
	default:
		return Info
	}
}

func (l Level) String() string {
	switch l {
	case Debug:
		return "debug"
	case Warn:
		return "warn"
	case Error:
		return "error"
	default:
		return "info"
	}
}

type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

func ParseFormat(s string) Format {
	if strings.EqualFold(strings.TrimSpace(s), "json") {
		return FormatJSON
	}
	return FormatText
}

// Logger minimalista sin deps externas. Los fields van como pares k,v:
//
//	log.Info("dog created", "dog_id", d.ID, "microchip", d.Microchip)
type Logger struct {
	mu     *sync.Mutex
	std    *log.Logger
	level  Level
	format Format
	base   []any
}

func New(level Level, format Format) *Logger {
	return &Logger{
		mu:     &sync.Mutex{},
		std:    log.New(os.Stdout, "", 0),
		level:  level,
		format: format,
	}
}

// With devuelve un logger con fields fijos (p.ej. app o request_id).
// Comparte writer y mutex con el padre.
func (l *Logger) With(kv ...any) *Logger {
	if len(kv) == 0 {
		return l
	}
	base := make([]any, 0, len(l.base)+len(kv))
	base = append(base, l.base...)
	base = append(base, kv...)

	return &Logger{
		mu:     l.mu,
		std:    l.std,
		level:  l.level,
		format: l.format,
		base:   base,
	}
}

func (l *Logger) Debug(msg string, kv ...any) { l.log(Debug, msg, kv) }
func (l *Logger) Info(msg string, kv ...any)  { l.log(Info, msg, kv) }
func (l *Logger) Warn(msg string, kv ...any)  { l.log(Warn, msg, kv) }
func (l *Logger) Error(msg string, kv ...any) { l.log(Error, msg, kv) }

func (l *Logger) log(lvl Level, msg string, kv []any) {
	if lvl < l.level {
		return
	}

	entry := map[string]any{
		"ts":    time.Now().Format(time.RFC3339Nano),
		"level": lvl.String(),
		"msg":   msg,
	}
	addPairs(entry, l.base)
	addPairs(entry, kv)

	l.mu.Lock()
	defer l.mu.Unlock()

	switch l.format {
	case FormatJSON:
		b, _ := json.Marshal(entry)
		l.std.Println(string(b))
	default:
		l.std.Println(formatText(entry))
	}
}

// Un número impar de args deja el último bajo "!BADKEY",
// igual que slog; mejor eso que perder el dato.
func addPairs(entry map[string]any, kv []any) {
	for i := 0; i < len(kv); i += 2 {
		if i+1 >= len(kv) {
			entry["!BADKEY"] = kv[i]
			return
		}
		k, ok := kv[i].(string)
		if !ok || strings.TrimSpace(k) == "" {
			continue
		}
		entry[k] = kv[i+1]
	}
}

func formatText(m map[string]any) string {
	// Keys ordenadas para salida estable (útil en tests/logs).
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, m[k]))
	}
	return strings.Join(parts, " ")
}
