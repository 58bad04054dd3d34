package log

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/bmwcca/bmwcca-sso/internal/config"
	"github.com/sirupsen/logrus"
)

// ANSI color codes.
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorGray   = "\033[90m"
)

const redacted = "[REDACTED]"

// sensitiveFields are never written to the log output.
var sensitiveFields = []string{"password", "integrator_password"}

// PrettyFormatter renders entries as one colored line per entry for terminals.
type PrettyFormatter struct{}

// Format renders a logrus entry as "time icon message key=value...".
func (f *PrettyFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	levelIcon, levelColor := "•", colorGreen
	switch entry.Level {
	case logrus.ErrorLevel, logrus.FatalLevel, logrus.PanicLevel:
		levelIcon, levelColor = "✗", colorRed
	case logrus.WarnLevel:
		levelIcon, levelColor = "⚠", colorYellow
	case logrus.DebugLevel, logrus.TraceLevel:
		levelIcon, levelColor = "·", colorGray
	}

	keys := make([]string, 0, len(entry.Data))
	for k := range entry.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	fmt.Fprintf(&b, "%s%s%s %s%s%s %s",
		colorGray, entry.Time.Format("15:04:05"), colorReset,
		levelColor, levelIcon, colorReset,
		entry.Message,
	)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s%s%s=%v", colorCyan, k, colorReset, entry.Data[k])
	}
	b.WriteByte('\n')
	return []byte(b.String()), nil
}

// RedactHook blanks credential fields before an entry is formatted.
type RedactHook struct{}

// Levels returns all levels.
func (h *RedactHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

// Fire replaces sensitive field values.
func (h *RedactHook) Fire(entry *logrus.Entry) error {
	for _, field := range sensitiveFields {
		if _, ok := entry.Data[field]; ok {
			entry.Data[field] = redacted
		}
	}
	return nil
}

// NewLogger creates a configured logrus logger writing to stdout.
func NewLogger(level string, format string) *logrus.Logger {
	logger := logrus.New()
	Configure(logger, os.Stdout, level, format)
	return logger
}

// Configure sets output, format, level and the redaction hook on an existing logger.
func Configure(logger *logrus.Logger, out io.Writer, level string, format string) {
	if out != nil {
		logger.SetOutput(out)
	}
	setFormatter(logger, format)
	setLevel(logger, level)
	logger.ReplaceHooks(logrus.LevelHooks{})
	logger.AddHook(&RedactHook{})
}

// Setup configures the standard logrus logger used across the module.
func Setup(cfg config.LogConfig) {
	Configure(logrus.StandardLogger(), os.Stderr, cfg.Level, cfg.Format)
}

func setFormatter(logger *logrus.Logger, format string) {
	switch format {
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	case "pretty":
		logger.SetFormatter(&PrettyFormatter{})
	default:
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "15:04:05",
		})
	}
}

func setLevel(logger *logrus.Logger, level string) {
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	logger.SetLevel(parsed)
}
