package possibletypes

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/vektah/gqlparser/v2/ast"

	"github.com/nautilus/possibletypes/language"
)

// Logger logs messages
type Logger interface {
	Trace(args ...interface{})
	Debug(args ...interface{})
	Info(args ...interface{})
	Warn(args ...interface{})

	WithFields(fields LoggerFields) Logger
	IntrospectionRound(requested []string, document *ast.QueryDocument)
}

// LoggerFields is a wrapper over a map of key,value pairs to associate with the log
type LoggerFields map[string]interface{}

// DefaultLogger handles the logging in the possibletypes library
type DefaultLogger struct {
	fields logrus.Fields
}

// Trace should be used for the step by step details of learning types
func (l *DefaultLogger) Trace(args ...interface{}) {
	if globalLogLevel >= logrus.TraceLevel {
		l.entry(logrus.TraceLevel).Trace(args...)
	}
}

// Debug should be used for any logging that would be useful for debugging
func (l *DefaultLogger) Debug(args ...interface{}) {
	if globalLogLevel >= logrus.DebugLevel {
		l.entry(logrus.DebugLevel).Debug(args...)
	}
}

// Info should be used for any logging that doesn't necessarily need attention but is nice to see by default
func (l *DefaultLogger) Info(args ...interface{}) {
	if globalLogLevel >= logrus.InfoLevel {
		l.entry(logrus.InfoLevel).Info(args...)
	}
}

// Warn should be used for logging that needs attention
func (l *DefaultLogger) Warn(args ...interface{}) {
	if globalLogLevel >= logrus.WarnLevel {
		l.entry(logrus.WarnLevel).Warn(args...)
	}
}

// WithFields adds the provided fields to the Log
func (l *DefaultLogger) WithFields(fields LoggerFields) Logger {
	// build up the logrus fields
	logrusFields := logrus.Fields{}
	for key, value := range l.fields {
		logrusFields[key] = value
	}
	for key, value := range fields {
		logrusFields[key] = value
	}
	return &DefaultLogger{fields: logrusFields}
}

// IntrospectionRound formats and logs the query that was sent to learn the given types
func (l *DefaultLogger) IntrospectionRound(requested []string, document *ast.QueryDocument) {
	if globalLogLevel < logrus.DebugLevel {
		return
	}

	l.WithFields(LoggerFields{
		"requested": requested,
	}).Debug("Introspecting possible types")

	if query, err := language.PrintQuery(document); err == nil {
		l.Trace("Augmented query: ", query)
	}
}

func (l *DefaultLogger) entry(level logrus.Level) *logrus.Entry {
	entry := newLogEntry(level)
	// if there are fields
	if l.fields != nil {
		entry = entry.WithFields(l.fields)
	}
	return entry
}

// NoopLogger discards everything
type NoopLogger struct{}

func (NoopLogger) Trace(args ...interface{}) {}
func (NoopLogger) Debug(args ...interface{}) {}
func (NoopLogger) Info(args ...interface{})  {}
func (NoopLogger) Warn(args ...interface{})  {}

// WithFields returns the same logger
func (l NoopLogger) WithFields(fields LoggerFields) Logger { return l }

func (NoopLogger) IntrospectionRound(requested []string, document *ast.QueryDocument) {}

var globalLogLevel logrus.Level

func newLogEntry(level logrus.Level) *logrus.Entry {
	entry := logrus.New()

	entry.SetLevel(level)

	// configure the formatter
	entry.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp:       true,
		ForceColors:            true,
		DisableLevelTruncation: true,
	})

	return logrus.NewEntry(entry)
}

func init() {
	switch os.Getenv("LOGLEVEL") {
	case "Trace":
		globalLogLevel = logrus.TraceLevel
	case "Debug":
		globalLogLevel = logrus.DebugLevel
	case "Info":
		globalLogLevel = logrus.InfoLevel
	default:
		globalLogLevel = logrus.WarnLevel
	}
}
