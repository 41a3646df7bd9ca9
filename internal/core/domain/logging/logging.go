package logging

import "context"

type Level string

const (
	DEBUG   Level = "debug"
	INFO    Level = "info"
	WARNING Level = "warning"
	ERROR   Level = "error"
)

type LogEntry struct {
	Key   string
	Value interface{}
}

func Entry(k string, v interface{}) LogEntry {
	return LogEntry{Key: k, Value: v}
}

// Logger is the structured logger every service receives. Entries must never
// carry raw passwords or password hashes.
type Logger interface {
	Debug(ctx context.Context, msg string, entries ...LogEntry)
	Info(ctx context.Context, msg string, entries ...LogEntry)
	Warning(ctx context.Context, msg string, entries ...LogEntry)
	Error(ctx context.Context, msg string, entries ...LogEntry)
}
