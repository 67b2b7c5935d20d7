package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"
)

// AuditLogger defines the interface for store operation logging
type AuditLogger interface {
	// LogOp logs a store mutation or query of note
	LogOp(operation string, user string, status string, details ...interface{})
	// LogAuth logs authentication operations
	LogAuth(operation string, user string, status string, details ...interface{})
}

type auditLogger struct {
	logger *log.Logger
}

// NewAuditLogger creates a new audit logger. An empty logPath discards output.
func NewAuditLogger(logPath string) (AuditLogger, error) {
	var writer io.Writer

	if logPath == "" {
		writer = io.Discard
	} else {
		f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return nil, fmt.Errorf("opening audit log file: %w", err)
		}
		writer = f
	}

	return &auditLogger{
		logger: log.New(writer, "", 0), // No flags, we'll handle formatting ourselves
	}, nil
}

func (l *auditLogger) line(parts []string, details []interface{}) {
	for i := 0; i < len(details); i += 2 {
		if i+1 < len(details) {
			parts = append(parts, fmt.Sprintf("%v=%s", details[i], formatValue(details[i+1])))
		}
	}

	timestamp := time.Now().UTC().Format("2006-01-02 15:04:05 -0700")
	l.logger.Printf("%s %s", timestamp, strings.Join(parts, " "))
}

func (l *auditLogger) LogOp(operation string, user string, status string, details ...interface{}) {
	var parts []string
	parts = append(parts, fmt.Sprintf("op=%s", formatValue(operation)))
	if user != "" {
		parts = append(parts, fmt.Sprintf("user=%s", formatValue(user)))
	}
	parts = append(parts, fmt.Sprintf("status=%s", formatValue(status)))
	l.line(parts, details)
}

func (l *auditLogger) LogAuth(operation string, user string, status string, details ...interface{}) {
	var parts []string
	parts = append(parts, fmt.Sprintf("op=%s", formatValue(operation)))
	if user != "" {
		parts = append(parts, fmt.Sprintf("user=%s", formatValue(user)))
	}
	parts = append(parts, fmt.Sprintf("status=%s", formatValue(status)))
	l.line(parts, details)
}
