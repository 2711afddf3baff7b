// Package audit appends human-readable records of data anomalies to a
// plain-text log file: insert conflicts that were silently skipped and
// activities no classifier rule matched. The trail is an operator aid,
// so write failures are logged and never propagate.
package audit

import (
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"
)

const timestampLayout = "2006-01-02 15:04:05"

type Trail struct {
	mu sync.Mutex
	f  *os.File
}

// Open opens the trail file for appending, creating it if needed.
func Open(path string) (*Trail, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open audit log: %w", err)
	}
	return &Trail{f: f}, nil
}

func (t *Trail) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.f.Close()
}

// Conflict records a duplicate insert that was skipped, together with
// the row that collided.
func (t *Trail) Conflict(message string, row any) {
	entry := fmt.Sprintf("[%s] CONFLICT: %s\nRow Data: %+v\n\n",
		time.Now().Format(timestampLayout), message, row)
	t.write(entry)
}

// Unclassified records an activity row no rule matched.
func (t *Trail) Unclassified(id int64, text, details string) {
	entry := fmt.Sprintf("[%s] Unclassified Activity ID %d: Text='%s', Details='%s'\n",
		time.Now().Format(timestampLayout), id, text, details)
	t.write(entry)
}

func (t *Trail) write(entry string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, err := t.f.WriteString(entry); err != nil {
		slog.Error("Failed to write audit entry", "error", err)
	}
}
