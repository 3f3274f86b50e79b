// Package csvlog appends policy sync outcomes to a CSV file. The log is
// append-only: no deduplication, no rotation.
package csvlog

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	// FileName is the fixed log file name inside the log directory.
	FileName = "InformationBarriers-Logs.csv"
	// TimeLayout matches the yyyy-MM-dd-HHmm-ss timestamps of the log.
	TimeLayout = "2006-01-02-1504-05"
)

var header = []string{"Policy", "Error", "Step", "Time"}

// Entry is one outcome row. Error holds "Success" or the captured error
// text.
type Entry struct {
	Policy string
	Error  string
	Step   string
	Time   time.Time
}

type Logger struct {
	path string
}

// New returns a logger writing to <dir>/InformationBarriers-Logs.csv. The
// directory and file are created on first append.
func New(dir string) *Logger {
	return &Logger{path: filepath.Join(dir, FileName)}
}

func (l *Logger) Path() string {
	return l.path
}

// Append writes one row, creating the directory and file as needed. A
// header row is written only when the file is empty.
func (l *Logger) Append(entry Entry) error {
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("failed to create log dir: %w", err)
	}
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	info, err := f.Stat()
	if err != nil {
		return err
	}

	w := csv.NewWriter(f)
	if info.Size() == 0 {
		if err := w.Write(header); err != nil {
			return err
		}
	}
	if err := w.Write([]string{entry.Policy, entry.Error, entry.Step, entry.Time.Format(TimeLayout)}); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}
