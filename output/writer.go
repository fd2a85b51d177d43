package output

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"extcount/logger"
)

// Metrics summarizes one report run.
type Metrics struct {
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	Root         string `json:"root"`
	Groups       int    `json:"groups"`
	TotalMatched int    `json:"total_matched"`
	ReportPath   string `json:"report_path"`
}

func (m Metrics) Fields() map[string]interface{} {
	return map[string]interface{}{
		"start_time":    m.StartTime,
		"end_time":      m.EndTime,
		"root":          m.Root,
		"groups":        m.Groups,
		"total_matched": m.TotalMatched,
		"report_path":   m.ReportPath,
	}
}

// EnsureDir creates dir if it does not exist yet and reports whether it did.
// An existing directory is left untouched.
func EnsureDir(dir string) (bool, error) {
	info, err := os.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			return false, fmt.Errorf("output folder %s exists and is not a directory", dir)
		}
		return false, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return false, fmt.Errorf("output folder %s: %w", dir, err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return false, fmt.Errorf("create output folder %s: %w", dir, err)
	}
	logger.Infof("Created folder %s", dir)
	return true, nil
}

// ReportName returns report<YYYYMMDDHHMMSS>.<ext> for the given format.
func ReportName(format string, at time.Time) (string, error) {
	ext, err := ReportSuffix(format)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("report%s.%s", Timestamp(at), ext), nil
}

// WriteReport writes doc into dir, named after at. A report written in the
// same second with the same format is replaced.
func WriteReport(dir string, doc []byte, format string, at time.Time) (string, error) {
	name, err := ReportName(format, at)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, name)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return "", fmt.Errorf("open report: %w", err)
	}
	buf := bufio.NewWriter(f)
	if _, err := buf.Write(doc); err != nil {
		f.Close()
		return "", fmt.Errorf("write report: %w", err)
	}
	if err := buf.Flush(); err != nil {
		f.Close()
		return "", fmt.Errorf("write report: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return "", fmt.Errorf("sync report: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close report: %w", err)
	}
	return path, nil
}
