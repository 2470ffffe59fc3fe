// Package handoff is the one-shot, file-backed channel a secondary instance
// uses to pass its deep-link URL to the primary.
//
// The channel is a single slot, not a queue: one well-known file holding one
// line, overwritten by writers and deleted by the reader. Two secondaries
// racing each other can silently drop one URL (last writer wins); that is an
// accepted limitation of the single-slot design.
package handoff

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

const defaultFileName = "tamshai_ai_callback_url.txt"

// DefaultPath returns the well-known slot location under the OS temp dir.
func DefaultPath() string {
	return filepath.Join(os.TempDir(), defaultFileName)
}

type Slot struct {
	path   string
	logger *zap.Logger
}

func New(path string, logger *zap.Logger) *Slot {
	if path == "" {
		path = DefaultPath()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Slot{path: path, logger: logger}
}

func (s *Slot) Path() string { return s.path }

// Write replaces the slot contents with url. Any unread prior value is
// overwritten. The file is closed on every exit path.
func (s *Slot) Write(url string) error {
	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		s.logger.Warn("handoff write failed to open slot", zap.String("path", s.path), zap.Error(err))
		return err
	}
	defer f.Close()

	if _, err := f.WriteString(url + "\n"); err != nil {
		s.logger.Warn("handoff write failed", zap.String("path", s.path), zap.Error(err))
		return err
	}
	s.logger.Debug("handoff slot written", zap.String("path", s.path))
	return nil
}

// Read drains the slot: it returns the pending URL and deletes the file so a
// second read comes back empty. An absent slot is the normal no-handoff case.
// Read failures are treated as "no pending URL"; the file is still consumed
// so a corrupt slot cannot be re-polled forever.
func (s *Slot) Read() (string, bool) {
	f, err := os.Open(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("handoff read failed to open slot", zap.String("path", s.path), zap.Error(err))
		}
		return "", false
	}

	line, readErr := bufio.NewReader(f).ReadString('\n')
	_ = f.Close()
	if err := os.Remove(s.path); err != nil {
		s.logger.Warn("handoff slot delete failed", zap.String("path", s.path), zap.Error(err))
	}

	url := strings.TrimRight(line, "\r\n")
	if url == "" {
		if readErr != nil {
			s.logger.Warn("handoff slot unreadable, discarded", zap.String("path", s.path), zap.Error(readErr))
		}
		return "", false
	}
	return url, true
}

// ClearStale deletes any message left over from a previous, possibly
// crashed, run. Called once at primary startup so a stale handoff is never
// replayed before the user initiates a new one.
func (s *Slot) ClearStale() {
	if err := os.Remove(s.path); err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("handoff stale clear failed", zap.String("path", s.path), zap.Error(err))
		}
		return
	}
	s.logger.Debug("cleared stale handoff slot", zap.String("path", s.path))
}
