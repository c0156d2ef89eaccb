package pidfile

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"syscall"
)

// ErrAlreadyRunning is returned when the PID file names a live process
var ErrAlreadyRunning = errors.New("simulation is already running")

// PIDFile keeps a single simulation process per PID file
type PIDFile struct {
	path string
}

// New creates a PIDFile for path
func New(path string) *PIDFile {
	return &PIDFile{path: path}
}

// Path returns the file location
func (p *PIDFile) Path() string {
	return p.path
}

// Acquire writes the current PID. A stale or unreadable file is replaced;
// a file naming a live process is left alone and ErrAlreadyRunning returned.
func (p *PIDFile) Acquire() error {
	pid, err := p.Read()
	switch {
	case err == nil && isProcessRunning(pid):
		return fmt.Errorf("%w (PID %d, %s)", ErrAlreadyRunning, pid, p.path)
	case err == nil, !errors.Is(err, os.ErrNotExist):
		_ = os.Remove(p.path)
	}

	if err := os.WriteFile(p.path, []byte(strconv.Itoa(os.Getpid())+"\n"), 0o644); err != nil {
		return fmt.Errorf("failed to write PID file: %w", err)
	}
	return nil
}

// Read returns the PID stored in the file
func (p *PIDFile) Read() (int, error) {
	data, err := os.ReadFile(p.path)
	if err != nil {
		return 0, err
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, fmt.Errorf("invalid PID file %s: %w", p.path, err)
	}
	return pid, nil
}

// Release removes the file
func (p *PIDFile) Release() error {
	if err := os.Remove(p.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove PID file: %w", err)
	}
	return nil
}

// signal 0 checks for existence; EPERM means the process exists under another user
func isProcessRunning(pid int) bool {
	if pid <= 0 {
		return false
	}
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	err = process.Signal(syscall.Signal(0))
	return err == nil || errors.Is(err, syscall.EPERM)
}
