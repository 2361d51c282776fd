//go:build !windows

// Package stderr captures output that C audio libraries (ALSA through oto)
// write straight to file descriptor 2, bypassing os.Stderr, and forwards it
// to the logger so it cannot corrupt the TUI.
package stderr

import (
	"bufio"
	"os"
	"strings"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/cockroachdb/errors"
)

var (
	origStderr int
	pipeRead   *os.File
	pipeWrite  *os.File
	started    bool
	done       chan struct{}
)

// Start begins capturing stderr and logs each captured line at warn level.
// Must be called early in main(), before the audio device is opened.
// On error the program can continue; output just stays on the terminal.
func Start(logger *log.Logger) error {
	if started {
		return nil
	}
	if logger == nil {
		logger = log.Default()
	}

	r, w, err := os.Pipe()
	if err != nil {
		return errors.Wrap(err, "create pipe")
	}

	// Save original stderr file descriptor
	origStderr, err = syscall.Dup(int(os.Stderr.Fd()))
	if err != nil {
		r.Close()
		w.Close()
		return errors.Wrap(err, "dup stderr")
	}

	// Redirect fd 2 to the pipe's write end
	err = syscall.Dup2(int(w.Fd()), int(os.Stderr.Fd()))
	if err != nil {
		syscall.Close(origStderr)
		r.Close()
		w.Close()
		return errors.Wrap(err, "redirect stderr")
	}

	pipeRead = r
	pipeWrite = w
	started = true
	done = make(chan struct{})

	go forward(logger.WithPrefix("stderr"), r, done)
	return nil
}

func forward(logger *log.Logger, r *os.File, done chan<- struct{}) {
	defer close(done)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			logger.Warn(line)
		}
	}
}

// WriteOriginal writes directly to the original stderr, bypassing capture.
// Useful for fatal errors that must be visible even if the TUI is running.
func WriteOriginal(msg string) {
	if started && origStderr > 0 {
		_, _ = syscall.Write(origStderr, []byte(msg))
		return
	}
	_, _ = os.Stderr.WriteString(msg)
}

// Stop restores the original stderr and waits for buffered lines to be
// logged. Should be called on program exit.
func Stop() {
	if !started {
		return
	}

	_ = syscall.Dup2(origStderr, int(os.Stderr.Fd()))
	_ = syscall.Close(origStderr)

	pipeWrite.Close()
	<-done
	pipeRead.Close()
	started = false
}
