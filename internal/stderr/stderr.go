//go:build !windows

// Package stderr captures output that C audio libraries (ALSA) write
// straight to file descriptor 2, so it cannot corrupt the TUI layout.
package stderr

import (
	"bufio"
	"os"
	"strings"
	"sync"
	"syscall"
)

// Capture holds fd 2 redirected into a pipe until Close.
type Capture struct {
	orig  int
	read  *os.File
	write *os.File
	lines chan string
	once  sync.Once
}

// Start redirects fd 2. It must run before the audio device is opened.
// On error nothing is redirected and the program can go on without it.
func Start() (*Capture, error) {
	r, w, err := os.Pipe()
	if err != nil {
		return nil, err
	}

	orig, err := syscall.Dup(int(os.Stderr.Fd()))
	if err != nil {
		r.Close()
		w.Close()
		return nil, err
	}
	if err := syscall.Dup2(int(w.Fd()), int(os.Stderr.Fd())); err != nil {
		syscall.Close(orig)
		r.Close()
		w.Close()
		return nil, err
	}

	c := &Capture{orig: orig, read: r, write: w, lines: make(chan string, 100)}
	go c.scan()
	return c, nil
}

func (c *Capture) scan() {
	defer close(c.lines)
	scanner := bufio.NewScanner(c.read)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		select {
		case c.lines <- line:
		default:
			// nobody is reading, drop
		}
	}
}

// Lines delivers captured lines. It is closed after Close.
func (c *Capture) Lines() <-chan string {
	return c.lines
}

// WriteOriginal writes to the terminal's stderr, bypassing the capture.
func (c *Capture) WriteOriginal(msg string) {
	_, _ = syscall.Write(c.orig, []byte(msg))
}

// Close restores fd 2.
func (c *Capture) Close() {
	c.once.Do(func() {
		_ = syscall.Dup2(c.orig, int(os.Stderr.Fd()))
		_ = syscall.Close(c.orig)
		c.write.Close()
		c.read.Close()
	})
}
