//go:build windows

// Package stderr is a no-op on Windows, whose audio stack does not write
// to fd 2.
package stderr

import "os"

// Capture is a stand-in whose Lines channel is already closed.
type Capture struct {
	lines chan string
}

// Start returns a Capture that captures nothing.
func Start() (*Capture, error) {
	lines := make(chan string)
	close(lines)
	return &Capture{lines: lines}, nil
}

// Lines returns a closed channel.
func (c *Capture) Lines() <-chan string {
	return c.lines
}

// WriteOriginal writes to stderr.
func (c *Capture) WriteOriginal(msg string) {
	_, _ = os.Stderr.WriteString(msg)
}

// Close does nothing.
func (c *Capture) Close() {}
