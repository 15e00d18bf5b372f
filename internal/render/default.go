package render

import (
	"fmt"
)

// DefaultRenderer drives a single status line on a terminal.
type DefaultRenderer struct{}

func (r *DefaultRenderer) Init() error {
	// Hide the cursor
	fmt.Print("\033[?25l")
	return nil
}

func (r *DefaultRenderer) Deinit() {
	// Restore the cursor and move off the status line
	fmt.Print("\033[?25h\n")
}

// Status rewrites the current line, clipped to the terminal width.
func (r *DefaultRenderer) Status(width int, line string) {
	if width > 0 && len(line) > width {
		line = line[:width]
	}
	fmt.Printf("\r\033[2K%s", line)
}

// Line prints above the status line.
func (r *DefaultRenderer) Line(message string) {
	fmt.Printf("\r\033[2K%s\n", message)
}
