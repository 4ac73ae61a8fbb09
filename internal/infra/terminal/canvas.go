// Package terminal paints on an ANSI terminal.
package terminal

import (
	"bytes"
	"io"
	"sync"

	"github.com/charmbracelet/x/ansi"
	"github.com/cockroachdb/errors"
)

// Canvas buffers cursor and erase sequences and writes them to out in a
// single Write on Flush. Rows and columns are zero-based.
type Canvas struct {
	mu  sync.Mutex
	out io.Writer
	buf bytes.Buffer
}

// New creates a canvas writing to out.
func New(out io.Writer) *Canvas {
	return &Canvas{out: out}
}

func (c *Canvas) write(s string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.buf.WriteString(s)
}

// SaveCursor saves the cursor position.
func (c *Canvas) SaveCursor() {
	c.write(ansi.SaveCursor)
}

// RestoreCursor restores the saved cursor position.
func (c *Canvas) RestoreCursor() {
	c.write(ansi.RestoreCursor)
}

// MoveCursor moves the cursor to row, col.
func (c *Canvas) MoveCursor(row, col int) {
	c.write(ansi.CursorPosition(col+1, row+1))
}

// ClearLine erases the line under the cursor.
func (c *Canvas) ClearLine() {
	c.write(ansi.EraseEntireLine)
}

// ClearRegion erases height lines starting at row top.
func (c *Canvas) ClearRegion(top, height int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for row := top; row < top+height; row++ {
		c.buf.WriteString(ansi.CursorPosition(1, row+1))
		c.buf.WriteString(ansi.EraseEntireLine)
	}
}

// Print writes s at the cursor.
func (c *Canvas) Print(s string) {
	c.write(s)
}

// Flush writes the buffered output.
func (c *Canvas) Flush() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.buf.Len() == 0 {
		return nil
	}
	_, err := c.out.Write(c.buf.Bytes())
	c.buf.Reset()
	if err != nil {
		return errors.Wrap(err, "failed to write to terminal")
	}
	return nil
}
