// Package console connects a machine to line-oriented terminal I/O.
package console

import (
	"bufio"
	"io"
)

// LineSource yields input one line at a time, without its terminator.
type LineSource interface {
	ReadLine() (string, error)
}

// Console is a machine.IOChannel. Output is buffered and flushed whenever the
// program asks for input; input is buffered one line at a time and handed out
// a character per request, the line ending delivered as '\n'.
type Console struct {
	out     *bufio.Writer
	src     LineSource
	pending []byte
}

func New(src LineSource, out io.Writer) *Console {
	return &Console{
		out: bufio.NewWriter(out),
		src: src,
	}
}

func (c *Console) WriteChar(ch byte) error {
	return c.out.WriteByte(ch)
}

func (c *Console) ReadChar() (byte, error) {
	if len(c.pending) == 0 {
		if err := c.Flush(); err != nil {
			return 0, err
		}
		line, err := c.src.ReadLine()
		if err != nil {
			return 0, err
		}
		c.pending = append(append(c.pending, line...), '\n')
	}
	ch := c.pending[0]
	c.pending = c.pending[1:]
	return ch, nil
}

// Buffered returns the part of the current input line not yet consumed.
func (c *Console) Buffered() string {
	return string(c.pending)
}

func (c *Console) Flush() error {
	return c.out.Flush()
}
