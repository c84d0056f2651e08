package console

import (
	"bufio"
	"errors"
	"io"
	"strings"

	"github.com/chzyer/readline"
)

// ReaderSource reads lines from any reader, accepting both "\n" and "\r\n"
// endings. A final line without a terminator is still returned.
type ReaderSource struct {
	r *bufio.Reader
}

func NewReaderSource(r io.Reader) *ReaderSource {
	return &ReaderSource{r: bufio.NewReader(r)}
}

func (s *ReaderSource) ReadLine() (string, error) {
	line, err := s.r.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// ReadlineSource reads lines from an interactive terminal with editing and
// history.
type ReadlineSource struct {
	rl     *readline.Instance
	prompt string
}

func NewReadlineSource(rl *readline.Instance, prompt string) *ReadlineSource {
	return &ReadlineSource{rl: rl, prompt: prompt}
}

func (s *ReadlineSource) ReadLine() (string, error) {
	s.rl.SetPrompt(s.prompt)
	line, err := s.rl.Readline()
	if errors.Is(err, readline.ErrInterrupt) {
		return "", io.EOF
	}
	return line, err
}

// Chain drains each source in turn, moving on when one reports io.EOF.
type Chain struct {
	sources []LineSource
	// Echo, when set, receives a copy of every line taken from a source
	// other than the last, so scripted input shows up in the transcript.
	Echo io.Writer
}

func NewChain(sources ...LineSource) *Chain {
	return &Chain{sources: sources}
}

func (c *Chain) ReadLine() (string, error) {
	for len(c.sources) > 0 {
		line, err := c.sources[0].ReadLine()
		if errors.Is(err, io.EOF) && len(c.sources) > 1 {
			c.sources = c.sources[1:]
			continue
		}
		if err == nil && c.Echo != nil && len(c.sources) > 1 {
			io.WriteString(c.Echo, line+"\n")
		}
		return line, err
	}
	return "", io.EOF
}
