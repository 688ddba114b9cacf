// Package console is the line-oriented terminal the simulator talks through.
package console

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/fatih/color"
)

// Tone selects how a display line is styled.
type Tone int

const (
	Plain Tone = iota
	Prompt
	Notice
	Success
	Caution
	Danger
	Highlight
)

// Console prompts for lines and displays text.
type Console interface {
	ReadLine(prompt string) (string, error)
	Display(tone Tone, line string)
}

// Painter renders text in a tone.
type Painter struct {
	palette map[Tone]*color.Color
}

// NewPainter returns a Painter. With colorize false every tone renders as plain text.
func NewPainter(colorize bool) Painter {
	palette := map[Tone]*color.Color{
		Prompt:    color.New(color.FgCyan),
		Notice:    color.New(color.FgBlue),
		Success:   color.New(color.FgGreen),
		Caution:   color.New(color.FgYellow),
		Danger:    color.New(color.FgRed),
		Highlight: color.New(color.FgMagenta),
	}
	for _, c := range palette {
		if colorize {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return Painter{palette: palette}
}

// Paint returns text styled for tone.
func (p Painter) Paint(tone Tone, text string) string {
	c, ok := p.palette[tone]
	if !ok {
		return text
	}
	return c.Sprint(text)
}

// MaxLineBytes bounds a single input line.
const MaxLineBytes = 1 << 20

// ErrLineTooLong is returned for a line over the limit. The rest of that line
// is discarded, so the next read starts on a fresh line.
var ErrLineTooLong = errors.New("input line too long")

// Terminal reads lines from an io.Reader and writes to an io.Writer.
type Terminal struct {
	mu      sync.Mutex
	in      *bufio.Reader
	out     io.Writer
	painter Painter
	maxLine int
}

// NewTerminal returns a Terminal reading from in and writing to out.
func NewTerminal(in io.Reader, out io.Writer, colorize bool) *Terminal {
	return &Terminal{
		in:      bufio.NewReader(in),
		out:     out,
		painter: NewPainter(colorize),
		maxLine: MaxLineBytes,
	}
}

// ReadLine writes prompt and returns the next line without its line ending.
// io.EOF is returned once the input is exhausted.
func (t *Terminal) ReadLine(prompt string) (string, error) {
	t.mu.Lock()
	fmt.Fprint(t.out, t.painter.Paint(Prompt, prompt))
	t.mu.Unlock()

	var line []byte
	tooLong := false
	for {
		chunk, err := t.in.ReadSlice('\n')
		if !tooLong {
			line = append(line, chunk...)
			if len(bytes.TrimRight(line, "\r\n")) > t.maxLine {
				tooLong = true
				line = nil
			}
		}
		if errors.Is(err, bufio.ErrBufferFull) {
			continue
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				return "", err
			}
			if len(line) == 0 && !tooLong {
				return "", io.EOF
			}
		}
		break
	}
	if tooLong {
		return "", ErrLineTooLong
	}
	return strings.TrimRight(string(line), "\r\n"), nil
}

// Display writes line in tone, followed by a newline.
func (t *Terminal) Display(tone Tone, line string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintln(t.out, t.painter.Paint(tone, line))
}
