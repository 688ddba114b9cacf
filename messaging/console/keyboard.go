package console

import (
	"fmt"
	"io"
	"sync"

	"github.com/eiannone/keyboard"
)

// KeyboardConsole assembles lines from raw key presses. It is used on terminals
// where buffered stdin is not available, and echoes what is typed itself.
type KeyboardConsole struct {
	mu      sync.Mutex
	out     io.Writer
	painter Painter
	keys    func() (rune, keyboard.Key, error)
}

// OpenKeyboard puts the terminal into raw mode. Close must be called to restore it.
func OpenKeyboard(out io.Writer, colorize bool) (*KeyboardConsole, error) {
	if err := keyboard.Open(); err != nil {
		return nil, fmt.Errorf("open keyboard: %w", err)
	}
	return &KeyboardConsole{
		out:     out,
		painter: NewPainter(colorize),
		keys:    keyboard.GetKey,
	}, nil
}

func (k *KeyboardConsole) Close() {
	keyboard.Close()
}

func (k *KeyboardConsole) ReadLine(prompt string) (string, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	fmt.Fprint(k.out, k.painter.Paint(Prompt, prompt))
	var line []rune
	for {
		r, key, err := k.keys()
		if err != nil {
			return "", err
		}
		switch key {
		case keyboard.KeyEnter:
			fmt.Fprint(k.out, "\r\n")
			return string(line), nil
		case keyboard.KeyCtrlC, keyboard.KeyCtrlD:
			fmt.Fprint(k.out, "\r\n")
			return "", io.EOF
		case keyboard.KeyBackspace, keyboard.KeyBackspace2:
			if len(line) > 0 {
				line = line[:len(line)-1]
				fmt.Fprint(k.out, "\b \b")
			}
			continue
		case keyboard.KeySpace:
			r = ' '
		}
		if r == 0 {
			continue
		}
		line = append(line, r)
		fmt.Fprint(k.out, string(r))
	}
}

// Display writes line with a carriage return, since raw mode does not translate newlines.
func (k *KeyboardConsole) Display(tone Tone, line string) {
	k.mu.Lock()
	defer k.mu.Unlock()
	fmt.Fprint(k.out, k.painter.Paint(tone, line)+"\r\n")
}
