// Copyright 2016 Aleksandr Demakin. All rights reserved.

package chat

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/pkg/errors"
)

// ErrStopped is returned by Console.ReadLine, when the wait was cancelled.
var ErrStopped = errors.New("stopped")

type lineResult struct {
	line string
	err  error
}

// Console is the terminal side of a session: it reads lines typed by the user
// and prints prompts, messages and notices. Output is serialized, as both
// the sender and the receiver write to it.
type Console struct {
	mu         sync.Mutex
	out        io.Writer
	in         io.Reader
	prompt     string
	showPrompt bool
	colorize   bool

	readOnce sync.Once
	lines    chan lineResult
}

// ConsoleOptions controls console output.
type ConsoleOptions struct {
	Prompt     string
	ShowPrompt bool
	Colorize   bool
}

// NewConsole returns a console reading from in and writing to out.
func NewConsole(in io.Reader, out io.Writer, opts ConsoleOptions) *Console {
	return &Console{
		in:         in,
		out:        out,
		prompt:     opts.Prompt,
		showPrompt: opts.ShowPrompt,
		colorize:   opts.Colorize,
		lines:      make(chan lineResult),
	}
}

// ReadLine returns the next line without its terminator.
// It returns io.EOF at the end of input, and ErrStopped if stop is closed first.
// A read, which is in progress when stop fires, is not interrupted:
// the line it returns is delivered to the next ReadLine call.
func (c *Console) ReadLine(stop <-chan struct{}) (string, error) {
	c.readOnce.Do(func() { go c.readLines() })
	select {
	case res := <-c.lines:
		return res.line, res.err
	case <-stop:
		return "", ErrStopped
	}
}

func (c *Console) readLines() {
	reader := bufio.NewReader(c.in)
	for {
		line, err := reader.ReadString('\n')
		if len(line) > 0 {
			c.lines <- lineResult{line: strings.TrimRight(line, "\r\n")}
		}
		if err != nil {
			for {
				c.lines <- lineResult{err: err}
			}
		}
	}
}

// Close closes the input, if it can be closed.
// For a terminal this does not wake up a pending read, the goroutine
// blocked in it is left to the process exit.
func (c *Console) Close() error {
	if closer, ok := c.in.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// Prompt prints the prompt, if prompts are enabled.
func (c *Console) Prompt() {
	if !c.showPrompt {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprint(c.out, c.prompt)
}

// Println prints a line of plain text.
func (c *Console) Println(args ...interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.out, args...)
}

// Printf prints formatted text.
func (c *Console) Printf(format string, args ...interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.out, format, args...)
}

// Message prints a received message as "[sender]: body".
func (c *Console) Message(m Message) {
	label := "[" + m.Sender + "]"
	if c.colorize {
		label = text.Colors{text.FgCyan, text.Bold}.Sprint(label)
	}
	c.Printf("\n%s: %s\n", label, m.Body)
}

// Notice prints a bracketed status line.
func (c *Console) Notice(format string, args ...interface{}) {
	line := "[" + fmt.Sprintf(format, args...) + "]"
	if c.colorize {
		line = text.FgYellow.Sprint(line)
	}
	c.Printf("\n%s\n", line)
}

// Errorf prints a diagnostic inline with the transcript.
func (c *Console) Errorf(format string, args ...interface{}) {
	line := fmt.Sprintf(format, args...)
	if c.colorize {
		line = text.FgRed.Sprint(line)
	}
	c.Printf("\n%s\n", line)
}
