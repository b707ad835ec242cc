package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"golang.org/x/term"
)

// ErrQuit is returned when the person at the terminal asks to leave or input ends.
var ErrQuit = errors.New("player quit")

// LineReader reads one line of input after showing a prompt.
type LineReader interface {
	ReadLine(prompt string) (string, error)
	Close() error
}

// NewLineReader uses readline when in is a terminal and a plain buffered
// reader otherwise, so piped input works too.
func NewLineReader(in *os.File, out io.Writer) (LineReader, error) {
	if !term.IsTerminal(int(in.Fd())) {
		return NewBufferedReader(in, out), nil
	}

	rl, err := readline.NewEx(&readline.Config{
		Stdin:           in,
		Stdout:          out,
		InterruptPrompt: "^C",
		EOFPrompt:       "quit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize readline: %w", err)
	}
	return &readlineReader{rl: rl}, nil
}

type readlineReader struct {
	rl *readline.Instance
}

func (r *readlineReader) ReadLine(prompt string) (string, error) {
	r.rl.SetPrompt(prompt)
	line, err := r.rl.Readline()
	if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
		return "", ErrQuit
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (r *readlineReader) Close() error {
	return r.rl.Close()
}

type bufferedReader struct {
	r   *bufio.Reader
	out io.Writer
}

// NewBufferedReader reads lines from r, echoing prompts to out.
func NewBufferedReader(r io.Reader, out io.Writer) LineReader {
	return &bufferedReader{r: bufio.NewReader(r), out: out}
}

func (b *bufferedReader) ReadLine(prompt string) (string, error) {
	fmt.Fprint(b.out, prompt)
	line, err := b.r.ReadString('\n')
	if errors.Is(err, io.EOF) {
		if line == "" {
			return "", ErrQuit
		}
		err = nil
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (b *bufferedReader) Close() error { return nil }
