// Package prompt implements the interactive question surface used during
// setup. Exactly two question kinds exist: yes/no confirmation and free-text
// input. Each blocks until answered; a declined question is reported through
// the returned value, not an error.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Prompter asks the user questions and returns their answers.
type Prompter interface {
	// Confirm asks a yes/no question. Empty or unrecognized input counts
	// as "no".
	Confirm(question string) (bool, error)

	// Input asks for a free-text answer and returns it trimmed. An empty
	// answer is a valid decline indicator; callers decide whether that is
	// acceptable.
	Input(question string) (string, error)
}

// ReadPrompter asks questions on a writer and reads answers line by line
// from a reader, typically stderr and stdin.
type ReadPrompter struct {
	reader *bufio.Reader
	out    io.Writer
}

// New returns a ReadPrompter over the given streams.
func New(r io.Reader, w io.Writer) *ReadPrompter {
	return &ReadPrompter{reader: bufio.NewReader(r), out: w}
}

func (p *ReadPrompter) Confirm(question string) (bool, error) {
	fmt.Fprintf(p.out, "%s [y/N]: ", question)

	line, err := p.readLine()
	if err != nil {
		return false, err
	}

	switch strings.ToLower(line) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

func (p *ReadPrompter) Input(question string) (string, error) {
	fmt.Fprintf(p.out, "%s: ", question)
	return p.readLine()
}

func (p *ReadPrompter) readLine() (string, error) {
	line, err := p.reader.ReadString('\n')
	if err != nil && line == "" {
		// EOF with a partial line still yields the answer; a bare EOF is
		// a read failure.
		return "", fmt.Errorf("reading answer: %w", err)
	}
	return strings.TrimSpace(line), nil
}
