package commands

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// prompter asks questions on the terminal.
type prompter struct {
	in     *bufio.Reader
	out    io.Writer
	secret func() ([]byte, error)
}

func newPrompter(stdin io.Reader, out io.Writer) *prompter {
	p := &prompter{
		in:  bufio.NewReader(stdin),
		out: out,
	}

	// Hide secrets only on real terminals, piped input is read as plain lines.
	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fd := int(f.Fd())
		p.secret = func() ([]byte, error) { return term.ReadPassword(fd) }
	}

	return p
}

// Ask returns the trimmed answer, or def when the answer is empty.
func (p *prompter) Ask(label, def string) (string, error) {
	if def != "" {
		fmt.Fprintf(p.out, "%s [%s]: ", label, def)
	} else {
		fmt.Fprintf(p.out, "%s: ", label)
	}

	line, err := p.readLine()
	if err != nil {
		return "", err
	}
	if line == "" {
		return def, nil
	}
	return line, nil
}

// AskSecret returns the answer without echoing it when possible.
func (p *prompter) AskSecret(label string) (string, error) {
	fmt.Fprintf(p.out, "%s: ", label)

	if p.secret == nil {
		return p.readLine()
	}

	b, err := p.secret()
	fmt.Fprintln(p.out)
	if err != nil {
		return "", fmt.Errorf("could not read secret: %w", err)
	}
	return string(b), nil
}

// Confirm asks a yes/no question, empty answers use def.
func (p *prompter) Confirm(label string, def bool) (bool, error) {
	opts := "y/N"
	if def {
		opts = "Y/n"
	}

	for {
		fmt.Fprintf(p.out, "%s [%s]: ", label, opts)
		line, err := p.readLine()
		if err != nil {
			return false, err
		}

		switch strings.ToLower(line) {
		case "":
			return def, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
	}
}

func (p *prompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		if err == io.EOF {
			return "", fmt.Errorf("no more input: %w", err)
		}
		return "", fmt.Errorf("could not read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}
