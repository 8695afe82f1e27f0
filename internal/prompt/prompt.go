// Package prompt asks yes/no questions on the terminal.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/conn-castle/stepup/internal/messages"
)

// Prompter asks yes/no questions.
type Prompter interface {
	Confirm(title string, defaultYes bool) (bool, error)
}

// New returns a huh-backed Prompter when interactive is true and a line
// reader over in otherwise.
func New(in io.Reader, out io.Writer, interactive bool) Prompter {
	if interactive {
		return &HuhPrompter{}
	}
	return NewLinePrompter(in, out)
}

// Always answers every question with Answer without asking. It backs --yes.
type Always struct {
	Answer bool
}

// Confirm returns a.Answer.
func (a Always) Confirm(string, bool) (bool, error) {
	return a.Answer, nil
}

var runFormFunc = func(form *huh.Form) error { return form.Run() }

// HuhPrompter renders confirmations with charmbracelet/huh.
type HuhPrompter struct{}

// Confirm shows a yes/no form. Aborting the form answers no.
func (HuhPrompter) Confirm(title string, defaultYes bool) (bool, error) {
	value := defaultYes
	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(title).
			Affirmative(messages.PromptYes).
			Negative(messages.PromptNo).
			Value(&value),
	))
	if err := runFormFunc(form); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		return false, err
	}
	return value, nil
}

// LinePrompter reads y/n answers line by line.
type LinePrompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewLinePrompter returns a LinePrompter reading from in and writing to out.
func NewLinePrompter(in io.Reader, out io.Writer) *LinePrompter {
	return &LinePrompter{in: bufio.NewReader(in), out: out}
}

// Confirm asks until it reads y/yes or n/no. An empty line picks the default;
// end of input answers no.
func (p *LinePrompter) Confirm(title string, defaultYes bool) (bool, error) {
	for {
		format := messages.PromptNoDefaultFmt
		if defaultYes {
			format = messages.PromptYesDefaultFmt
		}
		if _, err := fmt.Fprintf(p.out, format, title); err != nil {
			return false, err
		}
		line, err := p.in.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return false, err
		}
		response := strings.TrimSpace(line)
		if response == "" {
			if errors.Is(err, io.EOF) {
				return false, nil
			}
			return defaultYes, nil
		}
		switch strings.ToLower(response) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		if errors.Is(err, io.EOF) {
			return false, fmt.Errorf(messages.PromptInvalidResponseFmt, response)
		}
		if _, err := fmt.Fprintln(p.out, messages.PromptRetryYesNo); err != nil {
			return false, err
		}
	}
}
