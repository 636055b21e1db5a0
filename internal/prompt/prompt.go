// Package prompt implements selector.Provider on a line-oriented terminal.
//
// Package lists are shown as a numbered checklist; the user types
// space-separated numbers to toggle entries and presses Enter to confirm:
//
//	What packages would you like to create a changeset for?
//
//	  [1] [x] changesets-cli
//	  [2] [ ] changesets-core
//
//	Toggle selections (space-separated numbers, 'a' for all), or press Enter when done:
package prompt

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/fatih/color"

	"github.com/ariel-frischer/changesets/internal/selector"
)

// Terminal reads answers from In and writes prompts to Out.
type Terminal struct {
	in  io.Reader
	out io.Writer

	once  sync.Once
	lines chan string
	err   error

	stop sync.Once
	done chan struct{}
}

// New creates a Terminal prompt.
func New(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{in: in, out: out, done: make(chan struct{})}
}

// Close stops reading input. Later prompts fail with selector.ErrCancelled.
func (t *Terminal) Close() {
	t.stop.Do(func() { close(t.done) })
}

var _ selector.Provider = (*Terminal)(nil)

type option struct {
	name     string
	selected bool
}

// Select implements selector.Provider.
func (t *Terminal) Select(ctx context.Context, step selector.Step, candidates []string) ([]string, error) {
	options := make([]option, len(candidates))
	for i, name := range candidates {
		options[i] = option{name: name}
	}

	for {
		t.displayOptions(step.Prompt(), options)
		fmt.Fprint(t.out, "\nToggle selections (space-separated numbers, 'a' for all), or press Enter when done: ")

		input, err := t.readLine(ctx)
		if err != nil {
			return nil, err
		}
		input = strings.TrimSpace(input)

		if input == "" || strings.EqualFold(input, "done") {
			break
		}
		toggle(options, input)
	}

	return selectedNames(options), nil
}

// Summary implements selector.Provider. The summary is a single line.
func (t *Terminal) Summary(ctx context.Context) (string, error) {
	color.New(color.Bold).Fprintf(t.out, "\n%s\n", selector.SummaryPrompt)
	fmt.Fprint(t.out, "> ")

	line, err := t.readLine(ctx)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// Confirm asks a yes/no question. An empty answer picks defaultYes.
// Unrecognized answers repeat the question.
func (t *Terminal) Confirm(ctx context.Context, question string, defaultYes bool) (bool, error) {
	hint := "[y/N]"
	if defaultYes {
		hint = "[Y/n]"
	}

	for {
		fmt.Fprintf(t.out, "\n%s %s: ", color.New(color.Bold).Sprint(question), hint)

		line, err := t.readLine(ctx)
		if err != nil {
			return false, err
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "":
			return defaultYes, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
	}
}

func (t *Terminal) displayOptions(question string, options []option) {
	fmt.Fprintln(t.out)
	color.New(color.Bold).Fprintln(t.out, question)
	fmt.Fprintln(t.out)

	green := color.New(color.FgGreen)
	for i, opt := range options {
		if opt.selected {
			fmt.Fprintf(t.out, "  [%d] %s %s\n", i+1, green.Sprint("[x]"), opt.name)
			continue
		}
		fmt.Fprintf(t.out, "  [%d] [ ] %s\n", i+1, opt.name)
	}
}

// toggle flips the options named by 1-based numbers in input.
// "a" or "all" selects everything, or clears everything when all entries are
// already selected. Anything else that is not a valid number is ignored.
func toggle(options []option, input string) {
	for _, part := range strings.Fields(input) {
		if strings.EqualFold(part, "a") || strings.EqualFold(part, "all") {
			toggleAll(options)
			continue
		}

		num, err := strconv.Atoi(part)
		if err != nil {
			continue
		}
		idx := num - 1
		if idx >= 0 && idx < len(options) {
			options[idx].selected = !options[idx].selected
		}
	}
}

func toggleAll(options []option) {
	all := true
	for _, opt := range options {
		all = all && opt.selected
	}
	for i := range options {
		options[i].selected = !all
	}
}

func selectedNames(options []option) []string {
	var names []string
	for _, opt := range options {
		if opt.selected {
			names = append(names, opt.name)
		}
	}
	return names
}

// readLine returns the next input line. Lines are scanned on a separate
// goroutine so a done ctx unblocks the caller even while the read is pending.
func (t *Terminal) readLine(ctx context.Context) (string, error) {
	t.once.Do(t.startScanner)

	select {
	case <-ctx.Done():
		t.Close()
		fmt.Fprintln(t.out)
		return "", fmt.Errorf("%w: %w", selector.ErrCancelled, ctx.Err())
	case <-t.done:
		return "", fmt.Errorf("%w: prompt closed", selector.ErrCancelled)
	case line, ok := <-t.lines:
		if !ok {
			fmt.Fprintln(t.out)
			if t.err != nil {
				return "", fmt.Errorf("%w: reading input: %w", selector.ErrCancelled, t.err)
			}
			return "", fmt.Errorf("%w: end of input", selector.ErrCancelled)
		}
		return line, nil
	}
}

func (t *Terminal) startScanner() {
	t.lines = make(chan string)
	go func() {
		defer close(t.lines)
		scanner := bufio.NewScanner(t.in)
		for scanner.Scan() {
			select {
			case <-t.done:
				return
			default:
			}
			select {
			case t.lines <- scanner.Text():
			case <-t.done:
				return
			}
		}
		t.err = scanner.Err()
	}()
}
