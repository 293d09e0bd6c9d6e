package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
)

type line struct {
	text string
	err  error
}

// Prompter asks questions on out and reads answers line by line.
// Every validating prompt loops until it gets an acceptable answer,
// the input ends (io.EOF), or ctx is done.
type Prompter struct {
	out   io.Writer
	lines <-chan line

	done      chan struct{}
	closeOnce sync.Once
	// stopped is closed when the reader goroutine returns.
	stopped <-chan struct{}
}

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	done := make(chan struct{})
	lines, stopped := scanLines(in, done)

	return &Prompter{
		out:     out,
		lines:   lines,
		done:    done,
		stopped: stopped,
	}
}

// Close stops delivering input. A reader blocked inside in.Read returns
// once that read completes; its line is dropped.
func (p *Prompter) Close() {
	p.closeOnce.Do(func() { close(p.done) })
}

// scanLines reads in on its own goroutine so a blocked read never keeps
// a canceled session alive.
func scanLines(in io.Reader, done <-chan struct{}) (<-chan line, <-chan struct{}) {
	ch := make(chan line)
	stopped := make(chan struct{})

	send := func(l line) bool {
		select {
		case ch <- l:
			return true
		case <-done:
			return false
		}
	}

	go func() {
		defer close(stopped)
		defer close(ch)

		sc := bufio.NewScanner(in)
		for sc.Scan() {
			if !send(line{text: sc.Text()}) {
				return
			}
		}

		err := sc.Err()
		if err != nil {
			send(line{err: fmt.Errorf("read input: %w", err)})
		}
	}()

	return ch, stopped
}

func (p *Prompter) Printf(format string, args ...any) {
	fmt.Fprintf(p.out, format, args...)
}

func (p *Prompter) Println(args ...any) {
	fmt.Fprintln(p.out, args...)
}

// Line prints prompt and returns the next trimmed line.
func (p *Prompter) Line(ctx context.Context, prompt string) (string, error) {
	p.Printf("%s", prompt)

	return p.next(ctx)
}

func (p *Prompter) next(ctx context.Context) (string, error) {
	select {
	case <-p.done:
		return "", io.EOF
	default:
	}

	// A canceled session must not consume input that is already waiting.
	err := ctx.Err()
	if err != nil {
		return "", err
	}

	select {
	case <-p.done:
		return "", io.EOF
	case <-ctx.Done():
		return "", ctx.Err()
	case l, ok := <-p.lines:
		if !ok {
			return "", io.EOF
		}

		if l.err != nil {
			return "", l.err
		}

		return strings.TrimSpace(l.text), nil
	}
}

// Price asks for a non-negative unit price for the named ticket category.
func (p *Prompter) Price(ctx context.Context, category string) (decimal.Decimal, error) {
	text, err := p.Line(ctx, fmt.Sprintf("Enter the price for %s Ticket: $", category))
	if err != nil {
		return decimal.Zero, err
	}

	for {
		price, perr := decimal.NewFromString(text)
		if perr == nil && !price.IsNegative() {
			return price, nil
		}

		text, err = p.Line(ctx, fmt.Sprintf("Invalid input. Please enter a valid price for %s Ticket: $", category))
		if err != nil {
			return decimal.Zero, err
		}
	}
}

// IntInRange asks prompt until the answer is an integer in [lo, hi].
func (p *Prompter) IntInRange(ctx context.Context, prompt string, lo, hi int) (int, error) {
	text, err := p.Line(ctx, prompt)
	if err != nil {
		return 0, err
	}

	for {
		n, perr := strconv.Atoi(text)

		switch {
		case perr != nil:
			text, err = p.Line(ctx, "Invalid input. "+prompt)
		case n < lo || n > hi:
			text, err = p.Line(ctx, "Input out of range. "+prompt)
		default:
			return n, nil
		}

		if err != nil {
			return 0, err
		}
	}
}

// YesNo reports whether the answer is "yes" in any case. Anything else is no.
func (p *Prompter) YesNo(ctx context.Context, prompt string) (bool, error) {
	text, err := p.Line(ctx, prompt)
	if err != nil {
		return false, err
	}

	return strings.EqualFold(text, "yes"), nil
}
