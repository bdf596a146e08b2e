package view

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrNothingToPick is returned by Pick when the list is empty
var ErrNothingToPick = errors.New("nothing to pick")

// Terminal is a View printing to a writer, one line per update. It keeps the
// rendered state so list entries can be picked afterwards.
type Terminal struct {
	*Recorder
	out io.Writer
}

func NewTerminal(out io.Writer) *Terminal {
	return &Terminal{Recorder: NewRecorder(), out: out}
}

func (t *Terminal) SetText(element, text string) {
	t.Recorder.SetText(element, text)
	fmt.Fprintln(t.out, text)
}

func (t *Terminal) RenderList(element string, items []Item) {
	t.Recorder.RenderList(element, items)
	if len(items) == 0 {
		fmt.Fprintln(t.out, "(empty)")
		return
	}
	for i, item := range items {
		if item.ProductID != "" {
			fmt.Fprintf(t.out, "%3d. %s  [%s]\n", i+1, item.Text, item.ProductID)
		} else {
			fmt.Fprintf(t.out, "%3d. %s\n", i+1, item.Text)
		}
	}
}

func (t *Terminal) Alert(message string) {
	t.Recorder.Alert(message)
	fmt.Fprintf(t.out, "! %s\n", message)
}

func (t *Terminal) Navigate(page string) {
	t.Recorder.Navigate(page)
	fmt.Fprintf(t.out, "-> %s\n", page)
}

// Pick asks for an entry number of element on in and runs its OnSelect.
// An empty answer picks nothing.
func (t *Terminal) Pick(ctx context.Context, element string, in io.Reader) error {
	items, _ := t.List(element)
	if len(items) == 0 {
		return ErrNothingToPick
	}

	fmt.Fprintf(t.out, "pick 1-%d (enter to skip): ", len(items))
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}

	n, err := strconv.Atoi(line)
	if err != nil || n < 1 || n > len(items) {
		return fmt.Errorf("invalid choice %q", line)
	}
	item := items[n-1]
	if item.OnSelect == nil {
		return nil
	}
	return item.OnSelect(ctx)
}
