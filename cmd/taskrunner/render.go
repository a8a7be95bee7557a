package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/petasbytes/taskrunner/internal/runner"
	"github.com/petasbytes/taskrunner/memory"
)

var (
	red  = color.New(color.FgRed).SprintFunc()
	gray = color.New(color.FgHiBlack).SprintFunc()
	bold = color.New(color.Bold).SprintFunc()
)

// isTTY reports whether w is an interactive terminal.
func isTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// renderer prints step outputs, as rendered Markdown on a terminal and as
// raw Markdown otherwise.
type renderer struct {
	w  io.Writer
	md *glamour.TermRenderer
}

func newRenderer(w io.Writer, plain bool) *renderer {
	r := &renderer{w: w}
	if plain || !isTTY(w) {
		return r
	}
	width := 80
	if f, ok := w.(*os.File); ok {
		if cols, _, err := term.GetSize(int(f.Fd())); err == nil && cols > 20 {
			width = cols - 4
		}
	}
	md, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
		glamour.WithPreservedNewLines(),
	)
	if err == nil {
		r.md = md
	}
	return r
}

func (r *renderer) markdown(s string) string {
	if r.md == nil {
		return s + "\n"
	}
	out, err := r.md.Render(s)
	if err != nil {
		return s + "\n"
	}
	return out
}

func (r *renderer) heading(title string) {
	fmt.Fprint(r.w, r.markdown("## "+title))
}

func (r *renderer) step(o runner.StepOutput) {
	text := r.markdown(o.String())
	if o.Failed {
		text = red(text)
	}
	fmt.Fprint(r.w, text)
	if r.md == nil {
		fmt.Fprintln(r.w)
	}
}

// history prints one line per entry: its step, kind and JSON value.
func (r *renderer) history(entries []memory.Entry) {
	for i, e := range entries {
		v, err := json.Marshal(e.Value())
		if err != nil {
			v = []byte(fmt.Sprintf("%q", e.Text))
		}
		fmt.Fprintf(r.w, "%d. [step %d %s] %s\n", i+1, e.Step, e.Kind, oneLine(string(v)))
	}
}

func (r *renderer) note(s string) {
	fmt.Fprintln(r.w, gray(s))
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
