/*
The REPL loop below follows go-mix's repl.Repl shape: a small struct
holding the banner/prompt strings, a PrintBannerInfo method, and a
Start loop built on chzyer/readline for history and line editing, with
fatih/color picking out banners, prompts, and errors.
*/
package main

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"github.com/akashmaji946/gostache"
)

var (
	replBlue   = color.New(color.FgBlue)
	replYellow = color.New(color.FgYellow)
	replRed    = color.New(color.FgRed)
	replGreen  = color.New(color.FgGreen)
	replCyan   = color.New(color.FgCyan)
)

const replBanner = `
   __ _  ___  ___| |_ __ _  ___| |__   ___
  / _` + "`" + ` |/ _ \/ __| __/ _` + "`" + ` |/ __| '_ \ / _ \
 | (_| | (_) \__ \ || (_| | (__| | | |  __/
  \__, |\___/|___/\__\__,_|\___|_| |_|\___|
  |___/
`

const replLine = "--------------------------------------------------------------"

// repl is an interactive template session: every line typed in is the
// body of a one-off template, rendered against a context map that
// persists across lines so `{{#each items}}` style exploration doesn't
// require retyping the context each time.
type repl struct {
	prompt string
	ctx    map[string]any
}

func newRepl(prompt string) *repl {
	return &repl{prompt: prompt, ctx: map[string]any{}}
}

func (r *repl) printBanner(w io.Writer) {
	replBlue.Fprintf(w, "%s\n", replLine)
	replGreen.Fprintf(w, "%s\n", replBanner)
	replBlue.Fprintf(w, "%s\n", replLine)
	replCyan.Fprintln(w, "Type a template line and press enter to render it against the current context.")
	replCyan.Fprintln(w, "Type '.set <json>' to replace the context, '.show' to print it, '.exit' to quit.")
	replBlue.Fprintf(w, "%s\n", replLine)
}

// start runs the read-eval-print loop until the user exits or EOF.
func (r *repl) start(w io.Writer) {
	r.printBanner(w)

	rl, err := readline.New(r.prompt)
	if err != nil {
		replRed.Fprintf(w, "[REPL ERROR] %v\n", err)
		return
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err != nil {
			w.Write([]byte("Good bye!\n"))
			return
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == ".exit" {
			w.Write([]byte("Good bye!\n"))
			return
		}
		rl.SaveHistory(line)

		if rest, ok := strings.CutPrefix(line, ".set "); ok {
			r.handleSet(w, rest)
			continue
		}
		if line == ".show" {
			r.handleShow(w)
			continue
		}

		r.handleRender(w, line)
	}
}

func (r *repl) handleSet(w io.Writer, jsonText string) {
	var ctx map[string]any
	if err := json.Unmarshal([]byte(jsonText), &ctx); err != nil {
		replRed.Fprintf(w, "[CONTEXT ERROR] %v\n", err)
		return
	}
	r.ctx = ctx
	replGreen.Fprintf(w, "context replaced\n")
}

func (r *repl) handleShow(w io.Writer) {
	b, err := json.MarshalIndent(r.ctx, "", "  ")
	if err != nil {
		replRed.Fprintf(w, "[CONTEXT ERROR] %v\n", err)
		return
	}
	replYellow.Fprintf(w, "%s\n", b)
}

func (r *repl) handleRender(w io.Writer, line string) {
	out, err := gostache.Render(line, r.ctx, gostache.RuntimeOptions{})
	if err != nil {
		replRed.Fprintf(w, "[RENDER ERROR] %v\n", err)
		return
	}
	replYellow.Fprintf(w, "%s\n", out)
}
