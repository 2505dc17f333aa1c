package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/fsnotify/fsnotify"

	"github.com/akashmaji946/gostache"
)

// runWatch re-renders templatePath against contextPath every time either
// file changes on disk, printing the result (or the error) to stdout.
// It blocks until the watcher's event channel closes.
func runWatch(templatePath, contextPath string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer watcher.Close()

	for _, p := range []string{templatePath, contextPath} {
		if p == "" {
			continue
		}
		if err := watcher.Add(p); err != nil {
			return fmt.Errorf("watch: %w", err)
		}
	}

	cyan := color.New(color.FgCyan)
	red := color.New(color.FgRed)

	render := func() {
		out, err := renderFiles(templatePath, contextPath)
		if err != nil {
			red.Fprintf(os.Stdout, "[RENDER ERROR] %v\n", err)
			return
		}
		fmt.Fprintln(os.Stdout, out)
	}

	cyan.Fprintf(os.Stdout, "watching %s for changes (ctrl-c to stop)\n", templatePath)
	render()

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				render()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			red.Fprintf(os.Stdout, "[WATCH ERROR] %v\n", err)
		}
	}
}

// renderFiles reads templatePath and, if given, a JSON context file at
// contextPath, and renders one against the other.
func renderFiles(templatePath, contextPath string) (string, error) {
	tmpl, err := os.ReadFile(templatePath)
	if err != nil {
		return "", err
	}

	var root any
	if contextPath != "" {
		ctxBytes, err := os.ReadFile(contextPath)
		if err != nil {
			return "", err
		}
		if err := json.Unmarshal(ctxBytes, &root); err != nil {
			return "", fmt.Errorf("invalid context JSON: %w", err)
		}
	}

	return gostache.Render(string(tmpl), root, gostache.RuntimeOptions{})
}
