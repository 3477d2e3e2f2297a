package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/PaesslerAG/jsonpath"
	"github.com/charmbracelet/glamour"
	"github.com/etnz/immo/renderer"
)

const wordWrap = 100

// formats are the values of the -format flags.
var formats = []string{"md", "json", "html"}

// isTerminal reports whether stdout is a character device.
func isTerminal() bool {
	f, ok := stdout.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	return err == nil && info.Mode()&os.ModeCharDevice != 0
}

// printMarkdown prints md, styled when stdout is a terminal.
func printMarkdown(md string) {
	if isTerminal() {
		r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(wordWrap))
		if err == nil {
			if out, err := r.Render(md); err == nil {
				fmt.Fprint(stdout, out)
				return
			}
		}
	}
	fmt.Fprint(stdout, md)
}

// printJSON prints v as indented JSON.
func printJSON(v any) error {
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// emit prints v in format. Markdown and HTML are produced from md.
func emit(format string, v any, md func() string) error {
	switch format {
	case "md", "":
		printMarkdown(md())
	case "json":
		return printJSON(v)
	case "html":
		html, err := renderer.HTML(md())
		if err != nil {
			return err
		}
		fmt.Fprint(stdout, html)
	default:
		return fmt.Errorf("unknown format %q, must be one of %v", format, formats)
	}
	return nil
}

// selectJSON prints the value at the JSONPath expression path in v.
func selectJSON(path string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	var jobj interface{}
	if err := json.Unmarshal(data, &jobj); err != nil {
		return err
	}
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return fmt.Errorf("cannot select %q: %w", path, err)
	}
	return printJSON(jval)
}
