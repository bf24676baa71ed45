package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	eml "github.com/sesh22/eml/internal"
	"github.com/sesh22/eml/internal/handler"
	"github.com/sesh22/eml/internal/printer"
)

func main() {
	os.Exit(run())
}

func run() int {
	return runWithArgs(os.Args[1:], os.Stdout, os.Stderr)
}

func runWithArgs(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("eml", flag.ContinueOnError)
	fs.SetOutput(stderr)
	jsonOut := fs.Bool("json", false, "emit the compiled tree as a JSON AST")
	name := fs.String("name", "", "template name (default: derived from the file name)")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: %s [flags] <template.eml>\n\n", fs.Name())
		fmt.Fprintln(stderr, "Parses a markup template and prints the compiled tree.")
		fmt.Fprintln(stderr, "Reads stdin when the file argument is \"-\".")
		fmt.Fprintln(stderr)
		fmt.Fprintln(stderr, "Flags:")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return 2
	}

	filename := fs.Arg(0)
	var source []byte
	var err error
	if filename == "-" {
		source, err = io.ReadAll(os.Stdin)
	} else {
		source, err = os.ReadFile(filename)
	}
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	h := handler.NewHandler(string(source), filename)
	content, err := eml.ParseString(string(source), eml.ParseOptionWithHandler(h))
	printDiagnostics(stderr, h)
	if err != nil {
		if !h.HasErrors() {
			fmt.Fprintf(stderr, "error: %v\n", err)
		}
		return 1
	}

	if *jsonOut {
		templateName := *name
		if templateName == "" {
			templateName = printer.TemplateName(filename)
		}
		out, jsonErr := printer.PrintToJSON(content, templateName)
		if jsonErr != nil {
			fmt.Fprintf(stderr, "error: %v\n", jsonErr)
			return 1
		}
		fmt.Fprintln(stdout, string(out))
		return 0
	}

	var buf strings.Builder
	eml.PrintToSource(&buf, content...)
	fmt.Fprintln(stdout, buf.String())
	return 0
}

func printDiagnostics(stderr io.Writer, h *handler.Handler) {
	for _, msg := range h.Diagnostics() {
		if msg.Location != nil {
			fmt.Fprintf(stderr, "%s:%d:%d: %s\n", msg.Location.File, msg.Location.Line, msg.Location.Column, msg.Text)
		} else {
			fmt.Fprintln(stderr, msg.Text)
		}
	}
}
