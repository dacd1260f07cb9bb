// Command excellent renders a template against a JSON variable tree read
// from a file or stdin, printing the rendered text and any accumulated
// errors (spec.md §6 "Out of scope / external collaborators" - a thin
// CLI wrapper around the `excellent` package). Structured the way
// aretext/main.go lays out its own flag-based entry point: package-level
// flag.*Var declarations, a log.SetFlags call, and a flag.Usage override.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/rapidpro/expressions"
	"github.com/rapidpro/expressions/context"
	"github.com/rapidpro/expressions/parser"
	"github.com/rapidpro/expressions/types"
)

var (
	templatePath = flag.String("template", "", "path to the template file (default: stdin)")
	varsPath     = flag.String("vars", "", "path to a JSON file of variables (default: {})")
	zoneName     = flag.String("zone", "UTC", "default timezone for date/time coercion")
	monthFirst   = flag.Bool("month-first", false, "interpret ambiguous dates as month-first instead of day-first")
	urlEncode    = flag.Bool("url-encode", false, "URL-encode every interpolated value")
	resolveAvail = flag.Bool("resolve-available", false, "preserve unresolved variables instead of erroring")
)

func main() {
	flag.Usage = printUsage
	flag.Parse()
	log.SetFlags(log.Ltime | log.Lmicroseconds | log.Lshortfile)

	tmpl, err := readTemplate()
	if err != nil {
		exitWithError(err)
	}

	vars, err := readVars()
	if err != nil {
		exitWithError(err)
	}

	loc, err := time.LoadLocation(*zoneName)
	if err != nil {
		exitWithError(fmt.Errorf("invalid -zone %q: %w", *zoneName, err))
	}

	style := types.DateStyleDayFirst
	if *monthFirst {
		style = types.DateStyleMonthFirst
	}

	ctx := context.New(context.Config{Zone: loc, DateStyle: style, Now: time.Now()})
	for name, v := range vars {
		cv, err := context.FromInterface(v)
		if err != nil {
			exitWithError(err)
		}
		ctx.Set(name, cv)
	}

	var opts []excellent.Option
	if *urlEncode {
		opts = append(opts, excellent.WithURLEncode())
	}
	if *resolveAvail {
		opts = append(opts, excellent.WithStrategy(parser.ResolveAvailable))
	}

	rendered, errs := excellent.EvaluateTemplate(tmpl, ctx, opts...)
	fmt.Println(rendered)
	for _, e := range errs {
		fmt.Fprintln(os.Stderr, e)
	}
}

func readTemplate() (string, error) {
	if *templatePath == "" {
		b, err := io.ReadAll(os.Stdin)
		return string(b), err
	}
	b, err := os.ReadFile(*templatePath)
	return string(b), err
}

func readVars() (map[string]interface{}, error) {
	if *varsPath == "" {
		return map[string]interface{}{}, nil
	}
	b, err := os.ReadFile(*varsPath)
	if err != nil {
		return nil, err
	}
	var vars map[string]interface{}
	if err := json.Unmarshal(b, &vars); err != nil {
		return nil, err
	}
	return vars, nil
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Usage: excellent [flags]\n\n")
	flag.PrintDefaults()
}

func exitWithError(err error) {
	log.SetOutput(os.Stderr)
	log.Printf("%v", err)
	os.Exit(1)
}
