// Command implhint analyzes the Go package owning a source file and prints
// the extracted facts — interfaces, structs, receiver methods, directives —
// as JSON on stdout, optionally together with the interface-satisfaction
// relation. It is the process boundary editor integrations shell out to.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/implhint/implhint/internal/analyzer"
	"github.com/implhint/implhint/internal/facts"
	"github.com/implhint/implhint/internal/logging"
	"github.com/implhint/implhint/internal/resolver"
)

type output struct {
	*facts.Result
	Satisfaction map[string]*resolver.Resolution `json:"satisfaction,omitempty"`
}

func main() {
	// Use a custom FlagSet so we can parse all args regardless of position.
	// Go's default flag.Parse stops at the first non-flag argument, which
	// breaks "implhint ./file.go -resolve". We reorder args so flags come
	// first, then positional args.
	flags, positional := reorderArgs(os.Args[1:])

	fs := flag.NewFlagSet("implhint", flag.ExitOnError)
	pathFlag := fs.String("path", "", "Go file to analyze (alternative to positional argument)")
	resolve := fs.Bool("resolve", false, "include the interface-satisfaction relation in the output")
	pretty := fs.Bool("pretty", false, "indent the JSON output")
	threshold := fs.Float64("threshold", resolver.DefaultPartialMatchThreshold,
		"partial-match threshold for method-set matching")
	logFile := fs.String("log-file", "logs/implhint.log", "log file path")
	logLevel := fs.String("log-level", "warn", "log level (debug, info, warn, error)")

	if err := fs.Parse(flags); err != nil {
		os.Exit(1)
	}
	positional = append(positional, fs.Args()...)

	// Determine input: positional argument takes precedence, then -path flag
	input := ""
	if len(positional) > 0 {
		input = positional[0]
	}
	if input == "" {
		input = *pathFlag
	}
	if input == "" {
		fmt.Fprintln(os.Stderr, "Usage: implhint [flags] <go-file>")
		fs.PrintDefaults()
		os.Exit(1)
	}

	level, err := logging.ParseLevel(*logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid log level %q: %v\n", *logLevel, err)
		os.Exit(1)
	}

	logger, logCleanup, err := logging.Setup(*logFile, level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to setup logging: %v\n", err)
		os.Exit(1)
	}
	defer logCleanup()

	a := analyzer.New(analyzer.Options{
		Resolver: resolver.Options{PartialMatchThreshold: *threshold},
	}, logger)

	result := a.AnalyzeFile(context.Background(), input)

	out := output{Result: result}
	if *resolve {
		out.Satisfaction = a.Satisfaction(result)
	}

	enc := json.NewEncoder(os.Stdout)
	if *pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(out); err != nil {
		logger.Error("failed to encode output", "error", err)
		fmt.Fprintf(os.Stderr, "Error encoding output: %v\n", err)
		os.Exit(1)
	}
}

// reorderArgs separates flags and positional arguments so flags can appear
// in any position (before or after the positional file argument).
// Flags that take a value (e.g., -threshold 0.9) consume the next arg.
func reorderArgs(args []string) (flags, positional []string) {
	// Set of flags that take a value argument
	valueFlagSet := map[string]bool{
		"-path": true, "-threshold": true,
		"-log-file": true, "-log-level": true,
	}

	for i := 0; i < len(args); i++ {
		arg := args[i]
		if strings.HasPrefix(arg, "-") {
			flags = append(flags, arg)
			// Check if this flag takes a value (and it's not using = syntax)
			if !strings.Contains(arg, "=") && valueFlagSet[arg] && i+1 < len(args) {
				i++
				flags = append(flags, args[i])
			}
		} else {
			positional = append(positional, arg)
		}
	}
	return flags, positional
}
