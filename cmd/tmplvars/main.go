// Command tmplvars inspects Handlebars-like templates and the data sources
// that feed them: it extracts variable paths, validates template structure,
// fetches configured data sources, and generates or checks data schemas.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/abiiranathan/tmplvars/parser"
	"github.com/spf13/cobra"
)

var (
	flagDelims   string
	flagCompress bool
)

var (
	errMissingTemplate = errors.New("no template given: pass a file argument, -, or --template")
	errInvalidTemplate = errors.New("template is invalid")
)

var rootCmd = &cobra.Command{
	Use:           "tmplvars",
	Short:         "Template variable extraction, validation and data source tooling",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDelims, "delims", "",
		`delimiter override as "open,close", e.g. "<%,%>"`)
	rootCmd.PersistentFlags().BoolVar(&flagCompress, "compress", false,
		"gzip-compress JSON output")

	rootCmd.AddCommand(extractCmd, validateCmd, fetchCmd, schemaCmd)
}

// parserOptions translates the --delims flag into parser options.
func parserOptions() ([]parser.Option, error) {
	if flagDelims == "" {
		return nil, nil
	}
	open, close, ok := strings.Cut(flagDelims, ",")
	if !ok || open == "" || close == "" {
		return nil, fmt.Errorf(`invalid --delims %q: expected "open,close"`, flagDelims)
	}
	return []parser.Option{parser.WithDelimiters(open, close)}, nil
}

// readTemplate resolves the template argument: a file path, or "-" for
// stdin.
func readTemplate(arg string) (string, error) {
	if arg == "-" {
		raw, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(raw), nil
	}
	raw, err := os.ReadFile(arg)
	if err != nil {
		return "", fmt.Errorf("read template: %w", err)
	}
	return string(raw), nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "tmplvars:", err)
		os.Exit(1)
	}
}
