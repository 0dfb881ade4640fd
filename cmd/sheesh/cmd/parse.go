package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/metaphox/sheesh/ast"
	"github.com/metaphox/sheesh/internal/config"
	"github.com/metaphox/sheesh/parser"
)

var parseFormat string

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Print the syntax tree of a script",
	Long: `Parses a script and prints its syntax tree.

Formats:
  text  - one fully parenthesised statement per line
  yaml  - the tree as nested YAML mappings
  json  - the tree as indented JSON

Examples:
  sheesh parse script.sh
  sheesh parse --format yaml script.sh
  echo '1 + 2 * 3;' | sheesh parse`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().StringVarP(&parseFormat, "format", "f", "", "output format: text, yaml, json (default from config)")
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	format := parseFormat
	if format == "" {
		format = cfg.Output.Format
	}
	if !config.ValidOutputFormat(format) {
		return fmt.Errorf("unknown output format %q", format)
	}

	name, src, err := readSource(cmd, args)
	if err != nil {
		return err
	}

	start := time.Now()
	prog, err := parser.ParseString(src)
	if err != nil {
		report(cmd, name, src, err)
		return errReported
	}
	logger.Debug("parsed", "file", name, "statements", len(prog.Statements), "elapsed", time.Since(start))

	return writeProgram(cmd.OutOrStdout(), prog, format)
}

func writeProgram(w io.Writer, prog *ast.Program, format string) error {
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(ast.Dump(prog)); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(ast.Dump(prog)); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	}
	_, err := io.WriteString(w, prog.String())
	return err
}
