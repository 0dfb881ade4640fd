package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/metaphox/sheesh/internal/config"
	"github.com/metaphox/sheesh/internal/diag"
	"github.com/metaphox/sheesh/internal/logging"
)

var (
	cfgFile string
	verbose bool
	noColor bool

	cfg    = config.Default()
	logger = slog.New(slog.NewTextHandler(io.Discard, nil))
)

// errReported is returned by commands that have already written their own
// diagnostics, so Execute does not print the error a second time.
var errReported = errors.New("errors reported")

var rootCmd = &cobra.Command{
	Use:   "sheesh",
	Short: "sheesh - lexer and parser for the sheesh scripting language",
	Long: `sheesh tokenises and parses sheesh scripts and reports syntax errors.

Commands:
  tokens   - print the token stream of a script
  parse    - print the syntax tree of a script
  check    - report syntax errors in one or more scripts`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

// Execute runs the root command and prints any error not already reported.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil && !errors.Is(err, errReported) {
		printError(rootCmd.ErrOrStderr(), err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $SHEESH_CONFIG or ./sheesh.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (debug logging)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored diagnostics")
}

// setup loads the configuration and builds the logger before any subcommand runs.
func setup(cmd *cobra.Command, args []string) error {
	c, err := config.Resolve(cfgFile)
	if err != nil {
		return err
	}
	if verbose {
		c.Log.Level = "debug"
	}
	cfg = c
	logger = logging.New(cmd.ErrOrStderr(), cfg.Log)
	logger.Debug("config loaded", "log_level", cfg.Log.Level, "output_format", cfg.Output.Format)
	return nil
}

func useColor() bool {
	return !noColor && cfg.UseColor()
}

// report renders err against src on the command's error stream.
func report(cmd *cobra.Command, name, src string, err error) {
	diag.Render(cmd.ErrOrStderr(), name, src, err, useColor())
}

func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "error: %v\n", err)
}

// readSource reads the named file, or standard input for "-" or no argument.
func readSource(cmd *cobra.Command, args []string) (name, src string, err error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", "", fmt.Errorf("read stdin: %w", err)
		}
		return "<stdin>", string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", "", fmt.Errorf("read %s: %w", args[0], err)
	}
	return args[0], string(data), nil
}
