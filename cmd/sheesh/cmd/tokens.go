package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/metaphox/sheesh/ast"
	"github.com/metaphox/sheesh/lexer"
)

var showComments bool

var tokensCmd = &cobra.Command{
	Use:   "tokens [file]",
	Short: "Print the token stream of a script",
	Long: `Prints one token per line as line:col, kind, and literal.

Examples:
  sheesh tokens script.sh
  sheesh tokens --comments script.sh
  echo 'let x = 1;' | sheesh tokens`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTokens,
}

func init() {
	tokensCmd.Flags().BoolVar(&showComments, "comments", false, "include comment tokens")
	rootCmd.AddCommand(tokensCmd)
}

func runTokens(cmd *cobra.Command, args []string) error {
	name, src, err := readSource(cmd, args)
	if err != nil {
		return err
	}

	start := time.Now()
	toks, err := lexer.Tokenize(src)
	if err != nil {
		report(cmd, name, src, err)
		return errReported
	}

	out := cmd.OutOrStdout()
	comments := showComments || cfg.Output.Comments
	for _, tok := range toks {
		if tok.Type == ast.COMMENT && !comments {
			continue
		}
		fmt.Fprintf(out, "%d:%d\t%s\t%q\n", tok.Line, tok.Col, tok.Type, tok.Literal)
	}
	logger.Debug("lexed", "file", name, "tokens", len(toks), "elapsed", time.Since(start))
	return nil
}
