package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/metaphox/sheesh/parser"
)

var checkCmd = &cobra.Command{
	Use:   "check <file>...",
	Short: "Report syntax errors in scripts",
	Long: `Parses every file and prints a diagnostic for each one that fails.
The exit status is non-zero if any file fails.

Examples:
  sheesh check script.sh
  sheesh check lib/*.sh`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	failed := 0
	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			report(cmd, path, "", err)
			failed++
			continue
		}
		src := string(data)
		prog, err := parser.ParseString(src)
		if err != nil {
			report(cmd, path, src, err)
			failed++
			continue
		}
		logger.Debug("checked", "file", path, "statements", len(prog.Statements))
		fmt.Fprintf(out, "%s: ok\n", path)
	}

	if failed > 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "%d of %d files failed\n", failed, len(args))
		return errReported
	}
	return nil
}
