package cmd

import (
	"fmt"
	"slices"
	"sync"

	"github.com/spf13/cobra"

	"github.com/hassan/exx/internal/frontend"
	"github.com/hassan/exx/internal/report"
)

var checkCmd = &cobra.Command{
	Use:   "check FILE...",
	Short: "Report problems in source files",
	Long: `Lex and parse each FILE and report every problem found.
Files are processed in parallel; results are printed in argument order.
The exit status is non-zero if any file has a problem.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

type checkResult struct {
	name   string
	source string
	diags  []report.Diagnostic
	err    error
}

func runCheck(cmd *cobra.Command, args []string) error {
	results := make([]checkResult, len(args))

	// Standard input can be read only once; every "-" checks the same text.
	var stdin checkResult
	if slices.Contains(args, "-") {
		stdin = checkResult{name: displayName("-")}
		stdin.source, stdin.err = readSource(cmd, "-")
	}

	var wg sync.WaitGroup
	for i, path := range args {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if path == "-" {
				results[i] = checkSource(stdin)
				return
			}
			results[i] = checkFile(cmd, path)
		}()
	}
	wg.Wait()

	r := newRenderer(cmd)
	out := cmd.OutOrStdout()
	failed := 0

	for _, res := range results {
		switch {
		case res.err != nil:
			failed++
			printError(cmd.ErrOrStderr(), res.err)
		case len(res.diags) > 0:
			failed++
			if err := emit(cmd, r, res.name, res.source, res.diags); err != nil {
				return err
			}
			fmt.Fprintf(out, "%s: %d problem(s)\n", res.name, len(res.diags))
		default:
			fmt.Fprintf(out, "%s: ok\n", res.name)
		}
	}

	app.logger.Debug("check finished", "files", len(args), "failed", failed)
	if failed > 0 {
		return errReported
	}
	return nil
}

func checkFile(cmd *cobra.Command, path string) checkResult {
	res := checkResult{name: displayName(path)}
	res.source, res.err = readSource(cmd, path)
	return checkSource(res)
}

// checkSource runs the front end over a source that has already been read.
func checkSource(res checkResult) checkResult {
	if res.err != nil {
		return res
	}

	fr := frontend.Run(res.source, frontendOptions(app.logger.With("file", res.name)))
	res.diags = report.Collect(fr)
	return res
}
