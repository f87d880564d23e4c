package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/hassan/exx/internal/dump"
	"github.com/hassan/exx/internal/lexer"
	"github.com/hassan/exx/internal/report"
)

var lexCmd = &cobra.Command{
	Use:   "lex FILE",
	Short: "Print the token stream of a file",
	Long: `Print every token of FILE with its span, type and lexeme.
Use - to read standard input. Lexical problems are reported on stderr.`,
	Args: cobra.ExactArgs(1),
	RunE: runLex,
}

func init() {
	rootCmd.AddCommand(lexCmd)
}

func runLex(cmd *cobra.Command, args []string) error {
	name := displayName(args[0])
	source, err := readSource(cmd, args[0])
	if err != nil {
		return err
	}

	tokens := lexer.Tokenize(source)
	app.logger.Debug("lexed source", "file", name, "tokens", len(tokens))

	out := cmd.OutOrStdout()
	if app.cfg.Output.Format == "yaml" {
		err = dump.Tokens(out, source, tokens)
	} else {
		err = writeTokens(out, tokens)
	}
	if err != nil {
		return err
	}

	diags := lexer.Diagnostics(tokens)
	if len(diags) == 0 {
		return nil
	}

	ds := make([]report.Diagnostic, 0, len(diags))
	for _, d := range diags {
		ds = append(ds, report.FromLexer(d))
	}
	if err := emit(cmd, newRenderer(cmd), name, source, ds); err != nil {
		return err
	}
	return errReported
}

func writeTokens(w io.Writer, tokens []lexer.Token) error {
	for _, tok := range tokens {
		if _, err := fmt.Fprintf(w, "%-10s %-12s %q\n", tok.Span, tok.Type, tok.Lexeme); err != nil {
			return err
		}
	}
	return nil
}
