package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hassan/exx/internal/dump"
	"github.com/hassan/exx/internal/frontend"
	"github.com/hassan/exx/internal/parser/ast"
	"github.com/hassan/exx/internal/report"
)

var parseCmd = &cobra.Command{
	Use:   "parse FILE",
	Short: "Print the syntax tree of a file",
	Long: `Parse FILE and print its syntax tree. The text format lists the
top-level declarations; --format yaml prints the whole tree.
Use - to read standard input.`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	name := displayName(args[0])
	source, err := readSource(cmd, args[0])
	if err != nil {
		return err
	}

	res := frontend.Run(source, frontendOptions(app.logger.With("file", name)))

	if res.Parsed && res.ParseErr == nil {
		out := cmd.OutOrStdout()
		if app.cfg.Output.Format == "yaml" {
			err = dump.Program(out, res.Program)
		} else {
			err = writeOutline(out, res.Program)
		}
		if err != nil {
			return err
		}
	}

	if res.OK() {
		return nil
	}
	if err := emit(cmd, newRenderer(cmd), name, source, report.Collect(res)); err != nil {
		return err
	}
	return errReported
}

// writeOutline prints one line per top-level statement, indenting the
// members of modules and classes.
func writeOutline(w io.Writer, stmts []ast.Stmt) error {
	var b strings.Builder
	for _, s := range stmts {
		outline(&b, s, 0)
	}
	fmt.Fprintf(&b, "%d statement(s), %d node(s)\n", len(stmts), ast.Count(stmts))
	_, err := io.WriteString(w, b.String())
	return err
}

func outline(b *strings.Builder, s ast.Stmt, depth int) {
	b.WriteString(strings.Repeat("  ", depth))
	b.WriteString(describe(s))
	b.WriteByte('\n')

	switch s := s.(type) {
	case *ast.ModuleDecl:
		for _, d := range s.Declarations {
			outline(b, d, depth+1)
		}
	case *ast.ClassDecl:
		for _, f := range s.Fields {
			outline(b, f, depth+1)
		}
		for _, m := range s.Methods {
			outline(b, m, depth+1)
		}
	}
}

// describe gives a one-line signature for a statement.
func describe(s ast.Stmt) string {
	switch s := s.(type) {
	case *ast.VariableDecl:
		kw := "let"
		if s.Mutable {
			kw = "var"
		}
		if s.Type != nil {
			return kw + " " + s.Name + ": " + s.Type.String()
		}
		return kw + " " + s.Name

	case *ast.FunctionDecl:
		params := make([]string, len(s.Params))
		for i, p := range s.Params {
			params[i] = p.Name
			if p.Type != nil {
				params[i] += ": " + p.Type.String()
			}
		}
		sig := "fn " + s.Name + "(" + strings.Join(params, ", ") + ")"
		if s.ReturnType != nil {
			sig += " -> " + s.ReturnType.String()
		}
		return sig

	case *ast.ClassDecl:
		return "class " + s.Name

	case *ast.ModuleDecl:
		return "module " + s.Name

	case *ast.ImportStmt:
		return "import " + s.Module

	case *ast.ReturnStmt:
		return "return"

	case *ast.ExpressionStmt:
		return "expression"

	default:
		return fmt.Sprintf("%T", s)
	}
}
