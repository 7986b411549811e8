package cmd

import (
	"fmt"

	"github.com/arithjit/anita/internal/errors"
	"github.com/arithjit/anita/internal/parser"
	"github.com/arithjit/anita/internal/scope"
	"github.com/spf13/cobra"
)

var (
	compileParams  []string
	compileDumpAST bool
)

var compileCmd = &cobra.Command{
	Use:   "compile <expression>",
	Short: "Parse and validate an expression without running it",
	Long: `Parse an expression, report any syntax error with source context,
check that every variable it reads is a declared parameter (--param) or
assigned somewhere, and optionally dump the resulting AST. Does not invoke
the JIT driver.

Example:
  anitac compile -p x -p y "x + y * 2" --dump-ast`,
	Args: cobra.ExactArgs(1),
	RunE: runCompile,
}

func init() {
	rootCmd.AddCommand(compileCmd)

	compileCmd.Flags().StringArrayVarP(&compileParams, "param", "p", nil, "declare a formal parameter (repeatable)")
	compileCmd.Flags().BoolVar(&compileDumpAST, "dump-ast", false, "print the parsed AST")
}

func runCompile(_ *cobra.Command, args []string) error {
	source := args[0]

	root, err := parser.New(source).Parse()
	if err != nil {
		if pe, ok := err.(*errors.ParseError); ok {
			return fmt.Errorf("\n%s", pe.Format(source))
		}
		return err
	}

	if err := scope.CheckUninitialized(root, compileParams); err != nil {
		return err
	}

	if compileDumpAST {
		fmt.Println(root.String())
	}

	fmt.Println("ok")
	return nil
}
