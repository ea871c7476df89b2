// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Program eson checks, formats, and queries ESON documents.
//
// Usage:
//
//	eson check [file ...]     # report syntax errors
//	eson fmt [file]           # pretty-print a document
//	eson get <ref> [file]     # print the value at a reference path
//	eson exprs [file]         # list the expressions of a document
//
// A file name of "-", or no file name, reads standard input.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/creachadair/eson"
	"github.com/creachadair/eson/ast"
	"github.com/creachadair/eson/ast/cursor"
	"github.com/creachadair/eson/expr"
	"github.com/creachadair/eson/format"
	"github.com/creachadair/mds/mapset"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd(os.Stdin, os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type settings struct {
	literal  bool
	noExpr   bool
	maxDepth int

	stdin io.Reader
}

func (s *settings) parser() *eson.Parser {
	return eson.NewParser().MaxDepth(s.maxDepth).AllowExpressions(!s.noExpr)
}

// parse reads and parses the named file, or standard input if name is "-".
func (s *settings) parse(name string) (ast.Value, error) {
	var data []byte
	var err error
	if name == "-" {
		data, err = io.ReadAll(s.stdin)
	} else {
		data, err = os.ReadFile(name)
	}
	if err != nil {
		return nil, err
	}
	p := s.parser()
	if s.literal {
		v, err := p.ParseLiteral(string(data))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		return v, nil
	}
	v, err := p.Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return v, nil
}

func inputName(args []string) string {
	if len(args) == 0 {
		return "-"
	}
	return args[0]
}

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	s := &settings{stdin: stdin}
	root := &cobra.Command{
		Use:           "eson",
		Short:         "Check, format, and query ESON documents",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.PersistentFlags().BoolVar(&s.literal, "literal", false, "Require literal documents (no expressions or format strings)")
	root.PersistentFlags().BoolVar(&s.noExpr, "no-expr", false, "Reject expressions and format strings")
	root.PersistentFlags().IntVar(&s.maxDepth, "max-depth", eson.DefaultMaxDepth, "Maximum nesting depth")

	root.AddCommand(
		&cobra.Command{
			Use:   "check [file ...]",
			Short: "Report syntax errors in ESON documents",
			RunE: func(cmd *cobra.Command, args []string) error {
				if len(args) == 0 {
					args = []string{"-"}
				}
				var nbad int
				for _, name := range args {
					if _, err := s.parse(name); err != nil {
						cmd.PrintErrln(err)
						nbad++
					}
				}
				if nbad != 0 {
					return fmt.Errorf("%d of %d inputs had errors", nbad, len(args))
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "fmt [file]",
			Short: "Pretty-print an ESON document",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				v, err := s.parse(inputName(args))
				if err != nil {
					return err
				}
				return format.Format(cmd.OutOrStdout(), v)
			},
		},
		&cobra.Command{
			Use:   "get <ref> [file]",
			Short: "Print the value at a reference path, such as $.a[0]",
			Args:  cobra.RangeArgs(1, 2),
			RunE: func(cmd *cobra.Command, args []string) error {
				ref, err := eson.ParseReference(args[0])
				if err != nil {
					return fmt.Errorf("invalid reference: %w", err)
				}
				if ref.Pronoun != ast.Root {
					return errors.New("reference must begin with $")
				}
				v, err := s.parse(inputName(args[1:]))
				if err != nil {
					return err
				}
				got, err := cursor.Resolve(v, ref)
				if err != nil {
					return fmt.Errorf("resolve %s: %w", ref.ESON(), err)
				}
				return format.Format(cmd.OutOrStdout(), got)
			},
		},
		&cobra.Command{
			Use:   "exprs [file]",
			Short: "List the expressions of an ESON document",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				v, err := s.parse(inputName(args))
				if err != nil {
					return err
				}
				return listExprs(cmd.OutOrStdout(), v)
			},
		},
	)
	return root
}

// listExprs writes the tree of each expression in v, followed by the names of
// the functions and variables they use.
func listExprs(w io.Writer, v ast.Value) error {
	fns, vars := mapset.New[string](), mapset.New[string]()
	var err error
	ast.Walk(v, func(v ast.Value) bool {
		e, ok := v.(ast.Expr)
		if !ok || err != nil {
			return err == nil
		}
		fmt.Fprintf(w, "%s\t%s\n", e.ESON(), e.Tree)

		var calls []ast.FnCall
		calls, err = expr.Calls(e.Tree)
		for _, c := range calls {
			fns.Add(c.Name)
		}
		if err == nil {
			var names []string
			names, err = expr.Vars(e.Tree)
			vars.Add(names...)
		}
		return false
	})
	if err != nil {
		return err
	}
	if !fns.IsEmpty() {
		fmt.Fprintf(w, "functions: %s\n", strings.Join(sorted(fns), ", "))
	}
	if !vars.IsEmpty() {
		fmt.Fprintf(w, "variables: %s\n", strings.Join(sorted(vars), ", "))
	}
	return nil
}

func sorted(s mapset.Set[string]) []string {
	out := s.Slice()
	slices.Sort(out)
	return out
}
