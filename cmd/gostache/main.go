/*
Package main is the command-line front end for gostache. It is a
consumer of the library, not part of the engine itself: every
subcommand is a thin wrapper calling Tokenize/Parse/Render from the
root gostache package, the same three operations any other Go program
would import. The command tree follows opal's cli/main.go convention
of a cobra root command with flag-bound local variables closed over by
each RunE, rather than go-mix's single-entry-point os.Args switch.
*/
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/akashmaji946/gostache"
)

var cliRed = color.New(color.FgRed)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		cliRed.Fprintf(os.Stderr, "[ERROR] %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "gostache",
		Short: "A Handlebars-compatible template engine",
		Long: "gostache compiles and renders Handlebars-style templates.\n" +
			"Run with no subcommand to start an interactive render session.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			newRepl("gostache> ").start(os.Stdout)
			return nil
		},
	}

	root.AddCommand(newRenderCmd())
	root.AddCommand(newTokenizeCmd())
	root.AddCommand(newParseCmd())
	root.AddCommand(newReplCmd())
	root.AddCommand(newWatchCmd())
	return root
}

func newRenderCmd() *cobra.Command {
	var contextPath string

	cmd := &cobra.Command{
		Use:   "render <template-file>",
		Short: "Render a template file against a JSON context file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := renderFiles(args[0], contextPath)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&contextPath, "context", "c", "", "path to a JSON file providing the render context")
	return cmd
}

func newTokenizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tokenize <template-file>",
		Short: "Print the token stream produced by the lexer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			toks, err := gostache.Tokenize(string(src))
			if err != nil {
				return err
			}
			for _, tok := range toks {
				start := tok.Start()
				fmt.Fprintf(cmd.OutOrStdout(), "%-16s %q  (%d:%d)\n",
					tok.Kind, tok.Literal, start.Line, start.Column)
			}
			return nil
		},
	}
}

func newParseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse <template-file>",
		Short: "Print the parsed AST as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			program, err := gostache.Parse(string(src))
			if err != nil {
				return err
			}
			b, err := json.MarshalIndent(program, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(b))
			return nil
		},
	}
}

func newReplCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive render session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			newRepl("gostache> ").start(cmd.OutOrStdout())
			return nil
		},
	}
}

func newWatchCmd() *cobra.Command {
	var contextPath string

	cmd := &cobra.Command{
		Use:   "watch <template-file>",
		Short: "Re-render a template file whenever it or its context file changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(args[0], contextPath)
		},
	}
	cmd.Flags().StringVarP(&contextPath, "context", "c", "", "path to a JSON file providing the render context")
	return cmd
}
