package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/stroxler/vzutil/pkg/cliutil"
)

func init() {
	var flags targetFlags
	var flagPrint bool
	cmd := &cobra.Command{
		Use:   "enter [flags]",
		Short: "Open an interactive shell on the target",
		Args:  cliutil.WrapPositionalArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			r, err := flags.resolveOne(ctx)
			if err != nil {
				return err
			}
			if flagPrint {
				fmt.Fprintln(cmd.OutOrStdout(), strings.Join(r.ShellCommand(), " "))
				return nil
			}
			if !term.IsTerminal(0) {
				return fmt.Errorf("stdin is not a terminal (use --print to see the shell command)")
			}
			return r.Shell(ctx)
		},
	}
	cmd.Flags().BoolVar(&flagPrint, "print", false,
		"Print the shell command instead of running it")
	flags.register(cmd.Flags())
	argparser.AddCommand(cmd)
}
