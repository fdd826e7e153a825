package main

import (
	"github.com/spf13/cobra"

	"github.com/stroxler/vzutil/pkg/cliutil"
)

func init() {
	var flags targetFlags
	cmd := &cobra.Command{
		Use:   "copy-from [flags] SRC DEST",
		Short: "Copy a file or directory off of the target",
		Long: "Recursively copy SRC on the target to DEST on the local machine.  For " +
			"container targets, SRC is a path inside the container.",
		Args: cliutil.WrapPositionalArgs(cobra.ExactArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			r, err := flags.resolveOne(ctx)
			if err != nil {
				return err
			}
			return r.CopyFrom(ctx, args[0], args[1])
		},
	}
	flags.register(cmd.Flags())
	argparser.AddCommand(cmd)
}

func init() {
	var flags targetFlags
	cmd := &cobra.Command{
		Use:   "copy-to [flags] SRC DEST",
		Short: "Copy a file or directory on to the target",
		Long: "Recursively copy SRC on the local machine to DEST on the target.  For " +
			"container targets, DEST is a path inside the container.",
		Args: cliutil.WrapPositionalArgs(cobra.ExactArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			r, err := flags.resolveOne(ctx)
			if err != nil {
				return err
			}
			return r.CopyTo(ctx, args[0], args[1])
		},
	}
	flags.register(cmd.Flags())
	argparser.AddCommand(cmd)
}
