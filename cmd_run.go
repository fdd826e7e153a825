package main

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/datawire/dlib/dgroup"
	"github.com/datawire/dlib/dlog"
	"github.com/spf13/cobra"

	"github.com/stroxler/vzutil/pkg/cliutil"
)

func init() {
	var flags targetFlags
	cmd := &cobra.Command{
		Use:   "run [flags] [SCRIPT_FILE]",
		Short: "Run a script on one or more targets",
		Long: "Run a shell script on the selected targets.  The script is read from " +
			"SCRIPT_FILE, or from stdin when no file is given; it may be any number of " +
			"lines.  With a single target, the script's stdout is written straight to " +
			"vzutil's stdout.  With several --target flags, the targets run in parallel " +
			"and each target's output is logged line by line under the target's name.",
		Args: cliutil.WrapPositionalArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var script []byte
			var err error
			if len(args) == 1 {
				script, err = os.ReadFile(args[0])
			} else {
				script, err = io.ReadAll(cmd.InOrStdin())
			}
			if err != nil {
				return err
			}

			targets, names, err := flags.resolve()
			if err != nil {
				return err
			}

			if len(names) == 1 {
				r, err := targets[names[0]].Runner(ctx)
				if err != nil {
					return err
				}
				out, err := r.Run(ctx, string(script))
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(out)
				return err
			}

			grp := dgroup.NewGroup(ctx, dgroup.GroupConfig{})
			for _, name := range names {
				tgt := targets[name]
				grp.Go(name, func(ctx context.Context) error {
					r, err := tgt.Runner(ctx)
					if err != nil {
						return err
					}
					out, err := r.Run(ctx, string(script))
					if err != nil {
						return err
					}
					for _, line := range strings.Split(strings.TrimRight(string(out), "\n"), "\n") {
						dlog.Infoln(ctx, line)
					}
					return nil
				})
			}
			return grp.Wait()
		},
	}
	flags.register(cmd.Flags())
	argparser.AddCommand(cmd)
}
