package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"

	"github.com/stroxler/vzutil/pkg/cliutil"
	"github.com/stroxler/vzutil/pkg/vzlist"
)

func init() {
	var flags targetFlags
	var flagOutput string
	cmd := &cobra.Command{
		Use:   "list [flags]",
		Short: "List the containers on a target host",
		Long: "List the containers on the target machine.  vzlist only exists on the " +
			"host, so for container targets the listing runs on the container's host " +
			"rather than inside the container.",
		Args: cliutil.WrapPositionalArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			tgt, err := flags.resolveOneTarget()
			if err != nil {
				return err
			}
			cts, err := vzlist.List(ctx, tgt.HostRunner())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch flagOutput {
			case "table":
				table := tabwriter.NewWriter(
					out, // output
					0,   // minwidth
					1,   // tabwidth
					2,   // padding
					' ', // padchar
					0)   // flags
				fmt.Fprintln(table, "CTID\tNAME\tSTATUS\tIP\tHOSTNAME")
				for _, ct := range cts {
					fmt.Fprintf(table, "%d\t%s\t%s\t%s\t%s\n",
						ct.CTID, ct.Name, ct.Status, strings.Join(ct.IPs, ","), ct.Hostname)
				}
				return table.Flush()
			case "yaml":
				bs, err := yaml.Marshal(cts)
				if err != nil {
					return err
				}
				_, err = out.Write(bs)
				return err
			case "json":
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(cts)
			default:
				return fmt.Errorf("invalid output format %q (want table, yaml, or json)", flagOutput)
			}
		},
	}
	cmd.Flags().StringVarP(&flagOutput, "output", "o", "table",
		"Output `FORMAT`: table, yaml, or json")
	flags.register(cmd.Flags())
	argparser.AddCommand(cmd)
}
