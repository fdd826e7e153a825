package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/stroxler/vzutil/pkg/cliutil"
	"github.com/stroxler/vzutil/pkg/cluster"
)

func init() {
	var flagConfig string
	cmd := &cobra.Command{
		Use:   "targets [flags]",
		Short: "List the targets in the cluster config",
		Args:  cliutil.WrapPositionalArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cluster.Load(flagConfig)
			if err != nil {
				return err
			}

			table := tabwriter.NewWriter(
				cmd.OutOrStdout(), // output
				0,                 // minwidth
				1,                 // tabwidth
				2,                 // padding
				' ',               // padchar
				0)                 // flags
			fmt.Fprintln(table, "NAME\tHOST\tPORT\tCONTAINER")
			for _, name := range cfg.Names() {
				tgt := cfg.Targets[name]
				host := tgt.Host
				if host == "" {
					host = "(local)"
				}
				port := tgt.Port
				if port == 0 {
					port = 22
				}
				ct := ""
				if tgt.Container != nil {
					ct = tgt.Container.String()
				}
				fmt.Fprintf(table, "%s\t%s\t%d\t%s\n", name, host, port, ct)
			}
			return table.Flush()
		},
	}
	cmd.Flags().StringVar(&flagConfig, "config", defaultConfigFile(),
		"Cluster config `FILE` naming targets")
	argparser.AddCommand(cmd)
}
