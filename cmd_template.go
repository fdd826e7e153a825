package main

import (
	"fmt"

	"github.com/datawire/dlib/dlog"
	"github.com/spf13/cobra"

	"github.com/stroxler/vzutil/pkg/cliutil"
	"github.com/stroxler/vzutil/pkg/ostemplate"
)

var argparserTemplate = &cobra.Command{
	Use:   "template {[flags]|SUBCOMMAND...}",
	Short: "Work with precreated OS templates",

	Args: cliutil.OnlySubcommands,
	RunE: cliutil.RunSubcommands,
}

func init() {
	argparser.AddCommand(argparserTemplate)
}

func init() {
	var flagBaseURL string
	cmd := &cobra.Command{
		Use:   "list [flags]",
		Short: "List the templates available for download",
		Args:  cliutil.WrapPositionalArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := ostemplate.Client{BaseURL: flagBaseURL}
			tmpls, err := client.List(cmd.Context())
			if err != nil {
				return err
			}
			for _, tmpl := range tmpls {
				fmt.Fprintln(cmd.OutOrStdout(), tmpl.Name)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&flagBaseURL, "base-url", ostemplate.DefaultBaseURL,
		"Template index `URL` to read")
	argparserTemplate.AddCommand(cmd)
}

func init() {
	var flagBaseURL string
	var flagCacheDir string
	cmd := &cobra.Command{
		Use:   "fetch [flags] NAME",
		Short: "Download a template in to the local template cache",
		Long: "Download the named template (e.g. \"centos-7-x86_64\") in to the template " +
			"cache, which is where `vzctl create --ostemplate` looks for it.",
		Args: cliutil.WrapPositionalArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client := ostemplate.Client{BaseURL: flagBaseURL}
			dest, err := client.Fetch(ctx, args[0], flagCacheDir)
			if err != nil {
				return err
			}
			dlog.Infof(ctx, "fetched %s", dest)
			return nil
		},
	}
	cmd.Flags().StringVar(&flagBaseURL, "base-url", ostemplate.DefaultBaseURL,
		"Template index `URL` to download from")
	cmd.Flags().StringVar(&flagCacheDir, "cache-dir", ostemplate.DefaultCacheDir,
		"Template cache `DIR` to download in to")
	argparserTemplate.AddCommand(cmd)
}
