// Package cli wires the cobra command tree and the interactive menu that
// the original tool presented when launched with no arguments.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

type BuildInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"build_time"`
}

func NewRootCommand(in io.Reader, out io.Writer, build BuildInfo) *cobra.Command {
	globals := &globalOptions{}

	cmd := &cobra.Command{
		Use:           "rolodex",
		Short:         "Manage contacts in MySQL from the terminal",
		Long:          "rolodex keeps a contact list in MySQL. Run it without arguments for the interactive menu, or use the subcommands for scripting.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 {
				return usageErrorf("unknown command %q", args[0])
			}
			deps := commandDeps{in: in, out: out, globals: globals}
			return withService(cmd.Context(), deps, func(ctx context.Context, svc contactService) error {
				return runMenu(ctx, deps, svc)
			})
		},
	}
	cmd.SetIn(in)
	cmd.SetOut(out)
	cmd.SetErr(out)

	cmd.PersistentFlags().StringVar(&globals.ConfigPath, "config", "", "Path to config file")
	cmd.PersistentFlags().BoolVar(&globals.JSON, "json", false, "Print machine-readable output")
	cmd.PersistentFlags().BoolVarP(&globals.Verbose, "verbose", "v", false, "Enable debug logging")

	deps := commandDeps{in: in, out: out, globals: globals}
	cmd.AddCommand(
		newAddCommand(deps),
		newListCommand(deps),
		newFindCommand(deps),
		newUpdatePhoneCommand(deps),
		newRemoveCommand(deps),
		newImportCommand(deps),
		newBrowseCommand(deps),
		newVersionCommand(out, build),
	)
	cmd.InitDefaultCompletionCmd()
	return cmd
}

func newVersionCommand(out io.Writer, build BuildInfo) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print build version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(build)
			}

			_, err := fmt.Fprintf(out, "version=%s commit=%s build_time=%s\n", build.Version, build.Commit, build.BuildTime)
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print version as JSON")
	return cmd
}
