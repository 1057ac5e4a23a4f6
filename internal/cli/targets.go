// internal/cli/targets.go
package cli

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/effect-native/libsqlite"
	"github.com/effect-native/libsqlite/pkg/nix"
	"github.com/effect-native/libsqlite/pkg/platform"
)

func newTargetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "targets",
		Short: "List the supported build targets",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			host := nix.DetectSystem()

			tw := newTableWriter()
			tw.AppendHeader(table.Row{"System", "Platform", "File", "Description"})
			for _, t := range platform.Targets {
				system := t.System
				if nix.System(t.System) == host {
					system += " *"
				}
				tw.AppendRow(table.Row{system, t.Platform.String(), t.FileName(libsqlite.Library), t.Description})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, tw.Render())
			dimmedColor().Fprintln(out, "* = this host")
		},
	}
}
