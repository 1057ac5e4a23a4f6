// internal/cli/path.go
package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/effect-native/libsqlite"
)

func newPathCmd(a *app) *cobra.Command {
	var goos, goarch, libDir string

	cmd := &cobra.Command{
		Use:   "path",
		Short: "Print the SQLite library path for a host",
		Long: `Resolve the packaged SQLite library for the running host, or for the
platform and architecture given with --platform and --arch. Unknown values
are normalized: anything but darwin is linux, anything but arm64/aarch64 is x86_64.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if libDir == "" {
				libDir = libsqlite.DefaultLibDir()
			}
			a.logger.Debug("resolving library", "platform", goos, "arch", goarch, "lib_dir", libDir)

			path, err := libsqlite.Resolve(goos, goarch, libDir)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}

	cmd.Flags().StringVar(&goos, "platform", runtime.GOOS, "host operating system")
	cmd.Flags().StringVar(&goarch, "arch", runtime.GOARCH, "host architecture")
	cmd.Flags().StringVar(&libDir, "lib-dir", "", "directory holding the packaged libraries (default: $"+libsqlite.EnvLibDir+" or <exe>/../lib)")

	return cmd
}

// NewLibPathCmd returns the standalone sqlite-lib-path command. It prints the
// resolved library path and has no flags beyond help and version
func NewLibPathCmd(resolve func() (string, error)) *cobra.Command {
	if resolve == nil {
		resolve = libsqlite.LibraryPath
	}
	return &cobra.Command{
		Use:           "sqlite-lib-path",
		Short:         "Print the absolute path of the bundled SQLite library",
		Version:       Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := resolve()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}
