package cmd

import (
	"dir-compare/cmd/global"
	"dir-compare/internal/logging"
	"github.com/spf13/cobra"
	"runtime"
)

var long bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of dir-compare",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		switch {
		case global.Verbose:
			logging.Printfln("%s (commit %s, built %s, %s %s/%s)",
				global.Version, global.Commit, global.Date, runtime.Version(), runtime.GOOS, runtime.GOARCH)
		case long:
			logging.Printfln("%s-%s", global.Version, global.Commit)
		default:
			logging.Printfln("%s", global.Version)
		}
	},
}

func init() {
	versionCmd.Flags().BoolVarP(&long, "long", "l", false, "Show the long version")

	rootCmd.AddCommand(versionCmd)
}
