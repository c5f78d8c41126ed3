package cmd

import (
	"dir-compare/cmd/global"
	"dir-compare/internal"
	"dir-compare/internal/configuration"
	"dir-compare/internal/logging"
	"dir-compare/internal/source"
	"dir-compare/internal/zfs"
	"fmt"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"os"
	"path/filepath"
)

var (
	snapshotName string
	watch        bool
	onlyDiff     bool
	criterion    string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "dir-compare LEFT [RIGHT]",
	Short: "Compare two directory trees and show which side of every entry is newer.",
	Long: `Compares the directory LEFT with RIGHT and prints a tree of all entries,
marking each side as new (+), old (-), mixed (≠) or same (=).

Instead of RIGHT the name of a ZFS snapshot can be given with --snapshot,
LEFT is then compared with its own version inside that snapshot.`,
	Args: cobra.RangeArgs(1, 2),
	// this is the default command to run when no subcommand is specified
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath := configuration.DetectAndReadConfigFile()
		logging.Info("Using configuration file at: %s", configPath)
		configuration.LoadConfig()
		applyFlags(cmd)
		err := configuration.Validate(configPath)
		if err != nil {
			return fmt.Errorf("config validation error: %w", err)
		}

		leftPath := args[0]
		rightPath, err := resolveRightPath(args)
		if err != nil {
			return err
		}

		cmd.SilenceUsage = true
		return internal.RunApplication(internal.ApplicationOptions{
			LeftPath:  leftPath,
			RightPath: rightPath,
			Watch:     watch,
		})
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&global.CfgFile, "config", "c", "", "config file (default is $HOME/dir-compare.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&global.NoColor, "no-color", "", false, "Disable all terminal output coloration")
	rootCmd.PersistentFlags().BoolVarP(&global.NoStyle, "no-style", "", false, "Disable all terminal output styling")
	rootCmd.PersistentFlags().BoolVarP(&global.Verbose, "verbose", "v", false, "More verbose output")

	rootCmd.Flags().StringVarP(&snapshotName, "snapshot", "s", "", "Compare LEFT with its version in the given ZFS snapshot")
	rootCmd.Flags().BoolVarP(&watch, "watch", "w", false, "Keep running and compare again whenever a file changes")
	rootCmd.Flags().BoolVarP(&onlyDiff, "only-diff", "", false, "Hide entries that are the same on both sides")
	rootCmd.Flags().StringVarP(&criterion, "criterion", "", source.CriterionModTime,
		fmt.Sprintf("How to decide which side is newer (%s, %s)", source.CriterionModTime, source.CriterionSize))
}

// applyFlags overrides configuration values with flags given explicitly
func applyFlags(cmd *cobra.Command) {
	if cmd.Flags().Changed("only-diff") {
		configuration.CurrentConfig.Compare.OnlyDifferences = onlyDiff
	}
	if cmd.Flags().Changed("criterion") {
		configuration.CurrentConfig.Compare.Criterion = criterion
	}
}

func resolveRightPath(args []string) (string, error) {
	if snapshotName == "" {
		if len(args) < 2 {
			return "", fmt.Errorf("either RIGHT or --snapshot is required")
		}
		return args[1], nil
	}
	if len(args) > 1 {
		return "", fmt.Errorf("RIGHT and --snapshot cannot be combined")
	}

	dataset, err := zfs.FindHostDataset(args[0])
	if err != nil {
		return "", err
	}
	snapshot, err := dataset.FindSnapshot(snapshotName)
	if err != nil {
		return "", err
	}
	rightPath := snapshot.GetSnapshotPath(absolute(args[0]))
	logging.Debug("Resolved snapshot %s to %s", snapshotName, rightPath)
	return rightPath, nil
}

func absolute(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}

func setupUi() {
	logging.SetDebugEnabled(global.Verbose)

	if global.NoColor {
		pterm.DisableColor()
	}
	if global.NoStyle {
		pterm.DisableStyling()
	}
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.OnInitialize(func() {
		configuration.InitConfig(global.CfgFile)
		setupUi()
	})

	if err := rootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
