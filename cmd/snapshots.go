package cmd

import (
	"dir-compare/internal/logging"
	"dir-compare/internal/zfs"
	"github.com/dustin/go-humanize"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"os"
)

var snapshotsCmd = &cobra.Command{
	Use:   "snapshots [PATH]",
	Short: "List the ZFS snapshots that can be used with --snapshot",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var path string
		if len(args) > 0 {
			path = args[0]
		} else {
			currentWorkingDirectory, err := os.Getwd()
			if err != nil {
				return err
			}
			path = currentWorkingDirectory
		}

		dataset, err := zfs.FindHostDataset(path)
		if err != nil {
			return err
		}
		if dataset.ZfsData != nil {
			logging.Printfln("Dataset %s at %s (%s used, %s available)", dataset.ZfsData.Name, dataset.Path,
				humanize.IBytes(dataset.ZfsData.Used), humanize.IBytes(dataset.ZfsData.Avail))
		} else {
			logging.Printfln("Dataset at %s", dataset.Path)
		}

		snapshots, err := dataset.GetSnapshots()
		if err != nil {
			return err
		}
		if len(snapshots) == 0 {
			logging.Warning("No snapshots found for dataset at %s", dataset.Path)
			return nil
		}

		tableData := pterm.TableData{{"Name", "Date", "Age"}}
		for _, snapshot := range snapshots {
			tableData = append(tableData, []string{
				snapshot.Name,
				snapshot.Date.Format("2006-01-02 15:04:05"),
				humanize.Time(*snapshot.Date),
			})
		}
		return pterm.DefaultTable.WithHasHeader().WithData(tableData).Render()
	},
}

func init() {
	rootCmd.AddCommand(snapshotsCmd)
}
