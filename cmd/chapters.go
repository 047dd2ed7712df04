// Package cmd implements the command-line interface for vidmark.
package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/vidmark-cli/vidmark/color"
	"github.com/vidmark-cli/vidmark/icon"
	"github.com/vidmark-cli/vidmark/session"
	"github.com/vidmark-cli/vidmark/store"
	"github.com/vidmark-cli/vidmark/style"
	"github.com/vidmark-cli/vidmark/timestamp"
	"github.com/vidmark-cli/vidmark/where"
)

func init() {
	rootCmd.AddCommand(chaptersCmd)

	chaptersCmd.Flags().BoolP("json", "j", false, "Format the output as JSON")

	chaptersCmd.SetOut(os.Stdout)
}

// chaptersCmd prints the persisted chapter markers of a video.
var chaptersCmd = &cobra.Command{
	Use:   "chapters [url or id]",
	Short: "Show the saved chapter markers of a video",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		videoID, ok := session.ParseVideoRef(args[0])
		if !ok {
			handleErr(fmt.Errorf("no video identifier found in %q", args[0]))
		}

		record, found := store.NewGateway(where.Records()).FindOne(videoID).Get()
		if !found {
			handleErr(fmt.Errorf("no record for video %s", videoID))
		}

		if lo.Must(cmd.Flags().GetBool("json")) {
			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			handleErr(encoder.Encode(record.ChapterList))
			return
		}

		if len(record.ChapterList) == 0 {
			cmd.Printf("No chapters saved for %s\n", videoID)
			return
		}

		for _, marker := range record.ChapterList {
			cmd.Printf(
				"%s %s %s\n",
				icon.Get(icon.Chapter),
				style.Fg(color.Yellow)(timestamp.Duration(marker.Time)),
				marker.Text,
			)
		}
	},
}
