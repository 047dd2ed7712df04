// Package cmd implements the command-line interface for vidmark.
package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/AlecAivazis/survey/v2"
	"github.com/invopop/jsonschema"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/vidmark-cli/vidmark/color"
	"github.com/vidmark-cli/vidmark/console"
	"github.com/vidmark-cli/vidmark/icon"
	"github.com/vidmark-cli/vidmark/oembed"
	"github.com/vidmark-cli/vidmark/store"
	"github.com/vidmark-cli/vidmark/style"
	"github.com/vidmark-cli/vidmark/util"
	"github.com/vidmark-cli/vidmark/where"
)

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().BoolP("json", "j", false, "Format the output as JSON")
	historyCmd.Flags().Bool("schema", false, "Print the JSON schema of a history record")
	historyCmd.Flags().StringP("search", "s", "", "Fuzzy-search the history by identifier or title")
	historyCmd.Flags().BoolP("pick", "p", false, "Pick an entry interactively and resume it")
	historyCmd.MarkFlagsMutuallyExclusive("json", "schema", "pick")

	historyCmd.SetOut(os.Stdout)
}

// historyLabel is the human-facing line for a record: the cached title when
// one exists, the raw identifier otherwise.
func historyLabel(record *store.VideoRecord) string {
	if metadata, ok := oembed.Cached(record.VideoID).Get(); ok && metadata.Title != "" {
		return metadata.Title
	}
	return record.VideoID
}

// lastPlayed renders the stored playback date in a readable form.
func lastPlayed(record *store.VideoRecord) string {
	if record.PlaybackDate == "" {
		return "never played"
	}

	parsed, err := time.Parse("20060102150405", record.PlaybackDate)
	if err != nil {
		return record.PlaybackDate
	}
	return parsed.Format("2006-01-02 15:04")
}

// historyCmd lists, searches and resumes previously watched videos.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse the watch history",
	Run: func(cmd *cobra.Command, args []string) {
		var (
			asJson = lo.Must(cmd.Flags().GetBool("json"))
			schema = lo.Must(cmd.Flags().GetBool("schema"))
			search = lo.Must(cmd.Flags().GetString("search"))
			pick   = lo.Must(cmd.Flags().GetBool("pick"))
		)

		if schema {
			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			handleErr(encoder.Encode(jsonschema.Reflect(&store.VideoRecord{})))
			return
		}

		records := store.NewGateway(where.Records()).FindAll()

		if search != "" {
			records = searchRecords(records, search)
		}

		if asJson {
			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			handleErr(encoder.Encode(records))
			return
		}

		if len(records) == 0 {
			cmd.Println("History is empty")
			return
		}

		if pick {
			pickAndResume(records)
			return
		}

		for i, record := range records {
			cmd.Printf(
				"%s %s\n  %s\n",
				style.Fg(color.Purple)(record.VideoID),
				style.Bold(historyLabel(record)),
				style.Faint(fmt.Sprintf(
					"%s • %s",
					lastPlayed(record),
					util.Quantify(len(record.ChapterList), "chapter", "chapters"),
				)),
			)

			if i < len(records)-1 {
				cmd.Println()
			}
		}
	},
}

// searchRecords ranks records against a fuzzy query on identifier and title.
func searchRecords(records []*store.VideoRecord, query string) []*store.VideoRecord {
	targets := lo.Map(records, func(record *store.VideoRecord, _ int) string {
		return record.VideoID + " " + historyLabel(record)
	})

	ranks := fuzzy.RankFindNormalizedFold(query, targets)
	sort.Sort(ranks)

	return lo.Map(ranks, func(rank fuzzy.Rank, _ int) *store.VideoRecord {
		return records[rank.OriginalIndex]
	})
}

// pickAndResume prompts for an entry and reopens the console on it.
func pickAndResume(records []*store.VideoRecord) {
	options := lo.Map(records, func(record *store.VideoRecord, _ int) string {
		return fmt.Sprintf("%s (%s)", historyLabel(record), record.VideoID)
	})

	var answer string
	err := survey.AskOne(&survey.Select{
		Message: "Resume which video?",
		Options: options,
	}, &answer)
	handleErr(err)

	index := lo.IndexOf(options, answer)
	if index == -1 {
		handleErr(errors.New("no entry selected"))
	}

	fmt.Printf("%s Resuming %s\n", icon.Get(icon.Play), style.Bold(historyLabel(records[index])))
	handleErr(console.Run(&console.Options{VideoID: records[index].VideoID}))
}
