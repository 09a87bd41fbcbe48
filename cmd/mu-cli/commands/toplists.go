package commands

import (
	"encoding/csv"
	"log/slog"
	"os"
	"strconv"

	"muscraper/lib/scrapers/mangaupdates"
	"muscraper/lib/serviceutil"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var (
	topListsOut      *string
	topListsLists    *[]string
	topListsMinUsers *int
	topListsMaxPages *int
	topListsPreview  *int
)

func init() {
	topListsOut = topListsCmd.Flags().String("out", "top_lists.csv", "The csv file to append ranking rows to.")
	topListsLists = topListsCmd.Flags().StringSlice("list", nil, "List kinds to walk, defaults to all of them.")
	topListsMinUsers = topListsCmd.Flags().Int("min-users", 200, "Stop walking a list once rows drop below this many users.")
	topListsMaxPages = topListsCmd.Flags().Int("max-pages", 0, "Hard cap on pages per list, 0 means unbounded.")
	topListsPreview = topListsCmd.Flags().Int("preview", 10, "How many of the top rows to print as a table.")
	rootCmd.AddCommand(topListsCmd)
}

var topListsCmd = &cobra.Command{
	Use:   "toplists [--list read,wish] [--min-users <n>] [--out <path/to.csv>]",
	Short: "Walks the sitewide most-listed rankings and appends them to a csv file.",
	Run: func(cmd *cobra.Command, args []string) {
		client := createClient(loadConfig())

		entries, err := mangaupdates.MostListed(cmd.Context(), client, mangaupdates.MostListedOptions{
			Lists:    *topListsLists,
			MinUsers: *topListsMinUsers,
			MaxPages: *topListsMaxPages,
		})
		if err != nil {
			serviceutil.Fatal("failed to walk top lists", err)
		}

		file, err := os.OpenFile(*topListsOut, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			serviceutil.Fatal("failed to open output file", err)
		}
		defer file.Close()

		writer := csv.NewWriter(file)
		for _, entry := range entries {
			err := writer.Write([]string{
				strconv.Itoa(entry.SeriesID),
				entry.Title,
				entry.List,
				strconv.Itoa(entry.NumUsers),
			})
			if err != nil {
				serviceutil.Fatal("failed to write output row", err)
			}
		}
		writer.Flush()
		if err := writer.Error(); err != nil {
			serviceutil.Fatal("failed to flush output", err)
		}

		slog.Info("walked top lists", "rows", len(entries), "out", *topListsOut)

		preview := *topListsPreview
		if preview > len(entries) {
			preview = len(entries)
		}
		if preview == 0 {
			return
		}
		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"id", "title", "list", "users"})
		for _, entry := range entries[:preview] {
			t.AppendRow(table.Row{entry.SeriesID, entry.Title, entry.List, entry.NumUsers})
		}
		t.Render()
	},
}
