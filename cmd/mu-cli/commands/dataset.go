package commands

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"log/slog"
	"os"
	"strconv"

	"muscraper/lib/datasetstore"
	"muscraper/lib/scrapers/mangaupdates"
	"muscraper/lib/serviceutil"
	"muscraper/lib/sqliteutil"
	"muscraper/lib/telemetry"

	"github.com/spf13/cobra"
)

var (
	datasetIn      *string
	datasetOut     *string
	datasetColumn  *int
	datasetHeaders *bool
	datasetLists   *[]string
	datasetDb      *string
)

func init() {
	datasetIn = datasetCmd.Flags().String("in", "series.csv", "The csv file holding the series ids to process.")
	datasetOut = datasetCmd.Flags().String("out", "dataset.csv", "The csv file to append membership rows to.")
	datasetColumn = datasetCmd.Flags().Int("column", 0, "The column of the input csv holding the series id.")
	datasetHeaders = datasetCmd.Flags().Bool("headers", false, "Whether the input csv has a header row.")
	datasetLists = datasetCmd.Flags().StringSlice("list", nil, "List kinds to fetch per series, defaults to read, wish and unfinished.")
	datasetDb = datasetCmd.Flags().String("db", "", "Optionally mirror rows into a sqlite database at this path.")
	rootCmd.AddCommand(datasetCmd)
}

func readSeriesIDs(path string, column int, headers bool) []int {
	file, err := os.Open(path)
	if err != nil {
		serviceutil.Fatal("failed to open input file", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	var ids []int
	first := true
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			serviceutil.Fatal("failed to read input csv", err)
		}
		if first && headers {
			first = false
			continue
		}
		first = false
		if column >= len(record) {
			serviceutil.Fatal("input csv is missing the id column", nil)
		}
		id, err := strconv.Atoi(record[column])
		if err != nil {
			serviceutil.Fatal("input csv has a non-numeric series id", err)
		}
		ids = append(ids, id)
	}
	return ids
}

// lastProcessedSeries reads the series id of the final row already in
// the output file, so an interrupted run can pick up where it stopped.
func lastProcessedSeries(path string) (int, bool) {
	file, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return 0, false
	}
	if err != nil {
		serviceutil.Fatal("failed to open output file", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	var last []string
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			serviceutil.Fatal("failed to read existing output csv", err)
		}
		last = record
	}
	if len(last) < 5 {
		return 0, false
	}
	id, err := strconv.Atoi(last[4])
	if err != nil {
		return 0, false
	}
	return id, true
}

var datasetCmd = &cobra.Command{
	Use:   "dataset [--in <ids.csv>] [--out <dataset.csv>] [--list read,wish] [--db <path/to.db>]",
	Short: "Fetches list memberships for every series in a csv and appends them to a dataset.",
	Long: `Fetches list memberships for every series in a csv and appends one
"userid,username,score,listname,seriesid" row per membership to the
output file. Output is append-only: rerunning the command skips every
series up to the last one already present in the output.`,
	Run: func(cmd *cobra.Command, args []string) {
		client := createClient(loadConfig())
		ctx := cmd.Context()
		// dataset runs burn hours, keep an eye on the process
		telemetry.InstrumentPerfStats(ctx)

		ids := readSeriesIDs(*datasetIn, *datasetColumn, *datasetHeaders)
		if last, ok := lastProcessedSeries(*datasetOut); ok {
			for i, id := range ids {
				if id == last {
					slog.Info("resuming after series", "id", last, "skipped", i+1)
					ids = ids[i+1:]
					break
				}
			}
		}

		var store *datasetstore.Store
		if *datasetDb != "" {
			database, err := sqliteutil.OpenDB(datasetstore.Schema, *datasetDb)
			if err != nil {
				serviceutil.Fatal("failed to open db", err)
			}
			defer database.Close()
			s := datasetstore.NewStore(database)
			store = &s
		}

		file, err := os.OpenFile(*datasetOut, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			serviceutil.Fatal("failed to open output file", err)
		}
		defer file.Close()
		writer := csv.NewWriter(file)

		names := *datasetLists
		if len(names) == 0 {
			names = mangaupdates.DefaultLists
		}
		for _, id := range ids {
			err := processSeries(ctx, client, writer, store, id, names)
			if err != nil {
				serviceutil.Fatal("failed to process series", err)
			}
		}
	},
}

func processSeries(
	ctx context.Context,
	client *mangaupdates.Client,
	writer *csv.Writer,
	store *datasetstore.Store,
	id int,
	names []string,
) error {
	lists, err := mangaupdates.NewMembershipLists(client, id)
	if err != nil {
		return err
	}
	err = lists.Populate(ctx, names...)
	var notFound *mangaupdates.NotFoundError
	if errors.As(err, &notFound) {
		slog.Warn("series does not exist, skipping", "id", id)
		return nil
	}
	if err != nil {
		return err
	}

	total := 0
	for _, name := range names {
		entries, err := lists.Entries(name)
		if err != nil {
			return err
		}
		for _, entry := range entries {
			score := ""
			if entry.Rating != nil {
				score = strconv.FormatFloat(*entry.Rating, 'f', -1, 64)
			}
			err := writer.Write([]string{
				strconv.Itoa(entry.UserID),
				entry.Username,
				score,
				name,
				strconv.Itoa(entry.SeriesID),
			})
			if err != nil {
				return err
			}
		}
		total += len(entries)

		if store != nil {
			err := store.Push(ctx, name, entries)
			if err != nil {
				return err
			}
		}
	}

	// flush per series so an interruption never loses a completed one
	writer.Flush()
	if err := writer.Error(); err != nil {
		return err
	}
	slog.Info("processed series", "id", id, "rows", total)
	return nil
}
