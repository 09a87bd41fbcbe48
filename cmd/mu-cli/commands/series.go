package commands

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"muscraper/lib/scrapers/mangaupdates"
	"muscraper/lib/serviceutil"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(seriesCmd)
}

var seriesCmd = &cobra.Command{
	Use:   "series <id>...",
	Short: "Fetches one or more series pages and prints them as JSON, one object per line.",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		client := createClient(loadConfig())
		ctx := cmd.Context()

		for _, arg := range args {
			id, err := strconv.Atoi(arg)
			if err != nil {
				serviceutil.Fatal("series ids must be integers", err)
			}

			s, err := mangaupdates.NewSeries(client, id)
			if err != nil {
				serviceutil.Fatal("failed to create series", err)
			}

			t1 := time.Now()
			err = s.Populate(ctx)
			var notFound *mangaupdates.NotFoundError
			if errors.As(err, &notFound) {
				slog.Warn("series does not exist, skipping", "id", id)
				continue
			}
			if err != nil {
				serviceutil.Fatal("failed to fetch series", err)
			}

			encoded, err := s.JSON(ctx)
			if err != nil {
				serviceutil.Fatal("failed to export series", err)
			}
			fmt.Println(encoded)

			slog.Info("scraped series", "id", id, "seconds", time.Since(t1).Seconds())
		}
	},
}
