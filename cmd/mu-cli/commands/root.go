package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"muscraper/lib/configutil"
	"muscraper/lib/restyutil"
	"muscraper/lib/scrapers/mangaupdates"
	"muscraper/lib/serviceutil"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "mu-cli",
	Short: "mu-cli scrapes series metadata and list memberships from mangaupdates.",
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type Config struct {
	BaseURL      string  `json:"base_url"`
	DelaySeconds float64 `json:"delay_seconds"`
	RestyOutput  string  `json:"resty_output"`
}

// loadConfig reads muscraper.json5, a missing file just means defaults.
func loadConfig() Config {
	cfg, err := configutil.Load[Config]("muscraper.json5")
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		serviceutil.Fatal("failed to read config", err)
	}
	return cfg
}

func createClient(cfg Config) *mangaupdates.Client {
	var output restyutil.InstrumentOutput
	if cfg.RestyOutput != "" {
		output = restyutil.NewFilesystemOutput(cfg.RestyOutput)
	}
	client, err := mangaupdates.NewClient(mangaupdates.ClientOptions{
		BaseURL:          cfg.BaseURL,
		Delay:            time.Duration(cfg.DelaySeconds * float64(time.Second)),
		InstrumentOutput: output,
	})
	if err != nil {
		serviceutil.Fatal("failed to initialize client", err)
	}
	return client
}
