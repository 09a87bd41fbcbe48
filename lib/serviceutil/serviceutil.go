package serviceutil

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
)

// Returns a context that will live until Ctrl+C is pressed. Batch scrape
// runs rely on this so an interrupt stops cleanly after the in-flight
// write instead of mid-row.
func SignalContext() context.Context {
	ctx, cancel := context.WithCancel(context.Background())

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigs
		cancel()
	}()

	return ctx
}

func Fatal(message string, err error) {
	if err != nil {
		slog.Error(message, "err", err.Error())
	} else {
		slog.Error(message)
	}
	os.Exit(1)
}
