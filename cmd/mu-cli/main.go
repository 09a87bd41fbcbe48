package main

import (
	"context"
	"muscraper/cmd/mu-cli/commands"
	"muscraper/lib/serviceutil"
	"muscraper/lib/telemetry"
)

func main() {
	telemetry.SetupFromEnv(context.Background(), "mu-cli")
	telemetry.InitSlog(true)
	commands.ExecuteContext(serviceutil.SignalContext())
}
