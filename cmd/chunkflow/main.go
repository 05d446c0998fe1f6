package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aryankumar/chunkflow/internal/cli"
	"github.com/aryankumar/chunkflow/internal/util"
)

func main() {
	// Setup signal handling for graceful shutdown
	ctx, cancel := util.SetupSignalHandler(slog.Default())

	// Execute the CLI
	err := cli.Execute(ctx)
	cancel()
	if err != nil {
		slog.Debug("command failed", "error", err)
		fmt.Fprintln(os.Stderr, "Error:", util.FriendlyError(err))
		os.Exit(1)
	}
}
