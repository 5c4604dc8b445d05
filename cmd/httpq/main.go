// Command httpq issues typed HTTP queries from the command line.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/adamwoolhether/httpq/cmd/httpq/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.NewHTTPQCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, app.FormatError(err))
		stop()
		os.Exit(1)
	}
}
