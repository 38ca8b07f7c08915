package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/tauraamui/shotdetect/pkg/log"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := newRootCommand()
	if err := cmd.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, errorLine(err))
		}
		stop()
		os.Exit(1)
	}
}

func init() {
	log.SetLevel(os.Getenv("SHOTDETECT_LOGGING_LEVEL"))
}
