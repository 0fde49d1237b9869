package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/Nivl/ugit/env"
	"github.com/Nivl/ugit/internal/logutil"
)

func exitError(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}

func main() {
	cwd, err := os.Getwd()
	if err != nil {
		exitError(err)
	}

	e := env.NewFromOs()
	logger := logutil.New(os.Stderr, e)
	slog.SetDefault(logger.Logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err = newRootCmd(cwd, e).ExecuteContext(ctx)
	stop()
	logger.Close() //nolint:errcheck // nothing we can do at this point
	if err != nil {
		exitError(err)
	}
}
