package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	cmd "github.com/jpfielding/lut.go/cmd/ctl/cmd"
	"github.com/jpfielding/lut.go/pkg/logging"
)

var (
	GitSHA string = "NA"
)

func main() {
	// register sigterm for graceful shutdown
	ctx, cnc := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cnc()
	go func() {
		defer cnc() // removes the signal handler so a second ctrl-c kills the process
		<-ctx.Done()
	}()
	// stdout may carry cube or image data
	slog.SetDefault(logging.Logger(os.Stderr, false, slog.LevelInfo))
	ctx = logging.AppendCtx(ctx,
		slog.Group("lutctl",
			slog.String("git", GitSHA),
		))
	if err := cmd.Execute(ctx, GitSHA, os.Args[1:]); err != nil {
		os.Exit(1)
	}
}
