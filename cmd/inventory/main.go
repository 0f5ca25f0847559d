package main

import (
	"context"
	"fmt"
	"os"

	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	appkg "github.com/xenking/retail-inventory/internal/app"
)

func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	cfg, err := appkg.LoadConfig(os.Args[1:])
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "config:", err)
		return err
	}
	lg, err := appkg.NewLogger(cfg)
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "logger:", err)
		return err
	}
	defer func() { _ = lg.Sync() }()

	ctx := zctx.Base(context.Background(), lg)
	if err := appkg.Run(ctx, cfg, os.Stdin, os.Stdout); err != nil {
		lg.Error("Run failed", zap.Error(err))
		return err
	}
	return nil
}
