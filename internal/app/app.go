package app

import (
	"context"
	"io"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/xenking/retail-inventory/internal/storage/jsonfile"
)

// Run loads the inventory from the configured data file and drives the
// console menu over in and out. It is the single wiring point for the
// application.
//
// A data file that exists but cannot be loaded aborts the run so that the
// exit save does not overwrite it.
func Run(ctx context.Context, cfg *Config, in io.Reader, out io.Writer) error {
	lg := zctx.From(ctx)
	lg.Info("Initializing", zap.String("data_file", cfg.DataFile), zap.Bool("auto_save", cfg.AutoSave))

	inv, err := jsonfile.Load(cfg.DataFile)
	if err != nil {
		return errors.Wrap(err, "initial load")
	}
	lg.Info("Inventory ready", zap.Int("products", inv.Len()))

	return NewConsole(in, out, lg, cfg, inv).Run()
}
