// Package jsonfile persists an inventory as a single JSON document on disk.
//
// Paths ending in ".gz" are gzip-compressed transparently.
package jsonfile

import (
	"bytes"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-faster/errors"
	"github.com/klauspost/pgzip"

	"github.com/xenking/retail-inventory/internal/domain/inventory"
)

// DefaultPath is where the inventory is kept unless configured otherwise.
const DefaultPath = "data/inventory.json"

const fileMode = 0o644

// Save writes every product of inv to path. Missing parent directories are
// created. The document is written to a temporary file in the same directory
// and renamed over path, so an existing file is replaced only on success.
func Save(path string, inv *inventory.Inventory) error {
	if err := save(path, inv.Records()); err != nil {
		return errors.Wrapf(err, "save inventory to %s", path)
	}
	return nil
}

func save(path string, records []inventory.Record) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(err, "create directory")
	}

	var buf bytes.Buffer
	if err := encodeFile(&buf, path, records); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.Wrap(err, "create temp file")
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		return errors.Wrap(err, "write temp file")
	}
	if err := tmp.Chmod(fileMode); err != nil {
		return errors.Wrap(err, "chmod temp file")
	}
	if err := tmp.Sync(); err != nil {
		return errors.Wrap(err, "sync temp file")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "close temp file")
	}
	if err := os.Rename(tmpName, path); err != nil {
		return errors.Wrap(err, "replace file")
	}
	committed = true
	return nil
}

func encodeFile(w io.Writer, path string, records []inventory.Record) error {
	if !isGzip(path) {
		return Encode(w, records)
	}
	gz := pgzip.NewWriter(w)
	if err := Encode(gz, records); err != nil {
		_ = gz.Close()
		return err
	}
	if err := gz.Close(); err != nil {
		return errors.Wrap(err, "compress")
	}
	return nil
}

// Load reads the inventory stored at path into a new Inventory. A missing
// file yields an empty inventory. Malformed content is reported as
// *inventory.InvalidProductDataError, a duplicate id as
// *inventory.DuplicateProductError, and filesystem failures are wrapped.
func Load(path string) (*inventory.Inventory, error) {
	records, err := load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return inventory.New(), nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "load inventory from %s", path)
	}

	inv, err := inventory.FromRecords(records)
	if err != nil {
		return nil, errors.Wrapf(err, "load inventory from %s", path)
	}
	return inv, nil
}

func load(path string) ([]inventory.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	if !isGzip(path) {
		return Decode(f)
	}
	gz, err := pgzip.NewReader(f)
	if err != nil {
		return nil, &inventory.InvalidProductDataError{Detail: "not a gzip file", Err: err}
	}
	defer func() { _ = gz.Close() }()

	data, err := io.ReadAll(gz)
	if err != nil {
		return nil, &inventory.InvalidProductDataError{Detail: "corrupt gzip stream", Err: err}
	}
	return decodeBytes(data)
}

func isGzip(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".gz")
}
