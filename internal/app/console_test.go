package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-faster/sdk/zctx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/xenking/retail-inventory/internal/domain/inventory"
	"github.com/xenking/retail-inventory/internal/storage/jsonfile"
)

func testConfig(t *testing.T) *Config {
	t.Helper()
	dir := t.TempDir()
	return &Config{
		DataFile:   filepath.Join(dir, "inventory.json"),
		ReportFile: filepath.Join(dir, "inventory.xlsx"),
		LogLevel:   "debug",
	}
}

func script(lines ...string) *strings.Reader {
	return strings.NewReader(strings.Join(lines, "\n") + "\n")
}

func runConsole(t *testing.T, cfg *Config, inv *inventory.Inventory, lines ...string) (*Console, string) {
	t.Helper()
	var out bytes.Buffer
	c := NewConsole(script(lines...), &out, zaptest.NewLogger(t), cfg, inv)
	c.newID = func() string { return "generated-id" }
	require.NoError(t, c.Run())
	return c, out.String()
}

var addLaptop = []string{"1", "1", "E1", "Laptop", "1,200.50", "5", "2", "Acme"}

func TestConsole_AddAndList(t *testing.T) {
	c, out := runConsole(t, testConfig(t), inventory.New(), append(addLaptop, "6", "0")...)

	assert.Contains(t, out, "Product Laptop added successfully! (ID: E1)")
	assert.Contains(t, out, "All Products:")
	assert.Contains(t, out, "ID: E1, Name: Laptop, Price: $1200.50, Stock: 5, Type: Electronics, Brand: Acme, Warranty: 2 years")
	assert.Contains(t, out, "Total products: 1")
	assert.Contains(t, out, "Exiting program...")
	assert.Equal(t, 1, c.Inventory().Len())
}

func TestConsole_GeneratedID(t *testing.T) {
	c, out := runConsole(t, testConfig(t), inventory.New(),
		"1", "3", "", "Shirt", "20", "3", "M", "Cotton", "0")

	assert.Contains(t, out, "(ID: generated-id)")
	p, err := c.Inventory().Get("generated-id")
	require.NoError(t, err)
	assert.Equal(t, inventory.VariantClothing, p.Variant())
}

func TestConsole_Reprompts(t *testing.T) {
	_, out := runConsole(t, testConfig(t), inventory.New(),
		"1", "9", "2", "G1", "Milk", "abc", "1.25", "four", "4", "2024/01/01", "2031-01-01", "0")

	assert.Contains(t, out, "Invalid choice. Please try again.")
	assert.Contains(t, out, "Error: Please enter a valid number (e.g., 80000 or 80,000)")
	assert.Contains(t, out, "Error: Please enter a whole number")
	assert.Contains(t, out, "Invalid date format. Please use YYYY-MM-DD.")
	assert.Contains(t, out, "Product Milk added successfully!")
}

func TestConsole_StockOperations(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  string
	}{
		{
			name:  "sell",
			lines: []string{"2", "E1", "2"},
			want:  "Sold 2 units of product E1",
		},
		{
			name:  "sell too many",
			lines: []string{"2", "E1", "10"},
			want:  "Error: insufficient stock: available 5, requested 10",
		},
		{
			name:  "sell zero",
			lines: []string{"2", "E1", "0"},
			want:  "Input error: invalid argument:",
		},
		{
			name:  "sell unknown",
			lines: []string{"2", "nope", "1"},
			want:  "Error: product with id nope not found",
		},
		{
			name:  "restock",
			lines: []string{"3", "E1", "7"},
			want:  "Restocked 7 units to product E1",
		},
		{
			name:  "change price",
			lines: []string{"12", "E1", "999.99"},
			want:  "Price of product E1 set to $999.99",
		},
		{
			name:  "remove",
			lines: []string{"11", "E1"},
			want:  "Product E1 removed",
		},
		{
			name:  "duplicate",
			lines: addLaptop,
			want:  "Error: product with id E1 already exists in inventory",
		},
		{
			name:  "unknown choice",
			lines: []string{"42"},
			want:  "Invalid choice. Please try again.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := append(append(append([]string{}, addLaptop...), tt.lines...), "0")
			_, out := runConsole(t, testConfig(t), inventory.New(), lines...)
			assert.Contains(t, out, tt.want)
		})
	}
}

func TestConsole_SearchAndFilter(t *testing.T) {
	lines := append([]string{}, addLaptop...)
	lines = append(lines, "1", "3", "C1", "Laptop Sleeve", "25", "10", "15in", "Neoprene")
	lines = append(lines, "4", "laptop", "5", "3", "0")
	_, out := runConsole(t, testConfig(t), inventory.New(), lines...)

	assert.Contains(t, out, "Found Products:")
	assert.Contains(t, out, "Total found: 2")
	assert.Contains(t, out, "\nProducts:\nID: C1")
	assert.Contains(t, out, "Total found: 1")
}

func TestConsole_TotalValue(t *testing.T) {
	_, out := runConsole(t, testConfig(t), inventory.New(), append(addLaptop, "10", "0")...)
	assert.Contains(t, out, "Total inventory value: $6,002.50")
}

func TestConsole_PruneExpired(t *testing.T) {
	c, out := runConsole(t, testConfig(t), inventory.New(),
		"1", "2", "G1", "Old Milk", "1", "4", "2000-01-01",
		"1", "2", "G2", "Fresh Milk", "1", "4", "2999-01-01",
		"7", "0")

	assert.Contains(t, out, "Removed 1 expired grocery items")
	assert.Equal(t, 1, c.Inventory().Len())
}

func TestConsole_SaveLoad(t *testing.T) {
	cfg := testConfig(t)
	other := filepath.Join(t.TempDir(), "other.json.gz")

	_, out := runConsole(t, cfg, inventory.New(), append(addLaptop, "8", "", "8", other, "0")...)
	assert.Contains(t, out, "Inventory saved to "+cfg.DataFile)
	assert.Contains(t, out, "Inventory saved to "+other)

	c, out := runConsole(t, cfg, inventory.New(), "9", other, "0")
	assert.Contains(t, out, "Inventory loaded from "+other)
	_, err := c.Inventory().Get("E1")
	require.NoError(t, err)
}

func TestConsole_FailedLoadKeepsInventory(t *testing.T) {
	cfg := testConfig(t)
	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"products":[{"type":"Toy"}]}`), 0o600))

	c, out := runConsole(t, cfg, inventory.New(), append(addLaptop, "9", bad, "0")...)

	assert.Contains(t, out, "Error: load inventory from "+bad)
	assert.Contains(t, out, "invalid product data")
	assert.NotContains(t, out, "Inventory loaded from")
	assert.Equal(t, 1, c.Inventory().Len())
}

func TestConsole_ExportReport(t *testing.T) {
	cfg := testConfig(t)
	_, out := runConsole(t, cfg, inventory.New(), append(addLaptop, "13", "", "0")...)

	assert.Contains(t, out, "Report written to "+cfg.ReportFile)
	assert.FileExists(t, cfg.ReportFile)
}

func TestConsole_AutoSave(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
	}{
		{name: "exit", lines: append(append([]string{}, addLaptop...), "0")},
		{name: "end of input", lines: addLaptop},
		{name: "end of input mid command", lines: append(append([]string{}, addLaptop...), "2", "E1")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(t)
			cfg.AutoSave = true
			_, out := runConsole(t, cfg, inventory.New(), tt.lines...)
			assert.Contains(t, out, "Exiting program...")

			inv, err := jsonfile.Load(cfg.DataFile)
			require.NoError(t, err)
			assert.Equal(t, 1, inv.Len())
		})
	}
}

func TestConsole_NoAutoSave(t *testing.T) {
	cfg := testConfig(t)
	runConsole(t, cfg, inventory.New(), append(addLaptop, "0")...)
	assert.NoFileExists(t, cfg.DataFile)
}

func TestRun(t *testing.T) {
	t.Run("loads data file", func(t *testing.T) {
		cfg := testConfig(t)
		inv := inventory.New()
		p, err := inventory.NewClothing("C1", "Jacket", 120, 3, "XL", "Leather")
		require.NoError(t, err)
		require.NoError(t, inv.Add(p))
		require.NoError(t, jsonfile.Save(cfg.DataFile, inv))

		ctx := zctx.Base(context.Background(), zaptest.NewLogger(t))
		var out bytes.Buffer
		require.NoError(t, Run(ctx, cfg, script("6", "0"), &out))
		assert.Contains(t, out.String(), "ID: C1, Name: Jacket")
	})
	t.Run("missing data file starts empty", func(t *testing.T) {
		cfg := testConfig(t)
		ctx := zctx.Base(context.Background(), zaptest.NewLogger(t))
		var out bytes.Buffer
		require.NoError(t, Run(ctx, cfg, script("6", "0"), &out))
		assert.Contains(t, out.String(), "Total products: 0")
	})
	t.Run("corrupt data file aborts", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.AutoSave = true
		require.NoError(t, os.WriteFile(cfg.DataFile, []byte("not json"), 0o600))

		ctx := zctx.Base(context.Background(), zaptest.NewLogger(t))
		err := Run(ctx, cfg, script("0"), &bytes.Buffer{})
		require.ErrorIs(t, err, inventory.ErrInventory)

		data, readErr := os.ReadFile(cfg.DataFile)
		require.NoError(t, readErr)
		assert.Equal(t, "not json", string(data))
	})
}
