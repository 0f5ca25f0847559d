package report

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/xenking/retail-inventory/internal/domain/inventory"
)

func TestWriteXLSX(t *testing.T) {
	inv := inventory.New()
	e, err := inventory.NewElectronics("E1", "Cable", 9.99, 70, 1, "X")
	require.NoError(t, err)
	g, err := inventory.NewGrocery("G1", "Milk", 1.25, 4, time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	c, err := inventory.NewClothing("C1", "Jacket", 120, 3, "XL", "Leather")
	require.NoError(t, err)
	for _, p := range []inventory.Product{e, g, c} {
		require.NoError(t, inv.Add(p))
	}

	path := filepath.Join(t.TempDir(), "reports", "inventory.xlsx")
	asOf := time.Date(2030, 1, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, WriteXLSX(path, inv.List(), inv.TotalValue(), asOf))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, []string{SheetName}, f.GetSheetList())

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 5)

	assert.Equal(t, []string{"ID", "Name", "Type", "Price", "Stock", "Value", "Details"}, rows[0])
	assert.Equal(t, []string{"E1", "Cable", "Electronics"}, rows[1][:3])
	assert.Equal(t, "70", rows[1][4])
	assert.Equal(t, "Brand: X, Warranty: 1 years", rows[1][6])
	assert.Equal(t, "Expiry Date: 2000-01-01 (Expired)", rows[2][6])
	assert.Equal(t, "Size: XL, Material: Leather", rows[3][6])
	assert.Equal(t, "Total", rows[4][0])
}

func TestWriteXLSX_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.xlsx")
	require.NoError(t, WriteXLSX(path, nil, inventory.New().TotalValue(), time.Now()))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Total", rows[1][0])
}

func TestDetails_ExpiryAsOf(t *testing.T) {
	g, err := inventory.NewGrocery("G1", "Milk", 1.25, 4, time.Date(2030, 5, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	tests := []struct {
		name string
		now  time.Time
		want string
	}{
		{name: "before expiry", now: time.Date(2030, 5, 9, 0, 0, 0, 0, time.UTC), want: "Expiry Date: 2030-05-10"},
		{name: "on expiry day", now: time.Date(2030, 5, 10, 20, 0, 0, 0, time.UTC), want: "Expiry Date: 2030-05-10"},
		{name: "after expiry", now: time.Date(2030, 5, 11, 0, 0, 0, 0, time.UTC), want: "Expiry Date: 2030-05-10 (Expired)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Details(g, tt.now))
		})
	}
}
