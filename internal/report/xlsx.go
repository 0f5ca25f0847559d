// Package report exports the inventory as a spreadsheet.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/xenking/retail-inventory/internal/domain/inventory"
)

// SheetName is the worksheet holding the stock report.
const SheetName = "Inventory"

var header = []any{"ID", "Name", "Type", "Price", "Stock", "Value", "Details"}

// WriteXLSX writes one row per product followed by a total row. Grocery
// expiry is evaluated at asOf.
func WriteXLSX(path string, products []inventory.Product, total decimal.Decimal, asOf time.Time) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "create report directory")
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return errors.Wrap(err, "rename sheet")
	}
	if err := setRow(f, 1, header); err != nil {
		return err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return errors.Wrap(err, "create style")
	}
	if err := f.SetCellStyle(SheetName, "A1", "G1", bold); err != nil {
		return errors.Wrap(err, "style header")
	}

	for i, p := range products {
		row := []any{
			p.ID(),
			p.Name(),
			string(p.Variant()),
			p.Price(),
			p.Quantity(),
			p.TotalValue().InexactFloat64(),
			Details(p, asOf),
		}
		if err := setRow(f, i+2, row); err != nil {
			return err
		}
	}

	totalRow := len(products) + 2
	if err := setRow(f, totalRow, []any{"Total", nil, nil, nil, nil, total.InexactFloat64()}); err != nil {
		return err
	}
	cell, err := excelize.CoordinatesToCellName(1, totalRow)
	if err != nil {
		return errors.Wrap(err, "total cell")
	}
	if err := f.SetCellStyle(SheetName, cell, cell, bold); err != nil {
		return errors.Wrap(err, "style total")
	}

	if err := f.SaveAs(path); err != nil {
		return errors.Wrapf(err, "save report to %s", path)
	}
	return nil
}

func setRow(f *excelize.File, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return errors.Wrapf(err, "row %d", row)
	}
	if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
		return errors.Wrapf(err, "write row %d", row)
	}
	return nil
}

// Details renders the variant-specific fields of p, marking groceries
// expired as of now.
func Details(p inventory.Product, now time.Time) string {
	switch v := p.(type) {
	case *inventory.Electronics:
		return fmt.Sprintf("Brand: %s, Warranty: %d years", v.Brand(), v.WarrantyYears())
	case *inventory.Grocery:
		s := "Expiry Date: " + v.ExpiryDate().Format(inventory.DateLayout)
		if v.IsExpiredAt(now) {
			s += " (Expired)"
		}
		return s
	case *inventory.Clothing:
		return fmt.Sprintf("Size: %s, Material: %s", v.Size(), v.Material())
	default:
		return ""
	}
}
