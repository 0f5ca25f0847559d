package app

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/xenking/retail-inventory/internal/domain/inventory"
	"github.com/xenking/retail-inventory/internal/report"
	"github.com/xenking/retail-inventory/internal/storage/jsonfile"
)

const menu = `
Inventory Management System
1. Add Product
2. Sell Product
3. Restock Product
4. Search Products by Name
5. List Products by Type
6. List All Products
7. Remove Expired Groceries
8. Save Inventory to File
9. Load Inventory from File
10. Show Total Inventory Value
11. Remove Product
12. Change Product Price
13. Export Stock Report
0. Exit`

// errExit ends the menu loop.
var errExit = errors.New("exit")

// Console is the interactive text menu. It parses and re-prompts on raw
// input and hands typed values to the inventory.
type Console struct {
	in    *bufio.Scanner
	out   io.Writer
	lg    *zap.Logger
	cfg   *Config
	inv   *inventory.Inventory
	money *message.Printer
	newID func() string
}

// NewConsole returns a Console operating on inv.
func NewConsole(in io.Reader, out io.Writer, lg *zap.Logger, cfg *Config, inv *inventory.Inventory) *Console {
	return &Console{
		in:    bufio.NewScanner(in),
		out:   out,
		lg:    lg,
		cfg:   cfg,
		inv:   inv,
		money: message.NewPrinter(language.English),
		newID: uuid.NewString,
	}
}

// Inventory returns the inventory currently held by the console. It changes
// after a successful load.
func (c *Console) Inventory() *inventory.Inventory {
	return c.inv
}

// Run shows the menu until the user exits or input ends, then saves to the
// configured data file when AutoSave is on.
func (c *Console) Run() error {
	for {
		c.println(menu)
		choice, err := c.readLine("Enter your choice: ")
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}

		err = c.dispatch(choice)
		if errors.Is(err, errExit) {
			break
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			c.lg.Debug("Command failed", zap.String("choice", choice), zap.Error(err))
			c.printError(err)
		}
	}

	if c.cfg.AutoSave {
		if err := jsonfile.Save(c.cfg.DataFile, c.inv); err != nil {
			return errors.Wrap(err, "save on exit")
		}
		c.lg.Info("Inventory saved on exit", zap.String("path", c.cfg.DataFile), zap.Int("products", c.inv.Len()))
	}
	c.println("Exiting program...")
	return nil
}

func (c *Console) dispatch(choice string) error {
	switch choice {
	case "1":
		return c.addProduct()
	case "2":
		return c.sellProduct()
	case "3":
		return c.restockProduct()
	case "4":
		return c.searchByName()
	case "5":
		return c.listByType()
	case "6":
		c.printProducts("All Products:", c.inv.List(), "Total products")
		return nil
	case "7":
		n := c.inv.PruneExpired()
		c.lg.Info("Pruned expired groceries", zap.Int("removed", n))
		c.printf("Removed %d expired grocery items\n", n)
		return nil
	case "8":
		return c.save()
	case "9":
		return c.load()
	case "10":
		c.println(c.money.Sprintf("Total inventory value: $%.2f", c.inv.TotalValue().InexactFloat64()))
		return nil
	case "11":
		return c.removeProduct()
	case "12":
		return c.changePrice()
	case "13":
		return c.exportReport()
	case "0":
		return errExit
	default:
		c.println("Invalid choice. Please try again.")
		return nil
	}
}

func (c *Console) addProduct() error {
	v, err := c.readVariant("\nSelect product type:")
	if err != nil {
		return err
	}
	id, err := c.readLine("Enter product ID (blank to generate): ")
	if err != nil {
		return err
	}
	if id == "" {
		id = c.newID()
	}
	name, err := c.readLine("Enter product name: ")
	if err != nil {
		return err
	}
	price, err := c.readFloat("Enter price: ")
	if err != nil {
		return err
	}
	qty, err := c.readInt("Enter initial stock quantity: ")
	if err != nil {
		return err
	}

	var p inventory.Product
	switch v {
	case inventory.VariantElectronics:
		warranty, err := c.readInt("Enter warranty years: ")
		if err != nil {
			return err
		}
		brand, err := c.readLine("Enter brand: ")
		if err != nil {
			return err
		}
		p, err = inventory.NewElectronics(id, name, price, qty, warranty, brand)
		if err != nil {
			return err
		}
	case inventory.VariantGrocery:
		expiry, err := c.readDate("Enter expiry date (YYYY-MM-DD): ")
		if err != nil {
			return err
		}
		p, err = inventory.NewGrocery(id, name, price, qty, expiry)
		if err != nil {
			return err
		}
	case inventory.VariantClothing:
		size, err := c.readLine("Enter size: ")
		if err != nil {
			return err
		}
		material, err := c.readLine("Enter material: ")
		if err != nil {
			return err
		}
		p, err = inventory.NewClothing(id, name, price, qty, size, material)
		if err != nil {
			return err
		}
	default:
		return errors.Errorf("unsupported product type %q", v)
	}

	if err := c.inv.Add(p); err != nil {
		return err
	}
	c.lg.Debug("Product added", zap.String("id", p.ID()), zap.String("type", string(v)))
	c.printf("Product %s added successfully! (ID: %s)\n", p.Name(), p.ID())
	return nil
}

func (c *Console) sellProduct() error {
	id, err := c.readLine("Enter product ID to sell: ")
	if err != nil {
		return err
	}
	qty, err := c.readInt("Enter quantity to sell: ")
	if err != nil {
		return err
	}
	if err := c.inv.Sell(id, qty); err != nil {
		return err
	}
	c.printf("Sold %d units of product %s\n", qty, id)
	return nil
}

func (c *Console) restockProduct() error {
	id, err := c.readLine("Enter product ID to restock: ")
	if err != nil {
		return err
	}
	qty, err := c.readInt("Enter quantity to restock: ")
	if err != nil {
		return err
	}
	if err := c.inv.Restock(id, qty); err != nil {
		return err
	}
	c.printf("Restocked %d units to product %s\n", qty, id)
	return nil
}

func (c *Console) searchByName() error {
	name, err := c.readLine("Enter product name to search: ")
	if err != nil {
		return err
	}
	c.printProducts("Found Products:", c.inv.SearchByName(name), "Total found")
	return nil
}

func (c *Console) listByType() error {
	v, err := c.readVariant("")
	if err != nil {
		return err
	}
	c.printProducts("Products:", c.inv.SearchByVariant(v), "Total found")
	return nil
}

func (c *Console) removeProduct() error {
	id, err := c.readLine("Enter product ID to remove: ")
	if err != nil {
		return err
	}
	if err := c.inv.Remove(id); err != nil {
		return err
	}
	c.printf("Product %s removed\n", id)
	return nil
}

func (c *Console) changePrice() error {
	id, err := c.readLine("Enter product ID: ")
	if err != nil {
		return err
	}
	price, err := c.readFloat("Enter new price: ")
	if err != nil {
		return err
	}
	if err := c.inv.SetPrice(id, price); err != nil {
		return err
	}
	c.printf("Price of product %s set to $%.2f\n", id, price)
	return nil
}

func (c *Console) save() error {
	path, err := c.readPath(c.cfg.DataFile)
	if err != nil {
		return err
	}
	if err := jsonfile.Save(path, c.inv); err != nil {
		return err
	}
	c.lg.Info("Inventory saved", zap.String("path", path), zap.Int("products", c.inv.Len()))
	c.printf("Inventory saved to %s\n", path)
	return nil
}

// load replaces the current inventory only when the file loads cleanly.
func (c *Console) load() error {
	path, err := c.readPath(c.cfg.DataFile)
	if err != nil {
		return err
	}
	inv, err := jsonfile.Load(path)
	if err != nil {
		return err
	}
	c.inv = inv
	c.lg.Info("Inventory loaded", zap.String("path", path), zap.Int("products", inv.Len()))
	c.printf("Inventory loaded from %s\n", path)
	return nil
}

func (c *Console) exportReport() error {
	path, err := c.readPath(c.cfg.ReportFile)
	if err != nil {
		return err
	}
	if err := report.WriteXLSX(path, c.inv.List(), c.inv.TotalValue(), c.inv.Now()); err != nil {
		return err
	}
	c.lg.Info("Report exported", zap.String("path", path))
	c.printf("Report written to %s\n", path)
	return nil
}

func (c *Console) printProducts(title string, products []inventory.Product, countLabel string) {
	c.println("\n" + title)
	now := c.inv.Now()
	for _, p := range products {
		c.println(inventory.Describe(p, now))
	}
	c.printf("%s: %d\n", countLabel, len(products))
}

func (c *Console) printError(err error) {
	var argErr *inventory.InvalidArgumentError
	if errors.As(err, &argErr) {
		c.printf("Input error: %v\n", err)
		return
	}
	c.printf("Error: %v\n", err)
}

func (c *Console) readLine(prompt string) (string, error) {
	c.printf("%s", prompt)
	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			return "", errors.Wrap(err, "read input")
		}
		return "", io.EOF
	}
	return strings.TrimSpace(c.in.Text()), nil
}

func (c *Console) readInt(prompt string) (int, error) {
	for {
		s, err := c.readLine(prompt)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(strings.ReplaceAll(s, ",", ""))
		if err == nil {
			return n, nil
		}
		c.println("Error: Please enter a whole number")
	}
}

// readFloat accepts thousands separators, e.g. 80,000.
func (c *Console) readFloat(prompt string) (float64, error) {
	for {
		s, err := c.readLine(prompt)
		if err != nil {
			return 0, err
		}
		f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
		if err == nil {
			return f, nil
		}
		c.println("Error: Please enter a valid number (e.g., 80000 or 80,000)")
	}
}

func (c *Console) readDate(prompt string) (time.Time, error) {
	for {
		s, err := c.readLine(prompt)
		if err != nil {
			return time.Time{}, err
		}
		d, err := inventory.ParseDate(s)
		if err == nil {
			return d, nil
		}
		c.println("Invalid date format. Please use YYYY-MM-DD.")
	}
}

func (c *Console) readVariant(title string) (inventory.Variant, error) {
	if title != "" {
		c.println(title)
	}
	for i, v := range inventory.Variants {
		c.printf("%d. %s\n", i+1, v)
	}
	for {
		s, err := c.readLine(fmt.Sprintf("Enter choice (1-%d): ", len(inventory.Variants)))
		if err != nil {
			return "", err
		}
		if n, err := strconv.Atoi(s); err == nil && n >= 1 && n <= len(inventory.Variants) {
			return inventory.Variants[n-1], nil
		}
		c.println("Invalid choice. Please try again.")
	}
}

func (c *Console) readPath(def string) (string, error) {
	path, err := c.readLine(fmt.Sprintf("Enter filename (default: %s): ", def))
	if err != nil {
		return "", err
	}
	if path == "" {
		return def, nil
	}
	return path, nil
}

func (c *Console) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(c.out, format, args...)
}

func (c *Console) println(s string) {
	_, _ = fmt.Fprintln(c.out, s)
}
