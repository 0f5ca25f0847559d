package inventory

import (
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Inventory owns a set of products keyed by id. Listing and search results
// follow insertion order. It is not safe for concurrent use.
type Inventory struct {
	products map[string]Product
	order    []string
	now      func() time.Time
}

// New returns an empty Inventory.
func New() *Inventory {
	return &Inventory{
		products: make(map[string]Product),
		now:      time.Now,
	}
}

// FromRecords builds a fresh inventory from persisted records, adding them in
// order. Any failure discards the partially built inventory.
func FromRecords(records []Record) (*Inventory, error) {
	inv := New()
	for _, r := range records {
		p, err := FromRecord(r)
		if err != nil {
			return nil, err
		}
		if err := inv.Add(p); err != nil {
			return nil, err
		}
	}
	return inv, nil
}

// Add inserts p. It returns DuplicateProductError if the id is taken.
func (i *Inventory) Add(p Product) error {
	if _, ok := i.products[p.ID()]; ok {
		return &DuplicateProductError{ID: p.ID()}
	}
	i.products[p.ID()] = p
	i.order = append(i.order, p.ID())
	return nil
}

// Remove deletes the product with the given id.
func (i *Inventory) Remove(id string) error {
	if _, ok := i.products[id]; !ok {
		return &NotFoundError{ID: id}
	}
	i.delete(id)
	return nil
}

// Get returns the product with the given id.
func (i *Inventory) Get(id string) (Product, error) {
	p, ok := i.products[id]
	if !ok {
		return nil, &NotFoundError{ID: id}
	}
	return p, nil
}

// Sell sells quantity units of the product with the given id.
func (i *Inventory) Sell(id string, quantity int) error {
	p, err := i.Get(id)
	if err != nil {
		return err
	}
	return p.Sell(quantity)
}

// Restock adds amount units to the product with the given id.
func (i *Inventory) Restock(id string, amount int) error {
	p, err := i.Get(id)
	if err != nil {
		return err
	}
	return p.Restock(amount)
}

// SetPrice changes the unit price of the product with the given id.
func (i *Inventory) SetPrice(id string, price float64) error {
	p, err := i.Get(id)
	if err != nil {
		return err
	}
	return p.SetPrice(price)
}

// SearchByName returns products whose name contains substr, ignoring case.
func (i *Inventory) SearchByName(substr string) []Product {
	needle := strings.ToLower(substr)
	return i.filter(func(p Product) bool {
		return strings.Contains(strings.ToLower(p.Name()), needle)
	})
}

// SearchByVariant returns products of the given variant.
func (i *Inventory) SearchByVariant(v Variant) []Product {
	return i.filter(func(p Product) bool {
		return p.Variant() == v
	})
}

// List returns every product.
func (i *Inventory) List() []Product {
	return i.filter(func(Product) bool { return true })
}

// Now returns the inventory's current time, used for expiry.
func (i *Inventory) Now() time.Time {
	return i.now()
}

// Len returns the number of products.
func (i *Inventory) Len() int {
	return len(i.order)
}

// TotalValue sums the value of all products. It is zero when empty.
func (i *Inventory) TotalValue() decimal.Decimal {
	total := decimal.Zero
	for _, id := range i.order {
		total = total.Add(i.products[id].TotalValue())
	}
	return total
}

// PruneExpired removes every expired grocery and returns how many were
// removed. Other variants are never touched.
func (i *Inventory) PruneExpired() int {
	now := i.now()
	var expired []string
	for _, id := range i.order {
		if g, ok := i.products[id].(*Grocery); ok && g.IsExpiredAt(now) {
			expired = append(expired, id)
		}
	}
	for _, id := range expired {
		i.delete(id)
	}
	return len(expired)
}

// Records returns the persistence form of every product.
func (i *Inventory) Records() []Record {
	out := make([]Record, 0, len(i.order))
	for _, id := range i.order {
		out = append(out, i.products[id].Record())
	}
	return out
}

func (i *Inventory) filter(keep func(Product) bool) []Product {
	out := make([]Product, 0)
	for _, id := range i.order {
		if p := i.products[id]; keep(p) {
			out = append(out, p)
		}
	}
	return out
}

func (i *Inventory) delete(id string) {
	delete(i.products, id)
	if idx := slices.Index(i.order, id); idx >= 0 {
		i.order = slices.Delete(i.order, idx, idx+1)
	}
}
