package inventory

import (
	"fmt"
	"math"
	"time"
)

// DateLayout is the persisted and displayed form of a grocery expiry date.
const DateLayout = "2006-01-02"

var (
	_ Product = (*Electronics)(nil)
	_ Product = (*Grocery)(nil)
	_ Product = (*Clothing)(nil)
)

// Electronics is a product with a warranty and a brand.
type Electronics struct {
	base
	warrantyYears int
	brand         string
}

// NewElectronics validates the common fields and returns a new Electronics.
func NewElectronics(id, name string, price float64, quantity, warrantyYears int, brand string) (*Electronics, error) {
	b, err := newBase(id, name, price, quantity)
	if err != nil {
		return nil, err
	}
	if warrantyYears < math.MinInt32 || warrantyYears > math.MaxInt32 {
		return nil, &InvalidArgumentError{Detail: fmt.Sprintf("warranty years out of range, got %d", warrantyYears)}
	}
	return &Electronics{base: b, warrantyYears: warrantyYears, brand: brand}, nil
}

func (e *Electronics) Variant() Variant { return VariantElectronics }
func (e *Electronics) WarrantyYears() int { return e.warrantyYears }
func (e *Electronics) Brand() string { return e.brand }

func (e *Electronics) String() string {
	return fmt.Sprintf("%s, Brand: %s, Warranty: %d years",
		e.describe(VariantElectronics), e.brand, e.warrantyYears)
}

func (e *Electronics) Record() Record {
	r := e.record(VariantElectronics)
	r.Fields[FieldWarrantyYears] = int64(e.warrantyYears)
	r.Fields[FieldBrand] = e.brand
	return r
}

// Grocery is a perishable product with an expiry date.
type Grocery struct {
	base
	expiry time.Time
}

// NewGrocery validates the common fields and returns a new Grocery expiring
// on the calendar date of expiry.
func NewGrocery(id, name string, price float64, quantity int, expiry time.Time) (*Grocery, error) {
	b, err := newBase(id, name, price, quantity)
	if err != nil {
		return nil, err
	}
	return &Grocery{base: b, expiry: dateOf(expiry)}, nil
}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, &InvalidArgumentError{Detail: fmt.Sprintf("expiry date %q must use YYYY-MM-DD", s)}
	}
	return t, nil
}

func (g *Grocery) Variant() Variant { return VariantGrocery }
func (g *Grocery) ExpiryDate() time.Time { return g.expiry }

// IsExpired reports whether the expiry date is before today.
func (g *Grocery) IsExpired() bool {
	return g.IsExpiredAt(time.Now())
}

// IsExpiredAt reports whether the expiry date is strictly before the
// calendar date of now. Only the date parts are compared.
func (g *Grocery) IsExpiredAt(now time.Time) bool {
	return g.expiry.Before(dateOf(now))
}

func (g *Grocery) String() string {
	return g.StringAt(time.Now())
}

// StringAt is String with the expiry marker evaluated at now.
func (g *Grocery) StringAt(now time.Time) string {
	s := fmt.Sprintf("%s, Expiry Date: %s", g.describe(VariantGrocery), g.expiry.Format(DateLayout))
	if g.IsExpiredAt(now) {
		s += " (Expired)"
	}
	return s
}

func (g *Grocery) Record() Record {
	r := g.record(VariantGrocery)
	r.Fields[FieldExpiryDate] = g.expiry.Format(DateLayout)
	return r
}

// Clothing is a product with a size and a material.
type Clothing struct {
	base
	size     string
	material string
}

// NewClothing validates the common fields and returns a new Clothing.
func NewClothing(id, name string, price float64, quantity int, size, material string) (*Clothing, error) {
	b, err := newBase(id, name, price, quantity)
	if err != nil {
		return nil, err
	}
	return &Clothing{base: b, size: size, material: material}, nil
}

func (c *Clothing) Variant() Variant { return VariantClothing }
func (c *Clothing) Size() string { return c.size }
func (c *Clothing) Material() string { return c.material }

func (c *Clothing) String() string {
	return fmt.Sprintf("%s, Size: %s, Material: %s",
		c.describe(VariantClothing), c.size, c.material)
}

func (c *Clothing) Record() Record {
	r := c.record(VariantClothing)
	r.Fields[FieldSize] = c.size
	r.Fields[FieldMaterial] = c.material
	return r
}

// Describe renders p with grocery expiry evaluated at now.
func Describe(p Product, now time.Time) string {
	if g, ok := p.(*Grocery); ok {
		return g.StringAt(now)
	}
	return p.String()
}

// dateOf takes the calendar date of t in t's own location and expresses it
// at UTC midnight, so dates from different zones compare by day.
func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
