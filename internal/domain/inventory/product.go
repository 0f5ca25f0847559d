// Package inventory implements the retail product catalog: the closed set of
// product variants, the in-memory store that owns them, and the tagged record
// form used for persistence.
package inventory

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Variant names a concrete product kind. Its value is also the persisted
// record discriminator.
type Variant string

const (
	VariantElectronics Variant = "Electronics"
	VariantGrocery     Variant = "Grocery"
	VariantClothing    Variant = "Clothing"
)

// Variants lists every supported variant in menu order.
var Variants = []Variant{VariantElectronics, VariantGrocery, VariantClothing}

// Valid reports whether v is one of the supported variants.
func (v Variant) Valid() bool {
	switch v {
	case VariantElectronics, VariantGrocery, VariantClothing:
		return true
	default:
		return false
	}
}

// Product is a single catalog item. Only *Electronics, *Grocery and
// *Clothing implement it.
type Product interface {
	ID() string
	Name() string
	Price() float64
	Quantity() int
	Variant() Variant

	// Sell removes quantity units from stock.
	Sell(quantity int) error
	// Restock adds amount units to stock.
	Restock(amount int) error
	// SetPrice replaces the unit price.
	SetPrice(price float64) error
	// TotalValue is unit price times stock quantity.
	TotalValue() decimal.Decimal
	// Record returns the tagged persistence form of the product.
	Record() Record

	fmt.Stringer

	common() *base
}

// MaxQuantity bounds stock levels. Persisted integer fields are limited to
// the int32 range, so larger stock could be saved but never loaded back.
const MaxQuantity = math.MaxInt32

// base holds the fields and behavior shared by every variant.
type base struct {
	id       string
	name     string
	price    float64
	quantity int
}

func newBase(id, name string, price float64, quantity int) (base, error) {
	if strings.TrimSpace(id) == "" {
		return base{}, &InvalidArgumentError{Detail: "product id must not be empty"}
	}
	if !validPrice(price) {
		return base{}, &InvalidArgumentError{Detail: fmt.Sprintf("price must be positive, got %v", price)}
	}
	if quantity < 0 {
		return base{}, &InvalidArgumentError{Detail: fmt.Sprintf("stock quantity must not be negative, got %d", quantity)}
	}
	if quantity > MaxQuantity {
		return base{}, &InvalidArgumentError{Detail: fmt.Sprintf("stock quantity must not exceed %d, got %d", MaxQuantity, quantity)}
	}
	return base{id: id, name: name, price: price, quantity: quantity}, nil
}

func (b *base) ID() string { return b.id }
func (b *base) Name() string { return b.name }
func (b *base) Price() float64 { return b.price }
func (b *base) Quantity() int { return b.quantity }
func (b *base) common() *base { return b }

func (b *base) Sell(quantity int) error {
	if quantity <= 0 {
		return &InvalidArgumentError{Detail: fmt.Sprintf("sale quantity must be positive, got %d", quantity)}
	}
	if quantity > b.quantity {
		return &InsufficientStockError{Available: b.quantity, Requested: quantity}
	}
	b.quantity -= quantity
	return nil
}

func (b *base) Restock(amount int) error {
	if amount <= 0 {
		return &InvalidArgumentError{Detail: fmt.Sprintf("restock amount must be positive, got %d", amount)}
	}
	if amount > MaxQuantity-b.quantity {
		return &InvalidArgumentError{Detail: fmt.Sprintf("restock of %d would exceed the stock limit of %d", amount, MaxQuantity)}
	}
	b.quantity += amount
	return nil
}

func (b *base) SetPrice(price float64) error {
	if !validPrice(price) {
		return &InvalidArgumentError{Detail: fmt.Sprintf("price must be positive, got %v", price)}
	}
	b.price = price
	return nil
}

func (b *base) TotalValue() decimal.Decimal {
	return decimal.NewFromFloat(b.price).Mul(decimal.NewFromInt(int64(b.quantity)))
}

// validPrice rejects non-positive, NaN and infinite prices.
func validPrice(price float64) bool {
	return price > 0 && !math.IsInf(price, 1)
}

func (b *base) describe(v Variant) string {
	return fmt.Sprintf("ID: %s, Name: %s, Price: $%.2f, Stock: %d, Type: %s",
		b.id, b.name, b.price, b.quantity, v)
}

func (b *base) record(v Variant) Record {
	return Record{
		Type: v,
		Fields: map[string]any{
			FieldProductID: b.id,
			FieldName:      b.name,
			FieldPrice:     b.price,
			FieldQuantity:  int64(b.quantity),
		},
	}
}
