package inventory

import (
	"math"
	"sort"
)

// Persisted field names.
const (
	FieldType          = "type"
	FieldProductID     = "product_id"
	FieldName          = "name"
	FieldPrice         = "price"
	FieldQuantity      = "quantity_in_stock"
	FieldWarrantyYears = "warranty_years"
	FieldBrand         = "brand"
	FieldExpiryDate    = "expiry_date"
	FieldSize          = "size"
	FieldMaterial      = "material"
)

var commonFields = []string{FieldProductID, FieldName, FieldPrice, FieldQuantity}

// Record is the flat, tagged form of a product.
//
// Field values are string, int64 or float64. Decoders may store any other
// value for fields of an unsupported JSON kind; FromRecord rejects those.
type Record struct {
	Type   Variant
	Fields map[string]any
}

// Fields returns the field names of a variant in canonical order: common
// fields first, then variant fields. It returns nil for unknown variants.
func (v Variant) Fields() []string {
	var extra []string
	switch v {
	case VariantElectronics:
		extra = []string{FieldWarrantyYears, FieldBrand}
	case VariantGrocery:
		extra = []string{FieldExpiryDate}
	case VariantClothing:
		extra = []string{FieldSize, FieldMaterial}
	default:
		return nil
	}
	out := make([]string, 0, len(commonFields)+len(extra))
	out = append(out, commonFields...)
	return append(out, extra...)
}

// Keys returns the record's field names: the variant's canonical fields that
// are present, followed by any others in lexical order.
func (r Record) Keys() []string {
	keys := make([]string, 0, len(r.Fields))
	known := make(map[string]bool, len(r.Fields))
	for _, k := range r.Type.Fields() {
		known[k] = true
		if _, ok := r.Fields[k]; ok {
			keys = append(keys, k)
		}
	}
	var rest []string
	for k := range r.Fields {
		if !known[k] {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	return append(keys, rest...)
}

// FromRecord reconstructs a product from its record. The discriminator is
// checked before any variant field is read.
func FromRecord(r Record) (Product, error) {
	fields := r.Type.Fields()
	if fields == nil {
		return nil, invalidData("unknown product type %q", string(r.Type))
	}
	allowed := make(map[string]bool, len(fields))
	for _, f := range fields {
		allowed[f] = true
	}
	for k := range r.Fields {
		if !allowed[k] {
			return nil, invalidData("unexpected field %q for %s", k, r.Type)
		}
	}

	rd := recordReader{r: r}
	id := rd.str(FieldProductID)
	name := rd.str(FieldName)
	price := rd.number(FieldPrice)
	qty := rd.integer(FieldQuantity)

	var (
		p   Product
		err error
	)
	switch r.Type {
	case VariantElectronics:
		warranty := rd.integer(FieldWarrantyYears)
		brand := rd.str(FieldBrand)
		if rd.err != nil {
			return nil, rd.err
		}
		p, err = NewElectronics(id, name, price, qty, warranty, brand)
	case VariantGrocery:
		expiry := rd.str(FieldExpiryDate)
		if rd.err != nil {
			return nil, rd.err
		}
		date, perr := ParseDate(expiry)
		if perr != nil {
			return nil, &InvalidProductDataError{Detail: "field " + FieldExpiryDate, Err: perr}
		}
		p, err = NewGrocery(id, name, price, qty, date)
	case VariantClothing:
		size := rd.str(FieldSize)
		material := rd.str(FieldMaterial)
		if rd.err != nil {
			return nil, rd.err
		}
		p, err = NewClothing(id, name, price, qty, size, material)
	default:
		return nil, invalidData("unknown product type %q", string(r.Type))
	}
	if err != nil {
		return nil, &InvalidProductDataError{Detail: "record rejected", Err: err}
	}
	return p, nil
}

// recordReader extracts typed fields, keeping the first failure.
type recordReader struct {
	r   Record
	err error
}

func (rd *recordReader) get(key string) (any, bool) {
	if rd.err != nil {
		return nil, false
	}
	v, ok := rd.r.Fields[key]
	if !ok {
		rd.err = invalidData("missing required field %q", key)
		return nil, false
	}
	return v, true
}

func (rd *recordReader) str(key string) string {
	v, ok := rd.get(key)
	if !ok {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		rd.err = invalidData("field %q must be a string", key)
	}
	return s
}

func (rd *recordReader) integer(key string) int {
	v, ok := rd.get(key)
	if !ok {
		return 0
	}
	switch n := v.(type) {
	case int64:
		if n > math.MaxInt32 || n < math.MinInt32 {
			rd.err = invalidData("field %q out of range", key)
			return 0
		}
		return int(n)
	case int:
		return n
	default:
		rd.err = invalidData("field %q must be an integer", key)
		return 0
	}
}

func (rd *recordReader) number(key string) float64 {
	v, ok := rd.get(key)
	if !ok {
		return 0
	}
	switch n := v.(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	case int:
		return float64(n)
	default:
		rd.err = invalidData("field %q must be a number", key)
		return 0
	}
}
