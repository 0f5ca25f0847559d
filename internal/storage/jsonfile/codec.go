package jsonfile

import (
	"bytes"
	"fmt"
	"io"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"

	"github.com/xenking/retail-inventory/internal/domain/inventory"
)

const (
	productsKey = "products"
	indent      = 4
)

// Encode writes records as an indented {"products": [...]} document. Keys of
// each record follow the variant's canonical order.
func Encode(w io.Writer, records []inventory.Record) error {
	var e jx.Encoder
	e.SetIdent(indent)

	e.ObjStart()
	e.FieldStart(productsKey)
	e.ArrStart()
	for _, r := range records {
		if err := encodeRecord(&e, r); err != nil {
			return err
		}
	}
	e.ArrEnd()
	e.ObjEnd()

	if _, err := w.Write(append(e.Bytes(), '\n')); err != nil {
		return errors.Wrap(err, "write")
	}
	return nil
}

func encodeRecord(e *jx.Encoder, r inventory.Record) error {
	e.ObjStart()
	e.FieldStart(inventory.FieldType)
	e.Str(string(r.Type))
	for _, key := range r.Keys() {
		e.FieldStart(key)
		switch v := r.Fields[key].(type) {
		case string:
			e.Str(v)
		case int64:
			e.Int64(v)
		case int:
			e.Int(v)
		case float64:
			e.Float64(v)
		default:
			return errors.Errorf("field %q: unsupported value type %T", key, v)
		}
	}
	e.ObjEnd()
	return nil
}

// Decode reads a {"products": [...]} document into records. A missing
// products key yields no records; other top-level keys are ignored. Malformed
// input is reported as *inventory.InvalidProductDataError.
func Decode(r io.Reader) ([]inventory.Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "read")
	}
	return decodeBytes(data)
}

func decodeBytes(data []byte) ([]inventory.Record, error) {
	d := jx.DecodeBytes(data)
	if d.Next() != jx.Object {
		return nil, &inventory.InvalidProductDataError{Detail: "top level must be a JSON object"}
	}
	doc, err := d.Raw()
	if err != nil {
		return nil, &inventory.InvalidProductDataError{Detail: "malformed JSON", Err: err}
	}
	if trailing(data, doc) {
		return nil, &inventory.InvalidProductDataError{Detail: "unexpected data after top-level object"}
	}

	records := make([]inventory.Record, 0)
	err = jx.DecodeBytes(doc).Obj(func(d *jx.Decoder, key string) error {
		if key != productsKey {
			return d.Skip()
		}
		if d.Next() != jx.Array {
			return &inventory.InvalidProductDataError{Detail: `"products" must be an array`}
		}
		return d.Arr(func(d *jx.Decoder) error {
			rec, err := decodeRecord(d, len(records))
			if err != nil {
				return err
			}
			records = append(records, rec)
			return nil
		})
	})
	if err != nil {
		var dataErr *inventory.InvalidProductDataError
		if errors.As(err, &dataErr) {
			return nil, dataErr
		}
		return nil, &inventory.InvalidProductDataError{Detail: "malformed JSON", Err: err}
	}
	return records, nil
}

// trailing reports whether anything but whitespace follows doc, the raw
// top-level value captured from data.
func trailing(data []byte, doc jx.Raw) bool {
	start := 0
	if len(doc) > 0 && !isSpace(doc[0]) {
		start = len(data) - len(bytes.TrimLeftFunc(data, isSpaceRune))
	}
	end := start + len(doc)
	if end > len(data) {
		return true
	}
	return len(bytes.TrimFunc(data[end:], isSpaceRune)) > 0
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isSpaceRune(r rune) bool {
	return r < 0x80 && isSpace(byte(r))
}

func decodeRecord(d *jx.Decoder, idx int) (inventory.Record, error) {
	if d.Next() != jx.Object {
		return inventory.Record{}, &inventory.InvalidProductDataError{
			Detail: fmt.Sprintf("record %d must be a JSON object", idx),
		}
	}

	rec := inventory.Record{Fields: make(map[string]any)}
	hasType := false
	err := d.Obj(func(d *jx.Decoder, key string) error {
		if key == inventory.FieldType {
			if d.Next() != jx.String {
				return &inventory.InvalidProductDataError{
					Detail: fmt.Sprintf("record %d: field %q must be a string", idx, inventory.FieldType),
				}
			}
			s, err := d.Str()
			if err != nil {
				return err
			}
			rec.Type = inventory.Variant(s)
			hasType = true
			return nil
		}
		v, err := decodeValue(d)
		if err != nil {
			return err
		}
		rec.Fields[key] = v
		return nil
	})
	if err != nil {
		return inventory.Record{}, err
	}
	if !hasType {
		return inventory.Record{}, &inventory.InvalidProductDataError{
			Detail: fmt.Sprintf("record %d: missing required field %q", idx, inventory.FieldType),
		}
	}
	return rec, nil
}

// decodeValue returns strings as string, integral numbers as int64, other
// numbers as float64 and anything else as jx.Raw.
func decodeValue(d *jx.Decoder) (any, error) {
	switch d.Next() {
	case jx.String:
		return d.Str()
	case jx.Number:
		n, err := d.Num()
		if err != nil {
			return nil, err
		}
		if n.IsInt() {
			if v, err := n.Int64(); err == nil {
				return v, nil
			}
		}
		return n.Float64()
	default:
		return d.Raw()
	}
}
