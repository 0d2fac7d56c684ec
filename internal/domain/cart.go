package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"

	"github.com/shopspring/decimal"
)

// Attributes holds the product fields copied into a line item as returned by the
// product service. Numbers are kept as json.Number so they round-trip unchanged.
type Attributes map[string]interface{}

// LineItem is one product entry in the cart with its selected quantity.
// It serializes to a single flat object: the attributes plus "id" and "amount".
type LineItem struct {
	ID         int64
	Amount     int
	Attributes Attributes
}

// NewLineItem builds a line item from product attributes. The "id" and "amount"
// keys of attrs are ignored in favour of the explicit values.
func NewLineItem(id int64, amount int, attrs Attributes) LineItem {
	copied := make(Attributes, len(attrs))
	for k, v := range attrs {
		if k == "id" || k == "amount" {
			continue
		}
		copied[k] = v
	}
	return LineItem{ID: id, Amount: amount, Attributes: copied}
}

// WithAmount returns a copy of the item carrying the given amount.
func (l LineItem) WithAmount(amount int) LineItem {
	l.Attributes = maps.Clone(l.Attributes)
	l.Amount = amount
	return l
}

func (l LineItem) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(l.Attributes)+2)
	for k, v := range l.Attributes {
		out[k] = v
	}
	out["id"] = l.ID
	out["amount"] = l.Amount
	return json.Marshal(out)
}

func (l *LineItem) UnmarshalJSON(data []byte) error {
	raw, err := DecodeAttributes(data)
	if err != nil {
		return err
	}
	id, err := intField(raw, "id")
	if err != nil {
		return err
	}
	amount, err := intField(raw, "amount")
	if err != nil {
		return err
	}
	*l = NewLineItem(id, int(amount), raw)
	return nil
}

// DecodeAttributes decodes a JSON object keeping numbers as json.Number.
func DecodeAttributes(data []byte) (Attributes, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw Attributes
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, fmt.Errorf("expected JSON object")
	}
	return raw, nil
}

func intField(raw Attributes, key string) (int64, error) {
	v, ok := raw[key]
	if !ok {
		return 0, fmt.Errorf("missing %q", key)
	}
	n, ok := v.(json.Number)
	if !ok {
		return 0, fmt.Errorf("%q is not a number", key)
	}
	i, err := n.Int64()
	if err != nil {
		return 0, fmt.Errorf("%q: %w", key, err)
	}
	return i, nil
}

// Cart is the ordered sequence of line items, unique by ID.
type Cart []LineItem

// Find returns the index of the line item with the given product ID, or -1.
func (c Cart) Find(productID int64) int {
	for i, item := range c {
		if item.ID == productID {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy of the cart.
func (c Cart) Clone() Cart {
	if c == nil {
		return Cart{}
	}
	out := make(Cart, len(c))
	for i, item := range c {
		out[i] = item.WithAmount(item.Amount)
	}
	return out
}

// Size returns the number of distinct products in the cart.
func (c Cart) Size() int {
	return len(c)
}

// Subtotal returns price times amount for the item. Items without a numeric
// "price" attribute count as zero.
func (l LineItem) Subtotal() decimal.Decimal {
	return priceOf(l.Attributes).Mul(decimal.NewFromInt(int64(l.Amount)))
}

// Total sums the subtotals of every line item.
func (c Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c {
		total = total.Add(item.Subtotal())
	}
	return total
}

func priceOf(attrs Attributes) decimal.Decimal {
	switch v := attrs["price"].(type) {
	case json.Number:
		if d, err := decimal.NewFromString(v.String()); err == nil {
			return d
		}
	case float64:
		return decimal.NewFromFloat(v)
	case int64:
		return decimal.NewFromInt(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case string:
		if d, err := decimal.NewFromString(v); err == nil {
			return d
		}
	}
	return decimal.Zero
}
