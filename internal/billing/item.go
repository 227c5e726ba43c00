// Package billing holds the financial document model: line items, the
// derived subtotal/tax/total arithmetic, and the persisted item-blob
// codec. All money values use decimal arithmetic; nothing in this
// package touches the database or the network.
package billing

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrValidation marks a rejected line item. Handlers surface it as a
// form error; it never reaches persistence.
var ErrValidation = errors.New("invalid line item")

// LineItem is one priced entry of an invoice. Items are immutable once
// added to a document; the JSON field names match the persisted blob.
type LineItem struct {
	Name  string          `json:"name"`
	Qty   int             `json:"qty"`
	Price decimal.Decimal `json:"price"`
}

// NewLineItem validates and builds a line item.
func NewLineItem(name string, qty int, price decimal.Decimal) (LineItem, error) {
	if strings.TrimSpace(name) == "" {
		return LineItem{}, fmt.Errorf("%w: name is empty", ErrValidation)
	}
	if qty <= 0 {
		return LineItem{}, fmt.Errorf("%w: quantity %d is not positive", ErrValidation, qty)
	}
	if price.IsNegative() {
		return LineItem{}, fmt.Errorf("%w: unit price %s is negative", ErrValidation, price)
	}
	return LineItem{Name: name, Qty: qty, Price: price}, nil
}

// LineTotal returns Qty × Price at full precision.
func (it LineItem) LineTotal() decimal.Decimal {
	return it.Price.Mul(decimal.NewFromInt(int64(it.Qty)))
}

// Equal compares items by value; decimals compare numerically, so
// 100 and 100.00 are the same price.
func (it LineItem) Equal(other LineItem) bool {
	return it.Name == other.Name && it.Qty == other.Qty && it.Price.Equal(other.Price)
}

// ItemsEqual compares two item sequences in order.
func ItemsEqual(a, b []LineItem) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

// Append validates a new item and returns the extended sequence.
// Already-added items are never mutated.
func Append(items []LineItem, name string, qty int, price decimal.Decimal) ([]LineItem, error) {
	it, err := NewLineItem(name, qty, price)
	if err != nil {
		return items, err
	}
	return append(items, it), nil
}
