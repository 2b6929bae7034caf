package model

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// PricePoint is one daily close
type PricePoint struct {
	Date  string `json:"date"`  // YYYY-MM-DD
	Close string `json:"close"` // Decimal string as returned by the provider
}

// CloseDecimal parses the close price
func (p PricePoint) CloseDecimal() (decimal.Decimal, error) {
	d, err := decimal.NewFromString(p.Close)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse close %q: %w", p.Close, err)
	}
	return d, nil
}
