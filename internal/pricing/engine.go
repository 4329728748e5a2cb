package pricing

import (
	"github.com/dustin/go-humanize"

	"github.com/polkiloo/brisa/internal/domain/model"
)

// CurrencySuffix is appended to every displayed price.
const CurrencySuffix = "CUP"

// Engine computes order prices from a zone table.
type Engine struct {
	table *Table
}

// NewEngine constructs Engine.
func NewEngine(table *Table) *Engine {
	return &Engine{table: table}
}

// Table exposes the underlying zone table.
func (e *Engine) Table() *Table {
	return e.table
}

// Price returns the final price in minor units. Unknown zones price at zero.
func (e *Engine) Price(zone string, service model.ServiceType) int64 {
	base := e.table.BasePrice(zone)
	if service == model.ServiceExpress {
		return ExpressPrice(base)
	}
	return base
}

// ExpressPrice applies the 50% surcharge rounding down.
func ExpressPrice(base int64) int64 {
	return base * 3 / 2
}

// Format renders a price with grouped thousands and the currency suffix.
func Format(price int64) string {
	return humanize.Comma(price) + " " + CurrencySuffix
}
