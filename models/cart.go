package models

import "github.com/shopspring/decimal"

// CartLine is a resolved cart entry. Position is the index in the session
// cart, so duplicate books stay distinguishable.
type CartLine struct {
	Position int
	Book     Book
}

// CartView is a cart resolved against the catalog.
type CartView struct {
	Lines       []CartLine
	Total       decimal.Decimal
	Unavailable int
}

func (v CartView) Empty() bool {
	return len(v.Lines) == 0
}
