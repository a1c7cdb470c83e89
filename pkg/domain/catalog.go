package domain

import (
	"errors"
	"time"
)

// order refers to an unknown or inactive product.
var ErrUnknownProduct = errors.New("unknown product")

// order has no line items.
var ErrEmptyOrder = errors.New("order has no items")

// Product is a catalog entry (equipment, manuals, course add-ons).
type Product struct {
	Id          string
	Name        string
	Description string

	// price in euro cents.
	PriceCents int64

	ImageUrl string
	Active   bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

type NewProductParam struct {
	Name        string
	Description string
	PriceCents  int64
	ImageUrl    string
}

type OrderItem struct {
	ProductId string
	Name      string
	Quantity  int

	// unit price captured at order time; later catalog edits don't change it.
	UnitPriceCents int64
}

type Order struct {
	Id    string
	Email string

	// buyer account, when the order was placed logged-in.
	UserId *string

	Items []OrderItem

	// sum of Quantity * UnitPriceCents over Items. Computed server-side.
	TotalCents int64

	CreatedAt time.Time
}

type NewOrderParam struct {
	Email  string
	UserId *string
	Items  []NewOrderItemParam
}

type NewOrderItemParam struct {
	ProductId string
	Quantity  int
}
