package catalog

import (
	"github.com/DavidAtikpo/irata-sub007/pkg/utils/cmp"
	"github.com/DavidAtikpo/irata-sub007/pkg/utils/pointer"
	"github.com/DavidAtikpo/irata-sub007/pkg/utils/rfctime"
)

// ProductSpec is the request body adding a product to the catalog.
type ProductSpec struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	PriceCents  int64  `json:"priceCents"`
	ImageUrl    string `json:"imageUrl,omitempty"`
}

type Product struct {
	ProductId   string          `json:"productId"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	PriceCents  int64           `json:"priceCents"`
	ImageUrl    string          `json:"imageUrl,omitempty"`
	Active      bool            `json:"active"`
	CreatedAt   rfctime.RFC3339 `json:"createdAt"`
	UpdatedAt   rfctime.RFC3339 `json:"updatedAt"`
}

func (p Product) Equal(o Product) bool {
	return p.ProductId == o.ProductId &&
		p.Name == o.Name &&
		p.Description == o.Description &&
		p.PriceCents == o.PriceCents &&
		p.ImageUrl == o.ImageUrl &&
		p.Active == o.Active &&
		p.CreatedAt.Equal(o.CreatedAt) &&
		p.UpdatedAt.Equal(o.UpdatedAt)
}

// OrderSpec is the request body placing an order.
type OrderSpec struct {
	Email string          `json:"email"`
	Items []OrderItemSpec `json:"items"`
}

type OrderItemSpec struct {
	ProductId string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type OrderItem struct {
	ProductId      string `json:"productId"`
	Name           string `json:"name"`
	Quantity       int    `json:"quantity"`
	UnitPriceCents int64  `json:"unitPriceCents"`
}

func (i OrderItem) Equal(o OrderItem) bool {
	return i == o
}

type Order struct {
	OrderId    string          `json:"orderId"`
	Email      string          `json:"email"`
	UserId     *string         `json:"userId,omitempty"`
	Items      []OrderItem     `json:"items"`
	TotalCents int64           `json:"totalCents"`
	CreatedAt  rfctime.RFC3339 `json:"createdAt"`
}

func (ord Order) Equal(o Order) bool {
	return ord.OrderId == o.OrderId &&
		ord.Email == o.Email &&
		pointer.SafeDeref(ord.UserId) == pointer.SafeDeref(o.UserId) &&
		cmp.SliceEqWith(ord.Items, o.Items, OrderItem.Equal) &&
		ord.TotalCents == o.TotalCents &&
		ord.CreatedAt.Equal(o.CreatedAt)
}
