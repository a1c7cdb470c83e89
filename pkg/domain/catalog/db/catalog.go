package db

import (
	"context"

	"github.com/DavidAtikpo/irata-sub007/pkg/domain"
)

type CatalogInterface interface {
	// CreateProduct adds a catalog entry and returns its id.
	CreateProduct(ctx context.Context, param domain.NewProductParam) (string, error)

	GetProducts(ctx context.Context, ids []string) (map[string]domain.Product, error)

	// FindProducts lists product ids; only active ones when activeOnly.
	FindProducts(ctx context.Context, activeOnly bool) ([]string, error)

	// CreateOrder stores an order, capturing unit prices and computing the
	// total from the current catalog, all in one transaction.
	//
	// Unknown or inactive products are domain.ErrUnknownProduct; an empty
	// item list is domain.ErrEmptyOrder.
	CreateOrder(ctx context.Context, param domain.NewOrderParam) (string, error)

	GetOrder(ctx context.Context, orderId string) (domain.Order, error)
}
