package mocks

import (
	"context"
	"errors"

	"github.com/DavidAtikpo/irata-sub007/pkg/domain"
	kdb "github.com/DavidAtikpo/irata-sub007/pkg/domain/catalog/db"
	kdbmock "github.com/DavidAtikpo/irata-sub007/pkg/domain/internal/db/mock"
)

type CatalogInterface struct {
	Impl struct {
		CreateProduct func(context.Context, domain.NewProductParam) (string, error)
		GetProducts   func(context.Context, []string) (map[string]domain.Product, error)
		FindProducts  func(context.Context, bool) ([]string, error)
		CreateOrder   func(context.Context, domain.NewOrderParam) (string, error)
		GetOrder      func(context.Context, string) (domain.Order, error)
	}
	Calls struct {
		CreateProduct kdbmock.CallLog[domain.NewProductParam]
		GetProducts   kdbmock.CallLog[[]string]
		FindProducts  kdbmock.CallLog[bool]
		CreateOrder   kdbmock.CallLog[domain.NewOrderParam]
		GetOrder      kdbmock.CallLog[string]
	}
}

var _ kdb.CatalogInterface = &CatalogInterface{}

func NewCatalogInterface() *CatalogInterface {
	return &CatalogInterface{}
}

func (m *CatalogInterface) CreateProduct(ctx context.Context, param domain.NewProductParam) (string, error) {
	m.Calls.CreateProduct = append(m.Calls.CreateProduct, param)
	if m.Impl.CreateProduct != nil {
		return m.Impl.CreateProduct(ctx, param)
	}
	panic(errors.New("should not be called"))
}

func (m *CatalogInterface) GetProducts(ctx context.Context, ids []string) (map[string]domain.Product, error) {
	m.Calls.GetProducts = append(m.Calls.GetProducts, ids)
	if m.Impl.GetProducts != nil {
		return m.Impl.GetProducts(ctx, ids)
	}
	panic(errors.New("should not be called"))
}

func (m *CatalogInterface) FindProducts(ctx context.Context, activeOnly bool) ([]string, error) {
	m.Calls.FindProducts = append(m.Calls.FindProducts, activeOnly)
	if m.Impl.FindProducts != nil {
		return m.Impl.FindProducts(ctx, activeOnly)
	}
	panic(errors.New("should not be called"))
}

func (m *CatalogInterface) CreateOrder(ctx context.Context, param domain.NewOrderParam) (string, error) {
	m.Calls.CreateOrder = append(m.Calls.CreateOrder, param)
	if m.Impl.CreateOrder != nil {
		return m.Impl.CreateOrder(ctx, param)
	}
	panic(errors.New("should not be called"))
}

func (m *CatalogInterface) GetOrder(ctx context.Context, orderId string) (domain.Order, error) {
	m.Calls.GetOrder = append(m.Calls.GetOrder, orderId)
	if m.Impl.GetOrder != nil {
		return m.Impl.GetOrder(ctx, orderId)
	}
	panic(errors.New("should not be called"))
}
