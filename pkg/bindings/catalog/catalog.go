package catalog

import (
	apicatalog "github.com/DavidAtikpo/irata-sub007/pkg/api/types/catalog"
	"github.com/DavidAtikpo/irata-sub007/pkg/domain"
	"github.com/DavidAtikpo/irata-sub007/pkg/utils/rfctime"
	"github.com/DavidAtikpo/irata-sub007/pkg/utils/slices"
)

func ComposeProduct(p domain.Product) apicatalog.Product {
	return apicatalog.Product{
		ProductId:   p.Id,
		Name:        p.Name,
		Description: p.Description,
		PriceCents:  p.PriceCents,
		ImageUrl:    p.ImageUrl,
		Active:      p.Active,
		CreatedAt:   rfctime.New(p.CreatedAt),
		UpdatedAt:   rfctime.New(p.UpdatedAt),
	}
}

func ComposeOrderItem(i domain.OrderItem) apicatalog.OrderItem {
	return apicatalog.OrderItem{
		ProductId:      i.ProductId,
		Name:           i.Name,
		Quantity:       i.Quantity,
		UnitPriceCents: i.UnitPriceCents,
	}
}

func ComposeOrder(o domain.Order) apicatalog.Order {
	return apicatalog.Order{
		OrderId:    o.Id,
		Email:      o.Email,
		UserId:     o.UserId,
		Items:      slices.Map(o.Items, ComposeOrderItem),
		TotalCents: o.TotalCents,
		CreatedAt:  rfctime.New(o.CreatedAt),
	}
}
