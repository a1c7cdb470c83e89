package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	apicatalog "github.com/DavidAtikpo/irata-sub007/pkg/api/types/catalog"
	"github.com/DavidAtikpo/irata-sub007/pkg/auth"
	bindcatalog "github.com/DavidAtikpo/irata-sub007/pkg/bindings/catalog"
	binderr "github.com/DavidAtikpo/irata-sub007/pkg/bindings/errors"
	"github.com/DavidAtikpo/irata-sub007/pkg/domain"
	kcatdb "github.com/DavidAtikpo/irata-sub007/pkg/domain/catalog/db"
	"github.com/DavidAtikpo/irata-sub007/pkg/mailer"
	"github.com/DavidAtikpo/irata-sub007/pkg/utils/slices"
)

// ProductCreateHandler adds a product to the catalog. Admin only.
func ProductCreateHandler(dbCatalog kcatdb.CatalogInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		spec := new(apicatalog.ProductSpec)
		if err := json.NewDecoder(c.Request().Body).Decode(spec); err != nil {
			return binderr.BadRequest("can not understand the requested json", err)
		}
		if spec.Name == "" {
			return binderr.BadRequest("name is required", nil)
		}
		if spec.PriceCents <= 0 {
			return binderr.BadRequest("priceCents should be a positive amount in cents", nil)
		}

		productId, err := dbCatalog.CreateProduct(ctx, domain.NewProductParam{
			Name:        spec.Name,
			Description: spec.Description,
			PriceCents:  spec.PriceCents,
			ImageUrl:    spec.ImageUrl,
		})
		if err != nil {
			return dbError(err)
		}

		products, err := dbCatalog.GetProducts(ctx, []string{productId})
		if err != nil {
			return binderr.InternalServerError(err)
		}
		product, ok := products[productId]
		if !ok {
			return binderr.NotFound()
		}
		return c.JSON(http.StatusOK, bindcatalog.ComposeProduct(product))
	}
}

// FindProductsHandler lists the catalog. Public.
//
// Anonymous callers and trainees see active products only; admins see the
// whole catalog, retired entries included.
func FindProductsHandler(dbCatalog kcatdb.CatalogInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		activeOnly := true
		if actor, ok := auth.ActorOf(c); ok && actor.Role == domain.RoleAdmin {
			activeOnly = false
		}

		ids, err := dbCatalog.FindProducts(ctx, activeOnly)
		if err != nil {
			return binderr.InternalServerError(err)
		}
		products, err := dbCatalog.GetProducts(ctx, ids)
		if err != nil {
			return binderr.InternalServerError(err)
		}

		details := []apicatalog.Product{}
		for _, id := range ids {
			if product, ok := products[id]; ok {
				details = append(details, bindcatalog.ComposeProduct(product))
			}
		}
		return c.JSON(http.StatusOK, details)
	}
}

// OrderCreateHandler places an order. Public: buyers order by email, with
// the account linked when they are logged in.
func OrderCreateHandler(dbCatalog kcatdb.CatalogInterface, notifier *mailer.Notifier) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		spec := new(apicatalog.OrderSpec)
		if err := json.NewDecoder(c.Request().Body).Decode(spec); err != nil {
			return binderr.BadRequest("can not understand the requested json", err)
		}
		if spec.Email == "" {
			return binderr.BadRequest("email is required", nil)
		}
		seen := map[string]bool{}
		for _, item := range spec.Items {
			if item.Quantity <= 0 {
				return binderr.BadRequest("item quantities should be positive", nil)
			}
			if seen[item.ProductId] {
				return binderr.BadRequest(
					"the same product appears twice. order it as one line", nil,
				)
			}
			seen[item.ProductId] = true
		}

		param := domain.NewOrderParam{
			Email: spec.Email,
			Items: slices.Map(spec.Items, func(i apicatalog.OrderItemSpec) domain.NewOrderItemParam {
				return domain.NewOrderItemParam{ProductId: i.ProductId, Quantity: i.Quantity}
			}),
		}
		if actor, ok := auth.ActorOf(c); ok {
			userId := actor.UserId
			param.UserId = &userId
		}

		orderId, err := dbCatalog.CreateOrder(ctx, param)
		if err != nil {
			if errors.Is(err, domain.ErrEmptyOrder) {
				return binderr.BadRequest("the order has no items", err)
			}
			if errors.Is(err, domain.ErrUnknownProduct) {
				return binderr.BadRequest(
					"the order refers to an unknown or retired product", err,
				)
			}
			return dbError(err)
		}

		order, err := dbCatalog.GetOrder(ctx, orderId)
		if err != nil {
			return dbError(err)
		}
		notifier.OrderPlaced(ctx, order)
		return c.JSON(http.StatusOK, bindcatalog.ComposeOrder(order))
	}
}

// GetOrderHandler answers one order. Admin only.
func GetOrderHandler(dbCatalog kcatdb.CatalogInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		order, err := dbCatalog.GetOrder(ctx, c.Param("orderId"))
		if err != nil {
			return dbError(err)
		}
		return c.JSON(http.StatusOK, bindcatalog.ComposeOrder(order))
	}
}
