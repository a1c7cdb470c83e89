package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	kpool "github.com/DavidAtikpo/irata-sub007/pkg/conn/db/postgres/pool"
	"github.com/DavidAtikpo/irata-sub007/pkg/domain"
	kdb "github.com/DavidAtikpo/irata-sub007/pkg/domain/catalog/db"
	kpgerr "github.com/DavidAtikpo/irata-sub007/pkg/domain/errors/dberrors/postgres"
)

type catalogPG struct { // implements kdb.CatalogInterface
	pool kpool.Pool
}

func New(pool kpool.Pool) *catalogPG {
	return &catalogPG{pool: pool}
}

var _ kdb.CatalogInterface = &catalogPG{}

func (c *catalogPG) CreateProduct(ctx context.Context, param domain.NewProductParam) (string, error) {
	conn, err := c.pool.Acquire(ctx)
	if err != nil {
		return "", err
	}
	defer conn.Release()

	productId := uuid.NewString()
	if _, err := conn.Exec(
		ctx,
		`
		insert into "product" ("product_id", "name", "description", "price_cents", "image_url", "active")
		values ($1, $2, $3, $4, $5, true)
		`,
		productId, param.Name, param.Description, param.PriceCents, param.ImageUrl,
	); err != nil {
		return "", err
	}
	return productId, nil
}

func (c *catalogPG) GetProducts(ctx context.Context, ids []string) (map[string]domain.Product, error) {
	if len(ids) == 0 {
		return map[string]domain.Product{}, nil
	}

	conn, err := c.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	rows, err := conn.Query(
		ctx,
		`
		select "product_id", "name", "description", "price_cents", "image_url", "active", "created_at", "updated_at"
		from "product"
		where "product_id" = any($1::varchar[])
		`,
		ids,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := map[string]domain.Product{}
	for rows.Next() {
		p := domain.Product{}
		if err := rows.Scan(
			&p.Id, &p.Name, &p.Description, &p.PriceCents,
			&p.ImageUrl, &p.Active, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result[p.Id] = p
	}
	return result, rows.Err()
}

func (c *catalogPG) FindProducts(ctx context.Context, activeOnly bool) ([]string, error) {
	conn, err := c.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	rows, err := conn.Query(
		ctx,
		`
		select "product_id" from "product"
		where (not $1::boolean or "active")
		order by "name"
		`,
		activeOnly,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	productIds := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		productIds = append(productIds, id)
	}
	return productIds, rows.Err()
}

func (c *catalogPG) CreateOrder(ctx context.Context, param domain.NewOrderParam) (string, error) {
	if len(param.Items) == 0 {
		return "", domain.ErrEmptyOrder
	}

	tx, err := c.pool.Begin(ctx)
	if err != nil {
		return "", err
	}
	defer tx.Rollback(ctx)

	orderId := uuid.NewString()

	// capture catalog state first; later catalog edits must not change
	// what this order costs.
	items := make([]domain.OrderItem, 0, len(param.Items))
	var totalCents int64
	for _, item := range param.Items {
		var name string
		var unitPriceCents int64
		var active bool
		if err := tx.QueryRow(
			ctx,
			`select "name", "price_cents", "active" from "product" where "product_id" = $1`,
			item.ProductId,
		).Scan(&name, &unitPriceCents, &active); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return "", fmt.Errorf("%w: id='%s'", domain.ErrUnknownProduct, item.ProductId)
			}
			return "", err
		}
		if !active {
			return "", fmt.Errorf("%w: id='%s' is inactive", domain.ErrUnknownProduct, item.ProductId)
		}
		items = append(items, domain.OrderItem{
			ProductId: item.ProductId, Name: name,
			Quantity: item.Quantity, UnitPriceCents: unitPriceCents,
		})
		totalCents += int64(item.Quantity) * unitPriceCents
	}

	if _, err := tx.Exec(
		ctx,
		`
		insert into "order" ("order_id", "email", "user_id", "total_cents")
		values ($1, $2, $3, $4)
		`,
		orderId, param.Email, param.UserId, totalCents,
	); err != nil {
		return "", err
	}

	for _, item := range items {
		if _, err := tx.Exec(
			ctx,
			`
			insert into "order_item" ("order_id", "product_id", "name", "quantity", "unit_price_cents")
			values ($1, $2, $3, $4, $5)
			`,
			orderId, item.ProductId, item.Name, item.Quantity, item.UnitPriceCents,
		); err != nil {
			return "", err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return "", err
	}
	return orderId, nil
}

func (c *catalogPG) GetOrder(ctx context.Context, orderId string) (domain.Order, error) {
	conn, err := c.pool.Acquire(ctx)
	if err != nil {
		return domain.Order{}, err
	}
	defer conn.Release()

	order := domain.Order{Items: []domain.OrderItem{}}
	if err := conn.QueryRow(
		ctx,
		`select "order_id", "email", "user_id", "total_cents", "created_at" from "order" where "order_id" = $1`,
		orderId,
	).Scan(
		&order.Id, &order.Email, &order.UserId, &order.TotalCents, &order.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Order{}, kpgerr.Missing{
				Table:    "order",
				Identity: fmt.Sprintf("order (id='%s')", orderId),
			}
		}
		return domain.Order{}, err
	}

	rows, err := conn.Query(
		ctx,
		`
		select "product_id", "name", "quantity", "unit_price_cents"
		from "order_item"
		where "order_id" = $1
		order by "name"
		`,
		orderId,
	)
	if err != nil {
		return domain.Order{}, err
	}
	defer rows.Close()

	for rows.Next() {
		item := domain.OrderItem{}
		if err := rows.Scan(&item.ProductId, &item.Name, &item.Quantity, &item.UnitPriceCents); err != nil {
			return domain.Order{}, err
		}
		order.Items = append(order.Items, item)
	}
	return order, rows.Err()
}
