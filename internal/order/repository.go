package order

import (
	"context"
	"database/sql"
	"errors"
	"sort"

	"storeadmin-be/internal/apperr"
	"storeadmin-be/internal/logger"
	"storeadmin-be/internal/product"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Repository interface {
	FindProductsByIDs(ctx context.Context, ids []string) ([]*product.Product, error)

	// CreateOrderTx persists the order, its items, its shipping address and
	// the stock decrements as one atomic unit. Product rows are locked and
	// stock is re-checked inside the transaction; unit prices and the order
	// total are taken from the locked rows, never from the request.
	CreateOrderTx(ctx context.Context, o *Order, lines []Line) error

	FetchOrders(ctx context.Context) ([]*Order, error)
	FetchOrdersByCustomer(ctx context.Context, customerID string) ([]*Order, error)
	GetOrderByID(ctx context.Context, id string) (*Order, error)
	UpdateOrder(ctx context.Context, o *Order) error
	DeleteOrderTx(ctx context.Context, orderID, shippingID string) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindProductsByIDs(ctx context.Context, ids []string) ([]*product.Product, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, price, stock
		FROM products
		WHERE id = ANY($1)
	`, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*product.Product
	for rows.Next() {
		var p product.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Stock); err != nil {
			return nil, err
		}
		products = append(products, &p)
	}

	return products, rows.Err()
}

func (r *repository) CreateOrderTx(ctx context.Context, o *Order, lines []Line) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateOrderTx"),
		zap.String("order_id", o.ID),
		zap.Int("line_count", len(lines)),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin transaction", zap.Error(err))
		return err
	}

	committed := false
	defer func() {
		if !committed {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Error("failed to rollback transaction", zap.Error(rbErr))
			} else {
				log.Debug("transaction rolled back")
			}
		}
	}()

	// Lock the referenced product rows in a stable order so concurrent
	// orders touching the same products serialize instead of deadlocking.
	ids := make([]string, 0, len(lines))
	for _, line := range lines {
		ids = append(ids, line.ProductID)
	}
	sort.Strings(ids)

	rows, err := tx.QueryContext(ctx, `
		SELECT id, name, price, stock
		FROM products
		WHERE id = ANY($1)
		ORDER BY id
		FOR UPDATE
	`, pq.Array(ids))
	if err != nil {
		log.Error("failed to lock product rows", zap.Error(err))
		return err
	}

	locked := make(map[string]*product.Product, len(lines))
	for rows.Next() {
		var p product.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Stock); err != nil {
			rows.Close()
			return err
		}
		locked[p.ID] = &p
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return err
	}
	rows.Close()

	// Authoritative stock check under lock. The pre-transaction read only
	// fails fast; this one is what makes concurrent orders safe.
	total := decimal.Zero
	items := make([]OrderItem, 0, len(lines))
	for _, line := range lines {
		p, ok := locked[line.ProductID]
		if !ok {
			return ErrInvalidProducts
		}
		if p.Stock < line.Quantity {
			return &apperr.InsufficientStockError{ProductID: p.ID, ProductName: p.Name}
		}

		total = total.Add(p.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
		items = append(items, OrderItem{
			ID:          uuid.New().String(),
			OrderID:     o.ID,
			ProductID:   p.ID,
			ProductName: p.Name,
			Quantity:    line.Quantity,
			Price:       p.Price,
		})
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO shipping_addresses (
			id, first_name, last_name, email, address, city, zip
		) VALUES ($1,$2,$3,$4,$5,$6,$7)
	`,
		o.Shipping.ID,
		o.Shipping.FirstName,
		o.Shipping.LastName,
		o.Shipping.Email,
		o.Shipping.Address,
		o.Shipping.City,
		o.Shipping.Zip,
	)
	if err != nil {
		log.Error("failed to insert shipping address", zap.Error(err))
		return err
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders (
			id, customer_id, total, status, payment,
			due_date, created_by, created_at, shipping_id
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`,
		o.ID,
		o.CustomerID,
		total,
		o.Status,
		o.Payment,
		o.DueDate,
		o.CreatedBy,
		o.CreatedAt,
		o.Shipping.ID,
	)
	if err != nil {
		log.Error("failed to insert order", zap.Error(err))
		return err
	}

	for i, item := range items {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_items (
				id, order_id, product_id, quantity, price
			) VALUES ($1,$2,$3,$4,$5)
		`,
			item.ID,
			item.OrderID,
			item.ProductID,
			item.Quantity,
			item.Price,
		)
		if err != nil {
			log.Error("failed to insert order item",
				zap.Int("item_index", i),
				zap.String("product_id", item.ProductID),
				zap.Error(err),
			)
			return err
		}

		res, err := tx.ExecContext(ctx, `
			UPDATE products
			SET stock = stock - $1
			WHERE id = $2 AND stock >= $1
		`, item.Quantity, item.ProductID)
		if err != nil {
			log.Error("failed to decrement stock",
				zap.String("product_id", item.ProductID),
				zap.Error(err),
			)
			return err
		}
		if affected, _ := res.RowsAffected(); affected == 0 {
			return &apperr.InsufficientStockError{ProductID: item.ProductID, ProductName: item.ProductName}
		}
	}

	if err := tx.Commit(); err != nil {
		log.Error("failed to commit order transaction", zap.Error(err))
		return err
	}
	committed = true

	o.Total = total
	o.ShippingID = o.Shipping.ID
	o.Items = items

	log.Info("order transaction committed",
		zap.String("total", total.String()),
	)

	return nil
}

func (r *repository) FetchOrders(ctx context.Context) ([]*Order, error) {
	return r.fetchOrders(ctx, `
		SELECT o.id, o.customer_id, o.total, o.status, o.payment,
		       o.due_date, o.created_by, o.created_at, o.shipping_id,
		       s.first_name, s.last_name, s.email, s.address, s.city, s.zip
		FROM orders o
		JOIN shipping_addresses s ON s.id = o.shipping_id
		ORDER BY o.created_at DESC
	`)
}

func (r *repository) FetchOrdersByCustomer(ctx context.Context, customerID string) ([]*Order, error) {
	return r.fetchOrders(ctx, `
		SELECT o.id, o.customer_id, o.total, o.status, o.payment,
		       o.due_date, o.created_by, o.created_at, o.shipping_id,
		       s.first_name, s.last_name, s.email, s.address, s.city, s.zip
		FROM orders o
		JOIN shipping_addresses s ON s.id = o.shipping_id
		WHERE o.customer_id = $1
		ORDER BY o.created_at DESC
	`, customerID)
}

func (r *repository) fetchOrders(ctx context.Context, query string, args ...any) ([]*Order, error) {
	log := logger.FromCtx(ctx).With(zap.String("method", "fetchOrders"))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query orders", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var orders []*Order
	byID := make(map[string]*Order)
	orderIDs := []string{}

	for rows.Next() {
		var o Order
		var s ShippingAddress
		if err := rows.Scan(
			&o.ID, &o.CustomerID, &o.Total, &o.Status, &o.Payment,
			&o.DueDate, &o.CreatedBy, &o.CreatedAt, &o.ShippingID,
			&s.FirstName, &s.LastName, &s.Email, &s.Address, &s.City, &s.Zip,
		); err != nil {
			log.Error("failed to scan order row", zap.Error(err))
			return nil, err
		}
		s.ID = o.ShippingID
		o.Shipping = &s
		orders = append(orders, &o)
		byID[o.ID] = &o
		orderIDs = append(orderIDs, o.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(orders) == 0 {
		return orders, nil
	}

	itemRows, err := r.db.QueryContext(ctx, `
		SELECT oi.id, oi.order_id, oi.product_id, oi.quantity, oi.price,
		       COALESCE(p.name, '')
		FROM order_items oi
		LEFT JOIN products p ON p.id = oi.product_id
		WHERE oi.order_id = ANY($1)
	`, pq.Array(orderIDs))
	if err != nil {
		log.Error("failed to query order items", zap.Error(err))
		return nil, err
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var item OrderItem
		if err := itemRows.Scan(
			&item.ID, &item.OrderID, &item.ProductID,
			&item.Quantity, &item.Price, &item.ProductName,
		); err != nil {
			return nil, err
		}
		if o, ok := byID[item.OrderID]; ok {
			o.Items = append(o.Items, item)
		}
	}

	return orders, itemRows.Err()
}

func (r *repository) GetOrderByID(ctx context.Context, id string) (*Order, error) {
	var o Order
	var s ShippingAddress

	err := r.db.QueryRowContext(ctx, `
		SELECT o.id, o.customer_id, o.total, o.status, o.payment,
		       o.due_date, o.created_by, o.created_at, o.shipping_id,
		       s.first_name, s.last_name, s.email, s.address, s.city, s.zip
		FROM orders o
		JOIN shipping_addresses s ON s.id = o.shipping_id
		WHERE o.id = $1
	`, id).Scan(
		&o.ID, &o.CustomerID, &o.Total, &o.Status, &o.Payment,
		&o.DueDate, &o.CreatedBy, &o.CreatedAt, &o.ShippingID,
		&s.FirstName, &s.LastName, &s.Email, &s.Address, &s.City, &s.Zip,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	s.ID = o.ShippingID
	o.Shipping = &s

	itemRows, err := r.db.QueryContext(ctx, `
		SELECT oi.id, oi.order_id, oi.product_id, oi.quantity, oi.price,
		       COALESCE(p.name, '')
		FROM order_items oi
		LEFT JOIN products p ON p.id = oi.product_id
		WHERE oi.order_id = $1
	`, id)
	if err != nil {
		return nil, err
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var item OrderItem
		if err := itemRows.Scan(
			&item.ID, &item.OrderID, &item.ProductID,
			&item.Quantity, &item.Price, &item.ProductName,
		); err != nil {
			return nil, err
		}
		o.Items = append(o.Items, item)
	}

	return &o, itemRows.Err()
}

func (r *repository) UpdateOrder(ctx context.Context, o *Order) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE orders
		SET status = $1, payment = $2, due_date = $3
		WHERE id = $4
	`, o.Status, o.Payment, o.DueDate, o.ID)
	if err != nil {
		return err
	}

	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func (r *repository) DeleteOrderTx(ctx context.Context, orderID, shippingID string) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "DeleteOrderTx"),
		zap.String("order_id", orderID),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	committed := false
	defer func() {
		if !committed {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Error("failed to rollback transaction", zap.Error(rbErr))
			}
		}
	}()

	// Children first for referential integrity, then the order, then the
	// owned shipping address.
	if _, err := tx.ExecContext(ctx, `DELETE FROM order_items WHERE order_id = $1`, orderID); err != nil {
		log.Error("failed to delete order items", zap.Error(err))
		return err
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, orderID)
	if err != nil {
		log.Error("failed to delete order", zap.Error(err))
		return err
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrOrderNotFound
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM shipping_addresses WHERE id = $1`, shippingID); err != nil {
		log.Error("failed to delete shipping address", zap.Error(err))
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true

	log.Info("order deleted")
	return nil
}
