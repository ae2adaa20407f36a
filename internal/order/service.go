package order

import (
	"context"
	"time"

	"storeadmin-be/internal/apperr"
	"storeadmin-be/internal/logger"
	"storeadmin-be/internal/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// dueDatePolicy is how long a new order has until payment is due.
const dueDatePolicy = 7 * 24 * time.Hour

type Service interface {
	Create(ctx context.Context, input CreateOrderInput) (*Order, error)
	List(ctx context.Context) ([]*Order, error)
	Get(ctx context.Context, id string) (*Order, error)
	Update(ctx context.Context, id string, input UpdateOrderInput) (*Order, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, input CreateOrderInput) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Create"),
		zap.Int("line_count", len(input.Lines)),
	)

	if utils.GetUserRoleFromContext(ctx) != utils.RoleCustomer {
		return nil, apperr.Forbidden("Only Customers can order products.")
	}

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok || userID == "" {
		return nil, apperr.Unauthorized("Unauthorized access.")
	}

	if len(input.Lines) == 0 || input.Shipping == (ShippingInput{}) {
		return nil, ErrMissingFields
	}

	ids := make([]string, 0, len(input.Lines))
	for _, line := range input.Lines {
		if line.Quantity <= 0 {
			return nil, apperr.InvalidRequest("Quantity must be greater than zero.")
		}
		ids = append(ids, line.ProductID)
	}

	// Fast-path validation. A count mismatch means at least one id is
	// unknown (or duplicated); which one is deliberately not reported.
	products, err := s.repo.FindProductsByIDs(ctx, ids)
	if err != nil {
		log.Error("failed to fetch products", zap.Error(err))
		return nil, err
	}
	if len(products) != len(input.Lines) {
		return nil, ErrInvalidProducts
	}

	byID := make(map[string]int, len(products))
	for _, p := range products {
		byID[p.ID] = p.Stock
	}
	for _, line := range input.Lines {
		if byID[line.ProductID] < line.Quantity {
			for _, p := range products {
				if p.ID == line.ProductID {
					return nil, &apperr.InsufficientStockError{ProductID: p.ID, ProductName: p.Name}
				}
			}
		}
	}

	now := time.Now()
	o := &Order{
		ID:         uuid.New().String(),
		CustomerID: userID,
		Status:     StatusProcessing,
		Payment:    PaymentPending,
		DueDate:    now.Add(dueDatePolicy),
		CreatedBy:  userID,
		CreatedAt:  now,
		Shipping: &ShippingAddress{
			ID:        uuid.New().String(),
			FirstName: input.Shipping.FirstName,
			LastName:  input.Shipping.LastName,
			Email:     input.Shipping.Email,
			Address:   input.Shipping.Address,
			City:      input.Shipping.City,
			Zip:       input.Shipping.Zip,
		},
	}

	// Total and unit prices are computed inside the transaction from the
	// locked catalog rows; the check above is only a fast fail.
	if err := s.repo.CreateOrderTx(ctx, o, input.Lines); err != nil {
		log.Warn("order creation failed", zap.Error(err))
		return nil, err
	}

	log.Info("order created",
		zap.String("order_id", o.ID),
		zap.String("total", o.Total.String()),
	)

	return o, nil
}

func (s *service) List(ctx context.Context) ([]*Order, error) {
	role := utils.GetUserRoleFromContext(ctx)

	switch role {
	case utils.RoleAdmin:
		return s.repo.FetchOrders(ctx)
	case utils.RoleCustomer:
		userID, _ := utils.GetUserIDFromContext(ctx)
		return s.repo.FetchOrdersByCustomer(ctx, userID)
	default:
		return nil, apperr.Forbidden("Unauthorized")
	}
}

func (s *service) Get(ctx context.Context, id string) (*Order, error) {
	o, err := s.repo.GetOrderByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Admins see everything; customers only their own orders.
	if utils.GetUserRoleFromContext(ctx) != utils.RoleAdmin {
		userID, _ := utils.GetUserIDFromContext(ctx)
		if o.CustomerID != userID {
			return nil, apperr.Forbidden("You cannot access others' orders.")
		}
	}

	return o, nil
}

func (s *service) Update(ctx context.Context, id string, input UpdateOrderInput) (*Order, error) {
	existing, err := s.repo.GetOrderByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.DueDate != nil {
		parsed, err := parseDueDate(*input.DueDate)
		if err != nil {
			return nil, apperr.InvalidRequest("Invalid date format")
		}
		existing.DueDate = parsed
	}

	if input.Status != nil {
		next := Status(*input.Status)
		if !next.Valid() {
			return nil, apperr.InvalidRequest("Invalid order status: " + *input.Status)
		}
		if !existing.Status.CanTransitionTo(next) {
			return nil, apperr.InvalidRequest("Cannot move order from " + string(existing.Status) + " to " + string(next))
		}
		existing.Status = next
	}

	if input.Payment != nil {
		next := PaymentStatus(*input.Payment)
		if !next.Valid() {
			return nil, apperr.InvalidRequest("Invalid payment status: " + *input.Payment)
		}
		if !existing.Payment.CanTransitionTo(next) {
			return nil, apperr.InvalidRequest("Cannot move payment from " + string(existing.Payment) + " to " + string(next))
		}
		existing.Payment = next
	}

	if err := s.repo.UpdateOrder(ctx, existing); err != nil {
		return nil, err
	}

	logger.FromCtx(ctx).Info("order updated", zap.String("order_id", id))
	return existing, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if utils.GetUserRoleFromContext(ctx) != utils.RoleAdmin {
		return apperr.Forbidden("Only admins can delete an order.")
	}

	existing, err := s.repo.GetOrderByID(ctx, id)
	if err != nil {
		return err
	}

	// Stock is intentionally not restored: deletion is record removal,
	// not cancellation.
	return s.repo.DeleteOrderTx(ctx, existing.ID, existing.ShippingID)
}

// parseDueDate accepts the formats the admin console has historically sent.
func parseDueDate(s string) (time.Time, error) {
	layouts := []string{
		time.RFC3339,
		"2006-01-02",
		"January 2, 2006",
	}

	var lastErr error
	for _, layout := range layouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
