package order

import (
	"context"
	"testing"
	"time"

	"storeadmin-be/internal/apperr"
	"storeadmin-be/internal/product"
	"storeadmin-be/internal/utils"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Mocks ---

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) FindProductsByIDs(ctx context.Context, ids []string) ([]*product.Product, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*product.Product), args.Error(1)
}

func (m *MockRepository) CreateOrderTx(ctx context.Context, o *Order, lines []Line) error {
	args := m.Called(ctx, o, lines)
	return args.Error(0)
}

func (m *MockRepository) FetchOrders(ctx context.Context) ([]*Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Order), args.Error(1)
}

func (m *MockRepository) FetchOrdersByCustomer(ctx context.Context, customerID string) ([]*Order, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Order), args.Error(1)
}

func (m *MockRepository) GetOrderByID(ctx context.Context, id string) (*Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Order), args.Error(1)
}

func (m *MockRepository) UpdateOrder(ctx context.Context, o *Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockRepository) DeleteOrderTx(ctx context.Context, orderID, shippingID string) error {
	args := m.Called(ctx, orderID, shippingID)
	return args.Error(0)
}

// --- Helpers ---

func customerCtx(userID string) context.Context {
	return utils.SetUserContext(context.Background(), userID, "customer@example.com", utils.RoleCustomer)
}

func adminCtx(userID string) context.Context {
	return utils.SetUserContext(context.Background(), userID, "admin@example.com", utils.RoleAdmin)
}

func validShipping() ShippingInput {
	return ShippingInput{
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     "jane@example.com",
		Address:   "1 Main St",
		City:      "Springfield",
		Zip:       "12345",
	}
}

// --- Create ---

func TestService_Create(t *testing.T) {
	t.Run("ForbiddenForAdmin", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		_, err := svc.Create(adminCtx("admin-1"), CreateOrderInput{
			Lines:    []Line{{ProductID: "p1", Quantity: 1}},
			Shipping: validShipping(),
		})

		assert.True(t, apperr.IsKind(err, apperr.KindForbidden))
		repo.AssertNotCalled(t, "CreateOrderTx")
	})

	t.Run("EmptyItems", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		_, err := svc.Create(customerCtx("cust-1"), CreateOrderInput{
			Shipping: validShipping(),
		})

		assert.True(t, apperr.IsKind(err, apperr.KindInvalidRequest))
	})

	t.Run("MissingShipping", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		_, err := svc.Create(customerCtx("cust-1"), CreateOrderInput{
			Lines: []Line{{ProductID: "p1", Quantity: 1}},
		})

		assert.True(t, apperr.IsKind(err, apperr.KindInvalidRequest))
	})

	t.Run("NonPositiveQuantity", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		_, err := svc.Create(customerCtx("cust-1"), CreateOrderInput{
			Lines:    []Line{{ProductID: "p1", Quantity: 0}},
			Shipping: validShipping(),
		})

		assert.True(t, apperr.IsKind(err, apperr.KindInvalidRequest))
		repo.AssertNotCalled(t, "FindProductsByIDs")
	})

	t.Run("UnknownProductID", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("FindProductsByIDs", mock.Anything, []string{"p1", "missing"}).
			Return([]*product.Product{
				{ID: "p1", Name: "Widget", Price: decimal.NewFromInt(10), Stock: 5},
			}, nil)

		_, err := svc.Create(customerCtx("cust-1"), CreateOrderInput{
			Lines: []Line{
				{ProductID: "p1", Quantity: 1},
				{ProductID: "missing", Quantity: 1},
			},
			Shipping: validShipping(),
		})

		assert.True(t, apperr.IsKind(err, apperr.KindInvalidRequest))
		repo.AssertNotCalled(t, "CreateOrderTx")
	})

	t.Run("InsufficientStockFailsFast", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("FindProductsByIDs", mock.Anything, []string{"p1"}).
			Return([]*product.Product{
				{ID: "p1", Name: "Widget", Price: decimal.NewFromInt(10), Stock: 2},
			}, nil)

		_, err := svc.Create(customerCtx("cust-1"), CreateOrderInput{
			Lines:    []Line{{ProductID: "p1", Quantity: 3}},
			Shipping: validShipping(),
		})

		var stockErr *apperr.InsufficientStockError
		require.ErrorAs(t, err, &stockErr)
		assert.Equal(t, "p1", stockErr.ProductID)
		assert.Equal(t, "Widget", stockErr.ProductName)
		repo.AssertNotCalled(t, "CreateOrderTx")
	})

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("FindProductsByIDs", mock.Anything, []string{"p1"}).
			Return([]*product.Product{
				{ID: "p1", Name: "Widget", Price: decimal.NewFromInt(10), Stock: 5},
			}, nil)

		repo.On("CreateOrderTx", mock.Anything, mock.AnythingOfType("*order.Order"), []Line{{ProductID: "p1", Quantity: 3}}).
			Run(func(args mock.Arguments) {
				o := args.Get(1).(*Order)
				o.Total = decimal.NewFromInt(30)
			}).
			Return(nil)

		before := time.Now()
		o, err := svc.Create(customerCtx("cust-1"), CreateOrderInput{
			Lines:    []Line{{ProductID: "p1", Quantity: 3}},
			Shipping: validShipping(),
		})

		require.NoError(t, err)
		assert.Equal(t, "cust-1", o.CustomerID)
		assert.Equal(t, "cust-1", o.CreatedBy)
		assert.Equal(t, PaymentPending, o.Payment)
		assert.Equal(t, StatusProcessing, o.Status)
		assert.True(t, decimal.NewFromInt(30).Equal(o.Total))
		require.NotNil(t, o.Shipping)
		assert.Equal(t, "Jane", o.Shipping.FirstName)

		// Fixed seven-day due date policy.
		assert.WithinDuration(t, before.Add(7*24*time.Hour), o.DueDate, 5*time.Second)

		repo.AssertExpectations(t)
	})
}

// --- List ---

func TestService_List(t *testing.T) {
	t.Run("AdminSeesAll", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		all := []*Order{{ID: "o1", CustomerID: "cust-1"}, {ID: "o2", CustomerID: "cust-2"}}
		repo.On("FetchOrders", mock.Anything).Return(all, nil)

		orders, err := svc.List(adminCtx("admin-1"))
		require.NoError(t, err)
		assert.Len(t, orders, 2)
	})

	t.Run("CustomerSeesOwn", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		own := []*Order{{ID: "o1", CustomerID: "cust-1"}}
		repo.On("FetchOrdersByCustomer", mock.Anything, "cust-1").Return(own, nil)

		orders, err := svc.List(customerCtx("cust-1"))
		require.NoError(t, err)
		require.Len(t, orders, 1)
		assert.Equal(t, "cust-1", orders[0].CustomerID)
		repo.AssertNotCalled(t, "FetchOrders")
	})

	t.Run("UnknownRoleForbidden", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		ctx := utils.SetUserContext(context.Background(), "u1", "u@example.com", "Guest")
		_, err := svc.List(ctx)
		assert.True(t, apperr.IsKind(err, apperr.KindForbidden))
	})
}

// --- Get ---

func TestService_Get(t *testing.T) {
	t.Run("OwnerCanFetch", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("GetOrderByID", mock.Anything, "o1").
			Return(&Order{ID: "o1", CustomerID: "cust-1"}, nil)

		o, err := svc.Get(customerCtx("cust-1"), "o1")
		require.NoError(t, err)
		assert.Equal(t, "o1", o.ID)
	})

	t.Run("NonOwnerForbidden", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("GetOrderByID", mock.Anything, "o1").
			Return(&Order{ID: "o1", CustomerID: "cust-1"}, nil)

		_, err := svc.Get(customerCtx("cust-2"), "o1")
		assert.True(t, apperr.IsKind(err, apperr.KindForbidden))
	})

	t.Run("AdminCanFetchAny", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("GetOrderByID", mock.Anything, "o1").
			Return(&Order{ID: "o1", CustomerID: "cust-1"}, nil)

		_, err := svc.Get(adminCtx("admin-1"), "o1")
		assert.NoError(t, err)
	})

	t.Run("NotFound", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("GetOrderByID", mock.Anything, "nope").Return(nil, ErrOrderNotFound)

		_, err := svc.Get(adminCtx("admin-1"), "nope")
		assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
	})
}

// --- Update ---

func TestService_Update(t *testing.T) {
	existing := func() *Order {
		return &Order{
			ID:      "o1",
			Status:  StatusProcessing,
			Payment: PaymentPending,
			DueDate: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		}
	}

	t.Run("NotFound", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("GetOrderByID", mock.Anything, "nope").Return(nil, ErrOrderNotFound)

		_, err := svc.Update(adminCtx("admin-1"), "nope", UpdateOrderInput{})
		assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
	})

	t.Run("InvalidDueDateLeavesRecordUntouched", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("GetOrderByID", mock.Anything, "o1").Return(existing(), nil)

		bad := "not-a-date"
		_, err := svc.Update(adminCtx("admin-1"), "o1", UpdateOrderInput{DueDate: &bad})

		assert.True(t, apperr.IsKind(err, apperr.KindInvalidRequest))
		repo.AssertNotCalled(t, "UpdateOrder")
	})

	t.Run("ConsoleDateFormatAccepted", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("GetOrderByID", mock.Anything, "o1").Return(existing(), nil)
		repo.On("UpdateOrder", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil)

		date := "June 21, 2025"
		o, err := svc.Update(adminCtx("admin-1"), "o1", UpdateOrderInput{DueDate: &date})

		require.NoError(t, err)
		assert.Equal(t, time.Date(2025, 6, 21, 0, 0, 0, 0, time.UTC), o.DueDate)
	})

	t.Run("IllegalPaymentTransition", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		paid := existing()
		paid.Payment = PaymentPaid
		repo.On("GetOrderByID", mock.Anything, "o1").Return(paid, nil)

		next := string(PaymentPending)
		_, err := svc.Update(adminCtx("admin-1"), "o1", UpdateOrderInput{Payment: &next})

		assert.True(t, apperr.IsKind(err, apperr.KindInvalidRequest))
		repo.AssertNotCalled(t, "UpdateOrder")
	})

	t.Run("ValidTransitions", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("GetOrderByID", mock.Anything, "o1").Return(existing(), nil)
		repo.On("UpdateOrder", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil)

		status := string(StatusShipped)
		payment := string(PaymentPaid)
		o, err := svc.Update(adminCtx("admin-1"), "o1", UpdateOrderInput{
			Status:  &status,
			Payment: &payment,
		})

		require.NoError(t, err)
		assert.Equal(t, StatusShipped, o.Status)
		assert.Equal(t, PaymentPaid, o.Payment)
	})

	t.Run("UnknownStatusValue", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("GetOrderByID", mock.Anything, "o1").Return(existing(), nil)

		status := "Teleported"
		_, err := svc.Update(adminCtx("admin-1"), "o1", UpdateOrderInput{Status: &status})
		assert.True(t, apperr.IsKind(err, apperr.KindInvalidRequest))
	})
}

// --- Delete ---

func TestService_Delete(t *testing.T) {
	t.Run("CustomerForbidden", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		err := svc.Delete(customerCtx("cust-1"), "o1")
		assert.True(t, apperr.IsKind(err, apperr.KindForbidden))
		repo.AssertNotCalled(t, "DeleteOrderTx")
	})

	t.Run("NotFoundMutatesNothing", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("GetOrderByID", mock.Anything, "nope").Return(nil, ErrOrderNotFound)

		err := svc.Delete(adminCtx("admin-1"), "nope")
		assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
		repo.AssertNotCalled(t, "DeleteOrderTx")
	})

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("GetOrderByID", mock.Anything, "o1").
			Return(&Order{ID: "o1", ShippingID: "s1"}, nil)
		repo.On("DeleteOrderTx", mock.Anything, "o1", "s1").Return(nil)

		err := svc.Delete(adminCtx("admin-1"), "o1")
		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})
}

func TestParseDueDate(t *testing.T) {
	cases := []struct {
		in   string
		ok   bool
		want time.Time
	}{
		{"2025-06-21", true, time.Date(2025, 6, 21, 0, 0, 0, 0, time.UTC)},
		{"June 21, 2025", true, time.Date(2025, 6, 21, 0, 0, 0, 0, time.UTC)},
		{"2025-06-21T10:30:00Z", true, time.Date(2025, 6, 21, 10, 30, 0, 0, time.UTC)},
		{"garbage", false, time.Time{}},
		{"", false, time.Time{}},
	}

	for _, tc := range cases {
		got, err := parseDueDate(tc.in)
		if tc.ok {
			require.NoError(t, err, tc.in)
			assert.True(t, tc.want.Equal(got), tc.in)
		} else {
			assert.Error(t, err, tc.in)
		}
	}
}
