package product

import (
	"context"
	"testing"

	"storeadmin-be/internal/apperr"
	"storeadmin-be/internal/category"
	"storeadmin-be/internal/utils"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, p *Product, imageURLs []string) error {
	args := m.Called(ctx, p, imageURLs)
	return args.Error(0)
}

func (m *MockRepository) GetAll(ctx context.Context) ([]*Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Product), args.Error(1)
}

func (m *MockRepository) GetByID(ctx context.Context, id string) (*Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Product), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, p *Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockRepository) ReplaceImages(ctx context.Context, productID string, urls []string) ([]Image, error) {
	args := m.Called(ctx, productID, urls)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Image), args.Error(1)
}

func (m *MockRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockCategoryRepository struct {
	mock.Mock
}

var _ category.Repository = (*MockCategoryRepository)(nil)

func (m *MockCategoryRepository) Create(ctx context.Context, c *category.Category) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCategoryRepository) GetAll(ctx context.Context) ([]*category.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*category.Category), args.Error(1)
}

func (m *MockCategoryRepository) GetByID(ctx context.Context, id string) (*category.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*category.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindBySKU(ctx context.Context, sku string) (*category.Category, error) {
	args := m.Called(ctx, sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*category.Category), args.Error(1)
}

func (m *MockCategoryRepository) Update(ctx context.Context, c *category.Category) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCategoryRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCategoryRepository) CountProducts(ctx context.Context, id string) (int, error) {
	args := m.Called(ctx, id)
	return args.Int(0), args.Error(1)
}

func adminCtx() context.Context {
	return utils.SetUserContext(context.Background(), "admin-1", "admin@example.com", utils.RoleAdmin)
}

func customerCtx() context.Context {
	return utils.SetUserContext(context.Background(), "cust-1", "cust@example.com", utils.RoleCustomer)
}

func validInput() CreateProductInput {
	return CreateProductInput{
		Name:        "Widget",
		Description: "A fine widget",
		CategoryID:  "cat-1",
		Price:       decimal.NewFromFloat(9.99),
		Stock:       5,
		Status:      StatusActive,
		ImageURLs:   []string{"/uploads/widget.png"},
	}
}

func TestService_Create(t *testing.T) {
	t.Run("CustomerForbidden", func(t *testing.T) {
		svc := NewService(new(MockRepository), new(MockCategoryRepository))

		_, err := svc.Create(customerCtx(), validInput())
		assert.True(t, apperr.IsKind(err, apperr.KindForbidden))
	})

	t.Run("NoImages", func(t *testing.T) {
		svc := NewService(new(MockRepository), new(MockCategoryRepository))

		in := validInput()
		in.ImageURLs = nil
		_, err := svc.Create(adminCtx(), in)
		assert.True(t, apperr.IsKind(err, apperr.KindInvalidRequest))
	})

	t.Run("ZeroPrice", func(t *testing.T) {
		svc := NewService(new(MockRepository), new(MockCategoryRepository))

		in := validInput()
		in.Price = decimal.Zero
		_, err := svc.Create(adminCtx(), in)
		assert.True(t, apperr.IsKind(err, apperr.KindInvalidRequest))
	})

	t.Run("NegativeStock", func(t *testing.T) {
		svc := NewService(new(MockRepository), new(MockCategoryRepository))

		in := validInput()
		in.Stock = -1
		_, err := svc.Create(adminCtx(), in)
		assert.True(t, apperr.IsKind(err, apperr.KindInvalidRequest))
	})

	t.Run("UnknownCategory", func(t *testing.T) {
		repo := new(MockRepository)
		catRepo := new(MockCategoryRepository)
		svc := NewService(repo, catRepo)

		catRepo.On("GetByID", mock.Anything, "cat-1").Return(nil, category.ErrCategoryNotFound)

		_, err := svc.Create(adminCtx(), validInput())
		assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
		repo.AssertNotCalled(t, "Create")
	})

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		catRepo := new(MockCategoryRepository)
		svc := NewService(repo, catRepo)

		catRepo.On("GetByID", mock.Anything, "cat-1").Return(&category.Category{ID: "cat-1"}, nil)
		repo.On("Create", mock.Anything, mock.AnythingOfType("*product.Product"), []string{"/uploads/widget.png"}).Return(nil)

		p, err := svc.Create(adminCtx(), validInput())
		require.NoError(t, err)
		assert.NotEmpty(t, p.ID)
		assert.Equal(t, "admin-1", p.CreatedBy)
		repo.AssertExpectations(t)
	})
}

func TestService_Get(t *testing.T) {
	t.Run("NotFound", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, new(MockCategoryRepository))

		repo.On("GetByID", mock.Anything, "nope").Return(nil, ErrProductNotFound)

		_, err := svc.Get(context.Background(), "nope")
		assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
	})

	t.Run("PublicAccess", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, new(MockCategoryRepository))

		repo.On("GetByID", mock.Anything, "prod-1").Return(&Product{ID: "prod-1"}, nil)

		p, err := svc.Get(context.Background(), "prod-1")
		require.NoError(t, err)
		assert.Equal(t, "prod-1", p.ID)
	})
}

func TestService_Update(t *testing.T) {
	t.Run("NegativePriceRejected", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, new(MockCategoryRepository))

		repo.On("GetByID", mock.Anything, "prod-1").Return(&Product{ID: "prod-1", Stock: 5}, nil)

		price := decimal.NewFromInt(-1)
		_, err := svc.Update(adminCtx(), "prod-1", UpdateProductInput{Price: &price})
		assert.True(t, apperr.IsKind(err, apperr.KindInvalidRequest))
		repo.AssertNotCalled(t, "Update")
	})

	t.Run("ReplacesImagesWhenProvided", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, new(MockCategoryRepository))

		repo.On("GetByID", mock.Anything, "prod-1").Return(&Product{ID: "prod-1"}, nil)
		repo.On("ReplaceImages", mock.Anything, "prod-1", []string{"/uploads/new.png"}).
			Return([]Image{{ID: "img-1", ProductID: "prod-1", URL: "/uploads/new.png"}}, nil)
		repo.On("Update", mock.Anything, mock.AnythingOfType("*product.Product")).Return(nil)

		p, err := svc.Update(adminCtx(), "prod-1", UpdateProductInput{ImageURLs: []string{"/uploads/new.png"}})
		require.NoError(t, err)
		require.Len(t, p.Images, 1)
		assert.Equal(t, "/uploads/new.png", p.Images[0].URL)
	})

	t.Run("PartialFieldUpdate", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, new(MockCategoryRepository))

		repo.On("GetByID", mock.Anything, "prod-1").
			Return(&Product{ID: "prod-1", Name: "Widget", Stock: 5}, nil)
		repo.On("Update", mock.Anything, mock.AnythingOfType("*product.Product")).Return(nil)

		stock := 10
		p, err := svc.Update(adminCtx(), "prod-1", UpdateProductInput{Stock: &stock})
		require.NoError(t, err)
		assert.Equal(t, 10, p.Stock)
		assert.Equal(t, "Widget", p.Name)
	})
}

func TestService_Delete(t *testing.T) {
	t.Run("CustomerForbidden", func(t *testing.T) {
		svc := NewService(new(MockRepository), new(MockCategoryRepository))

		err := svc.Delete(customerCtx(), "prod-1")
		assert.True(t, apperr.IsKind(err, apperr.KindForbidden))
	})

	t.Run("NotFound", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, new(MockCategoryRepository))

		repo.On("Delete", mock.Anything, "nope").Return(ErrProductNotFound)

		err := svc.Delete(adminCtx(), "nope")
		assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
	})
}
