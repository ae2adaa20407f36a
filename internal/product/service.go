package product

import (
	"context"
	"errors"
	"strings"
	"time"

	"storeadmin-be/internal/apperr"
	"storeadmin-be/internal/category"
	"storeadmin-be/internal/logger"
	"storeadmin-be/internal/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	Create(ctx context.Context, input CreateProductInput) (*Product, error)
	List(ctx context.Context) ([]*Product, error)
	Get(ctx context.Context, id string) (*Product, error)
	Update(ctx context.Context, id string, input UpdateProductInput) (*Product, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo         Repository
	categoryRepo category.Repository
}

func NewService(repo Repository, categoryRepo category.Repository) Service {
	return &service{repo: repo, categoryRepo: categoryRepo}
}

func (s *service) Create(ctx context.Context, input CreateProductInput) (*Product, error) {
	if utils.GetUserRoleFromContext(ctx) != utils.RoleAdmin {
		return nil, apperr.Forbidden("Only admins can create a product.")
	}

	name := strings.TrimSpace(input.Name)
	if name == "" || input.Description == "" || input.CategoryID == "" || input.Status == "" {
		return nil, apperr.InvalidRequest("All required fields must be provided.")
	}
	if len(input.ImageURLs) == 0 {
		return nil, apperr.InvalidRequest("Please upload at least one product image.")
	}
	if input.Price.IsNegative() || input.Price.IsZero() {
		return nil, apperr.InvalidRequest("Invalid price format.")
	}
	if input.Stock < 0 {
		return nil, apperr.InvalidRequest("Invalid stock value.")
	}

	if _, err := s.categoryRepo.GetByID(ctx, input.CategoryID); err != nil {
		if errors.Is(err, category.ErrCategoryNotFound) {
			return nil, apperr.NotFound("Category not found.")
		}
		return nil, err
	}

	userID, _ := utils.GetUserIDFromContext(ctx)
	p := &Product{
		ID:          uuid.New().String(),
		Name:        name,
		Description: input.Description,
		CategoryID:  input.CategoryID,
		Price:       input.Price,
		Stock:       input.Stock,
		Status:      input.Status,
		CreatedBy:   userID,
		CreatedAt:   time.Now(),
	}

	if err := s.repo.Create(ctx, p, input.ImageURLs); err != nil {
		logger.FromCtx(ctx).Error("failed to create product",
			zap.String("name", name),
			zap.Error(err),
		)
		return nil, err
	}

	return p, nil
}

func (s *service) List(ctx context.Context) ([]*Product, error) {
	return s.repo.GetAll(ctx)
}

func (s *service) Get(ctx context.Context, id string) (*Product, error) {
	p, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, ErrProductNotFound) {
		return nil, apperr.NotFound("Product not found.")
	}
	return p, err
}

func (s *service) Update(ctx context.Context, id string, input UpdateProductInput) (*Product, error) {
	if utils.GetUserRoleFromContext(ctx) != utils.RoleAdmin {
		return nil, apperr.Forbidden("Only admins can update products.")
	}

	existing, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, ErrProductNotFound) {
		return nil, apperr.NotFound("Product not found.")
	}
	if err != nil {
		return nil, err
	}

	if input.CategoryID != nil {
		if _, err := s.categoryRepo.GetByID(ctx, *input.CategoryID); err != nil {
			if errors.Is(err, category.ErrCategoryNotFound) {
				return nil, apperr.NotFound("Category not found.")
			}
			return nil, err
		}
		existing.CategoryID = *input.CategoryID
	}

	if input.Name != nil && strings.TrimSpace(*input.Name) != "" {
		existing.Name = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		existing.Description = *input.Description
	}
	if input.Price != nil {
		if input.Price.IsNegative() {
			return nil, apperr.InvalidRequest("Invalid price format.")
		}
		existing.Price = *input.Price
	}
	if input.Stock != nil {
		if *input.Stock < 0 {
			return nil, apperr.InvalidRequest("Invalid stock value.")
		}
		existing.Stock = *input.Stock
	}
	if input.Status != nil {
		existing.Status = *input.Status
	}

	if len(input.ImageURLs) > 0 {
		images, err := s.repo.ReplaceImages(ctx, id, input.ImageURLs)
		if err != nil {
			return nil, err
		}
		existing.Images = images
	}

	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, err
	}

	return existing, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if utils.GetUserRoleFromContext(ctx) != utils.RoleAdmin {
		return apperr.Forbidden("Only admins can delete products.")
	}

	err := s.repo.Delete(ctx, id)
	if errors.Is(err, ErrProductNotFound) {
		return apperr.NotFound("Product not found.")
	}
	return err
}
