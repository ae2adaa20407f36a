package category

import (
	"context"
	"errors"
	"strings"
	"time"

	"storeadmin-be/internal/apperr"
	"storeadmin-be/internal/logger"
	"storeadmin-be/internal/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	Create(ctx context.Context, input CreateCategoryInput) (*Category, error)
	List(ctx context.Context) ([]*Category, error)
	Get(ctx context.Context, id string) (*Category, error)
	Update(ctx context.Context, id string, input UpdateCategoryInput) (*Category, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, input CreateCategoryInput) (*Category, error) {
	if utils.GetUserRoleFromContext(ctx) != utils.RoleAdmin {
		return nil, apperr.Forbidden("Only admins can create a category.")
	}

	name := strings.TrimSpace(input.Name)
	sku := strings.TrimSpace(input.SKU)
	description := strings.TrimSpace(input.Description)
	if name == "" || sku == "" || description == "" {
		return nil, apperr.InvalidRequest("All fields (name, SKU, description) are required.")
	}

	if existing, err := s.repo.FindBySKU(ctx, sku); err == nil && existing != nil {
		return nil, apperr.Conflict("SKU already exists.")
	} else if err != nil && !errors.Is(err, ErrCategoryNotFound) {
		return nil, err
	}

	userID, _ := utils.GetUserIDFromContext(ctx)
	c := &Category{
		ID:          uuid.New().String(),
		Name:        name,
		SKU:         sku,
		Description: description,
		Image:       input.Image,
		CreatedBy:   userID,
		CreatedAt:   time.Now(),
	}

	if err := s.repo.Create(ctx, c); err != nil {
		logger.FromCtx(ctx).Error("failed to create category", zap.Error(err))
		return nil, err
	}

	return c, nil
}

func (s *service) List(ctx context.Context) ([]*Category, error) {
	return s.repo.GetAll(ctx)
}

func (s *service) Get(ctx context.Context, id string) (*Category, error) {
	if utils.GetUserRoleFromContext(ctx) != utils.RoleAdmin {
		return nil, apperr.Forbidden("Only admins can fetch a category.")
	}

	c, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, ErrCategoryNotFound) {
		return nil, apperr.NotFound("Category not found.")
	}
	return c, err
}

func (s *service) Update(ctx context.Context, id string, input UpdateCategoryInput) (*Category, error) {
	if utils.GetUserRoleFromContext(ctx) != utils.RoleAdmin {
		return nil, apperr.Forbidden("Only admins can update a category.")
	}

	existing, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, ErrCategoryNotFound) {
		return nil, apperr.NotFound("Category not found.")
	}
	if err != nil {
		return nil, err
	}

	if input.SKU != nil && strings.TrimSpace(*input.SKU) != existing.SKU {
		sku := strings.TrimSpace(*input.SKU)
		if other, err := s.repo.FindBySKU(ctx, sku); err == nil && other != nil && other.ID != id {
			return nil, apperr.Conflict("SKU already exists.")
		} else if err != nil && !errors.Is(err, ErrCategoryNotFound) {
			return nil, err
		}
		existing.SKU = sku
	}

	if input.Name != nil && strings.TrimSpace(*input.Name) != "" {
		existing.Name = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil && strings.TrimSpace(*input.Description) != "" {
		existing.Description = strings.TrimSpace(*input.Description)
	}
	if input.Image != nil {
		existing.Image = input.Image
	}

	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, err
	}

	return existing, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if utils.GetUserRoleFromContext(ctx) != utils.RoleAdmin {
		return apperr.Forbidden("Only admins can delete a category.")
	}

	if _, err := s.repo.GetByID(ctx, id); errors.Is(err, ErrCategoryNotFound) {
		return apperr.NotFound("Category not found.")
	} else if err != nil {
		return err
	}

	count, err := s.repo.CountProducts(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return apperr.Conflict("Category still has products assigned to it.")
	}

	return s.repo.Delete(ctx, id)
}
