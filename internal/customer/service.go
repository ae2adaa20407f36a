package customer

import (
	"context"
	"errors"
	"strings"
	"time"

	"storeadmin-be/internal/apperr"
	"storeadmin-be/internal/auth"
	"storeadmin-be/internal/logger"
	"storeadmin-be/internal/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Service interface {
	Create(ctx context.Context, input CreateCustomerInput) (*Customer, error)
	List(ctx context.Context) ([]*Customer, error)
	Get(ctx context.Context, id string) (*Customer, error)
	Update(ctx context.Context, id string, input UpdateCustomerInput) (*Customer, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, input CreateCustomerInput) (*Customer, error) {
	if utils.GetUserRoleFromContext(ctx) != utils.RoleAdmin {
		return nil, apperr.Forbidden("Only Admins can create a customer.")
	}

	if input.Name == "" || input.Location == "" || input.Status == "" ||
		input.JoinDate == "" || input.Email == "" || input.Phone == "" || input.Password == "" {
		return nil, apperr.InvalidRequest("All fields are required.")
	}

	if !utils.IsValidEmail(input.Email) {
		return nil, apperr.InvalidRequest("Invalid email format.")
	}
	if !utils.IsStrongPassword(input.Password) {
		return nil, apperr.InvalidRequest("Password must be at least 8 characters long and include letters, numbers, and symbols.")
	}

	joinDate, err := parseJoinDate(input.JoinDate)
	if err != nil {
		return nil, apperr.InvalidRequest("Invalid join date.")
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	phone := strings.TrimSpace(input.Phone)

	exists, err := s.repo.ExistsByEmailOrPhone(ctx, email, phone)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.Conflict("User already exists with the given email or phone number.")
	}

	hashed, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	c := &Customer{
		ID:         uuid.New().String(),
		Name:       strings.TrimSpace(input.Name),
		Email:      email,
		Phone:      phone,
		Location:   input.Location,
		Status:     input.Status,
		TotalSpent: decimal.Zero,
		JoinDate:   joinDate,
	}

	if err := s.repo.Create(ctx, c, hashed); err != nil {
		logger.FromCtx(ctx).Error("failed to create customer",
			zap.String("email", email),
			zap.Error(err),
		)
		return nil, err
	}

	return c, nil
}

func (s *service) List(ctx context.Context) ([]*Customer, error) {
	if utils.GetUserRoleFromContext(ctx) != utils.RoleAdmin {
		return nil, apperr.Forbidden("Only Admins can view customers.")
	}
	return s.repo.GetAll(ctx)
}

func (s *service) Get(ctx context.Context, id string) (*Customer, error) {
	if utils.GetUserRoleFromContext(ctx) != utils.RoleAdmin {
		return nil, apperr.Forbidden("Only Admins can view customers.")
	}

	c, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, ErrCustomerNotFound) {
		return nil, apperr.NotFound("Customer not found.")
	}
	return c, err
}

func (s *service) Update(ctx context.Context, id string, input UpdateCustomerInput) (*Customer, error) {
	if utils.GetUserRoleFromContext(ctx) != utils.RoleAdmin {
		return nil, apperr.Forbidden("Only Admins can update a customer.")
	}

	existing, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, ErrCustomerNotFound) {
		return nil, apperr.NotFound("Customer not found.")
	}
	if err != nil {
		return nil, err
	}

	if input.Email != nil && strings.TrimSpace(*input.Email) != "" {
		email := strings.ToLower(strings.TrimSpace(*input.Email))
		if !utils.IsValidEmail(email) {
			return nil, apperr.InvalidRequest("Invalid email format.")
		}
		existing.Email = email
	}
	if input.Name != nil && strings.TrimSpace(*input.Name) != "" {
		existing.Name = strings.TrimSpace(*input.Name)
	}
	if input.Phone != nil && strings.TrimSpace(*input.Phone) != "" {
		existing.Phone = strings.TrimSpace(*input.Phone)
	}
	if input.Location != nil && strings.TrimSpace(*input.Location) != "" {
		existing.Location = *input.Location
	}
	if input.Status != nil && strings.TrimSpace(*input.Status) != "" {
		existing.Status = *input.Status
	}

	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, err
	}

	return existing, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if utils.GetUserRoleFromContext(ctx) != utils.RoleAdmin {
		return apperr.Forbidden("Only Admins can delete a customer.")
	}

	err := s.repo.Delete(ctx, id)
	if errors.Is(err, ErrCustomerNotFound) {
		return apperr.NotFound("Customer not found.")
	}
	return err
}

func parseJoinDate(s string) (time.Time, error) {
	layouts := []string{time.RFC3339, "2006-01-02", "January 2, 2006"}

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
