package user

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"storeadmin-be/internal/apperr"
	"storeadmin-be/internal/auth"
	"storeadmin-be/internal/logger"
	"storeadmin-be/internal/mailer"
	"storeadmin-be/internal/utils"

	"go.uber.org/zap"
)

const resetTokenTTL = 15 * time.Minute

type Service interface {
	Login(ctx context.Context, email, password string) (string, *User, error)
	UpdateAdmin(ctx context.Context, input UpdateAdminInput) (*User, error)
	GetUsers(ctx context.Context) ([]*User, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
}

type service struct {
	repo Repository
	mail mailer.Mailer
}

func NewService(repo Repository, mail mailer.Mailer) Service {
	return &service{repo: repo, mail: mail}
}

func (s *service) Login(ctx context.Context, email, password string) (string, *User, error) {
	log := logger.FromCtx(ctx).With(zap.String("method", "Login"))

	if email == "" || password == "" {
		return "", nil, apperr.InvalidRequest("Email and password are required.")
	}
	if !utils.IsValidEmail(email) {
		return "", nil, apperr.InvalidRequest("Invalid email format.")
	}

	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return "", nil, apperr.Unauthorized("Invalid credentials.")
		}
		log.Error("failed to look up user", zap.Error(err))
		return "", nil, err
	}

	if !auth.CheckPasswordHash(password, u.Password) {
		return "", nil, apperr.Unauthorized("Invalid credentials.")
	}

	now := time.Now()
	if err := s.repo.UpdateLastLogin(ctx, u.ID, now); err != nil {
		log.Warn("failed to update last login", zap.Error(err))
	}
	u.LastLogin = &now

	token, err := auth.GenerateJWT(u.ID, u.Role, u.Email)
	if err != nil {
		log.Error("failed to generate jwt", zap.String("user_id", u.ID), zap.Error(err))
		return "", nil, err
	}

	log.Info("login successful", zap.String("user_id", u.ID), zap.String("role", u.Role))
	return token, u, nil
}

func (s *service) UpdateAdmin(ctx context.Context, input UpdateAdminInput) (*User, error) {
	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return nil, apperr.Unauthorized("Unauthorized access.")
	}

	admin, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, apperr.NotFound("Admin not found.")
		}
		return nil, err
	}

	updated := false
	if input.Name != nil && strings.TrimSpace(*input.Name) != "" {
		admin.Name = strings.TrimSpace(*input.Name)
		updated = true
	}
	if input.Email != nil && strings.TrimSpace(*input.Email) != "" {
		admin.Email = strings.ToLower(strings.TrimSpace(*input.Email))
		updated = true
	}
	if input.Phone != nil && strings.TrimSpace(*input.Phone) != "" {
		admin.Phone = strings.TrimSpace(*input.Phone)
		updated = true
	}
	if input.Location != nil && strings.TrimSpace(*input.Location) != "" {
		admin.Location = strings.TrimSpace(*input.Location)
		updated = true
	}

	if !updated {
		return nil, apperr.InvalidRequest("No valid fields provided for update.")
	}

	if err := s.repo.UpdateProfile(ctx, admin); err != nil {
		return nil, err
	}

	return admin, nil
}

func (s *service) GetUsers(ctx context.Context) ([]*User, error) {
	users, err := s.repo.ListNonAdmins(ctx)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, apperr.NotFound("No users found.")
	}
	return users, nil
}

func (s *service) ForgotPassword(ctx context.Context, email string) error {
	log := logger.FromCtx(ctx).With(zap.String("method", "ForgotPassword"))

	if email == "" {
		return apperr.InvalidRequest("Email is required.")
	}

	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			// Do not reveal whether the address exists.
			log.Info("password reset requested for unknown email")
			return nil
		}
		return err
	}

	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return err
	}
	token := hex.EncodeToString(raw)

	if err := s.repo.DeletePasswordResets(ctx, u.ID); err != nil {
		return err
	}
	if err := s.repo.SavePasswordReset(ctx, &PasswordReset{
		UserID:    u.ID,
		TokenHash: hashToken(token),
		ExpiresAt: time.Now().Add(resetTokenTTL),
	}); err != nil {
		return err
	}

	body := "Use this token to reset your password: " + token +
		"\nIt expires in 15 minutes."
	if err := s.mail.Send(ctx, u.Email, "Password reset", body); err != nil {
		return err
	}

	log.Info("password reset mail sent", zap.String("user_id", u.ID))
	return nil
}

func (s *service) ResetPassword(ctx context.Context, token, newPassword string) error {
	if token == "" || newPassword == "" {
		return apperr.InvalidRequest("Token and new password are required.")
	}
	if !utils.IsStrongPassword(newPassword) {
		return apperr.InvalidRequest("Password must be at least 8 characters long and include letters, numbers, and symbols.")
	}

	reset, err := s.repo.GetPasswordReset(ctx, hashToken(token))
	if err != nil {
		if errors.Is(err, ErrResetNotFound) {
			return apperr.InvalidRequest("Invalid or expired reset token.")
		}
		return err
	}

	if time.Now().After(reset.ExpiresAt) {
		return apperr.InvalidRequest("Invalid or expired reset token.")
	}

	hashed, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}

	if err := s.repo.UpdatePassword(ctx, reset.UserID, hashed); err != nil {
		return err
	}

	return s.repo.DeletePasswordResets(ctx, reset.UserID)
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
