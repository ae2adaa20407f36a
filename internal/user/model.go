package user

import (
	"time"

	"github.com/shopspring/decimal"
)

type User struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Email      string          `json:"email"`
	Password   string          `json:"-"`
	Role       string          `json:"role"`
	Status     string          `json:"status"`
	Phone      string          `json:"phone"`
	Location   string          `json:"location"`
	Avatar     *string         `json:"avatar,omitempty"`
	TotalSpent decimal.Decimal `json:"totalSpent"`
	JoinDate   time.Time       `json:"joinDate"`
	LastLogin  *time.Time      `json:"lastLogin,omitempty"`
	CreatedAt  time.Time       `json:"createdAt"`
}

type UpdateAdminInput struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	Location *string `json:"location"`
}

// PasswordReset stores only a hash of the reset token.
type PasswordReset struct {
	UserID    string
	TokenHash string
	ExpiresAt time.Time
}
