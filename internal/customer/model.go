package customer

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer is the users-table view of a user with the Customer role.
type Customer struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Email      string          `json:"email"`
	Phone      string          `json:"phone"`
	Location   string          `json:"location"`
	Status     string          `json:"status"`
	TotalSpent decimal.Decimal `json:"totalSpent"`
	JoinDate   time.Time       `json:"joinDate"`
}

type CreateCustomerInput struct {
	Name     string `json:"name"`
	Location string `json:"location"`
	Status   string `json:"status"`
	JoinDate string `json:"joinDate"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type UpdateCustomerInput struct {
	Name     *string `json:"name"`
	Location *string `json:"location"`
	Status   *string `json:"status"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
}
