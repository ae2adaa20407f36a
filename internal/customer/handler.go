package customer

import (
	"storeadmin-be/internal/apperr"
	"storeadmin-be/internal/response"
	"storeadmin-be/internal/utils"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Register(r *gin.RouterGroup) {
	r.POST("/create-customer", h.Create)
	r.GET("/get-customers", h.List)
	r.GET("/get-customer/:id", h.Get)
	r.PUT("/update-customer/:id", h.Update)
	r.DELETE("/delete-customer/:id", h.Delete)
}

func (h *Handler) Create(c *gin.Context) {
	var input CreateCustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, apperr.InvalidRequest("All fields are required."))
		return
	}

	created, err := h.svc.Create(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Customer created successfully.", gin.H{
		"user": gin.H{
			"id":         created.ID,
			"name":       created.Name,
			"email":      created.Email,
			"phone":      created.Phone,
			"location":   created.Location,
			"status":     created.Status,
			"joinDate":   utils.FormattedJoinDate(created.JoinDate),
			"totalSpent": created.TotalSpent,
		},
	})
}

func (h *Handler) List(c *gin.Context) {
	customers, err := h.svc.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customers retrieved successfully.", customers)
}

func (h *Handler) Get(c *gin.Context) {
	cust, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customer retrieved successfully.", cust)
}

func (h *Handler) Update(c *gin.Context) {
	var input UpdateCustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, apperr.InvalidRequest("Invalid request body."))
		return
	}

	cust, err := h.svc.Update(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customer updated successfully.", cust)
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customer deleted successfully.", nil)
}
