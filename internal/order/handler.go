package order

import (
	"storeadmin-be/internal/apperr"
	"storeadmin-be/internal/response"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Register(r *gin.RouterGroup) {
	r.POST("/create-order", h.Create)
	r.GET("/get-orders", h.List)
	r.GET("/get-order/:id", h.Get)
	r.PUT("/update-order/:id", h.Update)
	r.DELETE("/delete-order/:id", h.Delete)
}

type createOrderRequest struct {
	Items []struct {
		ID       string `json:"id"`
		Quantity int    `json:"quantity"`
		// Accepted for wire compatibility, never trusted: unit prices are
		// read from the catalog inside the creation transaction.
		Price decimal.Decimal `json:"price"`
	} `json:"items"`
	Shipping ShippingInput `json:"shipping"`
}

type updateOrderRequest struct {
	Status  *string `json:"status"`
	Payment *string `json:"payment"`
	DueDate *string `json:"duedate"`
}

func (h *Handler) Create(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperr.InvalidRequest("Missing required fields."))
		return
	}

	input := CreateOrderInput{Shipping: req.Shipping}
	for _, item := range req.Items {
		input.Lines = append(input.Lines, Line{ProductID: item.ID, Quantity: item.Quantity})
	}

	o, err := h.svc.Create(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Order created Successfully", o)
}

func (h *Handler) List(c *gin.Context) {
	orders, err := h.svc.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Orders fetched", orders)
}

func (h *Handler) Get(c *gin.Context) {
	o, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order fetched", o)
}

func (h *Handler) Update(c *gin.Context) {
	var req updateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperr.InvalidRequest("Invalid request body."))
		return
	}

	o, err := h.svc.Update(c.Request.Context(), c.Param("id"), UpdateOrderInput{
		Status:  req.Status,
		Payment: req.Payment,
		DueDate: req.DueDate,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order updated", o)
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order deleted successfully", nil)
}
