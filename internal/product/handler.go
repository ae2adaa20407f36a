package product

import (
	"path/filepath"
	"strconv"

	"storeadmin-be/internal/apperr"
	"storeadmin-be/internal/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const maxImages = 5

type Handler struct {
	svc       Service
	uploadDir string
}

func NewHandler(svc Service, uploadDir string) *Handler {
	return &Handler{svc: svc, uploadDir: uploadDir}
}

func (h *Handler) Register(public, authed *gin.RouterGroup) {
	authed.POST("/create-product", h.Create)
	public.GET("/get-products", h.List)
	public.GET("/get-product/:id", h.Get)
	authed.PUT("/update-product/:id", h.Update)
	authed.DELETE("/delete-product/:id", h.Delete)
}

func (h *Handler) Create(c *gin.Context) {
	price, err := decimal.NewFromString(c.PostForm("price"))
	if err != nil {
		response.Error(c, apperr.InvalidRequest("Invalid price format."))
		return
	}

	stock, err := strconv.Atoi(c.PostForm("stock"))
	if err != nil {
		response.Error(c, apperr.InvalidRequest("Invalid stock value."))
		return
	}

	urls, err := h.saveImages(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	p, err := h.svc.Create(c.Request.Context(), CreateProductInput{
		Name:        c.PostForm("name"),
		Description: c.PostForm("description"),
		CategoryID:  c.PostForm("categoryid"),
		Price:       price,
		Stock:       stock,
		Status:      c.PostForm("status"),
		ImageURLs:   urls,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Product created successfully", gin.H{"product": p})
}

func (h *Handler) List(c *gin.Context) {
	products, err := h.svc.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Products fetched successfully.", gin.H{"products": products})
}

func (h *Handler) Get(c *gin.Context) {
	p, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product fetched successfully.", gin.H{"product": p})
}

func (h *Handler) Update(c *gin.Context) {
	var input UpdateProductInput

	if v, ok := c.GetPostForm("name"); ok {
		input.Name = &v
	}
	if v, ok := c.GetPostForm("description"); ok {
		input.Description = &v
	}
	if v, ok := c.GetPostForm("categoryid"); ok {
		input.CategoryID = &v
	}
	if v, ok := c.GetPostForm("status"); ok {
		input.Status = &v
	}
	if v, ok := c.GetPostForm("price"); ok {
		price, err := decimal.NewFromString(v)
		if err != nil {
			response.Error(c, apperr.InvalidRequest("Invalid price format."))
			return
		}
		input.Price = &price
	}
	if v, ok := c.GetPostForm("stock"); ok {
		stock, err := strconv.Atoi(v)
		if err != nil {
			response.Error(c, apperr.InvalidRequest("Invalid stock value."))
			return
		}
		input.Stock = &stock
	}

	urls, err := h.saveImages(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	input.ImageURLs = urls

	p, err := h.svc.Update(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product updated successfully", gin.H{"product": p})
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product deleted successfully", nil)
}

// saveImages stores up to maxImages multipart files and returns their
// public URLs. An absent form is not an error; callers decide whether
// images are required.
func (h *Handler) saveImages(c *gin.Context) ([]string, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, nil
	}

	files := form.File["images"]
	if len(files) > maxImages {
		files = files[:maxImages]
	}

	var urls []string
	for _, file := range files {
		name := uuid.New().String() + filepath.Ext(file.Filename)
		if err := c.SaveUploadedFile(file, filepath.Join(h.uploadDir, name)); err != nil {
			return nil, apperr.Internal(err)
		}
		urls = append(urls, "/uploads/"+name)
	}

	return urls, nil
}
