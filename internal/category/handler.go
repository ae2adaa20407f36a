package category

import (
	"path/filepath"

	"storeadmin-be/internal/apperr"
	"storeadmin-be/internal/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Handler struct {
	svc       Service
	uploadDir string
}

func NewHandler(svc Service, uploadDir string) *Handler {
	return &Handler{svc: svc, uploadDir: uploadDir}
}

func (h *Handler) Register(public, authed *gin.RouterGroup) {
	authed.POST("/create-category", h.Create)
	public.GET("/get-categories", h.List)
	authed.GET("/get-category/:id", h.Get)
	authed.PUT("/update-category/:id", h.Update)
	authed.DELETE("/delete-category/:id", h.Delete)
}

func (h *Handler) Create(c *gin.Context) {
	input := CreateCategoryInput{
		Name:        c.PostForm("name"),
		SKU:         c.PostForm("sku"),
		Description: c.PostForm("description"),
	}

	if file, err := c.FormFile("image"); err == nil {
		name := uuid.New().String() + filepath.Ext(file.Filename)
		if err := c.SaveUploadedFile(file, filepath.Join(h.uploadDir, name)); err != nil {
			response.Error(c, apperr.Internal(err))
			return
		}
		url := "/uploads/" + name
		input.Image = &url
	}

	cat, err := h.svc.Create(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Category created successfully", gin.H{"category": cat})
}

func (h *Handler) List(c *gin.Context) {
	categories, err := h.svc.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Categories fetched", gin.H{"categories": categories})
}

func (h *Handler) Get(c *gin.Context) {
	cat, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Category fetched successfully", gin.H{"category": cat})
}

func (h *Handler) Update(c *gin.Context) {
	var input UpdateCategoryInput

	if v, ok := c.GetPostForm("name"); ok {
		input.Name = &v
	}
	if v, ok := c.GetPostForm("sku"); ok {
		input.SKU = &v
	}
	if v, ok := c.GetPostForm("description"); ok {
		input.Description = &v
	}

	if file, err := c.FormFile("image"); err == nil {
		name := uuid.New().String() + filepath.Ext(file.Filename)
		if err := c.SaveUploadedFile(file, filepath.Join(h.uploadDir, name)); err != nil {
			response.Error(c, apperr.Internal(err))
			return
		}
		url := "/uploads/" + name
		input.Image = &url
	}

	cat, err := h.svc.Update(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Category updated successfully", gin.H{"category": cat})
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Category deleted successfully", nil)
}
