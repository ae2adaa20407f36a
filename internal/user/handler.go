package user

import (
	"net/http"

	"storeadmin-be/internal/apperr"
	"storeadmin-be/internal/response"

	"github.com/gin-gonic/gin"
)

// Cookie lifetime mirrors the console session length.
const cookieMaxAge = 7 * 24 * 60 * 60

type Handler struct {
	svc    Service
	appEnv string
}

func NewHandler(svc Service, appEnv string) *Handler {
	return &Handler{svc: svc, appEnv: appEnv}
}

func (h *Handler) Register(public, authed *gin.RouterGroup) {
	public.POST("/login", h.Login)
	public.POST("/forgot-password", h.ForgotPassword)
	public.POST("/reset-password", h.ResetPassword)
	authed.POST("/logout", h.Logout)
	authed.POST("/update-admin", h.UpdateAdmin)
	authed.GET("/get-users", h.GetUsers)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperr.InvalidRequest("Email and password are required."))
		return
	}

	token, u, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie("access_token", token, cookieMaxAge, "/", "", h.appEnv == "production", true)

	response.OK(c, "Login successful.", gin.H{
		"user":        u,
		"accessToken": token,
	})
}

func (h *Handler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie("access_token", "", -1, "/", "", h.appEnv == "production", true)

	response.OK(c, "Logout successful.", nil)
}

func (h *Handler) UpdateAdmin(c *gin.Context) {
	var input UpdateAdminInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, apperr.InvalidRequest("Invalid request body."))
		return
	}

	u, err := h.svc.UpdateAdmin(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Admin updated successfully.", u)
}

func (h *Handler) GetUsers(c *gin.Context) {
	users, err := h.svc.GetUsers(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Users fetched successfully.", users)
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

func (h *Handler) ForgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperr.InvalidRequest("Email is required."))
		return
	}

	if err := h.svc.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "If the address exists, a reset mail has been sent.", nil)
}

type resetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

func (h *Handler) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperr.InvalidRequest("Token and new password are required."))
		return
	}

	if err := h.svc.ResetPassword(c.Request.Context(), req.Token, req.NewPassword); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Password reset successful.", nil)
}
