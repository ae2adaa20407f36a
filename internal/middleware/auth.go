package middleware

import (
	"storeadmin-be/internal/apperr"
	"storeadmin-be/internal/auth"
	"storeadmin-be/internal/response"
	"storeadmin-be/internal/utils"

	"github.com/gin-gonic/gin"
)

// RequireAuth verifies the access token and loads the caller's identity
// into the request context for the layers below.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := auth.ExtractAccessToken(c.Request)
		if tokenStr == "" {
			response.Error(c, apperr.Unauthorized("Access token is missing or invalid."))
			c.Abort()
			return
		}

		claims, err := auth.ParseJWT(tokenStr)
		if err != nil {
			response.Error(c, apperr.Unauthorized("Unauthorized access."))
			c.Abort()
			return
		}

		ctx := utils.SetUserContext(c.Request.Context(), claims.UserID, claims.Email, claims.Role)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// RequireRole rejects authenticated callers whose role does not match.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if utils.GetUserRoleFromContext(c.Request.Context()) != role {
			response.Error(c, apperr.Forbidden("You are not allowed to perform this action."))
			c.Abort()
			return
		}
		c.Next()
	}
}
