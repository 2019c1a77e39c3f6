package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/vamoslabs/redesocial/cognito"
)

var (
	// identity resolves access tokens to subject ids. Before any middleware
	// is used, make sure it's initialized through Setup.
	identity cognito.IdentityService
)

// Setup initializes the package scoped identity client the middlewares
// need. This function must be called before any middleware is used.
func Setup(service cognito.IdentityService) {
	identity = service
}

// Auth fetches the caller's access token, from the Authorization bearer
// header or the "token" query parameter, resolves it to the subject id and
// stores the id in the "sub" request header for the handlers downstream.
// It aborts with 401 on missing or invalid tokens.
func Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
		if token == "" {
			token = c.Query("token")
		}

		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"code": "token_auth_fail",
				"msg":  "empty access token",
			})
			c.Abort()
			return
		}

		sub, err := identity.GetUserSub(c.Request.Context(), token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"code": "token_auth_fail",
				"msg":  err.Error(),
			})
			c.Abort()
			return
		}

		// Successfully validated the token, expose only the resolved sub.
		c.Request.Header.Del("Authorization")
		c.Request.Header.Set("sub", sub)

		c.Next()
	}
}
