// Package server is the local development gateway: it exposes the Lambda
// handlers over plain HTTP by adapting each request into the API Gateway
// proxy event the handlers expect. Production traffic never goes through
// here, API Gateway invokes the Lambda binary directly.
package server

import (
	"encoding/base64"
	"io/ioutil"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/vamoslabs/redesocial/functions"
)

// NewRouter wires every endpoint. authMiddleware guards the routes that
// need an authenticated caller.
func NewRouter(deps *functions.Deps, authMiddleware gin.HandlerFunc) *gin.Engine {
	// Default comes with the Logger and Recovery middleware already attached.
	router := gin.Default()
	router.Use(cors.Default())

	router.POST("/register", adapt(deps.Register))
	router.POST("/confirm-email", adapt(deps.ConfirmEmail))
	router.POST("/forgot-password", adapt(deps.ForgotPassword))
	router.POST("/change-password", adapt(deps.ChangePassword))
	router.POST("/login", adapt(deps.Login))

	authed := router.Group("/", authMiddleware)
	authed.GET("/user/me", adapt(deps.Me))
	authed.PUT("/user/me", adapt(deps.UpdateUser))
	authed.GET("/user/search/:filter", adapt(deps.SearchUsers))
	authed.GET("/user/:userId", adapt(deps.GetUserById))
	authed.PUT("/follow/:followId", adapt(deps.ToggleFollow))
	authed.POST("/post", adapt(deps.CreatePost))
	authed.PUT("/post/:postId/like", adapt(deps.ToggleLike))
	authed.POST("/post/:postId/coment", adapt(deps.PostComment))
	authed.GET("/feed", adapt(deps.FindFeedByUserId))
	authed.GET("/feed/:userId", adapt(deps.FindFeedByUserId))
	authed.GET("/home", adapt(deps.HomeFeed))

	return router
}

// adapt converts an HTTP request into the proxy event shape and writes the
// handler's envelope back. Multipart bodies are base64 encoded, the same
// way API Gateway delivers binary content; everything else stays text.
func adapt(handler functions.Handler) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := ioutil.ReadAll(c.Request.Body)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"code": "invalid_input"})
			return
		}

		body := string(raw)
		isBase64 := false
		if strings.HasPrefix(c.ContentType(), "multipart/") {
			body = base64.StdEncoding.EncodeToString(raw)
			isBase64 = true
		}

		event := events.APIGatewayProxyRequest{
			HTTPMethod:            c.Request.Method,
			Path:                  c.Request.URL.Path,
			Body:                  body,
			IsBase64Encoded:       isBase64,
			Headers:               map[string]string{},
			PathParameters:        map[string]string{},
			QueryStringParameters: map[string]string{},
		}
		for key, values := range c.Request.Header {
			if len(values) > 0 {
				event.Headers[key] = values[0]
			}
		}
		for _, param := range c.Params {
			event.PathParameters[param.Key] = param.Value
		}
		for key, values := range c.Request.URL.Query() {
			if len(values) > 0 {
				event.QueryStringParameters[key] = values[0]
			}
		}
		if sub := c.Request.Header.Get("sub"); sub != "" {
			event.RequestContext.Authorizer = map[string]interface{}{"sub": sub}
		}

		response, err := handler(c.Request.Context(), event)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"code": "internal"})
			return
		}
		c.Data(response.StatusCode, "application/json", []byte(response.Body))
	}
}
