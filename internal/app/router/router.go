// Package router wires the HTTP routes.
package router

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	authhandler "github.com/mhodge11/chatty-backend/internal/feature/auth/transport/handler"
	"github.com/mhodge11/chatty-backend/internal/platform/middleware"
)

// NewRouter builds the gin engine: session + error boundary on every route,
// the auth guards only on the protected group.
func NewRouter(sessionSecret string, authHandler *authhandler.AuthHandler, verifier middleware.TokenVerifier) *gin.Engine {
	r := gin.Default()

	store := cookie.NewStore([]byte(sessionSecret))
	r.Use(sessions.Sessions("session", store))
	r.Use(middleware.ErrorBoundary())

	// Liveness probe
	r.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	r.POST("/signup", authHandler.Signup)
	r.POST("/signin", authHandler.Signin)
	r.GET("/signout", authHandler.Signout)
	r.POST("/password", authHandler.ForgotPassword)
	r.PATCH("/password/:token", authHandler.ResetPassword)

	// Protected routes: decode the session token, then require it.
	auth := r.Group("/")
	auth.Use(middleware.VerifyUser(verifier), middleware.CheckAuthentication())
	{
		auth.GET("/currentuser", authHandler.CurrentUser)
	}

	return r
}
