package middleware

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/mhodge11/chatty-backend/internal/apperror"
	"github.com/mhodge11/chatty-backend/internal/platform/token"
)

// sessionTokenKey is the session field the signed token travels in.
const sessionTokenKey = "jwt"

// contextUserKey is the gin context key the decoded claims are attached to.
const contextUserKey = "currentUser"

// TokenVerifier decodes a session token into its claims.
type TokenVerifier interface {
	Verify(tokenStr string) (token.Claims, error)
}

// SetSessionToken stores the signed token in the request session.
func SetSessionToken(c *gin.Context, signed string) error {
	s := sessions.Default(c)
	s.Set(sessionTokenKey, signed)
	return s.Save()
}

// SessionToken returns the token stored in the request session, if any.
func SessionToken(c *gin.Context) string {
	s := sessions.Default(c)
	v := s.Get(sessionTokenKey)
	if v == nil {
		return ""
	}
	signed, _ := v.(string)
	return signed
}

// ClearSession drops the session and its token.
func ClearSession(c *gin.Context) error {
	s := sessions.Default(c)
	s.Clear()
	return s.Save()
}

// VerifyUser decodes the session token and attaches the claims to the
// request context. It does not require a session by itself; pair it with
// CheckAuthentication on routes that do.
func VerifyUser(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		signed := SessionToken(c)
		if signed == "" {
			Abort(c, apperror.NewUnauthorized("Token is not available. Please login."))
			return
		}

		claims, err := verifier.Verify(signed)
		if err != nil {
			Abort(c, apperror.NewUnauthorized("Token is not valid. Please login."))
			return
		}

		c.Set(contextUserKey, claims)
		c.Next()
	}
}

// CheckAuthentication asserts that VerifyUser attached claims earlier in the
// chain.
func CheckAuthentication() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := c.Get(contextUserKey); !ok {
			Abort(c, apperror.NewUnauthorized("Authentication is required. Please login."))
			return
		}
		c.Next()
	}
}

// CurrentUser returns the claims VerifyUser attached to the context.
func CurrentUser(c *gin.Context) (token.Claims, bool) {
	v, ok := c.Get(contextUserKey)
	if !ok {
		return token.Claims{}, false
	}
	claims, ok := v.(token.Claims)
	return claims, ok
}
