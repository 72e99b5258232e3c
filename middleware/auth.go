package middleware

import (
	"context"
	"errors"
	"net/http"

	jwtmiddleware "github.com/auth0/go-jwt-middleware/v2"
	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/lightwork-auth-api/config"
	"github.com/kendall-kelly/lightwork-auth-api/services"
	"go.uber.org/zap"
)

const (
	userIDKey = "user_id"
	claimsKey = "session_claims"
)

// TokenVerifier checks a bearer token and returns its claims.
type TokenVerifier interface {
	Verify(token string) (*services.SessionClaims, error)
}

func validateWith(v TokenVerifier) jwtmiddleware.ValidateToken {
	return func(_ context.Context, token string) (interface{}, error) {
		return v.Verify(token)
	}
}

// RequireSession rejects requests without a valid bearer token and stores
// the caller's id and claims on the context.
func RequireSession(v TokenVerifier) gin.HandlerFunc {
	return session(v, false)
}

// OptionalSession verifies a bearer token when one is sent. Requests
// without one pass through with no caller id; a bad token is still rejected.
func OptionalSession(v TokenVerifier) gin.HandlerFunc {
	return session(v, true)
}

func session(v TokenVerifier, optional bool) gin.HandlerFunc {
	errorHandler := func(w http.ResponseWriter, r *http.Request, err error) {
		config.GetLogger().Debug("Rejected session token", zap.Error(err), zap.String("path", r.URL.Path))

		message := "Invalid or expired token"
		if errors.Is(err, jwtmiddleware.ErrJWTMissing) {
			message = "Authorization token is required"
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		body := `{"success":false,"error":{"code":"UNAUTHORIZED","message":"` + message + `","status_code":401}}`
		if _, writeErr := w.Write([]byte(body)); writeErr != nil {
			config.GetLogger().Warn("Failed to write error response", zap.Error(writeErr))
		}
	}

	mw := jwtmiddleware.New(
		validateWith(v),
		jwtmiddleware.WithErrorHandler(errorHandler),
		jwtmiddleware.WithCredentialsOptional(optional),
	)

	return func(c *gin.Context) {
		passed := false
		var handler http.HandlerFunc = func(w http.ResponseWriter, r *http.Request) {
			passed = true
			c.Request = r
			if claims, ok := r.Context().Value(jwtmiddleware.ContextKey{}).(*services.SessionClaims); ok {
				c.Set(userIDKey, claims.Name)
				c.Set(claimsKey, claims)
			}
			c.Next()
		}

		mw.CheckJWT(handler).ServeHTTP(c.Writer, c.Request)
		if !passed {
			c.Abort()
		}
	}
}

// RequireTokenCategory allows only sessions whose category code is one of
// codes. Requests without a session pass through; combine with
// RequireSession to make the token mandatory.
func RequireTokenCategory(codes ...int) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := GetClaims(c)
		if !ok {
			c.Next()
			return
		}
		code, err := claims.Code()
		if err == nil {
			for _, allowed := range codes {
				if code == allowed {
					c.Next()
					return
				}
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":        "FORBIDDEN",
				"message":     "This token cannot be used for this action",
				"status_code": http.StatusForbidden,
			},
		})
	}
}

// GetUserID returns the caller's user id, empty when the request carries
// no session.
func GetUserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}

// GetClaims returns the verified session claims.
func GetClaims(c *gin.Context) (*services.SessionClaims, bool) {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*services.SessionClaims)
	return claims, ok
}

// SetSession stores a caller on the context, as a verified token would.
func SetSession(c *gin.Context, claims *services.SessionClaims) {
	c.Set(userIDKey, claims.Name)
	c.Set(claimsKey, claims)
}
