package auth

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"promo-console/internal/apierrors"
	"promo-console/internal/observability"
)

var (
	ErrInvalidJWTToken = errors.New("invalid jwt token")
	ErrParseJWTToken   = errors.New("failed to parse jwt token")
)

// AdminIDKey is the gin context key carrying the authenticated admin subject.
const AdminIDKey = "Admin-ID"

// Guard protects the console API with HS256 bearer tokens issued by the
// platform's admin identity service. An empty secret disables the guard, for
// local development against a store with no auth in front of it.
type Guard struct {
	jwtSecret string
	logger    *observability.Logger
}

func New(jwtSecret string, logger *observability.Logger) *Guard {
	return &Guard{jwtSecret: jwtSecret, logger: logger}
}

// IsEnabled reports whether a secret is configured.
func (g *Guard) IsEnabled() bool {
	return g.jwtSecret != ""
}

// ValidateToken parses and verifies a bearer token.
func (g *Guard) ValidateToken(token string) (jwt.RegisteredClaims, error) {
	var claims jwt.RegisteredClaims
	t, err := jwt.ParseWithClaims(token, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(g.jwtSecret), nil
	})
	if err != nil {
		return jwt.RegisteredClaims{}, ErrParseJWTToken
	}
	if !t.Valid {
		return jwt.RegisteredClaims{}, ErrInvalidJWTToken
	}
	return claims, nil
}

// Middleware rejects requests without a valid bearer token and records the
// token subject on the request context.
func (g *Guard) Middleware(c *gin.Context) {
	tokenHeader := c.GetHeader("Authorization")
	if tokenHeader == "" || !strings.HasPrefix(tokenHeader, "Bearer ") {
		apierrors.Unauthorized(c, "Authorization token is missing or invalid")
		c.Abort()
		return
	}
	tokenString := strings.TrimPrefix(tokenHeader, "Bearer ")

	claims, err := g.ValidateToken(tokenString)
	if err != nil {
		apierrors.Unauthorized(c, "Authorization token is missing or invalid")
		c.Abort()
		return
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		apierrors.Unauthorized(c, "Authorization token is missing or invalid")
		c.Abort()
		return
	}
	c.Set(AdminIDKey, sub)
	c.Next()
}
