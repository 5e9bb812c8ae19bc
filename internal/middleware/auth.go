package middleware

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/lshigami/Hireboard/internal/dto"
	"github.com/lshigami/Hireboard/internal/model"
	"github.com/rs/zerolog/log"
)

const (
	ContextUserID = "userID"
	ContextRole   = "userRole"
)

// Claims identifies the caller. Role is either model.RoleCandidate or
// model.RoleRecruiter.
type Claims struct {
	UserID uint       `json:"uid"`
	Role   model.Role `json:"role"`
	jwt.RegisteredClaims
}

// SignToken issues an HS256 token for userID with the given role.
func SignToken(secret []byte, userID uint, role model.Role, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprint(userID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func parseToken(secret []byte, tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.UserID == 0 {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

// AuthMiddleware validates the bearer token and stores the caller's id and role
// on the context.
func AuthMiddleware(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Authorization header is required"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Authorization header must be in the format: Bearer {token}"})
			return
		}
		if len(secret) == 0 {
			log.Error().Msg("AuthMiddleware: JWT secret is not configured")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Invalid or expired token"})
			return
		}

		claims, err := parseToken(secret, strings.TrimSpace(parts[1]))
		if err != nil {
			log.Debug().Err(err).Msg("AuthMiddleware: token validation failed")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Invalid or expired token"})
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextRole, claims.Role)
		c.Next()
	}
}

// RequireRole rejects callers whose token carries a different role.
func RequireRole(role model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if got, _ := c.Get(ContextRole); got != role {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.ErrorResponse{Message: fmt.Sprintf("this endpoint requires the %s role", role)})
			return
		}
		c.Next()
	}
}

// RequireCandidate and RequireRecruiter are the two role gates used by the router.
var (
	RequireCandidate = RequireRole(model.RoleCandidate)
	RequireRecruiter = RequireRole(model.RoleRecruiter)
)

// UserID returns the authenticated caller's id.
func UserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(ContextUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok && id != 0
}
