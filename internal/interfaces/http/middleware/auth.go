package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/helios/backend/internal/domain/seller"
	"github.com/helios/backend/internal/infrastructure/auth"
)

// JWT context keys
const (
	JWTClaimsKey  = "jwt_claims"
	JWTUserIDKey  = "jwt_user_id"
	JWTEmailKey   = "jwt_email"
	JWTIsAdminKey = "jwt_is_admin"
	SellerKey     = "seller_profile"
	AuthHeaderKey = "Authorization"
	BearerPrefix  = "Bearer "
)

// RequireAuth creates JWT authentication middleware.
// Requests without a valid bearer token are rejected with 401.
func RequireAuth(jwtService *auth.JWTService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := claimsFromHeader(c, jwtService)
		if err != nil {
			handleAuthError(c, logger, err)
			return
		}

		setClaims(c, claims)
		c.Next()
	}
}

// OptionalAuth extracts claims when a valid bearer token is present but
// never rejects the request. Guest checkout and public browsing rely on it.
func OptionalAuth(jwtService *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := claimsFromHeader(c, jwtService)
		if err == nil {
			setClaims(c, claims)
		}
		c.Next()
	}
}

// RequireAdmin rejects requests whose token does not carry the admin flag.
// Must run after RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !GetIsAdmin(c) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "ERR_FORBIDDEN",
					"message": "Administrator access required",
				},
			})
			return
		}
		c.Next()
	}
}

// RequireSeller resolves the authenticated user's active seller profile
// and stores it in the context. Requests from users without an approved
// profile are rejected. Must run after RequireAuth.
func RequireSeller(sellerRepo seller.SellerRepository, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := GetUserID(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "ERR_UNAUTHORIZED",
					"message": "Authentication required",
				},
			})
			return
		}

		vendor, err := sellerRepo.FindByUserID(c.Request.Context(), userID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "ERR_FORBIDDEN",
					"message": "Seller profile required",
				},
			})
			return
		}
		if !vendor.IsActive {
			logger.Debug("inactive seller rejected",
				zap.String("seller_id", vendor.ID.String()))
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "ERR_FORBIDDEN",
					"message": "Seller profile is awaiting approval",
				},
			})
			return
		}

		c.Set(SellerKey, vendor)
		c.Next()
	}
}

// claimsFromHeader extracts and validates the bearer token
func claimsFromHeader(c *gin.Context, jwtService *auth.JWTService) (*auth.Claims, error) {
	authHeader := c.GetHeader(AuthHeaderKey)
	if authHeader == "" {
		return nil, auth.ErrInvalidToken
	}
	if !strings.HasPrefix(authHeader, BearerPrefix) {
		return nil, auth.ErrInvalidToken
	}

	tokenString := strings.TrimPrefix(authHeader, BearerPrefix)
	if tokenString == "" {
		return nil, auth.ErrInvalidToken
	}

	return jwtService.Validate(tokenString)
}

// setClaims stores validated claims in the gin context
func setClaims(c *gin.Context, claims *auth.Claims) {
	c.Set(JWTClaimsKey, claims)
	c.Set(JWTUserIDKey, claims.UserID)
	c.Set(JWTEmailKey, claims.Email)
	c.Set(JWTIsAdminKey, claims.IsAdmin)
}

// handleAuthError rejects the request with 401
func handleAuthError(c *gin.Context, logger *zap.Logger, err error) {
	if logger != nil {
		logger.Warn("authentication failed",
			zap.Error(err),
			zap.String("path", c.Request.URL.Path))
	}

	errorCode := "ERR_UNAUTHORIZED"
	errorMessage := "Authentication required"

	switch err {
	case auth.ErrExpiredToken:
		errorCode = "ERR_TOKEN_EXPIRED"
		errorMessage = "Token has expired"
	case auth.ErrInvalidToken:
		errorCode = "ERR_TOKEN_INVALID"
		errorMessage = "Invalid token"
	}

	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"error": gin.H{
			"code":    errorCode,
			"message": errorMessage,
		},
	})
}

// GetUserID retrieves the authenticated user's ID from gin.Context
func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	raw := c.GetString(JWTUserIDKey)
	if raw == "" {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// GetEmail retrieves the authenticated user's email from gin.Context
func GetEmail(c *gin.Context) string {
	return c.GetString(JWTEmailKey)
}

// GetIsAdmin reports whether the authenticated user is an administrator
func GetIsAdmin(c *gin.Context) bool {
	return c.GetBool(JWTIsAdminKey)
}

// GetSeller retrieves the resolved seller profile from gin.Context.
// Only set after RequireSeller has run.
func GetSeller(c *gin.Context) *seller.Seller {
	if v, exists := c.Get(SellerKey); exists {
		if s, ok := v.(*seller.Seller); ok {
			return s
		}
	}
	return nil
}
