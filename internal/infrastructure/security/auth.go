// Package security provides authentication services and middleware
package security

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/stockchef/stockchef/internal/infrastructure/config"
)

// ContextUserIDKey is the gin context key carrying the authenticated user id.
const ContextUserIDKey = "user_id"

// AuthService provides password hashing, token issuance and revocation.
// The Redis client is optional: without it logout cannot revoke tokens,
// which is logged and otherwise tolerated.
type AuthService struct {
	config      *config.Config
	logger      *zap.Logger
	redisClient *redis.Client
	jwtSecret   []byte
}

// NewAuthService creates a new authentication service
func NewAuthService(cfg *config.Config, logger *zap.Logger, redisClient *redis.Client) *AuthService {
	return &AuthService{
		config:      cfg,
		logger:      logger.Named("auth-service"),
		redisClient: redisClient,
		jwtSecret:   []byte(cfg.Auth.JWTSecret),
	}
}

// Claims represents JWT claims structure
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// GenerateAccessToken creates a signed access token for the user
func (a *AuthService) GenerateAccessToken(userID uuid.UUID, email string) (string, error) {
	now := time.Now()
	claims := &Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "stockchef",
			Subject:   userID.String(),
			Audience:  []string{"stockchef-api"},
			ExpiresAt: jwt.NewNumericDate(now.Add(a.config.Auth.JWTExpiration)),
			NotBefore: jwt.NewNumericDate(now),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.New().String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(a.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// ValidateToken validates and parses a JWT token
func (a *AuthService) ValidateToken(ctx context.Context, tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return a.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}

	if revoked, err := a.isTokenRevoked(ctx, claims.ID); err != nil {
		a.logger.Warn("Failed to check token revocation", zap.Error(err))
	} else if revoked {
		return nil, fmt.Errorf("token has been revoked")
	}

	return claims, nil
}

// RevokeToken adds the token's jti to the revocation list until its expiry
func (a *AuthService) RevokeToken(ctx context.Context, claims *Claims) error {
	if a.redisClient == nil {
		a.logger.Warn("Token revocation skipped, no Redis client configured")
		return nil
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}

	key := fmt.Sprintf("revoked_token:%s", claims.ID)
	return a.redisClient.Set(ctx, key, "revoked", ttl).Err()
}

// HashPassword securely hashes a password using bcrypt
func (a *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), a.config.Auth.BCryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword verifies a password against its hash
func (a *AuthService) VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

func (a *AuthService) isTokenRevoked(ctx context.Context, tokenID string) (bool, error) {
	if a.redisClient == nil {
		return false, nil
	}

	key := fmt.Sprintf("revoked_token:%s", tokenID)
	exists, err := a.redisClient.Exists(ctx, key).Result()
	return exists > 0, err
}

// AuthMiddleware provides JWT authentication middleware
func (a *AuthService) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			c.Abort()
			return
		}

		claims, err := a.ValidateToken(c.Request.Context(), parts[1])
		if err != nil {
			a.logger.Info("Token validation failed",
				zap.String("error", err.Error()),
				zap.String("ip", c.ClientIP()),
			)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		userID, err := uuid.Parse(claims.Subject)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		c.Set(ContextUserIDKey, userID)
		c.Set("user_email", claims.Email)
		c.Set("token_claims", claims)

		c.Next()
	}
}

// UserIDFromContext extracts the authenticated user id set by AuthMiddleware
func UserIDFromContext(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get(ContextUserIDKey)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := value.(uuid.UUID)
	return id, ok
}
