package middleware

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/CareMeshHealth/hospital-scheduler/internal/config"
	"github.com/CareMeshHealth/hospital-scheduler/internal/tokens"
)

const (
	ContextUserID   = "userID"
	ContextUserRole = "userRole"
	ContextTokenID  = "tokenID"
	ContextTokenExp = "tokenExp"
)

func AuthMiddleware(cfg *config.Config, denylist *tokens.Denylist) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing_authorization_header"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_authorization_header"})
			return
		}

		token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenMalformed
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token_claims"})
			return
		}

		userID, ok1 := claims["sub"].(string)
		role, ok2 := claims["role"].(string)
		jti, _ := claims["jti"].(string)
		exp, _ := claims["exp"].(float64)
		if !ok1 || !ok2 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token_payload"})
			return
		}

		if denylist != nil && jti != "" {
			revoked, err := denylist.IsRevoked(c.Request.Context(), jti)
			if err != nil {
				// Redis being down must not take authentication with it.
				log.Println("denylist check failed:", err)
			} else if revoked {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token_revoked"})
				return
			}
		}

		c.Set(ContextUserID, userID)
		c.Set(ContextUserRole, role)
		c.Set(ContextTokenID, jti)
		c.Set(ContextTokenExp, int64(exp))

		c.Next()
	}
}
