package middleware

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"bengol-backend/internal/auth"
)

// AuthGuard validates the bearer token and injects the typed actor into the
// context for downstream role gates and handlers.
func AuthGuard(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.GetHeader("Authorization"))
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "missing token"})
			return
		}

		parts := strings.Split(raw, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "invalid token"})
			return
		}

		token, err := jwt.Parse(parts[1], func(t *jwt.Token) (interface{}, error) {
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			log.Println("[AUTH] [ERROR] token validation failed:", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "unauthorized"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "unauthorized"})
			return
		}

		actor, err := auth.FromClaims(claims)
		if err != nil {
			log.Println("[AUTH] [ERROR] actor claims invalid:", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "unauthorized"})
			return
		}

		c.Set("actor", actor)
		c.Next()
	}
}

// AgentOnly admits field agents.
func AgentOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := actorFromContext(c).(auth.Agent); !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "message": "Agent access only"})
			return
		}
		c.Next()
	}
}

// BackOfficeOnly admits admins and employees.
func BackOfficeOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		switch actorFromContext(c).(type) {
		case auth.Admin, auth.Employee:
			c.Next()
		default:
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "message": "Access denied"})
		}
	}
}

// PartnerOnly admits delivery partners.
func PartnerOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := actorFromContext(c).(auth.DeliveryPartner); !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "message": "Delivery partner access only"})
			return
		}
		c.Next()
	}
}

func actorFromContext(c *gin.Context) auth.Actor {
	value, ok := c.Get("actor")
	if !ok {
		return nil
	}
	actor, _ := value.(auth.Actor)
	return actor
}
