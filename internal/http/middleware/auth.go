package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/credfacil/promotora-backend/internal/pkg/ctxutil"
	"github.com/credfacil/promotora-backend/internal/pkg/logger"
)

// AuthMiddleware verifies the bearer token and attaches the actor to the
// request context. Issuing tokens is someone else's job; the domain services
// downstream trust whatever actor arrives here.
type AuthMiddleware struct {
	log    *logger.Logger
	secret []byte
}

func NewAuthMiddleware(log *logger.Logger, secret string) *AuthMiddleware {
	return &AuthMiddleware{
		log:    log.With("middleware", "AuthMiddleware"),
		secret: []byte(secret),
	}
}

type actorClaims struct {
	SellerID string `json:"seller_id"`
	Admin    bool   `json:"admin"`
	jwt.RegisteredClaims
}

func (am *AuthMiddleware) RequireActor() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{"message": "missing or invalid token", "code": "unauthorized"},
			})
			return
		}

		actor, err := am.parseActor(tokenString)
		if err != nil {
			am.log.Debug("token rejected", "error", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{"message": err.Error(), "code": "unauthorized"},
			})
			return
		}

		c.Request = c.Request.WithContext(ctxutil.WithActor(c.Request.Context(), actor))
		c.Next()
	}
}

func (am *AuthMiddleware) parseActor(tokenString string) (*ctxutil.Actor, error) {
	var claims actorClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return am.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	actorID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("invalid subject claim: %w", err)
	}

	actor := &ctxutil.Actor{ID: actorID, Admin: claims.Admin}
	if claims.SellerID != "" {
		sellerID, err := uuid.Parse(claims.SellerID)
		if err != nil {
			return nil, fmt.Errorf("invalid seller_id claim: %w", err)
		}
		actor.SellerID = sellerID
	}
	return actor, nil
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
		return authHeader[7:]
	}
	return ""
}
