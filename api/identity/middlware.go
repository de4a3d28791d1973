package identity

import (
	"net/http"
	"strings"

	"github.com/beka-birhanu/circuit-maze/service/i"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// ContextUserClaims is the key used to store user claims in the Gin context.
	ContextUserClaims = "userClaims"
)

// Authoriz rejects requests without a valid bearer token and stores the token claims in the
// context.
func Authoriz(ts i.Tokenizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Retrieve the access token from the Authorization header.
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatus(http.StatusUnauthorized) // No token found in the header.
			return
		}

		// Split the "Bearer" prefix from the token.
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			c.AbortWithStatus(http.StatusUnauthorized) // Malformed Authorization header.
			return
		}

		claims, err := ts.Decode(parts[1])
		if err != nil {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		// Attach user claims to the request context for further use.
		c.Set(ContextUserClaims, claims)
		c.Next()
	}
}

// Player returns the ID and username carried by the claims that Authoriz stored.
func Player(c *gin.Context) (uuid.UUID, string, bool) {
	raw, ok := c.Get(ContextUserClaims)
	if !ok {
		return uuid.Nil, "", false
	}
	claims, ok := raw.(map[string]interface{})
	if !ok {
		return uuid.Nil, "", false
	}

	idString, _ := claims["userID"].(string)
	id, err := uuid.Parse(idString)
	if err != nil {
		return uuid.Nil, "", false
	}
	username, _ := claims["username"].(string)
	return id, username, true
}
