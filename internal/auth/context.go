// internal/auth/context.go
package auth

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/salehkamalkamel/rofida-furniture-backend/internal/models"
	"github.com/salehkamalkamel/rofida-furniture-backend/internal/utils"
)

// ContextKey is where the middleware stores verified claims on the request.
const ContextKey = "auth_context"

// Context identifies the caller for every core service operation. Services
// receive it as an explicit argument; nothing reads identity from ambient
// request state.
type Context struct {
	UserID      uuid.UUID
	Email       string
	Name        string
	Role        models.UserRole
	IsAnonymous bool
}

func (c Context) IsAdmin() bool {
	return c.Role == models.UserRoleAdmin
}

// FromClaims builds a Context from verified JWT claims.
func FromClaims(claims *utils.JWTClaims) (Context, error) {
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return Context{}, err
	}

	return Context{
		UserID:      userID,
		Email:       claims.Email,
		Name:        claims.Name,
		Role:        models.UserRole(claims.Role),
		IsAnonymous: claims.IsAnonymous,
	}, nil
}

// FromGin pulls the Context the auth middleware stored on the request.
func FromGin(c *gin.Context) (Context, bool) {
	value, exists := c.Get(ContextKey)
	if !exists {
		return Context{}, false
	}

	authCtx, ok := value.(Context)
	return authCtx, ok
}
