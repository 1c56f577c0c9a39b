package middleware

import (
	"context"
	"errors"
	"net/http"
	"path"

	"github.com/bracken1022/prompt-museum/internal/models"
	"github.com/bracken1022/prompt-museum/internal/services"
	"github.com/bracken1022/prompt-museum/internal/utils"

	"github.com/gin-gonic/gin"
)

const (
	ContextUserKey  = "user"
	ContextTokenKey = "token"
)

// Visibility says whether a route needs a signed-in user.
type Visibility int

const (
	Public Visibility = iota
	Protected
)

// Policy maps "METHOD /full/path" to the visibility of that route.
type Policy map[string]Visibility

// Handle registers a route on group and records its visibility.
func (p Policy) Handle(group *gin.RouterGroup, vis Visibility, method, relativePath string, handlers ...gin.HandlerFunc) {
	p[policyKey(method, joinPaths(group.BasePath(), relativePath))] = vis
	group.Handle(method, relativePath, handlers...)
}

func (p Policy) visibility(method, fullPath string) (Visibility, bool) {
	vis, ok := p[policyKey(method, fullPath)]
	return vis, ok
}

func policyKey(method, fullPath string) string {
	return method + " " + fullPath
}

// joinPaths mirrors gin's own joining so keys match c.FullPath().
func joinPaths(base, relative string) string {
	if relative == "" {
		return base
	}
	joined := path.Join(base, relative)
	if relative[len(relative)-1] == '/' && joined[len(joined)-1] != '/' {
		return joined + "/"
	}
	return joined
}

// Authenticator resolves a bearer token to a user.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*models.User, error)
}

// AccessGuard enforces policy for every matched route. It must be installed
// on the engine before any route is registered. Requests that match no route
// pass through so the router can answer 404; matched routes missing from the
// policy are treated as protected.
func AccessGuard(policy Policy, auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		fullPath := c.FullPath()
		if fullPath == "" {
			c.Next()
			return
		}
		if vis, ok := policy.visibility(c.Request.Method, fullPath); ok && vis == Public {
			c.Next()
			return
		}

		tokenString, err := utils.ExtractToken(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, err.Error()))
			return
		}

		user, err := auth.Authenticate(c.Request.Context(), tokenString)
		if err != nil {
			if errors.Is(err, services.ErrUnauthorized) {
				utils.RespondError(c, err)
				return
			}
			_ = c.Error(err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to check token status"))
			return
		}

		c.Set(ContextUserKey, *user)
		c.Set(ContextTokenKey, tokenString)
		c.Next()
	}
}

// CurrentUser returns the user stored by AccessGuard.
func CurrentUser(c *gin.Context) (models.User, bool) {
	v, ok := c.Get(ContextUserKey)
	if !ok {
		return models.User{}, false
	}
	user, ok := v.(models.User)
	return user, ok
}

// CurrentToken returns the bearer token accepted by AccessGuard.
func CurrentToken(c *gin.Context) string {
	return c.GetString(ContextTokenKey)
}
