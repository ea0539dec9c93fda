package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/webbongda/matchday/pkg/apperr"
	"github.com/webbongda/matchday/repos/store"
)

const userKey = "user"

// UserFinder resolves the subject of a token to a stored user.
type UserFinder interface {
	GetUserByMSV(ctx context.Context, msv string) (*store.User, error)
}

// AuthMiddleware requires a valid bearer token whose subject is an active
// user, and attaches that user to the context.
func AuthMiddleware(creds *Credentials, users UserFinder) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		scheme, tokenStr, ok := strings.Cut(authHeader, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || tokenStr == "" {
			apperr.Respond(c, apperr.New(apperr.Unauthorized, "Authorization header is missing"))
			return
		}

		claims, err := creds.ValidateToken(strings.TrimSpace(tokenStr))
		if err != nil {
			apperr.Respond(c, apperr.New(apperr.Unauthorized, "could not validate credentials"))
			return
		}

		user, err := users.GetUserByMSV(c, claims.Subject)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				apperr.Respond(c, apperr.New(apperr.Unauthorized, "could not validate credentials"))
				return
			}
			apperr.Respond(c, err)
			return
		}
		if !user.IsActive {
			apperr.Respond(c, apperr.New(apperr.AccountDisabled, "account is disabled, contact an administrator"))
			return
		}

		c.Set(userKey, user)
		c.Next()
	}
}

// Allowed reports whether role is one of allowed.
func Allowed(role string, allowed []string) bool {
	for _, r := range allowed {
		if role == r {
			return true
		}
	}
	return false
}

// RequireRole must run after AuthMiddleware.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil || !Allowed(user.Role, roles) {
			apperr.Respond(c, apperr.New(apperr.Forbidden, "you are not allowed to perform this action"))
			return
		}
		c.Next()
	}
}

// CurrentUser returns the user attached by AuthMiddleware, or nil.
func CurrentUser(c *gin.Context) *store.User {
	v, ok := c.Get(userKey)
	if !ok {
		return nil
	}
	user, _ := v.(*store.User)
	return user
}
