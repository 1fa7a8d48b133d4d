package api

import (
	"campusbooks/backend/pkg/errors"
	"campusbooks/backend/pkg/session"
	"campusbooks/backend/user/models"
	"campusbooks/backend/user/service"

	"github.com/gin-gonic/gin"
)

const accountKey = "account"

// ResolveAccount returns a middleware that resolves the session identity to
// a canonical account and stores it in the context. Must run after
// session.Middleware.
func ResolveAccount(directory *service.Directory) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := session.IdentityFrom(c)
		if !ok {
			c.Error(errors.NewUnauthorizedError("UNAUTHENTICATED", "No authenticated identity"))
			c.Abort()
			return
		}

		account, err := directory.Resolve(identity.Email, identity.Name, identity.Picture)
		if err != nil {
			c.Error(err)
			c.Abort()
			return
		}

		c.Set(accountKey, account)
		c.Set("accountID", account.ID)
		c.Next()
	}
}

// AccountFrom returns the resolved caller account stored by ResolveAccount.
func AccountFrom(c *gin.Context) (*models.Account, bool) {
	v, ok := c.Get(accountKey)
	if !ok {
		return nil, false
	}
	account, ok := v.(*models.Account)
	return account, ok
}
