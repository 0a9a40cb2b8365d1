package middleware

import (
	"github.com/branchbooks/ledger_backend/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// callerKey is the key used to store the authenticated caller in the request
// context. Using a custom type prevents collisions.
const callerKey = contextKey("caller")

// GetCallerFromContext retrieves the authenticated caller from the Gin
// context. It returns the caller and a boolean indicating if it was found.
func GetCallerFromContext(c *gin.Context) (domain.Caller, bool) {
	callerVal := c.Request.Context().Value(callerKey)
	if callerVal == nil {
		return domain.Caller{}, false
	}

	caller, ok := callerVal.(domain.Caller)
	if !ok {
		return domain.Caller{}, false
	}
	return caller, true
}
