package middleware

import (
	ierr "github.com/billfold/billfold/internal/errors"
	"github.com/billfold/billfold/internal/types"
	"github.com/gin-gonic/gin"
)

// ErrorHandler turns errors pushed via c.Error into JSON responses.
// Only hints and reportable details reach the client; the underlying
// error chain stays server-side.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err

		requestID, _ := c.Request.Context().Value(types.CtxRequestID).(string)
		c.JSON(ierr.HTTPStatusFromErr(err), ierr.NewErrorResponse(err, requestID))
	}
}
