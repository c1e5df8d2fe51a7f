package response

import (
	domainerrors "cling-reminder.backend/internal/domain/errors"
	"github.com/gin-gonic/gin"
)

// Success sends a success response
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

// Error sends an error response. Unknown errors are masked as a
// generic internal error; only AppError messages reach the caller.
func Error(c *gin.Context, err error) {
	var appErr *domainerrors.AppError
	if e, ok := err.(*domainerrors.AppError); ok {
		appErr = e
	} else {
		appErr = domainerrors.InternalError(err)
	}

	c.JSON(appErr.Status, gin.H{
		"message": appErr.Message,
	})
}
