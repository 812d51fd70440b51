package response

import (
	"net/http"

	"anoa.com/sccams/pkg/apperror"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Convention selects how a route reports failures.
type Convention int

const (
	// Legacy answers 200 and signals failure only through success=false.
	Legacy Convention = iota
	// Strict answers with the status mapped from the error.
	Strict
)

// Status returns the HTTP status used for err under the convention.
func (c Convention) Status(err error) int {
	if c == Strict {
		return apperror.MapErrorToStatus(err)
	}
	return http.StatusOK
}

// Success writes {success:true, ...payload} with 200.
func Success(c *gin.Context, payload gin.H) {
	body := gin.H{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(http.StatusOK, body)
}

// Fail writes {success:false, message} using the route's convention.
func Fail(c *gin.Context, conv Convention, logger *zap.Logger, err error) {
	if apperror.MapErrorToStatus(err) >= http.StatusInternalServerError && logger != nil {
		logger.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
	}

	c.JSON(conv.Status(err), gin.H{"success": false, "message": apperror.Message(err)})
}

// Abort is Fail for middleware: it also stops the handler chain.
func Abort(c *gin.Context, conv Convention, err error) {
	c.AbortWithStatusJSON(conv.Status(err), gin.H{"success": false, "message": apperror.Message(err)})
}
