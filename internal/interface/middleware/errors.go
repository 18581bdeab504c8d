package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/campdir/campdir-api/pkg/apperr"
	"github.com/campdir/campdir-api/pkg/response"
)

// ErrorHandler is the error normalization layer: handlers record failures
// with c.Error and return, and this middleware maps the last one to the
// uniform {success:false, error} envelope. Unclassified errors are logged
// and collapse to a bare 500.
func ErrorHandler(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err
		status, msg := apperr.Normalize(err)
		if status >= http.StatusInternalServerError && logger != nil {
			logger.WithError(err).
				WithFields(logrus.Fields{
					"method":     c.Request.Method,
					"path":       c.Request.URL.Path,
					"request_id": c.GetString(CtxRequestIDKey),
				}).Error("request failed")
		}
		response.Fail(c, status, msg)
	}
}
