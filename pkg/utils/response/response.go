// Package response provides gin reply helpers. Successful replies carry
// the entity itself; failures carry {code, reason, message}.
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"minioj/pkg/errors"
	"minioj/pkg/utils/logger"
)

// ErrorBody is the wire shape of a failed request.
type ErrorBody struct {
	Code    int    `json:"code"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

// OK sends a 200 response whose body is the entity itself.
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Error sends an error response, mapping the kind to its HTTP status.
func Error(c *gin.Context, err error) {
	e := errors.From(err)

	logger.Warn(c.Request.Context(), "request failed",
		zap.Int("code", e.Kind.Code()),
		zap.String("reason", e.Kind.Reason()),
		zap.String("message", e.Error()),
	)

	c.JSON(e.Kind.HTTPStatus(), ErrorBody{
		Code:    e.Kind.Code(),
		Reason:  e.Kind.Reason(),
		Message: e.Error(),
	})
}

// BadRequest sends an InvalidArgument error with the given message.
func BadRequest(c *gin.Context, message string) {
	Error(c, errors.New(errors.InvalidArgument, message))
}

// NotFound sends a NotFound error with the given message.
func NotFound(c *gin.Context, message string) {
	Error(c, errors.New(errors.NotFound, message))
}
