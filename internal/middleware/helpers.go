// internal/middleware/helpers.go
package middleware

import (
	"net/http"
	"strconv"

	"homescout-service/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// ParseIDParam reads a path parameter as an int64 ID, replying 400 on a bad
// value.
func ParseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "invalid "+name, err)
		return 0, false
	}
	return id, true
}
