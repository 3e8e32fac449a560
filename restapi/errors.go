package restapi

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// fail writes the plain-text "InternalServerError: <detail>" body every
// route failure uses, parameter-validation included.
func fail(c *gin.Context, format string, args ...any) {
	c.String(http.StatusInternalServerError, "InternalServerError: %s", fmt.Sprintf(format, args...))
}
