package handler

import (
	"backend/internal/access"
	"backend/pkg/response"
	"net/http"

	"github.com/gin-gonic/gin"
)

// fail is the single translation point from the access error taxonomy to HTTP
// responses. Anything outside the taxonomy is an internal error; its details
// stay out of the response body.
func fail(c *gin.Context, err error) {
	if accessErr, ok := access.AsError(err); ok {
		c.JSON(accessErr.Status, response.Error(accessErr.Status, accessErr.Message))
		return
	}
	c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "internal server error"))
}

// bindJSON decodes and validates the request body, reporting binding failures
// as 400 validation errors
func bindJSON(c *gin.Context, dest interface{}) bool {
	if err := c.ShouldBindJSON(dest); err != nil {
		fail(c, access.ErrValidation("invalid request payload: "+err.Error()))
		return false
	}
	return true
}
