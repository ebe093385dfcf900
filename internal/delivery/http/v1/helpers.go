package v1

import (
	"errors"
	"io"
	"strconv"

	"go-jobboard-backend/internal/usecase"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// bindJSON decodes the request body into req, turning binding failures into
// a VALIDATION_ERROR with readable details.
func bindJSON(c *gin.Context, req interface{}) error {
	err := c.ShouldBindJSON(req)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return apperror.BadRequest("Validation failed").WithDetails(validation.FormatValidationErrors(err))
	}
	if errors.Is(err, io.EOF) {
		return apperror.BadRequest("Request body is required")
	}
	return apperror.BadRequest("Invalid JSON body")
}

func pathID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperror.BadRequest("Invalid " + name)
	}
	return id, nil
}

// currentUserID returns the user bound by SessionMiddleware.
func currentUserID(c *gin.Context) (string, error) {
	return usecase.RequireAuthenticated(c.Request.Context())
}

func queryInt(c *gin.Context, name string, fallback int) int {
	v, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return fallback
	}
	return v
}
