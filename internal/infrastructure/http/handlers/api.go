// Package handlers provides HTTP handlers for the REST API
package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/stockchef/stockchef/internal/infrastructure/security"
	"github.com/stockchef/stockchef/pkg/errors"
)

// respondError pushes the error into gin's error list so the
// ErrorHandler middleware renders a consistent payload.
func respondError(c *gin.Context, err error) {
	_ = c.Error(errors.Wrap(err, "request failed"))
	c.Abort()
}

// bindJSON binds the request body and converts binding failures into
// validation errors.
func bindJSON(c *gin.Context, target interface{}) bool {
	if err := c.ShouldBindJSON(target); err != nil {
		respondError(c, formatBindingError(err))
		return false
	}
	return true
}

// currentUserID reads the authenticated user id set by the auth middleware
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	id, ok := security.UserIDFromContext(c)
	if !ok {
		respondError(c, errors.NewUnauthorizedError(""))
		return uuid.Nil, false
	}
	return id, true
}

func formatBindingError(err error) *errors.AppError {
	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return errors.NewBadRequestError("Invalid request body")
	}

	fields := make([]errors.ValidationError, 0, len(validationErrs))
	for _, fe := range validationErrs {
		fields = append(fields, errors.ValidationError{
			Field:   fe.Field(),
			Value:   fe.Value(),
			Tag:     fe.Tag(),
			Message: validationMessage(fe),
		})
	}

	return errors.NewValidationErrors(fields)
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
	}
}

// HealthCheck handles GET /health
func HealthCheck(version string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": version,
		})
	}
}
