package handlers

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/JonnyWalker81/tempo/internal/apierror"
	"github.com/JonnyWalker81/tempo/internal/logger"
	"github.com/JonnyWalker81/tempo/internal/middleware"
	"github.com/JonnyWalker81/tempo/internal/service"
)

func init() {
	// Report json/form names instead of Go field names
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(wireName)
	}
}

func wireName(f reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
		name, _, _ := strings.Cut(f.Tag.Get(tag), ",")
		if name != "" && name != "-" {
			return name
		}
	}
	return f.Name
}

// currentUser returns the authenticated user id or writes a 401
func currentUser(c *gin.Context) (string, bool) {
	userID := c.GetString(middleware.UserIDKey)
	if userID == "" {
		apierror.WriteProblem(c, apierror.NewUnauthorizedError(apierror.GetRequestID(c)))
		return "", false
	}
	return userID, true
}

// writeBindError turns binding failures into a validation problem listing
// every field, or a bad request when the body could not be parsed at all
func writeBindError(c *gin.Context, err error) {
	requestID := apierror.GetRequestID(c)

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		apierror.WriteProblem(c, apierror.NewBadRequestError(requestID, err.Error(), "The request could not be read"))
		return
	}

	fields := make([]apierror.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, apierror.FieldError{
			Field:   fe.Field(),
			Message: fieldMessage(fe),
			Code:    fe.Tag(),
		})
	}
	apierror.WriteProblem(c, apierror.NewValidationError(requestID, fields))
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "datetime":
		return fmt.Sprintf("must be a date formatted as %s", fe.Param())
	case "timezone":
		return "must be an IANA time zone"
	case "uuid":
		return "must be a UUID"
	default:
		return fmt.Sprintf("failed validation: %s", fe.Tag())
	}
}

// writeServiceError maps service errors to problems. Anything unexpected
// is logged with msg and reported as a 500 without the cause.
func writeServiceError(c *gin.Context, err error, msg string) {
	requestID := apierror.GetRequestID(c)

	var verr *service.ValidationError
	var nf *service.NotFoundError
	switch {
	case errors.As(err, &verr):
		apierror.WriteProblem(c, apierror.NewValidationError(requestID, []apierror.FieldError{
			{Field: verr.Field, Message: verr.Message, Code: "invalid"},
		}))
	case errors.As(err, &nf):
		apierror.WriteProblem(c, apierror.NewNotFoundError(requestID, nf.Resource, nf.ID))
	default:
		logger.Ctx(c.Request.Context()).Error(msg, logger.Err(err))
		apierror.WriteProblem(c, apierror.NewInternalError(requestID))
	}
}
