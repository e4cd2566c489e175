package util

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/jmcole/inkwell-be/db"
)

type HTTPError struct {
	Status  int
	Message string
	// Fields carries per-field validation messages, when the failure is a
	// form validation failure.
	Fields map[string]string
}

func (he *HTTPError) Error() string {
	return fmt.Sprintf("%v (statusCode=%v)", he.Message, he.Status)
}

var MalformedIdHTTPErr = HTTPError{
	Message: "id malformed",
	Status:  http.StatusBadRequest,
}

// BuildDbHTTPErr maps a store error to a response: lookup misses become a
// 404, anything else a generic 500.
func BuildDbHTTPErr(err error) *HTTPError {
	if errors.Is(err, db.ErrNotFound) {
		return &HTTPError{
			Status:  http.StatusNotFound,
			Message: "resource not found",
		}
	}
	log.Println("database error occurred", err)
	return &HTTPError{
		Status:  http.StatusInternalServerError,
		Message: "database error",
	}
}

// BuildJSONBindHTTPErr converts a binding failure into a validation
// response. Field constraint violations keep their per-field messages so
// the submission form can be re-rendered with them.
func BuildJSONBindHTTPErr(err error) *HTTPError {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		fields := make(map[string]string, len(validationErrs))
		for _, fieldErr := range validationErrs {
			fields[fieldErr.Field()] = fieldMessage(fieldErr)
		}
		return &HTTPError{
			Status:  http.StatusBadRequest,
			Message: "validation failed",
			Fields:  fields,
		}
	}
	return &HTTPError{
		Status:  http.StatusBadRequest,
		Message: err.Error(),
	}
}

func fieldMessage(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return "this field is required"
	case "max":
		return fmt.Sprintf("must be at most %v characters", fieldErr.Param())
	default:
		return fmt.Sprintf("failed %v validation", fieldErr.Tag())
	}
}

type HandlerOpts struct{}

type Handler func(c *gin.Context) (interface{}, *HTTPError)

// HandlerWrapper adapts a (data, *HTTPError) handler to gin. Handlers that
// already wrote the response (redirects, cached bytes) return (nil, nil)
// and the wrapper stays out of the way.
func HandlerWrapper(handler Handler, opts *HandlerOpts) gin.HandlerFunc {
	return func(c *gin.Context) {
		data, httpErr := handler(c)
		if httpErr != nil {
			HandleHTTPErrorRes(c, httpErr)
			return
		}
		if c.Writer.Written() {
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    data,
		})
	}
}

/*
	HandleHTTPErrorRes handles creating the appropriate response for the HTTP error.
	break the route after calling this function
*/
func HandleHTTPErrorRes(c *gin.Context, err *HTTPError) {
	body := gin.H{
		"success": false,
		"message": err.Message,
	}
	if err.Fields != nil {
		body["fields"] = err.Fields
	}
	c.JSON(err.Status, body)
}
