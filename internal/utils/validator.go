package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// ValidationErrorDetail represents the structure of a single validation error.
type ValidationErrorDetail struct {
	Field    string      `json:"field"`
	Message  string      `json:"message"`
	Expected string      `json:"expected"`
	Received interface{} `json:"received"`
}

// ValidationErrorData represents the data field in the validation error response.
type ValidationErrorData struct {
	Errors        []ValidationErrorDetail `json:"errors"`
	Documentation string                  `json:"documentation"`
}

const DocumentationLink = "/swagger/index.html"

// UseJSONFieldNames makes validation errors report json tag names instead of
// Go field names. Call it once while building the router.
func UseJSONFieldNames() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	}
}

// BindAndValidate binds the request body to the given object and validates it.
// If validation fails, it sends a formatted error response and returns false.
// If validation succeeds, it returns true.
func BindAndValidate(c *gin.Context, obj interface{}) bool {
	err := c.ShouldBindJSON(obj)
	if err == nil {
		return true
	}
	respondBindError(c, err)
	return false
}

// BindAndValidateOptional is BindAndValidate for bodies that may be absent.
// An empty body leaves obj at its zero value.
func BindAndValidateOptional(c *gin.Context, obj interface{}) bool {
	err := c.ShouldBindJSON(obj)
	if err == nil || errors.Is(err, io.EOF) {
		return true
	}
	respondBindError(c, err)
	return false
}

func respondBindError(c *gin.Context, err error) {
	response := Response{
		Status:  http.StatusBadRequest,
		Message: "Invalid request parameters",
		Data: ValidationErrorData{
			Errors:        validationDetails(err),
			Documentation: DocumentationLink,
		},
	}
	if details := response.Data.(ValidationErrorData).Errors; len(details) > 0 {
		response.Message = details[0].Message
	}

	c.AbortWithStatusJSON(http.StatusBadRequest, response)
}

func validationDetails(err error) []ValidationErrorDetail {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		details := make([]ValidationErrorDetail, 0, len(validationErrors))
		for _, e := range validationErrors {
			details = append(details, fieldErrorDetail(e))
		}
		return details
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return []ValidationErrorDetail{{
			Field:    typeErr.Field,
			Message:  fmt.Sprintf("Field '%s' has invalid type", typeErr.Field),
			Expected: typeErr.Type.String(),
			Received: typeErr.Value,
		}}
	}

	return []ValidationErrorDetail{{
		Field:    "body",
		Message:  "Malformed JSON or invalid request body",
		Expected: "valid JSON",
		Received: "invalid",
	}}
}

func fieldErrorDetail(e validator.FieldError) ValidationErrorDetail {
	detail := ValidationErrorDetail{
		Field:    e.Field(),
		Message:  fmt.Sprintf("Field validation for '%s' failed on the '%s' tag", e.Field(), e.Tag()),
		Expected: e.Param(),
		Received: e.Value(),
	}
	if detail.Expected == "" {
		detail.Expected = e.Tag()
	}

	switch e.Tag() {
	case "required":
		detail.Message = fmt.Sprintf("Field '%s' is required", e.Field())
		detail.Expected = "not null"
	case "email":
		detail.Message = fmt.Sprintf("Field '%s' must be a valid email address", e.Field())
		detail.Expected = "email format"
	case "min":
		detail.Message = fmt.Sprintf("Field '%s' must be at least %s characters long", e.Field(), e.Param())
		detail.Expected = fmt.Sprintf("min length %s", e.Param())
	case "max":
		detail.Message = fmt.Sprintf("Field '%s' must be at most %s characters long", e.Field(), e.Param())
		detail.Expected = fmt.Sprintf("max length %s", e.Param())
	}
	return detail
}
