// Package httpx holds the echo glue shared by every handler: request binding
// and validation, and the stable error body.
package httpx

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/sudo-init-do/solosphere/internal/apperr"
	"github.com/sudo-init-do/solosphere/internal/logger"
)

// Validator adapts go-playground/validator to echo.Validator. Field names in
// errors are the JSON names of the request struct.
type Validator struct {
	v *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	return &Validator{v: v}
}

// Validate returns an apperr validation error naming the first offending field.
func (cv *Validator) Validate(i interface{}) error {
	err := cv.v.Struct(i)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return apperr.ValidationField(fe.Field(), describe(fe))
	}
	return apperr.Wrap(err, apperr.ErrCodeValidation, "invalid request")
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "email":
		return fe.Field() + " must be a valid email"
	case "gt":
		return fe.Field() + " must be greater than " + fe.Param()
	case "gte", "min":
		return fe.Field() + " must be at least " + fe.Param()
	case "oneof":
		return fe.Field() + " must be one of: " + fe.Param()
	default:
		return fe.Field() + " is invalid"
	}
}

// Bind decodes the request into req and validates it.
func Bind(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return apperr.Wrap(err, apperr.ErrCodeValidation, "invalid request")
	}
	return c.Validate(req)
}

// Body builds the stable error body for err.
func Body(err error) (int, echo.Map) {
	code := apperr.GetCode(err)
	status := apperr.HTTPStatus(code)

	msg := "internal server error"
	var appErr *apperr.AppError
	if errors.As(err, &appErr) && code != apperr.ErrCodeInternal {
		msg = appErr.Message
	}

	body := echo.Map{"error": msg, "code": string(code)}
	if appErr != nil && appErr.Field != "" {
		body["field"] = appErr.Field
	}
	if code == apperr.ErrCodeInvalidTransition || code == apperr.ErrCodeStaleStatus {
		body["modified"] = false
	}
	return status, body
}

// Error writes err with the stable body. Internal errors are logged with their
// cause and answered without it.
func Error(c echo.Context, log *logger.Logger, err error) error {
	status, body := Body(err)
	if status >= http.StatusInternalServerError {
		log.Error("request failed",
			"method", c.Request().Method,
			"path", c.Path(),
			"error", err,
		)
	}
	return c.JSON(status, body)
}

// HTTPErrorHandler renders errors that escape handlers, including echo's own
// 404/405 and middleware errors, with the stable body.
func HTTPErrorHandler(log *logger.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		var he *echo.HTTPError
		if errors.As(err, &he) {
			msg := http.StatusText(he.Code)
			if s, ok := he.Message.(string); ok && s != "" {
				msg = s
			}
			err = &apperr.AppError{Code: codeForStatus(he.Code), Message: msg, Cause: he.Internal}
			if he.Code >= http.StatusInternalServerError {
				err = apperr.Wrap(he, apperr.ErrCodeInternal, "internal server error")
			}
		}
		status, body := Body(err)
		if he != nil && he.Code < http.StatusInternalServerError {
			status = he.Code
		}
		if status >= http.StatusInternalServerError {
			log.Error("unhandled error", "method", c.Request().Method, "path", c.Path(), "error", err)
		}
		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, body)
		}
		if err != nil {
			log.Error("failed to write error response", "error", err)
		}
	}
}

func codeForStatus(status int) apperr.ErrorCode {
	switch status {
	case http.StatusBadRequest, http.StatusUnsupportedMediaType, http.StatusRequestEntityTooLarge:
		return apperr.ErrCodeValidation
	case http.StatusUnauthorized:
		return apperr.ErrCodeUnauthorized
	case http.StatusForbidden:
		return apperr.ErrCodeForbidden
	case http.StatusNotFound, http.StatusMethodNotAllowed:
		return apperr.ErrCodeNotFound
	case http.StatusConflict:
		return apperr.ErrCodeConflict
	default:
		return apperr.ErrCodeInternal
	}
}
