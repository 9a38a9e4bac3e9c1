package handler

import (
    "errors"
    "fmt"
    "reflect"
    "strings"

    "github.com/go-playground/validator/v10"
    "github.com/labstack/echo/v4"
)

// Validator adapts go-playground/validator to echo.Validator.  Field
// names in messages are the json tag names clients send.
type Validator struct {
    v *validator.Validate
}

// NewValidator builds the validator installed on the echo instance.
func NewValidator() *Validator {
    v := validator.New(validator.WithRequiredStructEnabled())
    v.RegisterTagNameFunc(func(f reflect.StructField) string {
        name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
        if name == "-" {
            return ""
        }
        return name
    })
    return &Validator{v: v}
}

func (cv *Validator) Validate(i interface{}) error { return cv.v.Struct(i) }

// errInvalidBody is returned by bindValid when the payload cannot be
// decoded.
var errInvalidBody = errors.New("invalid body")

// bindValid decodes the request into req and validates it.  The returned
// error is safe to show to the client.
func bindValid(c echo.Context, req interface{}) error {
    if err := c.Bind(req); err != nil {
        return errInvalidBody
    }
    if err := c.Validate(req); err != nil {
        return validationMessage(err)
    }
    return nil
}

// validationMessage reports the first failed rule in plain words.
func validationMessage(err error) error {
    var ve validator.ValidationErrors
    if !errors.As(err, &ve) || len(ve) == 0 {
        return errInvalidBody
    }
    fe := ve[0]
    switch fe.Tag() {
    case "required":
        return fmt.Errorf("%s is required", fe.Field())
    case "email":
        return fmt.Errorf("%s must be a valid email", fe.Field())
    case "min":
        return fmt.Errorf("%s must be at least %s", fe.Field(), fe.Param())
    case "max":
        return fmt.Errorf("%s must be at most %s", fe.Field(), fe.Param())
    case "oneof":
        return fmt.Errorf("%s must be one of: %s", fe.Field(), fe.Param())
    }
    return fmt.Errorf("%s is invalid", fe.Field())
}
