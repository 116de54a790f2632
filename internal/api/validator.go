package api

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// requestValidator plugs go-playground/validator into echo's c.Validate.
type requestValidator struct {
	validate *validator.Validate
}

func newRequestValidator() *requestValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"json", "form"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return fld.Name
	})
	return &requestValidator{validate: v}
}

func (v *requestValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

type fieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

// bindAndValidate decodes the request into v. It writes the 400/422 response
// itself and reports false when the handler should stop.
func bindAndValidate(c echo.Context, v interface{}) (bool, error) {
	if err := c.Bind(v); err != nil {
		return false, c.JSON(http.StatusBadRequest, detail("Invalid request payload"))
	}

	if err := c.Validate(v); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return false, c.JSON(http.StatusBadRequest, detail("Invalid request payload"))
		}
		fields := make([]fieldError, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fieldError{Field: fe.Field(), Rule: fe.Tag()})
		}
		return false, c.JSON(http.StatusUnprocessableEntity, map[string]interface{}{
			"detail": "Validation failed",
			"errors": fields,
		})
	}

	return true, nil
}
