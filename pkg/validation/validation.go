// Package validation turns struct tag violations into field/message pairs.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/alimikegami/product-catalog-service/pkg/errs"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})

	// decimals are compared as floats so numeric tags (gte, lte) apply to them
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})

	return v
}

// Validate checks data and returns an *errs.ValidationError listing every
// violated field, or nil.
func Validate(data interface{}) error {
	err := validate.Struct(data)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	fields := make([]errs.FieldError, 0, len(validationErrs))
	for _, fe := range validationErrs {
		fields = append(fields, errs.FieldError{
			Field:   fieldPath(fe),
			Message: message(fe),
		})
	}

	return &errs.ValidationError{Fields: fields}
}

// fieldPath drops the root struct name from the namespace, e.g.
// "ProductRequest.presentacion.id" becomes "presentacion.id".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func message(fe validator.FieldError) string {
	name := fieldPath(fe)

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", name)
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", name, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", name, fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters long", name, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters long", name, fe.Param())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", name)
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", name, fe.Param())
	}

	return fmt.Sprintf("%s is invalid (%s)", name, fe.Tag())
}
