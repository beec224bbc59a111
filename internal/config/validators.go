package config

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/idelchi/gogen/pkg/validator"

	"github.com/idelchi/spha/pkg/spha"
)

// register adds the custom rules with human-readable error messages and
// reports fields by their flag label.
func register(v *validator.Validator) error {
	rules := []struct {
		tag      string
		fn       func(validator.FieldLevel) bool
		template string
	}{
		{tag: "exclusive", fn: validateExclusive, template: "{0} is mutually exclusive with {1}"},
		{tag: "vector", fn: validateVector, template: "{0} must be three comma-separated numbers"},
		{tag: "float64", fn: validateFloat, template: "{0} must be a number or a 0x-prefixed bit pattern"},
	}

	for _, rule := range rules {
		if err := v.RegisterValidationAndTranslation(rule.tag, rule.fn, rule.template); err != nil {
			return fmt.Errorf("registering %s validation: %w", rule.tag, err)
		}
	}

	v.Validator().RegisterTagNameFunc(func(fld reflect.StructField) string {
		const splitSize = 2

		name := strings.SplitN(fld.Tag.Get("label"), ",", splitSize)[0]
		if name == "" || name == "-" {
			return fld.Name
		}

		return name
	})

	return nil
}

// validateExclusive fails when the field and the sibling labelled by the
// parameter are both set.
func validateExclusive(fl validator.FieldLevel) bool {
	field := fl.Field()
	other := siblingByLabel(fl.Parent(), fl.Param())

	if !field.IsValid() || !other.IsValid() {
		return true
	}

	return field.IsZero() || other.IsZero()
}

// siblingByLabel returns the field of parent whose label tag is label.
func siblingByLabel(parent reflect.Value, label string) reflect.Value {
	if parent.Kind() == reflect.Pointer {
		parent = parent.Elem()
	}

	if parent.Kind() != reflect.Struct {
		return reflect.Value{}
	}

	for i := range parent.NumField() {
		if parent.Type().Field(i).Tag.Get("label") == label {
			return parent.Field(i)
		}
	}

	return reflect.Value{}
}

// validateVector accepts empty strings; required-ness is a separate rule.
func validateVector(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}

	_, err := parseVector(value)

	return err == nil
}

func validateFloat(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}

	_, err := spha.ParseFloat(value)

	return err == nil
}
