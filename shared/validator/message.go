package validator

import (
	"errors"
	"fmt"

	val "github.com/go-playground/validator/v10"
)

type formatter func(field, param string) string

func fixed(text string) formatter {
	return func(field, _ string) string {
		return field + " " + text
	}
}

func bound(text string) formatter {
	return func(field, param string) string {
		return fmt.Sprintf("%s %s %s", field, text, param)
	}
}

var formatters = map[string]formatter{
	"required":  fixed("is required"),
	"notblank":  fixed("must not be blank"),
	"email":     fixed("must be a valid email address"),
	"timestamp": fixed("must be a timestamp like 2006-01-02T15:04:05"),
	"gt":        bound("must be greater than"),
	"gte":       bound("must be greater than or equal to"),
	"min":       bound("must be at least"),
	"lt":        bound("must be less than"),
	"lte":       bound("must be less than or equal to"),
	"max":       bound("must be at most"),
	"oneof":     bound("must be one of"),
}

// describe renders the first violation that has a known message.
func describe(err error) string {
	var violations val.ValidationErrors
	if !errors.As(err, &violations) {
		return err.Error()
	}

	for _, violation := range violations {
		field := violation.Field()
		if field == "" {
			field = "value"
		}

		if format, ok := formatters[violation.Tag()]; ok {
			return format(field, violation.Param())
		}
	}

	return violations.Error()
}
