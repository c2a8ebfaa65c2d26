// Package validator decodes request bodies and checks them against their validate tags.
package validator

import (
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"shareit/shared/constant"
	"shareit/shared/failure"
	"strings"
	"time"

	val "github.com/go-playground/validator/v10"
)

var validate = newValidate()

var timestampLayouts = []string{
	constant.DateFormat,
	constant.LocalDateFormat,
}

func newValidate() *val.Validate {
	v := val.New(val.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(jsonName)

	custom := map[string]val.Func{
		"timestamp": isTimestamp,
		"notblank":  isNotBlank,
	}

	for tag, fn := range custom {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(fmt.Sprintf("register %s validation: %v", tag, err))
		}
	}

	return v
}

// jsonName reports fields under the name the client sent them as.
func jsonName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")

	switch name {
	case "-":
		return ""
	case "":
		return field.Name
	default:
		return name
	}
}

func isTimestamp(field val.FieldLevel) bool {
	str, ok := field.Field().Interface().(string)
	if !ok {
		return false
	}

	_, err := ParseTimestamp(str, time.UTC)

	return err == nil
}

func isNotBlank(field val.FieldLevel) bool {
	str, ok := field.Field().Interface().(string)
	if !ok {
		return !field.Field().IsZero()
	}

	return strings.TrimSpace(str) != ""
}

// ParseTimestamp accepts an RFC3339 timestamp or a zone-less local timestamp
// (2006-01-02T15:04:05), the latter read in loc.
func ParseTimestamp(value string, loc *time.Location) (time.Time, error) {
	var lastErr error

	for _, layout := range timestampLayouts {
		parsed, err := time.ParseInLocation(layout, value, loc)
		if err == nil {
			return parsed, nil
		}

		lastErr = err
	}

	return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", value, lastErr)
}

// Validate decodes a JSON body from r into data and validates the result.
func Validate[T any](r io.Reader, data *T) error {
	if err := json.NewDecoder(r).Decode(data); err != nil {
		return failure.BadRequest(fmt.Errorf("failed to decode request body: %w", err)) //nolint:wrapcheck
	}

	return ValidateStruct(data)
}

func ValidateStruct[T any](data *T) error {
	return check(validate.Struct(data))
}

func ValidateVar(field any, tag string) error {
	return check(validate.Var(field, tag))
}

func check(err error) error {
	if err == nil {
		return nil
	}

	return failure.BadRequestFromString(describe(err)) //nolint:wrapcheck
}
