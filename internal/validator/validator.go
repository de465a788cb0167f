// Package validator registers custom validation rules with Gin's binding
// engine and turns validation failures into per-field messages.
package validator

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"expensebook/internal/calendar"
)

// ErrInvalidDate is returned by ParseDate for values in neither accepted layout.
var ErrInvalidDate = errors.New("invalid date")

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(fieldName)
		_ = v.RegisterValidation("month_short", validateMonthShort)
	}
}

// fieldName reports fields by their json (or form) name so messages line up
// with what the client sent.
func fieldName(f reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
		name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return f.Name
}

func validateMonthShort(fl validator.FieldLevel) bool {
	return calendar.IsMonthName(fl.Field().String())
}

// FieldErrors converts a binding error into a field -> message map. The
// second result is false when err carries no per-field information.
func FieldErrors(err error) (map[string]string, bool) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			if _, seen := fields[fe.Field()]; !seen {
				fields[fe.Field()] = message(fe)
			}
		}
		return fields, true
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return map[string]string{
			typeErr.Field: fmt.Sprintf("Expected %s, received %s", typeErr.Type.Kind(), typeErr.Value),
		}, true
	}

	return nil, false
}

func message(fe validator.FieldError) string {
	isString := fe.Kind() == reflect.String
	switch fe.Tag() {
	case "required":
		return "Required"
	case "email":
		return "Invalid email"
	case "month_short":
		return "Invalid month"
	case "min":
		if isString {
			return fmt.Sprintf("String must contain at least %s character(s)", fe.Param())
		}
		return fmt.Sprintf("Number must be greater than or equal to %s", fe.Param())
	case "max":
		if isString {
			return fmt.Sprintf("String must contain at most %s character(s)", fe.Param())
		}
		return fmt.Sprintf("Number must be less than or equal to %s", fe.Param())
	case "gte":
		return fmt.Sprintf("Number must be greater than or equal to %s", fe.Param())
	case "lt":
		return fmt.Sprintf("Number must be less than %s", fe.Param())
	default:
		return "Invalid value"
	}
}

// Amount is a decimal amount sent either as a JSON number or as a string.
type Amount string

// UnmarshalJSON accepts both 12.5 and "12.5".
func (a *Amount) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*a = Amount(s)
		return nil
	}
	if string(b) == "null" {
		*a = ""
		return nil
	}
	*a = Amount(b)
	return nil
}

// Float64 parses the amount. Non-finite values are rejected.
func (a Amount) Float64() (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(string(a)), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("amount %q is not a finite number", string(a))
	}
	return f, nil
}

// ParseDate parses a form date. A blank value yields nil; "2006-01-02"
// means midnight UTC of that day and RFC 3339 timestamps are kept as sent.
func ParseDate(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	if t, err := time.Parse(calendar.DateLayout, value); err == nil {
		return &t, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return &t, nil
	}
	return nil, ErrInvalidDate
}
