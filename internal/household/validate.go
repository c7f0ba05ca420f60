package household

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/terrago/carbon-advisor/internal/types"
)

// Problem is a single field-level validation failure.
type Problem struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// validate is built once; validator.Validate caches struct metadata and is safe for concurrent use.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Report json field names so errors match the input document keys.
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})

	if err := v.RegisterValidation("solar", func(fl validator.FieldLevel) bool {
		value := strings.TrimSpace(fl.Field().String())
		return strings.EqualFold(value, "yes") || strings.EqualFold(value, "no")
	}); err != nil {
		panic(fmt.Sprintf("failed to register solar validation: %v", err))
	}

	if err := v.RegisterValidation("postcode", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	}); err != nil {
		panic(fmt.Sprintf("failed to register postcode validation: %v", err))
	}

	return v
}

// Validate checks every field constraint of the profile and returns an
// *InvalidProfileError describing the first violation, or nil.
func Validate(profile *types.HouseholdProfile) error {
	problems := Check(profile)
	if len(problems) == 0 {
		return nil
	}
	return &InvalidProfileError{
		Field:   problems[0].Field,
		Message: problems[0].Message,
	}
}

// Check returns every field constraint the profile violates, in field order.
func Check(profile *types.HouseholdProfile) []Problem {
	if profile == nil {
		return []Problem{{Message: "profile is nil"}}
	}

	return problemsFrom(validate.Struct(profile))
}

func problemsFrom(err error) []Problem {
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []Problem{{Message: err.Error()}}
	}

	problems := make([]Problem, 0, len(validationErrors))
	for _, fe := range validationErrors {
		problems = append(problems, Problem{
			Field:   fe.Field(),
			Message: describe(fe),
		})
	}
	return problems
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be >= %s, got %v", fe.Param(), fe.Value())
	case "oneof":
		return fmt.Sprintf("must be one of [%s], got %q", strings.ReplaceAll(fe.Param(), " ", ", "), fe.Value())
	case "postcode":
		return "must not be blank"
	case "solar":
		return fmt.Sprintf("must be \"yes\" or \"no\", got %q", fe.Value())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
