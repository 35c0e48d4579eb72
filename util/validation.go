package util

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Allowed age range for a patient.
const (
	MinAge = 0
	MaxAge = 130
)

// Age parsing failures.
var (
	ErrAgeNotNumber  = errors.New("age must be a number")
	ErrAgeOutOfRange = fmt.Errorf("age must be between %d and %d", MinAge, MaxAge)
)

// GenderCodes lists the accepted gender codes.
var GenderCodes = []string{"M", "F", "O"}

var validate *validator.Validate

var validationMessages = map[string]string{
	"required": "is required",
	"numeric":  "must be a number",
	"age":      fmt.Sprintf("must be between %d and %d", MinAge, MaxAge),
	"oneof":    "must be one of %s",
	"datetime": "must be a date in YYYY-MM-DD format",
}

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})
	_ = validate.RegisterValidation("age", validateAge)
}

// ValidateStruct runs the validate tags of s and returns a readable error.
func ValidateStruct(s interface{}) error {
	if err := validate.Struct(s); err != nil {
		return errors.New(FormatValidationErrors(err))
	}
	return nil
}

// FormatValidationErrors turns validator errors into "field message" pairs.
func FormatValidationErrors(err error) string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err.Error()
	}

	messages := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		message, ok := validationMessages[fe.Tag()]
		if !ok {
			message = "is invalid"
		}
		if fe.Tag() == "oneof" {
			message = fmt.Sprintf(message, strings.Join(strings.Fields(fe.Param()), ", "))
		}
		messages = append(messages, fe.Field()+" "+message)
	}
	return strings.Join(messages, ", ")
}

// ParseAge validates an age string and returns its canonical form ("007" becomes "7").
func ParseAge(value string) (string, error) {
	age, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return "", ErrAgeNotNumber
	}
	if age < MinAge || age > MaxAge {
		return "", ErrAgeOutOfRange
	}
	return strconv.Itoa(age), nil
}

// ParseGender upper-cases value and checks it is an accepted gender code.
func ParseGender(value string) (string, error) {
	gender := strings.ToUpper(strings.TrimSpace(value))
	if !Contains(gender, GenderCodes) {
		return "", fmt.Errorf("gender must be one of %s", strings.Join(GenderCodes, ", "))
	}
	return gender, nil
}

func validateAge(fl validator.FieldLevel) bool {
	_, err := ParseAge(fl.Field().String())
	return err == nil
}
