package validator

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"anoa.com/sccams/pkg/apperror"
	"github.com/go-playground/validator/v10"
)

// MinPasswordLength is the shortest plaintext password accepted on create.
const MinPasswordLength = 8

// MaxPasswordBytes is bcrypt's input limit. Longer passwords are refused
// rather than silently truncated.
const MaxPasswordBytes = 72

var validate = validator.New()

// Credentials is the raw creation input shared by every personnel kind.
// Role carries level for students and position for everyone else.
type Credentials struct {
	Code     string `validate:"required"`
	Name     string `validate:"required"`
	Email    string `validate:"required"`
	Password string `validate:"required"`
	Number   string `validate:"required"`
	Address  string `validate:"required"`
	Role     string `validate:"required"`
	HasImage bool   `validate:"required"`
}

// ValidateCredentials applies the creation rules in order and stops at the
// first failure: presence, email syntax, then password length.
func ValidateCredentials(in Credentials) error {
	in.Code = strings.TrimSpace(in.Code)
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Number = strings.TrimSpace(in.Number)
	in.Address = strings.TrimSpace(in.Address)
	in.Role = strings.TrimSpace(in.Role)

	if err := validate.Struct(in); err != nil {
		return apperror.ErrMissingFields
	}
	if err := ValidateEmail(in.Email); err != nil {
		return err
	}
	if err := validate.Var(in.Password, "min="+strconv.Itoa(MinPasswordLength)); err != nil {
		return apperror.ErrWeakPassword
	}
	if len(in.Password) > MaxPasswordBytes {
		return apperror.ErrWeakPassword
	}
	return nil
}

// ValidateEmail reports ErrInvalidEmail unless email is syntactically valid.
func ValidateEmail(email string) error {
	if err := validate.Var(email, "required,email"); err != nil {
		return apperror.ErrInvalidEmail
	}
	return nil
}

// BindingError converts a failed request bind into a client error. Rule
// violations are reported per field; anything else, such as a malformed body,
// becomes fallback.
func BindingError(err, fallback error) error {
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return fallback
	}
	return apperror.New(http.StatusBadRequest, FormatValidationError(fieldErrors), apperror.ErrBadRequest)
}

// FormatValidationError renders binding errors from request DTOs.
func FormatValidationError(err error) string {
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return err.Error()
	}
	messages := make([]string, 0, len(fieldErrors))
	for _, fieldError := range fieldErrors {
		messages = append(messages, getFieldErrorMessage(fieldError))
	}
	return strings.Join(messages, "; ")
}

func getFieldErrorMessage(fe validator.FieldError) string {
	field := fe.Field()
	if field != "" {
		field = strings.ToLower(field[:1]) + field[1:]
	}

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email", field)
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
