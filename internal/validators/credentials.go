package validators

import (
	"context"
	"fmt"
	"net/mail"
)

// Field name constants used to specify which fields should be validated.
// They are passed to Validate to restrict validation to a subset of
// fields (field-level scoping).
const (
	// FieldEmail targets the identity's email address.
	FieldEmail = "email"

	// FieldPassword targets the plaintext password of a register, login
	// or password-change request.
	FieldPassword = "password"
)

// Credentials is the validated shape of an email/password pair.
type Credentials struct {
	Email    string
	Password string
}

// CredentialsValidator implements the Validator interface for the
// email/password pairs accepted by the register, login and
// password-change operations.
//
// It supports both value and pointer receivers and allows optional
// field-level scoping via variadic field name arguments.
type CredentialsValidator struct {
}

// NewCredentialsValidator constructs a new CredentialsValidator
// and returns it as the Validator interface.
func NewCredentialsValidator() Validator {
	return &CredentialsValidator{}
}

// Validate dispatches validation to the credentials checks. With no
// field names given, every field is validated.
func (v *CredentialsValidator) Validate(_ context.Context, obj any, fields ...string) error {
	switch credentials := obj.(type) {
	case Credentials:
		return v.validateCredentials(credentials, fields...)
	case *Credentials:
		return v.validateCredentials(*credentials, fields...)
	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedType, obj)
	}
}

func (v *CredentialsValidator) validateCredentials(credentials Credentials, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldEmail, FieldPassword}
	}

	for _, field := range fields {
		switch field {
		case FieldEmail:
			if credentials.Email == "" {
				return ErrEmptyEmail
			}
			if _, err := mail.ParseAddress(credentials.Email); err != nil {
				return fmt.Errorf("%w: %w", ErrMalformedEmail, err)
			}
		case FieldPassword:
			if credentials.Password == "" {
				return ErrEmptyPassword
			}
		default:
			return fmt.Errorf("%w: %s", ErrUnknownField, field)
		}
	}

	return nil
}
