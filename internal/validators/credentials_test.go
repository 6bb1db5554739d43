package validators

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCredentials() Credentials {
	return Credentials{
		Email:    "user@example.com",
		Password: "secret",
	}
}

func TestNewCredentialsValidator(t *testing.T) {
	v := NewCredentialsValidator()
	require.NotNil(t, v)
}

func TestCredentialsValidator_Valid(t *testing.T) {
	v := NewCredentialsValidator()

	assert.NoError(t, v.Validate(context.Background(), validCredentials()))
}

func TestCredentialsValidator_PointerReceiver(t *testing.T) {
	v := NewCredentialsValidator()

	credentials := validCredentials()
	assert.NoError(t, v.Validate(context.Background(), &credentials))
}

func TestCredentialsValidator_EmptyEmail(t *testing.T) {
	v := NewCredentialsValidator()

	credentials := validCredentials()
	credentials.Email = ""

	assert.ErrorIs(t, v.Validate(context.Background(), credentials), ErrEmptyEmail)
}

func TestCredentialsValidator_MalformedEmail(t *testing.T) {
	v := NewCredentialsValidator()

	credentials := validCredentials()
	credentials.Email = "not-an-address"

	assert.ErrorIs(t, v.Validate(context.Background(), credentials), ErrMalformedEmail)
}

func TestCredentialsValidator_EmptyPassword(t *testing.T) {
	v := NewCredentialsValidator()

	credentials := validCredentials()
	credentials.Password = ""

	assert.ErrorIs(t, v.Validate(context.Background(), credentials), ErrEmptyPassword)
}

func TestCredentialsValidator_FieldScoping(t *testing.T) {
	v := NewCredentialsValidator()

	// Password-only scoping skips the empty email.
	credentials := Credentials{Password: "secret"}
	assert.NoError(t, v.Validate(context.Background(), credentials, FieldPassword))

	// Email-only scoping skips the empty password.
	credentials = Credentials{Email: "user@example.com"}
	assert.NoError(t, v.Validate(context.Background(), credentials, FieldEmail))
}

func TestCredentialsValidator_UnknownField(t *testing.T) {
	v := NewCredentialsValidator()

	assert.ErrorIs(t, v.Validate(context.Background(), validCredentials(), "avatar"), ErrUnknownField)
}

func TestCredentialsValidator_UnsupportedType(t *testing.T) {
	v := NewCredentialsValidator()

	assert.ErrorIs(t, v.Validate(context.Background(), 42), ErrUnsupportedType)
}
