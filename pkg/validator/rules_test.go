package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/watersmet/identity/pkg/validator"
)

func TestApply(t *testing.T) {
	t.Parallel()

	t.Run("collects all failures", func(t *testing.T) {
		t.Parallel()
		err := validator.Apply(
			validator.Required("email", ""),
			validator.Required("password", ""),
		)
		require.Error(t, err)

		var verrs validator.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.Len(t, verrs, 2)
		assert.ElementsMatch(t, []string{"email", "password"}, verrs.Fields())
	})

	t.Run("nil on success", func(t *testing.T) {
		t.Parallel()
		err := validator.Apply(validator.Required("email", "a@x.com"))
		require.NoError(t, err)
	})
}

func TestValidEmail(t *testing.T) {
	t.Parallel()

	valid := []string{"a@x.com", "user.name+tag@example.co.uk"}
	for _, email := range valid {
		assert.NoError(t, validator.Apply(validator.ValidEmail("email", email)), email)
	}

	invalid := []string{"", "not-an-email", "a@", "@x.com", "Name <a@x.com>"}
	for _, email := range invalid {
		assert.Error(t, validator.Apply(validator.ValidEmail("email", email)), email)
	}
}

func TestStrongPassword(t *testing.T) {
	t.Parallel()

	cfg := validator.DefaultPasswordStrength

	assert.NoError(t, validator.Apply(validator.StrongPassword("password", "Aa1!aaaa", cfg)))
	assert.NoError(t, validator.Apply(validator.StrongPassword("password", "lowercase1", cfg)))

	assert.Error(t, validator.Apply(validator.StrongPassword("password", "short1A", cfg)), "too short")
	assert.Error(t, validator.Apply(validator.StrongPassword("password", "alllowercase", cfg)), "single class")
}

func TestNumericCode(t *testing.T) {
	t.Parallel()

	assert.NoError(t, validator.Apply(validator.NumericCode("code", "123456", 6)))
	assert.Error(t, validator.Apply(validator.NumericCode("code", "12345", 6)))
	assert.Error(t, validator.Apply(validator.NumericCode("code", "12345a", 6)))
}

func TestOneOf(t *testing.T) {
	t.Parallel()

	assert.NoError(t, validator.Apply(validator.OneOf("role", "driver", "customer", "driver")))
	assert.Error(t, validator.Apply(validator.OneOf("role", "root", "customer", "driver")))
}

func TestIsValidationError(t *testing.T) {
	t.Parallel()

	err := validator.Apply(validator.Required("email", ""))
	assert.True(t, validator.IsValidationError(err))
	assert.False(t, validator.IsValidationError(nil))
	assert.False(t, validator.IsValidationError(assert.AnError))
}
