package validation

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

func TestValidPhoneTag(t *testing.T) {
	v := validator.New()
	RegisterValidators(v)

	cases := []struct {
		name  string
		phone string
		valid bool
	}{
		{"local format", "987654321", true},
		{"country code with plus", "+51987654321", true},
		{"spaced gateway format", "+51 987 654 321", true},
		{"dashed local format", "987-654-321", true},
		{"landline", "014567890", false},
		{"too short", "98765432", false},
		{"other country code", "+54987654321", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := v.Var(tc.phone, "valid_phone")
			if tc.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidNameTag(t *testing.T) {
	v := validator.New()
	RegisterValidators(v)

	assert.NoError(t, v.Var("María del Carmen O'Brien", "valid_name"))
	assert.Error(t, v.Var("Juan123", "valid_name"))
}
