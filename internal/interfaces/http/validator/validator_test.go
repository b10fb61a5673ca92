package validator

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type spaceForm struct {
	Name string `validate:"required,spacename"`
}

func TestSpaceNameRule(t *testing.T) {
	v := validator.New()
	require.NoError(t, RegisterOn(v))

	tests := []struct {
		name  string
		input string
		valid bool
	}{
		{"simple", "product-launch", true},
		{"underscore", "q3_review", true},
		{"too short", "ab", false},
		{"space inside", "my space", false},
		{"slash", "a/b/c", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(spaceForm{Name: tt.input})
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestRegister_GinEngine(t *testing.T) {
	assert.NoError(t, Register())
}
