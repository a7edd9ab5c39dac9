package validate

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signup struct {
	Name     string `json:"fname" validate:"required,max=19"`
	Email    string `json:"email" validate:"required,skillswap_email"`
	Password string `json:"password" validate:"skillswap_password"`
}

func TestStruct_ReportsJSONFieldNames(t *testing.T) {
	err := New().Struct(signup{Name: "", Email: "nobody.example.com", Password: "123"})
	require.Error(t, err)

	var ve *Error
	require.True(t, errors.As(err, &ve))
	assert.True(t, ve.Has("fname"))
	assert.True(t, ve.Has("email"))
	assert.True(t, ve.Has("password"))
	assert.Contains(t, ve.Error(), "email: must be a valid email address")
}

func TestStruct_Valid(t *testing.T) {
	assert.NoError(t, New().Struct(signup{Name: "Ada", Email: "ada@example.com", Password: "secret1"}))
}

func TestIsEmail(t *testing.T) {
	cases := map[string]bool{
		"a@b.c":       true,
		"ada@mail.io": true,
		"no-at.io":    false,
		"a@b":         false,
		"a b@c.d":     false,
		"a@@b.c":      false,
		"":            false,
	}
	for in, want := range cases {
		assert.Equal(t, want, IsEmail(in), in)
	}
}

func TestIsPassword_CountsUTF16Units(t *testing.T) {
	assert.False(t, IsPassword("12345"))
	assert.True(t, IsPassword("123456"))
	assert.True(t, IsPassword("1234567890123456789"))
	assert.False(t, IsPassword("12345678901234567890"))

	// one UTF-16 unit, three bytes each
	assert.True(t, IsPassword(strings.Repeat("\u0800", 19)))

	// surrogate pairs count twice
	assert.True(t, IsPassword(strings.Repeat("\U0001F600", 9)))
	assert.False(t, IsPassword(strings.Repeat("\U0001F600", 10)))
	assert.False(t, IsPassword(strings.Repeat("\U0001F600", 19)))
}
