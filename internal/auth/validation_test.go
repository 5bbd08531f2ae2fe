package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEmail(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{name: "plain", input: "user@example.com", want: "user@example.com", ok: true},
		{name: "normalized", input: "  USER@Example.COM ", want: "user@example.com", ok: true},
		{name: "no at sign", input: "userexample.com", ok: false},
		{name: "no domain", input: "user@", ok: false},
		{name: "spaces inside", input: "us er@example.com", ok: false},
		{name: "empty", input: "", ok: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseEmail(tc.input)
			if !tc.ok {
				assert.ErrorIs(t, err, ErrValidation)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseName(t *testing.T) {
	got, err := ParseName("  Subiksha ")
	require.NoError(t, err)
	assert.Equal(t, "Subiksha", got)

	_, err = ParseName("   ")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = ParseName("two\nlines")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCheckPassword(t *testing.T) {
	assert.NoError(t, checkPassword("longenough"))
	assert.ErrorIs(t, checkPassword("short"), ErrValidation)
}
