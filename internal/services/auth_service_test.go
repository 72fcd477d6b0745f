package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePhone(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"9876543210", "+919876543210"},
		{"98765 43210", "+919876543210"},
		{"+91 98765-43210", "+919876543210"},
		{"919876543210", "+919876543210"},
		{"(+91) 98765 43210", "+919876543210"},
	}
	for _, tc := range cases {
		got, err := NormalizePhone(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}

func TestNormalizePhoneRejectsInvalid(t *testing.T) {
	for _, in := range []string{
		"",
		"12345",
		"1234567890",   // starts below 6
		"987654321",    // nine digits
		"98765432100",  // eleven digits
		"929876543210", // wrong country prefix
		"abcdefghij",
	} {
		_, err := NormalizePhone(in)
		assert.Error(t, err, in)
	}
}

func TestNameFromEmail(t *testing.T) {
	assert.Equal(t, "alice.b", nameFromEmail("alice.b@example.com"))
	assert.Equal(t, "plain", nameFromEmail("plain"))
}

func TestNameFromPhone(t *testing.T) {
	assert.Equal(t, "User_3210", nameFromPhone("+919876543210"))
}
