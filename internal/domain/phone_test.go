package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDigitsOnly(t *testing.T) {
	assert.Equal(t, "5215512345678", DigitsOnly("+52 1 55 1234 5678"))
	assert.Equal(t, "5512345678", DigitsOnly("(55) 1234-5678"))
	assert.Equal(t, "", DigitsOnly("sin numero"))
	assert.Equal(t, "", DigitsOnly(""))
}

func TestLastDigits(t *testing.T) {
	assert.Equal(t, "5512345678", LastDigits("5215512345678", 10))
	assert.Equal(t, "5512345678", LastDigits("5512345678", 10))
	assert.Equal(t, "12345", LastDigits("12345", 10))
	assert.Equal(t, "", LastDigits("", 10))
}

func TestLacksPrefix(t *testing.T) {
	cases := []struct {
		phone string
		want  bool
	}{
		{"5512345678", true},
		{"(55) 1234-5678", true},
		{"", false},
		{"123456789", false},
		{"52555123456", false},
		{"521555123456789", false},
		{"+52 55 1234 5678", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, LacksPrefix(tc.phone), "phone %q", tc.phone)
	}
}
